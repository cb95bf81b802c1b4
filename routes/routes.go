package routes

import (
	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"go-wastegrid/genai"
	"go-wastegrid/handlers"
)

func SetupRouter(firestoreClient *firestore.Client, ai *genai.Client) *gin.Engine {
	r := gin.Default()

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Waste governance analytics engine",
		})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/reports", func(c *gin.Context) {
			handlers.CreateReport(c, firestoreClient, ai)
		})
		api.PATCH("/reports/:id/status", func(c *gin.Context) {
			handlers.UpdateReportStatus(c, firestoreClient)
		})

		api.GET("/dashboard", func(c *gin.Context) {
			handlers.Dashboard(c, firestoreClient)
		})
		api.GET("/wards/:ward/predict-overflow", func(c *gin.Context) {
			handlers.PredictOverflow(c, firestoreClient, ai)
		})
		api.GET("/alerts", func(c *gin.Context) {
			handlers.Alerts(c, firestoreClient)
		})

		api.POST("/routes/optimize", handlers.OptimizeRoute)
		api.POST("/circular-value", handlers.CircularValue)

		api.POST("/wards/:ward/policies", func(c *gin.Context) {
			handlers.GeneratePolicies(c, firestoreClient)
		})
		api.GET("/wards/:ward/policies", func(c *gin.Context) {
			handlers.ListPolicies(c, firestoreClient)
		})
		api.PATCH("/policies/:id", func(c *gin.Context) {
			handlers.UpdatePolicy(c, firestoreClient)
		})
	}

	return r
}
