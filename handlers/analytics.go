package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"go-wastegrid/db"
	"go-wastegrid/genai"
	"go-wastegrid/intelligence"
	"go-wastegrid/types"
)

func wardNumberParam(c *gin.Context) (int, bool) {
	ward, err := strconv.Atoi(c.Param("ward"))
	if err != nil || ward < 1 || ward > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ward must be between 1 and 100"})
		return 0, false
	}
	return ward, true
}

// Dashboard returns the city-wide aggregate: every ward with its cleanliness
// index and a fresh local overflow prediction. Uses only the local variant so
// the dashboard stays fast and provider-independent.
func Dashboard(c *gin.Context, client *firestore.Client) {
	ctx := c.Request.Context()

	wards, err := db.GetAllWards(ctx, client)
	if err != nil {
		log.Errorf("Dashboard: loading wards: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wards"})
		return
	}
	reports, err := db.GetAllReports(ctx, client)
	if err != nil {
		log.Errorf("Dashboard: loading reports: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reports"})
		return
	}

	now := time.Now()
	type wardView struct {
		Ward       types.Ward                      `json:"ward"`
		Prediction intelligence.OverflowPrediction `json:"prediction"`
	}

	views := make([]wardView, 0, len(wards))
	for _, w := range wards {
		views = append(views, wardView{
			Ward:       w,
			Prediction: intelligence.PredictOverflowLocal(intelligence.LocalInputForWard(w, reports, now)),
		})
	}

	c.JSON(http.StatusOK, gin.H{"wards": views, "generatedAt": now})
}

// PredictOverflow runs the generative prediction for one ward on demand,
// bypassing the busy-ward filter.
func PredictOverflow(c *gin.Context, client *firestore.Client, ai *genai.Client) {
	ward, ok := wardNumberParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	w, err := db.GetWardByNumber(ctx, client, ward)
	if err != nil {
		if db.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "ward not found"})
			return
		}
		log.Errorf("Predict overflow: loading ward %d: %v", ward, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load ward"})
		return
	}
	reports, err := db.GetReportsByWardSince(ctx, client, ward, time.Now().AddDate(0, 0, -7))
	if err != nil {
		log.Errorf("Predict overflow: loading reports for ward %d: %v", ward, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reports"})
		return
	}

	now := time.Now()
	local := intelligence.PredictOverflowLocal(intelligence.LocalInputForWard(w, reports, now))

	if ai == nil || !ai.Enabled() {
		c.JSON(http.StatusOK, gin.H{"source": "local", "prediction": local})
		return
	}

	result, err := ai.PredictOverflow(ctx, intelligence.BuildPredictionInput(w, reports, now))
	if err != nil {
		if errors.Is(err, genai.ErrQuota) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "prediction quota exhausted", "fallback": local})
			return
		}
		log.Warnf("Predict overflow: AI failed for ward %d, serving local: %v", ward, err)
		c.JSON(http.StatusOK, gin.H{"source": "local", "prediction": local})
		return
	}

	c.JSON(http.StatusOK, gin.H{"source": "ai", "prediction": result})
}

// Alerts regenerates the alert set on demand and returns it. Truck claims go
// through the transactional Firestore assigner, the same path the scheduler
// uses.
func Alerts(c *gin.Context, client *firestore.Client) {
	ctx := c.Request.Context()

	wards, err := db.GetAllWards(ctx, client)
	if err != nil {
		log.Errorf("Alerts: loading wards: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load wards"})
		return
	}
	reports, err := db.GetAllReports(ctx, client)
	if err != nil {
		log.Errorf("Alerts: loading reports: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reports"})
		return
	}

	assigner := &db.TruckAssigner{Client: client, Ctx: ctx}
	alerts := intelligence.GenerateAlerts(wards, reports, assigner, time.Now())

	c.JSON(http.StatusOK, gin.H{"alerts": alerts, "count": len(alerts)})
}

type routeRequest struct {
	TruckID  string          `json:"truckId"`
	Hotspots []types.Hotspot `json:"hotspots"`
}

// OptimizeRoute orders the submitted hotspots into a collection run and
// reports distance, time, fuel and emission estimates.
func OptimizeRoute(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Hotspots) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one hotspot required"})
		return
	}
	for _, h := range req.Hotspots {
		if h.Longitude < -180 || h.Longitude > 180 || h.Latitude < -90 || h.Latitude > 90 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "hotspot coordinates out of range"})
			return
		}
	}

	route := intelligence.OptimizeRoute(req.TruckID, req.Hotspots)
	c.JSON(http.StatusOK, route)
}

type circularRequest struct {
	WasteType types.WasteType `json:"wasteType"`
	WeightKg  float64         `json:"weightKg"`
}

// CircularValue estimates the resale, environmental and employment value of
// a collected waste stream.
func CircularValue(c *gin.Context) {
	var req circularRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.WeightKg < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "weightKg must be non-negative"})
		return
	}

	c.JSON(http.StatusOK, intelligence.CalculateCircularValue(req.WasteType, req.WeightKg))
}
