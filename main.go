package main

import (
	"github.com/apex/log"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"go-wastegrid/config"
	"go-wastegrid/cronjobs"
	"go-wastegrid/db"
	"go-wastegrid/genai"
	"go-wastegrid/routes"
)

func main() {
	// Load .env file, optional in deployed environments
	if err := godotenv.Load(); err != nil {
		log.Warnf("No .env file loaded: %v", err)
	}

	cfg := config.Load()
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	gin.SetMode(cfg.GinMode)

	if cfg.FirebaseCreds == "" {
		log.Fatal("FIREBASE_CREDENTIALS not set")
	}
	firestoreClient, err := db.InitFirestore()
	if err != nil {
		log.Fatalf("Failed to initialize Firestore: %v", err)
	}
	defer db.CloseFirestore() // Firestore client is closed on exit

	ai := genai.NewClient(cfg.OpenAIAPIKey)
	if !ai.Enabled() {
		log.Warn("OPENAI_API_KEY not set, predictions run in local-only mode")
	}
	if cfg.MapsAPIKey == "" {
		log.Warn("MAPS_API_KEY not set, address-only reports will be rejected")
	}

	if cfg.CronEnabled {
		scheduler := cronjobs.InitCronJobs(firestoreClient, ai, cfg)
		defer scheduler.Stop()
	}

	r := routes.SetupRouter(firestoreClient, ai)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
