package cronjobs

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/apex/log"
	"github.com/robfig/cron/v3"

	"go-wastegrid/config"
	"go-wastegrid/genai"
)

// InitCronJobs registers the scheduled analytics passes and starts the
// scheduler. Each job builds a fresh JobContext at fire time.
func InitCronJobs(firestoreClient *firestore.Client, ai *genai.Client, cfg *config.Config) *cron.Cron {
	log.Info("Starting scheduled analytics passes")
	c := cron.New()

	newJC := func() JobContext {
		return JobContext{
			Ctx:     context.Background(),
			Client:  firestoreClient,
			AI:      ai,
			Now:     time.Now(),
			Workers: cfg.WorkerPoolSize,
		}
	}

	schedule := func(spec, name string, run func(JobContext)) {
		_, err := c.AddFunc(spec, func() {
			log.Infof("CronJob: %s running", name)
			run(newJC())
		})
		if err != nil {
			log.Errorf("Error scheduling %s: %v", name, err)
		}
	}

	// Participation at midnight, efficiency at 01:00, cleanliness at 02:00,
	// stale sweep at 03:00. Staggered so the heavy report scans never overlap.
	schedule("0 0 * * *", "participation scores", RunParticipationPass)
	schedule("0 1 * * *", "officer efficiency", RunEfficiencyPass)
	schedule("0 2 * * *", "cleanliness index", RunCleanlinessPass)
	schedule("0 3 * * *", "stale report sweep", RunStaleSweep)

	// Overflow prediction every 6 hours, busy wards only.
	schedule("0 */6 * * *", "overflow prediction", RunOverflowPass)

	// Morning snapshot for the operations channel.
	schedule("0 8 * * *", "daily summary", RunDailySummary)

	c.Start()
	return c
}
