package cronjobs

import (
	"context"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/apex/log"

	"go-wastegrid/db"
	"go-wastegrid/genai"
	"go-wastegrid/intelligence"
	"go-wastegrid/types"
)

const staleReportDays = 30

// OverflowPredictor is the slice of the prediction service the scheduler
// uses. *genai.Client satisfies it.
type OverflowPredictor interface {
	Enabled() bool
	PredictOverflow(ctx context.Context, in intelligence.PredictionInput) (*genai.OverflowResult, error)
}

// JobContext carries everything one scheduled pass needs. A fresh context is
// built per invocation so passes share no mutable state; Now is captured once
// so every ward in a pass sees the same clock.
type JobContext struct {
	Ctx     context.Context
	Client  *firestore.Client
	AI      OverflowPredictor
	Now     time.Time
	Workers int
}

// runBounded fans n items over a bounded pool of workers and waits for all of
// them. The semaphore keeps Firestore write pressure flat regardless of ward
// count.
func runBounded(n, workers int, fn func(i int)) {
	if workers <= 0 {
		workers = 4
	}

	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i := 0; i < n; i++ {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			fn(i)
		}(i)
	}
	wg.Wait()
}

func reportsForWard(reports []types.WasteReport, wardNumber int) []types.WasteReport {
	var out []types.WasteReport
	for _, r := range reports {
		if r.Location.WardNumber == wardNumber {
			out = append(out, r)
		}
	}
	return out
}

// RunCleanlinessPass recomputes every ward's cleanliness index and active
// report counters. Per-ward failures are logged and skipped so one bad ward
// document cannot stall the pass.
func RunCleanlinessPass(jc JobContext) {
	wards, err := db.GetAllWards(jc.Ctx, jc.Client)
	if err != nil {
		log.Errorf("Cleanliness pass: loading wards: %v", err)
		return
	}
	reports, err := db.GetAllReports(jc.Ctx, jc.Client)
	if err != nil {
		log.Errorf("Cleanliness pass: loading reports: %v", err)
		return
	}

	runBounded(len(wards), jc.Workers, func(i int) {
		ward := wards[i]
		wardReports := reportsForWard(reports, ward.WardNumber)

		result := intelligence.ComputeCleanliness(wardReports, jc.Now)
		entry := types.CleanlinessEntry{
			Score:     result.Score,
			Timestamp: jc.Now,
			Factors:   result.Factors,
		}

		if err := db.UpdateWardCleanliness(jc.Ctx, jc.Client, ward.ID, entry); err != nil {
			log.Errorf("Cleanliness pass: ward %d: %v", ward.WardNumber, err)
			return
		}
		if err := db.UpdateWardActiveReports(jc.Ctx, jc.Client, ward.ID, wardReports); err != nil {
			log.Errorf("Cleanliness pass: counters for ward %d: %v", ward.WardNumber, err)
		}
	})

	log.Infof("Cleanliness pass finished for %d wards", len(wards))
}

// RunOverflowPass predicts overflow for busy wards. When the generative
// service fails for a ward, that ward is skipped and its prior persisted risk
// stays untouched; failure never fabricates state. After the risk updates it
// runs the alert generators with the transactional truck assigner.
func RunOverflowPass(jc JobContext) {
	wards, err := db.GetAllWards(jc.Ctx, jc.Client)
	if err != nil {
		log.Errorf("Overflow pass: loading wards: %v", err)
		return
	}
	reports, err := db.GetAllReports(jc.Ctx, jc.Client)
	if err != nil {
		log.Errorf("Overflow pass: loading reports: %v", err)
		return
	}

	var busy []types.Ward
	for _, w := range wards {
		if w.ActiveReports.Total > intelligence.BusyWardThreshold {
			busy = append(busy, w)
		}
	}
	if len(busy) == 0 {
		log.Info("Overflow pass: no busy wards")
		return
	}

	runBounded(len(busy), jc.Workers, func(i int) {
		ward := busy[i]
		prediction, ok := predictWard(jc, ward, reports)
		if !ok {
			return
		}

		predictedAt := jc.Now
		risk := types.OverflowRisk{
			CurrentLevel: intelligence.RiskLevelForUrgency(prediction.Urgency),
			Probability:  prediction.Probability,
			PredictedAt:  &predictedAt,
		}
		if prediction.HoursToOverflow > 0 {
			estimated := jc.Now.Add(time.Duration(prediction.HoursToOverflow * float64(time.Hour)))
			risk.EstimatedOverflowTime = &estimated
		}

		if err := db.UpdateWardOverflowRisk(jc.Ctx, jc.Client, ward.ID, risk); err != nil {
			log.Errorf("Overflow pass: ward %d: %v", ward.WardNumber, err)
		}
	})

	assigner := &db.TruckAssigner{Client: jc.Client, Ctx: jc.Ctx}
	alerts := intelligence.GenerateAlerts(busy, reports, assigner, jc.Now)
	for _, a := range alerts {
		log.WithFields(log.Fields{
			"ward":    a.WardNumber,
			"type":    string(a.Type),
			"urgency": string(a.Severity),
		}).Info("Alert raised")
	}

	log.Infof("Overflow pass finished: %d busy wards, %d alerts", len(busy), len(alerts))
}

// predictWard produces the prediction to persist for one ward. A configured
// service is authoritative: on call failure it reports not-ok and the caller
// skips the ward, leaving the prior persisted risk alone. The local variant
// serves only deployments that run without the service.
func predictWard(jc JobContext, ward types.Ward, reports []types.WasteReport) (intelligence.OverflowPrediction, bool) {
	if jc.AI == nil || !jc.AI.Enabled() {
		return intelligence.PredictOverflowLocal(intelligence.LocalInputForWard(ward, reports, jc.Now)), true
	}

	input := intelligence.BuildPredictionInput(ward, reports, jc.Now)
	result, err := jc.AI.PredictOverflow(jc.Ctx, input)
	if err != nil {
		log.Warnf("Overflow pass: prediction for ward %d failed, keeping prior risk: %v", ward.WardNumber, err)
		return intelligence.OverflowPrediction{}, false
	}

	// Nil hours means overflow is not imminent; no estimated time is stored.
	var hours float64
	if result.HoursToOverflow != nil {
		hours = *result.HoursToOverflow
	}
	return intelligence.OverflowPrediction{
		WardNumber:      ward.WardNumber,
		Probability:     result.OverflowProbability,
		HoursToOverflow: hours,
		Urgency:         result.Urgency(),
	}, true
}

// RunParticipationPass recomputes every citizen's participation score.
func RunParticipationPass(jc JobContext) {
	citizens, err := db.GetUsersByRole(jc.Ctx, jc.Client, types.RoleCitizen)
	if err != nil {
		log.Errorf("Participation pass: loading citizens: %v", err)
		return
	}

	runBounded(len(citizens), jc.Workers, func(i int) {
		u := citizens[i]
		score := intelligence.ParticipationScore(u.CitizenMetrics.ReportsSubmitted, u.CitizenMetrics.ReportsVerified)
		if score == u.CitizenMetrics.ParticipationScore {
			return
		}
		if err := db.UpdateParticipationScore(jc.Ctx, jc.Client, u.ID, score); err != nil {
			log.Errorf("Participation pass: user %s: %v", u.ID, err)
		}
	})

	log.Infof("Participation pass finished for %d citizens", len(citizens))
}

// RunEfficiencyPass recomputes every ward officer's efficiency rating.
func RunEfficiencyPass(jc JobContext) {
	officers, err := db.GetUsersByRole(jc.Ctx, jc.Client, types.RoleWardOfficer)
	if err != nil {
		log.Errorf("Efficiency pass: loading officers: %v", err)
		return
	}

	runBounded(len(officers), jc.Workers, func(i int) {
		u := officers[i]
		efficiency := intelligence.OfficerEfficiency(u.OfficerMetrics.TasksAssigned, u.OfficerMetrics.TasksCompleted)
		if efficiency == u.OfficerMetrics.Efficiency {
			return
		}
		if err := db.UpdateOfficerEfficiency(jc.Ctx, jc.Client, u.ID, efficiency); err != nil {
			log.Errorf("Efficiency pass: user %s: %v", u.ID, err)
		}
	})

	log.Infof("Efficiency pass finished for %d officers", len(officers))
}

// SelectStaleReports returns every non-terminal report filed more than
// staleReportDays ago. Staleness is judged by the filing time alone: later
// status activity does not extend a report's life.
func SelectStaleReports(reports []types.WasteReport, now time.Time) []types.WasteReport {
	cutoff := now.AddDate(0, 0, -staleReportDays)

	var stale []types.WasteReport
	for _, r := range reports {
		if r.Status.Current.Terminal() {
			continue
		}
		if r.ReportedAt.Before(cutoff) {
			stale = append(stale, r)
		}
	}
	return stale
}

// RunStaleSweep rejects reports abandoned in a non-terminal status, keeping
// their audit history intact.
func RunStaleSweep(jc JobContext) {
	reports, err := db.GetAllReports(jc.Ctx, jc.Client)
	if err != nil {
		log.Errorf("Stale sweep: loading reports: %v", err)
		return
	}

	stale := SelectStaleReports(reports, jc.Now)
	runBounded(len(stale), jc.Workers, func(i int) {
		r := stale[i]
		err := db.AppendReportStatus(jc.Ctx, jc.Client, r.ID, types.StatusRejected,
			"system", "auto-rejected: no activity for 30 days", jc.Now)
		if err != nil {
			log.Errorf("Stale sweep: report %s: %v", r.ID, err)
		}
	})

	log.Infof("Stale sweep finished: %d of %d reports rejected", len(stale), len(reports))
}

// RunDailySummary logs a city-wide snapshot. Read-only.
func RunDailySummary(jc JobContext) {
	wards, err := db.GetAllWards(jc.Ctx, jc.Client)
	if err != nil {
		log.Errorf("Daily summary: loading wards: %v", err)
		return
	}

	var totalActive, highRisk int
	var scoreSum float64
	for _, w := range wards {
		totalActive += w.ActiveReports.Total
		scoreSum += w.Cleanliness.Current
		if w.OverflowRisk.CurrentLevel == types.OverflowHigh || w.OverflowRisk.CurrentLevel == types.OverflowCritical {
			highRisk++
		}
	}

	avg := 0.0
	if len(wards) > 0 {
		avg = scoreSum / float64(len(wards))
	}

	log.WithFields(log.Fields{
		"wards":          len(wards),
		"activeReports":  totalActive,
		"highRiskWards":  highRisk,
		"avgCleanliness": avg,
	}).Info("Daily summary")
}
