package intelligence

import (
	"math"
	"time"

	"go-wastegrid/types"
)

const (
	cleanlinessWindowDays = 30

	weightFrequency      = 0.25
	weightResolutionTime = 0.30
	weightSeverity       = 0.25
	weightResolutionRate = 0.20
)

type CleanlinessResult struct {
	Score   float64
	Factors types.CleanlinessFactors
}

// ComputeCleanliness derives a ward's 0-100 cleanliness score from its
// reports in the trailing 30-day window. Zero reports scores 100: absence of
// signal is treated as cleanliness, a policy choice carried over from the
// municipal rollout, not uncertainty.
func ComputeCleanliness(reports []types.WasteReport, now time.Time) CleanlinessResult {
	windowStart := now.AddDate(0, 0, -cleanlinessWindowDays)

	var window []types.WasteReport
	for _, r := range reports {
		if !r.ReportedAt.Before(windowStart) {
			window = append(window, r)
		}
	}

	if len(window) == 0 {
		return CleanlinessResult{Score: 100}
	}

	// Factor 1: report frequency, fewer reports per day reads cleaner.
	reportsPerDay := float64(len(window)) / cleanlinessWindowDays
	reportFrequency := clamp01to100(100 - reportsPerDay*5)

	// Factor 2: resolution speed over resolved reports only.
	var resolved int
	var totalResponseMinutes float64
	var totalSeverity float64
	for _, r := range window {
		totalSeverity += float64(r.Classification.SeverityScore)
		if r.Status.Current == types.StatusResolved {
			resolved++
			totalResponseMinutes += r.ResponseTimeMinutes()
		}
	}
	resolutionSpeed := 0.0
	if resolved > 0 {
		avgResponse := totalResponseMinutes / float64(resolved)
		resolutionSpeed = clamp01to100(100 - avgResponse/2)
	}

	// Factor 3: average severity.
	avgSeverity := totalSeverity / float64(len(window))
	severityFactor := clamp01to100(100 - avgSeverity*15)

	// Factor 4: resolution rate.
	resolutionRate := clamp01to100(float64(resolved) / float64(len(window)) * 100)

	score := reportFrequency*weightFrequency +
		resolutionSpeed*weightResolutionTime +
		severityFactor*weightSeverity +
		resolutionRate*weightResolutionRate

	return CleanlinessResult{
		Score: math.Round(score*10) / 10,
		Factors: types.CleanlinessFactors{
			ReportFrequency: reportFrequency,
			ResolutionSpeed: resolutionSpeed,
			SeverityFactor:  severityFactor,
			ResolutionRate:  resolutionRate,
		},
	}
}

func clamp01to100(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
