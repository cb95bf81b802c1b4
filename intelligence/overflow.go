package intelligence

import (
	"math"
	"time"

	"go-wastegrid/types"
)

const (
	predictionWindowDays = 7

	// Busy-ward filter for the scheduled prediction pass. On-demand calls
	// bypass it.
	BusyWardThreshold = 10

	minHoursToOverflow = 4
)

// PredictionInput is the structured context handed to the generative
// prediction service. Built fresh per pass from the ward and its 7-day
// report window.
type PredictionInput struct {
	WardNumber           int                  `json:"wardNumber"`
	ActiveReports        int                  `json:"activeReports"`
	SeverityDistribution types.SeverityCounts `json:"severityDistribution"`
	AvgResponseTime      float64              `json:"avgResponseTime"`
	WeeklyTrend          map[string]int       `json:"weeklyTrend"` // day (2006-01-02) -> report count
	CleanlinessIndex     float64              `json:"cleanlinessIndex"`
	BinCapacity          float64              `json:"binCapacity"`
}

type OverflowPrediction struct {
	WardNumber      int           `json:"wardNumber"`
	Probability     float64       `json:"overflowProbability"` // 0-100
	HoursToOverflow float64       `json:"hoursToOverflow"`
	Urgency         types.Urgency `json:"urgencyLevel"`
}

// BuildPredictionInput buckets the ward's last-7-day reports by severity and
// day. Days with no reports appear in the trend with a zero count.
func BuildPredictionInput(ward types.Ward, reports []types.WasteReport, now time.Time) PredictionInput {
	windowStart := now.AddDate(0, 0, -predictionWindowDays)

	trend := make(map[string]int, predictionWindowDays)
	for i := 0; i < predictionWindowDays; i++ {
		trend[now.AddDate(0, 0, -i).UTC().Format("2006-01-02")] = 0
	}

	var dist types.SeverityCounts
	for _, r := range reports {
		if r.Location.WardNumber != ward.WardNumber || r.ReportedAt.Before(windowStart) {
			continue
		}
		switch {
		case r.Classification.SeverityScore <= 2:
			dist.Low++
		case r.Classification.SeverityScore == 3:
			dist.Medium++
		case r.Classification.SeverityScore == 4:
			dist.High++
		default:
			dist.Critical++
		}
		day := r.ReportedAt.UTC().Format("2006-01-02")
		if _, ok := trend[day]; ok {
			trend[day]++
		}
	}

	capacity := ward.Infrastructure.BinCapacity
	if capacity <= 0 {
		capacity = 100
	}

	return PredictionInput{
		WardNumber:           ward.WardNumber,
		ActiveReports:        ward.ActiveReports.Total,
		SeverityDistribution: dist,
		AvgResponseTime:      ward.Performance.AverageResponseTime,
		WeeklyTrend:          trend,
		CleanlinessIndex:     ward.Cleanliness.Current,
		BinCapacity:          capacity,
	}
}

type LocalOverflowInput struct {
	WardNumber          int
	CurrentLoad         float64 // open report total, the load proxy
	BinCapacity         float64
	AvgSeverityFraction float64 // average severity scaled to 0-1
}

// PredictOverflowLocal is the fast, fully local prediction used by the
// dashboard surface and alert triggering. No network, no learned model: a
// load-over-capacity ratio inflated by average severity.
func PredictOverflowLocal(in LocalOverflowInput) OverflowPrediction {
	capacity := in.BinCapacity
	if capacity <= 0 {
		capacity = 100
	}

	ratio := (in.CurrentLoad / capacity) * (1 + in.AvgSeverityFraction)
	probability := math.Min(ratio, 1.0) * 100
	hours := math.Max(minHoursToOverflow, 24-probability/10)

	return OverflowPrediction{
		WardNumber:      in.WardNumber,
		Probability:     probability,
		HoursToOverflow: hours,
		Urgency:         UrgencyForProbability(probability),
	}
}

// LocalInputForWard derives the local-variant inputs from a ward and its
// report log.
func LocalInputForWard(ward types.Ward, reports []types.WasteReport, now time.Time) LocalOverflowInput {
	windowStart := now.AddDate(0, 0, -predictionWindowDays)

	var count int
	var totalSeverity float64
	for _, r := range reports {
		if r.Location.WardNumber != ward.WardNumber || r.ReportedAt.Before(windowStart) {
			continue
		}
		count++
		totalSeverity += float64(r.Classification.SeverityScore)
	}

	avgFraction := 0.0
	if count > 0 {
		avgFraction = totalSeverity / float64(count) / 5
	}

	return LocalOverflowInput{
		WardNumber:          ward.WardNumber,
		CurrentLoad:         float64(ward.ActiveReports.Total),
		BinCapacity:         ward.Infrastructure.BinCapacity,
		AvgSeverityFraction: avgFraction,
	}
}

// UrgencyForProbability maps an overflow probability onto the shared urgency
// ladder used by both prediction variants.
func UrgencyForProbability(probability float64) types.Urgency {
	switch {
	case probability > 80:
		return types.UrgencyCritical
	case probability > 60:
		return types.UrgencyHigh
	case probability > 40:
		return types.UrgencyMedium
	default:
		return types.UrgencyLow
	}
}

// RiskLevelForUrgency converts alert urgency to the ward document's
// lower-case risk level enum.
func RiskLevelForUrgency(u types.Urgency) types.OverflowLevel {
	switch u {
	case types.UrgencyCritical:
		return types.OverflowCritical
	case types.UrgencyHigh:
		return types.OverflowHigh
	case types.UrgencyMedium:
		return types.OverflowMedium
	default:
		return types.OverflowLow
	}
}
