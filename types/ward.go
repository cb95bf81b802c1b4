package types

import "time"

type OverflowLevel string

const (
	OverflowLow      OverflowLevel = "low"
	OverflowMedium   OverflowLevel = "medium"
	OverflowHigh     OverflowLevel = "high"
	OverflowCritical OverflowLevel = "critical"
)

// CleanlinessFactors are the four weighted inputs behind a cleanliness score,
// kept with each history entry so a score can be explained later.
type CleanlinessFactors struct {
	ReportFrequency float64 `firestore:"reportFrequency"`
	ResolutionSpeed float64 `firestore:"resolutionSpeed"`
	SeverityFactor  float64 `firestore:"severityFactor"`
	ResolutionRate  float64 `firestore:"resolutionRate"`
}

type CleanlinessEntry struct {
	Score     float64            `firestore:"score"`
	Timestamp time.Time          `firestore:"timestamp"`
	Factors   CleanlinessFactors `firestore:"factors"`
}

const cleanlinessHistoryCap = 90

type CleanlinessIndex struct {
	Current float64            `firestore:"current"` // 0-100
	History []CleanlinessEntry `firestore:"history"`
}

// Append records a new score, evicting the oldest entries past the cap.
func (c *CleanlinessIndex) Append(entry CleanlinessEntry) {
	c.Current = entry.Score
	c.History = append(c.History, entry)
	if len(c.History) > cleanlinessHistoryCap {
		c.History = c.History[len(c.History)-cleanlinessHistoryCap:]
	}
}

type StatusCounts struct {
	Reported   int `firestore:"reported"`
	Verified   int `firestore:"verified"`
	Assigned   int `firestore:"assigned"`
	InProgress int `firestore:"inProgress"`
}

type SeverityCounts struct {
	Low      int `firestore:"low"`      // severity <= 2
	Medium   int `firestore:"medium"`   // severity == 3
	High     int `firestore:"high"`     // severity == 4
	Critical int `firestore:"critical"` // severity == 5
}

type ActiveReports struct {
	Total      int            `firestore:"total"`
	ByStatus   StatusCounts   `firestore:"byStatus"`
	BySeverity SeverityCounts `firestore:"bySeverity"`
}

type OverflowRisk struct {
	CurrentLevel          OverflowLevel `firestore:"currentLevel"`
	Probability           float64       `firestore:"probability"` // 0-100
	EstimatedOverflowTime *time.Time    `firestore:"estimatedOverflowTime,omitempty"`
	PredictedAt           *time.Time    `firestore:"predictedAt,omitempty"`
}

type Demographics struct {
	Population int     `firestore:"population"`
	AreaSqKm   float64 `firestore:"areaSqKm"`
}

type Infrastructure struct {
	BinCount    int     `firestore:"binCount"`
	BinCapacity float64 `firestore:"binCapacity"` // cubic meters, overflow denominator
}

type Performance struct {
	AverageResponseTime float64 `firestore:"averageResponseTime"` // minutes
	ResolutionRate      float64 `firestore:"resolutionRate"`      // percentage
}

// Ward is one administrative unit. CleanlinessIndex and OverflowRisk are
// caches derived from the report log, never sources of truth.
type Ward struct {
	ID             string           `firestore:"-"`
	WardNumber     int              `firestore:"wardNumber"` // 1-100, unique
	Name           string           `firestore:"name"`
	Zone           string           `firestore:"zone,omitempty"`
	Demographics   Demographics     `firestore:"demographics"`
	Cleanliness    CleanlinessIndex `firestore:"cleanlinessIndex"`
	ActiveReports  ActiveReports    `firestore:"activeReports"`
	OverflowRisk   OverflowRisk     `firestore:"overflowRisk"`
	Performance    Performance      `firestore:"performance"`
	Infrastructure Infrastructure   `firestore:"infrastructure"`
	LastUpdated    time.Time        `firestore:"lastUpdated"`
}
