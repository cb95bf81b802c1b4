package types

import "time"

type WasteType string

const (
	Plastic      WasteType = "plastic"
	Organic      WasteType = "organic"
	Mixed        WasteType = "mixed"
	Construction WasteType = "construction"
	Medical      WasteType = "medical"
	EWaste       WasteType = "e-waste"
	Hazardous    WasteType = "hazardous"
	Textile      WasteType = "textile"
	Metal        WasteType = "metal"
	Glass        WasteType = "glass"
	Unclassified WasteType = "unclassified"
)

type ReportStatus string

const (
	StatusReported   ReportStatus = "reported"
	StatusVerified   ReportStatus = "verified"
	StatusAssigned   ReportStatus = "assigned"
	StatusInProgress ReportStatus = "in-progress"
	StatusResolved   ReportStatus = "resolved"
	StatusRejected   ReportStatus = "rejected"
)

// Terminal statuses are never touched by the stale-report sweep.
func (s ReportStatus) Terminal() bool {
	return s == StatusResolved || s == StatusRejected
}

type ReportLocation struct {
	Coordinates [2]float64 `firestore:"coordinates"` // [longitude, latitude]
	WardNumber  int        `firestore:"wardNumber"`  // 1-100
	Address     string     `firestore:"address,omitempty"`
}

func (l ReportLocation) Longitude() float64 { return l.Coordinates[0] }
func (l ReportLocation) Latitude() float64  { return l.Coordinates[1] }

type Classification struct {
	WasteType                WasteType `firestore:"wasteType"`
	SeverityScore            int       `firestore:"severityScore"` // 1-5
	EstimatedVolume          string    `firestore:"estimatedVolume,omitempty"`
	RiskLevel                string    `firestore:"riskLevel,omitempty"`
	IsIllegalDumping         bool      `firestore:"isIllegalDumping"`
	EnvironmentalHazardLevel int       `firestore:"environmentalHazardLevel,omitempty"` // 0-10
	AIConfidence             float64   `firestore:"aiConfidence"`                       // 0-1
}

type StatusEntry struct {
	Status    ReportStatus `firestore:"status"`
	Timestamp time.Time    `firestore:"timestamp"`
	UpdatedBy string       `firestore:"updatedBy,omitempty"`
	Notes     string       `firestore:"notes,omitempty"`
}

type ReportStatusTrack struct {
	Current ReportStatus  `firestore:"current"`
	History []StatusEntry `firestore:"history"`
}

type Assignment struct {
	OfficerID  string     `firestore:"officerId,omitempty"`
	TruckID    string     `firestore:"truckId,omitempty"`
	AssignedAt *time.Time `firestore:"assignedAt,omitempty"`
}

type Resolution struct {
	ResolvedAt       *time.Time `firestore:"resolvedAt,omitempty"`
	ResolvedBy       string     `firestore:"resolvedBy,omitempty"`
	WasteCollectedKg float64    `firestore:"wasteCollectedKg,omitempty"`
}

type WasteReport struct {
	ID             string            `firestore:"-"`
	Location       ReportLocation    `firestore:"location"`
	Classification Classification    `firestore:"classification"`
	Status         ReportStatusTrack `firestore:"status"`
	Assignment     Assignment        `firestore:"assignment,omitempty"`
	Resolution     Resolution        `firestore:"resolution,omitempty"`
	ReporterID     string            `firestore:"reporterId,omitempty"`
	ReportedAt     time.Time         `firestore:"reportedAt"`
}

// AppendStatus advances the report lifecycle. The history is append-only and
// Status.Current always mirrors the last entry.
func (r *WasteReport) AppendStatus(status ReportStatus, at time.Time, actor, notes string) {
	r.Status.History = append(r.Status.History, StatusEntry{
		Status:    status,
		Timestamp: at,
		UpdatedBy: actor,
		Notes:     notes,
	})
	r.Status.Current = status
}

// ResponseTimeMinutes is the reported-to-resolved span, or 0 while unresolved.
func (r *WasteReport) ResponseTimeMinutes() float64 {
	if r.Resolution.ResolvedAt == nil {
		return 0
	}
	return r.Resolution.ResolvedAt.Sub(r.ReportedAt).Minutes()
}
