package types

import "time"

type PolicyStatus string

const (
	PolicyGenerated   PolicyStatus = "generated"
	PolicyUnderReview PolicyStatus = "under-review"
	PolicyApproved    PolicyStatus = "approved"
	PolicyRejected    PolicyStatus = "rejected"
	PolicyImplemented PolicyStatus = "implemented"
	PolicyMonitored   PolicyStatus = "monitored"
)

type BudgetPriority string

const (
	BudgetLow    BudgetPriority = "low"
	BudgetMedium BudgetPriority = "medium"
	BudgetHigh   BudgetPriority = "high"
	BudgetUrgent BudgetPriority = "urgent"
)

type RecommendationType string

const (
	RecSurveillance        RecommendationType = "surveillance"
	RecCollectionFrequency RecommendationType = "collection-frequency"
	RecCommunityEngagement RecommendationType = "community-engagement"
	RecOrganicProcessing   RecommendationType = "organic-processing"
)

type PolicyContext struct {
	IncidentCount int         `firestore:"incidentCount"`
	Timeframe     string      `firestore:"timeframe"`
	Severity      string      `firestore:"severity"` // low / medium / high / critical
	WasteTypes    []WasteType `firestore:"wasteTypes"`
}

type Recommendation struct {
	Type           RecommendationType `firestore:"type"`
	Title          string             `firestore:"title"`
	Description    string             `firestore:"description"`
	Budget         int                `firestore:"budget"`
	Timeline       string             `firestore:"timeline"`
	ExpectedImpact string             `firestore:"expectedImpact"`
	BudgetPriority BudgetPriority     `firestore:"budgetPriority"`
}

type EstimatedImpact struct {
	ComplaintReductionPct float64 `firestore:"complaintReductionPct"`
}

type PolicyStatusEntry struct {
	Status    PolicyStatus `firestore:"status"`
	Timestamp time.Time    `firestore:"timestamp"`
	UpdatedBy string       `firestore:"updatedBy,omitempty"`
	Notes     string       `firestore:"notes,omitempty"`
}

type PolicyRecommendation struct {
	ID              string              `firestore:"-"`
	WardNumber      int                 `firestore:"wardNumber"`
	Context         PolicyContext       `firestore:"context"`
	Recommendation  Recommendation      `firestore:"recommendation"`
	EstimatedImpact EstimatedImpact     `firestore:"estimatedImpact"`
	Priority        int                 `firestore:"priority"` // 1-10, derived
	Status          PolicyStatus        `firestore:"status"`
	StatusHistory   []PolicyStatusEntry `firestore:"statusHistory"`
	Progress        int                 `firestore:"progress"` // 0-100, implementation
	CreatedAt       time.Time           `firestore:"createdAt"`
}

// AdvanceStatus appends to the status history, keeping it append-only.
func (p *PolicyRecommendation) AdvanceStatus(status PolicyStatus, at time.Time, actor, notes string) {
	p.StatusHistory = append(p.StatusHistory, PolicyStatusEntry{
		Status:    status,
		Timestamp: at,
		UpdatedBy: actor,
		Notes:     notes,
	})
	p.Status = status
}
