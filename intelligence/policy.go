package intelligence

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"go-wastegrid/types"
)

const (
	dumpingRateThreshold   = 0.20 // illegal-dumping share of incidents
	overflowRiskThreshold  = 60.0 // percent
	lowCleanlinessCutoff   = 70.0
	incidentCountThreshold = 20
)

// WardPolicyMetrics is the aggregate view of one ward that the rule set
// evaluates, assembled over a configurable lookback window.
type WardPolicyMetrics struct {
	WardNumber         int
	IncidentCount      int
	IllegalDumping     int
	OverflowRiskPct    float64
	CleanlinessIndex   float64
	WasteTypes         []types.WasteType
	SeverityClass      string // low / medium / high / critical
	LookbackDays       int
}

// recDefaults carries the fixed budget/timeline/impact constants per
// recommendation type. Domain constants, not computed values.
type recDefaults struct {
	title          string
	budget         int
	timeline       string
	expectedImpact string
	budgetPriority types.BudgetPriority
	reductionPct   float64
}

var recTable = map[types.RecommendationType]recDefaults{
	types.RecSurveillance: {
		title:          "Install CCTV Surveillance",
		budget:         120000,
		timeline:       "2 months",
		expectedImpact: "-78% illegal dumping",
		budgetPriority: types.BudgetUrgent,
		reductionPct:   78,
	},
	types.RecCollectionFrequency: {
		title:          "Increase Collection Frequency",
		budget:         85000,
		timeline:       "3 weeks",
		expectedImpact: "+45% effective capacity",
		budgetPriority: types.BudgetHigh,
		reductionPct:   45,
	},
	types.RecCommunityEngagement: {
		title:          "Community Engagement Campaign",
		budget:         45000,
		timeline:       "6 weeks",
		expectedImpact: "+12 cleanliness index points",
		budgetPriority: types.BudgetMedium,
		reductionPct:   25,
	},
	types.RecOrganicProcessing: {
		title:          "Organic Waste Processing Unit",
		budget:         520000,
		timeline:       "4 months",
		expectedImpact: "-34% landfill load",
		budgetPriority: types.BudgetMedium,
		reductionPct:   34,
	},
}

// GeneratePolicies applies the threshold rules to one ward's aggregates.
// Rules are independent: zero, one or several recommendations may fire.
func GeneratePolicies(m WardPolicyMetrics, now time.Time) []types.PolicyRecommendation {
	var out []types.PolicyRecommendation

	// The context severity is the ward's aggregate class, shared by every
	// recommendation the ward produces.
	severity := m.SeverityClass
	if severity == "" {
		severity = "low"
	}

	emit := func(recType types.RecommendationType, description string) {
		def := recTable[recType]
		rec := types.PolicyRecommendation{
			ID:         uuid.NewString(),
			WardNumber: m.WardNumber,
			Context: types.PolicyContext{
				IncidentCount: m.IncidentCount,
				Timeframe:     fmt.Sprintf("Last %d days", m.LookbackDays),
				Severity:      severity,
				WasteTypes:    m.WasteTypes,
			},
			Recommendation: types.Recommendation{
				Type:           recType,
				Title:          def.title,
				Description:    description,
				Budget:         def.budget,
				Timeline:       def.timeline,
				ExpectedImpact: def.expectedImpact,
				BudgetPriority: def.budgetPriority,
			},
			EstimatedImpact: types.EstimatedImpact{ComplaintReductionPct: def.reductionPct},
			Status:          types.PolicyGenerated,
			CreatedAt:       now,
		}
		rec.AdvanceStatus(types.PolicyGenerated, now, "", "rule engine")
		rec.Priority = ScorePriority(rec)
		out = append(out, rec)
	}

	dumpingRate := 0.0
	if m.IncidentCount > 0 {
		dumpingRate = float64(m.IllegalDumping) / float64(m.IncidentCount)
	}

	if dumpingRate > dumpingRateThreshold {
		emit(types.RecSurveillance,
			fmt.Sprintf("Illegal dumping incidents: %d of %d reports in window", m.IllegalDumping, m.IncidentCount))
	}
	if m.OverflowRiskPct > overflowRiskThreshold {
		emit(types.RecCollectionFrequency,
			fmt.Sprintf("Current overflow risk: %.0f%%", m.OverflowRiskPct))
	}
	if m.CleanlinessIndex < lowCleanlinessCutoff {
		emit(types.RecCommunityEngagement,
			fmt.Sprintf("Cleanliness index at %.1f, below the %d target", m.CleanlinessIndex, int(lowCleanlinessCutoff)))
	}
	if m.IncidentCount > incidentCountThreshold {
		covered := false
		for _, rec := range out {
			if rec.Recommendation.Type == types.RecOrganicProcessing {
				covered = true
			}
		}
		if !covered {
			emit(types.RecOrganicProcessing,
				"Segregate and compost organic waste locally")
		}
	}

	return out
}

var severityWeight = map[string]int{
	"low":      1,
	"medium":   2,
	"high":     3,
	"critical": 4,
}

var budgetWeight = map[types.BudgetPriority]int{
	types.BudgetLow:    0,
	types.BudgetMedium: 1,
	types.BudgetHigh:   2,
	types.BudgetUrgent: 3,
}

// ScorePriority computes the 1-10 priority: base 5 plus severity, budget and
// expected-impact weights, capped at 10.
func ScorePriority(rec types.PolicyRecommendation) int {
	score := 5
	score += severityWeight[rec.Context.Severity]
	score += budgetWeight[rec.Recommendation.BudgetPriority]

	if rec.EstimatedImpact.ComplaintReductionPct > 50 {
		score += 2
	} else if rec.EstimatedImpact.ComplaintReductionPct > 30 {
		score++
	}

	if score > 10 {
		score = 10
	}
	if score < 1 {
		score = 1
	}
	return score
}
