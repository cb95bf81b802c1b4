package handlers

import (
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"go-wastegrid/db"
	"go-wastegrid/intelligence"
	"go-wastegrid/types"
)

const policyLookbackDays = 30

// GeneratePolicies evaluates the rule set for one ward against its trailing
// 30-day report window, persists whatever fires and returns it.
func GeneratePolicies(c *gin.Context, client *firestore.Client) {
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
		log.Errorf("Generate policies: loading ward %d: %v", ward, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load ward"})
		return
	}

	now := time.Now()
	reports, err := db.GetReportsByWardSince(ctx, client, ward, now.AddDate(0, 0, -policyLookbackDays))
	if err != nil {
		log.Errorf("Generate policies: loading reports for ward %d: %v", ward, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load reports"})
		return
	}

	metrics := buildPolicyMetrics(w, reports)
	recs := intelligence.GeneratePolicies(metrics, now)

	if err := db.SavePolicyRecommendations(ctx, client, recs); err != nil {
		log.Errorf("Generate policies: saving for ward %d: %v", ward, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recs, "count": len(recs)})
}

// buildPolicyMetrics aggregates one ward's window into the rule engine's
// input.
func buildPolicyMetrics(w types.Ward, reports []types.WasteReport) intelligence.WardPolicyMetrics {
	var dumping int
	seen := make(map[types.WasteType]bool)
	var wasteTypes []types.WasteType
	maxSeverity := 0

	for _, r := range reports {
		if r.Classification.IsIllegalDumping {
			dumping++
		}
		if t := r.Classification.WasteType; t != "" && !seen[t] {
			seen[t] = true
			wasteTypes = append(wasteTypes, t)
		}
		if r.Classification.SeverityScore > maxSeverity {
			maxSeverity = r.Classification.SeverityScore
		}
	}

	severityClass := "low"
	switch {
	case maxSeverity >= 5:
		severityClass = "critical"
	case maxSeverity == 4:
		severityClass = "high"
	case maxSeverity == 3:
		severityClass = "medium"
	}

	return intelligence.WardPolicyMetrics{
		WardNumber:       w.WardNumber,
		IncidentCount:    len(reports),
		IllegalDumping:   dumping,
		OverflowRiskPct:  w.OverflowRisk.Probability,
		CleanlinessIndex: w.Cleanliness.Current,
		WasteTypes:       wasteTypes,
		SeverityClass:    severityClass,
		LookbackDays:     policyLookbackDays,
	}
}

// ListPolicies returns a ward's recommendations, newest first.
func ListPolicies(c *gin.Context, client *firestore.Client) {
	ward, ok := wardNumberParam(c)
	if !ok {
		return
	}

	recs, err := db.GetPoliciesByWard(c.Request.Context(), client, ward)
	if err != nil {
		log.Errorf("List policies: ward %d: %v", ward, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load recommendations"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recommendations": recs, "count": len(recs)})
}

type policyStatusRequest struct {
	Status   types.PolicyStatus `json:"status"`
	Actor    string             `json:"actor"`
	Notes    string             `json:"notes"`
	Progress *int               `json:"progress"`
}

// UpdatePolicy advances a recommendation through its review lifecycle and
// optionally records implementation progress.
func UpdatePolicy(c *gin.Context, client *firestore.Client) {
	policyID := c.Param("id")

	var req policyStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()

	if req.Status != "" {
		switch req.Status {
		case types.PolicyGenerated, types.PolicyUnderReview, types.PolicyApproved,
			types.PolicyRejected, types.PolicyImplemented, types.PolicyMonitored:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
			return
		}
		if err := db.UpdatePolicyStatus(ctx, client, policyID, req.Status, req.Actor, req.Notes); err != nil {
			log.Errorf("Update policy %s status: %v", policyID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
			return
		}
	}

	if req.Progress != nil {
		if err := db.UpdatePolicyProgress(ctx, client, policyID, *req.Progress); err != nil {
			log.Errorf("Update policy %s progress: %v", policyID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update progress"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"id": policyID})
}
