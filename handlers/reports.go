package handlers

import (
	"context"
	"net/http"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"go-wastegrid/db"
	"go-wastegrid/genai"
	"go-wastegrid/geocode"
	"go-wastegrid/types"
)

type createReportRequest struct {
	Longitude   *float64 `json:"longitude"`
	Latitude    *float64 `json:"latitude"`
	Address     string   `json:"address"`
	WardNumber  int      `json:"wardNumber"`
	ReporterID  string   `json:"reporterId"`
	ImageBase64 string   `json:"imageBase64"`
}

// CreateReport handles citizen report intake. Coordinates may come directly
// or be resolved from an address; an attached photo is classified before the
// document is written so the report lands with a severity already set.
func CreateReport(c *gin.Context, client *firestore.Client, ai *genai.Client) {
	var req createReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.WardNumber < 1 || req.WardNumber > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "wardNumber must be between 1 and 100"})
		return
	}

	var lon, lat float64
	switch {
	case req.Longitude != nil && req.Latitude != nil:
		lon, lat = *req.Longitude, *req.Latitude
		if lon < -180 || lon > 180 || lat < -90 || lat > 90 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates out of range"})
			return
		}
	case req.Address != "":
		var err error
		lon, lat, err = geocode.ResolveAddress(c.Request.Context(), req.Address)
		if err != nil {
			log.Warnf("Geocoding intake address: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "address could not be resolved"})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "coordinates or address required"})
		return
	}

	now := time.Now()
	report := types.WasteReport{
		Location: types.ReportLocation{
			Coordinates: [2]float64{lon, lat},
			WardNumber:  req.WardNumber,
			Address:     req.Address,
		},
		ReporterID: req.ReporterID,
		ReportedAt: now,
	}
	report.AppendStatus(types.StatusReported, now, req.ReporterID, "")
	fillIntakeAddress(c.Request.Context(), &report.Location)

	// Classification is best effort: a provider outage still accepts the
	// report, unclassified.
	report.Classification = classifyIntakeImage(c, ai, req.ImageBase64, req.WardNumber)

	id, err := db.CreateReport(c.Request.Context(), client, report)
	if err != nil {
		log.Errorf("Creating report: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create report"})
		return
	}

	report.ID = id
	c.JSON(http.StatusCreated, report)
}

var reverseGeocode = geocode.ReverseGeocode

// fillIntakeAddress backfills a readable address on coordinate-only
// submissions. Best effort: a geocoder outage leaves the address empty.
func fillIntakeAddress(ctx context.Context, loc *types.ReportLocation) {
	if loc.Address != "" {
		return
	}
	addr, err := reverseGeocode(ctx, loc.Latitude(), loc.Longitude())
	if err != nil {
		log.Debugf("Reverse geocoding intake location: %v", err)
		return
	}
	loc.Address = addr
}

func classifyIntakeImage(c *gin.Context, ai *genai.Client, imageBase64 string, wardNumber int) types.Classification {
	fallback := types.Classification{WasteType: types.Unclassified, SeverityScore: 3}

	if imageBase64 == "" || ai == nil || !ai.Enabled() {
		return fallback
	}

	result, err := ai.ClassifyWaste(c.Request.Context(), imageBase64, wardNumber)
	if err != nil {
		log.Warnf("Classifying intake image: %v", err)
		return fallback
	}

	return types.Classification{
		WasteType:                types.WasteType(result.WasteType),
		SeverityScore:            result.SeverityScore,
		EstimatedVolume:          result.EstimatedVolume,
		RiskLevel:                result.RiskLevel,
		IsIllegalDumping:         result.IsIllegalDumping,
		EnvironmentalHazardLevel: result.EnvironmentalHazardLevel,
		AIConfidence:             result.Confidence,
	}
}

type updateStatusRequest struct {
	Status types.ReportStatus `json:"status"`
	Actor  string             `json:"actor"`
	Notes  string             `json:"notes"`
}

// UpdateReportStatus appends a status transition to a report's history.
func UpdateReportStatus(c *gin.Context, client *firestore.Client) {
	reportID := c.Param("id")

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch req.Status {
	case types.StatusReported, types.StatusVerified, types.StatusAssigned,
		types.StatusInProgress, types.StatusResolved, types.StatusRejected:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	err := db.AppendReportStatus(c.Request.Context(), client, reportID, req.Status, req.Actor, req.Notes, time.Now())
	if err != nil {
		log.Errorf("Updating report %s status: %v", reportID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": reportID, "status": req.Status})
}
