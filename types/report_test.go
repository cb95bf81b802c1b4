package types

import (
	"testing"
	"time"
)

func TestAppendStatus(t *testing.T) {
	now := time.Now()
	var r WasteReport

	r.AppendStatus(StatusReported, now, "citizen-1", "")
	r.AppendStatus(StatusVerified, now.Add(time.Hour), "officer-1", "confirmed on site")

	if r.Status.Current != StatusVerified {
		t.Errorf("current = %v, want verified", r.Status.Current)
	}
	if len(r.Status.History) != 2 {
		t.Fatalf("history length = %d, want 2", len(r.Status.History))
	}
	if r.Status.History[0].Status != StatusReported || r.Status.History[1].Status != StatusVerified {
		t.Errorf("history order broken: %+v", r.Status.History)
	}
	if r.Status.History[1].UpdatedBy != "officer-1" {
		t.Errorf("updatedBy = %q, want officer-1", r.Status.History[1].UpdatedBy)
	}
}

func TestReportStatusTerminal(t *testing.T) {
	terminal := []ReportStatus{StatusResolved, StatusRejected}
	open := []ReportStatus{StatusReported, StatusVerified, StatusAssigned, StatusInProgress}

	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("%v.Terminal() = false, want true", s)
		}
	}
	for _, s := range open {
		if s.Terminal() {
			t.Errorf("%v.Terminal() = true, want false", s)
		}
	}
}

func TestResponseTimeMinutes(t *testing.T) {
	reported := time.Now()
	r := WasteReport{ReportedAt: reported}

	if got := r.ResponseTimeMinutes(); got != 0 {
		t.Errorf("unresolved response time = %v, want 0", got)
	}

	resolvedAt := reported.Add(90 * time.Minute)
	r.Resolution.ResolvedAt = &resolvedAt
	if got := r.ResponseTimeMinutes(); got != 90 {
		t.Errorf("response time = %v, want 90", got)
	}
}

func TestReportLocationAccessors(t *testing.T) {
	loc := ReportLocation{Coordinates: [2]float64{78.1198, 9.9252}}
	if loc.Longitude() != 78.1198 {
		t.Errorf("longitude = %v, want 78.1198 (first coordinate)", loc.Longitude())
	}
	if loc.Latitude() != 9.9252 {
		t.Errorf("latitude = %v, want 9.9252 (second coordinate)", loc.Latitude())
	}
}
