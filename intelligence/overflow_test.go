package intelligence

import (
	"testing"
	"time"

	"go-wastegrid/types"
)

func TestPredictOverflowLocal(t *testing.T) {
	tests := []struct {
		name      string
		in        LocalOverflowInput
		wantProb  float64
		wantHours float64
		wantUrg   types.Urgency
	}{
		{
			name:      "half load no severity",
			in:        LocalOverflowInput{WardNumber: 1, CurrentLoad: 50, BinCapacity: 100},
			wantProb:  50,
			wantHours: 19,
			wantUrg:   types.UrgencyMedium,
		},
		{
			name:      "saturated",
			in:        LocalOverflowInput{WardNumber: 2, CurrentLoad: 200, BinCapacity: 100},
			wantProb:  100,
			wantHours: 14,
			wantUrg:   types.UrgencyCritical,
		},
		{
			name:      "severity inflates ratio",
			in:        LocalOverflowInput{WardNumber: 3, CurrentLoad: 50, BinCapacity: 100, AvgSeverityFraction: 0.5},
			wantProb:  75,
			wantHours: 16.5,
			wantUrg:   types.UrgencyMedium,
		},
		{
			name:      "zero capacity falls back to 100",
			in:        LocalOverflowInput{WardNumber: 4, CurrentLoad: 30},
			wantProb:  30,
			wantHours: 21,
			wantUrg:   types.UrgencyLow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PredictOverflowLocal(tt.in)
			if got.Probability != tt.wantProb {
				t.Errorf("probability = %v, want %v", got.Probability, tt.wantProb)
			}
			if got.HoursToOverflow != tt.wantHours {
				t.Errorf("hours = %v, want %v", got.HoursToOverflow, tt.wantHours)
			}
			if got.Urgency != tt.wantUrg {
				t.Errorf("urgency = %v, want %v", got.Urgency, tt.wantUrg)
			}
			if got.HoursToOverflow < 4 {
				t.Errorf("hours = %v, below the 4-hour floor", got.HoursToOverflow)
			}
		})
	}
}

func TestUrgencyForProbability(t *testing.T) {
	tests := []struct {
		prob float64
		want types.Urgency
	}{
		{0, types.UrgencyLow},
		{40, types.UrgencyLow},
		{40.1, types.UrgencyMedium},
		{60, types.UrgencyMedium},
		{60.1, types.UrgencyHigh},
		{80, types.UrgencyHigh},
		{80.1, types.UrgencyCritical},
		{100, types.UrgencyCritical},
	}
	for _, tt := range tests {
		if got := UrgencyForProbability(tt.prob); got != tt.want {
			t.Errorf("UrgencyForProbability(%v) = %v, want %v", tt.prob, got, tt.want)
		}
	}
}

func TestRiskLevelForUrgency(t *testing.T) {
	tests := []struct {
		in   types.Urgency
		want types.OverflowLevel
	}{
		{types.UrgencyLow, types.OverflowLow},
		{types.UrgencyMedium, types.OverflowMedium},
		{types.UrgencyHigh, types.OverflowHigh},
		{types.UrgencyCritical, types.OverflowCritical},
	}
	for _, tt := range tests {
		if got := RiskLevelForUrgency(tt.in); got != tt.want {
			t.Errorf("RiskLevelForUrgency(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBuildPredictionInput(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	ward := types.Ward{
		WardNumber:     7,
		ActiveReports:  types.ActiveReports{Total: 12},
		Cleanliness:    types.CleanlinessIndex{Current: 64.5},
		Infrastructure: types.Infrastructure{BinCapacity: 250},
		Performance:    types.Performance{AverageResponseTime: 180},
	}
	reports := []types.WasteReport{
		reportAt(now.AddDate(0, 0, -1), 2), // low
		reportAt(now.AddDate(0, 0, -1), 3), // medium
		reportAt(now.AddDate(0, 0, -2), 5), // critical
		reportAt(now.AddDate(0, 0, -20), 4), // outside window
	}
	for i := range reports {
		reports[i].Location.WardNumber = 7
	}
	// A report from another ward never counts.
	other := reportAt(now, 5)
	other.Location.WardNumber = 8
	reports = append(reports, other)

	in := BuildPredictionInput(ward, reports, now)

	if in.WardNumber != 7 || in.ActiveReports != 12 || in.BinCapacity != 250 {
		t.Errorf("ward context not carried: %+v", in)
	}
	if in.SeverityDistribution.Low != 1 || in.SeverityDistribution.Medium != 1 || in.SeverityDistribution.Critical != 1 {
		t.Errorf("severity distribution = %+v", in.SeverityDistribution)
	}
	if in.SeverityDistribution.High != 0 {
		t.Errorf("high = %d, want 0 (report outside 7-day window)", in.SeverityDistribution.High)
	}
	if len(in.WeeklyTrend) != 7 {
		t.Errorf("trend has %d days, want 7", len(in.WeeklyTrend))
	}
	if in.WeeklyTrend["2026-03-09"] != 2 {
		t.Errorf("trend[2026-03-09] = %d, want 2", in.WeeklyTrend["2026-03-09"])
	}
	if in.WeeklyTrend["2026-03-05"] != 0 {
		t.Errorf("trend[2026-03-05] = %d, want 0 (quiet day zero-filled)", in.WeeklyTrend["2026-03-05"])
	}
}

func TestLocalInputForWard(t *testing.T) {
	now := time.Now()
	ward := types.Ward{
		WardNumber:     3,
		ActiveReports:  types.ActiveReports{Total: 40},
		Infrastructure: types.Infrastructure{BinCapacity: 80},
	}
	reports := []types.WasteReport{reportAt(now.AddDate(0, 0, -1), 5)}
	reports[0].Location.WardNumber = 3

	in := LocalInputForWard(ward, reports, now)
	if in.CurrentLoad != 40 {
		t.Errorf("currentLoad = %v, want the active report total", in.CurrentLoad)
	}
	if in.BinCapacity != 80 {
		t.Errorf("binCapacity = %v, want 80", in.BinCapacity)
	}
	if in.AvgSeverityFraction != 1.0 {
		t.Errorf("avgSeverityFraction = %v, want 1.0 for a single severity-5 report", in.AvgSeverityFraction)
	}
}
