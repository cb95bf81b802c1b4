package intelligence

import (
	"math"
	"testing"
	"time"

	"go-wastegrid/types"
)

func reportAt(at time.Time, severity int) types.WasteReport {
	r := types.WasteReport{
		Location:       types.ReportLocation{WardNumber: 1},
		Classification: types.Classification{SeverityScore: severity},
		ReportedAt:     at,
	}
	r.AppendStatus(types.StatusReported, at, "", "")
	return r
}

func resolvedReport(at time.Time, severity int, responseMinutes float64) types.WasteReport {
	r := reportAt(at, severity)
	resolvedAt := at.Add(time.Duration(responseMinutes * float64(time.Minute)))
	r.AppendStatus(types.StatusResolved, resolvedAt, "officer", "")
	r.Resolution.ResolvedAt = &resolvedAt
	return r
}

func TestComputeCleanlinessNoReports(t *testing.T) {
	result := ComputeCleanliness(nil, time.Now())
	if result.Score != 100 {
		t.Errorf("score = %v, want 100 for a ward with no reports", result.Score)
	}
}

func TestComputeCleanlinessIgnoresReportsOutsideWindow(t *testing.T) {
	now := time.Now()
	old := []types.WasteReport{reportAt(now.AddDate(0, 0, -45), 5)}

	result := ComputeCleanliness(old, now)
	if result.Score != 100 {
		t.Errorf("score = %v, want 100 when all reports predate the window", result.Score)
	}
}

func TestComputeCleanlinessSingleUnresolved(t *testing.T) {
	now := time.Now()
	reports := []types.WasteReport{reportAt(now.AddDate(0, 0, -1), 2)}

	result := ComputeCleanliness(reports, now)

	// freq = 100 - (1/30)*5, speed = 0 (nothing resolved), severity = 70, rate = 0
	wantFreq := 100 - (1.0/30.0)*5
	want := math.Round((wantFreq*0.25+70*0.25)*10) / 10
	if result.Score != want {
		t.Errorf("score = %v, want %v", result.Score, want)
	}
	if result.Factors.ResolutionSpeed != 0 {
		t.Errorf("resolutionSpeed = %v, want 0 with no resolved reports", result.Factors.ResolutionSpeed)
	}
	if result.Factors.ResolutionRate != 0 {
		t.Errorf("resolutionRate = %v, want 0", result.Factors.ResolutionRate)
	}
}

func TestComputeCleanlinessResolvedReport(t *testing.T) {
	now := time.Now()
	reports := []types.WasteReport{resolvedReport(now.AddDate(0, 0, -2), 1, 100)}

	result := ComputeCleanliness(reports, now)

	if result.Factors.ResolutionSpeed != 50 {
		t.Errorf("resolutionSpeed = %v, want 50 for a 100-minute response", result.Factors.ResolutionSpeed)
	}
	if result.Factors.ResolutionRate != 100 {
		t.Errorf("resolutionRate = %v, want 100", result.Factors.ResolutionRate)
	}
	if result.Factors.SeverityFactor != 85 {
		t.Errorf("severityFactor = %v, want 85 for severity 1", result.Factors.SeverityFactor)
	}
}

func TestComputeCleanlinessBounds(t *testing.T) {
	now := time.Now()

	// Heavy load: 300 critical unresolved reports.
	var reports []types.WasteReport
	for i := 0; i < 300; i++ {
		reports = append(reports, reportAt(now.AddDate(0, 0, -(i%28)), 5))
	}

	result := ComputeCleanliness(reports, now)
	if result.Score < 0 || result.Score > 100 {
		t.Errorf("score = %v, out of [0,100]", result.Score)
	}
	for _, f := range []float64{
		result.Factors.ReportFrequency,
		result.Factors.ResolutionSpeed,
		result.Factors.SeverityFactor,
		result.Factors.ResolutionRate,
	} {
		if f < 0 || f > 100 {
			t.Errorf("factor = %v, out of [0,100]", f)
		}
	}
}

func TestComputeCleanlinessIdempotent(t *testing.T) {
	now := time.Now()
	reports := []types.WasteReport{
		reportAt(now.AddDate(0, 0, -3), 3),
		resolvedReport(now.AddDate(0, 0, -5), 4, 240),
	}

	first := ComputeCleanliness(reports, now)
	second := ComputeCleanliness(reports, now)
	if first != second {
		t.Errorf("recompute changed result: %+v vs %+v", first, second)
	}
}
