package intelligence

import (
	"sync"
	"testing"
	"time"

	"go-wastegrid/types"
)

func wardWithLoad(number, load int) types.Ward {
	return types.Ward{
		WardNumber:     number,
		ActiveReports:  types.ActiveReports{Total: load},
		Infrastructure: types.Infrastructure{BinCapacity: 100},
	}
}

func TestGenerateAlertsThreshold(t *testing.T) {
	now := time.Now()
	pool := NewMemoryTruckPool(nil)

	// Probability equals load with capacity 100 and no reports.
	wards := []types.Ward{wardWithLoad(1, 61), wardWithLoad(2, 60), wardWithLoad(3, 10)}

	alerts := GenerateAlerts(wards, nil, pool, now)
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts, want 1 (only probability strictly above 60)", len(alerts))
	}
	if alerts[0].WardNumber != 1 || alerts[0].Type != types.AlertOverflowRisk {
		t.Errorf("unexpected alert: %+v", alerts[0])
	}
	if alerts[0].Severity != types.UrgencyHigh {
		t.Errorf("severity = %v, want HIGH at 61%%", alerts[0].Severity)
	}
}

func TestGenerateAlertsTruckAssignment(t *testing.T) {
	now := time.Now()
	pool := NewMemoryTruckPool([]types.Truck{{ID: "T-1", Status: types.TruckAvailable}})

	wards := []types.Ward{wardWithLoad(1, 90), wardWithLoad(2, 95)}
	alerts := GenerateAlerts(wards, nil, pool, now)

	if len(alerts) != 2 {
		t.Fatalf("got %d alerts, want 2", len(alerts))
	}

	var assigned int
	for _, a := range alerts {
		if a.AssignedTruck != nil {
			assigned++
		}
	}
	if assigned != 1 {
		t.Errorf("%d alerts carry a truck, want exactly 1 when the fleet has one", assigned)
	}
}

func TestGenerateAlertsIllegalDumping(t *testing.T) {
	now := time.Now()
	pool := NewMemoryTruckPool(nil)

	flagged := func(ward int) types.WasteReport {
		r := reportAt(now.AddDate(0, 0, -1), 3)
		r.Location.WardNumber = ward
		r.Classification.IsIllegalDumping = true
		return r
	}

	wards := []types.Ward{wardWithLoad(1, 0), wardWithLoad(2, 0)}
	reports := []types.WasteReport{flagged(1), flagged(1), flagged(2)}

	alerts := GenerateAlerts(wards, reports, pool, now)
	if len(alerts) != 1 {
		t.Fatalf("got %d alerts, want 1 (single incident wards stay quiet)", len(alerts))
	}
	a := alerts[0]
	if a.Type != types.AlertIllegalDumping || a.WardNumber != 1 || a.IncidentCount != 2 {
		t.Errorf("unexpected alert: %+v", a)
	}
	if a.Severity != types.UrgencyHigh {
		t.Errorf("severity = %v, want HIGH", a.Severity)
	}
}

func TestSuggestedActions(t *testing.T) {
	critical := SuggestedActions(OverflowPrediction{Probability: 85, HoursToOverflow: 10})
	want := []string{"DISPATCH_TRUCK_IMMEDIATE", "ALERT_WARD_OFFICE", "INCREASE_COLLECTION_FREQUENCY", "MONITOR_CLOSELY", "EMERGENCY_PROTOCOL"}
	if len(critical) != len(want) {
		t.Fatalf("got %v, want %v", critical, want)
	}
	for i := range want {
		if critical[i] != want[i] {
			t.Errorf("action[%d] = %q, want %q", i, critical[i], want[i])
		}
	}

	moderate := SuggestedActions(OverflowPrediction{Probability: 65, HoursToOverflow: 20})
	if len(moderate) != 2 {
		t.Errorf("got %v, want only the monitoring pair", moderate)
	}
}

func TestMemoryTruckPoolNoDoubleAssign(t *testing.T) {
	trucks := make([]types.Truck, 5)
	for i := range trucks {
		trucks[i] = types.Truck{ID: string(rune('A' + i)), Status: types.TruckAvailable}
	}
	pool := NewMemoryTruckPool(trucks)

	const claimers = 20
	results := make(chan *types.Truck, claimers)
	var wg sync.WaitGroup
	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func(ward int) {
			defer wg.Done()
			if truck, ok := pool.Assign(ward); ok {
				results <- truck
			}
		}(i + 1)
	}
	wg.Wait()
	close(results)

	seen := make(map[string]bool)
	for truck := range results {
		if seen[truck.ID] {
			t.Errorf("truck %s assigned twice", truck.ID)
		}
		seen[truck.ID] = true
	}
	if len(seen) != 5 {
		t.Errorf("%d trucks claimed, want all 5 and no more", len(seen))
	}

	for _, truck := range pool.Trucks() {
		if truck.Status != types.TruckAssigned {
			t.Errorf("truck %s status = %v, want assigned", truck.ID, truck.Status)
		}
	}
}
