package intelligence

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"go-wastegrid/types"
)

const (
	// OverflowAlertThreshold is the single probability cutoff for emitting an
	// overflow alert. Applied uniformly across scheduled and on-demand passes.
	OverflowAlertThreshold = 60.0

	illegalDumpingAlertMin = 1 // alert when flagged reports per ward exceed this
	emergencyHoursCutoff   = 12
)

// TruckAssigner hands out an available truck for a ward, or reports that none
// is free. Implementations must make the claim atomic: two concurrent calls
// may never return the same truck.
type TruckAssigner interface {
	Assign(wardNumber int) (*types.Truck, bool)
}

// GenerateAlerts runs both alert generators over every ward and concatenates
// the results. Alerts are advisory snapshots, recomputed each pass.
func GenerateAlerts(wards []types.Ward, reports []types.WasteReport, assigner TruckAssigner, now time.Time) []types.Alert {
	var alerts []types.Alert

	for _, ward := range wards {
		prediction := PredictOverflowLocal(LocalInputForWard(ward, reports, now))
		if prediction.Probability <= OverflowAlertThreshold {
			continue
		}

		alert := types.Alert{
			ID:         uuid.NewString(),
			Type:       types.AlertOverflowRisk,
			Severity:   prediction.Urgency,
			WardNumber: ward.WardNumber,
			Message: fmt.Sprintf("%s overflow risk (%.0f%% probability)",
				prediction.Urgency, prediction.Probability),
			HoursToOverflow: prediction.HoursToOverflow,
			Actions:         SuggestedActions(prediction),
			CreatedAt:       now,
		}
		// A full fleet never blocks the alert itself.
		if truck, ok := assigner.Assign(ward.WardNumber); ok {
			alert.AssignedTruck = truck
		}
		alerts = append(alerts, alert)
	}

	dumpingByWard := make(map[int]int)
	for _, r := range reports {
		if r.Classification.IsIllegalDumping {
			dumpingByWard[r.Location.WardNumber]++
		}
	}
	for _, ward := range wards {
		count := dumpingByWard[ward.WardNumber]
		if count <= illegalDumpingAlertMin {
			continue
		}
		alerts = append(alerts, types.Alert{
			ID:            uuid.NewString(),
			Type:          types.AlertIllegalDumping,
			Severity:      types.UrgencyHigh,
			WardNumber:    ward.WardNumber,
			Message:       fmt.Sprintf("Illegal dumping detected: %d incidents, enforcement action required", count),
			IncidentCount: count,
			CreatedAt:     now,
		})
	}

	return alerts
}

// SuggestedActions derives advisory annotations from the prediction
// thresholds. These never trigger state transitions on their own.
func SuggestedActions(p OverflowPrediction) []string {
	var actions []string
	if p.Probability > 80 {
		actions = append(actions, "DISPATCH_TRUCK_IMMEDIATE", "ALERT_WARD_OFFICE")
	}
	if p.Probability > 60 {
		actions = append(actions, "INCREASE_COLLECTION_FREQUENCY", "MONITOR_CLOSELY")
	}
	if p.HoursToOverflow < emergencyHoursCutoff {
		actions = append(actions, "EMERGENCY_PROTOCOL")
	}
	return actions
}

// MemoryTruckPool is an in-process TruckAssigner. Claims are serialized by a
// mutex so overlapping alert passes cannot double-assign a truck.
type MemoryTruckPool struct {
	mu     sync.Mutex
	trucks []types.Truck
}

func NewMemoryTruckPool(trucks []types.Truck) *MemoryTruckPool {
	pool := &MemoryTruckPool{trucks: make([]types.Truck, len(trucks))}
	copy(pool.trucks, trucks)
	return pool
}

func (p *MemoryTruckPool) Assign(wardNumber int) (*types.Truck, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := range p.trucks {
		if p.trucks[i].Status != types.TruckAvailable {
			continue
		}
		p.trucks[i].Status = types.TruckAssigned
		p.trucks[i].AssignedWard = wardNumber
		assigned := p.trucks[i]
		return &assigned, true
	}
	return nil, false
}

// Trucks returns a snapshot of the pool's current state.
func (p *MemoryTruckPool) Trucks() []types.Truck {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]types.Truck, len(p.trucks))
	copy(out, p.trucks)
	return out
}
