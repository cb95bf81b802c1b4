package types

import "time"

type AlertType string

const (
	AlertOverflowRisk   AlertType = "OVERFLOW_RISK"
	AlertIllegalDumping AlertType = "ILLEGAL_DUMPING"
)

type Urgency string

const (
	UrgencyLow      Urgency = "LOW"
	UrgencyMedium   Urgency = "MEDIUM"
	UrgencyHigh     Urgency = "HIGH"
	UrgencyCritical Urgency = "CRITICAL"
)

// Alert is ephemeral: regenerated on every scheduler pass or on-demand call,
// never persisted as a collection.
type Alert struct {
	ID              string    `json:"id"`
	Type            AlertType `json:"type"`
	Severity        Urgency   `json:"severity"`
	WardNumber      int       `json:"wardNumber"`
	Message         string    `json:"message"`
	HoursToOverflow float64   `json:"hoursToOverflow,omitempty"`
	IncidentCount   int       `json:"incidentCount,omitempty"`
	AssignedTruck   *Truck    `json:"assignedTruck,omitempty"`
	Actions         []string  `json:"actions,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

type TruckStatus string

const (
	TruckAvailable TruckStatus = "available"
	TruckAssigned  TruckStatus = "assigned"
	TruckActive    TruckStatus = "active"
)

type Truck struct {
	ID           string      `firestore:"-" json:"id"`
	Status       TruckStatus `firestore:"status" json:"status"`
	AssignedWard int         `firestore:"assignedWard,omitempty" json:"assignedWard,omitempty"`
}

// Hotspot is a geocoded location with a severity, the unit of route optimization.
type Hotspot struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Severity  int     `json:"severity"`
	Label     string  `json:"label,omitempty"`
}
