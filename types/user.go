package types

type Role string

const (
	RoleCitizen     Role = "citizen"
	RoleWardOfficer Role = "ward-officer"
	RoleSupervisor  Role = "supervisor"
	RoleAdmin       Role = "admin"
	RoleEnforcement Role = "enforcement"
)

type CitizenMetrics struct {
	ReportsSubmitted   int     `firestore:"reportsSubmitted"`
	ReportsVerified    int     `firestore:"reportsVerified"`
	ParticipationScore float64 `firestore:"participationScore"` // 0-10, derived
}

type OfficerMetrics struct {
	TasksAssigned       int     `firestore:"tasksAssigned"`
	TasksCompleted      int     `firestore:"tasksCompleted"`
	Efficiency          float64 `firestore:"efficiency"`          // 0-100, derived
	AverageResponseTime float64 `firestore:"averageResponseTime"` // minutes
}

// User metrics marked derived are pure functions of the counters and are
// recomputed by the scheduler, never hand-edited.
type User struct {
	ID             string         `firestore:"-"`
	Name           string         `firestore:"name"`
	Role           Role           `firestore:"role"`
	WardNumber     int            `firestore:"wardNumber,omitempty"`
	CitizenMetrics CitizenMetrics `firestore:"citizenMetrics"`
	OfficerMetrics OfficerMetrics `firestore:"officerMetrics"`
}
