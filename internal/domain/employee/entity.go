package employee

import "time"

type WorkMode string

const (
	WorkModeOffice     WorkMode = "OFFICE"
	WorkModeFieldSales WorkMode = "FIELD_SALES"
	WorkModeRemote     WorkMode = "REMOTE"
)

// AllowsTravel reports whether the mode permits TRAVEL check-ins.
func (m WorkMode) AllowsTravel() bool {
	return m == WorkModeFieldSales || m == WorkModeRemote
}

// TrackingState is the live session state carried on the employee record.
// It is owned and mutated exclusively by the attendance engine and the
// inactivity monitor; identity fields are owned elsewhere.
type TrackingState struct {
	IsTracking           bool
	LastLatitude         *float64
	LastLongitude        *float64
	LastPingTime         *time.Time
	TrackingStartTime    *time.Time
	TrackingEndTime      *time.Time
	IsInsideGeofence     bool
	OutsideGeofenceCount int
}

type Employee struct {
	ID         string
	Name       string
	Department string
	BranchID   *string
	WorkMode   WorkMode
	Tracking   TrackingState
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
