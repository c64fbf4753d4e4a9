package attendance

import (
	"time"
)

// Type is the check-in mode requested by the client.
type Type string

const (
	TypeOffice Type = "OFFICE"
	TypeTravel Type = "TRAVEL"
	TypeKiosk  Type = "KIOSK"
)

// Valid reports whether t is a known check-in type.
func (t Type) Valid() bool {
	switch t {
	case TypeOffice, TypeTravel, TypeKiosk:
		return true
	}
	return false
}

// Attendance is one check-in/check-out session. A nil CheckOutTime means the
// session is open. Date is fixed from the check-in timestamp at creation and
// never recalculated, even when the checkout crosses midnight.
type Attendance struct {
	ID                string
	EmployeeID        string
	Date              string // YYYY-MM-DD, local to the deployment timezone
	Type              Type
	CheckInTime       time.Time
	CheckOutTime      *time.Time
	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckInImageURL   *string
	CheckOutImageURL  *string
	Status            string // free-text annotation, admin-editable
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO
	EmployeeName *string
}

// IsOpen reports whether the session has no checkout yet.
func (a Attendance) IsOpen() bool {
	return a.CheckOutTime == nil
}

// DurationMinutes returns the session length in minutes, using now for open
// sessions.
func (a Attendance) DurationMinutes(now time.Time) int {
	end := now
	if a.CheckOutTime != nil {
		end = *a.CheckOutTime
	}
	d := end.Sub(a.CheckInTime)
	if d < 0 {
		return 0
	}
	return int(d.Minutes())
}
