package attendance

import (
	"context"
	"time"
)

// Repository defines data access for attendance sessions. Records are never
// deleted, only closed.
type Repository interface {
	// Create inserts a new session record.
	Create(ctx context.Context, attendance Attendance) (Attendance, error)

	// GetOpenSession returns the employee's most recent open session across
	// all dates, or nil when none exists.
	GetOpenSession(ctx context.Context, employeeID string) (*Attendance, error)

	// GetOpenSessions returns every open session for the employee, oldest
	// first. Used by the corruption-recovery path.
	GetOpenSessions(ctx context.Context, employeeID string) ([]Attendance, error)

	// GetByEmployeeAndDate returns all of the employee's sessions for one
	// date, check-in ascending.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) ([]Attendance, error)

	// GetByEmployeeAndDateRange returns sessions between start and end dates
	// inclusive, check-in ascending.
	GetByEmployeeAndDateRange(ctx context.Context, employeeID string, startDate, endDate string) ([]Attendance, error)

	// SetCheckOut closes a session. imageURL may be nil (self-heal closures
	// carry no checkout proof).
	SetCheckOut(ctx context.Context, id string, at time.Time, imageURL *string, status string) error

	// CloseAllOpen closes every open session for the employee and returns the
	// number closed.
	CloseAllOpen(ctx context.Context, employeeID string, at time.Time) (int64, error)

	// GetStaleOpenSessions returns open sessions dated before the given date,
	// across all employees. Used by the midnight sweep.
	GetStaleOpenSessions(ctx context.Context, before string) ([]Attendance, error)

	// List returns sessions matching the filter for the admin portals.
	List(ctx context.Context, filter ListFilter) ([]Attendance, error)
}
