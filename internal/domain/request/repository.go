package request

import "context"

// Repository is the request-store collaborator, read-only to the core.
type Repository interface {
	// GetByEmployeeAndDateRange returns the employee's requests of any status
	// whose covered dates overlap [startDate, endDate].
	GetByEmployeeAndDateRange(ctx context.Context, employeeID string, startDate, endDate string) ([]Request, error)

	// GetApprovedPermissions returns approved PERMISSION requests covering the
	// given date.
	GetApprovedPermissions(ctx context.Context, employeeID string, date string) ([]Request, error)
}
