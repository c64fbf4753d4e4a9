package employee

import "context"

// Repository is the identity-store collaborator. The engine only reads
// employees and writes their tracking state; records are created by the
// employee-management service, not here.
type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)

	// UpdateTracking persists the tracking state value object for one employee.
	UpdateTracking(ctx context.Context, id string, state TrackingState) error

	// ListActive returns active employees, optionally narrowed to a branch.
	ListActive(ctx context.Context, branchID *string) ([]Employee, error)

	// ListTracking returns employees whose tracking flag is set. Used by the
	// midnight sweep.
	ListTracking(ctx context.Context) ([]Employee, error)
}
