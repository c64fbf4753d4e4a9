package branch

import "context"

// Repository is the branch/geofence config store collaborator.
type Repository interface {
	GetByID(ctx context.Context, id string) (Branch, error)
}
