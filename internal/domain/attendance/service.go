package attendance

import "context"

// Service is the attendance session lifecycle surface: the check-in/check-out
// state machine plus the liveness monitor.
type Service interface {
	CheckIn(ctx context.Context, req CheckInRequest) (CheckInResponse, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (CheckOutResponse, error)
	ResumeSession(ctx context.Context, employeeID string) (StatusResponse, error)
	CloseAllActiveSessions(ctx context.Context, employeeID string) (CloseAllResponse, error)
	ResetTracking(ctx context.Context, employeeID string) error
	Status(ctx context.Context, employeeID string) (StatusResponse, error)
	Ping(ctx context.Context, req PingRequest) (StatusResponse, error)
	List(ctx context.Context, filter ListFilter) ([]AttendanceResponse, error)
}
