package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/kiranastores/attendance-backend-go/internal/config"
	"github.com/kiranastores/attendance-backend-go/internal/domain/attendance"
	"github.com/kiranastores/attendance-backend-go/internal/domain/branch"
	"github.com/kiranastores/attendance-backend-go/internal/domain/employee"
	"github.com/kiranastores/attendance-backend-go/internal/domain/request"
	"github.com/kiranastores/attendance-backend-go/internal/pkg/database"
	"github.com/kiranastores/attendance-backend-go/internal/pkg/facematch"
	"github.com/kiranastores/attendance-backend-go/internal/pkg/geo"
	"github.com/kiranastores/attendance-backend-go/internal/repository/postgresql"
	"github.com/kiranastores/attendance-backend-go/internal/service/file"
)

const (
	statusOpen       = "open"
	statusClosed     = "closed"
	statusAutoClosed = "auto_closed"
)

// ServiceImpl implements attendance.Service. The check-in path resolves the
// employee's session state once and dispatches on it, so every inconsistent
// combination of tracking flag and open records has an explicit branch.
type ServiceImpl struct {
	db             *database.DB
	attendanceRepo attendance.Repository
	employeeRepo   employee.Repository
	branchRepo     branch.Repository
	requestRepo    request.Repository
	fileService    file.Service
	faces          facematch.Client
	office         config.OfficeGeofenceConfig
	policy         config.PolicyConfig
	loc            *time.Location

	now func() time.Time
}

func NewService(
	db *database.DB,
	attendanceRepo attendance.Repository,
	employeeRepo employee.Repository,
	branchRepo branch.Repository,
	requestRepo request.Repository,
	fileService file.Service,
	faces facematch.Client,
	office config.OfficeGeofenceConfig,
	policy config.PolicyConfig,
	loc *time.Location,
) attendance.Service {
	return &ServiceImpl{
		db:             db,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		branchRepo:     branchRepo,
		requestRepo:    requestRepo,
		fileService:    fileService,
		faces:          faces,
		office:         office,
		policy:         policy,
		loc:            loc,
		now:            time.Now,
	}
}

func (s *ServiceImpl) localNow() time.Time {
	return s.now().In(s.loc)
}

func (s *ServiceImpl) withTx(ctx context.Context, fn func(context.Context) error) error {
	if s.db == nil {
		return fn(ctx)
	}
	return postgresql.WithTransaction(ctx, s.db, fn)
}

// resolveIdentity runs the face search and loads the matched employee.
// When the caller declared who they expect, a mismatch is rejected before
// any state is touched.
func (s *ServiceImpl) resolveIdentity(ctx context.Context, image []byte, expectedID *string) (employee.Employee, error) {
	match, err := s.faces.Search(ctx, image)
	if err != nil {
		if errors.Is(err, facematch.ErrNoMatch) {
			return employee.Employee{}, attendance.ErrFaceNotRecognized
		}
		return employee.Employee{}, fmt.Errorf("face search failed: %w", err)
	}

	if expectedID != nil && *expectedID != "" && *expectedID != match.EmployeeID {
		return employee.Employee{}, attendance.ErrIdentityMismatch
	}

	return s.employeeRepo.GetByID(ctx, match.EmployeeID)
}

// resolveFence picks the geofence for a check-in: the employee's assigned
// branch wins, then the branch named in the request, then the global office
// fence. Returns nil when no fence applies.
func (s *ServiceImpl) resolveFence(ctx context.Context, emp employee.Employee, requestBranchID *string) (*geo.Fence, error) {
	branchID := emp.BranchID
	if branchID == nil || *branchID == "" {
		branchID = requestBranchID
	}

	if branchID != nil && *branchID != "" {
		b, err := s.branchRepo.GetByID(ctx, *branchID)
		if err != nil {
			return nil, err
		}
		if b.HasGeofence() {
			return &geo.Fence{
				Latitude:     *b.Latitude,
				Longitude:    *b.Longitude,
				RadiusMeters: *b.RadiusMeters,
			}, nil
		}
		return nil, nil
	}

	if s.office.RadiusMeters > 0 {
		return &geo.Fence{
			Latitude:     s.office.Latitude,
			Longitude:    s.office.Longitude,
			RadiusMeters: s.office.RadiusMeters,
		}, nil
	}

	return nil, nil
}

// uploadPhoto stores a session photo best-effort: a storage failure is logged
// and the session proceeds without proof rather than failing the operation.
func (s *ServiceImpl) uploadPhoto(ctx context.Context, employeeID, date string, photo []byte, phase string) *string {
	url, err := s.fileService.UploadAttendancePhoto(ctx, employeeID, date, photo, phase)
	if err != nil {
		slog.Warn("attendance photo upload failed, continuing without proof",
			"employee_id", employeeID,
			"phase", phase,
			"error", err,
		)
		return nil
	}
	return &url
}

// CheckIn implements attendance.Service.
func (s *ServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.CheckInResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckInResponse{}, err
	}

	emp, err := s.resolveIdentity(ctx, req.Image, req.ExpectedEmployeeID)
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	if req.Type == attendance.TypeTravel && !emp.WorkMode.AllowsTravel() {
		return attendance.CheckInResponse{}, attendance.ErrUnauthorizedMode
	}

	if req.BranchID != nil && *req.BranchID != "" &&
		emp.BranchID != nil && *emp.BranchID != "" && *emp.BranchID != *req.BranchID {
		return attendance.CheckInResponse{}, attendance.ErrBranchMismatch
	}

	if req.Type != attendance.TypeKiosk {
		if req.Latitude == nil || req.Longitude == nil {
			return attendance.CheckInResponse{}, attendance.ErrMissingCoords
		}
		fence, err := s.resolveFence(ctx, emp, req.BranchID)
		if err != nil {
			return attendance.CheckInResponse{}, err
		}
		if fence != nil {
			result := geo.WithinFence(*req.Latitude, *req.Longitude, *fence)
			if !result.IsWithin {
				return attendance.CheckInResponse{}, &attendance.OutOfRangeError{
					DistanceMeters:      result.DistanceMeters,
					AllowedRadiusMeters: result.AllowedRadius,
				}
			}
		}
	}

	now := s.localNow()
	today := now.Format("2006-01-02")

	open, err := s.attendanceRepo.GetOpenSession(ctx, emp.ID)
	if err != nil {
		return attendance.CheckInResponse{}, fmt.Errorf("failed to load open session: %w", err)
	}

	switch attendance.ResolveState(emp.Tracking.IsTracking, open, today) {
	case attendance.StateTracking:
		return attendance.CheckInResponse{}, &attendance.AlreadyCheckedInError{CheckInTime: open.CheckInTime}

	case attendance.StateDormantOpen:
		// Today's session is still open with tracking stopped: restore it
		// instead of opening a second record.
		return s.restoreSession(ctx, emp, *open, req, now)

	case attendance.StateStaleOpen:
		// Forgotten checkout from a previous day. Close it silently and fall
		// through to a fresh check-in.
		if err := s.attendanceRepo.SetCheckOut(ctx, open.ID, now, nil, statusAutoClosed); err != nil {
			return attendance.CheckInResponse{}, fmt.Errorf("failed to close stale session: %w", err)
		}
		slog.Info("closed stale open session before check-in",
			"employee_id", emp.ID,
			"session_id", open.ID,
			"session_date", open.Date,
		)

	case attendance.StateGhostTracking:
		// Tracking flag set with no open record backing it. The fresh
		// check-in below rewrites the tracking state, which heals it.
		slog.Warn("tracking flag set without an open session",
			"employee_id", emp.ID,
		)
	}

	imageURL := s.uploadPhoto(ctx, emp.ID, today, req.Image, "checkin")

	record := attendance.Attendance{
		ID:               uuid.New().String(),
		EmployeeID:       emp.ID,
		Date:             today,
		Type:             req.Type,
		CheckInTime:      now,
		CheckInLatitude:  req.Latitude,
		CheckInLongitude: req.Longitude,
		CheckInImageURL:  imageURL,
		Status:           statusOpen,
	}

	err = s.withTx(ctx, func(ctx context.Context) error {
		created, err := s.attendanceRepo.Create(ctx, record)
		if err != nil {
			return fmt.Errorf("failed to create attendance record: %w", err)
		}
		record = created
		return s.employeeRepo.UpdateTracking(ctx, emp.ID, employee.TrackingState{
			IsTracking:        true,
			LastLatitude:      req.Latitude,
			LastLongitude:     req.Longitude,
			LastPingTime:      &now,
			TrackingStartTime: &now,
			IsInsideGeofence:  true,
		})
	})
	if err != nil {
		return attendance.CheckInResponse{}, err
	}

	return attendance.CheckInResponse{
		Attendance: attendance.ToResponse(record),
		Employee:   employeeSummary(emp),
		Tracking:   true,
	}, nil
}

// restoreSession resumes today's dormant open session during check-in.
func (s *ServiceImpl) restoreSession(ctx context.Context, emp employee.Employee, open attendance.Attendance, req attendance.CheckInRequest, now time.Time) (attendance.CheckInResponse, error) {
	tracking := emp.Tracking
	tracking.IsTracking = true
	tracking.LastPingTime = &now
	tracking.TrackingEndTime = nil
	if req.Latitude != nil && req.Longitude != nil {
		tracking.LastLatitude = req.Latitude
		tracking.LastLongitude = req.Longitude
	}
	if tracking.TrackingStartTime == nil {
		tracking.TrackingStartTime = &open.CheckInTime
	}

	if err := s.employeeRepo.UpdateTracking(ctx, emp.ID, tracking); err != nil {
		return attendance.CheckInResponse{}, err
	}

	slog.Info("restored dormant session on check-in",
		"employee_id", emp.ID,
		"session_id", open.ID,
	)

	return attendance.CheckInResponse{
		Attendance:      attendance.ToResponse(open),
		Employee:        employeeSummary(emp),
		Tracking:        true,
		RestoredSession: true,
	}, nil
}

// CheckOut implements attendance.Service.
func (s *ServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.CheckOutResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.CheckOutResponse{}, err
	}

	emp, err := s.resolveIdentity(ctx, req.Image, req.ExpectedEmployeeID)
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	open, err := s.attendanceRepo.GetOpenSession(ctx, emp.ID)
	if err != nil {
		return attendance.CheckOutResponse{}, fmt.Errorf("failed to load open session: %w", err)
	}
	if open == nil {
		return attendance.CheckOutResponse{}, attendance.ErrNoOpenSession
	}

	now := s.localNow()
	imageURL := s.uploadPhoto(ctx, emp.ID, open.Date, req.Image, "checkout")

	tracking := emp.Tracking
	tracking.IsTracking = false
	tracking.TrackingEndTime = &now

	err = s.withTx(ctx, func(ctx context.Context) error {
		if err := s.attendanceRepo.SetCheckOut(ctx, open.ID, now, imageURL, statusClosed); err != nil {
			return err
		}
		return s.employeeRepo.UpdateTracking(ctx, emp.ID, tracking)
	})
	if err != nil {
		return attendance.CheckOutResponse{}, err
	}

	open.CheckOutTime = &now
	open.CheckOutImageURL = imageURL
	open.Status = statusClosed

	return attendance.CheckOutResponse{
		Attendance: attendance.ToResponse(*open),
		Tracking:   false,
	}, nil
}

// ResumeSession implements attendance.Service. Unlike the implicit restore on
// check-in, the explicit resume enforces the grace window: it exists so the
// client can offer "continue session" right after an inactivity auto-stop.
func (s *ServiceImpl) ResumeSession(ctx context.Context, employeeID string) (attendance.StatusResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	now := s.localNow()
	today := now.Format("2006-01-02")

	open, err := s.attendanceRepo.GetOpenSession(ctx, emp.ID)
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to load open session: %w", err)
	}

	if attendance.ResolveState(emp.Tracking.IsTracking, open, today) != attendance.StateDormantOpen {
		return attendance.StatusResponse{}, attendance.ErrNotResumable
	}

	if emp.Tracking.LastPingTime != nil && now.Sub(*emp.Tracking.LastPingTime) > s.policy.ResumeWindow {
		return attendance.StatusResponse{}, attendance.ErrResumeWindowExpired
	}

	tracking := emp.Tracking
	tracking.IsTracking = true
	tracking.LastPingTime = &now
	tracking.TrackingEndTime = nil

	if err := s.employeeRepo.UpdateTracking(ctx, emp.ID, tracking); err != nil {
		return attendance.StatusResponse{}, err
	}

	return s.Status(ctx, employeeID)
}

// CloseAllActiveSessions implements attendance.Service. Admin recovery for a
// corrupted state with multiple open records.
func (s *ServiceImpl) CloseAllActiveSessions(ctx context.Context, employeeID string) (attendance.CloseAllResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.CloseAllResponse{}, err
	}

	now := s.localNow()

	var closed int64
	err = s.withTx(ctx, func(ctx context.Context) error {
		n, err := s.attendanceRepo.CloseAllOpen(ctx, emp.ID, now)
		if err != nil {
			return fmt.Errorf("failed to close open sessions: %w", err)
		}
		closed = n

		tracking := emp.Tracking
		tracking.IsTracking = false
		tracking.TrackingEndTime = &now
		return s.employeeRepo.UpdateTracking(ctx, emp.ID, tracking)
	})
	if err != nil {
		return attendance.CloseAllResponse{}, err
	}

	slog.Info("force-closed open sessions",
		"employee_id", emp.ID,
		"closed", closed,
	)

	return attendance.CloseAllResponse{ClosedSessions: closed}, nil
}

// ResetTracking implements attendance.Service. Clears the tracking state
// without touching attendance records.
func (s *ServiceImpl) ResetTracking(ctx context.Context, employeeID string) error {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return err
	}
	return s.employeeRepo.UpdateTracking(ctx, employeeID, employee.TrackingState{})
}

func employeeSummary(emp employee.Employee) attendance.EmployeeSummary {
	return attendance.EmployeeSummary{
		EmployeeID: emp.ID,
		Name:       emp.Name,
		Department: emp.Department,
	}
}
