package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kiranastores/attendance-backend-go/internal/domain/attendance"
	"github.com/kiranastores/attendance-backend-go/internal/domain/employee"
	"github.com/kiranastores/attendance-backend-go/internal/pkg/geo"
)

// Status implements attendance.Service. It is also where the inactivity
// monitor runs: tracking with no ping for longer than the auto-stop threshold
// is stopped here, lazily, the next time anyone asks.
func (s *ServiceImpl) Status(ctx context.Context, employeeID string) (attendance.StatusResponse, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	now := s.localNow()
	today := now.Format("2006-01-02")

	autoCheckedOut, err := s.applyAutoStop(ctx, &emp, now)
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	open, err := s.attendanceRepo.GetOpenSession(ctx, emp.ID)
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to load open session: %w", err)
	}

	// Sessions left open across midnight are not "today's work"; the check-in
	// path and the midnight sweep close them.
	hasOpenToday := open != nil && open.Date == today

	canResume := !emp.Tracking.IsTracking && hasOpenToday && s.withinResumeWindow(emp.Tracking, now)

	todaySessions, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, emp.ID, today)
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to load today's sessions: %w", err)
	}

	attendanceMinutes := 0
	for _, a := range todaySessions {
		attendanceMinutes += a.DurationMinutes(now)
	}

	permissions, err := s.requestRepo.GetApprovedPermissions(ctx, emp.ID, today)
	if err != nil {
		return attendance.StatusResponse{}, fmt.Errorf("failed to load permissions: %w", err)
	}
	permissionMinutes := 0
	for _, p := range permissions {
		permissionMinutes += p.PermissionMinutes()
	}

	block := attendance.StatusBlock{
		IsTracking:                emp.Tracking.IsTracking,
		AutoCheckedOut:            autoCheckedOut,
		CanResume:                 canResume,
		HasOpenSession:            hasOpenToday,
		CanCheckIn:                !emp.Tracking.IsTracking && !hasOpenToday,
		CanCheckOut:               hasOpenToday,
		AttendanceDurationMinutes: attendanceMinutes,
		PermissionDurationMinutes: permissionMinutes,
		TotalWorkDurationMinutes:  attendanceMinutes + permissionMinutes,
		TodayAttendance:           toResponses(todaySessions),
	}
	if hasOpenToday {
		resp := attendance.ToResponse(*open)
		block.OpenSession = &resp
	}

	return attendance.StatusResponse{
		Employee: employeeSummary(emp),
		Status:   block,
	}, nil
}

// applyAutoStop stops tracking when the last ping is older than the auto-stop
// threshold. The last ping time is preserved so the resume window can still
// be measured from it. Mutates emp in place on stop.
func (s *ServiceImpl) applyAutoStop(ctx context.Context, emp *employee.Employee, now time.Time) (bool, error) {
	if !emp.Tracking.IsTracking {
		return false, nil
	}
	last := emp.Tracking.LastPingTime
	if last == nil || now.Sub(*last) <= s.policy.AutoStopAfter {
		return false, nil
	}

	tracking := emp.Tracking
	tracking.IsTracking = false
	tracking.TrackingEndTime = last

	if err := s.employeeRepo.UpdateTracking(ctx, emp.ID, tracking); err != nil {
		return false, fmt.Errorf("failed to stop inactive tracking: %w", err)
	}
	emp.Tracking = tracking

	slog.Info("stopped tracking after inactivity",
		"employee_id", emp.ID,
		"last_ping", last.Format(time.RFC3339),
	)

	return true, nil
}

func (s *ServiceImpl) withinResumeWindow(tracking employee.TrackingState, now time.Time) bool {
	if tracking.LastPingTime == nil {
		return true
	}
	return now.Sub(*tracking.LastPingTime) <= s.policy.ResumeWindow
}

// Ping implements attendance.Service. Location heartbeats only apply while
// tracking; a ping from a stopped client just returns the current status.
func (s *ServiceImpl) Ping(ctx context.Context, req attendance.PingRequest) (attendance.StatusResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.StatusResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return attendance.StatusResponse{}, err
	}

	if !emp.Tracking.IsTracking {
		return s.Status(ctx, req.EmployeeID)
	}

	now := s.localNow()

	tracking := emp.Tracking
	tracking.LastLatitude = &req.Latitude
	tracking.LastLongitude = &req.Longitude
	tracking.LastPingTime = &now

	fence, err := s.resolveFence(ctx, emp, nil)
	if err != nil {
		return attendance.StatusResponse{}, err
	}
	if fence != nil {
		result := geo.WithinFence(req.Latitude, req.Longitude, *fence)
		tracking.IsInsideGeofence = result.IsWithin
		if !result.IsWithin {
			tracking.OutsideGeofenceCount++
			slog.Warn("tracked employee pinged outside geofence",
				"employee_id", emp.ID,
				"distance_meters", result.DistanceMeters,
				"outside_count", tracking.OutsideGeofenceCount,
			)
		}
	}

	if err := s.employeeRepo.UpdateTracking(ctx, emp.ID, tracking); err != nil {
		return attendance.StatusResponse{}, err
	}

	return s.Status(ctx, req.EmployeeID)
}

// List implements attendance.Service.
func (s *ServiceImpl) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.AttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	records, err := s.attendanceRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	return toResponses(records), nil
}

func toResponses(records []attendance.Attendance) []attendance.AttendanceResponse {
	responses := make([]attendance.AttendanceResponse, 0, len(records))
	for _, a := range records {
		responses = append(responses, attendance.ToResponse(a))
	}
	return responses
}
