package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kiranastores/attendance-backend-go/internal/domain/attendance"
	"github.com/kiranastores/attendance-backend-go/internal/domain/employee"
)

// AttendanceSweep is the midnight job that repairs leftover state: sessions
// still open from previous days get closed without checkout proof, and
// tracking flags whose last ping predates today get cleared. The check-in
// path heals these lazily too; the sweep keeps reports from showing
// multi-day open sessions in the meantime.
type AttendanceSweep struct {
	attendanceRepo attendance.Repository
	employeeRepo   employee.Repository
	loc            *time.Location

	now func() time.Time
}

func NewAttendanceSweep(attendanceRepo attendance.Repository, employeeRepo employee.Repository, loc *time.Location) *AttendanceSweep {
	return &AttendanceSweep{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		loc:            loc,
		now:            time.Now,
	}
}

// Run closes stale open sessions and clears stale tracking flags.
func (s *AttendanceSweep) Run(ctx context.Context) error {
	now := s.now().In(s.loc)
	today := now.Format("2006-01-02")

	stale, err := s.attendanceRepo.GetStaleOpenSessions(ctx, today)
	if err != nil {
		return fmt.Errorf("failed to load stale sessions: %w", err)
	}

	closed := 0
	for _, rec := range stale {
		if err := s.attendanceRepo.SetCheckOut(ctx, rec.ID, now, nil, "auto_closed"); err != nil {
			slog.Error("failed to close stale session",
				"session_id", rec.ID,
				"employee_id", rec.EmployeeID,
				"error", err,
			)
			continue
		}
		closed++
	}

	tracking, err := s.employeeRepo.ListTracking(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tracking employees: %w", err)
	}

	cleared := 0
	for _, emp := range tracking {
		last := emp.Tracking.LastPingTime
		if last != nil && last.In(s.loc).Format("2006-01-02") == today {
			continue
		}
		state := emp.Tracking
		state.IsTracking = false
		state.TrackingEndTime = last
		if err := s.employeeRepo.UpdateTracking(ctx, emp.ID, state); err != nil {
			slog.Error("failed to clear stale tracking flag",
				"employee_id", emp.ID,
				"error", err,
			)
			continue
		}
		cleared++
	}

	if closed > 0 || cleared > 0 {
		slog.Info("attendance sweep finished",
			"sessions_closed", closed,
			"tracking_cleared", cleared,
		)
	}

	return nil
}
