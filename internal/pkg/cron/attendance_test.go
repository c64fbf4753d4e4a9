package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranastores/attendance-backend-go/internal/domain/attendance"
	"github.com/kiranastores/attendance-backend-go/internal/domain/employee"
)

type sweepAttendanceRepo struct {
	attendance.Repository
	stale  []attendance.Attendance
	closed map[string]string
}

func (f *sweepAttendanceRepo) GetStaleOpenSessions(ctx context.Context, before string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range f.stale {
		if a.Date < before {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *sweepAttendanceRepo) SetCheckOut(ctx context.Context, id string, at time.Time, imageURL *string, status string) error {
	f.closed[id] = status
	return nil
}

type sweepEmployeeRepo struct {
	employee.Repository
	tracking []employee.Employee
	updated  map[string]employee.TrackingState
}

func (f *sweepEmployeeRepo) ListTracking(ctx context.Context) ([]employee.Employee, error) {
	return f.tracking, nil
}

func (f *sweepEmployeeRepo) UpdateTracking(ctx context.Context, id string, state employee.TrackingState) error {
	f.updated[id] = state
	return nil
}

func TestAttendanceSweep(t *testing.T) {
	now := time.Date(2025, 6, 3, 0, 5, 0, 0, time.UTC)
	yesterdayPing := now.Add(-8 * time.Hour)
	todayPing := now.Add(-2 * time.Minute)

	attendances := &sweepAttendanceRepo{
		stale: []attendance.Attendance{
			{ID: "old-1", EmployeeID: "emp-1", Date: "2025-06-02", Status: "open"},
			{ID: "current", EmployeeID: "emp-2", Date: "2025-06-03", Status: "open"},
		},
		closed: map[string]string{},
	}
	employees := &sweepEmployeeRepo{
		tracking: []employee.Employee{
			{ID: "emp-1", Tracking: employee.TrackingState{IsTracking: true, LastPingTime: &yesterdayPing}},
			{ID: "emp-2", Tracking: employee.TrackingState{IsTracking: true, LastPingTime: &todayPing}},
		},
		updated: map[string]employee.TrackingState{},
	}

	sweep := NewAttendanceSweep(attendances, employees, time.UTC)
	sweep.now = func() time.Time { return now }

	require.NoError(t, sweep.Run(context.Background()))

	assert.Equal(t, map[string]string{"old-1": "auto_closed"}, attendances.closed)

	require.Contains(t, employees.updated, "emp-1")
	assert.False(t, employees.updated["emp-1"].IsTracking)
	assert.NotContains(t, employees.updated, "emp-2", "a ping from today keeps tracking alive")
}
