package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranastores/attendance-backend-go/internal/domain/attendance"
	"github.com/kiranastores/attendance-backend-go/internal/domain/employee"
	"github.com/kiranastores/attendance-backend-go/internal/domain/request"
	"github.com/kiranastores/attendance-backend-go/internal/service/status"
)

// ==================== FAKES ====================

type fakeAttendanceRepo struct {
	sessions []attendance.Attendance
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	return a, nil
}

func (f *fakeAttendanceRepo) GetOpenSession(ctx context.Context, employeeID string) (*attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) GetOpenSessions(ctx context.Context, employeeID string) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date string) ([]attendance.Attendance, error) {
	return f.GetByEmployeeAndDateRange(ctx, employeeID, date, date)
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDateRange(ctx context.Context, employeeID string, startDate, endDate string) ([]attendance.Attendance, error) {
	var out []attendance.Attendance
	for _, a := range f.sessions {
		if a.EmployeeID == employeeID && a.Date >= startDate && a.Date <= endDate {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) SetCheckOut(ctx context.Context, id string, at time.Time, imageURL *string, status string) error {
	return nil
}

func (f *fakeAttendanceRepo) CloseAllOpen(ctx context.Context, employeeID string, at time.Time) (int64, error) {
	return 0, nil
}

func (f *fakeAttendanceRepo) GetStaleOpenSessions(ctx context.Context, before string) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) List(ctx context.Context, filter attendance.ListFilter) ([]attendance.Attendance, error) {
	return nil, nil
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) UpdateTracking(ctx context.Context, id string, state employee.TrackingState) error {
	return nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context, branchID *string) ([]employee.Employee, error) {
	return f.employees, nil
}

func (f *fakeEmployeeRepo) ListTracking(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

type fakeRequestRepo struct {
	requests []request.Request
}

func (f *fakeRequestRepo) GetByEmployeeAndDateRange(ctx context.Context, employeeID string, startDate, endDate string) ([]request.Request, error) {
	var out []request.Request
	for _, r := range f.requests {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) GetApprovedPermissions(ctx context.Context, employeeID string, date string) ([]request.Request, error) {
	return nil, nil
}

type fakeHolidayRepo struct {
	holidays map[string]string
}

func (f *fakeHolidayRepo) GetHolidayName(ctx context.Context, date string) (string, error) {
	return f.holidays[date], nil
}

func (f *fakeHolidayRepo) GetByDateRange(ctx context.Context, startDate, endDate string) (map[string]string, error) {
	out := make(map[string]string)
	for d, n := range f.holidays {
		if d >= startDate && d <= endDate {
			out[d] = n
		}
	}
	return out, nil
}

// ==================== HARNESS ====================

func testPolicy() status.Policy {
	return status.Policy{
		WorkStartMinutes:       9 * 60,
		WorkEndMinutes:         18 * 60,
		LateGraceMinutes:       5,
		EarlyOutGraceMinutes:   15,
		HalfDayInBeforeMinutes: 13 * 60,
		HalfDayOutAfterMinutes: 13 * 60,
		WeekOff:                time.Sunday,
	}
}

func newService(attendances *fakeAttendanceRepo, employees *fakeEmployeeRepo, requests *fakeRequestRepo, holidays *fakeHolidayRepo) *ServiceImpl {
	return NewService(attendances, employees, requests, holidays, testPolicy(), time.UTC)
}

func session(employeeID, date string, inHour, inMin, outHour, outMin int) attendance.Attendance {
	d, _ := time.Parse("2006-01-02", date)
	in := d.Add(time.Duration(inHour)*time.Hour + time.Duration(inMin)*time.Minute)
	out := d.Add(time.Duration(outHour)*time.Hour + time.Duration(outMin)*time.Minute)
	return attendance.Attendance{
		EmployeeID:   employeeID,
		Date:         date,
		Type:         attendance.TypeOffice,
		CheckInTime:  in,
		CheckOutTime: &out,
		Status:       "closed",
	}
}

// ==================== TESTS ====================

func TestRangeReportStats(t *testing.T) {
	// Mon 2025-06-02 worked, Tue on approved leave, Wed no signals.
	attendances := &fakeAttendanceRepo{sessions: []attendance.Attendance{
		session("emp-1", "2025-06-02", 9, 0, 18, 0),
	}}
	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-1", Name: "Ravi Kumar", Department: "Operations"},
	}}
	requests := &fakeRequestRepo{requests: []request.Request{
		{
			EmployeeID: "emp-1",
			Type:       request.TypeLeave,
			Status:     request.StatusApproved,
			Data:       request.Payload{LeaveType: "Sick Leave", Date: "2025-06-03"},
		},
	}}

	svc := newService(attendances, employees, requests, &fakeHolidayRepo{})

	report, err := svc.RangeReport(context.Background(), RangeRequest{
		StartDate: "2025-06-02",
		EndDate:   "2025-06-04",
	})
	require.NoError(t, err)
	require.Len(t, report.Employees, 1)

	got := report.Employees[0]
	assert.Equal(t, "emp-1", got.Employee.EmployeeID)
	assert.Equal(t, Stats{Present: 1, Leave: 1, Absent: 1, TotalDays: 3}, got.Stats)

	require.Len(t, got.DailyBreakdown, 3)
	assert.Equal(t, "Present", got.DailyBreakdown[0].Status.Label)
	assert.Equal(t, "Sick Leave", got.DailyBreakdown[1].Status.Label)
	assert.Equal(t, "Absent", got.DailyBreakdown[2].Status.Label)
}

func TestRangeReportCompositeDayCountsEverywhere(t *testing.T) {
	// Late in and early out on the same day.
	attendances := &fakeAttendanceRepo{sessions: []attendance.Attendance{
		session("emp-1", "2025-06-02", 9, 30, 16, 0),
	}}
	employees := &fakeEmployeeRepo{employees: []employee.Employee{{ID: "emp-1", Name: "Ravi Kumar"}}}

	svc := newService(attendances, employees, &fakeRequestRepo{}, &fakeHolidayRepo{})

	report, err := svc.RangeReport(context.Background(), RangeRequest{
		StartDate: "2025-06-02",
		EndDate:   "2025-06-02",
	})
	require.NoError(t, err)

	stats := report.Employees[0].Stats
	assert.Equal(t, 1, stats.Present)
	assert.Equal(t, 1, stats.LateIn)
	assert.Equal(t, 1, stats.EarlyOut)
	assert.Equal(t, 1, stats.TotalDays)
}

func TestRangeReportWeekOffAndHoliday(t *testing.T) {
	employees := &fakeEmployeeRepo{employees: []employee.Employee{{ID: "emp-1", Name: "Ravi Kumar"}}}
	holidays := &fakeHolidayRepo{holidays: map[string]string{"2025-06-06": "Founders Day"}}

	svc := newService(&fakeAttendanceRepo{}, employees, &fakeRequestRepo{}, holidays)

	// Fri 2025-06-06 holiday, Sat absent, Sun week off.
	report, err := svc.RangeReport(context.Background(), RangeRequest{
		StartDate: "2025-06-06",
		EndDate:   "2025-06-08",
	})
	require.NoError(t, err)

	got := report.Employees[0]
	assert.Equal(t, Stats{Holiday: 1, Absent: 1, WeekOff: 1, TotalDays: 3}, got.Stats)
	assert.Equal(t, "Founders Day", got.DailyBreakdown[0].Status.Label)
	assert.Equal(t, "Week off", got.DailyBreakdown[2].Status.Label)
}

func TestRangeReportMultipleSessionsReduceToOneDay(t *testing.T) {
	// Split shift: the day reduces to first in, last out.
	morning := session("emp-1", "2025-06-02", 9, 0, 12, 0)
	evening := session("emp-1", "2025-06-02", 14, 0, 18, 0)
	attendances := &fakeAttendanceRepo{sessions: []attendance.Attendance{evening, morning}}
	employees := &fakeEmployeeRepo{employees: []employee.Employee{{ID: "emp-1", Name: "Ravi Kumar"}}}

	svc := newService(attendances, employees, &fakeRequestRepo{}, &fakeHolidayRepo{})

	report, err := svc.RangeReport(context.Background(), RangeRequest{
		StartDate: "2025-06-02",
		EndDate:   "2025-06-02",
	})
	require.NoError(t, err)

	day := report.Employees[0].DailyBreakdown[0].Status
	require.NotNil(t, day.Times.In)
	require.NotNil(t, day.Times.Out)
	assert.Equal(t, "09:00", *day.Times.In)
	assert.Equal(t, "18:00", *day.Times.Out)
	assert.Equal(t, "Present", day.Label)
}

func TestRangeReportRejectsInvertedRange(t *testing.T) {
	svc := newService(&fakeAttendanceRepo{}, &fakeEmployeeRepo{}, &fakeRequestRepo{}, &fakeHolidayRepo{})

	_, err := svc.RangeReport(context.Background(), RangeRequest{
		StartDate: "2025-06-05",
		EndDate:   "2025-06-02",
	})
	assert.Error(t, err)
}

func TestDailyReportCoversAllEmployees(t *testing.T) {
	attendances := &fakeAttendanceRepo{sessions: []attendance.Attendance{
		session("emp-1", "2025-06-02", 9, 0, 18, 0),
	}}
	employees := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: "emp-1", Name: "Ravi Kumar"},
		{ID: "emp-2", Name: "Anita Desai"},
	}}

	svc := newService(attendances, employees, &fakeRequestRepo{}, &fakeHolidayRepo{})

	report, err := svc.DailyReport(context.Background(), "2025-06-02", nil)
	require.NoError(t, err)
	require.Len(t, report.Entries, 2)

	byID := map[string]EmployeeDayEntry{}
	for _, e := range report.Entries {
		byID[e.Employee.EmployeeID] = e
	}
	assert.Equal(t, "Present", byID["emp-1"].Status.Label)
	assert.Equal(t, "Absent", byID["emp-2"].Status.Label)
}

func TestCalendar(t *testing.T) {
	attendances := &fakeAttendanceRepo{sessions: []attendance.Attendance{
		session("emp-1", "2025-06-02", 9, 0, 18, 0),
	}}
	employees := &fakeEmployeeRepo{employees: []employee.Employee{{ID: "emp-1", Name: "Ravi Kumar"}}}
	requests := &fakeRequestRepo{requests: []request.Request{
		{
			EmployeeID: "emp-1",
			Type:       request.TypeAdvance,
			Status:     request.StatusPending,
			Data:       request.Payload{Amount: 5000, Date: "2025-06-10"},
		},
	}}

	svc := newService(attendances, employees, requests, &fakeHolidayRepo{})

	cal, err := svc.Calendar(context.Background(), "emp-1", "2025-06")
	require.NoError(t, err)

	assert.Equal(t, "2025-06", cal.Month)
	assert.Len(t, cal.Days, 30)
	require.Len(t, cal.Events, 1)
	assert.Equal(t, "ADVANCE", cal.Events[0].Type)
	assert.Equal(t, "2025-06-10", cal.Events[0].Date)
}

func TestCalendarUnknownEmployee(t *testing.T) {
	svc := newService(&fakeAttendanceRepo{}, &fakeEmployeeRepo{}, &fakeRequestRepo{}, &fakeHolidayRepo{})

	_, err := svc.Calendar(context.Background(), "ghost", "2025-06")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}
