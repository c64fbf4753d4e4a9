// Package report builds attendance reports by classifying every (employee,
// day) cell on demand. Nothing is precomputed or cached: a late-approved
// leave changes history the next time the report is requested.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kiranastores/attendance-backend-go/internal/domain/attendance"
	"github.com/kiranastores/attendance-backend-go/internal/domain/employee"
	"github.com/kiranastores/attendance-backend-go/internal/domain/holiday"
	"github.com/kiranastores/attendance-backend-go/internal/domain/request"
	"github.com/kiranastores/attendance-backend-go/internal/service/status"
)

// maxConcurrentEmployees bounds the report fan-out so a company-wide range
// report does not exhaust the connection pool.
const maxConcurrentEmployees = 8

type Service interface {
	// DailyReport classifies one date for every active employee.
	DailyReport(ctx context.Context, date string, branchID *string) (DailyReport, error)

	// RangeReport classifies a date range per employee with rollup stats.
	RangeReport(ctx context.Context, req RangeRequest) (RangeReport, error)

	// Calendar returns one employee's classified month plus request events.
	Calendar(ctx context.Context, employeeID string, month string) (Calendar, error)
}

type ServiceImpl struct {
	attendanceRepo attendance.Repository
	employeeRepo   employee.Repository
	requestRepo    request.Repository
	holidayRepo    holiday.Repository
	policy         status.Policy
	loc            *time.Location
}

func NewService(
	attendanceRepo attendance.Repository,
	employeeRepo employee.Repository,
	requestRepo request.Repository,
	holidayRepo holiday.Repository,
	policy status.Policy,
	loc *time.Location,
) *ServiceImpl {
	return &ServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		requestRepo:    requestRepo,
		holidayRepo:    holidayRepo,
		policy:         policy,
		loc:            loc,
	}
}

// DailyReport implements Service.
func (s *ServiceImpl) DailyReport(ctx context.Context, date string, branchID *string) (DailyReport, error) {
	if _, err := time.ParseInLocation("2006-01-02", date, s.loc); err != nil {
		return DailyReport{}, fmt.Errorf("invalid date %q: %w", date, err)
	}

	employees, err := s.employeeRepo.ListActive(ctx, branchID)
	if err != nil {
		return DailyReport{}, fmt.Errorf("failed to list employees: %w", err)
	}

	holidays, err := s.holidayRepo.GetByDateRange(ctx, date, date)
	if err != nil {
		return DailyReport{}, fmt.Errorf("failed to load holidays: %w", err)
	}

	entries := make([]EmployeeDayEntry, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentEmployees)

	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			days, err := s.classifyRange(gctx, emp.ID, date, date, holidays)
			if err != nil {
				return err
			}
			entries[i] = EmployeeDayEntry{
				Employee: employeeInfo(emp),
				Status:   days[0].Status,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return DailyReport{}, err
	}

	return DailyReport{Date: date, Entries: entries}, nil
}

// RangeReport implements Service.
func (s *ServiceImpl) RangeReport(ctx context.Context, req RangeRequest) (RangeReport, error) {
	if err := req.Validate(); err != nil {
		return RangeReport{}, err
	}

	var employees []employee.Employee
	if req.EmployeeID != nil && *req.EmployeeID != "" {
		emp, err := s.employeeRepo.GetByID(ctx, *req.EmployeeID)
		if err != nil {
			return RangeReport{}, err
		}
		employees = []employee.Employee{emp}
	} else {
		var err error
		employees, err = s.employeeRepo.ListActive(ctx, req.BranchID)
		if err != nil {
			return RangeReport{}, fmt.Errorf("failed to list employees: %w", err)
		}
	}

	// Holidays are shared across employees; fetch the range once.
	holidays, err := s.holidayRepo.GetByDateRange(ctx, req.StartDate, req.EndDate)
	if err != nil {
		return RangeReport{}, fmt.Errorf("failed to load holidays: %w", err)
	}

	reports := make([]EmployeeRangeReport, len(employees))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentEmployees)

	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			days, err := s.classifyRange(gctx, emp.ID, req.StartDate, req.EndDate, holidays)
			if err != nil {
				return err
			}
			reports[i] = EmployeeRangeReport{
				Employee:       employeeInfo(emp),
				Stats:          rollup(days),
				DailyBreakdown: days,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return RangeReport{}, err
	}

	return RangeReport{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Employees: reports,
	}, nil
}

// classifyRange classifies every day in [startDate, endDate] for one
// employee. Future days are not skipped; the classifier marks them from
// whatever signals exist.
func (s *ServiceImpl) classifyRange(ctx context.Context, employeeID string, startDate, endDate string, holidays map[string]string) ([]DatedStatus, error) {
	sessions, err := s.attendanceRepo.GetByEmployeeAndDateRange(ctx, employeeID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load sessions for %s: %w", employeeID, err)
	}

	requests, err := s.requestRepo.GetByEmployeeAndDateRange(ctx, employeeID, startDate, endDate)
	if err != nil {
		return nil, fmt.Errorf("failed to load requests for %s: %w", employeeID, err)
	}

	sessionsByDate := make(map[string][]attendance.Attendance)
	for _, a := range sessions {
		sessionsByDate[a.Date] = append(sessionsByDate[a.Date], a)
	}

	start, err := time.ParseInLocation("2006-01-02", startDate, s.loc)
	if err != nil {
		return nil, fmt.Errorf("invalid start_date %q: %w", startDate, err)
	}
	end, err := time.ParseInLocation("2006-01-02", endDate, s.loc)
	if err != nil {
		return nil, fmt.Errorf("invalid end_date %q: %w", endDate, err)
	}

	var days []DatedStatus
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		date := d.Format("2006-01-02")
		days = append(days, DatedStatus{
			Date: date,
			Status: status.Classify(status.Inputs{
				Attendance:  reduceDay(sessionsByDate[date]),
				Leave:       selectLeave(requests, date),
				Permission:  selectPermission(requests, date),
				HolidayName: holidays[date],
				Date:        d,
				Policy:      s.policy,
			}),
		})
	}

	return days, nil
}

// reduceDay collapses a day's session records into the classifier signal:
// first check-in, checkout of the last record. An open last record means
// the day has no checkout yet.
func reduceDay(sessions []attendance.Attendance) *status.DaySessions {
	if len(sessions) == 0 {
		return nil
	}
	sorted := make([]attendance.Attendance, len(sessions))
	copy(sorted, sessions)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].CheckInTime.Before(sorted[j].CheckInTime)
	})

	return &status.DaySessions{
		CheckIn:  sorted[0].CheckInTime,
		CheckOut: sorted[len(sorted)-1].CheckOutTime,
	}
}

// selectLeave picks the LEAVE request covering the date, preferring approved
// over pending over rejected when several overlap.
func selectLeave(requests []request.Request, date string) *request.Request {
	var picked *request.Request
	for i := range requests {
		r := &requests[i]
		if r.Type != request.TypeLeave || !r.CoversDate(date) {
			continue
		}
		if picked == nil || leaveRank(r.Status) < leaveRank(picked.Status) {
			picked = r
		}
	}
	return picked
}

func leaveRank(s request.Status) int {
	switch s {
	case request.StatusApproved:
		return 0
	case request.StatusPending:
		return 1
	default:
		return 2
	}
}

// selectPermission picks an approved PERMISSION request covering the date.
func selectPermission(requests []request.Request, date string) *request.Request {
	for i := range requests {
		r := &requests[i]
		if r.Type == request.TypePermission && r.Status == request.StatusApproved && r.CoversDate(date) {
			return r
		}
	}
	return nil
}

// rollup counts tags across a classified range. Composite days land in every
// counter they carry.
func rollup(days []DatedStatus) Stats {
	stats := Stats{TotalDays: len(days)}
	for _, d := range days {
		tags := d.Status.Tags
		if tags.Has(status.TagPresent) {
			stats.Present++
		}
		if tags.Has(status.TagAbsent) {
			stats.Absent++
		}
		if tags.Has(status.TagLeave) {
			stats.Leave++
		}
		if tags.Has(status.TagWeekOff) {
			stats.WeekOff++
		}
		if tags.Has(status.TagHoliday) {
			stats.Holiday++
		}
		if tags.Has(status.TagLateIn) {
			stats.LateIn++
		}
		if tags.Has(status.TagEarlyOut) {
			stats.EarlyOut++
		}
		if tags.HasAny(status.TagHalfDayIn, status.TagHalfDayOut) {
			stats.HalfDay++
		}
		if tags.Has(status.TagPermission) {
			stats.Permission++
		}
	}
	return stats
}

func employeeInfo(emp employee.Employee) EmployeeInfo {
	return EmployeeInfo{
		EmployeeID: emp.ID,
		Name:       emp.Name,
		Department: emp.Department,
	}
}
