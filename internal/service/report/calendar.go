package report

import (
	"context"
	"fmt"
	"time"

	"github.com/kiranastores/attendance-backend-go/internal/domain/request"
)

// Calendar implements Service. month is "2006-01".
func (s *ServiceImpl) Calendar(ctx context.Context, employeeID string, month string) (Calendar, error) {
	first, err := time.ParseInLocation("2006-01", month, s.loc)
	if err != nil {
		return Calendar{}, fmt.Errorf("invalid month %q: %w", month, err)
	}
	last := first.AddDate(0, 1, -1)

	startDate := first.Format("2006-01-02")
	endDate := last.Format("2006-01-02")

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return Calendar{}, err
	}

	holidays, err := s.holidayRepo.GetByDateRange(ctx, startDate, endDate)
	if err != nil {
		return Calendar{}, fmt.Errorf("failed to load holidays: %w", err)
	}

	days, err := s.classifyRange(ctx, employeeID, startDate, endDate, holidays)
	if err != nil {
		return Calendar{}, err
	}

	requests, err := s.requestRepo.GetByEmployeeAndDateRange(ctx, employeeID, startDate, endDate)
	if err != nil {
		return Calendar{}, fmt.Errorf("failed to load requests: %w", err)
	}

	return Calendar{
		Employee: employeeInfo(emp),
		Month:    month,
		Days:     days,
		Events:   calendarEvents(requests),
	}, nil
}

// calendarEvents maps requests onto calendar entries. Ranged requests show on
// their start date; the classified days already carry the per-day effect.
func calendarEvents(requests []request.Request) []CalendarEvent {
	events := make([]CalendarEvent, 0, len(requests))
	for _, r := range requests {
		date := r.Data.Date
		if date == "" {
			date = r.Data.StartDate
		}
		if date == "" {
			continue
		}
		events = append(events, CalendarEvent{
			Date:   date,
			Type:   string(r.Type),
			Status: string(r.Status),
			Title:  eventTitle(r),
		})
	}
	return events
}

func eventTitle(r request.Request) string {
	switch r.Type {
	case request.TypeLeave:
		if r.Data.LeaveType != "" {
			return r.Data.LeaveType
		}
		return "Leave"
	case request.TypePermission:
		return "Permission"
	case request.TypeAdvance:
		return fmt.Sprintf("Advance %.2f", r.Data.Amount)
	}
	return string(r.Type)
}
