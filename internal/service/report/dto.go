package report

import (
	"github.com/kiranastores/attendance-backend-go/internal/pkg/validator"
	"github.com/kiranastores/attendance-backend-go/internal/service/status"
)

// EmployeeInfo is the employee header carried on every report row.
type EmployeeInfo struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// DatedStatus is one classified day.
type DatedStatus struct {
	Date   string           `json:"date"`
	Status status.DayStatus `json:"status"`
}

// DailyReport is one date classified across a set of employees.
type DailyReport struct {
	Date    string             `json:"date"`
	Entries []EmployeeDayEntry `json:"entries"`
}

type EmployeeDayEntry struct {
	Employee EmployeeInfo     `json:"employee"`
	Status   status.DayStatus `json:"status"`
}

// Stats are per-employee counters over a date range. A day increments every
// counter whose tag it carries, so a late half-day counts under both.
type Stats struct {
	Present    int `json:"present"`
	Absent     int `json:"absent"`
	Leave      int `json:"leave"`
	WeekOff    int `json:"week_off"`
	Holiday    int `json:"holiday"`
	LateIn     int `json:"late_in"`
	EarlyOut   int `json:"early_out"`
	HalfDay    int `json:"half_day"`
	Permission int `json:"permission"`
	TotalDays  int `json:"total_days"`
}

// EmployeeRangeReport is one employee's classified range plus the rollup.
type EmployeeRangeReport struct {
	Employee       EmployeeInfo  `json:"employee"`
	Stats          Stats         `json:"stats"`
	DailyBreakdown []DatedStatus `json:"daily_breakdown"`
}

type RangeReport struct {
	StartDate string                `json:"start_date"`
	EndDate   string                `json:"end_date"`
	Employees []EmployeeRangeReport `json:"employees"`
}

// RangeRequest narrows a range report. EmployeeID wins over BranchID.
type RangeRequest struct {
	EmployeeID *string
	BranchID   *string
	StartDate  string
	EndDate    string
}

func (r *RangeRequest) Validate() error {
	var errs validator.ValidationErrors

	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "must be in YYYY-MM-DD format",
		})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "must be in YYYY-MM-DD format",
		})
	}
	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CalendarEvent is a request surfaced on the employee calendar alongside the
// classified days.
type CalendarEvent struct {
	Date   string `json:"date"`
	Type   string `json:"type"`
	Status string `json:"status"`
	Title  string `json:"title"`
}

type Calendar struct {
	Employee EmployeeInfo    `json:"employee"`
	Month    string          `json:"month"`
	Days     []DatedStatus   `json:"days"`
	Events   []CalendarEvent `json:"events"`
}
