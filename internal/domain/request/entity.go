package request

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

type Type string

const (
	TypeLeave      Type = "LEAVE"
	TypePermission Type = "PERMISSION"
	TypeAdvance    Type = "ADVANCE"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// Payload is the variant request body stored as JSONB. Which fields are set
// depends on Type: LEAVE carries LeaveType and Date or StartDate/EndDate,
// PERMISSION carries Date plus Duration or StartTime/EndTime, ADVANCE carries
// Amount and Date.
type Payload struct {
	LeaveType string  `json:"leave_type,omitempty"`
	Date      string  `json:"date,omitempty"`
	StartDate string  `json:"start_date,omitempty"`
	EndDate   string  `json:"end_date,omitempty"`
	Duration  int     `json:"duration_minutes,omitempty"`
	StartTime string  `json:"start_time,omitempty"`
	EndTime   string  `json:"end_time,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
	Reason    string  `json:"reason,omitempty"`
}

// Value implements driver.Valuer for JSONB storage.
func (p Payload) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// Scan implements sql.Scanner for JSONB retrieval.
func (p *Payload) Scan(value interface{}) error {
	if value == nil {
		*p = Payload{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, p)
	case string:
		return json.Unmarshal([]byte(v), p)
	}
	return errors.New("unsupported type for request payload")
}

// Request is a leave, permission, or advance request. Read-only to the
// attendance core; created by the request-intake service.
type Request struct {
	ID         string
	EmployeeID string
	Type       Type
	Status     Status
	Data       Payload
}

// CoversDate reports whether the request applies to the given local date.
func (r Request) CoversDate(date string) bool {
	if r.Data.Date != "" {
		return r.Data.Date == date
	}
	if r.Data.StartDate != "" && r.Data.EndDate != "" {
		return r.Data.StartDate <= date && date <= r.Data.EndDate
	}
	return false
}

// PermissionMinutes returns the excused duration of a PERMISSION request,
// preferring the explicit duration over the start/end clock times.
func (r Request) PermissionMinutes() int {
	if r.Data.Duration > 0 {
		return r.Data.Duration
	}
	start, errS := parseClock(r.Data.StartTime)
	end, errE := parseClock(r.Data.EndTime)
	if errS != nil || errE != nil || end <= start {
		return 0
	}
	return end - start
}

func parseClock(v string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(v, "%d:%d", &h, &m); err != nil {
		return 0, err
	}
	return h*60 + m, nil
}
