package attendance

import (
	"time"

	"github.com/kiranastores/attendance-backend-go/internal/pkg/validator"
)

// ========================================
// SESSION ENGINE DTOs
// ========================================

// CheckInRequest carries a face image plus location for a check-in attempt.
// Coordinates are required unless Type is KIOSK.
type CheckInRequest struct {
	Image              []byte   `json:"-"`
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
	Type               Type     `json:"type"`
	ExpectedEmployeeID *string  `json:"expected_employee_id"`
	BranchID           *string  `json:"branch_id"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Type == "" {
		r.Type = TypeOffice
	}
	if !r.Type.Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "type",
			Message: "type must be one of OFFICE, TRAVEL, KIOSK",
		})
	}

	if len(r.Image) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "image",
			Message: "face image is required",
		})
	}

	if r.Type != TypeKiosk {
		if r.Latitude == nil || r.Longitude == nil {
			errs = append(errs, validator.ValidationError{
				Field:   "latitude",
				Message: "latitude and longitude are required unless type is KIOSK",
			})
		}
	}
	if r.Latitude != nil && (*r.Latitude < -90 || *r.Latitude > 90) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if r.Longitude != nil && (*r.Longitude < -180 || *r.Longitude > 180) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CheckOutRequest struct {
	Image              []byte  `json:"-"`
	ExpectedEmployeeID *string `json:"expected_employee_id"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors
	if len(r.Image) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "image",
			Message: "face image is required",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// EmployeeSummary is the employee subset echoed in check-in responses.
type EmployeeSummary struct {
	EmployeeID string `json:"employee_id"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

type CheckInResponse struct {
	Attendance      AttendanceResponse `json:"attendance"`
	Employee        EmployeeSummary    `json:"employee"`
	Tracking        bool               `json:"tracking"`
	RestoredSession bool               `json:"restored_session,omitempty"`
}

type CheckOutResponse struct {
	Attendance AttendanceResponse `json:"attendance"`
	Tracking   bool               `json:"tracking"`
}

type PingRequest struct {
	EmployeeID string  `json:"employee_id"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

func (r *PingRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}
	if r.Latitude < -90 || r.Latitude > 90 {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be between -90 and 90",
		})
	}
	if r.Longitude < -180 || r.Longitude > 180 {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be between -180 and 180",
		})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// StatusBlock is the live session state returned by status queries and pings.
type StatusBlock struct {
	IsTracking                bool                 `json:"is_tracking"`
	AutoCheckedOut            bool                 `json:"auto_checked_out,omitempty"`
	CanResume                 bool                 `json:"can_resume"`
	HasOpenSession            bool                 `json:"has_open_session"`
	CanCheckIn                bool                 `json:"can_check_in"`
	CanCheckOut               bool                 `json:"can_check_out"`
	AttendanceDurationMinutes int                  `json:"attendance_duration_minutes"`
	PermissionDurationMinutes int                  `json:"permission_duration_minutes"`
	TotalWorkDurationMinutes  int                  `json:"total_work_duration_minutes"`
	OpenSession               *AttendanceResponse  `json:"open_session,omitempty"`
	TodayAttendance           []AttendanceResponse `json:"today_attendance"`
}

type StatusResponse struct {
	Employee EmployeeSummary `json:"employee"`
	Status   StatusBlock     `json:"status"`
}

// ========================================
// READ-MODEL DTOs
// ========================================

type AttendanceResponse struct {
	ID               string  `json:"id"`
	EmployeeID       string  `json:"employee_id"`
	EmployeeName     *string `json:"employee_name,omitempty"`
	Date             string  `json:"date"`
	Type             Type    `json:"type"`
	CheckInTime      string  `json:"check_in_time"`
	CheckOutTime     *string `json:"check_out_time"`
	CheckInImageURL  *string `json:"check_in_image_url,omitempty"`
	CheckOutImageURL *string `json:"check_out_image_url,omitempty"`
	Status           string  `json:"status,omitempty"`
}

// ToResponse converts an entity to its API shape.
func ToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:               a.ID,
		EmployeeID:       a.EmployeeID,
		EmployeeName:     a.EmployeeName,
		Date:             a.Date,
		Type:             a.Type,
		CheckInTime:      a.CheckInTime.Format(time.RFC3339),
		CheckOutTime:     timePtrToString(a.CheckOutTime),
		CheckInImageURL:  a.CheckInImageURL,
		CheckOutImageURL: a.CheckOutImageURL,
		Status:           a.Status,
	}
}

func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

// ListFilter narrows the admin listing.
type ListFilter struct {
	EmployeeID *string
	BranchID   *string
	Date       *string
	StartDate  *string
	EndDate    *string
	Limit      int
	Offset     int
}

func (f *ListFilter) Validate() error {
	var errs validator.ValidationErrors
	for field, v := range map[string]*string{
		"date": f.Date, "start_date": f.StartDate, "end_date": f.EndDate,
	} {
		if v != nil && *v != "" {
			if _, ok := validator.IsValidDate(*v); !ok {
				errs = append(errs, validator.ValidationError{
					Field:   field,
					Message: "must be in YYYY-MM-DD format",
				})
			}
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CloseAllResponse struct {
	ClosedSessions int64 `json:"closed_sessions"`
}
