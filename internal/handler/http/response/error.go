package response

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kiranastores/attendance-backend-go/internal/domain/attendance"
	"github.com/kiranastores/attendance-backend-go/internal/domain/branch"
	"github.com/kiranastores/attendance-backend-go/internal/domain/employee"
	"github.com/kiranastores/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses.
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	var outOfRange *attendance.OutOfRangeError
	if errors.As(err, &outOfRange) {
		Forbidden(w, "OUT_OF_RANGE", outOfRange.Error(), map[string]string{
			"distance_meters":       fmt.Sprintf("%.0f", outOfRange.DistanceMeters),
			"allowed_radius_meters": fmt.Sprintf("%.0f", outOfRange.AllowedRadiusMeters),
		})
		return
	}

	var alreadyIn *attendance.AlreadyCheckedInError
	if errors.As(err, &alreadyIn) {
		Conflict(w, "ALREADY_CHECKED_IN", alreadyIn.Error(), map[string]string{
			"check_in_time": alreadyIn.CheckInTime.Format(time.RFC3339),
		})
		return
	}

	switch {
	// Identity errors
	case errors.Is(err, attendance.ErrFaceNotRecognized):
		Unauthorized(w, "Face not recognized")
	case errors.Is(err, attendance.ErrIdentityMismatch):
		Forbidden(w, "IDENTITY_MISMATCH", "Face does not match the expected employee", nil)

	// Policy errors
	case errors.Is(err, attendance.ErrUnauthorizedMode):
		Forbidden(w, "UNAUTHORIZED_MODE", "Work mode does not permit travel check-in", nil)
	case errors.Is(err, attendance.ErrBranchMismatch):
		Forbidden(w, "BRANCH_MISMATCH", "Employee is assigned to a different branch", nil)
	case errors.Is(err, attendance.ErrMissingCoords):
		BadRequest(w, "Latitude and longitude are required", nil)

	// Session state errors
	case errors.Is(err, attendance.ErrNoOpenSession):
		Conflict(w, "NO_OPEN_SESSION", "No open session to check out", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "ALREADY_CHECKED_OUT", "Session is already checked out", nil)
	case errors.Is(err, attendance.ErrResumeWindowExpired):
		Conflict(w, "RESUME_WINDOW_EXPIRED", "Resume window has expired", nil)
	case errors.Is(err, attendance.ErrNotResumable):
		Conflict(w, "NOT_RESUMABLE", "No session eligible for resume", nil)

	// Not found
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, branch.ErrBranchNotFound):
		NotFound(w, "Branch not found")

	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
