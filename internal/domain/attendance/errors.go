package attendance

import (
	"errors"
	"fmt"
	"time"
)

// Attendance domain errors
var (
	// Identity errors
	ErrFaceNotRecognized = errors.New("face not recognized")
	ErrIdentityMismatch  = errors.New("face does not match the expected employee")

	// Policy errors
	ErrUnauthorizedMode = errors.New("work mode does not permit travel check-in")
	ErrBranchMismatch   = errors.New("employee is assigned to a different branch")
	ErrMissingCoords    = errors.New("latitude and longitude are required")

	// State errors
	ErrNoOpenSession       = errors.New("no open session to check out")
	ErrAlreadyCheckedOut   = errors.New("session is already checked out")
	ErrResumeWindowExpired = errors.New("resume window has expired")
	ErrNotResumable        = errors.New("no session eligible for resume")

	ErrAttendanceNotFound = errors.New("attendance record not found")
)

// OutOfRangeError is returned when an OFFICE check-in lands outside the
// resolved geofence. It carries the measured distance so the client can
// explain the rejection.
type OutOfRangeError struct {
	DistanceMeters      float64
	AllowedRadiusMeters float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("outside allowed radius: %.0fm away, allowed %.0fm",
		e.DistanceMeters, e.AllowedRadiusMeters)
}

// AlreadyCheckedInError is returned when a check-in arrives while a tracked
// session is already open today.
type AlreadyCheckedInError struct {
	CheckInTime time.Time
}

func (e *AlreadyCheckedInError) Error() string {
	return fmt.Sprintf("already checked in at %s", e.CheckInTime.Format("15:04:05"))
}
