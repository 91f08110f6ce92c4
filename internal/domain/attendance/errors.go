package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrDuplicateCheckIn  = errors.New("you have already checked in today")
	ErrMissingCheckIn    = errors.New("no check-in found for today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")
	ErrInvalidInterval   = errors.New("check-out must be after check-in")

	// General errors
	ErrAttendanceNotFound = errors.New("attendance record not found")
	ErrEmployeeInactive   = errors.New("employee is not active")
)
