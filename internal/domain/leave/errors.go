package leave

import "errors"

var (
	ErrLeaveRequestNotFound     = errors.New("leave request not found")
	ErrEmployeeNotFound         = errors.New("employee not found")
	ErrInvalidDateRange         = errors.New("end date must not be before start date")
	ErrInvalidStateTransition   = errors.New("leave request has already been processed")
	ErrInsufficientLeaveBalance = errors.New("insufficient leave balance")
)
