package payroll

import "errors"

var (
	ErrSalaryRecordNotFound = errors.New("salary record not found")
	ErrDuplicatePeriod      = errors.New("salary already generated for this period")
	ErrAlreadyPaid          = errors.New("salary record already paid")
	ErrInvalidPeriod        = errors.New("invalid payroll period")
	ErrInvalidWorkingDays   = errors.New("working days must be between zero and the days in the period")
	ErrNegativeSalary       = errors.New("basic salary must not be negative")
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrEmployeeInactive     = errors.New("employee is not active")
)
