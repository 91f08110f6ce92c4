package employee

import "errors"

var (
	ErrEmployeeNotFound  = errors.New("employee not found")
	ErrEmployeeIDExists  = errors.New("employee id already registered")
	ErrEmailExists       = errors.New("email already registered")
	ErrCNICExists        = errors.New("CNIC already registered")
	ErrInvalidReference  = errors.New("department or designation does not exist")
	ErrUnauthorized      = errors.New("unauthorized to access this employee")
	ErrCannotDeleteSelf  = errors.New("cannot delete your own employee record")
	ErrInvalidImage      = errors.New("file is not a supported image")
	ErrEmployeeNotActive = errors.New("employee is not active")
)
