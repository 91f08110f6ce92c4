package user

import "errors"

var (
	ErrInvalidIdentity         = errors.New("invalid identity")
	ErrAdminPrivilegeRequired  = errors.New("admin privilege required")
	ErrInsufficientPermissions = errors.New("insufficient permissions")
)
