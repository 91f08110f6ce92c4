package employee

import (
	"context"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	// CreateEmployee creates a new employee (admin only)
	CreateEmployee(ctx context.Context, caller user.Identity, req CreateEmployeeRequest) (Employee, error)

	// GetEmployee retrieves a single employee (admin or the employee themself)
	GetEmployee(ctx context.Context, caller user.Identity, id string) (Employee, error)

	// GetProfile retrieves the caller's own record
	GetProfile(ctx context.Context, caller user.Identity) (Employee, error)

	// UpdateEmployee applies a partial update (admin only)
	UpdateEmployee(ctx context.Context, caller user.Identity, req UpdateEmployeeRequest) (Employee, error)

	// DeleteEmployee soft deletes an employee (admin only)
	DeleteEmployee(ctx context.Context, caller user.Identity, id string) error

	// ListEmployees lists employees with filters (admin only)
	ListEmployees(ctx context.Context, caller user.Identity, filter EmployeeFilter) (ListEmployeeResponse, error)

	// UploadAvatar stores a down-scaled profile image for the caller
	UploadAvatar(ctx context.Context, caller user.Identity, req UploadAvatarRequest) (Employee, error)
}
