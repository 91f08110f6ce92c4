package department

import "context"

type DepartmentRepository interface {
	Create(ctx context.Context, department Department) (Department, error)
	GetByID(ctx context.Context, id string) (Department, error)
	// ListActive returns the active departments ordered by name.
	ListActive(ctx context.Context) ([]Department, error)
	Update(ctx context.Context, req UpdateDepartmentRequest) (Department, error)
	// SoftDelete marks the department inactive.
	SoftDelete(ctx context.Context, id string) error
}
