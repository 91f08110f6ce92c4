package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	// Update writes every mutable column of e.
	Update(ctx context.Context, e Employee) (Employee, error)
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	ListActive(ctx context.Context) ([]Employee, error)
	UpdateProfileImage(ctx context.Context, id string, url string) error
	CountActive(ctx context.Context) (int64, error)
}
