package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/database"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

// Create implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Create(ctx context.Context, d department.Department) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO departments (name, description)
		VALUES ($1, $2)
		RETURNING id, name, description, is_active, created_at, updated_at
	`

	var result department.Department
	err := q.QueryRow(ctx, query, d.Name, d.Description).Scan(
		&result.ID,
		&result.Name,
		&result.Description,
		&result.IsActive,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		return department.Department{}, fmt.Errorf("failed to create department: %w", err)
	}

	return result, nil
}

// GetByID implements department.DepartmentRepository. Inactive departments are not returned.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM departments
		WHERE id = $1 AND is_active = TRUE
	`

	var result department.Department
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.Name,
		&result.Description,
		&result.IsActive,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		return department.Department{}, fmt.Errorf("failed to get department: %w", err)
	}

	return result, nil
}

// ListActive implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) ListActive(ctx context.Context) ([]department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM departments
		WHERE is_active = TRUE
		ORDER BY name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []department.Department
	for rows.Next() {
		var d department.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.Description, &d.IsActive, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}

	return departments, rows.Err()
}

// Update implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) Update(ctx context.Context, req department.UpdateDepartmentRequest) (department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE departments
		SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE
		RETURNING id, name, description, is_active, created_at, updated_at
	`

	var result department.Department
	err := q.QueryRow(ctx, query, req.ID, req.Name, req.Description).Scan(
		&result.ID,
		&result.Name,
		&result.Description,
		&result.IsActive,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		return department.Department{}, fmt.Errorf("failed to update department: %w", err)
	}

	return result, nil
}

// SoftDelete implements department.DepartmentRepository.
func (r *departmentRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE departments
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}

	return nil
}
