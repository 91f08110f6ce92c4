package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/master/designation"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/database"
)

type designationRepositoryImpl struct {
	db *database.DB
}

func NewDesignationRepository(db *database.DB) designation.DesignationRepository {
	return &designationRepositoryImpl{db: db}
}

// Create implements designation.DesignationRepository.
func (r *designationRepositoryImpl) Create(ctx context.Context, d designation.Designation) (designation.Designation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO designations (title, description)
		VALUES ($1, $2)
		RETURNING id, title, description, is_active, created_at, updated_at
	`

	var result designation.Designation
	err := q.QueryRow(ctx, query, d.Title, d.Description).Scan(
		&result.ID,
		&result.Title,
		&result.Description,
		&result.IsActive,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		return designation.Designation{}, fmt.Errorf("failed to create designation: %w", err)
	}

	return result, nil
}

// GetByID implements designation.DesignationRepository. Inactive designations are not returned.
func (r *designationRepositoryImpl) GetByID(ctx context.Context, id string) (designation.Designation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, title, description, is_active, created_at, updated_at
		FROM designations
		WHERE id = $1 AND is_active = TRUE
	`

	var result designation.Designation
	err := q.QueryRow(ctx, query, id).Scan(
		&result.ID,
		&result.Title,
		&result.Description,
		&result.IsActive,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		return designation.Designation{}, fmt.Errorf("failed to get designation: %w", err)
	}

	return result, nil
}

// ListActive implements designation.DesignationRepository.
func (r *designationRepositoryImpl) ListActive(ctx context.Context) ([]designation.Designation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, title, description, is_active, created_at, updated_at
		FROM designations
		WHERE is_active = TRUE
		ORDER BY title
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list designations: %w", err)
	}
	defer rows.Close()

	var designations []designation.Designation
	for rows.Next() {
		var d designation.Designation
		if err := rows.Scan(&d.ID, &d.Title, &d.Description, &d.IsActive, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan designation: %w", err)
		}
		designations = append(designations, d)
	}

	return designations, rows.Err()
}

// Update implements designation.DesignationRepository.
func (r *designationRepositoryImpl) Update(ctx context.Context, req designation.UpdateDesignationRequest) (designation.Designation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE designations
		SET title = $2, description = $3, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE
		RETURNING id, title, description, is_active, created_at, updated_at
	`

	var result designation.Designation
	err := q.QueryRow(ctx, query, req.ID, req.Title, req.Description).Scan(
		&result.ID,
		&result.Title,
		&result.Description,
		&result.IsActive,
		&result.CreatedAt,
		&result.UpdatedAt,
	)
	if err != nil {
		return designation.Designation{}, fmt.Errorf("failed to update designation: %w", err)
	}

	return result, nil
}

// SoftDelete implements designation.DesignationRepository.
func (r *designationRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `
		UPDATE designations
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete designation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return designation.ErrDesignationNotFound
	}

	return nil
}
