package designation

import "context"

type DesignationRepository interface {
	Create(ctx context.Context, designation Designation) (Designation, error)
	GetByID(ctx context.Context, id string) (Designation, error)
	// ListActive returns the active designations ordered by title.
	ListActive(ctx context.Context) ([]Designation, error)
	Update(ctx context.Context, req UpdateDesignationRequest) (Designation, error)
	// SoftDelete marks the designation inactive.
	SoftDelete(ctx context.Context, id string) error
}
