package document

import "context"

type DocumentRepository interface {
	Create(ctx context.Context, doc Document) (Document, error)
	// GetByID returns active documents only.
	GetByID(ctx context.Context, id string) (Document, error)
	List(ctx context.Context, filter DocumentFilter) ([]Document, int64, error)
	SoftDelete(ctx context.Context, id string) error
}
