package document

import (
	"context"
	"io"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
)

type DocumentService interface {
	UploadDocument(ctx context.Context, caller user.Identity, req UploadDocumentRequest) (Document, error)
	ListDocuments(ctx context.Context, caller user.Identity, filter DocumentFilter) (ListDocumentResponse, error)
	// OpenDocument returns the metadata and content of a document. The caller closes the reader.
	OpenDocument(ctx context.Context, caller user.Identity, id string) (Document, io.ReadCloser, error)
	DeleteDocument(ctx context.Context, caller user.Identity, id string) error
}
