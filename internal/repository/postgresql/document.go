package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/document"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type documentRepositoryImpl struct {
	db *database.DB
}

func NewDocumentRepository(db *database.DB) document.DocumentRepository {
	return &documentRepositoryImpl{db: db}
}

const documentSelect = `
	SELECT d.id, d.title, d.description, d.file_name, d.file_path, d.file_size, d.file_type, d.category,
		   d.uploaded_by, d.is_active, d.created_at, d.updated_at, e.full_name
	FROM documents d
	LEFT JOIN employees e ON e.id = d.uploaded_by`

func scanDocument(row pgx.Row, doc *document.Document) error {
	return row.Scan(
		&doc.ID, &doc.Title, &doc.Description, &doc.FileName, &doc.FilePath, &doc.FileSize, &doc.FileType, &doc.Category,
		&doc.UploadedBy, &doc.IsActive, &doc.CreatedAt, &doc.UpdatedAt, &doc.UploaderName,
	)
}

func (r *documentRepositoryImpl) Create(ctx context.Context, doc document.Document) (document.Document, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO documents (title, description, file_name, file_path, file_size, file_type, category, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, is_active, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		doc.Title, doc.Description, doc.FileName, doc.FilePath, doc.FileSize, doc.FileType, doc.Category, doc.UploadedBy,
	).Scan(&doc.ID, &doc.IsActive, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return document.Document{}, fmt.Errorf("failed to create document: %w", err)
	}

	return doc, nil
}

func (r *documentRepositoryImpl) GetByID(ctx context.Context, id string) (document.Document, error) {
	q := GetQuerier(ctx, r.db)

	var doc document.Document
	if err := scanDocument(q.QueryRow(ctx, documentSelect+` WHERE d.id = $1 AND d.is_active = TRUE`, id), &doc); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return document.Document{}, document.ErrDocumentNotFound
		}
		return document.Document{}, fmt.Errorf("failed to get document: %w", err)
	}

	return doc, nil
}

func (r *documentRepositoryImpl) List(ctx context.Context, filter document.DocumentFilter) ([]document.Document, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "d.is_active = TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.Category != nil && *filter.Category != "" {
		where += fmt.Sprintf(" AND d.category = $%d", argIdx)
		args = append(args, *filter.Category)
		argIdx++
	}
	if filter.Search != nil && *filter.Search != "" {
		where += fmt.Sprintf(" AND (d.title ILIKE $%d OR d.description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM documents d WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count documents: %w", err)
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY d.created_at DESC LIMIT $%d OFFSET $%d", documentSelect, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	documents := make([]document.Document, 0)
	for rows.Next() {
		var doc document.Document
		if err := scanDocument(rows, &doc); err != nil {
			return nil, 0, fmt.Errorf("failed to scan document: %w", err)
		}
		documents = append(documents, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return documents, total, nil
}

func (r *documentRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `UPDATE documents SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active = TRUE`, id)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return document.ErrDocumentNotFound
	}

	return nil
}
