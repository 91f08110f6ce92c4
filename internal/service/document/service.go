package document

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/document"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/officehr-backend-go/internal/service/file"
)

type documentServiceImpl struct {
	documentRepo document.DocumentRepository
	fileService  file.FileService
}

func NewDocumentService(documentRepo document.DocumentRepository, fileService file.FileService) document.DocumentService {
	return &documentServiceImpl{
		documentRepo: documentRepo,
		fileService:  fileService,
	}
}

// UploadDocument implements document.DocumentService.
func (s *documentServiceImpl) UploadDocument(ctx context.Context, caller user.Identity, req document.UploadDocumentRequest) (document.Document, error) {
	if err := caller.Require(user.PermissionDocumentManage); err != nil {
		return document.Document{}, err
	}
	if err := req.Validate(); err != nil {
		return document.Document{}, err
	}

	key, err := s.fileService.UploadDocument(ctx, req.File, req.FileHeader.Filename, req.Category)
	if err != nil {
		return document.Document{}, fmt.Errorf("failed to store document: %w", err)
	}

	fileType := req.FileHeader.Header.Get("Content-Type")
	if fileType == "" {
		fileType = "application/octet-stream"
	}

	created, err := s.documentRepo.Create(ctx, document.Document{
		Title:       req.Title,
		Description: req.Description,
		FileName:    req.FileHeader.Filename,
		FilePath:    key,
		FileSize:    req.FileHeader.Size,
		FileType:    fileType,
		Category:    document.Category(req.Category),
		UploadedBy:  caller.UserID,
	})
	if err != nil {
		// Remove the orphaned file
		if delErr := s.fileService.DeleteFile(ctx, key); delErr != nil {
			slog.Warn("Failed to remove stored document after insert error", "key", key, "error", delErr)
		}
		return document.Document{}, err
	}

	slog.Info("Document uploaded", "document_id", created.ID, "category", created.Category, "by", caller.UserID)
	return created, nil
}

// ListDocuments implements document.DocumentService.
func (s *documentServiceImpl) ListDocuments(ctx context.Context, caller user.Identity, filter document.DocumentFilter) (document.ListDocumentResponse, error) {
	if err := caller.Require(user.PermissionDocumentView); err != nil {
		return document.ListDocumentResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return document.ListDocumentResponse{}, err
	}

	docs, total, err := s.documentRepo.List(ctx, filter)
	if err != nil {
		return document.ListDocumentResponse{}, fmt.Errorf("failed to list documents: %w", err)
	}

	return document.ListDocumentResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Documents:  docs,
	}, nil
}

// OpenDocument implements document.DocumentService.
func (s *documentServiceImpl) OpenDocument(ctx context.Context, caller user.Identity, id string) (document.Document, io.ReadCloser, error) {
	if err := caller.Require(user.PermissionDocumentView); err != nil {
		return document.Document{}, nil, err
	}

	doc, err := s.documentRepo.GetByID(ctx, id)
	if err != nil {
		return document.Document{}, nil, err
	}

	content, err := s.fileService.OpenFile(ctx, doc.FilePath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return document.Document{}, nil, document.ErrFileNotFound
		}
		return document.Document{}, nil, fmt.Errorf("failed to open document: %w", err)
	}

	return doc, content, nil
}

// DeleteDocument implements document.DocumentService. The stored file is kept.
func (s *documentServiceImpl) DeleteDocument(ctx context.Context, caller user.Identity, id string) error {
	if err := caller.Require(user.PermissionDocumentManage); err != nil {
		return err
	}

	if err := s.documentRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	slog.Info("Document deleted", "document_id", id, "by", caller.UserID)
	return nil
}
