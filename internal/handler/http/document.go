package http

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/document"
	"github.com/cmlabs-hris/officehr-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type DocumentHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Upload(w http.ResponseWriter, r *http.Request)
	Download(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type documentHandlerImpl struct {
	documentService document.DocumentService
	maxUploadSize   int64
}

func NewDocumentHandler(documentService document.DocumentService, maxUploadSize int64) DocumentHandler {
	return &documentHandlerImpl{
		documentService: documentService,
		maxUploadSize:   maxUploadSize,
	}
}

// List implements DocumentHandler.
func (h *documentHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filter := document.DocumentFilter{
		Category: queryString(r, "category"),
		Search:   queryString(r, "search"),
		Page:     queryInt(r, "page"),
		Limit:    queryInt(r, "limit"),
	}

	result, err := h.documentService.ListDocuments(r.Context(), caller, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Documents, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
		TotalPages: result.TotalPages,
	})
}

// Upload implements DocumentHandler.
func (h *documentHandlerImpl) Upload(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		slog.Error("Failed to parse multipart form", "error", err)
		response.BadRequest(w, "Failed to parse form data", nil)
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		if err == http.ErrMissingFile {
			response.BadRequest(w, "Document file is required", nil)
			return
		}
		slog.Error("Failed to get file from form", "error", err)
		response.BadRequest(w, "Invalid file upload", nil)
		return
	}
	defer file.Close()

	req := document.UploadDocumentRequest{
		Title:       r.FormValue("title"),
		Description: formString(r, "description"),
		Category:    r.FormValue("category"),
		File:        file,
		FileHeader:  fileHeader,
	}

	doc, err := h.documentService.UploadDocument(r.Context(), caller, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Document uploaded successfully", doc)
}

// Download implements DocumentHandler.
func (h *documentHandlerImpl) Download(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	doc, content, err := h.documentService.OpenDocument(r.Context(), caller, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	defer content.Close()

	w.Header().Set("Content-Type", doc.FileType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	if doc.FileSize > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(doc.FileSize, 10))
	}
	if _, err := io.Copy(w, content); err != nil {
		slog.Error("Failed to stream document", "document_id", doc.ID, "error", err)
	}
}

// Delete implements DocumentHandler.
func (h *documentHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	caller, err := callerFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if err := h.documentService.DeleteDocument(r.Context(), caller, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Document deleted successfully", nil)
}

func formString(r *http.Request, key string) *string {
	if v := r.FormValue(key); v != "" {
		return &v
	}
	return nil
}
