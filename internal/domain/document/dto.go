package document

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/validator"
)

var allowedExtensions = []string{".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx", ".txt", ".csv", ".jpg", ".jpeg", ".png"}

type UploadDocumentRequest struct {
	Title       string                `json:"title"`
	Description *string               `json:"description,omitempty"`
	Category    string                `json:"category"`
	File        multipart.File        `json:"-"`
	FileHeader  *multipart.FileHeader `json:"-"`
}

func (r *UploadDocumentRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		errs.Add("title", "title is required")
	} else if len(r.Title) > 255 {
		errs.Add("title", "title must not exceed 255 characters")
	}

	if r.Category == "" {
		r.Category = string(CategoryOther)
	}
	if !validator.IsInSlice(r.Category, Categories) {
		errs.Add("category", "category must be one of: "+strings.Join(Categories, ", "))
	}

	if r.File == nil || r.FileHeader == nil {
		errs.Add("file", "file is required")
	} else if ext := strings.ToLower(filepath.Ext(r.FileHeader.Filename)); !validator.IsInSlice(ext, allowedExtensions) {
		errs.Add("file", "unsupported file type "+ext)
	}

	return errs.Err()
}

type DocumentFilter struct {
	Category *string `json:"category,omitempty"`
	Search   *string `json:"search,omitempty"` // title or description

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *DocumentFilter) Validate() error {
	var errs validator.ValidationErrors

	validator.NormalizePagination(&f.Page, &f.Limit, &errs)

	if f.Category != nil && !validator.IsInSlice(*f.Category, Categories) {
		errs.Add("category", "category must be one of: "+strings.Join(Categories, ", "))
	}

	return errs.Err()
}

type ListDocumentResponse struct {
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
	Documents  []Document `json:"documents"`
}
