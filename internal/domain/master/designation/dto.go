package designation

import (
	"strings"

	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/validator"
)

type CreateDesignationRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateDesignationRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		errs.Add("title", "title is required")
	} else if len(r.Title) > 100 {
		errs.Add("title", "title must not exceed 100 characters")
	}

	if r.Description != nil && len(*r.Description) > 500 {
		errs.Add("description", "description must not exceed 500 characters")
	}

	return errs.Err()
}

type UpdateDesignationRequest struct {
	ID          string  `json:"-"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

func (r *UpdateDesignationRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}

	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		errs.Add("title", "title is required")
	} else if len(r.Title) > 100 {
		errs.Add("title", "title must not exceed 100 characters")
	}

	if r.Description != nil && len(*r.Description) > 500 {
		errs.Add("description", "description must not exceed 500 characters")
	}

	return errs.Err()
}
