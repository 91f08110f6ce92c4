package task

import (
	"strings"

	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateTaskRequest struct {
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	AssignedTo     string          `json:"assigned_to"`
	Priority       string          `json:"priority"`
	Category       string          `json:"category"`
	DueDate        string          `json:"due_date"` // YYYY-MM-DD
	EstimatedHours decimal.Decimal `json:"estimated_hours"`
	Tags           []string        `json:"tags,omitempty"`
}

func (r *CreateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		errs.Add("title", "title is required")
	} else if len(r.Title) > 255 {
		errs.Add("title", "title must not exceed 255 characters")
	}

	if !validator.IsValidUUID(r.AssignedTo) {
		errs.Add("assigned_to", "assigned_to must be a valid UUID")
	}

	if r.Priority == "" {
		r.Priority = string(PriorityMedium)
	}
	if !validator.IsInSlice(r.Priority, Priorities) {
		errs.Add("priority", "priority must be one of: "+strings.Join(Priorities, ", "))
	}

	if r.Category == "" {
		r.Category = string(CategoryOther)
	}
	if !validator.IsInSlice(r.Category, Categories) {
		errs.Add("category", "category must be one of: "+strings.Join(Categories, ", "))
	}

	if _, valid := validator.IsValidDate(r.DueDate); !valid {
		errs.Add("due_date", "due_date must be in YYYY-MM-DD format")
	}

	if r.EstimatedHours.IsNegative() {
		errs.Add("estimated_hours", "estimated_hours must not be negative")
	}

	r.Tags = normalizeTags(r.Tags)

	return errs.Err()
}

// UpdateTaskRequest is a partial update: nil fields are left unchanged.
type UpdateTaskRequest struct {
	ID             string           `json:"-"`
	Title          *string          `json:"title,omitempty"`
	Description    *string          `json:"description,omitempty"`
	AssignedTo     *string          `json:"assigned_to,omitempty"`
	Priority       *string          `json:"priority,omitempty"`
	Status         *string          `json:"status,omitempty"`
	Category       *string          `json:"category,omitempty"`
	DueDate        *string          `json:"due_date,omitempty"`
	EstimatedHours *decimal.Decimal `json:"estimated_hours,omitempty"`
	ActualHours    *decimal.Decimal `json:"actual_hours,omitempty"`
	Progress       *int             `json:"progress,omitempty"`
	Tags           *[]string        `json:"tags,omitempty"`
}

func (r *UpdateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}

	if r.Title != nil {
		*r.Title = strings.TrimSpace(*r.Title)
		if *r.Title == "" {
			errs.Add("title", "title must not be empty")
		} else if len(*r.Title) > 255 {
			errs.Add("title", "title must not exceed 255 characters")
		}
	}

	if r.AssignedTo != nil && !validator.IsValidUUID(*r.AssignedTo) {
		errs.Add("assigned_to", "assigned_to must be a valid UUID")
	}
	if r.Priority != nil && !validator.IsInSlice(*r.Priority, Priorities) {
		errs.Add("priority", "priority must be one of: "+strings.Join(Priorities, ", "))
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, Statuses) {
		errs.Add("status", "status must be one of: "+strings.Join(Statuses, ", "))
	}
	if r.Category != nil && !validator.IsInSlice(*r.Category, Categories) {
		errs.Add("category", "category must be one of: "+strings.Join(Categories, ", "))
	}
	if r.DueDate != nil {
		if _, valid := validator.IsValidDate(*r.DueDate); !valid {
			errs.Add("due_date", "due_date must be in YYYY-MM-DD format")
		}
	}
	if r.EstimatedHours != nil && r.EstimatedHours.IsNegative() {
		errs.Add("estimated_hours", "estimated_hours must not be negative")
	}
	if r.ActualHours != nil && r.ActualHours.IsNegative() {
		errs.Add("actual_hours", "actual_hours must not be negative")
	}
	if r.Progress != nil && (*r.Progress < 0 || *r.Progress > 100) {
		errs.Add("progress", "progress must be between 0 and 100")
	}
	if r.Tags != nil {
		tags := normalizeTags(*r.Tags)
		r.Tags = &tags
	}

	return errs.Err()
}

// TouchesOnlyAssigneeFields reports whether the update is limited to the
// fields an assignee may change.
func (r *UpdateTaskRequest) TouchesOnlyAssigneeFields() bool {
	return r.Title == nil && r.Description == nil && r.AssignedTo == nil &&
		r.Priority == nil && r.Category == nil && r.DueDate == nil &&
		r.EstimatedHours == nil && r.Tags == nil
}

func normalizeTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" || seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
	}
	return out
}

type AddCommentRequest struct {
	TaskID  string `json:"-"`
	Comment string `json:"comment"`
}

func (r *AddCommentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.TaskID) {
		errs.Add("task_id", "task_id must be a valid UUID")
	}

	r.Comment = strings.TrimSpace(r.Comment)
	if r.Comment == "" {
		errs.Add("comment", "comment is required")
	} else if len(r.Comment) > 2000 {
		errs.Add("comment", "comment must not exceed 2000 characters")
	}

	return errs.Err()
}

const (
	ViewAssigned = "assigned"
	ViewCreated  = "created"
	ViewAll      = "all"
)

type TaskFilter struct {
	Status   *string `json:"status,omitempty"`
	Priority *string `json:"priority,omitempty"`
	Category *string `json:"category,omitempty"`
	Search   *string `json:"search,omitempty"` // title or description
	View     string  `json:"view"`

	// Scope, set by the service from the caller.
	AssignedTo *string `json:"-"`
	AssignedBy *string `json:"-"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *TaskFilter) Validate() error {
	var errs validator.ValidationErrors

	validator.NormalizePagination(&f.Page, &f.Limit, &errs)

	if f.Status != nil && !validator.IsInSlice(*f.Status, Statuses) {
		errs.Add("status", "status must be one of: "+strings.Join(Statuses, ", "))
	}
	if f.Priority != nil && !validator.IsInSlice(*f.Priority, Priorities) {
		errs.Add("priority", "priority must be one of: "+strings.Join(Priorities, ", "))
	}
	if f.Category != nil && !validator.IsInSlice(*f.Category, Categories) {
		errs.Add("category", "category must be one of: "+strings.Join(Categories, ", "))
	}
	if f.View != "" && !validator.IsInSlice(f.View, []string{ViewAssigned, ViewCreated, ViewAll}) {
		errs.Add("view", "view must be one of: assigned, created, all")
	}

	return errs.Err()
}

type ListTaskResponse struct {
	TotalCount int64  `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
	Tasks      []Task `json:"tasks"`
}

type TaskStats struct {
	Total        int64 `json:"total"`
	Pending      int64 `json:"pending"`
	InProgress   int64 `json:"in_progress"`
	Completed    int64 `json:"completed"`
	Overdue      int64 `json:"overdue"`
	HighPriority int64 `json:"high_priority"`
}
