package task

import (
	"time"

	"github.com/shopspring/decimal"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var Priorities = []string{string(PriorityLow), string(PriorityMedium), string(PriorityHigh), string(PriorityUrgent)}

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var Statuses = []string{string(StatusPending), string(StatusInProgress), string(StatusCompleted), string(StatusCancelled)}

type Category string

const (
	CategoryDevelopment   Category = "development"
	CategoryDesign        Category = "design"
	CategoryTesting       Category = "testing"
	CategoryDocumentation Category = "documentation"
	CategoryMeeting       Category = "meeting"
	CategoryReview        Category = "review"
	CategoryOther         Category = "other"
)

var Categories = []string{
	string(CategoryDevelopment), string(CategoryDesign), string(CategoryTesting),
	string(CategoryDocumentation), string(CategoryMeeting), string(CategoryReview), string(CategoryOther),
}

type Task struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	AssignedTo     string          `json:"assigned_to"`
	AssignedBy     string          `json:"assigned_by"`
	Priority       Priority        `json:"priority"`
	Status         Status          `json:"status"`
	Category       Category        `json:"category"`
	DueDate        time.Time       `json:"due_date"`
	StartDate      *time.Time      `json:"start_date,omitempty"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	EstimatedHours decimal.Decimal `json:"estimated_hours"`
	ActualHours    decimal.Decimal `json:"actual_hours"`
	Progress       int             `json:"progress"`
	Tags           []string        `json:"tags"`
	IsActive       bool            `json:"is_active"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	// Joined fields
	AssignedToName *string       `json:"assigned_to_name,omitempty"`
	AssignedByName *string       `json:"assigned_by_name,omitempty"`
	Comments       []TaskComment `json:"comments,omitempty"`
}

type TaskComment struct {
	ID        string    `json:"id"`
	TaskID    string    `json:"task_id"`
	UserID    string    `json:"user_id"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`

	// Joined fields
	UserName *string `json:"user_name,omitempty"`
}

var transitions = map[Status][]Status{
	StatusPending:    {StatusInProgress, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether a task may move from one status to another.
// Completed and cancelled are terminal.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TransitionTo moves the task to status to. Moving to the current status is a
// no-op. Entering in-progress stamps StartDate once; entering completed
// stamps CompletedAt.
func (t *Task) TransitionTo(to Status, at time.Time) error {
	if t.Status == to {
		return nil
	}
	if !CanTransition(t.Status, to) {
		return ErrInvalidStateTransition
	}

	switch to {
	case StatusInProgress:
		if t.StartDate == nil {
			t.StartDate = &at
		}
	case StatusCompleted:
		t.CompletedAt = &at
	}
	t.Status = to
	return nil
}

// IsOpen reports whether the task is neither completed nor cancelled.
func (t *Task) IsOpen() bool {
	return t.Status == StatusPending || t.Status == StatusInProgress
}

// IsOverdue reports whether an open task's due date lies before the calendar
// date of now.
func (t *Task) IsOverdue(now time.Time) bool {
	if !t.IsOpen() {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	dy, dm, dd := t.DueDate.Date()
	due := time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC)
	return due.Before(today)
}

// IsHighPriorityOpen reports whether an open task is high or urgent.
func (t *Task) IsHighPriorityOpen() bool {
	return t.IsOpen() && (t.Priority == PriorityHigh || t.Priority == PriorityUrgent)
}

// CanView reports whether userID may read the task.
func (t *Task) CanView(userID string, isAdmin bool) bool {
	return isAdmin || t.AssignedTo == userID || t.AssignedBy == userID
}

// CanManage reports whether userID may edit every field or delete the task.
func (t *Task) CanManage(userID string, isAdmin bool) bool {
	return isAdmin || t.AssignedBy == userID
}
