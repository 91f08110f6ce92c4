package leave

import (
	"time"
)

type Type string

const (
	TypeAnnual    Type = "annual"
	TypeSick      Type = "sick"
	TypeCasual    Type = "casual"
	TypeEmergency Type = "emergency"
)

// Valid reports whether t is a known leave type.
func (t Type) Valid() bool {
	switch t {
	case TypeAnnual, TypeSick, TypeCasual, TypeEmergency:
		return true
	}
	return false
}

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// LeaveRequest entity. Status only moves pending -> approved | rejected.
type LeaveRequest struct {
	ID              string     `json:"id"`
	EmployeeID      string     `json:"employee_id"`
	Type            Type       `json:"leave_type"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         time.Time  `json:"end_date"`
	Days            int        `json:"days"`
	Reason          string     `json:"reason"`
	Status          Status     `json:"status"`
	ApprovedBy      *string    `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`

	// Relationships (for responses)
	EmployeeName *string `json:"employee_name,omitempty"`
	ApproverName *string `json:"approver_name,omitempty"`
}

// IsPending checks if the request still awaits a decision
func (r *LeaveRequest) IsPending() bool {
	return r.Status == StatusPending
}

// Approve records an approval by approverID.
func (r *LeaveRequest) Approve(approverID string, at time.Time) error {
	if !r.IsPending() {
		return ErrInvalidStateTransition
	}
	r.Status = StatusApproved
	r.ApprovedBy = &approverID
	r.ApprovedAt = &at
	r.RejectionReason = nil
	return nil
}

// Reject records a rejection by approverID. An empty reason is stored as nil.
func (r *LeaveRequest) Reject(approverID string, reason string, at time.Time) error {
	if !r.IsPending() {
		return ErrInvalidStateTransition
	}
	r.Status = StatusRejected
	r.ApprovedBy = &approverID
	r.ApprovedAt = &at
	if reason != "" {
		r.RejectionReason = &reason
	}
	return nil
}

// LeaveBalance holds the remaining days per counted leave type.
type LeaveBalance struct {
	Annual int `json:"annual"`
	Sick   int `json:"sick"`
	Casual int `json:"casual"`
}

// Of returns the counter for t. Emergency leave has no counter.
func (b LeaveBalance) Of(t Type) (int, bool) {
	switch t {
	case TypeAnnual:
		return b.Annual, true
	case TypeSick:
		return b.Sick, true
	case TypeCasual:
		return b.Casual, true
	}
	return 0, false
}

// Deduct returns b with days subtracted from the counter of t.
func (b LeaveBalance) Deduct(t Type, days int) LeaveBalance {
	switch t {
	case TypeAnnual:
		b.Annual -= days
	case TypeSick:
		b.Sick -= days
	case TypeCasual:
		b.Casual -= days
	}
	return b
}
