package leave

import (
	"strings"

	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/validator"
)

type CreateLeaveRequestRequest struct {
	LeaveType string `json:"leave_type"`
	StartDate string `json:"start_date"` // YYYY-MM-DD
	EndDate   string `json:"end_date"`   // YYYY-MM-DD
	Reason    string `json:"reason"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Type(r.LeaveType).Valid() {
		errs.Add("leave_type", "leave_type must be one of: annual, sick, casual, emergency")
	}

	if validator.IsEmpty(r.StartDate) {
		errs.Add("start_date", "start_date is required")
	} else if _, valid := validator.IsValidDate(r.StartDate); !valid {
		errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
	}

	if validator.IsEmpty(r.EndDate) {
		errs.Add("end_date", "end_date is required")
	} else if _, valid := validator.IsValidDate(r.EndDate); !valid {
		errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
	}

	r.Reason = strings.TrimSpace(r.Reason)
	if r.Reason == "" {
		errs.Add("reason", "reason is required")
	} else if len(r.Reason) > 1000 {
		errs.Add("reason", "reason must not exceed 1000 characters")
	}

	return errs.Err()
}

type UpdateLeaveStatusRequest struct {
	ID              string  `json:"-"`
	Status          string  `json:"status"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

func (r *UpdateLeaveStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}

	if r.Status != string(StatusApproved) && r.Status != string(StatusRejected) {
		errs.Add("status", "status must be one of: approved, rejected")
	}

	if r.RejectionReason != nil && len(*r.RejectionReason) > 1000 {
		errs.Add("rejection_reason", "rejection_reason must not exceed 1000 characters")
	}

	return errs.Err()
}

type LeaveRequestFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Status     *string `json:"status,omitempty"`
	LeaveType  *string `json:"leave_type,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	validator.NormalizePagination(&f.Page, &f.Limit, &errs)

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}

	if f.Status != nil {
		validStatuses := []string{string(StatusPending), string(StatusApproved), string(StatusRejected)}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs.Add("status", "status must be one of: pending, approved, rejected")
		}
	}

	if f.LeaveType != nil && !Type(*f.LeaveType).Valid() {
		errs.Add("leave_type", "leave_type must be one of: annual, sick, casual, emergency")
	}

	return errs.Err()
}

type ListLeaveRequestResponse struct {
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
	Requests   []LeaveRequest `json:"leave_requests"`
}
