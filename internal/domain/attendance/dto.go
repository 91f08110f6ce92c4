package attendance

import (
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/validator"
)

type AttendanceFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	StartDate  *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate    *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status     *string `json:"status,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	validator.NormalizePagination(&f.Page, &f.Limit, &errs)

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}

	if f.Status != nil {
		validStatuses := []string{string(StatusPresent), string(StatusLate), string(StatusAbsent)}
		if !validator.IsInSlice(*f.Status, validStatuses) {
			errs.Add("status", "status must be one of: present, late, absent")
		}
	}

	var start, end string
	if f.StartDate != nil && *f.StartDate != "" {
		if _, valid := validator.IsValidDate(*f.StartDate); !valid {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		} else {
			start = *f.StartDate
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if _, valid := validator.IsValidDate(*f.EndDate); !valid {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		} else {
			end = *f.EndDate
		}
	}
	if start != "" && end != "" && end < start {
		errs.Add("end_date", "end_date must not be before start_date")
	}

	return errs.Err()
}

type MarkAbsentRequest struct {
	Date string `json:"date"` // YYYY-MM-DD
}

func (r *MarkAbsentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Date) {
		errs.Add("date", "date is required")
	} else if _, valid := validator.IsValidDate(r.Date); !valid {
		errs.Add("date", "date must be in YYYY-MM-DD format")
	}

	return errs.Err()
}

type ListAttendanceResponse struct {
	TotalCount  int64        `json:"total_count"`
	Page        int          `json:"page"`
	Limit       int          `json:"limit"`
	TotalPages  int          `json:"total_pages"`
	Attendances []Attendance `json:"attendances"`
}

type MarkAbsentResponse struct {
	Date   string `json:"date"`
	Marked int64  `json:"marked"`
}
