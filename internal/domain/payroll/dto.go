package payroll

import (
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/validator"
)

type GenerateSalaryRequest struct {
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
}

func (r *GenerateSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	validatePeriod(r.Month, r.Year, &errs)

	return errs.Err()
}

type GenerateBatchRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *GenerateBatchRequest) Validate() error {
	var errs validator.ValidationErrors
	validatePeriod(r.Month, r.Year, &errs)
	return errs.Err()
}

func validatePeriod(month, year int, errs *validator.ValidationErrors) {
	if !validator.IsValidMonth(month) {
		errs.Add("month", "month must be between 1 and 12")
	}
	if year < 1970 || year > 9999 {
		errs.Add("year", "year must be between 1970 and 9999")
	}
}

type SkippedEmployee struct {
	EmployeeID   string `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Reason       string `json:"reason"`
}

type GenerateBatchResponse struct {
	Month     int               `json:"month"`
	Year      int               `json:"year"`
	Generated []SalaryRecord    `json:"generated"`
	Skipped   []SkippedEmployee `json:"skipped"`
}

type SalaryFilter struct {
	EmployeeID *string `json:"employee_id,omitempty"`
	Month      *int    `json:"month,omitempty"`
	Year       *int    `json:"year,omitempty"`
	IsPaid     *bool   `json:"is_paid,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *SalaryFilter) Validate() error {
	var errs validator.ValidationErrors

	validator.NormalizePagination(&f.Page, &f.Limit, &errs)

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if f.Month != nil && !validator.IsValidMonth(*f.Month) {
		errs.Add("month", "month must be between 1 and 12")
	}
	if f.Year != nil && (*f.Year < 1970 || *f.Year > 9999) {
		errs.Add("year", "year must be between 1970 and 9999")
	}

	return errs.Err()
}

type ListSalaryResponse struct {
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
	Salaries   []SalaryRecord `json:"salaries"`
}
