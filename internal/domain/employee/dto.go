package employee

import (
	"mime/multipart"
	"strings"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateEmployeeRequest struct {
	// ID is the identity provider subject. A new UUID is generated when empty.
	ID            *string             `json:"id,omitempty"`
	FullName      string              `json:"full_name"`
	Email         string              `json:"email"`
	CNIC          string              `json:"cnic"`
	PhoneNumber   string              `json:"phone_number"`
	Role          string              `json:"role"`
	DepartmentID  *string             `json:"department_id,omitempty"`
	DesignationID *string             `json:"designation_id,omitempty"`
	DateOfJoining string              `json:"date_of_joining"`
	Salary        decimal.Decimal     `json:"salary"`
	LeaveBalance  *leave.LeaveBalance `json:"leave_balance,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ID != nil && !validator.IsValidUUID(*r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}

	r.FullName = strings.TrimSpace(r.FullName)
	if r.FullName == "" {
		errs.Add("full_name", "full_name is required")
	} else if len(r.FullName) > 255 {
		errs.Add("full_name", "full_name must not exceed 255 characters")
	}

	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "email must be a valid email address")
	}

	if !validator.IsValidCNIC(r.CNIC) {
		errs.Add("cnic", "cnic must be 13 digits, optionally formatted as 12345-1234567-1")
	}

	if !validator.IsValidPhoneNumber(r.PhoneNumber) {
		errs.Add("phone_number", "phone_number must be 10-15 digits")
	}

	if r.Role == "" {
		r.Role = string(user.RoleEmployee)
	}
	if !user.Role(r.Role).Valid() {
		errs.Add("role", "role must be one of: admin, employee")
	}

	validateReferences(r.DepartmentID, r.DesignationID, &errs)

	if _, valid := validator.IsValidDate(r.DateOfJoining); !valid {
		errs.Add("date_of_joining", "date_of_joining must be in YYYY-MM-DD format")
	}

	if r.Salary.IsNegative() {
		errs.Add("salary", "salary must not be negative")
	}

	if r.LeaveBalance != nil {
		validateBalance(*r.LeaveBalance, &errs)
	}

	return errs.Err()
}

// UpdateEmployeeRequest is a partial update: nil fields are left unchanged.
type UpdateEmployeeRequest struct {
	ID            string              `json:"-"`
	FullName      *string             `json:"full_name,omitempty"`
	Email         *string             `json:"email,omitempty"`
	CNIC          *string             `json:"cnic,omitempty"`
	PhoneNumber   *string             `json:"phone_number,omitempty"`
	Role          *string             `json:"role,omitempty"`
	DepartmentID  *string             `json:"department_id,omitempty"`
	DesignationID *string             `json:"designation_id,omitempty"`
	DateOfJoining *string             `json:"date_of_joining,omitempty"`
	Salary        *decimal.Decimal    `json:"salary,omitempty"`
	IsActive      *bool               `json:"is_active,omitempty"`
	LeaveBalance  *leave.LeaveBalance `json:"leave_balance,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.ID) {
		errs.Add("id", "id must be a valid UUID")
	}

	if r.FullName != nil {
		*r.FullName = strings.TrimSpace(*r.FullName)
		if *r.FullName == "" {
			errs.Add("full_name", "full_name must not be empty")
		} else if len(*r.FullName) > 255 {
			errs.Add("full_name", "full_name must not exceed 255 characters")
		}
	}

	if r.Email != nil {
		*r.Email = strings.ToLower(strings.TrimSpace(*r.Email))
		if !validator.IsValidEmail(*r.Email) {
			errs.Add("email", "email must be a valid email address")
		}
	}

	if r.CNIC != nil && !validator.IsValidCNIC(*r.CNIC) {
		errs.Add("cnic", "cnic must be 13 digits, optionally formatted as 12345-1234567-1")
	}

	if r.PhoneNumber != nil && !validator.IsValidPhoneNumber(*r.PhoneNumber) {
		errs.Add("phone_number", "phone_number must be 10-15 digits")
	}

	if r.Role != nil && !user.Role(*r.Role).Valid() {
		errs.Add("role", "role must be one of: admin, employee")
	}

	validateReferences(r.DepartmentID, r.DesignationID, &errs)

	if r.DateOfJoining != nil {
		if _, valid := validator.IsValidDate(*r.DateOfJoining); !valid {
			errs.Add("date_of_joining", "date_of_joining must be in YYYY-MM-DD format")
		}
	}

	if r.Salary != nil && r.Salary.IsNegative() {
		errs.Add("salary", "salary must not be negative")
	}

	if r.LeaveBalance != nil {
		validateBalance(*r.LeaveBalance, &errs)
	}

	return errs.Err()
}

func validateReferences(departmentID, designationID *string, errs *validator.ValidationErrors) {
	if departmentID != nil && *departmentID != "" && !validator.IsValidUUID(*departmentID) {
		errs.Add("department_id", "department_id must be a valid UUID")
	}
	if designationID != nil && *designationID != "" && !validator.IsValidUUID(*designationID) {
		errs.Add("designation_id", "designation_id must be a valid UUID")
	}
}

func validateBalance(b leave.LeaveBalance, errs *validator.ValidationErrors) {
	if b.Annual < 0 || b.Sick < 0 || b.Casual < 0 {
		errs.Add("leave_balance", "leave_balance values must not be negative")
	}
}

type EmployeeFilter struct {
	Search       *string `json:"search,omitempty"` // name, email or CNIC
	DepartmentID *string `json:"department_id,omitempty"`
	Role         *string `json:"role,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`

	// Pagination
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	validator.NormalizePagination(&f.Page, &f.Limit, &errs)

	if f.DepartmentID != nil && !validator.IsValidUUID(*f.DepartmentID) {
		errs.Add("department_id", "department_id must be a valid UUID")
	}
	if f.Role != nil && !user.Role(*f.Role).Valid() {
		errs.Add("role", "role must be one of: admin, employee")
	}
	if f.Search != nil {
		s := strings.TrimSpace(*f.Search)
		f.Search = &s
		if s == "" {
			f.Search = nil
		}
	}

	return errs.Err()
}

type ListEmployeeResponse struct {
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
	Employees  []Employee `json:"employees"`
}

type UploadAvatarRequest struct {
	File       multipart.File        `json:"-"`
	FileHeader *multipart.FileHeader `json:"-"`
}

func (r *UploadAvatarRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.File == nil || r.FileHeader == nil {
		errs.Add("file", "profile image is required")
		return errs
	}

	filename := strings.ToLower(r.FileHeader.Filename)
	if !strings.HasSuffix(filename, ".jpg") && !strings.HasSuffix(filename, ".jpeg") && !strings.HasSuffix(filename, ".png") {
		errs.Add("file", "invalid file type: only jpg, jpeg, png allowed")
	} else if r.FileHeader.Size > 5<<20 {
		errs.Add("file", "profile image size must not exceed 5MB")
	}

	return errs.Err()
}
