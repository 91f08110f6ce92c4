package employee

import (
	"time"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
	"github.com/shopspring/decimal"
)

// Employee is also the user record: ID is the identity provider subject.
type Employee struct {
	ID            string             `json:"id"`
	FullName      string             `json:"full_name"`
	Email         string             `json:"email"`
	CNIC          string             `json:"cnic"`
	PhoneNumber   string             `json:"phone_number"`
	Role          user.Role          `json:"role"`
	DepartmentID  *string            `json:"department_id,omitempty"`
	DesignationID *string            `json:"designation_id,omitempty"`
	DateOfJoining time.Time          `json:"date_of_joining"`
	Salary        decimal.Decimal    `json:"salary"`
	IsActive      bool               `json:"is_active"`
	ProfileImage  *string            `json:"profile_image,omitempty"`
	LeaveBalance  leave.LeaveBalance `json:"leave_balance"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`

	// Joined fields
	DepartmentName  *string `json:"department_name,omitempty"`
	DesignationName *string `json:"designation_title,omitempty"`
}
