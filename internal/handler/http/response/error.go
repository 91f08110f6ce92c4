package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/document"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/master/designation"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Identity
	case errors.Is(err, jwt.ErrInvalidToken), errors.Is(err, user.ErrInvalidIdentity):
		Unauthorized(w, "Invalid or missing token")
	case errors.Is(err, user.ErrAdminPrivilegeRequired),
		errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, employee.ErrUnauthorized),
		errors.Is(err, task.ErrUnauthorized),
		errors.Is(err, task.ErrAssigneeOnlyFields):
		Forbidden(w, err.Error())

	// Not found
	case errors.Is(err, employee.ErrEmployeeNotFound),
		errors.Is(err, leave.ErrEmployeeNotFound),
		errors.Is(err, payroll.ErrEmployeeNotFound),
		errors.Is(err, attendance.ErrAttendanceNotFound),
		errors.Is(err, attendance.ErrMissingCheckIn),
		errors.Is(err, leave.ErrLeaveRequestNotFound),
		errors.Is(err, payroll.ErrSalaryRecordNotFound),
		errors.Is(err, department.ErrDepartmentNotFound),
		errors.Is(err, designation.ErrDesignationNotFound),
		errors.Is(err, task.ErrTaskNotFound),
		errors.Is(err, document.ErrDocumentNotFound),
		errors.Is(err, document.ErrFileNotFound):
		NotFound(w, err.Error())

	// Conflicts
	case errors.Is(err, attendance.ErrDuplicateCheckIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, leave.ErrInvalidStateTransition),
		errors.Is(err, payroll.ErrDuplicatePeriod),
		errors.Is(err, payroll.ErrAlreadyPaid),
		errors.Is(err, task.ErrInvalidStateTransition),
		errors.Is(err, employee.ErrEmployeeIDExists),
		errors.Is(err, employee.ErrEmailExists),
		errors.Is(err, employee.ErrCNICExists),
		errors.Is(err, employee.ErrCannotDeleteSelf),
		errors.Is(err, department.ErrDepartmentNameExists),
		errors.Is(err, designation.ErrDesignationTitleExists):
		Conflict(w, err.Error())

	// Rule violations
	case errors.Is(err, attendance.ErrInvalidInterval),
		errors.Is(err, attendance.ErrEmployeeInactive),
		errors.Is(err, leave.ErrInvalidDateRange),
		errors.Is(err, leave.ErrInsufficientLeaveBalance),
		errors.Is(err, payroll.ErrInvalidPeriod),
		errors.Is(err, payroll.ErrInvalidWorkingDays),
		errors.Is(err, payroll.ErrNegativeSalary),
		errors.Is(err, payroll.ErrEmployeeInactive),
		errors.Is(err, employee.ErrEmployeeNotActive),
		errors.Is(err, employee.ErrInvalidReference),
		errors.Is(err, employee.ErrInvalidImage),
		errors.Is(err, task.ErrAssigneeNotFound):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
