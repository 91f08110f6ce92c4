package employee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/officehr-backend-go/internal/service/file"
	"github.com/jackc/pgx/v5/pgconn"
)

type EmployeeServiceImpl struct {
	employeeRepo        employee.EmployeeRepository
	fileService         file.FileService
	defaultLeaveBalance leave.LeaveBalance
}

func NewEmployeeService(
	employeeRepo employee.EmployeeRepository,
	fileService file.FileService,
	defaultLeaveBalance leave.LeaveBalance,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		employeeRepo:        employeeRepo,
		fileService:         fileService,
		defaultLeaveBalance: defaultLeaveBalance,
	}
}

// mapWriteError translates constraint violations raised by employee writes.
func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case "23505":
		switch pgErr.ConstraintName {
		case "employees_email_key":
			return employee.ErrEmailExists
		case "employees_cnic_key":
			return employee.ErrCNICExists
		case "employees_pkey":
			return employee.ErrEmployeeIDExists
		}
	case "23503":
		return employee.ErrInvalidReference
	}
	return err
}

// resolveImage replaces the stored profile image key with its public URL.
func (s *EmployeeServiceImpl) resolveImage(ctx context.Context, emp employee.Employee) employee.Employee {
	if emp.ProfileImage == nil || *emp.ProfileImage == "" {
		return emp
	}
	url, err := s.fileService.GetFileURL(ctx, *emp.ProfileImage, 0)
	if err != nil {
		slog.Warn("Failed to resolve profile image URL", "employee_id", emp.ID, "error", err)
		return emp
	}
	emp.ProfileImage = &url
	return emp
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, caller user.Identity, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if err := caller.Require(user.PermissionEmployeeManage); err != nil {
		return employee.Employee{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	dateOfJoining, _ := time.Parse("2006-01-02", req.DateOfJoining)

	newEmployee := employee.Employee{
		FullName:      req.FullName,
		Email:         req.Email,
		CNIC:          req.CNIC,
		PhoneNumber:   req.PhoneNumber,
		Role:          user.Role(req.Role),
		DepartmentID:  emptyToNil(req.DepartmentID),
		DesignationID: emptyToNil(req.DesignationID),
		DateOfJoining: dateOfJoining,
		Salary:        req.Salary,
		IsActive:      true,
		LeaveBalance:  s.defaultLeaveBalance,
	}
	if req.ID != nil {
		newEmployee.ID = *req.ID
	}
	if req.LeaveBalance != nil {
		newEmployee.LeaveBalance = *req.LeaveBalance
	}

	created, err := s.employeeRepo.Create(ctx, newEmployee)
	if err != nil {
		return employee.Employee{}, mapWriteError(err)
	}

	slog.Info("Employee created", "employee_id", created.ID, "role", created.Role, "by", caller.UserID)

	// Reload for department and designation names
	return s.employeeRepo.GetByID(ctx, created.ID)
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, caller user.Identity, id string) (employee.Employee, error) {
	if err := caller.Validate(); err != nil {
		return employee.Employee{}, err
	}
	if !caller.CanAccess(id) {
		return employee.Employee{}, employee.ErrUnauthorized
	}

	emp, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.Employee{}, err
	}
	return s.resolveImage(ctx, emp), nil
}

// GetProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetProfile(ctx context.Context, caller user.Identity) (employee.Employee, error) {
	if err := caller.Require(user.PermissionViewOwnProfile); err != nil {
		return employee.Employee{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, caller.UserID)
	if err != nil {
		return employee.Employee{}, err
	}
	return s.resolveImage(ctx, emp), nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, caller user.Identity, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	if err := caller.Require(user.PermissionEmployeeManage); err != nil {
		return employee.Employee{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	existing, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.Employee{}, err
	}

	if req.FullName != nil {
		existing.FullName = *req.FullName
	}
	if req.Email != nil {
		existing.Email = *req.Email
	}
	if req.CNIC != nil {
		existing.CNIC = *req.CNIC
	}
	if req.PhoneNumber != nil {
		existing.PhoneNumber = *req.PhoneNumber
	}
	if req.Role != nil {
		existing.Role = user.Role(*req.Role)
	}
	// An empty string clears the reference
	if req.DepartmentID != nil {
		existing.DepartmentID = emptyToNil(req.DepartmentID)
	}
	if req.DesignationID != nil {
		existing.DesignationID = emptyToNil(req.DesignationID)
	}
	if req.DateOfJoining != nil {
		existing.DateOfJoining, _ = time.Parse("2006-01-02", *req.DateOfJoining)
	}
	if req.Salary != nil {
		existing.Salary = *req.Salary
	}
	if req.IsActive != nil {
		existing.IsActive = *req.IsActive
	}
	if req.LeaveBalance != nil {
		existing.LeaveBalance = *req.LeaveBalance
	}

	if _, err := s.employeeRepo.Update(ctx, existing); err != nil {
		return employee.Employee{}, mapWriteError(err)
	}

	slog.Info("Employee updated", "employee_id", req.ID, "by", caller.UserID)

	updated, err := s.employeeRepo.GetByID(ctx, req.ID)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to get updated employee: %w", err)
	}
	return s.resolveImage(ctx, updated), nil
}

// DeleteEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) DeleteEmployee(ctx context.Context, caller user.Identity, id string) error {
	if err := caller.Require(user.PermissionEmployeeManage); err != nil {
		return err
	}

	// Prevent self-deletion
	if caller.UserID == id {
		return employee.ErrCannotDeleteSelf
	}

	if err := s.employeeRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	slog.Info("Employee deactivated", "employee_id", id, "by", caller.UserID)
	return nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, caller user.Identity, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if err := caller.Require(user.PermissionEmployeeViewAll); err != nil {
		return employee.ListEmployeeResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	for i := range employees {
		employees[i] = s.resolveImage(ctx, employees[i])
	}

	return employee.ListEmployeeResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Employees:  employees,
	}, nil
}

// UploadAvatar implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UploadAvatar(ctx context.Context, caller user.Identity, req employee.UploadAvatarRequest) (employee.Employee, error) {
	if err := caller.Require(user.PermissionEditOwnProfile); err != nil {
		return employee.Employee{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	existing, err := s.employeeRepo.GetByID(ctx, caller.UserID)
	if err != nil {
		return employee.Employee{}, err
	}

	key, err := s.fileService.UploadAvatar(ctx, caller.UserID, req.File, req.FileHeader.Filename)
	if err != nil {
		if errors.Is(err, file.ErrInvalidImage) {
			return employee.Employee{}, employee.ErrInvalidImage
		}
		return employee.Employee{}, fmt.Errorf("failed to upload avatar: %w", err)
	}

	if err := s.employeeRepo.UpdateProfileImage(ctx, caller.UserID, key); err != nil {
		_ = s.fileService.DeleteFile(ctx, key)
		return employee.Employee{}, fmt.Errorf("failed to update profile image: %w", err)
	}

	if existing.ProfileImage != nil && *existing.ProfileImage != "" {
		if err := s.fileService.DeleteFile(ctx, *existing.ProfileImage); err != nil {
			slog.Warn("Failed to delete previous profile image", "employee_id", caller.UserID, "key", *existing.ProfileImage, "error", err)
		}
	}

	slog.Info("Profile image updated", "employee_id", caller.UserID)

	existing.ProfileImage = &key
	return s.resolveImage(ctx, existing), nil
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
