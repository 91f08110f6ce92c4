package master

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/master/designation"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type MasterService interface {
	// Department operations
	CreateDepartment(ctx context.Context, caller user.Identity, req department.CreateDepartmentRequest) (department.Department, error)
	GetDepartment(ctx context.Context, caller user.Identity, id string) (department.Department, error)
	ListDepartments(ctx context.Context, caller user.Identity) ([]department.Department, error)
	UpdateDepartment(ctx context.Context, caller user.Identity, req department.UpdateDepartmentRequest) (department.Department, error)
	DeleteDepartment(ctx context.Context, caller user.Identity, id string) error

	// Designation operations
	CreateDesignation(ctx context.Context, caller user.Identity, req designation.CreateDesignationRequest) (designation.Designation, error)
	GetDesignation(ctx context.Context, caller user.Identity, id string) (designation.Designation, error)
	ListDesignations(ctx context.Context, caller user.Identity) ([]designation.Designation, error)
	UpdateDesignation(ctx context.Context, caller user.Identity, req designation.UpdateDesignationRequest) (designation.Designation, error)
	DeleteDesignation(ctx context.Context, caller user.Identity, id string) error
}

type masterServiceImpl struct {
	departmentRepo  department.DepartmentRepository
	designationRepo designation.DesignationRepository
}

func NewMasterService(
	departmentRepo department.DepartmentRepository,
	designationRepo designation.DesignationRepository,
) MasterService {
	return &masterServiceImpl{
		departmentRepo:  departmentRepo,
		designationRepo: designationRepo,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// ==================== DEPARTMENT OPERATIONS ====================

func (s *masterServiceImpl) CreateDepartment(ctx context.Context, caller user.Identity, req department.CreateDepartmentRequest) (department.Department, error) {
	if err := caller.Require(user.PermissionMasterManage); err != nil {
		return department.Department{}, err
	}
	if err := req.Validate(); err != nil {
		return department.Department{}, err
	}

	created, err := s.departmentRepo.Create(ctx, department.Department{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return department.Department{}, department.ErrDepartmentNameExists
		}
		return department.Department{}, fmt.Errorf("failed to create department: %w", err)
	}

	slog.Info("Department created", "department_id", created.ID, "name", created.Name, "by", caller.UserID)
	return created, nil
}

func (s *masterServiceImpl) GetDepartment(ctx context.Context, caller user.Identity, id string) (department.Department, error) {
	if err := caller.Validate(); err != nil {
		return department.Department{}, err
	}

	entity, err := s.departmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		return department.Department{}, err
	}
	return entity, nil
}

func (s *masterServiceImpl) ListDepartments(ctx context.Context, caller user.Identity) ([]department.Department, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}

	departments, err := s.departmentRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if departments == nil {
		departments = []department.Department{}
	}
	return departments, nil
}

func (s *masterServiceImpl) UpdateDepartment(ctx context.Context, caller user.Identity, req department.UpdateDepartmentRequest) (department.Department, error) {
	if err := caller.Require(user.PermissionMasterManage); err != nil {
		return department.Department{}, err
	}
	if err := req.Validate(); err != nil {
		return department.Department{}, err
	}

	updated, err := s.departmentRepo.Update(ctx, req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return department.Department{}, department.ErrDepartmentNotFound
		}
		if isUniqueViolation(err) {
			return department.Department{}, department.ErrDepartmentNameExists
		}
		return department.Department{}, fmt.Errorf("failed to update department: %w", err)
	}

	slog.Info("Department updated", "department_id", updated.ID, "by", caller.UserID)
	return updated, nil
}

func (s *masterServiceImpl) DeleteDepartment(ctx context.Context, caller user.Identity, id string) error {
	if err := caller.Require(user.PermissionMasterManage); err != nil {
		return err
	}

	if err := s.departmentRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	slog.Info("Department deleted", "department_id", id, "by", caller.UserID)
	return nil
}

// ==================== DESIGNATION OPERATIONS ====================

func (s *masterServiceImpl) CreateDesignation(ctx context.Context, caller user.Identity, req designation.CreateDesignationRequest) (designation.Designation, error) {
	if err := caller.Require(user.PermissionMasterManage); err != nil {
		return designation.Designation{}, err
	}
	if err := req.Validate(); err != nil {
		return designation.Designation{}, err
	}

	created, err := s.designationRepo.Create(ctx, designation.Designation{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		if isUniqueViolation(err) {
			return designation.Designation{}, designation.ErrDesignationTitleExists
		}
		return designation.Designation{}, fmt.Errorf("failed to create designation: %w", err)
	}

	slog.Info("Designation created", "designation_id", created.ID, "title", created.Title, "by", caller.UserID)
	return created, nil
}

func (s *masterServiceImpl) GetDesignation(ctx context.Context, caller user.Identity, id string) (designation.Designation, error) {
	if err := caller.Validate(); err != nil {
		return designation.Designation{}, err
	}

	entity, err := s.designationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return designation.Designation{}, designation.ErrDesignationNotFound
		}
		return designation.Designation{}, err
	}
	return entity, nil
}

func (s *masterServiceImpl) ListDesignations(ctx context.Context, caller user.Identity) ([]designation.Designation, error) {
	if err := caller.Validate(); err != nil {
		return nil, err
	}

	designations, err := s.designationRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if designations == nil {
		designations = []designation.Designation{}
	}
	return designations, nil
}

func (s *masterServiceImpl) UpdateDesignation(ctx context.Context, caller user.Identity, req designation.UpdateDesignationRequest) (designation.Designation, error) {
	if err := caller.Require(user.PermissionMasterManage); err != nil {
		return designation.Designation{}, err
	}
	if err := req.Validate(); err != nil {
		return designation.Designation{}, err
	}

	updated, err := s.designationRepo.Update(ctx, req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return designation.Designation{}, designation.ErrDesignationNotFound
		}
		if isUniqueViolation(err) {
			return designation.Designation{}, designation.ErrDesignationTitleExists
		}
		return designation.Designation{}, fmt.Errorf("failed to update designation: %w", err)
	}

	slog.Info("Designation updated", "designation_id", updated.ID, "by", caller.UserID)
	return updated, nil
}

func (s *masterServiceImpl) DeleteDesignation(ctx context.Context, caller user.Identity, id string) error {
	if err := caller.Require(user.PermissionMasterManage); err != nil {
		return err
	}

	if err := s.designationRepo.SoftDelete(ctx, id); err != nil {
		return err
	}

	slog.Info("Designation deleted", "designation_id", id, "by", caller.UserID)
	return nil
}
