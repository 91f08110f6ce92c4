package master

import (
	"context"
	"fmt"
	"testing"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/master/department"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/master/designation"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDepartmentRepo returns raw driver errors like the PostgreSQL repository.
type fakeDepartmentRepo struct {
	items map[string]department.Department
}

func (f *fakeDepartmentRepo) nameTaken(id, name string) bool {
	for _, d := range f.items {
		if d.IsActive && d.ID != id && d.Name == name {
			return true
		}
	}
	return false
}

func (f *fakeDepartmentRepo) Create(ctx context.Context, d department.Department) (department.Department, error) {
	if f.nameTaken("", d.Name) {
		return department.Department{}, fmt.Errorf("failed to create department: %w", &pgconn.PgError{Code: "23505"})
	}
	d.ID = uuid.NewString()
	d.IsActive = true
	f.items[d.ID] = d
	return d, nil
}

func (f *fakeDepartmentRepo) GetByID(ctx context.Context, id string) (department.Department, error) {
	d, ok := f.items[id]
	if !ok || !d.IsActive {
		return department.Department{}, fmt.Errorf("failed to get department: %w", pgx.ErrNoRows)
	}
	return d, nil
}

func (f *fakeDepartmentRepo) ListActive(ctx context.Context) ([]department.Department, error) {
	var out []department.Department
	for _, d := range f.items {
		if d.IsActive {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeDepartmentRepo) Update(ctx context.Context, req department.UpdateDepartmentRequest) (department.Department, error) {
	d, ok := f.items[req.ID]
	if !ok || !d.IsActive {
		return department.Department{}, fmt.Errorf("failed to update department: %w", pgx.ErrNoRows)
	}
	if f.nameTaken(req.ID, req.Name) {
		return department.Department{}, fmt.Errorf("failed to update department: %w", &pgconn.PgError{Code: "23505"})
	}
	d.Name = req.Name
	d.Description = req.Description
	f.items[d.ID] = d
	return d, nil
}

func (f *fakeDepartmentRepo) SoftDelete(ctx context.Context, id string) error {
	d, ok := f.items[id]
	if !ok || !d.IsActive {
		return department.ErrDepartmentNotFound
	}
	d.IsActive = false
	f.items[id] = d
	return nil
}

type fakeDesignationRepo struct {
	items map[string]designation.Designation
}

func (f *fakeDesignationRepo) Create(ctx context.Context, d designation.Designation) (designation.Designation, error) {
	for _, other := range f.items {
		if other.Title == d.Title {
			return designation.Designation{}, &pgconn.PgError{Code: "23505"}
		}
	}
	d.ID = uuid.NewString()
	d.IsActive = true
	f.items[d.ID] = d
	return d, nil
}

func (f *fakeDesignationRepo) GetByID(ctx context.Context, id string) (designation.Designation, error) {
	d, ok := f.items[id]
	if !ok {
		return designation.Designation{}, pgx.ErrNoRows
	}
	return d, nil
}

func (f *fakeDesignationRepo) ListActive(ctx context.Context) ([]designation.Designation, error) {
	return nil, nil
}

func (f *fakeDesignationRepo) Update(ctx context.Context, req designation.UpdateDesignationRequest) (designation.Designation, error) {
	d, ok := f.items[req.ID]
	if !ok {
		return designation.Designation{}, pgx.ErrNoRows
	}
	d.Title = req.Title
	f.items[d.ID] = d
	return d, nil
}

func (f *fakeDesignationRepo) SoftDelete(ctx context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return designation.ErrDesignationNotFound
	}
	delete(f.items, id)
	return nil
}

var (
	admin = user.Identity{UserID: "admin-1", Role: user.RoleAdmin}
	staff = user.Identity{UserID: "emp-1", Role: user.RoleEmployee}
)

func newTestService() MasterService {
	return NewMasterService(
		&fakeDepartmentRepo{items: map[string]department.Department{}},
		&fakeDesignationRepo{items: map[string]designation.Designation{}},
	)
}

func TestDepartments(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	eng, err := svc.CreateDepartment(ctx, admin, department.CreateDepartmentRequest{Name: "  Engineering "})
	require.NoError(t, err)
	assert.Equal(t, "Engineering", eng.Name)

	_, err = svc.CreateDepartment(ctx, admin, department.CreateDepartmentRequest{Name: "Engineering"})
	assert.ErrorIs(t, err, department.ErrDepartmentNameExists)

	_, err = svc.CreateDepartment(ctx, staff, department.CreateDepartmentRequest{Name: "Finance"})
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

	fin, err := svc.CreateDepartment(ctx, admin, department.CreateDepartmentRequest{Name: "Finance"})
	require.NoError(t, err)

	_, err = svc.UpdateDepartment(ctx, admin, department.UpdateDepartmentRequest{ID: fin.ID, Name: "Engineering"})
	assert.ErrorIs(t, err, department.ErrDepartmentNameExists)

	desc := "Money matters"
	updated, err := svc.UpdateDepartment(ctx, admin, department.UpdateDepartmentRequest{ID: fin.ID, Name: "Accounts", Description: &desc})
	require.NoError(t, err)
	assert.Equal(t, "Accounts", updated.Name)

	// Everyone can read
	list, err := svc.ListDepartments(ctx, staff)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, svc.DeleteDepartment(ctx, admin, fin.ID))
	assert.ErrorIs(t, svc.DeleteDepartment(ctx, admin, fin.ID), department.ErrDepartmentNotFound)

	_, err = svc.GetDepartment(ctx, staff, fin.ID)
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)

	_, err = svc.UpdateDepartment(ctx, admin, department.UpdateDepartmentRequest{ID: fin.ID, Name: "Accounts"})
	assert.ErrorIs(t, err, department.ErrDepartmentNotFound)

	got, err := svc.GetDepartment(ctx, staff, eng.ID)
	require.NoError(t, err)
	assert.Equal(t, eng.ID, got.ID)
}

func TestDesignations(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	list, err := svc.ListDesignations(ctx, staff)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	dev, err := svc.CreateDesignation(ctx, admin, designation.CreateDesignationRequest{Title: "Developer"})
	require.NoError(t, err)

	_, err = svc.CreateDesignation(ctx, admin, designation.CreateDesignationRequest{Title: "Developer"})
	assert.ErrorIs(t, err, designation.ErrDesignationTitleExists)

	_, err = svc.GetDesignation(ctx, staff, uuid.NewString())
	assert.ErrorIs(t, err, designation.ErrDesignationNotFound)

	_, err = svc.UpdateDesignation(ctx, admin, designation.UpdateDesignationRequest{ID: uuid.NewString(), Title: "Lead"})
	assert.ErrorIs(t, err, designation.ErrDesignationNotFound)

	assert.ErrorIs(t, svc.DeleteDesignation(ctx, staff, dev.ID), user.ErrAdminPrivilegeRequired)
	require.NoError(t, svc.DeleteDesignation(ctx, admin, dev.ID))

	_, err = svc.ListDesignations(ctx, user.Identity{})
	assert.ErrorIs(t, err, user.ErrInvalidIdentity)
}
