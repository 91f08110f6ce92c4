package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	assert.True(t, HasPermission(RoleAdmin, PermissionLeaveApprove))
	assert.True(t, HasPermission(RoleAdmin, PermissionPayrollManage))
	assert.True(t, HasPermission(RoleEmployee, PermissionAttendanceCreate))
	assert.False(t, HasPermission(RoleEmployee, PermissionLeaveApprove))
	assert.False(t, HasPermission(RoleEmployee, PermissionPayrollViewAll))
	assert.False(t, HasPermission(Role("guest"), PermissionViewOwnProfile))
}

func TestIdentity(t *testing.T) {
	admin := Identity{UserID: "a", Role: RoleAdmin}
	emp := Identity{UserID: "e", Role: RoleEmployee}

	assert.True(t, admin.IsAdmin())
	assert.False(t, emp.IsAdmin())

	assert.True(t, admin.CanAccess("someone-else"))
	assert.True(t, emp.CanAccess("e"))
	assert.False(t, emp.CanAccess("someone-else"))

	assert.True(t, emp.Can(PermissionLeaveCreate))
	assert.False(t, emp.Can(PermissionEmployeeManage))

	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("owner").Valid())
}

func TestIdentity_Require(t *testing.T) {
	admin := Identity{UserID: "a", Role: RoleAdmin}
	emp := Identity{UserID: "e", Role: RoleEmployee}

	assert.NoError(t, admin.Require(PermissionPayrollManage))
	assert.NoError(t, emp.Require(PermissionLeaveCreate))
	assert.ErrorIs(t, emp.Require(PermissionPayrollManage), ErrAdminPrivilegeRequired)

	assert.ErrorIs(t, Identity{Role: RoleAdmin}.Require(PermissionLeaveCreate), ErrInvalidIdentity)
	assert.ErrorIs(t, Identity{UserID: "x", Role: "guest"}.Require(PermissionLeaveCreate), ErrInvalidIdentity)
}
