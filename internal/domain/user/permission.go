package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionEditOwnProfile Permission = "profile.edit_own"

	// Leave Management
	PermissionLeaveViewOwn Permission = "leave.view_own"
	PermissionLeaveCreate  Permission = "leave.create"
	PermissionLeaveViewAll Permission = "leave.view_all"
	PermissionLeaveApprove Permission = "leave.approve"

	// Attendance Management
	PermissionAttendanceViewOwn    Permission = "attendance.view_own"
	PermissionAttendanceCreate     Permission = "attendance.create"
	PermissionAttendanceViewAll    Permission = "attendance.view_all"
	PermissionAttendanceMarkAbsent Permission = "attendance.mark_absent"

	// Payroll
	PermissionPayrollViewOwn Permission = "payroll.view_own"
	PermissionPayrollViewAll Permission = "payroll.view_all"
	PermissionPayrollManage  Permission = "payroll.manage"

	// Employee Management
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"

	// Organisation
	PermissionMasterManage Permission = "master.manage"

	// Documents
	PermissionDocumentView   Permission = "document.view"
	PermissionDocumentManage Permission = "document.manage"

	// Tasks
	PermissionTaskViewAll Permission = "task.view_all"
	PermissionTaskManage  Permission = "task.manage"

	// Reports
	PermissionDashboardAdmin Permission = "dashboard.admin"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionAttendanceViewAll,
		PermissionAttendanceMarkAbsent,
		PermissionPayrollViewOwn,
		PermissionPayrollViewAll,
		PermissionPayrollManage,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionMasterManage,
		PermissionDocumentView,
		PermissionDocumentManage,
		PermissionTaskViewAll,
		PermissionTaskManage,
		PermissionDashboardAdmin,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionPayrollViewOwn,
		PermissionDocumentView,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}

	return false
}
