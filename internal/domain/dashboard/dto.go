package dashboard

import (
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/leave"
)

// AdminStatsResponse is the administrator dashboard
type AdminStatsResponse struct {
	TotalEmployees   int64                   `json:"total_employees"`
	AttendedToday    int64                   `json:"attended_today"`
	PendingLeaves    int64                   `json:"pending_leaves"`
	UnpaidSalaries   int64                   `json:"unpaid_salaries"` // current month
	RecentLeaves     []leave.LeaveRequest    `json:"recent_leaves"`
	RecentAttendance []attendance.Attendance `json:"recent_attendance"`
	Date             string                  `json:"date"` // Format: "YYYY-MM-DD"
}

// EmployeeStatsResponse is the dashboard of the calling employee
type EmployeeStatsResponse struct {
	TodayAttendance *attendance.Attendance `json:"today_attendance"`
	AttendedDays    int64                  `json:"attended_days"` // current month
	DaysInMonth     int                    `json:"days_in_month"`
	LeaveBalance    leave.LeaveBalance     `json:"leave_balance"`
	PendingLeaves   int64                  `json:"pending_leaves"`
	RecentLeaves    []leave.LeaveRequest   `json:"recent_leaves"`
	Date            string                 `json:"date"` // Format: "YYYY-MM-DD"
}
