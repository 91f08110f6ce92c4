package dashboard

import (
	"context"
	"time"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/leave"
)

// DashboardRepository defines the read-only queries behind the dashboards
type DashboardRepository interface {
	// CountAttendedOn counts present and late records on date
	CountAttendedOn(ctx context.Context, date time.Time) (int64, error)

	// RecentPendingLeaves returns the newest pending requests of all employees
	RecentPendingLeaves(ctx context.Context, limit int) ([]leave.LeaveRequest, error)

	// LatestCheckIns returns the latest check-ins on date
	LatestCheckIns(ctx context.Context, date time.Time, limit int) ([]attendance.Attendance, error)

	// CountAttendedDays counts present and late records of the employee with from <= date <= to
	CountAttendedDays(ctx context.Context, employeeID string, from, to time.Time) (int64, error)

	// RecentLeaves returns the employee's newest requests
	RecentLeaves(ctx context.Context, employeeID string, limit int) ([]leave.LeaveRequest, error)
}
