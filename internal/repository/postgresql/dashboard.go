package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.DB
}

func NewDashboardRepository(db *database.DB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

// CountAttendedOn counts present and late records on date
func (r *dashboardRepositoryImpl) CountAttendedOn(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM attendances
		WHERE date = $1 AND status IN ('present', 'late')
	`

	var count int64
	if err := q.QueryRow(ctx, query, date).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count attendance: %w", err)
	}
	return count, nil
}

// RecentPendingLeaves returns the newest pending requests with employee names
func (r *dashboardRepositoryImpl) RecentPendingLeaves(ctx context.Context, limit int) ([]leave.LeaveRequest, error) {
	return r.queryLeaves(ctx, leaveRequestSelect+`
		WHERE lr.status = 'pending'
		ORDER BY lr.created_at DESC
		LIMIT $1
	`, limit)
}

// RecentLeaves returns the employee's newest requests
func (r *dashboardRepositoryImpl) RecentLeaves(ctx context.Context, employeeID string, limit int) ([]leave.LeaveRequest, error) {
	return r.queryLeaves(ctx, leaveRequestSelect+`
		WHERE lr.employee_id = $1
		ORDER BY lr.created_at DESC
		LIMIT $2
	`, employeeID, limit)
}

func (r *dashboardRepositoryImpl) queryLeaves(ctx context.Context, query string, args ...any) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent leaves: %w", err)
	}
	defer rows.Close()

	requests := make([]leave.LeaveRequest, 0)
	for rows.Next() {
		var lr leave.LeaveRequest
		if err := scanLeaveRequest(rows, &lr); err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// LatestCheckIns returns the latest check-ins on date with employee names
func (r *dashboardRepositoryImpl) LatestCheckIns(ctx context.Context, date time.Time, limit int) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + attendanceColumns + `, e.full_name
		FROM attendances a
		LEFT JOIN employees e ON e.id = a.employee_id
		WHERE a.date = $1 AND a.check_in IS NOT NULL
		ORDER BY a.check_in DESC
		LIMIT $2
	`

	rows, err := q.Query(ctx, query, date, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest check-ins: %w", err)
	}
	defer rows.Close()

	records := make([]attendance.Attendance, 0)
	for rows.Next() {
		var att attendance.Attendance
		if err := scanAttendance(rows, &att, &att.EmployeeName); err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		records = append(records, att)
	}
	return records, rows.Err()
}

// CountAttendedDays counts present and late records of the employee within the range
func (r *dashboardRepositoryImpl) CountAttendedDays(ctx context.Context, employeeID string, from, to time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*)
		FROM attendances
		WHERE employee_id = $1
		  AND date BETWEEN $2 AND $3
		  AND status IN ('present', 'late')
	`

	var count int64
	if err := q.QueryRow(ctx, query, employeeID, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count attended days: %w", err)
	}
	return count, nil
}
