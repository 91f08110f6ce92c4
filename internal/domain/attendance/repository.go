package attendance

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AttendanceRepository defines data access methods for attendance records.
type AttendanceRepository interface {
	// GetAttendance returns the record for the employee on date, or nil when none exists.
	GetAttendance(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)

	// InsertAttendance fails with ErrDuplicateCheckIn when the (employee, date) pair exists.
	InsertAttendance(ctx context.Context, attendance Attendance) (Attendance, error)

	// UpdateAttendanceCheckout only updates a record that has no check-out yet,
	// otherwise it fails with ErrAlreadyCheckedOut.
	UpdateAttendanceCheckout(ctx context.Context, id string, checkOut time.Time, workingHours decimal.Decimal) (Attendance, error)

	ListAttendance(ctx context.Context, filter AttendanceFilter) ([]Attendance, int64, error)

	// ListByEmployeeAndPeriod returns every record of the employee with from <= date <= to.
	ListByEmployeeAndPeriod(ctx context.Context, employeeID string, from, to time.Time) ([]Attendance, error)

	// MarkAbsent inserts an absent record for every active employee without a record on date.
	MarkAbsent(ctx context.Context, date time.Time) (int64, error)
}
