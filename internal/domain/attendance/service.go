package attendance

import (
	"context"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
)

// AttendanceService defines business logic for attendance operations
type AttendanceService interface {
	// CheckIn records the caller's arrival for today
	CheckIn(ctx context.Context, caller user.Identity) (Attendance, error)

	// CheckOut closes the caller's record for today
	CheckOut(ctx context.Context, caller user.Identity) (Attendance, error)

	// GetToday returns the caller's record for today, nil if none
	GetToday(ctx context.Context, caller user.Identity) (*Attendance, error)

	// List returns all records for admins and the caller's own otherwise
	List(ctx context.Context, caller user.Identity, filter AttendanceFilter) (ListAttendanceResponse, error)

	// MarkAbsent creates absent records for a date (admin)
	MarkAbsent(ctx context.Context, caller user.Identity, req MarkAbsentRequest) (MarkAbsentResponse, error)
}
