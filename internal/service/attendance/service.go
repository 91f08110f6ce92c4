package attendance

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/metrics"
)

type AttendanceServiceImpl struct {
	attendance.AttendanceRepository
	employee.EmployeeRepository
	policy attendance.CutoffPolicy
	now    func() time.Time
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, caller user.Identity) (attendance.Attendance, error) {
	if err := caller.Require(user.PermissionAttendanceCreate); err != nil {
		return attendance.Attendance{}, err
	}

	if err := a.ensureActive(ctx, caller.UserID); err != nil {
		return attendance.Attendance{}, err
	}

	record := attendance.NewCheckIn(caller.UserID, a.now(), a.policy)

	existing, err := a.AttendanceRepository.GetAttendance(ctx, caller.UserID, record.Date)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to check today's attendance: %w", err)
	}
	if existing != nil {
		return attendance.Attendance{}, attendance.ErrDuplicateCheckIn
	}

	// The unique (employee_id, date) index settles concurrent check-ins
	created, err := a.AttendanceRepository.InsertAttendance(ctx, record)
	if err != nil {
		return attendance.Attendance{}, err
	}

	metrics.CheckIns.WithLabelValues(string(created.Status)).Inc()
	slog.Info("Employee checked in", "employee_id", caller.UserID, "date", created.Date.Format("2006-01-02"), "status", created.Status)

	return created, nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, caller user.Identity) (attendance.Attendance, error) {
	if err := caller.Require(user.PermissionAttendanceCreate); err != nil {
		return attendance.Attendance{}, err
	}

	now := a.now()

	record, err := a.AttendanceRepository.GetAttendance(ctx, caller.UserID, a.policy.DateOf(now))
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	if record == nil {
		return attendance.Attendance{}, attendance.ErrMissingCheckIn
	}

	if err := record.CheckOutAt(now); err != nil {
		return attendance.Attendance{}, err
	}

	// Conditional on check_out IS NULL, a concurrent check-out gets ErrAlreadyCheckedOut
	updated, err := a.AttendanceRepository.UpdateAttendanceCheckout(ctx, record.ID, *record.CheckOut, *record.WorkingHours)
	if err != nil {
		return attendance.Attendance{}, err
	}

	metrics.CheckOuts.Inc()
	slog.Info("Employee checked out", "employee_id", caller.UserID, "working_hours", updated.WorkingHours.String())

	return updated, nil
}

// GetToday implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetToday(ctx context.Context, caller user.Identity) (*attendance.Attendance, error) {
	if err := caller.Require(user.PermissionAttendanceViewOwn); err != nil {
		return nil, err
	}

	record, err := a.AttendanceRepository.GetAttendance(ctx, caller.UserID, a.policy.DateOf(a.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to get today's attendance: %w", err)
	}
	return record, nil
}

// List implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) List(ctx context.Context, caller user.Identity, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := caller.Require(user.PermissionAttendanceViewOwn); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	// Non-admins only ever see their own records
	if !caller.Can(user.PermissionAttendanceViewAll) {
		filter.EmployeeID = &caller.UserID
	}

	attendances, total, err := a.AttendanceRepository.ListAttendance(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to list attendance: %w", err)
	}

	return attendance.ListAttendanceResponse{
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  int(math.Ceil(float64(total) / float64(filter.Limit))),
		Attendances: attendances,
	}, nil
}

// MarkAbsent implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) MarkAbsent(ctx context.Context, caller user.Identity, req attendance.MarkAbsentRequest) (attendance.MarkAbsentResponse, error) {
	if err := caller.Require(user.PermissionAttendanceMarkAbsent); err != nil {
		return attendance.MarkAbsentResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.MarkAbsentResponse{}, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return attendance.MarkAbsentResponse{}, fmt.Errorf("failed to parse date: %w", err)
	}

	marked, err := a.AttendanceRepository.MarkAbsent(ctx, date)
	if err != nil {
		return attendance.MarkAbsentResponse{}, err
	}

	metrics.AbsencesMarked.Add(float64(marked))
	slog.Info("Marked absentees", "date", req.Date, "count", marked, "by", caller.UserID)

	return attendance.MarkAbsentResponse{Date: req.Date, Marked: marked}, nil
}

func (a *AttendanceServiceImpl) ensureActive(ctx context.Context, employeeID string) error {
	emp, err := a.EmployeeRepository.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	if !emp.IsActive {
		return attendance.ErrEmployeeInactive
	}
	return nil
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	policy attendance.CutoffPolicy,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		AttendanceRepository: attendanceRepo,
		EmployeeRepository:   employeeRepo,
		policy:               policy,
		now:                  time.Now,
	}
}
