package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
	"golang.org/x/sync/errgroup"
)

const recentLimit = 5

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
	balanceRepo    leave.LeaveBalanceRepository
	salaryRepo     payroll.SalaryRepository
	policy         attendance.CutoffPolicy
	now            func() time.Time
}

func NewDashboardService(
	repo dashboard.DashboardRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	balanceRepo leave.LeaveBalanceRepository,
	salaryRepo payroll.SalaryRepository,
	policy attendance.CutoffPolicy,
) dashboard.DashboardService {
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		employeeRepo:        employeeRepo,
		attendanceRepo:      attendanceRepo,
		leaveRepo:           leaveRepo,
		balanceRepo:         balanceRepo,
		salaryRepo:          salaryRepo,
		policy:              policy,
		now:                 time.Now,
	}
}

// GetAdminStats runs its six queries concurrently.
func (s *DashboardServiceImpl) GetAdminStats(ctx context.Context, caller user.Identity) (*dashboard.AdminStatsResponse, error) {
	if err := caller.Require(user.PermissionDashboardAdmin); err != nil {
		return nil, err
	}

	today := s.policy.DateOf(s.now())
	resp := &dashboard.AdminStatsResponse{Date: today.Format("2006-01-02")}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.employeeRepo.CountActive(gCtx)
		if err != nil {
			return fmt.Errorf("failed to count employees: %w", err)
		}
		resp.TotalEmployees = n
		return nil
	})

	g.Go(func() error {
		n, err := s.CountAttendedOn(gCtx, today)
		if err != nil {
			return fmt.Errorf("failed to count attendance: %w", err)
		}
		resp.AttendedToday = n
		return nil
	})

	g.Go(func() error {
		n, err := s.leaveRepo.CountPending(gCtx, nil)
		if err != nil {
			return fmt.Errorf("failed to count pending leaves: %w", err)
		}
		resp.PendingLeaves = n
		return nil
	})

	g.Go(func() error {
		n, err := s.salaryRepo.CountUnpaid(gCtx, int(today.Month()), today.Year())
		if err != nil {
			return fmt.Errorf("failed to count unpaid salaries: %w", err)
		}
		resp.UnpaidSalaries = n
		return nil
	})

	g.Go(func() error {
		leaves, err := s.RecentPendingLeaves(gCtx, recentLimit)
		if err != nil {
			return fmt.Errorf("failed to get recent leaves: %w", err)
		}
		resp.RecentLeaves = leaves
		return nil
	})

	g.Go(func() error {
		records, err := s.LatestCheckIns(gCtx, today, recentLimit)
		if err != nil {
			return fmt.Errorf("failed to get latest check-ins: %w", err)
		}
		resp.RecentAttendance = records
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if resp.RecentLeaves == nil {
		resp.RecentLeaves = []leave.LeaveRequest{}
	}
	if resp.RecentAttendance == nil {
		resp.RecentAttendance = []attendance.Attendance{}
	}
	return resp, nil
}

// GetEmployeeStats implements dashboard.DashboardService.
func (s *DashboardServiceImpl) GetEmployeeStats(ctx context.Context, caller user.Identity) (*dashboard.EmployeeStatsResponse, error) {
	if err := caller.Require(user.PermissionViewOwnProfile); err != nil {
		return nil, err
	}

	today := s.policy.DateOf(s.now())
	month, year := int(today.Month()), today.Year()
	monthStart, _ := payroll.PeriodBounds(month, year)

	resp := &dashboard.EmployeeStatsResponse{
		DaysInMonth: payroll.DaysInMonth(month, year),
		Date:        today.Format("2006-01-02"),
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		record, err := s.attendanceRepo.GetAttendance(gCtx, caller.UserID, today)
		if err != nil {
			return fmt.Errorf("failed to get today's attendance: %w", err)
		}
		resp.TodayAttendance = record
		return nil
	})

	g.Go(func() error {
		n, err := s.CountAttendedDays(gCtx, caller.UserID, monthStart, today)
		if err != nil {
			return fmt.Errorf("failed to count attended days: %w", err)
		}
		resp.AttendedDays = n
		return nil
	})

	g.Go(func() error {
		balance, err := s.balanceRepo.GetLeaveBalance(gCtx, caller.UserID)
		if err != nil {
			return fmt.Errorf("failed to get leave balance: %w", err)
		}
		resp.LeaveBalance = balance
		return nil
	})

	g.Go(func() error {
		n, err := s.leaveRepo.CountPending(gCtx, &caller.UserID)
		if err != nil {
			return fmt.Errorf("failed to count pending leaves: %w", err)
		}
		resp.PendingLeaves = n
		return nil
	})

	g.Go(func() error {
		leaves, err := s.RecentLeaves(gCtx, caller.UserID, recentLimit)
		if err != nil {
			return fmt.Errorf("failed to get recent leaves: %w", err)
		}
		resp.RecentLeaves = leaves
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if resp.RecentLeaves == nil {
		resp.RecentLeaves = []leave.LeaveRequest{}
	}
	return resp, nil
}
