package leave

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/metrics"
)

type LeaveServiceImpl struct {
	transactor database.Transactor
	leave.LeaveRequestRepository
	leave.LeaveBalanceRepository
	employee.EmployeeRepository
	policy leave.OverdrawPolicy
	now    func() time.Time
}

// CreateLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, caller user.Identity, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	if err := caller.Require(user.PermissionLeaveCreate); err != nil {
		return leave.LeaveRequest{}, err
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	emp, err := l.EmployeeRepository.GetByID(ctx, caller.UserID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if !emp.IsActive {
		return leave.LeaveRequest{}, employee.ErrEmployeeNotActive
	}

	startDate, _ := time.Parse("2006-01-02", req.StartDate)
	endDate, _ := time.Parse("2006-01-02", req.EndDate)

	days, err := leave.CountDays(startDate, endDate)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	created, err := l.LeaveRequestRepository.Create(ctx, leave.LeaveRequest{
		EmployeeID: caller.UserID,
		Type:       leave.Type(req.LeaveType),
		StartDate:  startDate,
		EndDate:    endDate,
		Days:       days,
		Reason:     req.Reason,
		Status:     leave.StatusPending,
	})
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to create leave request: %w", err)
	}

	slog.Info("Leave request submitted", "request_id", created.ID, "employee_id", caller.UserID, "leave_type", created.Type, "days", days)

	return created, nil
}

// UpdateLeaveStatus implements leave.LeaveService.
func (l *LeaveServiceImpl) UpdateLeaveStatus(ctx context.Context, caller user.Identity, req leave.UpdateLeaveStatusRequest) (leave.LeaveRequest, error) {
	if err := caller.Require(user.PermissionLeaveApprove); err != nil {
		return leave.LeaveRequest{}, err
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}

	var (
		decided  leave.LeaveRequest
		deducted int
	)
	err := l.transactor.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := l.LeaveRequestRepository.GetByIDForUpdate(ctx, req.ID)
		if err != nil {
			return err
		}

		now := l.now()

		if leave.Status(req.Status) == leave.StatusRejected {
			reason := ""
			if req.RejectionReason != nil {
				reason = *req.RejectionReason
			}
			if err := request.Reject(caller.UserID, reason, now); err != nil {
				return err
			}
			decided = request
			return l.LeaveRequestRepository.UpdateStatus(ctx, request)
		}

		if err := request.Approve(caller.UserID, now); err != nil {
			return err
		}

		balance, err := l.LeaveBalanceRepository.GetLeaveBalanceForUpdate(ctx, request.EmployeeID)
		if err != nil {
			return err
		}

		// Emergency leave has no counter and deducts nothing
		if remaining, counted := balance.Of(request.Type); counted {
			deducted, err = leave.DeductibleDays(remaining, request.Days, l.policy)
			if err != nil {
				return err
			}
		}

		if err := l.LeaveRequestRepository.UpdateStatus(ctx, request); err != nil {
			return err
		}
		if deducted > 0 {
			if err := l.LeaveBalanceRepository.ApplyLeaveApproval(ctx, request.EmployeeID, request.Type, deducted); err != nil {
				return err
			}
		}

		decided = request
		return nil
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	metrics.LeaveDecisions.WithLabelValues(string(decided.Status), string(decided.Type)).Inc()
	slog.Info("Leave request decided",
		"request_id", decided.ID,
		"employee_id", decided.EmployeeID,
		"status", decided.Status,
		"deducted_days", deducted,
		"by", caller.UserID,
	)

	// Reload for the joined names
	full, err := l.LeaveRequestRepository.GetByID(ctx, decided.ID)
	if err != nil {
		return decided, nil
	}
	return full, nil
}

// GetLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, caller user.Identity, id string) (leave.LeaveRequest, error) {
	if err := caller.Require(user.PermissionLeaveViewOwn); err != nil {
		return leave.LeaveRequest{}, err
	}

	request, err := l.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	if !caller.CanAccess(request.EmployeeID) {
		return leave.LeaveRequest{}, user.ErrInsufficientPermissions
	}

	return request, nil
}

// ListLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, caller user.Identity, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := caller.Require(user.PermissionLeaveViewOwn); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	if !caller.Can(user.PermissionLeaveViewAll) {
		filter.EmployeeID = &caller.UserID
	}

	requests, total, err := l.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	return leave.ListLeaveRequestResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Requests:   requests,
	}, nil
}

// GetBalance implements leave.LeaveService.
func (l *LeaveServiceImpl) GetBalance(ctx context.Context, caller user.Identity) (leave.LeaveBalance, error) {
	if err := caller.Require(user.PermissionLeaveViewOwn); err != nil {
		return leave.LeaveBalance{}, err
	}
	return l.LeaveBalanceRepository.GetLeaveBalance(ctx, caller.UserID)
}

func NewLeaveService(
	transactor database.Transactor,
	requestRepo leave.LeaveRequestRepository,
	balanceRepo leave.LeaveBalanceRepository,
	employeeRepo employee.EmployeeRepository,
	policy leave.OverdrawPolicy,
) leave.LeaveService {
	if policy == "" {
		policy = leave.OverdrawReject
	}
	return &LeaveServiceImpl{
		transactor:             transactor,
		LeaveRequestRepository: requestRepo,
		LeaveBalanceRepository: balanceRepo,
		EmployeeRepository:     employeeRepo,
		policy:                 policy,
		now:                    time.Now,
	}
}
