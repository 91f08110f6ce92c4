package leave

import (
	"context"
)

type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	// GetByIDForUpdate locks the row for the surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
	// UpdateStatus persists a decision. It only touches pending rows and
	// returns ErrInvalidStateTransition when the row was already decided.
	UpdateStatus(ctx context.Context, request LeaveRequest) error
	CountPending(ctx context.Context, employeeID *string) (int64, error)
}

type LeaveBalanceRepository interface {
	GetLeaveBalance(ctx context.Context, employeeID string) (LeaveBalance, error)
	// GetLeaveBalanceForUpdate locks the employee's counters for the surrounding transaction.
	GetLeaveBalanceForUpdate(ctx context.Context, employeeID string) (LeaveBalance, error)
	// ApplyLeaveApproval subtracts days from the counter of leaveType.
	ApplyLeaveApproval(ctx context.Context, employeeID string, leaveType Type, days int) error
}
