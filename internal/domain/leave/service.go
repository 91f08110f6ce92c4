package leave

import (
	"context"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
)

type LeaveService interface {
	CreateLeaveRequest(ctx context.Context, caller user.Identity, req CreateLeaveRequestRequest) (LeaveRequest, error)
	// UpdateLeaveStatus approves or rejects a pending request (admin). Approval
	// deducts the balance in the same transaction as the status change.
	UpdateLeaveStatus(ctx context.Context, caller user.Identity, req UpdateLeaveStatusRequest) (LeaveRequest, error)
	GetLeaveRequest(ctx context.Context, caller user.Identity, id string) (LeaveRequest, error)
	ListLeaveRequests(ctx context.Context, caller user.Identity, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	GetBalance(ctx context.Context, caller user.Identity) (LeaveBalance, error)
}
