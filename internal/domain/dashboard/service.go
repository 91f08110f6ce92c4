package dashboard

import (
	"context"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
)

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetAdminStats returns organisation wide counters (admin only)
	GetAdminStats(ctx context.Context, caller user.Identity) (*AdminStatsResponse, error)

	// GetEmployeeStats returns the caller's own counters
	GetEmployeeStats(ctx context.Context, caller user.Identity) (*EmployeeStatsResponse, error)
}
