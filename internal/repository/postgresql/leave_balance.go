package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

// leaveBalanceRepositoryImpl keeps the counters on the employees row.
type leaveBalanceRepositoryImpl struct {
	db *database.DB
}

func NewLeaveBalanceRepository(db *database.DB) leave.LeaveBalanceRepository {
	return &leaveBalanceRepositoryImpl{db: db}
}

// GetLeaveBalance implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetLeaveBalance(ctx context.Context, employeeID string) (leave.LeaveBalance, error) {
	return r.getBalance(ctx, employeeID, "")
}

// GetLeaveBalanceForUpdate implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) GetLeaveBalanceForUpdate(ctx context.Context, employeeID string) (leave.LeaveBalance, error) {
	return r.getBalance(ctx, employeeID, "FOR UPDATE")
}

func (r *leaveBalanceRepositoryImpl) getBalance(ctx context.Context, employeeID string, lock string) (leave.LeaveBalance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT leave_annual, leave_sick, leave_casual
		FROM employees
		WHERE id = $1
	` + lock

	var balance leave.LeaveBalance
	err := q.QueryRow(ctx, query, employeeID).Scan(&balance.Annual, &balance.Sick, &balance.Casual)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrEmployeeNotFound
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return balance, nil
}

// ApplyLeaveApproval implements leave.LeaveBalanceRepository.
func (r *leaveBalanceRepositoryImpl) ApplyLeaveApproval(ctx context.Context, employeeID string, leaveType leave.Type, days int) error {
	var column string
	switch leaveType {
	case leave.TypeAnnual:
		column = "leave_annual"
	case leave.TypeSick:
		column = "leave_sick"
	case leave.TypeCasual:
		column = "leave_casual"
	default:
		// Emergency leave is not counted
		return nil
	}

	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`
		UPDATE employees
		SET %[1]s = %[1]s - $2, updated_at = NOW()
		WHERE id = $1
	`, column)

	tag, err := q.Exec(ctx, query, employeeID, days)
	if err != nil {
		return fmt.Errorf("failed to apply leave approval: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return leave.ErrEmployeeNotFound
	}

	return nil
}
