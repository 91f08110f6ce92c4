package postgresql_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/officehr-backend-go/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupDB(t *testing.T) *TestDatabaseSetup {
	t.Helper()
	ctx := context.Background()

	setup, ok, err := NewTestDatabase(ctx)
	if !ok {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, err)
	require.NoError(t, setup.TruncateAllTables(ctx))
	t.Cleanup(setup.Close)
	return setup
}

func createEmployee(t *testing.T, setup *TestDatabaseSetup, email, cnic string) employee.Employee {
	t.Helper()
	repo := postgresql.NewEmployeeRepository(setup.DB)
	emp, err := repo.Create(context.Background(), employee.Employee{
		FullName:      "Test " + email,
		Email:         email,
		CNIC:          cnic,
		PhoneNumber:   "03001234567",
		Role:          user.RoleEmployee,
		DateOfJoining: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Salary:        decimal.NewFromInt(30000),
		IsActive:      true,
		LeaveBalance:  leave.LeaveBalance{Annual: 20, Sick: 10, Casual: 10},
	})
	require.NoError(t, err)
	return emp
}

func TestAttendanceRepository_UniquePerDayAndSingleCheckout(t *testing.T) {
	setup := setupDB(t)
	ctx := context.Background()
	emp := createEmployee(t, setup, "a@example.com", "12345-1234567-1")
	repo := postgresql.NewAttendanceRepository(setup.DB)

	at := time.Date(2025, 3, 3, 8, 30, 0, 0, time.UTC)
	rec := attendance.NewCheckIn(emp.ID, at, attendance.DefaultCutoffPolicy())

	created, err := repo.InsertAttendance(ctx, rec)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = repo.InsertAttendance(ctx, rec)
	assert.ErrorIs(t, err, attendance.ErrDuplicateCheckIn)

	found, err := repo.GetAttendance(ctx, emp.ID, rec.Date)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, attendance.StatusPresent, found.Status)

	// Concurrent check-outs: exactly one wins
	var wg sync.WaitGroup
	results := make([]error, 4)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = repo.UpdateAttendanceCheckout(ctx, created.ID, at.Add(8*time.Hour), decimal.RequireFromString("8.00"))
		}(i)
	}
	wg.Wait()

	var succeeded int
	for _, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, attendance.ErrAlreadyCheckedOut), "unexpected error: %v", err)
	}
	assert.Equal(t, 1, succeeded)

	marked, err := repo.MarkAbsent(ctx, rec.Date)
	require.NoError(t, err)
	assert.Equal(t, int64(0), marked, "employees with a record are not marked absent")
}

func TestPayrollRepository_DuplicatePeriodAndMarkPaid(t *testing.T) {
	setup := setupDB(t)
	ctx := context.Background()
	emp := createEmployee(t, setup, "p@example.com", "12345-1234567-2")
	repo := postgresql.NewPayrollRepository(setup.DB)

	b, err := payroll.Calculate(decimal.NewFromInt(30000), 30, 25, payroll.DefaultRates())
	require.NoError(t, err)

	created, err := repo.InsertSalaryRecord(ctx, payroll.NewSalaryRecord(emp.ID, 11, 2025, b))
	require.NoError(t, err)

	_, err = repo.InsertSalaryRecord(ctx, payroll.NewSalaryRecord(emp.ID, 11, 2025, b))
	assert.ErrorIs(t, err, payroll.ErrDuplicatePeriod)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, b.NetSalary.Equal(got.NetSalary))
	assert.True(t, b.Allowances.Transport.Equal(got.Allowances.Transport))

	paid, err := repo.MarkSalaryPaid(ctx, created.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	require.NotNil(t, paid.PaidAt)

	_, err = repo.MarkSalaryPaid(ctx, created.ID, time.Now())
	assert.ErrorIs(t, err, payroll.ErrAlreadyPaid)

	_, err = repo.MarkSalaryPaid(ctx, "00000000-0000-0000-0000-000000000000", time.Now())
	assert.ErrorIs(t, err, payroll.ErrSalaryRecordNotFound)
}

func TestLeaveRepositories_ApprovalDeductsInTransaction(t *testing.T) {
	setup := setupDB(t)
	ctx := context.Background()
	emp := createEmployee(t, setup, "l@example.com", "12345-1234567-3")
	admin := createEmployee(t, setup, "admin@example.com", "12345-1234567-4")

	requests := postgresql.NewLeaveRequestRepository(setup.DB)
	balances := postgresql.NewLeaveBalanceRepository(setup.DB)
	tx := postgresql.NewTransactor(setup.DB)

	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	lr, err := requests.Create(ctx, leave.LeaveRequest{
		EmployeeID: emp.ID,
		Type:       leave.TypeAnnual,
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 2),
		Days:       3,
		Reason:     "family trip",
		Status:     leave.StatusPending,
	})
	require.NoError(t, err)

	err = tx.WithinTransaction(ctx, func(ctx context.Context) error {
		locked, err := requests.GetByIDForUpdate(ctx, lr.ID)
		if err != nil {
			return err
		}
		if _, err := balances.GetLeaveBalanceForUpdate(ctx, emp.ID); err != nil {
			return err
		}
		if err := locked.Approve(admin.ID, time.Now()); err != nil {
			return err
		}
		if err := requests.UpdateStatus(ctx, locked); err != nil {
			return err
		}
		return balances.ApplyLeaveApproval(ctx, emp.ID, locked.Type, locked.Days)
	})
	require.NoError(t, err)

	balance, err := balances.GetLeaveBalance(ctx, emp.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.LeaveBalance{Annual: 17, Sick: 10, Casual: 10}, balance)

	got, err := requests.GetByID(ctx, lr.ID)
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, got.Status)
	require.NotNil(t, got.ApproverName)

	// A decided request cannot be decided again
	again := got
	again.Status = leave.StatusRejected
	assert.ErrorIs(t, requests.UpdateStatus(ctx, again), leave.ErrInvalidStateTransition)

	pending, err := requests.CountPending(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pending)
}
