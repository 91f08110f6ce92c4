package payroll

import (
	"context"
	"time"
)

type SalaryRepository interface {
	// InsertSalaryRecord fails with ErrDuplicatePeriod when the employee already
	// has a record for the month.
	InsertSalaryRecord(ctx context.Context, record SalaryRecord) (SalaryRecord, error)

	// MarkSalaryPaid only flips unpaid rows and returns ErrAlreadyPaid otherwise.
	MarkSalaryPaid(ctx context.Context, id string, paidAt time.Time) (SalaryRecord, error)

	GetByID(ctx context.Context, id string) (SalaryRecord, error)
	ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error)
	List(ctx context.Context, filter SalaryFilter) ([]SalaryRecord, int64, error)
	CountUnpaid(ctx context.Context, month, year int) (int64, error)
}
