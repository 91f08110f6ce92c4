package payroll

import (
	"context"
	"io"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
)

type PayrollService interface {
	// GenerateSalary computes and stores one employee's salary for a month (admin)
	GenerateSalary(ctx context.Context, caller user.Identity, req GenerateSalaryRequest) (SalaryRecord, error)

	// GenerateBatch generates the month for every active employee, skipping
	// those that already have a record (admin)
	GenerateBatch(ctx context.Context, caller user.Identity, req GenerateBatchRequest) (GenerateBatchResponse, error)

	MarkPaid(ctx context.Context, caller user.Identity, id string) (SalaryRecord, error)
	GetSalary(ctx context.Context, caller user.Identity, id string) (SalaryRecord, error)
	ListSalaries(ctx context.Context, caller user.Identity, filter SalaryFilter) (ListSalaryResponse, error)

	// ExportPeriod writes the month's salary sheet as an xlsx workbook (admin)
	ExportPeriod(ctx context.Context, caller user.Identity, month, year int, w io.Writer) error
}
