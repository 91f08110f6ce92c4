package payroll

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

// batchWorkers bounds concurrent generation in GenerateBatch.
const batchWorkers = 4

// exportPageSize is the page size used to read a whole period for export.
const exportPageSize = 100

type PayrollServiceImpl struct {
	salaryRepo     payroll.SalaryRepository
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	rates          payroll.Rates
	now            func() time.Time
}

func NewPayrollService(
	salaryRepo payroll.SalaryRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	rates payroll.Rates,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		salaryRepo:     salaryRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		rates:          rates,
		now:            time.Now,
	}
}

// ========== GENERATION ==========

func (s *PayrollServiceImpl) GenerateSalary(ctx context.Context, caller user.Identity, req payroll.GenerateSalaryRequest) (payroll.SalaryRecord, error) {
	if err := caller.Require(user.PermissionPayrollManage); err != nil {
		return payroll.SalaryRecord{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.SalaryRecord{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return payroll.SalaryRecord{}, payroll.ErrEmployeeNotFound
		}
		return payroll.SalaryRecord{}, err
	}
	if !emp.IsActive {
		return payroll.SalaryRecord{}, payroll.ErrEmployeeInactive
	}

	exists, err := s.salaryRepo.ExistsForPeriod(ctx, emp.ID, req.Month, req.Year)
	if err != nil {
		return payroll.SalaryRecord{}, fmt.Errorf("failed to check existing salary: %w", err)
	}
	if exists {
		return payroll.SalaryRecord{}, payroll.ErrDuplicatePeriod
	}

	return s.generate(ctx, emp, req.Month, req.Year)
}

func (s *PayrollServiceImpl) GenerateBatch(ctx context.Context, caller user.Identity, req payroll.GenerateBatchRequest) (payroll.GenerateBatchResponse, error) {
	if err := caller.Require(user.PermissionPayrollManage); err != nil {
		return payroll.GenerateBatchResponse{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.GenerateBatchResponse{}, err
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return payroll.GenerateBatchResponse{}, fmt.Errorf("failed to get employees: %w", err)
	}

	generated := make([]*payroll.SalaryRecord, len(employees))
	skipped := make([]*payroll.SkippedEmployee, len(employees))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchWorkers)
	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			exists, err := s.salaryRepo.ExistsForPeriod(gctx, emp.ID, req.Month, req.Year)
			if err != nil {
				return fmt.Errorf("failed to check existing salary for %s: %w", emp.ID, err)
			}
			if exists {
				skipped[i] = &payroll.SkippedEmployee{EmployeeID: emp.ID, EmployeeName: emp.FullName, Reason: payroll.ErrDuplicatePeriod.Error()}
				return nil
			}

			record, err := s.generate(gctx, emp, req.Month, req.Year)
			if errors.Is(err, payroll.ErrDuplicatePeriod) {
				// Generated concurrently by another caller
				skipped[i] = &payroll.SkippedEmployee{EmployeeID: emp.ID, EmployeeName: emp.FullName, Reason: err.Error()}
				return nil
			}
			if err != nil {
				return err
			}
			generated[i] = &record
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return payroll.GenerateBatchResponse{}, err
	}

	resp := payroll.GenerateBatchResponse{
		Month:     req.Month,
		Year:      req.Year,
		Generated: make([]payroll.SalaryRecord, 0, len(employees)),
		Skipped:   make([]payroll.SkippedEmployee, 0),
	}
	for i := range employees {
		if generated[i] != nil {
			resp.Generated = append(resp.Generated, *generated[i])
		}
		if skipped[i] != nil {
			resp.Skipped = append(resp.Skipped, *skipped[i])
		}
	}

	slog.Info("Payroll batch generated",
		"month", req.Month,
		"year", req.Year,
		"generated", len(resp.Generated),
		"skipped", len(resp.Skipped),
		"by", caller.UserID,
	)

	return resp, nil
}

// generate computes the period from the employee's attendance and stores it.
// The unique (employee, month, year) index settles concurrent generation.
func (s *PayrollServiceImpl) generate(ctx context.Context, emp employee.Employee, month, year int) (payroll.SalaryRecord, error) {
	from, to := payroll.PeriodBounds(month, year)

	records, err := s.attendanceRepo.ListByEmployeeAndPeriod(ctx, emp.ID, from, to)
	if err != nil {
		return payroll.SalaryRecord{}, fmt.Errorf("failed to get attendance for period: %w", err)
	}

	breakdown, err := payroll.Calculate(emp.Salary, payroll.DaysInMonth(month, year), attendance.CountWorkingDays(records), s.rates)
	if err != nil {
		return payroll.SalaryRecord{}, err
	}

	created, err := s.salaryRepo.InsertSalaryRecord(ctx, payroll.NewSalaryRecord(emp.ID, month, year, breakdown))
	if err != nil {
		return payroll.SalaryRecord{}, err
	}
	created.EmployeeName = &emp.FullName
	created.EmployeeCNIC = &emp.CNIC

	metrics.SalariesGenerated.Inc()
	slog.Info("Salary generated",
		"salary_id", created.ID,
		"employee_id", emp.ID,
		"month", month,
		"year", year,
		"working_days", created.WorkingDays,
		"net_salary", created.NetSalary.StringFixed(2),
	)

	return created, nil
}

// ========== RECORDS ==========

func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, caller user.Identity, id string) (payroll.SalaryRecord, error) {
	if err := caller.Require(user.PermissionPayrollManage); err != nil {
		return payroll.SalaryRecord{}, err
	}
	if err := validateID(id); err != nil {
		return payroll.SalaryRecord{}, err
	}

	// Conditional on is_paid = false, a concurrent call gets ErrAlreadyPaid
	paid, err := s.salaryRepo.MarkSalaryPaid(ctx, id, s.now())
	if err != nil {
		return payroll.SalaryRecord{}, err
	}

	metrics.SalariesPaid.Inc()
	slog.Info("Salary marked paid", "salary_id", id, "employee_id", paid.EmployeeID, "by", caller.UserID)

	return paid, nil
}

func (s *PayrollServiceImpl) GetSalary(ctx context.Context, caller user.Identity, id string) (payroll.SalaryRecord, error) {
	if err := caller.Require(user.PermissionPayrollViewOwn); err != nil {
		return payroll.SalaryRecord{}, err
	}
	if err := validateID(id); err != nil {
		return payroll.SalaryRecord{}, err
	}

	record, err := s.salaryRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.SalaryRecord{}, err
	}
	if !caller.CanAccess(record.EmployeeID) {
		return payroll.SalaryRecord{}, user.ErrInsufficientPermissions
	}

	return record, nil
}

func (s *PayrollServiceImpl) ListSalaries(ctx context.Context, caller user.Identity, filter payroll.SalaryFilter) (payroll.ListSalaryResponse, error) {
	if err := caller.Require(user.PermissionPayrollViewOwn); err != nil {
		return payroll.ListSalaryResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return payroll.ListSalaryResponse{}, err
	}

	if !caller.Can(user.PermissionPayrollViewAll) {
		filter.EmployeeID = &caller.UserID
	}

	records, total, err := s.salaryRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListSalaryResponse{}, fmt.Errorf("failed to list salaries: %w", err)
	}

	return payroll.ListSalaryResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: int(math.Ceil(float64(total) / float64(filter.Limit))),
		Salaries:   records,
	}, nil
}

// ========== EXPORT ==========

func (s *PayrollServiceImpl) ExportPeriod(ctx context.Context, caller user.Identity, month, year int, w io.Writer) error {
	if err := caller.Require(user.PermissionPayrollManage); err != nil {
		return err
	}
	req := payroll.GenerateBatchRequest{Month: month, Year: year}
	if err := req.Validate(); err != nil {
		return err
	}

	var records []payroll.SalaryRecord
	for page := 1; ; page++ {
		batch, total, err := s.salaryRepo.List(ctx, payroll.SalaryFilter{
			Month: &month,
			Year:  &year,
			Page:  page,
			Limit: exportPageSize,
		})
		if err != nil {
			return fmt.Errorf("failed to list salaries for export: %w", err)
		}
		records = append(records, batch...)
		if len(batch) == 0 || int64(len(records)) >= total {
			break
		}
	}

	if err := writeSalarySheet(w, month, year, records); err != nil {
		return fmt.Errorf("failed to write salary sheet: %w", err)
	}

	slog.Info("Salary sheet exported", "month", month, "year", year, "rows", len(records), "by", caller.UserID)
	return nil
}

func validateID(id string) error {
	if validator.IsValidUUID(id) {
		return nil
	}
	var errs validator.ValidationErrors
	errs.Add("id", "id must be a valid UUID")
	return errs.Err()
}
