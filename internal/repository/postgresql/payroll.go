package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.SalaryRepository {
	return &payrollRepository{db: db}
}

const salaryColumns = `
	s.id, s.employee_id, s.month, s.year, s.basic_salary,
	s.allow_transport, s.allow_medical, s.allow_bonus,
	s.deduct_tax, s.deduct_insurance, s.deduct_other,
	s.total_days, s.working_days, s.gross_salary, s.net_salary,
	s.is_paid, s.paid_at, s.created_at, s.updated_at`

func scanSalary(row pgx.Row, rec *payroll.SalaryRecord, extra ...any) error {
	dest := []any{
		&rec.ID, &rec.EmployeeID, &rec.Month, &rec.Year, &rec.BasicSalary,
		&rec.Allowances.Transport, &rec.Allowances.Medical, &rec.Allowances.Bonus,
		&rec.Deductions.Tax, &rec.Deductions.Insurance, &rec.Deductions.Other,
		&rec.TotalDays, &rec.WorkingDays, &rec.GrossSalary, &rec.NetSalary,
		&rec.IsPaid, &rec.PaidAt, &rec.CreatedAt, &rec.UpdatedAt,
	}
	return row.Scan(append(dest, extra...)...)
}

// ========== SALARY RECORDS ==========

func (r *payrollRepository) InsertSalaryRecord(ctx context.Context, record payroll.SalaryRecord) (payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salaries (
			employee_id, month, year, basic_salary,
			allow_transport, allow_medical, allow_bonus,
			deduct_tax, deduct_insurance, deduct_other,
			total_days, working_days, gross_salary, net_salary, is_paid, paid_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID, record.Month, record.Year, record.BasicSalary,
		record.Allowances.Transport, record.Allowances.Medical, record.Allowances.Bonus,
		record.Deductions.Tax, record.Deductions.Insurance, record.Deductions.Other,
		record.TotalDays, record.WorkingDays, record.GrossSalary, record.NetSalary,
		record.IsPaid, record.PaidAt,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return payroll.SalaryRecord{}, payroll.ErrDuplicatePeriod
		}
		return payroll.SalaryRecord{}, fmt.Errorf("failed to insert salary record: %w", err)
	}

	return record, nil
}

func (r *payrollRepository) MarkSalaryPaid(ctx context.Context, id string, paidAt time.Time) (payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE salaries s
		SET is_paid = TRUE, paid_at = $2, updated_at = NOW()
		WHERE s.id = $1
		  AND s.is_paid = FALSE
		RETURNING ` + salaryColumns

	var rec payroll.SalaryRecord
	err := scanSalary(q.QueryRow(ctx, query, id, paidAt), &rec)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Distinguish a missing record from one paid concurrently
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return payroll.SalaryRecord{}, getErr
			}
			return payroll.SalaryRecord{}, payroll.ErrAlreadyPaid
		}
		return payroll.SalaryRecord{}, fmt.Errorf("failed to mark salary paid: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.SalaryRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryColumns + `, e.full_name, e.cnic
		FROM salaries s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE s.id = $1
	`

	var rec payroll.SalaryRecord
	err := scanSalary(q.QueryRow(ctx, query, id), &rec, &rec.EmployeeName, &rec.EmployeeCNIC)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryRecord{}, payroll.ErrSalaryRecordNotFound
		}
		return payroll.SalaryRecord{}, fmt.Errorf("failed to get salary record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) ExistsForPeriod(ctx context.Context, employeeID string, month, year int) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM salaries WHERE employee_id = $1 AND month = $2 AND year = $3
		)
	`, employeeID, month, year).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check salary period: %w", err)
	}

	return exists, nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.SalaryFilter) ([]payroll.SalaryRecord, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		where += fmt.Sprintf(" AND s.employee_id = $%d", argIdx)
		args = append(args, *filter.EmployeeID)
		argIdx++
	}
	if filter.Month != nil {
		where += fmt.Sprintf(" AND s.month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Year != nil {
		where += fmt.Sprintf(" AND s.year = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}
	if filter.IsPaid != nil {
		where += fmt.Sprintf(" AND s.is_paid = $%d", argIdx)
		args = append(args, *filter.IsPaid)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM salaries s WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count salary records: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s, e.full_name, e.cnic
		FROM salaries s
		LEFT JOIN employees e ON e.id = s.employee_id
		WHERE %s
		ORDER BY s.year DESC, s.month DESC, e.full_name
		LIMIT $%d OFFSET $%d
	`, salaryColumns, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list salary records: %w", err)
	}
	defer rows.Close()

	records := make([]payroll.SalaryRecord, 0)
	for rows.Next() {
		var rec payroll.SalaryRecord
		if err := scanSalary(rows, &rec, &rec.EmployeeName, &rec.EmployeeCNIC); err != nil {
			return nil, 0, fmt.Errorf("failed to scan salary record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, total, nil
}

func (r *payrollRepository) CountUnpaid(ctx context.Context, month, year int) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `
		SELECT COUNT(*) FROM salaries WHERE month = $1 AND year = $2 AND is_paid = FALSE
	`, month, year).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count unpaid salaries: %w", err)
	}

	return count, nil
}
