package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelect = `
	SELECT e.id, e.full_name, e.email, e.cnic, e.phone_number, e.role,
		   e.department_id, e.designation_id, e.date_of_joining, e.salary, e.is_active, e.profile_image,
		   e.leave_annual, e.leave_sick, e.leave_casual, e.created_at, e.updated_at,
		   d.name, g.title
	FROM employees e
	LEFT JOIN departments d ON d.id = e.department_id
	LEFT JOIN designations g ON g.id = e.designation_id`

func scanEmployee(row pgx.Row, emp *employee.Employee) error {
	return row.Scan(
		&emp.ID, &emp.FullName, &emp.Email, &emp.CNIC, &emp.PhoneNumber, &emp.Role,
		&emp.DepartmentID, &emp.DesignationID, &emp.DateOfJoining, &emp.Salary, &emp.IsActive, &emp.ProfileImage,
		&emp.LeaveBalance.Annual, &emp.LeaveBalance.Sick, &emp.LeaveBalance.Casual, &emp.CreatedAt, &emp.UpdatedAt,
		&emp.DepartmentName, &emp.DesignationName,
	)
}

// Create implements employee.EmployeeRepository. An empty ID lets the database generate one.
func (e *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		INSERT INTO employees (
			id, full_name, email, cnic, phone_number, role,
			department_id, designation_id, date_of_joining, salary, is_active,
			leave_annual, leave_sick, leave_casual
		) VALUES (
			COALESCE(NULLIF($1, '')::uuid, gen_random_uuid()), $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11, $12, $13, $14
		)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		newEmployee.ID,
		newEmployee.FullName,
		newEmployee.Email,
		newEmployee.CNIC,
		newEmployee.PhoneNumber,
		newEmployee.Role,
		newEmployee.DepartmentID,
		newEmployee.DesignationID,
		newEmployee.DateOfJoining,
		newEmployee.Salary,
		newEmployee.IsActive,
		newEmployee.LeaveBalance.Annual,
		newEmployee.LeaveBalance.Sick,
		newEmployee.LeaveBalance.Casual,
	).Scan(&newEmployee.ID, &newEmployee.CreatedAt, &newEmployee.UpdatedAt)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return newEmployee, nil
}

// GetByID implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	var emp employee.Employee
	if err := scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.id = $1`, id), &emp); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee with id %s: %w", id, err)
	}

	return emp, nil
}

// Update implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	query := `
		UPDATE employees
		SET full_name = $2, email = $3, cnic = $4, phone_number = $5, role = $6,
			department_id = $7, designation_id = $8, date_of_joining = $9, salary = $10, is_active = $11,
			leave_annual = $12, leave_sick = $13, leave_casual = $14, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		emp.ID,
		emp.FullName,
		emp.Email,
		emp.CNIC,
		emp.PhoneNumber,
		emp.Role,
		emp.DepartmentID,
		emp.DesignationID,
		emp.DateOfJoining,
		emp.Salary,
		emp.IsActive,
		emp.LeaveBalance.Annual,
		emp.LeaveBalance.Sick,
		emp.LeaveBalance.Casual,
	).Scan(&emp.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee with id %s: %w", emp.ID, err)
	}

	return emp, nil
}

// SoftDelete implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) SoftDelete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `
		UPDATE employees
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND is_active = TRUE
	`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee with id %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// List implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, e.db)

	where := "TRUE"
	args := []interface{}{}
	argIdx := 1

	if filter.Search != nil && *filter.Search != "" {
		where += fmt.Sprintf(" AND (e.full_name ILIKE $%d OR e.email ILIKE $%d OR e.cnic ILIKE $%d)", argIdx, argIdx, argIdx)
		args = append(args, "%"+*filter.Search+"%")
		argIdx++
	}
	if filter.DepartmentID != nil && *filter.DepartmentID != "" {
		where += fmt.Sprintf(" AND e.department_id = $%d", argIdx)
		args = append(args, *filter.DepartmentID)
		argIdx++
	}
	if filter.Role != nil && *filter.Role != "" {
		where += fmt.Sprintf(" AND e.role = $%d", argIdx)
		args = append(args, *filter.Role)
		argIdx++
	}
	if filter.IsActive != nil {
		where += fmt.Sprintf(" AND e.is_active = $%d", argIdx)
		args = append(args, *filter.IsActive)
		argIdx++
	}

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees e WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	query := fmt.Sprintf("%s WHERE %s ORDER BY e.full_name LIMIT $%d OFFSET $%d", employeeSelect, where, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	employees := make([]employee.Employee, 0)
	for rows.Next() {
		var emp employee.Employee
		if err := scanEmployee(rows, &emp); err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// ListActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, e.db)

	rows, err := q.Query(ctx, employeeSelect+` WHERE e.is_active = TRUE ORDER BY e.full_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		var emp employee.Employee
		if err := scanEmployee(rows, &emp); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, emp)
	}

	return employees, rows.Err()
}

// UpdateProfileImage implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) UpdateProfileImage(ctx context.Context, id string, url string) error {
	q := GetQuerier(ctx, e.db)

	tag, err := q.Exec(ctx, `
		UPDATE employees
		SET profile_image = $2, updated_at = NOW()
		WHERE id = $1
	`, id, url)
	if err != nil {
		return fmt.Errorf("failed to update profile image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}

	return nil
}

// CountActive implements employee.EmployeeRepository.
func (e *employeeRepositoryImpl) CountActive(ctx context.Context) (int64, error) {
	q := GetQuerier(ctx, e.db)

	var count int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE is_active = TRUE`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count active employees: %w", err)
	}

	return count, nil
}
