package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

type Allowances struct {
	Transport decimal.Decimal `json:"transport"`
	Medical   decimal.Decimal `json:"medical"`
	Bonus     decimal.Decimal `json:"bonus"`
}

func (a Allowances) Total() decimal.Decimal {
	return a.Transport.Add(a.Medical).Add(a.Bonus)
}

type Deductions struct {
	Tax       decimal.Decimal `json:"tax"`
	Insurance decimal.Decimal `json:"insurance"`
	Other     decimal.Decimal `json:"other"`
}

func (d Deductions) Total() decimal.Decimal {
	return d.Tax.Add(d.Insurance).Add(d.Other)
}

// SalaryRecord is the generated payroll of one employee for one month.
// BasicSalary is the earned, pro-rated amount. The only mutation after
// insert is the one-way IsPaid flip.
type SalaryRecord struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	BasicSalary decimal.Decimal `json:"basic_salary"`
	Allowances  Allowances      `json:"allowances"`
	Deductions  Deductions      `json:"deductions"`
	TotalDays   int             `json:"total_days"`
	WorkingDays int             `json:"working_days"`
	GrossSalary decimal.Decimal `json:"gross_salary"`
	NetSalary   decimal.Decimal `json:"net_salary"`
	IsPaid      bool            `json:"is_paid"`
	PaidAt      *time.Time      `json:"paid_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	// Joined fields
	EmployeeName *string `json:"employee_name,omitempty"`
	EmployeeCNIC *string `json:"employee_cnic,omitempty"`
}

// NewSalaryRecord builds an unpaid record for a period from a calculated breakdown.
func NewSalaryRecord(employeeID string, month, year int, b Breakdown) SalaryRecord {
	return SalaryRecord{
		EmployeeID:  employeeID,
		Month:       month,
		Year:        year,
		BasicSalary: b.BasicSalary,
		Allowances:  b.Allowances,
		Deductions:  b.Deductions,
		TotalDays:   b.TotalDays,
		WorkingDays: b.WorkingDays,
		GrossSalary: b.GrossSalary,
		NetSalary:   b.NetSalary,
	}
}

// MarkPaid flips the record to paid.
func (r *SalaryRecord) MarkPaid(at time.Time) error {
	if r.IsPaid {
		return ErrAlreadyPaid
	}
	r.IsPaid = true
	r.PaidAt = &at
	return nil
}
