package payroll

import (
	"fmt"
	"io"
	"time"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/payroll"
	"github.com/xuri/excelize/v2"
)

var salarySheetHeader = []interface{}{
	"Employee ID", "Employee", "CNIC", "Total Days", "Working Days", "Basic Salary",
	"Transport", "Medical", "Bonus", "Tax", "Insurance", "Other Deductions",
	"Gross Salary", "Net Salary", "Paid", "Paid At",
}

// SheetName returns the worksheet name used for a period export.
func SheetName(month, year int) string {
	return fmt.Sprintf("Salaries %04d-%02d", year, month)
}

func writeSalarySheet(w io.Writer, month, year int, records []payroll.SalaryRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := SheetName(month, year)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(sheet, "A1", &salarySheetHeader); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(salarySheetHeader), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, bold); err != nil {
		return err
	}

	for i, r := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}

		var name, cnic, paidAt string
		if r.EmployeeName != nil {
			name = *r.EmployeeName
		}
		if r.EmployeeCNIC != nil {
			cnic = *r.EmployeeCNIC
		}
		if r.PaidAt != nil {
			paidAt = r.PaidAt.UTC().Format(time.RFC3339)
		}

		row := []interface{}{
			r.EmployeeID, name, cnic, r.TotalDays, r.WorkingDays,
			r.BasicSalary.InexactFloat64(),
			r.Allowances.Transport.InexactFloat64(),
			r.Allowances.Medical.InexactFloat64(),
			r.Allowances.Bonus.InexactFloat64(),
			r.Deductions.Tax.InexactFloat64(),
			r.Deductions.Insurance.InexactFloat64(),
			r.Deductions.Other.InexactFloat64(),
			r.GrossSalary.InexactFloat64(),
			r.NetSalary.InexactFloat64(),
			r.IsPaid,
			paidAt,
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.Write(w)
}
