package payroll

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Rates are applied to the nominal basic salary. The *Flat fields are fixed
// amounts.
type Rates struct {
	TransportRate decimal.Decimal
	MedicalRate   decimal.Decimal
	BonusFlat     decimal.Decimal
	TaxRate       decimal.Decimal
	InsuranceRate decimal.Decimal
	OtherFlat     decimal.Decimal
}

func DefaultRates() Rates {
	return Rates{
		TransportRate: decimal.RequireFromString("0.10"),
		MedicalRate:   decimal.RequireFromString("0.05"),
		BonusFlat:     decimal.Zero,
		TaxRate:       decimal.RequireFromString("0.02"),
		InsuranceRate: decimal.RequireFromString("0.01"),
		OtherFlat:     decimal.Zero,
	}
}

// ParseRates builds Rates from their decimal string forms.
func ParseRates(transport, medical, bonus, tax, insurance, other string) (Rates, error) {
	var r Rates
	fields := []struct {
		name string
		in   string
		out  *decimal.Decimal
	}{
		{"transport_rate", transport, &r.TransportRate},
		{"medical_rate", medical, &r.MedicalRate},
		{"bonus_flat", bonus, &r.BonusFlat},
		{"tax_rate", tax, &r.TaxRate},
		{"insurance_rate", insurance, &r.InsuranceRate},
		{"other_flat", other, &r.OtherFlat},
	}

	for _, f := range fields {
		v, err := decimal.NewFromString(f.in)
		if err != nil {
			return Rates{}, fmt.Errorf("invalid %s %q: %w", f.name, f.in, err)
		}
		if v.IsNegative() {
			return Rates{}, fmt.Errorf("%s must not be negative", f.name)
		}
		*f.out = v
	}
	return r, nil
}

// Breakdown is the result of a payroll calculation.
type Breakdown struct {
	BasicSalary decimal.Decimal
	Allowances  Allowances
	Deductions  Deductions
	TotalDays   int
	WorkingDays int
	GrossSalary decimal.Decimal
	NetSalary   decimal.Decimal
}

const hundredths = 2

// Calculate pro-rates basicSalary by workingDays/totalDays and applies rates.
// Every component is rounded to two decimals before it is summed.
func Calculate(basicSalary decimal.Decimal, totalDays, workingDays int, rates Rates) (Breakdown, error) {
	if totalDays <= 0 {
		return Breakdown{}, ErrInvalidPeriod
	}
	if workingDays < 0 || workingDays > totalDays {
		return Breakdown{}, ErrInvalidWorkingDays
	}
	if basicSalary.IsNegative() {
		return Breakdown{}, ErrNegativeSalary
	}

	earned := basicSalary.
		Mul(decimal.NewFromInt(int64(workingDays))).
		Div(decimal.NewFromInt(int64(totalDays))).
		Round(hundredths)

	allowances := Allowances{
		Transport: basicSalary.Mul(rates.TransportRate).Round(hundredths),
		Medical:   basicSalary.Mul(rates.MedicalRate).Round(hundredths),
		Bonus:     rates.BonusFlat.Round(hundredths),
	}
	deductions := Deductions{
		Tax:       basicSalary.Mul(rates.TaxRate).Round(hundredths),
		Insurance: basicSalary.Mul(rates.InsuranceRate).Round(hundredths),
		Other:     rates.OtherFlat.Round(hundredths),
	}

	gross := earned.Add(allowances.Total())
	net := gross.Sub(deductions.Total())

	return Breakdown{
		BasicSalary: earned,
		Allowances:  allowances,
		Deductions:  deductions,
		TotalDays:   totalDays,
		WorkingDays: workingDays,
		GrossSalary: gross,
		NetSalary:   net,
	}, nil
}

// DaysInMonth returns the number of days of month in year.
func DaysInMonth(month, year int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// PeriodBounds returns the first and last date of the month, as midnight UTC.
func PeriodBounds(month, year int) (from, to time.Time) {
	from = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to = time.Date(year, time.Month(month), DaysInMonth(month, year), 0, 0, 0, 0, time.UTC)
	return from, to
}
