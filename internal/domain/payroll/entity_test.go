package payroll

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSalaryRecord_JSONRoundTrip(t *testing.T) {
	b, err := Calculate(dec("30000"), 30, 25, DefaultRates())
	require.NoError(t, err)

	paidAt := time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC)
	name := "Sara Iqbal"
	cnic := "35202-1234567-1"

	original := NewSalaryRecord("6c1a3b4e-0000-4000-8000-000000000002", 3, 2024, b)
	original.ID = "6c1a3b4e-0000-4000-8000-000000000020"
	original.IsPaid = true
	original.PaidAt = &paidAt
	original.CreatedAt = time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC)
	original.UpdatedAt = paidAt
	original.EmployeeName = &name
	original.EmployeeCNIC = &cnic

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded SalaryRecord
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, original.ID, decoded.ID)
	assert.Equal(t, original.EmployeeID, decoded.EmployeeID)
	assert.Equal(t, original.Month, decoded.Month)
	assert.Equal(t, original.Year, decoded.Year)
	assert.True(t, original.BasicSalary.Equal(decoded.BasicSalary))
	assert.True(t, original.Allowances.Transport.Equal(decoded.Allowances.Transport))
	assert.True(t, original.Allowances.Medical.Equal(decoded.Allowances.Medical))
	assert.True(t, original.Allowances.Bonus.Equal(decoded.Allowances.Bonus))
	assert.True(t, original.Deductions.Tax.Equal(decoded.Deductions.Tax))
	assert.True(t, original.Deductions.Insurance.Equal(decoded.Deductions.Insurance))
	assert.True(t, original.Deductions.Other.Equal(decoded.Deductions.Other))
	assert.Equal(t, original.TotalDays, decoded.TotalDays)
	assert.Equal(t, original.WorkingDays, decoded.WorkingDays)
	assert.True(t, original.GrossSalary.Equal(decoded.GrossSalary))
	assert.True(t, original.NetSalary.Equal(decoded.NetSalary))
	assert.Equal(t, original.IsPaid, decoded.IsPaid)
	require.NotNil(t, decoded.PaidAt)
	assert.True(t, paidAt.Equal(*decoded.PaidAt))
	assert.True(t, original.CreatedAt.Equal(decoded.CreatedAt))
	assert.True(t, original.UpdatedAt.Equal(decoded.UpdatedAt))
	assert.Equal(t, original.EmployeeName, decoded.EmployeeName)
	assert.Equal(t, original.EmployeeCNIC, decoded.EmployeeCNIC)
}
