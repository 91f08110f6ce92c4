package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRules_OverlaysOnlyPresentKeys(t *testing.T) {
	rules := DefaultRules()

	doc := []byte(`
timezone: Asia/Karachi
late_cutoff: "09:30"
payroll:
  tax_rate: "0.05"
leave_defaults:
  annual: 14
`)
	require.NoError(t, ParseRules(doc, &rules))

	assert.Equal(t, "Asia/Karachi", rules.Timezone)
	assert.Equal(t, "09:30", rules.LateCutoff)
	assert.Equal(t, "0.05", rules.Payroll.TaxRate)
	assert.Equal(t, "0.10", rules.Payroll.TransportRate)
	assert.Equal(t, 14, rules.LeaveDefaults.Annual)
	assert.Equal(t, 10, rules.LeaveDefaults.Sick)
	assert.Equal(t, "reject", rules.OverdrawPolicy)
}

func TestParseRules_InvalidYAML(t *testing.T) {
	rules := DefaultRules()
	err := ParseRules([]byte("timezone: [unclosed"), &rules)
	assert.Error(t, err)
}

func TestRulesConfig_Cutoff(t *testing.T) {
	tests := []struct {
		name    string
		cutoff  string
		h, m, s int
		wantErr bool
	}{
		{name: "with seconds", cutoff: "09:00:00", h: 9},
		{name: "without seconds", cutoff: "08:45", h: 8, m: 45},
		{name: "seconds set", cutoff: "10:15:30", h: 10, m: 15, s: 30},
		{name: "garbage", cutoff: "nine", wantErr: true},
		{name: "out of range", cutoff: "25:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := DefaultRules()
			r.LateCutoff = tt.cutoff
			h, m, s, err := r.Cutoff()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, []int{tt.h, tt.m, tt.s}, []int{h, m, s})
		})
	}
}

func TestRulesConfig_Validate(t *testing.T) {
	assert.NoError(t, DefaultRules().Validate())

	r := DefaultRules()
	r.Timezone = "Mars/Olympus"
	assert.Error(t, r.Validate())

	r = DefaultRules()
	r.OverdrawPolicy = "sometimes"
	assert.Error(t, r.Validate())

	r = DefaultRules()
	r.LeaveDefaults.Sick = -1
	assert.Error(t, r.Validate())
}

func TestConfig_DatabaseURL(t *testing.T) {
	c := &Config{Database: DatabaseConfig{
		Host: "db", Port: 5433, User: "hr", Password: "secret", Name: "officehr", SSLMode: "disable",
	}}
	assert.Equal(t, "postgres://hr:secret@db:5433/officehr?sslmode=disable", c.DatabaseURL())
}

func TestConfig_Validate(t *testing.T) {
	c := &Config{Rules: DefaultRules()}
	assert.Error(t, c.Validate())

	c.Database.Password = "pw"
	assert.Error(t, c.Validate())

	c.JWT.Secret = "s3cret"
	assert.NoError(t, c.Validate())
}
