package attendance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCutoffPolicy_Classify(t *testing.T) {
	policy := DefaultCutoffPolicy()
	day := func(h, m, s, ns int) time.Time {
		return time.Date(2024, time.March, 11, h, m, s, ns, time.UTC)
	}

	tests := []struct {
		name string
		at   time.Time
		want Status
	}{
		{name: "early", at: day(7, 45, 0, 0), want: StatusPresent},
		{name: "one second before", at: day(8, 59, 59, 0), want: StatusPresent},
		{name: "exactly at cutoff", at: day(9, 0, 0, 0), want: StatusPresent},
		{name: "one nanosecond after", at: day(9, 0, 0, 1), want: StatusLate},
		{name: "one second after", at: day(9, 0, 1, 0), want: StatusLate},
		{name: "afternoon", at: day(14, 0, 0, 0), want: StatusLate},
		{name: "just after midnight", at: day(0, 0, 1, 0), want: StatusPresent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Classify(tt.at))
		})
	}
}

func TestCutoffPolicy_ClassifyUsesLocation(t *testing.T) {
	pkt := time.FixedZone("PKT", 5*60*60)
	policy := CutoffPolicy{Hour: 9, Location: pkt}

	// 03:30 UTC is 08:30 local.
	assert.Equal(t, StatusPresent, policy.Classify(time.Date(2024, 3, 11, 3, 30, 0, 0, time.UTC)))
	// 04:30 UTC is 09:30 local.
	assert.Equal(t, StatusLate, policy.Classify(time.Date(2024, 3, 11, 4, 30, 0, 0, time.UTC)))
	// Same instant is present under a UTC cutoff.
	assert.Equal(t, StatusPresent, DefaultCutoffPolicy().Classify(time.Date(2024, 3, 11, 4, 30, 0, 0, time.UTC)))
}

func TestCutoffPolicy_CustomCutoff(t *testing.T) {
	policy := CutoffPolicy{Hour: 9, Minute: 15, Second: 30, Location: time.UTC}

	assert.Equal(t, StatusPresent, policy.Classify(time.Date(2024, 3, 11, 9, 15, 30, 0, time.UTC)))
	assert.Equal(t, StatusLate, policy.Classify(time.Date(2024, 3, 11, 9, 15, 31, 0, time.UTC)))
}

func TestCutoffPolicy_DateOf(t *testing.T) {
	pkt := time.FixedZone("PKT", 5*60*60)
	policy := CutoffPolicy{Hour: 9, Location: pkt}

	got := policy.DateOf(time.Date(2024, 3, 10, 21, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), got)

	got = DefaultCutoffPolicy().DateOf(time.Date(2024, 3, 10, 21, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), got)
}

func TestWorkingHours(t *testing.T) {
	in := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		out  time.Time
		want string
	}{
		{name: "full day", out: in.Add(8 * time.Hour), want: "8"},
		{name: "half hour", out: in.Add(8*time.Hour + 30*time.Minute), want: "8.5"},
		{name: "one minute rounds up", out: in.Add(time.Minute), want: "0.02"},
		{name: "twenty seconds", out: in.Add(20 * time.Second), want: "0.01"},
		{name: "ten seconds rounds to zero", out: in.Add(10 * time.Second), want: "0"},
		{name: "twenty minutes", out: in.Add(20 * time.Minute), want: "0.33"},
		{name: "overnight", out: in.Add(15*time.Hour + 45*time.Minute), want: "15.75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WorkingHours(in, tt.out)
			require.NoError(t, err)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s, want %s", got, tt.want)
			assert.False(t, got.IsNegative())
		})
	}
}

func TestWorkingHours_InvalidInterval(t *testing.T) {
	in := time.Date(2024, 3, 11, 9, 0, 0, 0, time.UTC)

	_, err := WorkingHours(in, in)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = WorkingHours(in, in.Add(-time.Minute))
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestAttendance_CheckOutAt(t *testing.T) {
	in := time.Date(2024, 3, 11, 9, 10, 0, 0, time.UTC)
	a := NewCheckIn("emp-1", in, DefaultCutoffPolicy())

	assert.Equal(t, StatusLate, a.Status)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), a.Date)
	assert.False(t, a.CheckedOut())

	// An invalid interval leaves the record untouched.
	err := a.CheckOutAt(in.Add(-time.Hour))
	assert.ErrorIs(t, err, ErrInvalidInterval)
	assert.Nil(t, a.CheckOut)
	assert.Nil(t, a.WorkingHours)

	require.NoError(t, a.CheckOutAt(in.Add(7*time.Hour+45*time.Minute)))
	require.NotNil(t, a.WorkingHours)
	assert.Equal(t, "7.75", a.WorkingHours.String())
	assert.True(t, a.CheckedOut())

	err = a.CheckOutAt(in.Add(9 * time.Hour))
	assert.ErrorIs(t, err, ErrAlreadyCheckedOut)
	assert.Equal(t, "7.75", a.WorkingHours.String())
}

func TestAttendance_CheckOutWithoutCheckIn(t *testing.T) {
	a := Attendance{EmployeeID: "emp-1", Status: StatusAbsent}
	err := a.CheckOutAt(time.Now())
	assert.ErrorIs(t, err, ErrMissingCheckIn)
}

func TestCountWorkingDays(t *testing.T) {
	records := []Attendance{
		{Status: StatusPresent},
		{Status: StatusLate},
		{Status: StatusAbsent},
		{Status: StatusPresent},
	}
	assert.Equal(t, 3, CountWorkingDays(records))
	assert.Equal(t, 0, CountWorkingDays(nil))
}
