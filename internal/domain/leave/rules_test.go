package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestCountDays(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{name: "same day", start: date(2024, 3, 11), end: date(2024, 3, 11), want: 1},
		{name: "next day", start: date(2024, 3, 11), end: date(2024, 3, 12), want: 2},
		{name: "full week", start: date(2024, 3, 11), end: date(2024, 3, 17), want: 7},
		{name: "across month", start: date(2024, 2, 28), end: date(2024, 3, 1), want: 3},
		{name: "across year", start: date(2023, 12, 31), end: date(2024, 1, 1), want: 2},
		{name: "time of day ignored", start: time.Date(2024, 3, 11, 17, 0, 0, 0, time.UTC), end: time.Date(2024, 3, 12, 8, 0, 0, 0, time.UTC), want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CountDays(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCountDays_AcrossDSTInLocalZone(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata not available")
	}
	got, err := CountDays(time.Date(2024, 3, 9, 0, 0, 0, 0, ny), time.Date(2024, 3, 11, 0, 0, 0, 0, ny))
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestCountDays_InvalidRange(t *testing.T) {
	_, err := CountDays(date(2024, 3, 12), date(2024, 3, 11))
	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestDeductibleDays(t *testing.T) {
	tests := []struct {
		name    string
		balance int
		days    int
		policy  OverdrawPolicy
		want    int
		wantErr error
	}{
		{name: "reject within balance", balance: 10, days: 3, policy: OverdrawReject, want: 3},
		{name: "reject exact balance", balance: 3, days: 3, policy: OverdrawReject, want: 3},
		{name: "reject overdraw", balance: 2, days: 3, policy: OverdrawReject, wantErr: ErrInsufficientLeaveBalance},
		{name: "clamp overdraw", balance: 2, days: 5, policy: OverdrawClamp, want: 2},
		{name: "clamp within balance", balance: 9, days: 5, policy: OverdrawClamp, want: 5},
		{name: "clamp empty balance", balance: 0, days: 5, policy: OverdrawClamp, want: 0},
		{name: "clamp negative balance", balance: -2, days: 1, policy: OverdrawClamp, want: 0},
		{name: "allow overdraw", balance: 1, days: 4, policy: OverdrawAllow, want: 4},
		{name: "unknown policy rejects", balance: 1, days: 4, policy: "", wantErr: ErrInsufficientLeaveBalance},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DeductibleDays(tt.balance, tt.days, tt.policy)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseOverdrawPolicy(t *testing.T) {
	p, err := ParseOverdrawPolicy("clamp")
	require.NoError(t, err)
	assert.Equal(t, OverdrawClamp, p)

	_, err = ParseOverdrawPolicy("sometimes")
	assert.Error(t, err)
}

func TestLeaveRequest_Transitions(t *testing.T) {
	at := time.Date(2024, 3, 11, 10, 0, 0, 0, time.UTC)

	r := LeaveRequest{Status: StatusPending}
	require.NoError(t, r.Approve("admin-1", at))
	assert.Equal(t, StatusApproved, r.Status)
	require.NotNil(t, r.ApprovedBy)
	assert.Equal(t, "admin-1", *r.ApprovedBy)
	assert.Equal(t, at, *r.ApprovedAt)

	// Terminal states reject every further transition.
	assert.ErrorIs(t, r.Approve("admin-1", at), ErrInvalidStateTransition)
	assert.ErrorIs(t, r.Reject("admin-1", "no", at), ErrInvalidStateTransition)
	assert.Equal(t, StatusApproved, r.Status)

	r = LeaveRequest{Status: StatusPending}
	require.NoError(t, r.Reject("admin-2", "busy period", at))
	assert.Equal(t, StatusRejected, r.Status)
	require.NotNil(t, r.RejectionReason)
	assert.Equal(t, "busy period", *r.RejectionReason)
	assert.ErrorIs(t, r.Approve("admin-2", at), ErrInvalidStateTransition)
	assert.ErrorIs(t, r.Reject("admin-2", "again", at), ErrInvalidStateTransition)

	r = LeaveRequest{Status: StatusPending}
	require.NoError(t, r.Reject("admin-2", "", at))
	assert.Nil(t, r.RejectionReason)
}

func TestLeaveBalance(t *testing.T) {
	b := LeaveBalance{Annual: 20, Sick: 10, Casual: 5}

	n, ok := b.Of(TypeSick)
	assert.True(t, ok)
	assert.Equal(t, 10, n)

	_, ok = b.Of(TypeEmergency)
	assert.False(t, ok)

	after := b.Deduct(TypeAnnual, 3)
	assert.Equal(t, LeaveBalance{Annual: 17, Sick: 10, Casual: 5}, after)
	assert.Equal(t, 20, b.Annual)

	assert.Equal(t, b, b.Deduct(TypeEmergency, 3))
}
