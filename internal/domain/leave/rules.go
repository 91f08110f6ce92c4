package leave

import (
	"fmt"
	"time"
)

// OverdrawPolicy decides what approval does when a request exceeds the balance.
type OverdrawPolicy string

const (
	// OverdrawReject fails the approval and leaves everything unchanged.
	OverdrawReject OverdrawPolicy = "reject"
	// OverdrawClamp deducts at most the remaining balance.
	OverdrawClamp OverdrawPolicy = "clamp"
	// OverdrawAllow lets the counter go negative.
	OverdrawAllow OverdrawPolicy = "allow"
)

func ParseOverdrawPolicy(s string) (OverdrawPolicy, error) {
	switch p := OverdrawPolicy(s); p {
	case OverdrawReject, OverdrawClamp, OverdrawAllow:
		return p, nil
	}
	return "", fmt.Errorf("unknown overdraw policy %q", s)
}

// CountDays returns the number of calendar days from start to end, both
// inclusive. Only the date part of each value is used.
func CountDays(start, end time.Time) (int, error) {
	s := dateOnly(start)
	e := dateOnly(end)
	if e.Before(s) {
		return 0, ErrInvalidDateRange
	}
	return int(e.Sub(s)/(24*time.Hour)) + 1, nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DeductibleDays returns how many days approval subtracts from a counter
// holding balance, for a request of days under policy.
func DeductibleDays(balance, days int, policy OverdrawPolicy) (int, error) {
	switch policy {
	case OverdrawAllow:
		return days, nil
	case OverdrawClamp:
		if balance <= 0 {
			return 0, nil
		}
		return min(days, balance), nil
	default:
		if days > balance {
			return 0, ErrInsufficientLeaveBalance
		}
		return days, nil
	}
}
