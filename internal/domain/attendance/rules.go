package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// CutoffPolicy classifies check-ins against a time of day in a fixed location.
type CutoffPolicy struct {
	Hour     int
	Minute   int
	Second   int
	Location *time.Location
}

// DefaultCutoffPolicy is 09:00:00 UTC.
func DefaultCutoffPolicy() CutoffPolicy {
	return CutoffPolicy{Hour: 9, Location: time.UTC}
}

func (p CutoffPolicy) location() *time.Location {
	if p.Location == nil {
		return time.UTC
	}
	return p.Location
}

// Classify returns StatusLate iff the local time of day of checkIn is strictly
// after the cutoff. A check-in exactly at the cutoff is present.
func (p CutoffPolicy) Classify(checkIn time.Time) Status {
	local := checkIn.In(p.location())
	cutoff := time.Date(local.Year(), local.Month(), local.Day(), p.Hour, p.Minute, p.Second, 0, p.location())
	if local.After(cutoff) {
		return StatusLate
	}
	return StatusPresent
}

// DateOf returns the attendance date of t: its calendar date in the policy
// location, as midnight UTC.
func (p CutoffPolicy) DateOf(t time.Time) time.Time {
	y, m, d := t.In(p.location()).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// WorkingHours returns the hours between checkIn and checkOut rounded to two
// decimal places.
func WorkingHours(checkIn, checkOut time.Time) (decimal.Decimal, error) {
	if !checkOut.After(checkIn) {
		return decimal.Zero, ErrInvalidInterval
	}

	d := checkOut.Sub(checkIn)
	return decimal.NewFromInt(int64(d)).
		Div(decimal.NewFromInt(int64(time.Hour))).
		Round(2), nil
}

// CountWorkingDays counts the records whose status is present or late.
func CountWorkingDays(records []Attendance) int {
	n := 0
	for _, r := range records {
		if r.Status.CountsAsWorked() {
			n++
		}
	}
	return n
}
