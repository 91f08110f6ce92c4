package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusAbsent  Status = "absent"
)

// Attendance is one employee's record for one calendar date. CheckIn is nil
// only for absent records. WorkingHours is set iff CheckOut is set.
type Attendance struct {
	ID           string           `json:"id"`
	EmployeeID   string           `json:"employee_id"`
	Date         time.Time        `json:"date"`
	CheckIn      *time.Time       `json:"check_in,omitempty"`
	CheckOut     *time.Time       `json:"check_out,omitempty"`
	Status       Status           `json:"status"`
	WorkingHours *decimal.Decimal `json:"working_hours,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`

	// DTO / Join
	EmployeeName *string `json:"employee_name,omitempty"`
}

// NewCheckIn builds the record created by a check-in at the given instant.
func NewCheckIn(employeeID string, at time.Time, policy CutoffPolicy) Attendance {
	checkIn := at
	return Attendance{
		EmployeeID: employeeID,
		Date:       policy.DateOf(at),
		CheckIn:    &checkIn,
		Status:     policy.Classify(at),
	}
}

// CheckOutAt moves a checked-in record to checked-out.
func (a *Attendance) CheckOutAt(at time.Time) error {
	if a.CheckIn == nil {
		return ErrMissingCheckIn
	}
	if a.CheckOut != nil {
		return ErrAlreadyCheckedOut
	}

	hours, err := WorkingHours(*a.CheckIn, at)
	if err != nil {
		return err
	}

	checkOut := at
	a.CheckOut = &checkOut
	a.WorkingHours = &hours
	return nil
}

// CheckedOut reports whether the record reached its terminal state.
func (a *Attendance) CheckedOut() bool {
	return a.CheckOut != nil
}

// CountsAsWorked reports whether the status contributes a paid working day.
func (s Status) CountsAsWorked() bool {
	return s == StatusPresent || s == StatusLate
}
