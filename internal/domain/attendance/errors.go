package attendance

import "errors"

// Attendance domain errors
var (
	// Degrades to an unconstrained day; never surfaced as a failure of check-in/out.
	ErrNoActiveSchedule = errors.New("no active work schedule")

	ErrEmployeeNotClockable = errors.New("employee is not subject to clocking")
	ErrDuplicateCheckIn     = errors.New("you have already checked in today")
	ErrDuplicateCheckOut    = errors.New("you have already checked out today")
	ErrMissingCheckIn       = errors.New("you have not checked in today")
	ErrIncompleteDayRecord  = errors.New("day has an odd number of clock records")

	ErrInvalidDateRange = errors.New("start_date must not be after end_date")
)

// ConflictError is returned for duplicate check-in/out. It unwraps to the
// sentinel and carries the record that already exists.
type ConflictError struct {
	Err      error
	Existing *ClockRecord
}

func (e *ConflictError) Error() string {
	return e.Err.Error()
}

func (e *ConflictError) Unwrap() error {
	return e.Err
}
