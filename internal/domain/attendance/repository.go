package attendance

import (
	"context"
	"time"
)

// ClockRecordRepository stores clock events. Implementations must enforce one
// entry and one exit per employee and date; a second insert of the same
// direction fails with ErrDuplicateCheckIn or ErrDuplicateCheckOut.
type ClockRecordRepository interface {
	// GetDayRecords returns the records of one employee and day, oldest first.
	GetDayRecords(ctx context.Context, employeeID string, date time.Time) ([]ClockRecord, error)

	Append(ctx context.Context, record ClockRecord) (ClockRecord, error)

	// UpdateLeadRecordStatus rewrites the status of the day's entry record.
	UpdateLeadRecordStatus(ctx context.Context, employeeID string, date time.Time, status Status) error

	ListIncompleteDays(ctx context.Context, from, to time.Time) ([]IncompleteDay, error)
}

// Transactor runs fn so that every repository call made with the context it
// receives belongs to one transaction.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
