package calendar

import (
	"context"
	"time"
)

type Repository interface {
	// GetHoliday returns nil, nil when the date is not a holiday.
	GetHoliday(ctx context.Context, date time.Time) (*Holiday, error)

	// GetRecoveryDeclarations returns the declarations of date, oldest first.
	// Scope matching is left to the caller.
	GetRecoveryDeclarations(ctx context.Context, date time.Time) ([]RecoveryDeclaration, error)

	HasApprovedOvertime(ctx context.Context, employeeID string, date time.Time) (bool, error)
}
