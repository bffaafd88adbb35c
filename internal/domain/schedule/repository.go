package schedule

import "context"

type WorkScheduleRepository interface {
	// GetActiveSchedule returns nil, nil when no schedule is active.
	GetActiveSchedule(ctx context.Context) (*WorkSchedule, error)
}
