package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/pointage-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type workScheduleRepositoryImpl struct {
	db *database.DB
}

func NewWorkScheduleRepository(db *database.DB) schedule.WorkScheduleRepository {
	return &workScheduleRepositoryImpl{db: db}
}

// GetActiveSchedule implements schedule.WorkScheduleRepository.
func (w *workScheduleRepositoryImpl) GetActiveSchedule(ctx context.Context) (*schedule.WorkSchedule, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT id, name, is_active, working_days, break_minutes,
			   late_tolerance_minutes, early_leave_tolerance_minutes,
			   created_at, updated_at
		FROM work_schedules
		WHERE is_active = TRUE AND deleted_at IS NULL
		ORDER BY updated_at DESC
		LIMIT 1
	`

	var (
		ws          schedule.WorkSchedule
		workingDays []int32
	)
	err := q.QueryRow(ctx, query).Scan(
		&ws.ID, &ws.Name, &ws.IsActive, &workingDays, &ws.BreakMinutes,
		&ws.LateToleranceMinutes, &ws.EarlyLeaveToleranceMinutes,
		&ws.CreatedAt, &ws.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil // no active schedule, callers treat the day as unconstrained
		}
		return nil, fmt.Errorf("failed to get active work schedule: %w", err)
	}

	ws.WorkingDays = make([]int, 0, len(workingDays))
	for _, d := range workingDays {
		ws.WorkingDays = append(ws.WorkingDays, int(d))
	}

	times, err := w.getTimes(ctx, ws.ID)
	if err != nil {
		return nil, err
	}
	ws.Times = times

	return &ws, nil
}

func (w *workScheduleRepositoryImpl) getTimes(ctx context.Context, workScheduleID string) (map[int]schedule.DayTimes, error) {
	q := GetQuerier(ctx, w.db)

	query := `
		SELECT day_of_week, start_time, end_time
		FROM work_schedule_times
		WHERE work_schedule_id = $1
		ORDER BY day_of_week ASC
	`

	rows, err := q.Query(ctx, query, workScheduleID)
	if err != nil {
		return nil, fmt.Errorf("failed to query work schedule times: %w", err)
	}
	defer rows.Close()

	times := make(map[int]schedule.DayTimes)
	for rows.Next() {
		var (
			dayOfWeek  int
			start, end pgtype.Time
		)
		if err := rows.Scan(&dayOfWeek, &start, &end); err != nil {
			return nil, fmt.Errorf("failed to scan work schedule time: %w", err)
		}
		if dayOfWeek < 1 || dayOfWeek > 7 {
			return nil, fmt.Errorf("%w: %d", schedule.ErrInvalidWeekday, dayOfWeek)
		}
		startTOD, endTOD := timeOfDayFromPg(start), timeOfDayFromPg(end)
		if startTOD == nil || endTOD == nil {
			continue
		}
		times[dayOfWeek] = schedule.DayTimes{Start: *startTOD, End: *endTOD}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating work schedule times: %w", err)
	}

	return times, nil
}
