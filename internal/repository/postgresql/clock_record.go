package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/pointage-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
)

const clockRecordsOneEventPerDay = "clock_records_employee_date_event_key"

type clockRecordRepositoryImpl struct {
	db *database.DB
}

func NewClockRecordRepository(db *database.DB) attendance.ClockRecordRepository {
	return &clockRecordRepositoryImpl{db: db}
}

// GetDayRecords implements attendance.ClockRecordRepository.
func (c *clockRecordRepositoryImpl) GetDayRecords(ctx context.Context, employeeID string, date time.Time) ([]attendance.ClockRecord, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT id, employee_id, date, clocked_at, event, status,
			   scheduled_start, scheduled_end,
			   late_minutes, early_leave_minutes, overtime_minutes,
			   source, created_at, updated_at
		FROM clock_records
		WHERE employee_id = $1 AND date = $2
		ORDER BY clocked_at ASC, created_at ASC
	`

	rows, err := q.Query(ctx, query, employeeID, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query clock records: %w", err)
	}
	defer rows.Close()

	var records []attendance.ClockRecord
	for rows.Next() {
		var (
			rec            attendance.ClockRecord
			scheduledStart pgtype.Time
			scheduledEnd   pgtype.Time
		)
		err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.Timestamp, &rec.Event, &rec.Status,
			&scheduledStart, &scheduledEnd,
			&rec.LateMinutes, &rec.EarlyLeaveMinutes, &rec.OvertimeMinutes,
			&rec.Source, &rec.CreatedAt, &rec.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan clock record: %w", err)
		}
		rec.ScheduledStart = timeOfDayFromPg(scheduledStart)
		rec.ScheduledEnd = timeOfDayFromPg(scheduledEnd)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating clock records: %w", err)
	}

	return records, nil
}

// Append implements attendance.ClockRecordRepository. The unique index on
// (employee_id, date, event) turns a concurrent second entry or exit into a
// duplicate error.
func (c *clockRecordRepositoryImpl) Append(ctx context.Context, record attendance.ClockRecord) (attendance.ClockRecord, error) {
	q := GetQuerier(ctx, c.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.ClockRecord{}, fmt.Errorf("failed to generate clock record id: %w", err)
	}
	record.ID = id.String()

	query := `
		INSERT INTO clock_records (
			id, employee_id, date, clocked_at, event, status,
			scheduled_start, scheduled_end,
			late_minutes, early_leave_minutes, overtime_minutes, source
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`

	err = q.QueryRow(ctx, query,
		record.ID,
		record.EmployeeID,
		record.Date,
		record.Timestamp,
		record.Event,
		record.Status,
		timeOfDayToPg(record.ScheduledStart),
		timeOfDayToPg(record.ScheduledEnd),
		record.LateMinutes,
		record.EarlyLeaveMinutes,
		record.OvertimeMinutes,
		record.Source,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == clockRecordsOneEventPerDay {
			if record.Event == attendance.EventOut {
				return attendance.ClockRecord{}, attendance.ErrDuplicateCheckOut
			}
			return attendance.ClockRecord{}, attendance.ErrDuplicateCheckIn
		}
		return attendance.ClockRecord{}, fmt.Errorf("failed to create clock record: %w", err)
	}

	return record, nil
}

// UpdateLeadRecordStatus implements attendance.ClockRecordRepository.
func (c *clockRecordRepositoryImpl) UpdateLeadRecordStatus(ctx context.Context, employeeID string, date time.Time, status attendance.Status) error {
	q := GetQuerier(ctx, c.db)

	query := `
		UPDATE clock_records
		SET status = $1, updated_at = NOW()
		WHERE employee_id = $2 AND date = $3 AND event = $4
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query, status, employeeID, date, attendance.EventIn).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrMissingCheckIn
		}
		return fmt.Errorf("failed to update lead record status: %w", err)
	}

	return nil
}

// ListIncompleteDays implements attendance.ClockRecordRepository.
func (c *clockRecordRepositoryImpl) ListIncompleteDays(ctx context.Context, from, to time.Time) ([]attendance.IncompleteDay, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT employee_id, date, COUNT(*) AS record_count
		FROM clock_records
		WHERE date BETWEEN $1 AND $2
		GROUP BY employee_id, date
		HAVING COUNT(*) % 2 <> 0
		ORDER BY date ASC, employee_id ASC
	`

	rows, err := q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query incomplete days: %w", err)
	}
	defer rows.Close()

	var days []attendance.IncompleteDay
	for rows.Next() {
		var d attendance.IncompleteDay
		if err := rows.Scan(&d.EmployeeID, &d.Date, &d.RecordCount); err != nil {
			return nil, fmt.Errorf("failed to scan incomplete day: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating incomplete days: %w", err)
	}

	return days, nil
}

const microsecondsPerMinute = int64(time.Minute / time.Microsecond)

func timeOfDayFromPg(t pgtype.Time) *schedule.TimeOfDay {
	if !t.Valid {
		return nil
	}
	tod := schedule.TimeOfDay(t.Microseconds / microsecondsPerMinute)
	return &tod
}

func timeOfDayToPg(t *schedule.TimeOfDay) pgtype.Time {
	if t == nil {
		return pgtype.Time{}
	}
	return pgtype.Time{Microseconds: int64(*t) * microsecondsPerMinute, Valid: true}
}
