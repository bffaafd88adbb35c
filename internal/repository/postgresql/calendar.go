package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/pointage-backend-go/internal/domain/calendar"
	"github.com/cmlabs-hris/pointage-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type calendarRepositoryImpl struct {
	db *database.DB
}

func NewCalendarRepository(db *database.DB) calendar.Repository {
	return &calendarRepositoryImpl{db: db}
}

// GetHoliday implements calendar.Repository.
func (c *calendarRepositoryImpl) GetHoliday(ctx context.Context, date time.Time) (*calendar.Holiday, error) {
	q := GetQuerier(ctx, c.db)

	query := `SELECT id, date, name FROM holidays WHERE date = $1 LIMIT 1`

	var h calendar.Holiday
	err := q.QueryRow(ctx, query, date).Scan(&h.ID, &h.Date, &h.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get holiday: %w", err)
	}

	return &h, nil
}

// GetRecoveryDeclarations implements calendar.Repository. Declarations come
// back in creation order, which is the order the classifier matches them in.
func (c *calendarRepositoryImpl) GetRecoveryDeclarations(ctx context.Context, date time.Time) ([]calendar.RecoveryDeclaration, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT rd.id, rd.period_id, rp.name, rp.is_active,
			   rd.date, rd.is_day_off, rd.hours_to_recover, rd.applies_to_all,
			   rd.department_id, rd.segment_id, rd.center_id
		FROM recovery_declarations rd
		JOIN recovery_periods rp ON rp.id = rd.period_id
		WHERE rd.date = $1
		ORDER BY rd.created_at ASC, rd.id ASC
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query recovery declarations: %w", err)
	}
	defer rows.Close()

	var declarations []calendar.RecoveryDeclaration
	for rows.Next() {
		var d calendar.RecoveryDeclaration
		err := rows.Scan(
			&d.ID, &d.PeriodID, &d.PeriodName, &d.PeriodActive,
			&d.Date, &d.IsDayOff, &d.HoursToRecover, &d.AppliesToAll,
			&d.DepartmentID, &d.SegmentID, &d.CenterID,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recovery declaration: %w", err)
		}
		declarations = append(declarations, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recovery declarations: %w", err)
	}

	return declarations, nil
}

// HasApprovedOvertime implements calendar.Repository.
func (c *calendarRepositoryImpl) HasApprovedOvertime(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, c.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM overtime_approvals
			WHERE employee_id = $1 AND date = $2 AND approved = TRUE
		)
	`

	var approved bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&approved); err != nil {
		return false, fmt.Errorf("failed to check overtime approval: %w", err)
	}

	return approved, nil
}
