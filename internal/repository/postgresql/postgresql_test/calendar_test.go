package postgresqltest

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/pointage-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewCalendarRepository(setup.DB)
	employeeID := createTestEmployee(t, ctx, setup.DB, "EMP-010")
	date := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	holiday, err := repo.GetHoliday(ctx, date)
	require.NoError(t, err)
	assert.Nil(t, holiday)

	_, err = setup.DB.Exec(ctx, `INSERT INTO holidays (date, name) VALUES ($1, 'Fête du Travail')`, date)
	require.NoError(t, err)

	holiday, err = repo.GetHoliday(ctx, date)
	require.NoError(t, err)
	require.NotNil(t, holiday)
	assert.Equal(t, "Fête du Travail", holiday.Name)

	var periodID string
	require.NoError(t, setup.DB.QueryRow(ctx,
		`INSERT INTO recovery_periods (name, is_active) VALUES ('Pont de mai', TRUE) RETURNING id`,
	).Scan(&periodID))
	_, err = setup.DB.Exec(ctx, `
		INSERT INTO recovery_declarations (period_id, date, is_day_off, hours_to_recover, applies_to_all)
		VALUES ($1, $2, TRUE, 7.5, FALSE)
	`, periodID, date)
	require.NoError(t, err)

	declarations, err := repo.GetRecoveryDeclarations(ctx, date)
	require.NoError(t, err)
	require.Len(t, declarations, 1)
	assert.Equal(t, "Pont de mai", declarations[0].PeriodName)
	assert.True(t, declarations[0].PeriodActive)
	assert.True(t, declarations[0].IsDayOff)
	assert.InDelta(t, 7.5, declarations[0].HoursToRecover, 0.001)
	assert.False(t, declarations[0].AppliesToAll)
	assert.Nil(t, declarations[0].DepartmentID)
	assert.Nil(t, declarations[0].SegmentID)
	assert.Nil(t, declarations[0].CenterID)

	approved, err := repo.HasApprovedOvertime(ctx, employeeID, date)
	require.NoError(t, err)
	assert.False(t, approved)

	_, err = setup.DB.Exec(ctx, `INSERT INTO overtime_approvals (employee_id, date, approved) VALUES ($1, $2, TRUE)`, employeeID, date)
	require.NoError(t, err)

	approved, err = repo.HasApprovedOvertime(ctx, employeeID, date)
	require.NoError(t, err)
	assert.True(t, approved)
}
