// Package postgresqltest runs the PostgreSQL repositories against a live database.
package postgresqltest

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/cmlabs-hris/pointage-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/pointage-backend-go/internal/repository/postgresql"
	"github.com/stretchr/testify/require"
)

// TestDatabaseSetup wraps the connection to the integration test database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the schema.
// Tests are skipped when the variable is unset.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(context.Background(), dsn, database.PoolOptions{MaxConns: 5})
	require.NoError(t, err)

	setup := &TestDatabaseSetup{DB: db}
	_, err = db.Exec(context.Background(), postgresql.Schema)
	require.NoError(t, err)
	require.NoError(t, setup.TruncateAllTables(context.Background()))

	t.Cleanup(setup.Close)
	return setup
}

// TruncateAllTables removes every row written by a previous test.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"clock_records",
		"overtime_approvals",
		"recovery_declarations",
		"recovery_periods",
		"holidays",
		"work_schedule_times",
		"work_schedules",
		"employees",
	}

	for _, table := range tables {
		_, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

func (t *TestDatabaseSetup) Close() {
	t.DB.Close()
}

func createTestEmployee(t *testing.T, ctx context.Context, db *database.DB, code string) string {
	t.Helper()
	var id string
	err := db.QueryRow(ctx, `
		INSERT INTO employees (employee_code, full_name, requires_clocking)
		VALUES ($1, 'Test Employee', TRUE)
		RETURNING id
	`, code).Scan(&id)
	require.NoError(t, err)
	return id
}
