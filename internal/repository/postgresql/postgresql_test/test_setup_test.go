package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/cmlabs-hris/payroll-engine/internal/pkg/database"
	"github.com/stretchr/testify/require"
)

// migrationPath is relative to this package directory.
var migrationPath = filepath.Join("..", "..", "..", "..", "migrations", "000001_payroll_engine.up.sql")

var truncateTables = []string{
	"activity_logs",
	"outbox_events",
	"payroll_details",
	"payrolls",
	"rebates",
	"advance_salaries",
	"loan_requests",
	"bonuses",
	"deductions",
	"allowances",
	"leave_encashments",
	"leave_applications",
	"overtime_requests",
	"attendances",
	"social_security_registrations",
	"employee_bank_details",
	"employee_increments",
	"employees",
	"social_security_institutions",
	"provident_funds",
	"eobi_records",
	"tax_slabs",
	"salary_breakup_components",
	"leave_policies",
	"holidays",
	"working_hours_policies",
}

// newTestDB connects to TEST_DATABASE_URL, applies the schema and empties
// every table. Tests are skipped when the variable is not set.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	db, err := database.NewPostgreSQLDB(ctx, dsn, database.PoolOptions{MaxConns: 4, MinConns: 1})
	require.NoError(t, err)
	t.Cleanup(db.Close)

	schema, err := os.ReadFile(migrationPath)
	require.NoError(t, err)
	_, err = db.Exec(ctx, string(schema))
	require.NoError(t, err)

	require.NoError(t, truncateAll(ctx, db))
	return db
}

func truncateAll(ctx context.Context, db *database.DB) error {
	tx, err := db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, table := range truncateTables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

func insertEmployee(t *testing.T, db *database.DB, code, name, pkg, status string) string {
	t.Helper()

	var id string
	err := db.QueryRow(context.Background(), `
		INSERT INTO employees (employee_code, full_name, status, base_package)
		VALUES ($1, $2, $3, $4::numeric)
		RETURNING id
	`, code, name, status, pkg).Scan(&id)
	require.NoError(t, err)
	return id
}
