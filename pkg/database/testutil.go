package database

import (
	pgxmock "github.com/pashagolub/pgxmock/v4"
)

// NewMockPool creates a pgxmock pool that satisfies DBTX, for testing the
// Postgres cart slot store and migrations without a server. Call
// ExpectationsWereMet at the end of each test.
func NewMockPool() (pgxmock.PgxPoolIface, error) {
	return pgxmock.NewPool()
}

// ExpectMigrationsApplied queues the statements RunMigrations issues when
// every one of versions is already recorded in schema_migrations.
func ExpectMigrationsApplied(mock pgxmock.PgxPoolIface, versions ...string) {
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	for _, v := range versions {
		mock.ExpectQuery("SELECT EXISTS").WithArgs(v).
			WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
	}
}
