// Package postgres implements kvstore.Store on a PostgreSQL table.
package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/MoaeadAlhosami/STREETWEER/pkg/database"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migrations returns the embedded schema migrations.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// Migrate applies the kv_store schema.
func Migrate(ctx context.Context, db database.DBTX, logger *slog.Logger) error {
	return database.RunMigrations(ctx, db, Migrations(), logger)
}

const (
	selectValueSQL = `SELECT value FROM kv_store WHERE key = $1`
	upsertValueSQL = `INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, NOW())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	deleteValueSQL = `DELETE FROM kv_store WHERE key = $1`
)

// Store implements kvstore.Store using the kv_store table.
type Store struct {
	db database.DBTX
}

// New creates a Postgres-backed store.
func New(db database.DBTX) *Store {
	return &Store{db: db}
}

// Get implements kvstore.Store.
func (s *Store) Get(ctx context.Context, key string) (value string, ok bool, err error) {
	ctx, end := database.TraceQuery(ctx, "kv.Get", selectValueSQL)
	defer func() { end(err) }()

	err = s.db.QueryRow(ctx, selectValueSQL, key).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		err = nil
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("select kv %s: %w", key, err)
	}
	return value, true, nil
}

// Set implements kvstore.Store.
func (s *Store) Set(ctx context.Context, key, value string) (err error) {
	ctx, end := database.TraceQuery(ctx, "kv.Set", upsertValueSQL)
	defer func() { end(err) }()

	if _, err = s.db.Exec(ctx, upsertValueSQL, key, value); err != nil {
		return fmt.Errorf("upsert kv %s: %w", key, err)
	}
	return nil
}

// Delete implements kvstore.Store.
func (s *Store) Delete(ctx context.Context, key string) (err error) {
	ctx, end := database.TraceQuery(ctx, "kv.Delete", deleteValueSQL)
	defer func() { end(err) }()

	if _, err = s.db.Exec(ctx, deleteValueSQL, key); err != nil {
		return fmt.Errorf("delete kv %s: %w", key, err)
	}
	return nil
}
