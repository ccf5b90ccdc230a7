package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// Execer is the subset of pgxpool.Pool, pgx.Conn and pgx.Tx used by Migrate.
type Execer interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
}

// AuthorsSchema creates the single table of the catalog.
// gen_random_uuid() is built in since PostgreSQL 13.
const AuthorsSchema = `
CREATE TABLE IF NOT EXISTS authors (
	id         UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name       TEXT NOT NULL CHECK (name <> ''),
	birth_date TEXT,
	death_date TEXT,
	biography  TEXT NOT NULL,
	image_url  TEXT
)`

// Migrate applies the schema. It is idempotent.
func Migrate(ctx context.Context, db Execer) error {
	if _, err := db.Exec(ctx, AuthorsSchema); err != nil {
		return fmt.Errorf("create authors table: %w", err)
	}
	return nil
}
