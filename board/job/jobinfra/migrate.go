package jobinfra

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS jobs (
		id BIGSERIAL PRIMARY KEY,
		slug TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		type TEXT NOT NULL,
		company_name TEXT NOT NULL,
		company_logo_url TEXT NULL,
		location_type TEXT NOT NULL,
		location TEXT NULL,
		application_email TEXT NULL,
		application_url TEXT NULL,
		description TEXT NULL,
		salary INTEGER NOT NULL,
		approved BOOLEAN NOT NULL DEFAULT false,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
		search_text TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS jobs_approved_created_at_idx ON jobs (approved, created_at DESC)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS jobs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		slug TEXT NOT NULL UNIQUE,
		title TEXT NOT NULL,
		type TEXT NOT NULL,
		company_name TEXT NOT NULL,
		company_logo_url TEXT NULL,
		location_type TEXT NOT NULL,
		location TEXT NULL,
		application_email TEXT NULL,
		application_url TEXT NULL,
		description TEXT NULL,
		salary INTEGER NOT NULL,
		approved BOOLEAN NOT NULL DEFAULT 0,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		search_text TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE INDEX IF NOT EXISTS jobs_approved_created_at_idx ON jobs (approved, created_at DESC)`,
}

// Migrate creates the jobs table for the connection's driver if it is missing
func Migrate(ctx context.Context, db *sqlx.DB) error {
	var stmts []string
	switch db.DriverName() {
	case "postgres":
		stmts = postgresSchema
	case "sqlite":
		stmts = sqliteSchema
	default:
		return fmt.Errorf("no schema for driver %q", db.DriverName())
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate jobs table: %w", err)
		}
	}
	return nil
}
