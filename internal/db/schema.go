package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schemaStatements creates the three tables the application owns. The pass is
// idempotent so it runs unconditionally at startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		password TEXT NOT NULL,
		email TEXT NOT NULL UNIQUE,
		account_created TIMESTAMPTZ NOT NULL DEFAULT now(),
		account_updated TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_users_email ON users (email)`,
	`CREATE TABLE IF NOT EXISTS assignments (
		id UUID PRIMARY KEY,
		name TEXT NOT NULL,
		points INTEGER NOT NULL,
		num_of_attemps INTEGER NOT NULL,
		deadline TIMESTAMPTZ NOT NULL,
		assignment_created TIMESTAMPTZ NOT NULL DEFAULT now(),
		assignment_updated TIMESTAMPTZ NOT NULL DEFAULT now(),
		owner_user_id UUID NOT NULL REFERENCES users (id),
		CONSTRAINT check_points_range CHECK (points >= 1 AND points <= 10),
		CONSTRAINT check_num_of_attemps_range CHECK (num_of_attemps >= 1 AND num_of_attemps <= 100)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_owner ON assignments (owner_user_id)`,
	`CREATE TABLE IF NOT EXISTS submissions (
		id UUID PRIMARY KEY,
		assignment_id UUID NOT NULL REFERENCES assignments (id),
		submission_url TEXT,
		submission_date TIMESTAMPTZ NOT NULL DEFAULT now(),
		submission_updated TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_submissions_assignment ON submissions (assignment_id)`,
}

// EnsureSchema creates missing tables and indexes.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schemaStatements {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
