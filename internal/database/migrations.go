package database

import (
	"context"
	"database/sql"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS job_postings (
		id TEXT PRIMARY KEY,
		practice_id TEXT NOT NULL,
		title TEXT NOT NULL,
		department TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS pipeline_stages (
		id TEXT PRIMARY KEY,
		job_posting_id TEXT NOT NULL,
		name TEXT NOT NULL,
		color TEXT NOT NULL DEFAULT '',
		stage_order INTEGER NOT NULL,
		UNIQUE (job_posting_id, name),
		FOREIGN KEY (job_posting_id) REFERENCES job_postings(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS candidates (
		id TEXT PRIMARY KEY,
		practice_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'new',
		first_name TEXT NOT NULL DEFAULT '',
		last_name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		date_of_birth TEXT NOT NULL DEFAULT '',
		current_position TEXT NOT NULL DEFAULT '',
		rating REAL NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		salary_expectation REAL,
		weekly_hours REAL,
		job_posting_id TEXT REFERENCES job_postings(id) ON DELETE SET NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS applications (
		id TEXT PRIMARY KEY,
		candidate_id TEXT NOT NULL,
		job_posting_id TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'new',
		stage TEXT NOT NULL,
		applied_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (candidate_id) REFERENCES candidates(id) ON DELETE CASCADE,
		FOREIGN KEY (job_posting_id) REFERENCES job_postings(id) ON DELETE CASCADE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_stages_job ON pipeline_stages(job_posting_id, stage_order)`,
	`CREATE INDEX IF NOT EXISTS idx_candidates_practice ON candidates(practice_id, status)`,
	`CREATE INDEX IF NOT EXISTS idx_applications_job ON applications(job_posting_id, applied_at)`,
}

// runMigrations creates the schema; it is safe to run on every start
func runMigrations(ctx context.Context, db *sql.DB) error {
	return withTx(ctx, db, func(tx *sql.Tx) error {
		for _, stmt := range schema {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
}
