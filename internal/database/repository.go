package database

import (
	"context"
	"database/sql"
)

// Repository provides a unified interface to all data operations.
// It composes the per-table repositories using struct embedding.
type Repository struct {
	*JobRepo
	*CandidateRepo
	*ApplicationRepo

	db *sql.DB
}

// NewRepository wraps an open database
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		JobRepo:         &JobRepo{db: db},
		CandidateRepo:   &CandidateRepo{db: db},
		ApplicationRepo: &ApplicationRepo{db: db},
		db:              db,
	}
}

// Ping checks the database connection
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
