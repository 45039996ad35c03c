package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/thenoetrevino/hirepipe/internal/models"
	"github.com/thenoetrevino/hirepipe/internal/taxonomy"
)

// CandidateRepo stores practice-wide candidates
type CandidateRepo struct {
	db *sql.DB
}

const candidateColumns = `c.id, c.status, c.first_name, c.last_name, c.email, c.phone,
	c.date_of_birth, c.current_position, c.rating, c.notes,
	c.salary_expectation, c.weekly_hours, c.created_at,
	COALESCE(c.job_posting_id, ''), COALESCE(j.title, '')`

// CreateCandidate inserts c for a practice. ID and CreatedAt are assigned.
func (r *CandidateRepo) CreateCandidate(ctx context.Context, practiceID string, c models.Candidate) (*models.Candidate, error) {
	if practiceID == "" {
		return nil, ErrEmptyValue
	}
	c.ID = uuid.NewString()
	if c.Status == "" {
		c.Status = taxonomy.StatusNew
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO candidates (id, practice_id, status, first_name, last_name, email, phone,
			date_of_birth, current_position, rating, notes, salary_expectation, weekly_hours, job_posting_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, practiceID, c.Status, c.FirstName, c.LastName, c.Email, c.Phone,
		c.DateOfBirth, c.CurrentPosition, c.Rating, c.Notes,
		ptrToNullFloat(c.SalaryExpectation), ptrToNullFloat(c.WeeklyHours), nullString(c.JobPostingID),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}
	return r.GetCandidate(ctx, c.ID)
}

// GetCandidate returns one candidate
func (r *CandidateRepo) GetCandidate(ctx context.Context, id string) (*models.Candidate, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+candidateColumns+`
		 FROM candidates c LEFT JOIN job_postings j ON j.id = c.job_posting_id
		 WHERE c.id = ?`,
		id,
	)
	c, err := scanCandidate(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCandidates returns the candidates of a practice, newest first
func (r *CandidateRepo) ListCandidates(ctx context.Context, practiceID string, excludeArchived bool) ([]models.Candidate, error) {
	query := `SELECT ` + candidateColumns + `
		 FROM candidates c LEFT JOIN job_postings j ON j.id = c.job_posting_id
		 WHERE c.practice_id = ?`
	args := []any{practiceID}
	if excludeArchived {
		query += ` AND c.status != ?`
		args = append(args, taxonomy.StatusArchived)
	}
	query += ` ORDER BY c.created_at DESC, c.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	candidates := []models.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, *c)
	}
	return candidates, rows.Err()
}

// UpdateCandidateStatus writes a new global status
func (r *CandidateRepo) UpdateCandidateStatus(ctx context.Context, id, status string) error {
	if status == "" {
		return ErrEmptyValue
	}
	res, err := r.db.ExecContext(ctx, `UPDATE candidates SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to update candidate %s: %w", id, err)
	}
	return checkAffected(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCandidate(s scanner) (*models.Candidate, error) {
	var (
		c              models.Candidate
		salary, weekly sql.NullFloat64
	)
	err := s.Scan(
		&c.ID, &c.Status, &c.FirstName, &c.LastName, &c.Email, &c.Phone,
		&c.DateOfBirth, &c.CurrentPosition, &c.Rating, &c.Notes,
		&salary, &weekly, &c.CreatedAt,
		&c.JobPostingID, &c.JobPostingTitle,
	)
	if err != nil {
		return nil, err
	}
	c.SalaryExpectation = nullFloatToPtr(salary)
	c.WeeklyHours = nullFloatToPtr(weekly)
	return &c, nil
}
