package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/thenoetrevino/hirepipe/internal/models"
	"github.com/thenoetrevino/hirepipe/internal/taxonomy"
)

// ApplicationRepo stores per-job applications
type ApplicationRepo struct {
	db *sql.DB
}

// CreateApplication links a candidate to a job posting in stage
func (r *ApplicationRepo) CreateApplication(ctx context.Context, candidateID, jobPostingID, stage string) (*models.Application, error) {
	if stage == "" {
		return nil, ErrEmptyValue
	}
	status, ok := taxonomy.Default().StatusForStage(stage)
	if !ok {
		status = taxonomy.StatusNew
	}

	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO applications (id, candidate_id, job_posting_id, status, stage, applied_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, candidateID, jobPostingID, status, stage, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return r.GetApplication(ctx, id)
}

const applicationQuery = `SELECT a.id, a.status, a.stage, a.applied_at,
	c.id, c.first_name, c.last_name, c.email, c.phone, c.date_of_birth,
	c.current_position, c.rating, c.notes, c.salary_expectation, c.weekly_hours,
	j.id, j.title, j.department
	FROM applications a
	JOIN candidates c ON c.id = a.candidate_id
	JOIN job_postings j ON j.id = a.job_posting_id`

// GetApplication returns one application with its candidate and job
func (r *ApplicationRepo) GetApplication(ctx context.Context, id string) (*models.Application, error) {
	app, err := scanApplication(r.db.QueryRowContext(ctx, applicationQuery+` WHERE a.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return app, nil
}

// ListApplications returns the applications of one job posting in the
// order they were received
func (r *ApplicationRepo) ListApplications(ctx context.Context, practiceID, jobPostingID string) ([]models.Application, error) {
	rows, err := r.db.QueryContext(ctx,
		applicationQuery+` WHERE j.practice_id = ? AND a.job_posting_id = ?
		 ORDER BY a.applied_at, a.id`,
		practiceID, jobPostingID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	apps := []models.Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

// UpdateApplicationStage moves an application to stage. When the job
// defines its own stages the name must be one of them. The status follows
// the stage where the default taxonomy knows a canonical status.
func (r *ApplicationRepo) UpdateApplicationStage(ctx context.Context, id, stage string) error {
	if stage == "" {
		return ErrEmptyValue
	}

	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		var jobID string
		err := tx.QueryRowContext(ctx, `SELECT job_posting_id FROM applications WHERE id = ?`, id).Scan(&jobID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		names, err := stageNames(ctx, tx, jobID)
		if err != nil {
			return err
		}
		if len(names) > 0 && !names[stage] {
			return fmt.Errorf("%w: %s", ErrUnknownStage, stage)
		}

		if status, ok := taxonomy.Default().StatusForStage(stage); ok {
			_, err = tx.ExecContext(ctx, `UPDATE applications SET stage = ?, status = ? WHERE id = ?`, stage, status, id)
		} else {
			_, err = tx.ExecContext(ctx, `UPDATE applications SET stage = ? WHERE id = ?`, stage, id)
		}
		if err != nil {
			return fmt.Errorf("failed to update application %s: %w", id, err)
		}
		return nil
	})
}

func scanApplication(s scanner) (*models.Application, error) {
	var (
		app            models.Application
		salary, weekly sql.NullFloat64
	)
	p := &app.Candidate
	err := s.Scan(
		&app.ID, &app.Status, &app.Stage, &app.AppliedAt,
		&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone, &p.DateOfBirth,
		&p.CurrentPosition, &p.Rating, &p.Notes, &salary, &weekly,
		&app.JobPosting.ID, &app.JobPosting.Title, &app.JobPosting.Department,
	)
	if err != nil {
		return nil, err
	}
	p.SalaryExpectation = nullFloatToPtr(salary)
	p.WeeklyHours = nullFloatToPtr(weekly)
	return &app, nil
}
