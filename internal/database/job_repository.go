package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/thenoetrevino/hirepipe/internal/models"
)

// JobRepo stores job postings and their pipeline stages
type JobRepo struct {
	db *sql.DB
}

// CreateJobPosting inserts a job posting for a practice
func (r *JobRepo) CreateJobPosting(ctx context.Context, practiceID, title, department string) (*models.JobPosting, error) {
	if practiceID == "" || title == "" {
		return nil, ErrEmptyValue
	}
	job := &models.JobPosting{ID: uuid.NewString(), Title: title, Department: department}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO job_postings (id, practice_id, title, department) VALUES (?, ?, ?, ?)`,
		job.ID, practiceID, title, department,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create job posting: %w", err)
	}
	return job, nil
}

// ListJobPostings returns the job postings of a practice ordered by title
func (r *JobRepo) ListJobPostings(ctx context.Context, practiceID string) ([]models.JobPosting, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, department FROM job_postings
		 WHERE practice_id = ?
		 ORDER BY title`,
		practiceID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	jobs := []models.JobPosting{}
	for rows.Next() {
		var job models.JobPosting
		if err := rows.Scan(&job.ID, &job.Title, &job.Department); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// CreateStage adds a pipeline stage to a job posting
func (r *JobRepo) CreateStage(ctx context.Context, jobPostingID, name, color string, order int) (*models.StageDefinition, error) {
	if name == "" {
		return nil, ErrEmptyValue
	}
	def := &models.StageDefinition{
		ID:           uuid.NewString(),
		Name:         name,
		Color:        color,
		StageOrder:   order,
		JobPostingID: jobPostingID,
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO pipeline_stages (id, job_posting_id, name, color, stage_order)
		 VALUES (?, ?, ?, ?, ?)`,
		def.ID, jobPostingID, name, color, order,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create stage %q: %w", name, err)
	}
	return def, nil
}

// ListStages returns the stages of a job posting in board order.
// Jobs of other practices yield an empty list.
func (r *JobRepo) ListStages(ctx context.Context, practiceID, jobPostingID string) ([]models.StageDefinition, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT s.id, s.name, s.color, s.stage_order, s.job_posting_id
		 FROM pipeline_stages s
		 JOIN job_postings j ON j.id = s.job_posting_id
		 WHERE j.practice_id = ? AND s.job_posting_id = ?
		 ORDER BY s.stage_order, s.name`,
		practiceID, jobPostingID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	defs := []models.StageDefinition{}
	for rows.Next() {
		var d models.StageDefinition
		if err := rows.Scan(&d.ID, &d.Name, &d.Color, &d.StageOrder, &d.JobPostingID); err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	return defs, rows.Err()
}

// stageNames returns the stage names of a job posting
func stageNames(ctx context.Context, q interface {
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
}, jobPostingID string) (map[string]bool, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT name FROM pipeline_stages WHERE job_posting_id = ?`, jobPostingID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	names := map[string]bool{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names[name] = true
	}
	return names, rows.Err()
}
