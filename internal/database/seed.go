package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/hirepipe/internal/models"
	"github.com/thenoetrevino/hirepipe/internal/taxonomy"
)

// SeedResult names what Seed created
type SeedResult struct {
	JobPostingID string
	Candidates   int
	Applications int
}

func floatPtr(v float64) *float64 { return &v }

// Seed creates a demo job posting for practiceID with the default stages,
// a handful of candidates and one application per candidate.
// Seeding a practice that already has job postings does nothing.
func Seed(ctx context.Context, repo *Repository, practiceID string) (*SeedResult, error) {
	existing, err := repo.ListJobPostings(ctx, practiceID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		slog.Info("practice already seeded", "practice", practiceID)
		return &SeedResult{JobPostingID: existing[0].ID}, nil
	}

	job, err := repo.CreateJobPosting(ctx, practiceID, "Zahnmedizinische Fachangestellte", "Praxis")
	if err != nil {
		return nil, err
	}
	for _, st := range taxonomy.DefaultStages() {
		if _, err := repo.CreateStage(ctx, job.ID, st.Name, st.Color, st.Order); err != nil {
			return nil, err
		}
	}

	people := []models.Candidate{
		{FirstName: "Anna", LastName: "Berger", Status: taxonomy.StatusNew, DateOfBirth: "1990-05-10", Rating: 4.5,
			SalaryExpectation: floatPtr(3200), WeeklyHours: floatPtr(40), Notes: "**Sehr** motiviert, Erfahrung in der Prophylaxe."},
		{FirstName: "Jonas", LastName: "Weber", Status: taxonomy.StatusContacted, DateOfBirth: "1995-11-02", Rating: 3.5},
		{FirstName: "Leonie", LastName: "Schulz", Status: taxonomy.StatusFirstInterview, Rating: 4,
			SalaryExpectation: floatPtr(2800), WeeklyHours: floatPtr(30)},
		{FirstName: "Mehmet", LastName: "Yilmaz", Status: taxonomy.StatusTrialWork, DateOfBirth: "1988-01-20"},
		{FirstName: "Sophie", LastName: "Wagner", Status: taxonomy.StatusOfferExtended, Rating: 5},
		{FirstName: "Tim", LastName: "Hoffmann", Status: taxonomy.StatusRejected},
	}

	tax := taxonomy.Default()
	res := &SeedResult{JobPostingID: job.ID}
	for _, p := range people {
		p.JobPostingID = job.ID
		c, err := repo.CreateCandidate(ctx, practiceID, p)
		if err != nil {
			return nil, err
		}
		res.Candidates++

		if _, err := repo.CreateApplication(ctx, c.ID, job.ID, tax.StageForStatus(c.Status)); err != nil {
			return nil, fmt.Errorf("failed to seed application for %s: %w", c.FirstName, err)
		}
		res.Applications++
	}

	slog.Info("seeded practice", "practice", practiceID, "job", job.ID, "candidates", res.Candidates)
	return res, nil
}
