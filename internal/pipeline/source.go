package pipeline

import (
	"context"
	"fmt"

	"github.com/thenoetrevino/hirepipe/internal/models"
	"github.com/thenoetrevino/hirepipe/internal/taxonomy"
	"golang.org/x/sync/errgroup"
)

// Source is the load query a board was built from.
// Reconciliation re-issues the same query on every tick.
type Source interface {
	Load(ctx context.Context) (*View, error)
	String() string
}

// ApplicationLister fetches the per-job records an applications board needs
type ApplicationLister interface {
	ListApplications(ctx context.Context, practiceID, jobPostingID string) ([]models.Application, error)
	ListStages(ctx context.Context, practiceID, jobPostingID string) ([]models.StageDefinition, error)
}

// CandidateLister fetches practice-wide candidate records
type CandidateLister interface {
	ListCandidates(ctx context.Context, practiceID string) ([]models.Candidate, error)
}

// ApplicationsSource loads all applications of one job posting and that
// job's stage definitions
type ApplicationsSource struct {
	API          ApplicationLister
	PracticeID   string
	JobPostingID string
}

// Load fetches stages and applications concurrently and builds the view
func (s *ApplicationsSource) Load(ctx context.Context) (*View, error) {
	var (
		defs []models.StageDefinition
		apps []models.Application
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		defs, err = s.API.ListStages(gctx, s.PracticeID, s.JobPostingID)
		if err != nil {
			return fmt.Errorf("failed to load stages: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		apps, err = s.API.ListApplications(gctx, s.PracticeID, s.JobPostingID)
		if err != nil {
			return fmt.Errorf("failed to load applications: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	tax, err := taxonomy.FromDefinitions(defs)
	if err != nil {
		return nil, fmt.Errorf("invalid stage definitions: %w", err)
	}

	return &View{
		Taxonomy: tax,
		Stages:   tax.Stages(),
		Cards:    BuildFromApplications(tax, apps),
	}, nil
}

func (s *ApplicationsSource) String() string {
	return fmt.Sprintf("applications(practice=%s, job=%s)", s.PracticeID, s.JobPostingID)
}

// CandidatesSource loads every non-archived candidate of a practice.
// The terminal stage is hidden from the board layout but cards can still
// be moved into it.
type CandidatesSource struct {
	API        CandidateLister
	PracticeID string
	Taxonomy   *taxonomy.Taxonomy // nil means taxonomy.Default()
}

// Load fetches candidates and builds the view
func (s *CandidatesSource) Load(ctx context.Context) (*View, error) {
	tax := s.Taxonomy
	if tax == nil {
		tax = taxonomy.Default()
	}

	candidates, err := s.API.ListCandidates(ctx, s.PracticeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidates: %w", err)
	}

	return &View{
		Taxonomy: tax,
		Stages:   tax.AllStagesExcept(taxonomy.StageRejected),
		Cards:    BuildFromCandidates(tax, candidates),
	}, nil
}

func (s *CandidatesSource) String() string {
	return fmt.Sprintf("candidates(practice=%s)", s.PracticeID)
}
