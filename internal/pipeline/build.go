// Package pipeline holds the locally materialized board: the cards of one
// view grouped into stage columns, rebuilt wholesale on load and patched in
// place by optimistic moves.
package pipeline

import (
	"strings"

	"github.com/thenoetrevino/hirepipe/internal/models"
	"github.com/thenoetrevino/hirepipe/internal/taxonomy"
)

// BuildFromApplications turns application records into cards.
// The explicit stage wins; a blank stage falls back to the status mapping.
// Records with missing display fields are kept with blanks so the card
// count always equals the record count.
func BuildFromApplications(tax *taxonomy.Taxonomy, apps []models.Application) []*models.Card {
	cards := make([]*models.Card, 0, len(apps))
	for _, app := range apps {
		stage := strings.TrimSpace(app.Stage)
		if stage == "" {
			stage = tax.StageForStatus(app.Status)
		}

		cards = append(cards, &models.Card{
			ID:        app.ID,
			Kind:      models.KindApplication,
			Stage:     stage,
			Status:    app.Status,
			AppliedAt: app.AppliedAt,
			Candidate: personToRef(app.Candidate),
			Job: &models.JobRef{
				ID:         app.JobPosting.ID,
				Title:      app.JobPosting.Title,
				Department: app.JobPosting.Department,
			},
		})
	}
	return cards
}

// BuildFromCandidates turns practice-wide candidate records into cards with
// synthesized ids and status-derived stages
func BuildFromCandidates(tax *taxonomy.Taxonomy, candidates []models.Candidate) []*models.Card {
	cards := make([]*models.Card, 0, len(candidates))
	for _, c := range candidates {
		card := &models.Card{
			ID:        models.CandidateCardID(c.ID),
			Kind:      models.KindCandidate,
			Stage:     tax.StageForStatus(c.Status),
			Status:    c.Status,
			AppliedAt: c.CreatedAt,
			Candidate: models.CandidateRef{
				ID:                c.ID,
				FirstName:         c.FirstName,
				LastName:          c.LastName,
				Email:             c.Email,
				Phone:             c.Phone,
				DateOfBirth:       c.DateOfBirth,
				CurrentPosition:   c.CurrentPosition,
				Rating:            c.Rating,
				ImageURL:          c.ImageURL,
				Documents:         c.Documents,
				Notes:             c.Notes,
				SalaryExpectation: c.SalaryExpectation,
				WeeklyHours:       c.WeeklyHours,
			},
		}
		if c.JobPostingID != "" || c.JobPostingTitle != "" {
			card.Job = &models.JobRef{ID: c.JobPostingID, Title: c.JobPostingTitle}
		}
		cards = append(cards, card)
	}
	return cards
}

func personToRef(p models.ApplicationPerson) models.CandidateRef {
	return models.CandidateRef{
		ID:                p.ID,
		FirstName:         p.FirstName,
		LastName:          p.LastName,
		Email:             p.Email,
		Phone:             p.Phone,
		DateOfBirth:       p.DateOfBirth,
		CurrentPosition:   p.CurrentPosition,
		Rating:            p.Rating,
		ImageURL:          p.ImageURL,
		Documents:         p.Documents,
		Notes:             p.Notes,
		SalaryExpectation: p.SalaryExpectation,
		WeeklyHours:       p.WeeklyHours,
	}
}
