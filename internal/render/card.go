package render

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	"github.com/thenoetrevino/hirepipe/internal/models"
)

// CardState carries the per-card markers of one frame
type CardState struct {
	Selected bool
	Held     bool // picked up by the drag session
	Pending  bool // move or archive not yet confirmed
	Now      time.Time
}

// Card renders a single card
//
//	┏━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
//	┃ AB Anna Berger       ★ 4.5 ┃
//	┃ Zahnmedizinische FA        ┃
//	┃ 34 yrs · €18.46/h          ┃
//	┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛
func Card(card models.Card, st CardState) string {
	// Border and padding
	inner := CardWidth - 4

	name := card.Candidate.FullName()
	if name == "" {
		name = "(no name)"
	}
	head := card.Candidate.Initials() + " " + name
	rating := ""
	if card.Candidate.Rating > 0 {
		rating = fmt.Sprintf("★ %.1f", card.Candidate.Rating)
	}
	switch {
	case st.Pending:
		rating = "saving…"
	case st.Held:
		head = "⇢ " + head
	}

	headWidth := inner - lipgloss.Width(rating) - 1
	head = truncate.StringWithTail(head, uint(max(headWidth, 1)), "…")
	gap := max(inner-lipgloss.Width(head)-lipgloss.Width(rating), 1)
	title := lipgloss.NewStyle().Bold(true).Render(head) + strings.Repeat(" ", gap) + SubtleStyle.Render(rating)

	job := jobTitle(card)
	jobLine := SubtleStyle.Render(truncate.StringWithTail(job, uint(inner), "…"))

	meta := truncate.StringWithTail(Facts(card.Candidate, st.Now), uint(inner), "…")

	style := CardStyle
	switch {
	case st.Held:
		style = style.BorderForeground(lipgloss.Color(HoverBorder)).Faint(true)
	case st.Selected:
		style = style.BorderForeground(lipgloss.Color(SelectedBorder)).
			Background(lipgloss.Color(SelectedBg))
	}

	return style.Render(title + "\n" + jobLine + "\n" + meta)
}

// Facts joins age and hourly rate, the figures shown under the job title
func Facts(c models.CandidateRef, now time.Time) string {
	var parts []string
	if now.IsZero() {
		now = time.Now()
	}
	if age := c.Age(now); age >= 0 {
		parts = append(parts, fmt.Sprintf("%d yrs", age))
	}
	if rate, ok := c.HourlyRate(); ok {
		parts = append(parts, fmt.Sprintf("€%.2f/h", rate))
	}
	if len(parts) == 0 {
		return "–"
	}
	return strings.Join(parts, " · ")
}

func jobTitle(card models.Card) string {
	if card.Job == nil || card.Job.Title == "" {
		return models.NoJobTitle
	}
	return card.Job.Title
}
