package render

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/thenoetrevino/hirepipe/internal/models"
	"github.com/thenoetrevino/hirepipe/internal/pipeline"
)

// BoardState is the UI state a board frame depends on
type BoardState struct {
	SelectedColumn int
	SelectedCard   int
	HeldCardID     string
	HoverStage     string
	Pending        func(cardID string) bool
	Width          int
	Height         int
	Now            time.Time
}

// VisibleColumns returns how many columns fit in width
func VisibleColumns(width int) int {
	return max(width/(ColumnWidth+2), 1)
}

// ColumnWindow returns the [start, end) range of columns to draw so that
// selected is visible
func ColumnWindow(total, selected, width int) (int, int) {
	visible := VisibleColumns(width)
	if total <= visible {
		return 0, total
	}
	start := min(max(selected-visible/2, 0), total-visible)
	return start, start + visible
}

// Board lays out the stage columns side by side
func Board(columns []pipeline.Column, st BoardState) string {
	if len(columns) == 0 {
		return EmptyStyle.Render("No stages")
	}

	start, end := ColumnWindow(len(columns), st.SelectedColumn, st.Width)
	rendered := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		selectedCard := -1
		if i == st.SelectedColumn {
			selectedCard = st.SelectedCard
		}
		rendered = append(rendered, Column(columns[i], ColumnState{
			Selected:     i == st.SelectedColumn,
			Hovered:      st.HoverStage != "" && columns[i].Stage.Name == st.HoverStage,
			SelectedCard: selectedCard,
			HeldCardID:   st.HeldCardID,
			Pending:      st.Pending,
			Height:       st.Height,
			Now:          st.Now,
		}))
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	if start > 0 || end < len(columns) {
		board += "\n" + SubtleStyle.Render(fmt.Sprintf("stages %d-%d of %d", start+1, end, len(columns)))
	}
	return board
}

// ColumnState carries the per-column markers of one frame
type ColumnState struct {
	Selected     bool
	Hovered      bool
	SelectedCard int // -1 when the column is not selected
	HeldCardID   string
	Pending      func(cardID string) bool
	Height       int // total column height, 0 for auto
	Now          time.Time
}

// Column renders one stage with its cards
//
// Layout:
//
//	{Stage} ({count})
//	▲ more above
//	{Card 1}
//	{Card 2}
//	▼ more below
func Column(col pipeline.Column, st ColumnState) string {
	header := fmt.Sprintf("%s (%d)", col.Stage.Name, len(col.Cards))
	titleStyle := TitleStyle
	if col.Stage.Color != "" {
		titleStyle = titleStyle.Foreground(lipgloss.Color(col.Stage.Color))
	}
	content := titleStyle.Render(header) + "\n"

	if len(col.Cards) == 0 {
		placeholder := "No candidates"
		if st.Hovered {
			placeholder = "drop here"
		}
		content += EmptyStyle.Render(placeholder)
	} else {
		// Border, header, and two indicator lines
		const columnOverhead = 5
		maxVisible := len(col.Cards)
		if st.Height > 0 {
			maxVisible = max((st.Height-columnOverhead)/CardHeight, 1)
		}
		offset := ScrollOffset(len(col.Cards), st.SelectedCard, maxVisible)
		end := min(offset+maxVisible, len(col.Cards))

		if offset > 0 {
			content += IndicatorStyle.Render("▲ more above") + "\n"
		} else {
			content += "\n"
		}

		cards := make([]string, 0, end-offset)
		for i := offset; i < end; i++ {
			c := col.Cards[i]
			cards = append(cards, Card(c, CardState{
				Selected: i == st.SelectedCard,
				Held:     c.ID == st.HeldCardID,
				Pending:  st.Pending != nil && st.Pending(c.ID),
				Now:      st.Now,
			}))
		}
		content += strings.Join(cards, "\n")

		if end < len(col.Cards) {
			content += "\n" + IndicatorStyle.Render(fmt.Sprintf("▼ %d more below", len(col.Cards)-end))
		}
	}

	style := ColumnStyle
	switch {
	case st.Hovered:
		style = style.BorderForeground(lipgloss.Color(HoverBorder))
	case st.Selected:
		style = style.BorderForeground(lipgloss.Color(SelectedBorder))
	}
	if st.Height > 0 {
		style = style.Height(st.Height - 2)
	}
	return style.Render(content)
}

// ScrollOffset returns the first visible card index keeping selected in view
func ScrollOffset(total, selected, visible int) int {
	if selected < 0 || total <= visible {
		return 0
	}
	return min(max(selected-visible+1, 0), total-visible)
}

// Table renders the board as plain text for non-interactive output.
// Cards whose stage is not a column are listed last.
func Table(columns []pipeline.Column, unplaced []models.Card, now time.Time) string {
	var b strings.Builder
	for _, col := range columns {
		writeSection(&b, col.Stage.Name, col.Cards, now)
	}
	if len(unplaced) > 0 {
		writeSection(&b, "Other stages", unplaced, now)
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeSection(b *strings.Builder, title string, cards []models.Card, now time.Time) {
	fmt.Fprintf(b, "%s (%d)\n", TitleStyle.Render(title), len(cards))
	for _, c := range cards {
		name := c.Candidate.FullName()
		if name == "" {
			name = "(no name)"
		}
		line := fmt.Sprintf("  %-24s %-28s %s", c.ID, name, jobTitle(c))
		if facts := Facts(c.Candidate, now); facts != "–" {
			line += "  " + SubtleStyle.Render(facts)
		}
		if c.Status != "" {
			line += "  " + SubtleStyle.Render("["+c.Status+"]")
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
}
