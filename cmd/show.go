package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/hirepipe/internal/cli"
	"github.com/thenoetrevino/hirepipe/internal/models"
	"github.com/thenoetrevino/hirepipe/internal/render"
	"github.com/thenoetrevino/hirepipe/internal/services/move"
)

// notesWidth is the wrap width for rendered notes
const notesWidth = 80

// ShowCmd returns the show subcommand
func ShowCmd() *cobra.Command {
	return serverCommand(&cobra.Command{
		Use:   "show CARD",
		Short: "Show the details of a card",
		Args:  cobra.ExactArgs(1),
		RunE:  runShow,
	})
}

// cardDetail prints a card with its candidate details and notes
type cardDetail struct {
	cardOutput
	Documents []models.Document `json:"documents,omitempty"`

	text string
}

func (d cardDetail) GetID() string {
	return d.ID
}

func (d cardDetail) String() string {
	return d.text
}

func newCardDetail(card models.Card, now time.Time) cardDetail {
	d := cardDetail{
		cardOutput: newCardOutput(card),
		Documents:  card.Candidate.Documents,
	}

	var b strings.Builder
	name := d.Name
	if name == "" {
		name = "(no name)"
	}
	fmt.Fprintf(&b, "%s\n", render.TitleStyle.Render(name))
	field := func(label, value string) {
		if value != "" {
			fmt.Fprintf(&b, "%-12s %s\n", label+":", value)
		}
	}
	field("ID", d.ID)
	field("Stage", d.Stage)
	field("Status", d.Status)
	field("Job", d.Job)
	field("Position", d.Position)
	field("Email", d.Email)
	field("Phone", d.Phone)
	field("Applied", d.AppliedAt)
	if facts := render.Facts(card.Candidate, now); facts != "–" {
		field("Facts", facts)
	}
	if d.Rating > 0 {
		field("Rating", fmt.Sprintf("★ %.1f", d.Rating))
	}
	for _, doc := range d.Documents {
		field("Document", doc.Name)
	}
	b.WriteString("\n")
	b.WriteString(render.Notes(card.Candidate.Notes, notesWidth))

	d.text = b.String()
	return d
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := outputFormatter(cmd)

	c, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return cli.Report(formatter, err)
	}

	board, err := c.OpenBoard(ctx)
	if err != nil {
		return cli.Report(formatter, err)
	}
	defer func() { _ = board.Close() }()

	card, ok := board.Store.Card(args[0])
	if !ok {
		return cli.Report(formatter, move.ErrCardNotFound)
	}
	return formatter.Success(newCardDetail(card, time.Now()))
}
