package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/hirepipe/internal/app"
	"github.com/thenoetrevino/hirepipe/internal/cli"
	"github.com/thenoetrevino/hirepipe/internal/models"
	"github.com/thenoetrevino/hirepipe/internal/pipeline"
	"github.com/thenoetrevino/hirepipe/internal/render"
)

// BoardCmd returns the board subcommand
func BoardCmd() *cobra.Command {
	return serverCommand(&cobra.Command{
		Use:   "board",
		Short: "Print the pipeline board",
		Long:  "Load the board once and print every stage with its cards.",
		Args:  cobra.NoArgs,
		RunE:  runBoard,
	})
}

// cardOutput is the JSON shape of one card
type cardOutput struct {
	ID        string   `json:"id"`
	Kind      string   `json:"kind"`
	Stage     string   `json:"stage"`
	Status    string   `json:"status,omitempty"`
	Name      string   `json:"name"`
	Email     string   `json:"email,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Position  string   `json:"currentPosition,omitempty"`
	Rating    float64  `json:"rating,omitempty"`
	Job       string   `json:"job"`
	AppliedAt string   `json:"appliedAt,omitempty"`
	Hourly    *float64 `json:"hourlyRate,omitempty"`
	Notes     string   `json:"notes,omitempty"`
}

func newCardOutput(c models.Card) cardOutput {
	out := cardOutput{
		ID:        c.ID,
		Kind:      c.Kind.String(),
		Stage:     c.Stage,
		Status:    c.Status,
		Name:      c.Candidate.FullName(),
		Email:     c.Candidate.Email,
		Phone:     c.Candidate.Phone,
		Position:  c.Candidate.CurrentPosition,
		Rating:    c.Candidate.Rating,
		Job:       models.NoJobTitle,
		AppliedAt: c.AppliedAt,
		Notes:     c.Candidate.Notes,
	}
	if c.Job != nil && c.Job.Title != "" {
		out.Job = c.Job.Title
	}
	if rate, ok := c.Candidate.HourlyRate(); ok {
		out.Hourly = &rate
	}
	return out
}

type columnOutput struct {
	Stage string       `json:"stage"`
	Color string       `json:"color"`
	Cards []cardOutput `json:"cards"`
}

// boardOutput prints as a table and encodes as columns
type boardOutput struct {
	Source   string         `json:"source"`
	Columns  []columnOutput `json:"columns"`
	Unplaced []cardOutput   `json:"unplaced,omitempty"`

	table string
}

func (b boardOutput) String() string {
	return b.table
}

func newBoardOutput(board *app.Board, now time.Time) boardOutput {
	columns := board.Store.Columns()
	unplaced := board.Store.Unplaced()

	out := boardOutput{
		Source: board.Source(),
		table:  render.Table(columns, unplaced, now),
	}
	for _, col := range columns {
		out.Columns = append(out.Columns, columnOutput{
			Stage: col.Stage.Name,
			Color: col.Stage.Color,
			Cards: cardOutputs(col),
		})
	}
	for _, c := range unplaced {
		out.Unplaced = append(out.Unplaced, newCardOutput(c))
	}
	return out
}

func cardOutputs(col pipeline.Column) []cardOutput {
	cards := make([]cardOutput, 0, len(col.Cards))
	for _, c := range col.Cards {
		cards = append(cards, newCardOutput(c))
	}
	return cards
}

func runBoard(cmd *cobra.Command, args []string) error {
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

	out := newBoardOutput(board, time.Now())
	if formatter.Quiet {
		for _, c := range board.Store.Cards() {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), c.ID); err != nil {
				return err
			}
		}
		return nil
	}
	return formatter.Success(out)
}
