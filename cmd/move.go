package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/hirepipe/internal/cli"
	"github.com/thenoetrevino/hirepipe/internal/models"
)

// MoveCmd returns the move subcommand
func MoveCmd() *cobra.Command {
	return serverCommand(&cobra.Command{
		Use:   "move CARD STAGE",
		Short: "Move a card to another stage",
		Long: `Move a card to another pipeline stage and persist it.

Application cards store the stage itself; candidate cards store the status
of the stage. Moving a card to its current stage does nothing.`,
		Args: cobra.ExactArgs(2),
		RunE: runMove,
	})
}

// moveResult is the outcome of a move command
type moveResult struct {
	CardID string `json:"card_id"`
	From   string `json:"from"`
	To     string `json:"to"`
	Status string `json:"status,omitempty"`
}

func (r moveResult) GetID() string {
	return r.CardID
}

func (r moveResult) String() string {
	if r.From == r.To {
		return fmt.Sprintf("✓ %s is already in %s", r.CardID, r.To)
	}
	return fmt.Sprintf("✓ %s moved: %s → %s", r.CardID, r.From, r.To)
}

func runMove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := outputFormatter(cmd)
	cardID, stage := args[0], args[1]

	c, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return cli.Report(formatter, err)
	}

	board, err := c.OpenBoard(ctx)
	if err != nil {
		return cli.Report(formatter, err)
	}
	defer func() { _ = board.Close() }()

	before, _ := board.Store.Card(cardID)
	if err := board.Mover.Apply(ctx, models.MoveIntent{CardID: cardID, ToStage: stage}); err != nil {
		return cli.Report(formatter, err)
	}
	after, _ := board.Store.Card(cardID)

	return formatter.Success(moveResult{
		CardID: cardID,
		From:   before.Stage,
		To:     after.Stage,
		Status: after.Status,
	})
}
