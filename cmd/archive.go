package cmd

import (
	"fmt"

	"charm.land/huh/v2"
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/hirepipe/internal/cli"
	"github.com/thenoetrevino/hirepipe/internal/services/move"
)

// ArchiveCmd returns the archive subcommand
func ArchiveCmd() *cobra.Command {
	cmd := serverCommand(&cobra.Command{
		Use:   "archive CARD",
		Short: "Archive the candidate of a card",
		Long: `Archive the candidate behind a card. Every card of that candidate leaves
the board (requires confirmation unless --yes, --json or --quiet).`,
		Args: cobra.ExactArgs(1),
		RunE: runArchive,
	})

	cmd.Flags().BoolP("yes", "y", false, "Skip confirmation")

	return cmd
}

type archiveResult struct {
	CardID string `json:"card_id"`
	Name   string `json:"name"`
}

func (r archiveResult) GetID() string {
	return r.CardID
}

func (r archiveResult) String() string {
	return fmt.Sprintf("✓ %s archived", r.Name)
}

func runArchive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := outputFormatter(cmd)
	cardID := args[0]
	yes, _ := cmd.Flags().GetBool("yes")

	c, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return cli.Report(formatter, err)
	}

	board, err := c.OpenBoard(ctx)
	if err != nil {
		return cli.Report(formatter, err)
	}
	defer func() { _ = board.Close() }()

	card, ok := board.Store.Card(cardID)
	if !ok {
		return cli.Report(formatter, move.ErrCardNotFound)
	}
	name := card.Candidate.FullName()

	// Ask for confirmation unless skipped or running for a script
	if !yes && !formatter.JSON && !formatter.Quiet {
		confirm := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Archive %s?", name)).
			Description("All cards of this candidate leave the board.").
			Affirmative("Archive").
			Negative("Cancel").
			Value(&confirm).
			Run()
		if err != nil {
			return cli.Report(formatter, fmt.Errorf("failed to read confirmation: %w", err))
		}
		if !confirm {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			return nil
		}
	}

	if err := board.Mover.Archive(ctx, cardID); err != nil {
		return cli.Report(formatter, err)
	}
	return formatter.Success(archiveResult{CardID: cardID, Name: name})
}
