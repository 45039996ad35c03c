package cmd

import (
	"github.com/spf13/cobra"
	"github.com/thenoetrevino/hirepipe/internal/cli"
	"github.com/thenoetrevino/hirepipe/internal/launcher"
)

// WatchCmd returns the interactive board subcommand
func WatchCmd() *cobra.Command {
	return serverCommand(&cobra.Command{
		Use:     "watch",
		Aliases: []string{"tui"},
		Short:   "Open the interactive board",
		Long: `Open the board in the terminal. Pick up a card with space, carry it
across stages with h/l and drop it with enter. The board reconciles with the
server in the background.`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	})
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := outputFormatter(cmd)

	c, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return cli.Report(formatter, err)
	}
	return cli.Report(formatter, launcher.Launch(ctx, c))
}
