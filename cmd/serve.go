package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/hirepipe/internal/cli"
	"github.com/thenoetrevino/hirepipe/internal/database"
	"github.com/thenoetrevino/hirepipe/internal/server"
)

// ServeCmd returns the development server subcommand
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local hiring API backed by SQLite",
		Long: `Serve the hiring endpoints the board talks to from a local SQLite
database. With --seed the practice gets a sample job posting and candidates.
The --token flag, when set, is required from every client.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().String("db", "", "Database file (default ~/.hirepipe/hiring.db, :memory: for none)")
	cmd.Flags().String("addr", "127.0.0.1:8080", "Listen address")
	cmd.Flags().Bool("seed", false, "Seed sample data for --practice (default practice \"demo\")")
	cmd.Flags().Duration("latency", 0, "Delay every write, to watch optimistic updates")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	formatter := outputFormatter(cmd)
	cfg := configFromContext(ctx)

	path, _ := cmd.Flags().GetString("db")
	addr, _ := cmd.Flags().GetString("addr")
	seed, _ := cmd.Flags().GetBool("seed")
	latency, _ := cmd.Flags().GetDuration("latency")

	if path == "" {
		var err error
		if path, err = database.DefaultPath(); err != nil {
			return cli.Report(formatter, err)
		}
	}

	db, err := database.Open(ctx, path)
	if err != nil {
		return cli.Report(formatter, err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()
	repo := database.NewRepository(db)

	if seed {
		practice := cfg.PracticeID
		if practice == "" {
			practice = "demo"
		}
		result, err := database.Seed(ctx, repo, practice)
		if err != nil {
			return cli.Report(formatter, fmt.Errorf("failed to seed: %w", err))
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Seeded practice %q, job posting %s\n", practice, result.JobPostingID)
	}

	srv := server.New(repo, server.WithToken(cfg.Token), server.WithLatency(latency))

	ready := make(chan string, 1)
	go func() {
		if bound, ok := <-ready; ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "Listening on http://%s (database %s)\n", bound, path)
		}
	}()

	err = srv.Run(ctx, addr, ready)
	close(ready)
	return cli.Report(formatter, err)
}
