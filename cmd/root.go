// Package cmd is the hirepipe command tree
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/hirepipe/internal/cli"
	"github.com/thenoetrevino/hirepipe/internal/config"
	"github.com/thenoetrevino/hirepipe/internal/logging"
)

// needsServer annotates commands that talk to the hiring API
const needsServer = "needs-server"

type configKey struct{}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hirepipe",
		Short: "Hirepipe - a terminal-based hiring pipeline board",
		Long: `Hirepipe shows the candidates of a practice as a kanban board of pipeline
stages and moves them between stages, keeping the board in sync with the
hiring API.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "Config file (default $XDG_CONFIG_HOME/hirepipe/config.yaml)")
	flags.String("server", "", "Hiring API base URL")
	flags.String("practice", "", "Practice ID")
	flags.String("job", "", "Job posting ID (empty shows all candidates)")
	flags.String("token", "", "Bearer token for the hiring API")
	flags.Bool("json", false, "Output in JSON format")
	flags.Bool("quiet", false, "Minimal output (IDs only)")

	root.AddCommand(BoardCmd())
	root.AddCommand(MoveCmd())
	root.AddCommand(ArchiveCmd())
	root.AddCommand(ShowCmd())
	root.AddCommand(JobsCmd())
	root.AddCommand(WatchCmd())
	root.AddCommand(ServeCmd())
	root.AddCommand(ConfigCmd())

	return root
}

// Execute runs the command tree and returns the process exit code
func Execute() int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if closer, err := logging.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	} else {
		defer func() { _ = closer.Close() }()
	}

	err := NewRootCmd().ExecuteContext(ctx)
	if err != nil {
		// Reported errors were already printed by the formatter
		var reported *cli.ReportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		slog.Debug("command failed", "error", err)
	}
	return cli.ExitCode(err)
}

// setup loads the config and, for commands that need it, the API client
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return cli.Report(outputFormatter(cmd), fmt.Errorf("failed to load config: %w", err))
	}
	ctx := context.WithValue(cmd.Context(), configKey{}, cfg)

	if cmd.Annotations[needsServer] == "true" {
		c, err := cli.NewCLI(cfg)
		if err != nil {
			return cli.Report(outputFormatter(cmd), err)
		}
		ctx = cli.WithCLI(ctx, c)
	}

	cmd.SetContext(ctx)
	return nil
}

// loadConfig reads the config file and applies the persistent flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")

	var (
		cfg *config.Config
		err error
	)
	if path != "" {
		cfg, err = config.LoadFile(path)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}

	override := func(flag string, dst *string) {
		if f := cmd.Flags().Lookup(flag); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}
	override("server", &cfg.ServerURL)
	override("practice", &cfg.PracticeID)
	override("job", &cfg.JobPostingID)
	override("token", &cfg.Token)

	return cfg, nil
}

func configFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.Default()
}

func outputFormatter(cmd *cobra.Command) *cli.OutputFormatter {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	return &cli.OutputFormatter{
		JSON:   jsonOutput,
		Quiet:  quietMode,
		Out:    cmd.OutOrStdout(),
		ErrOut: cmd.ErrOrStderr(),
	}
}

func serverCommand(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[needsServer] = "true"
	return cmd
}
