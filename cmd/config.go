package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thenoetrevino/hirepipe/internal/cli"
	"github.com/thenoetrevino/hirepipe/internal/config"
)

// ConfigCmd returns the config subcommand
func ConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or save the configuration",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Print the config file path",
		Args:  cobra.NoArgs,
		RunE:  runConfigPath,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "save",
		Short: "Save the effective configuration",
		Long: `Write the effective configuration, including --server, --practice, --job
and --token overrides, to the config file.`,
		Args: cobra.NoArgs,
		RunE: runConfigSave,
	})

	return cmd
}

func configPath(cmd *cobra.Command) (string, error) {
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		return path, nil
	}
	return config.Path()
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path, err := configPath(cmd)
	if err != nil {
		return cli.Report(outputFormatter(cmd), err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func runConfigSave(cmd *cobra.Command, args []string) error {
	formatter := outputFormatter(cmd)

	path, err := configPath(cmd)
	if err != nil {
		return cli.Report(formatter, err)
	}
	if err := configFromContext(cmd.Context()).SaveFile(path); err != nil {
		return cli.Report(formatter, fmt.Errorf("failed to save config: %w", err))
	}
	if !formatter.Quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Config saved to %s\n", path)
	}
	return nil
}
