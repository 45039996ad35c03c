// Package launcher runs the interactive board
package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/thenoetrevino/hirepipe/internal/app"
	"github.com/thenoetrevino/hirepipe/internal/cli"
	"github.com/thenoetrevino/hirepipe/internal/tui"
)

// drainTimeout bounds how long Launch waits for the program after a signal
const drainTimeout = 5 * time.Second

// Launch opens the configured board, starts reconciliation and runs the
// TUI until the user quits or ctx is cancelled
func Launch(ctx context.Context, c *cli.CLI, opts ...app.Option) error {
	refreshes := tui.NewRefreshes()
	opts = append(opts, app.WithRefreshHandler(refreshes.Handler()))

	board, err := c.OpenBoard(ctx, opts...)
	if err != nil {
		return err
	}
	// Stops the loop before anything else is torn down
	defer func() {
		if err := board.Close(); err != nil {
			slog.Error("error closing board", "error", err)
		}
	}()

	board.Start(ctx)

	model := tui.New(ctx, board, c.Config.KeyMappings, refreshes)
	p := tea.NewProgram(model, tea.WithContext(ctx))

	errChan := make(chan error, 1)
	go func() {
		_, err := p.Run()
		errChan <- err
	}()

	select {
	case err := <-errChan:
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("error running program: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received, cleaning up")
		select {
		case <-errChan:
		case <-time.After(drainTimeout):
			slog.Warn("program did not exit in time")
		}
	}
	return nil
}
