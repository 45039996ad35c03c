package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/thenoetrevino/hirepipe/internal/app"
	"github.com/thenoetrevino/hirepipe/internal/config"
	"github.com/thenoetrevino/hirepipe/internal/remote"
)

// ErrNoServer is returned when no server url is configured
var ErrNoServer = errors.New("server url is required")

// ErrNoCLI is returned when a command runs without an initialized CLI
var ErrNoCLI = errors.New("cli not initialized")

type cliKey struct{}

// CLI represents the CLI application context
type CLI struct {
	Config *config.Config
	Client *remote.Client
}

// NewCLI builds the remote client for cfg
func NewCLI(cfg *config.Config) (*CLI, error) {
	if strings.TrimSpace(cfg.ServerURL) == "" {
		return nil, ErrNoServer
	}

	var opts []remote.Option
	if cfg.Token != "" {
		opts = append(opts, remote.WithToken(cfg.Token))
	}

	return &CLI{
		Config: cfg,
		Client: remote.NewClient(cfg.ServerURL, opts...),
	}, nil
}

// OpenBoard opens the board selected by the config
func (c *CLI) OpenBoard(ctx context.Context, opts ...app.Option) (*app.Board, error) {
	all := append(app.OptionsFromConfig(c.Config), opts...)
	return app.OpenBoard(ctx, c.Client, c.Config.PracticeID, all...)
}

// WithCLI stores c in ctx for subcommands
func WithCLI(ctx context.Context, c *CLI) context.Context {
	return context.WithValue(ctx, cliKey{}, c)
}

// GetCLIFromContext returns the CLI stored by WithCLI
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	c, ok := ctx.Value(cliKey{}).(*CLI)
	if !ok || c == nil {
		return nil, ErrNoCLI
	}
	return c, nil
}
