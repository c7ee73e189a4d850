package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docaudit/internal/config"
)

// Global holds state shared across subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (optional)" default:""`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Audit   AuditCmd   `cmd:"" default:"withargs" help:"Audit MkDocs navigation vs on-disk markdown"`
	Watch   WatchCmd   `cmd:"" help:"Watch documentation roots and re-audit on change"`
	History HistoryCmd `cmd:"" help:"Show recorded audit runs"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfig reads the optional config file named by the root -c flag.
// A missing flag yields an empty config; flags always override file values.
func loadConfig(root *CLI) (*config.Config, error) {
	if root.Config == "" {
		return &config.Config{}, nil
	}
	return config.Load(root.Config)
}
