package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docpress/internal/config"
)

// Global context passed to subcommands if we need to share global state later.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docpress.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" help:"Render the documentation set to HTML"`
	Init    InitCmd    `cmd:"" help:"Initialize a new configuration file"`
	List    ListCmd    `cmd:"" help:"Discover and list documents without rendering"`
	Check   CheckCmd   `cmd:"" help:"Build to a scratch directory and verify links"`
	Serve   ServeCmd   `cmd:"" help:"Serve the rendered site locally with rebuild on change"`
	History HistoryCmd `cmd:"" help:"Show recent builds from the history database"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// applyLoggingConfig re-installs the slog handler once the configured level
// and format are known. The --verbose flag always wins on level.
func applyLoggingConfig(cfg *config.Config, verbose bool) {
	level := parseLogLevel(cfg.Logging.Level)
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func parseLogLevel(raw string) slog.Level {
	switch raw {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ResolveOutputDir determines the final output directory.
// Priority: CLI flag > configured directory > CLI default.
func ResolveOutputDir(cliOutput string, cfg *config.Config) string {
	if cliOutput != "" && cliOutput != "./site" {
		return cliOutput
	}
	if cfg.Output.Directory != "" {
		return cfg.Output.Directory
	}
	return cliOutput
}
