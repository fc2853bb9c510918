// Package main is the entry point for tvpanel.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/dshills/tvpanel/internal/app"
	"github.com/dshills/tvpanel/internal/config"
	"github.com/dshills/tvpanel/internal/logging"
	"github.com/dshills/tvpanel/internal/renderer/backend"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// flags holds the command line options.
type flags struct {
	configPath string
	logLevel   string
	logFile    string
	logJSON    bool
	scriptPath string
	title      string
	noWatch    bool
	noSave     bool
}

func main() {
	os.Exit(run())
}

func run() int {
	// .env values become defaults for the TVPANEL_* environment layer.
	// A missing file is normal.
	_ = godotenv.Load()

	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if errors.Is(err, app.ErrQuit) {
			return 0
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCommand() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "tvpanel",
		Short: "tvpanel - video player with a remote-driven settings overlay",
		Long: `tvpanel plays a simulated video in the terminal. Press the green button
(g or F2) to open the settings panel, move with the arrow keys, toggle with
Enter and close with Escape. q quits.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runApp(cmd.Context(), f)
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", config.DefaultPath(), "Settings file (TOML, YAML or JSON)")
	cmd.Flags().StringVar(&f.logLevel, "log-level", envOr("TVPANEL_LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	cmd.Flags().StringVar(&f.logFile, "log-file", os.Getenv("TVPANEL_LOG_FILE"), "Write logs to this file (default: discard)")
	cmd.Flags().BoolVar(&f.logJSON, "log-json", false, "Write logs as JSON")
	cmd.Flags().StringVarP(&f.scriptPath, "script", "s", "", "Lua script to run once the UI is up")
	cmd.Flags().StringVar(&f.title, "title", app.DefaultTitle, "Title of the simulated video")
	cmd.Flags().BoolVar(&f.noWatch, "no-watch", false, "Do not reload the settings file when it changes")
	cmd.Flags().BoolVar(&f.noSave, "no-save", false, "Do not write panel changes back to the settings file")

	return cmd
}

func runApp(ctx context.Context, f flags) error {
	switch f.logLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", f.logLevel)
	}

	logger, closeLog, err := openLogger(f)
	if err != nil {
		return err
	}
	defer closeLog()

	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("failed to create terminal: %w", err)
	}

	application, err := app.New(app.Options{
		ConfigPath: f.configPath,
		ScriptPath: f.scriptPath,
		Title:      f.title,
		Backend:    term,
		Logger:     logger,
		Watch:      !f.noWatch,
		AutoSave:   !f.noSave,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer application.Shutdown()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = application.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// openLogger logs to the log file when one is set. The terminal owns
// stdout and stderr while the UI runs.
func openLogger(f flags) (*logging.Logger, func(), error) {
	if f.logFile == "" {
		return logging.Discard(), func() {}, nil
	}
	file, err := os.OpenFile(f.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := logging.New(logging.Config{
		Level:  logging.ParseLevel(f.logLevel),
		Output: io.Writer(file),
		JSON:   f.logJSON,
	})
	return logger, func() { _ = file.Close() }, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
