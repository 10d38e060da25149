package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mmed-hajnasr/do-me/internal/config"
	"github.com/mmed-hajnasr/do-me/internal/format"
	"github.com/mmed-hajnasr/do-me/internal/logging"
	"github.com/mmed-hajnasr/do-me/internal/store"
	"github.com/mmed-hajnasr/do-me/internal/tui"
)

type App struct {
	DataDir    string
	ConfigPath string
	TickRate   float64
	FrameRate  float64
	LogFile    string
	LogLevel   string
	Format     string
	PrettyJSON bool

	cfg    *config.Config
	log    *log.Logger
	closer io.Closer
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "do-me",
		Short:        "Keyboard-driven todo lists in the terminal",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  do-me

  # Scriptable commands
  do-me workspaces add Home
  do-me tasks add "Buy milk" --workspace Home
  do-me tasks list --workspace Home --format yaml
`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			return runTUI(cmd, app)
		},
	}

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := app.setup(cmd); err != nil {
			return writeErr(cmd, err)
		}
		app.log.Debug("command", "path", cmd.CommandPath(), "args", args)
		return nil
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		return app.close()
	}

	cmd.PersistentFlags().StringVar(&app.DataDir, "data-dir", envOr("DO_ME_DATA_DIR", ""), "Directory holding the database, log and UI state")
	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", envOr("DO_ME_CONFIG", ""), "Path to config.toml")
	cmd.PersistentFlags().Float64Var(&app.TickRate, "tick-rate", config.DefaultTickRate, "Ticks per second")
	cmd.PersistentFlags().Float64Var(&app.FrameRate, "frame-rate", config.DefaultFrameRate, "Frames per second")
	cmd.PersistentFlags().StringVar(&app.LogFile, "log-file", envOr("DO_ME_LOG", ""), "Log file (default: <data-dir>/do-me.log)")
	cmd.PersistentFlags().StringVar(&app.LogLevel, "log-level", envOr("DO_ME_LOG_LEVEL", "info"), "Log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("DO_ME_FORMAT", "json"), "Output format (json|yaml)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")

	cmd.AddCommand(newWorkspacesCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newKeysCmd(app))
	cmd.AddCommand(newDoctorCmd(app))

	return cmd
}

// setup resolves the config, the data dir and the logger. Flags win over the
// environment, which wins over config.toml.
func (app *App) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("tick-rate") {
		cfg.TickRate = app.TickRate
	}
	if flags.Changed("frame-rate") {
		cfg.FrameRate = app.FrameRate
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	dir := strings.TrimSpace(app.DataDir)
	if dir == "" {
		dir = cfg.DataDir
	}
	if dir == "" {
		d, err := store.DefaultDataDir()
		if err != nil {
			return err
		}
		dir = d
	}
	app.DataDir = dir
	cfg.DataDir = dir
	app.cfg = cfg

	logger, closer, err := logging.Open(logging.Options{Path: app.LogFile, DataDir: dir, Level: app.LogLevel})
	if err != nil {
		return err
	}
	app.log, app.closer = logger, closer
	return nil
}

func (app *App) close() error {
	if app.closer == nil {
		return nil
	}
	err := app.closer.Close()
	app.closer = nil
	return err
}

// openStore opens the database in the data dir, creating it on first use.
func (app *App) openStore(ctx context.Context) (*store.Store, error) {
	if err := os.MkdirAll(app.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return store.Open(ctx, store.DBPath(app.DataDir), store.Options{VerifyOrder: app.verifyOrder()})
}

// verifyOrder reports whether writes re-check list order before commit: on for
// debug logging or when DO_ME_DEBUG is set.
func (app *App) verifyOrder() bool {
	if envOr("DO_ME_DEBUG", "") != "" {
		return true
	}
	lvl, err := logging.ParseLevel(app.LogLevel)
	return err == nil && lvl == log.DebugLevel
}

func runTUI(cmd *cobra.Command, app *App) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return writeErr(cmd, errNoTerminal)
	}
	km, err := app.cfg.Keymap()
	if err != nil {
		return writeErr(cmd, err)
	}
	s, err := app.openStore(cmd.Context())
	if err != nil {
		return writeErr(cmd, err)
	}
	defer s.Close()

	app.log.Info("starting tui", "db", s.Path())
	err = tui.Run(cmd.Context(), tui.Options{
		Store:   s,
		DataDir: app.DataDir,
		Config:  app.cfg,
		Keymap:  km,
		Logger:  app.log,
	})
	if err != nil {
		app.log.Error("tui exited", "err", err)
		return writeErr(cmd, err)
	}
	return nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), describe(err))
	return err
}
