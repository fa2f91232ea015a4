// Package cli implements the doula command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tOgg1/doula/internal/api"
	"github.com/tOgg1/doula/internal/config"
	"github.com/tOgg1/doula/internal/db"
	"github.com/tOgg1/doula/internal/logging"
	"github.com/tOgg1/doula/internal/models"
)

// Exit codes.
const (
	ExitCodeFailure = 1
	ExitCodeUsage   = 2
	ExitCodeBackend = 3
)

// ExitError carries a process exit code. Printed is set when the command
// already wrote a message for the user.
type ExitError struct {
	Code    int
	Err     error
	Printed bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// Exitf builds an ExitError from a format string.
func Exitf(code int, format string, args ...any) error {
	return &ExitError{Code: code, Err: fmt.Errorf(format, args...)}
}

// exitForAPI maps a client error to an exit code and a readable message.
func exitForAPI(op string, err error) error {
	code := ExitCodeFailure
	switch api.Classify(err) {
	case api.KindNetwork, api.KindServer, api.KindMalformed:
		code = ExitCodeBackend
	}
	return &ExitError{Code: code, Err: fmt.Errorf("%s: %s", op, api.UserMessage(err))}
}

// app is the state shared by every command of one invocation.
type app struct {
	configFile string
	apiURL     string
	logLevel   string
	jsonOutput bool

	cfg     *config.Config
	now     func() time.Time
	logger  zerolog.Logger
	logFile *os.File

	// isTTY reports whether the TUI can take over the terminal.
	isTTY func() bool
	// runTUI launches the interactive model; replaced in tests.
	runTUI func(ctx context.Context, a *app) error
}

func newApp() *app {
	return &app{
		now:    time.Now,
		logger: logging.Component("cli"),
		isTTY:  hasTTY,
		runTUI: launchTUI,
	}
}

// Execute runs the doula command line.
func Execute(version string) error {
	a := newApp()
	return a.execute(context.Background(), newRootCmd(a, version))
}

// execute runs cmd and releases the log file whether or not it succeeded.
func (a *app) execute(ctx context.Context, cmd *cobra.Command) error {
	defer a.closeLog()
	return cmd.ExecuteContext(ctx)
}

func newRootCmd(a *app, version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "doula",
		Short:         "Pregnancy companion for the terminal",
		Long:          "doula tracks your pregnancy timeline, answers questions and keeps your hospital bag in order.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.closeLog()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI(cmd.Context(), a)
		},
	}
	cmd.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default ~/.config/doula/config.yaml)")
	cmd.PersistentFlags().StringVar(&a.apiURL, "api-url", "", "backend base URL")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug|info|warn|error")
	cmd.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "output as JSON")

	cmd.AddCommand(
		newTUICmd(a),
		newOnboardCmd(a),
		newTimelineCmd(a),
		newChatCmd(a),
		newWeekCmd(a),
		newGoBagCmd(a),
		newHealthCmd(a),
	)
	return cmd
}

// setup loads configuration and initialises logging for the chosen command.
func (a *app) setup(cmd *cobra.Command) error {
	loader := config.NewLoader()
	if a.configFile != "" {
		loader.SetConfigFile(a.configFile)
	}
	if a.apiURL != "" {
		loader.Set("api.base_url", a.apiURL)
	}
	if a.logLevel != "" {
		loader.Set("logging.level", a.logLevel)
	}
	cfg, err := loader.Load()
	if err != nil {
		return &ExitError{Code: ExitCodeUsage, Err: err}
	}
	a.cfg = cfg

	logCfg := logging.Config{
		Level:        cfg.Logging.Level,
		Format:       cfg.Logging.Format,
		Output:       cmd.ErrOrStderr(),
		EnableCaller: cfg.Logging.EnableCaller,
	}
	interactive := cmd == cmd.Root() || cmd.Name() == "tui"
	switch {
	case cfg.Logging.File != "":
		file, err := logging.OpenFile(cfg.Logging.File)
		if err != nil {
			return Exitf(ExitCodeFailure, "open log file: %v", err)
		}
		a.logFile = file
		logCfg.Output = file
		logCfg.NoColor = true
		logging.Init(logCfg)
	case interactive:
		logging.Discard()
	default:
		logging.Init(logCfg)
	}
	a.logger = logging.Component("cli")
	a.logger.Debug().Str("command", cmd.CommandPath()).Str("config", loader.ConfigFileUsed()).Msg("config loaded")
	cmd.SetContext(logging.WithContext(contextOf(cmd), a.logger))
	return nil
}

// closeLog detaches logging from the log file and closes it. Safe to call twice.
func (a *app) closeLog() error {
	if a.logFile == nil {
		return nil
	}
	logging.Discard()
	a.logger = logging.Component("cli")
	if err := a.logFile.Close(); err != nil && !errors.Is(err, os.ErrClosed) {
		return Exitf(ExitCodeFailure, "close log file: %v", err)
	}
	return nil
}

func (a *app) client() (*api.Client, error) {
	logger := logging.Component("api")
	return api.New(api.Config{
		BaseURL:     a.cfg.API.BaseURL,
		Timeout:     a.cfg.API.Timeout,
		ChatTimeout: a.cfg.API.ChatTimeout,
		Logger:      &logger,
	})
}

// openStore opens and migrates the local database.
func (a *app) openStore(ctx context.Context) (*db.DB, error) {
	if err := a.cfg.EnsureDirectories(); err != nil {
		return nil, Exitf(ExitCodeFailure, "%v", err)
	}
	store, err := db.Open(db.Config{Path: a.cfg.DatabasePath(), BusyTimeoutMs: a.cfg.Database.BusyTimeoutMs})
	if err != nil {
		return nil, Exitf(ExitCodeFailure, "open database: %v", err)
	}
	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, Exitf(ExitCodeFailure, "migrate database: %v", err)
	}
	return store, nil
}

// requireProfile loads the stored profile or explains how to create one.
func requireProfile(ctx context.Context, store *db.DB) (*models.Profile, error) {
	profile, err := db.NewProfileRepository(store).Latest(ctx)
	if errors.Is(err, db.ErrNotFound) {
		return nil, Exitf(ExitCodeUsage, "no profile yet; run `doula onboard` or `doula` first")
	}
	if err != nil {
		return nil, Exitf(ExitCodeFailure, "load profile: %v", err)
	}
	return profile, nil
}

func (a *app) today() time.Time {
	return a.now()
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func stdout(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}

func hasTTY() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}
