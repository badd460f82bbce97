package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/smileynet/assistant"
	"github.com/smileynet/assistant/internal/command"
	"github.com/smileynet/assistant/internal/config"
	"github.com/smileynet/assistant/internal/note"
	"github.com/smileynet/assistant/internal/shell"
	"github.com/smileynet/assistant/internal/store"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// projectDir holds the project config layer and the optional help override.
const projectDir = ".assistant"

// Globals are flags shared by every command.
type Globals struct {
	Version kong.VersionFlag `help:"Show version." short:"V"`
	Data    string           `help:"Data file or database path (overrides storage.path)." placeholder:"PATH"`
	Driver  string           `help:"Storage driver, file or sqlite (overrides storage.driver)."`
}

// CLI is the top-level command structure for assistant.
type CLI struct {
	Globals

	Shell ShellCmd `cmd:"" default:"1" help:"Start the interactive assistant."`
	Exec  ExecCmd  `cmd:"" help:"Run a single assistant command, save, and exit."`
}

// ShellCmd starts the interactive session.
type ShellCmd struct {
	NoTUI bool `help:"Force the plain line prompt even if stdin and stdout are a TTY." default:"false"`
}

// ExecCmd runs one command line against the stored books.
type ExecCmd struct {
	Args []string `arg:"" passthrough:"" help:"Command and its arguments, e.g. add Ann 0123456789."`
}

// errCommandFailed marks an exec whose response contained an error line.
var errCommandFailed = errors.New("command failed")

// app bundles the wired dependencies for one run.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	session *command.Session
}

func (a *app) close() {
	_ = a.log.Sync()
}

// loadConfig loads layered config from user and project paths with env overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadLayered(
		os.ExpandEnv("$HOME/.config/assistant/config.yaml"),
		filepath.Join(projectDir, "config.yaml"),
	)
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup loads config, applies flag overrides, and builds the session over the
// stored books.
func setup(g *Globals) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if g.Data != "" {
		cfg.Storage.Path = g.Data
	}
	if g.Driver != "" {
		cfg.Storage.Driver = g.Driver
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.Log)
	if err != nil {
		return nil, err
	}

	policy := note.IDPolicy(cfg.Notes.IDPolicy)
	st, err := store.Open(cfg.Storage.Driver, os.ExpandEnv(cfg.Storage.Path), policy)
	if err != nil {
		return nil, err
	}
	books, err := st.Load()
	if err != nil {
		return nil, err
	}
	logger.Info("loaded books",
		zap.String("driver", cfg.Storage.Driver),
		zap.Int("contacts", books.Contacts.Len()),
		zap.Int("notes", books.Notes.Len()))

	sess := command.NewSession(books,
		command.WithSaver(st),
		command.WithLogger(logger),
		command.WithAutosaveInterval(cfg.Storage.AutosaveInterval),
		command.WithBirthdayWindow(cfg.Birthdays.Window),
		command.WithHelp(assistant.LoadHelp(projectDir)),
	)
	return &app{cfg: cfg, log: logger, session: sess}, nil
}

// newLogger builds a JSON file logger, or a no-op logger when no file is set.
func newLogger(c config.Log) (*zap.Logger, error) {
	if c.File == "" {
		return zap.NewNop(), nil
	}
	level, err := zap.ParseAtomicLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}
	path := os.ExpandEnv(c.File)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("log: creating directory: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = level
	zc.OutputPaths = []string{path}
	zc.ErrorOutputPaths = []string{path}
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("log: %w", err)
	}
	return logger, nil
}

// Run executes the shell command.
func (c *ShellCmd) Run(g *Globals) error {
	a, err := setup(g)
	if err != nil {
		return fmt.Errorf("shell: %w", err)
	}
	defer a.close()

	mode := a.cfg.Display.Mode
	if c.NoTUI {
		mode = "plain"
	}
	sh := shell.New(a.session, shell.Options{
		In:    os.Stdin,
		Out:   os.Stdout,
		Mode:  mode,
		Color: a.cfg.Display.Color,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return sh.Run(ctx)
}

// Run executes the exec command.
func (c *ExecCmd) Run(g *Globals) error {
	a, err := setup(g)
	if err != nil {
		return fmt.Errorf("exec: %w", err)
	}
	defer a.close()

	styles := shell.NewStyles(shell.NewRenderer(os.Stdout, a.cfg.Display.Color))
	return c.run(os.Stdout, a.session, styles)
}

// run executes the command line on sess and saves, enabling testable wiring.
func (c *ExecCmd) run(w io.Writer, sess *command.Session, styles shell.Styles) error {
	if len(c.Args) == 0 {
		return errors.New("exec: no command given")
	}

	resp := sess.Execute(strings.Join(c.Args, " "))
	for _, l := range resp.Lines {
		_, _ = fmt.Fprintln(w, styles.Render(l))
	}

	// exit and close already saved.
	if !resp.Exit {
		if err := sess.Save(); err != nil {
			return fmt.Errorf("exec: saving: %w", err)
		}
	}
	if resp.Failed() {
		return fmt.Errorf("exec: %w", errCommandFailed)
	}
	return nil
}

// Exit codes.
const (
	exitSuccess = 0
	exitCommand = 1
	exitSetup   = 2
)

// exitCode maps an error to the appropriate exit code.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	if errors.Is(err, errCommandFailed) {
		return exitCommand
	}
	return exitSetup
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("assistant"),
		kong.Description("A personal assistant for contacts and notes."),
		kong.Vars{"version": version + " " + commit + " " + date},
	)
	err := ctx.Run(&cli.Globals)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitCode(err))
	}
}
