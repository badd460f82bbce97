package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alecthomas/kong"

	"github.com/smileynet/assistant/internal/command"
	"github.com/smileynet/assistant/internal/config"
	"github.com/smileynet/assistant/internal/shell"
	"github.com/smileynet/assistant/internal/store"
)

// errExitCalled is a sentinel used to catch kong's os.Exit calls in tests.
var errExitCalled = errors.New("exit called")

// isolate points HOME and the working directory at a temp dir so no real
// config layer is read.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	for _, key := range []string{
		"ASSISTANT_STORAGE_DRIVER", "ASSISTANT_DATA_PATH",
		"ASSISTANT_AUTOSAVE_INTERVAL", "ASSISTANT_LOG_LEVEL", "ASSISTANT_LOG_FILE",
	} {
		t.Setenv(key, "")
	}
	t.Chdir(dir)
	return dir
}

func plainStyles() shell.Styles {
	return shell.NewStyles(shell.NewRenderer(&bytes.Buffer{}, "never"))
}

func TestCLI_Parsing(t *testing.T) {
	t.Run("version flag prints version", func(t *testing.T) {
		// Given: a CLI parser with a version string
		var cli CLI
		var buf bytes.Buffer
		k, err := kong.New(&cli,
			kong.Vars{"version": "v1.2.3 abc1234 2026-01-01"},
			kong.Writers(&buf, &buf),
			kong.Exit(func(int) { panic(errExitCalled) }),
		)
		if err != nil {
			t.Fatal(err)
		}

		// When: --version is passed
		defer func() {
			r := recover()
			if r == nil {
				t.Fatal("expected panic from --version flag")
			}
			err, ok := r.(error)
			if !ok || !errors.Is(err, errExitCalled) {
				panic(r)
			}

			// Then: the version string is printed
			if !strings.Contains(buf.String(), "v1.2.3") {
				t.Errorf("version output = %q, want to contain v1.2.3", buf.String())
			}
		}()

		k.Parse([]string{"--version"}) //nolint:errcheck // --version triggers panic via Exit hook
	})

	t.Run("no args selects the shell", func(t *testing.T) {
		// Given: a CLI parser
		var cli CLI
		k, err := kong.New(&cli, kong.Vars{"version": "test"})
		if err != nil {
			t.Fatal(err)
		}

		// When: no arguments are provided
		ctx, err := k.Parse([]string{})

		// Then: the default shell command is selected
		if err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if ctx.Command() != "shell" {
			t.Errorf("Command() = %q, want %q", ctx.Command(), "shell")
		}
	})

	t.Run("shell flags", func(t *testing.T) {
		var cli CLI
		k, err := kong.New(&cli, kong.Vars{"version": "test"})
		if err != nil {
			t.Fatal(err)
		}

		if _, err := k.Parse([]string{"shell", "--no-tui", "--driver", "sqlite", "--data", "books.db"}); err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		if !cli.Shell.NoTUI {
			t.Error("NoTUI = false, want true")
		}
		if cli.Driver != "sqlite" || cli.Data != "books.db" {
			t.Errorf("Driver, Data = %q, %q, want sqlite, books.db", cli.Driver, cli.Data)
		}
	})

	t.Run("exec collects the command line", func(t *testing.T) {
		var cli CLI
		k, err := kong.New(&cli, kong.Vars{"version": "test"})
		if err != nil {
			t.Fatal(err)
		}

		if _, err := k.Parse([]string{"exec", "add", "Ann", "0123456789"}); err != nil {
			t.Fatalf("Parse() error = %v", err)
		}
		want := []string{"add", "Ann", "0123456789"}
		if strings.Join(cli.Exec.Args, " ") != strings.Join(want, " ") {
			t.Errorf("Args = %v, want %v", cli.Exec.Args, want)
		}
	})
}

func TestExec_PersistsBetweenRuns(t *testing.T) {
	// Given: an isolated environment and a data file path
	dir := isolate(t)
	g := &Globals{Data: filepath.Join(dir, "books.json")}

	// When: a contact is added in one run
	a, err := setup(g)
	if err != nil {
		t.Fatalf("setup() error = %v", err)
	}
	var out bytes.Buffer
	add := &ExecCmd{Args: []string{"add", "Ann", "0123456789"}}
	if err := add.run(&out, a.session, plainStyles()); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	a.close()

	// Then: the response is printed and a second run sees the contact
	if !strings.Contains(out.String(), "Contact added. Ann") {
		t.Errorf("output = %q, want contact added line", out.String())
	}

	b, err := setup(g)
	if err != nil {
		t.Fatalf("setup() error = %v", err)
	}
	defer b.close()
	out.Reset()
	phone := &ExecCmd{Args: []string{"phone", "Ann"}}
	if err := phone.run(&out, b.session, plainStyles()); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if !strings.Contains(out.String(), "Ann's numbers are: 0123456789") {
		t.Errorf("output = %q, want stored phone", out.String())
	}
}

func TestExec_SQLiteDriver(t *testing.T) {
	dir := isolate(t)
	g := &Globals{Data: filepath.Join(dir, "books.db"), Driver: "sqlite"}

	a, err := setup(g)
	if err != nil {
		t.Fatalf("setup() error = %v", err)
	}
	var out bytes.Buffer
	if err := (&ExecCmd{Args: []string{"add-note", "buy", "milk"}}).run(&out, a.session, plainStyles()); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	a.close()

	b, err := setup(g)
	if err != nil {
		t.Fatalf("setup() error = %v", err)
	}
	defer b.close()
	if got := b.session.Books().Notes.Len(); got != 1 {
		t.Errorf("Notes.Len() = %d, want 1", got)
	}
}

func TestExec_FailureAndExitCodes(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{name: "success", args: []string{"hello"}, wantCode: exitSuccess},
		{name: "unknown contact", args: []string{"phone", "Nobody"}, wantCode: exitCommand},
		{name: "bad usage", args: []string{"add"}, wantCode: exitCommand},
		{name: "unknown command", args: []string{"frobnicate"}, wantCode: exitCommand},
		{name: "exit", args: []string{"exit"}, wantCode: exitSuccess},
		{name: "empty", args: nil, wantCode: exitSetup},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: a session with no saver
			sess := command.NewSession(store.Books{})

			// When: the command is run
			var out bytes.Buffer
			err := (&ExecCmd{Args: tt.args}).run(&out, sess, plainStyles())

			// Then: the exit code matches
			if got := exitCode(err); got != tt.wantCode {
				t.Errorf("exitCode(%v) = %d, want %d", err, got, tt.wantCode)
			}
		})
	}
}

type failingSaver struct{}

func (failingSaver) Save(store.Books) error { return errors.New("disk full") }

func TestExec_SaveError(t *testing.T) {
	// Given: a session whose saver always fails
	sess := command.NewSession(store.Books{}, command.WithSaver(failingSaver{}))

	// When: a successful command is run
	err := (&ExecCmd{Args: []string{"hello"}}).run(&bytes.Buffer{}, sess, plainStyles())

	// Then: the save error surfaces as a setup failure
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("run() error = %v, want save error", err)
	}
	if got := exitCode(err); got != exitSetup {
		t.Errorf("exitCode() = %d, want %d", got, exitSetup)
	}
}

func TestSetup_RejectsInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		g    Globals
		env  map[string]string
	}{
		{name: "unknown driver flag", g: Globals{Driver: "postgres"}},
		{name: "bad env interval", env: map[string]string{"ASSISTANT_AUTOSAVE_INTERVAL": "often"}},
		{name: "bad log level", env: map[string]string{"ASSISTANT_LOG_LEVEL": "loud"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := setup(&tt.g); err == nil {
				t.Fatal("setup() error = nil, want error")
			}
		})
	}
}

func TestSetup_ReadsProjectConfig(t *testing.T) {
	// Given: a project config selecting yaml storage and a short window
	dir := isolate(t)
	if err := os.MkdirAll(filepath.Join(dir, projectDir), 0o755); err != nil {
		t.Fatal(err)
	}
	cfg := fmt.Sprintf("storage:\n  path: %s\nbirthdays:\n  window: 3\n", filepath.Join(dir, "books.yaml"))
	if err := os.WriteFile(filepath.Join(dir, projectDir, "config.yaml"), []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	// When: setup runs and a note is saved
	a, err := setup(&Globals{})
	if err != nil {
		t.Fatalf("setup() error = %v", err)
	}
	defer a.close()
	if err := (&ExecCmd{Args: []string{"add-note", "hi"}}).run(&bytes.Buffer{}, a.session, plainStyles()); err != nil {
		t.Fatalf("run() error = %v", err)
	}

	// Then: the configured values are in effect
	if a.cfg.Birthdays.Window != 3 {
		t.Errorf("Window = %d, want 3", a.cfg.Birthdays.Window)
	}
	data, err := os.ReadFile(filepath.Join(dir, "books.yaml"))
	if err != nil {
		t.Fatalf("reading yaml data file: %v", err)
	}
	if !strings.Contains(string(data), "text: hi") {
		t.Errorf("yaml data = %q, want note text", data)
	}
}

func TestNewLogger(t *testing.T) {
	t.Run("no file gives a no-op logger", func(t *testing.T) {
		logger, err := newLogger(config.Log{Level: "info"})
		if err != nil {
			t.Fatalf("newLogger() error = %v", err)
		}
		if logger.Core().Enabled(0) {
			t.Error("no-op logger is enabled")
		}
	})

	t.Run("file logger writes json", func(t *testing.T) {
		// Given: a log file in a nested directory
		path := filepath.Join(t.TempDir(), "logs", "assistant.log")

		// When: a logger is built and used
		logger, err := newLogger(config.Log{Level: "debug", File: path})
		if err != nil {
			t.Fatalf("newLogger() error = %v", err)
		}
		logger.Debug("hello")
		_ = logger.Sync()

		// Then: the message is in the file
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), `"msg":"hello"`) {
			t.Errorf("log = %q, want hello entry", data)
		}
	})

	t.Run("bad level", func(t *testing.T) {
		if _, err := newLogger(config.Log{Level: "loud", File: filepath.Join(t.TempDir(), "x.log")}); err == nil {
			t.Fatal("newLogger() error = nil, want error")
		}
	})
}
