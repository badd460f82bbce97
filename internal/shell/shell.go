// Package shell provides the interactive front ends for a command session:
// a Bubble Tea TUI on a terminal and a plain line REPL otherwise.
package shell

import (
	"context"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/smileynet/assistant/internal/command"
)

// Prompt is shown before each line read by the plain shell.
const Prompt = "Enter a command: "

// Executor runs one input line. *command.Session implements it.
type Executor interface {
	Execute(input string) command.Response
}

// Shell drives an Executor until the user exits.
type Shell interface {
	Run(ctx context.Context) error
}

// Options configures shell creation.
type Options struct {
	In    io.Reader // Input source (default: os.Stdin).
	Out   io.Writer // Output destination (default: os.Stdout).
	Mode  string    // "auto" | "tui" | "plain".
	Color string    // "auto" | "always" | "never".
}

// New returns a TUI shell when both ends are a TTY, or a plain shell
// otherwise. Mode "tui" or "plain" overrides detection.
func New(exec Executor, opts Options) Shell {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	styles := NewStyles(NewRenderer(opts.Out, opts.Color))

	switch opts.Mode {
	case "plain":
		return &PlainShell{exec: exec, in: opts.In, out: opts.Out, styles: styles}
	case "tui":
		return &TUIShell{exec: exec, in: opts.In, out: opts.Out, styles: styles}
	}
	if isTTY(opts.In) && isTTY(opts.Out) {
		return &TUIShell{exec: exec, in: opts.In, out: opts.Out, styles: styles}
	}
	return &PlainShell{exec: exec, in: opts.In, out: opts.Out, styles: styles}
}

// isTTY reports whether v is a file connected to a terminal.
func isTTY(v any) bool {
	f, ok := v.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
