package shell

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/smileynet/assistant/internal/command"
)

// chromeHeight is the number of lines taken by the input and help bar.
const chromeHeight = 2

// Model is the Bubble Tea model for the interactive shell.
type Model struct {
	exec       Executor
	styles     Styles
	keys       keyMap
	input      textinput.Model
	viewport   viewport.Model
	help       help.Model
	transcript []string
	done       bool
}

// NewModel creates a Model that sends submitted lines to exec.
func NewModel(exec Executor, styles Styles) Model {
	in := textinput.New()
	in.Prompt = styles.Prompt.Render("> ")
	in.Placeholder = "type a command, or help"
	in.Focus()

	m := Model{
		exec:       exec,
		styles:     styles,
		keys:       defaultKeyMap(),
		input:      in,
		viewport:   viewport.New(0, 0),
		help:       help.New(),
		transcript: []string{command.Greeting},
	}
	m.viewport.SetContent(m.content())
	return m
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.input.Width = msg.Width - 4
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 0)
		m.viewport.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.record("", m.exec.Execute("exit"))
			m.done = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Submit):
			line := m.input.Value()
			m.input.Reset()
			resp := m.exec.Execute(line)
			m.record(line, resp)
			if resp.Exit {
				m.done = true
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.PageUp), key.Matches(msg, m.keys.PageDown):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// record appends an echoed input line and its response to the transcript.
func (m *Model) record(line string, resp command.Response) {
	if line != "" {
		m.transcript = append(m.transcript, m.styles.Prompt.Render("> ")+line)
	}
	for _, l := range resp.Lines {
		m.transcript = append(m.transcript, m.styles.Render(l))
	}
	m.viewport.SetContent(m.content())
	m.viewport.GotoBottom()
}

func (m Model) content() string {
	return strings.Join(m.transcript, "\n")
}

// Transcript returns the rendered output lines so far.
func (m Model) Transcript() []string {
	return append([]string(nil), m.transcript...)
}

// View renders the transcript, the input line and the help bar.
func (m Model) View() string {
	if m.done {
		return m.content() + "\n"
	}
	return m.viewport.View() + "\n" + m.input.View() + "\n" + m.help.View(m.keys)
}

// TUIShell runs the Model as a Bubble Tea program.
type TUIShell struct {
	exec   Executor
	in     io.Reader
	out    io.Writer
	styles Styles
}

// Run starts the program and blocks until the user exits or ctx is cancelled.
// Cancellation runs "exit" so the books are saved.
func (s *TUIShell) Run(ctx context.Context) error {
	p := tea.NewProgram(NewModel(s.exec, s.styles),
		tea.WithContext(ctx),
		tea.WithInput(s.in),
		tea.WithOutput(s.out),
	)
	final, err := p.Run()
	if m, ok := final.(Model); !ok || !m.done {
		s.exec.Execute("exit")
	}
	if ctx.Err() != nil {
		return nil
	}
	return err
}
