package shell

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/smileynet/assistant/internal/command"
)

// NewRenderer returns a lipgloss renderer for w. color is "auto", "always"
// or "never"; auto lets lipgloss detect the terminal.
func NewRenderer(w io.Writer, color string) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	switch color {
	case "never":
		r.SetColorProfile(termenv.Ascii)
	case "always":
		r.SetColorProfile(termenv.ANSI256)
	}
	return r
}

// Styles holds the styles for each response line kind.
type Styles struct {
	Info    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Prompt  lipgloss.Style
}

// NewStyles builds Styles bound to r.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Info:    r.NewStyle(),
		Success: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "2", Dark: "10"}),
		Warning: r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "5", Dark: "13"}),
		Error:   r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "1", Dark: "9"}),
		Prompt:  r.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "4", Dark: "12"}).Bold(true),
	}
}

// Render styles a single response line.
func (s Styles) Render(l command.Line) string {
	switch l.Kind {
	case command.KindSuccess:
		return s.Success.Render(l.Text)
	case command.KindWarning:
		return s.Warning.Render(l.Text)
	case command.KindError:
		return s.Error.Render(l.Text)
	default:
		return s.Info.Render(l.Text)
	}
}
