package command

import "strings"

// Kind classifies a response line for rendering.
type Kind int

const (
	KindInfo Kind = iota
	KindSuccess
	KindWarning
	KindError
)

func (k Kind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindWarning:
		return "warning"
	case KindError:
		return "error"
	default:
		return "info"
	}
}

// Line is one line of command output.
type Line struct {
	Kind Kind
	Text string
}

// Response is the result of executing one input line.
type Response struct {
	Lines []Line
	Exit  bool // The user asked to leave the session.
}

// Failed reports whether any line is an error.
func (r Response) Failed() bool {
	for _, l := range r.Lines {
		if l.Kind == KindError {
			return true
		}
	}
	return false
}

// Text joins the response lines without styling.
func (r Response) Text() string {
	parts := make([]string, len(r.Lines))
	for i, l := range r.Lines {
		parts[i] = l.Text
	}
	return strings.Join(parts, "\n")
}

func info(text string) Line { return Line{Kind: KindInfo, Text: text} }
func success(text string) Line { return Line{Kind: KindSuccess, Text: text} }
func warning(text string) Line { return Line{Kind: KindWarning, Text: text} }
func failure(text string) Line { return Line{Kind: KindError, Text: text} }
