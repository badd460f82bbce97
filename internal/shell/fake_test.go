package shell

import (
	"strings"

	"github.com/smileynet/assistant/internal/command"
)

// fakeExecutor echoes inputs and exits on "exit".
type fakeExecutor struct {
	inputs []string
}

func (f *fakeExecutor) Execute(input string) command.Response {
	f.inputs = append(f.inputs, input)
	switch strings.TrimSpace(input) {
	case "exit":
		return command.Response{Exit: true, Lines: []command.Line{{Kind: command.KindInfo, Text: "Good bye!"}}}
	case "bad":
		return command.Response{Lines: []command.Line{{Kind: command.KindError, Text: "Invalid command."}}}
	default:
		return command.Response{Lines: []command.Line{{Kind: command.KindSuccess, Text: "ran " + input}}}
	}
}

func plainStyles() Styles {
	return NewStyles(NewRenderer(&strings.Builder{}, "never"))
}
