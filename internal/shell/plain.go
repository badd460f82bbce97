package shell

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/smileynet/assistant/internal/command"
)

// PlainShell reads commands line by line and prints styled responses.
type PlainShell struct {
	exec   Executor
	in     io.Reader
	out    io.Writer
	styles Styles
}

// Run loops until the user exits, input ends, or ctx is cancelled. End of
// input and cancellation both run "exit" so the books are saved.
func (s *PlainShell) Run(ctx context.Context) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	_, _ = fmt.Fprintln(s.out, command.Greeting)
	for {
		_, _ = fmt.Fprint(s.out, s.styles.Prompt.Render(Prompt))

		select {
		case <-ctx.Done():
			_, _ = fmt.Fprintln(s.out)
			s.print(s.exec.Execute("exit"))
			return nil
		case line, ok := <-lines:
			if !ok {
				_, _ = fmt.Fprintln(s.out)
				s.print(s.exec.Execute("exit"))
				select {
				case err := <-readErr:
					return err
				default:
					return nil
				}
			}
			resp := s.exec.Execute(line)
			s.print(resp)
			if resp.Exit {
				return nil
			}
		}
	}
}

func (s *PlainShell) print(resp command.Response) {
	for _, l := range resp.Lines {
		_, _ = fmt.Fprintln(s.out, s.styles.Render(l))
	}
}
