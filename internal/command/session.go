// Package command turns input lines into operations on the address book and
// note book, and tracks when the books need saving.
package command

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/smileynet/assistant/internal/contact"
	"github.com/smileynet/assistant/internal/field"
	"github.com/smileynet/assistant/internal/note"
	"github.com/smileynet/assistant/internal/store"
)

// Greeting is printed when a session starts.
const Greeting = "Welcome. I am an assistant bot!"

// Saver persists the session's books.
type Saver interface {
	Save(store.Books) error
}

// handler runs one command against the session's books.
type handler func(s *Session, args []string) ([]Line, error)

// usageError reports a malformed command invocation.
type usageError string

func (e usageError) Error() string { return string(e) }

// Session owns both books for the lifetime of one interactive run.
type Session struct {
	books    store.Books
	saver    Saver
	log      *zap.Logger
	now      func() time.Time
	help     string
	window   int
	autosave int
	pending  int
	handlers map[string]handler
}

// Option configures a Session.
type Option func(*Session)

// WithSaver sets where the books are saved on autosave and exit.
func WithSaver(sv Saver) Option {
	return func(s *Session) { s.saver = sv }
}

// WithLogger sets the diagnostic logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock sets the source of "today" for birthday queries.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// WithAutosaveInterval saves after every n executed commands. Zero disables.
func WithAutosaveInterval(n int) Option {
	return func(s *Session) { s.autosave = n }
}

// WithBirthdayWindow sets the look-ahead used when birthdays has no argument.
func WithBirthdayWindow(days int) Option {
	return func(s *Session) { s.window = days }
}

// WithHelp sets the text shown by the help command.
func WithHelp(text string) Option {
	return func(s *Session) { s.help = text }
}

// NewSession creates a Session over books.
func NewSession(books store.Books, opts ...Option) *Session {
	if books.Contacts == nil {
		books.Contacts = contact.NewAddressBook()
	}
	if books.Notes == nil {
		books.Notes = note.NewNoteBook()
	}
	s := &Session{
		books:    books,
		log:      zap.NewNop(),
		now:      time.Now,
		window:   contact.DefaultBirthdayWindow,
		handlers: defaultHandlers(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Books returns the collections the session operates on.
func (s *Session) Books() store.Books { return s.books }

// Execute runs one input line and returns its output.
func (s *Session) Execute(input string) Response {
	name, args := parseInput(input)
	if name == "" {
		return Response{Lines: []Line{warning("Please enter a command.")}}
	}
	name = strings.ToLower(name)

	if name == "close" || name == "exit" {
		resp := Response{Exit: true}
		if err := s.Save(); err != nil {
			resp.Lines = append(resp.Lines, failure(fmt.Sprintf("Save failed: %v", err)))
		}
		resp.Lines = append(resp.Lines, info("Good bye!"))
		return resp
	}

	s.log.Debug("executing command", zap.String("command", name), zap.Int("args", len(args)))

	var resp Response
	if h, ok := s.handlers[name]; ok {
		lines, err := h(s, args)
		resp.Lines = lines
		if err != nil {
			s.log.Debug("command failed", zap.String("command", name), zap.Error(err))
			resp.Lines = append(resp.Lines, failure(describe(err)))
		}
	} else {
		resp.Lines = []Line{failure("Invalid command. Available commands: " + strings.Join(s.commandNames(), ", "))}
	}

	s.pending++
	if s.autosave > 0 && s.pending >= s.autosave {
		if err := s.Save(); err != nil {
			resp.Lines = append(resp.Lines, failure(fmt.Sprintf("Autosave failed: %v", err)))
		} else {
			resp.Lines = append(resp.Lines, info("Autosaved address book and notebook."))
		}
	}
	return resp
}

// Save persists the books and resets the autosave counter.
func (s *Session) Save() error {
	s.pending = 0
	if s.saver == nil {
		return nil
	}
	if err := s.saver.Save(s.books); err != nil {
		s.log.Error("saving books", zap.Error(err))
		return err
	}
	s.log.Info("saved books",
		zap.Int("contacts", s.books.Contacts.Len()),
		zap.Int("notes", s.books.Notes.Len()))
	return nil
}

func (s *Session) commandNames() []string {
	names := make([]string, 0, len(s.handlers)+2)
	for name := range s.handlers {
		names = append(names, name)
	}
	slices.Sort(names)
	return append(names, "close", "exit")
}

// parseInput splits input into a command name and its arguments.
func parseInput(input string) (string, []string) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return "", nil
	}
	return fields[0], fields[1:]
}

// describe maps an operation error to the message shown to the user.
func describe(err error) string {
	var ve *field.ValidationError
	var ue usageError
	switch {
	case errors.Is(err, contact.ErrNotFound), errors.Is(err, note.ErrNotFound):
		return "Contact or Note not found. " + err.Error()
	case errors.As(err, &ve), errors.As(err, &ue),
		errors.Is(err, contact.ErrPhoneNotFound), errors.Is(err, contact.ErrDuplicatePhone):
		return "Invalid command usage. " + err.Error()
	default:
		return "Error: " + err.Error()
	}
}
