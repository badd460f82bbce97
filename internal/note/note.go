// Package note holds free-text notes keyed by integer ID.
package note

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// ErrNotFound indicates no note exists under the requested ID.
var ErrNotFound = errors.New("note: not found")

// ErrInvalidID indicates a restored note carries a non-positive ID.
var ErrInvalidID = errors.New("note: invalid ID")

// IDPolicy selects how Add assigns IDs.
type IDPolicy string

const (
	// IDSizePlusOne assigns len(book)+1. After a deletion this can hand out an
	// ID that is still in use, in which case Add replaces that note.
	IDSizePlusOne IDPolicy = "size"
	// IDMonotonic assigns strictly increasing IDs that are never reused.
	IDMonotonic IDPolicy = "monotonic"
)

// Note is a piece of free text with an assigned ID.
type Note struct {
	ID   int
	Text string
}

func (n Note) String() string { return n.Text }

// NoteBook maps IDs to notes, remembering insertion order.
type NoteBook struct {
	policy IDPolicy
	notes  map[int]Note
	order  []int
	nextID int
}

// Option configures a NoteBook.
type Option func(*NoteBook)

// WithIDPolicy sets the ID assignment policy. The default is IDSizePlusOne.
func WithIDPolicy(p IDPolicy) Option {
	return func(b *NoteBook) {
		if p != "" {
			b.policy = p
		}
	}
}

// NewNoteBook returns an empty NoteBook.
func NewNoteBook(opts ...Option) *NoteBook {
	b := &NoteBook{
		policy: IDSizePlusOne,
		notes:  make(map[int]Note),
		nextID: 1,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Policy returns the ID assignment policy.
func (b *NoteBook) Policy() IDPolicy { return b.policy }

// Add stores text as a new note and returns it with its assigned ID.
func (b *NoteBook) Add(text string) Note {
	id := b.nextID
	if b.policy == IDSizePlusOne {
		id = len(b.notes) + 1
	}
	n := Note{ID: id, Text: text}
	b.put(n)
	return n
}

// Restore inserts a persisted note under its existing ID.
func (b *NoteBook) Restore(n Note) error {
	if n.ID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidID, n.ID)
	}
	b.put(n)
	return nil
}

func (b *NoteBook) put(n Note) {
	if _, ok := b.notes[n.ID]; !ok {
		b.order = append(b.order, n.ID)
	}
	b.notes[n.ID] = n
	if n.ID >= b.nextID {
		b.nextID = n.ID + 1
	}
}

// Get returns the note stored under id.
func (b *NoteBook) Get(id int) (Note, error) {
	n, ok := b.notes[id]
	if !ok {
		return Note{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return n, nil
}

// Delete removes the note stored under id.
func (b *NoteBook) Delete(id int) error {
	if _, ok := b.notes[id]; !ok {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	delete(b.notes, id)
	b.order = slices.DeleteFunc(b.order, func(v int) bool { return v == id })
	return nil
}

// Search returns notes containing sub, case-sensitively, in insertion order.
func (b *NoteBook) Search(sub string) []Note {
	var out []Note
	for _, id := range b.order {
		if n := b.notes[id]; strings.Contains(n.Text, sub) {
			out = append(out, n)
		}
	}
	return out
}

// Notes returns every note in insertion order.
func (b *NoteBook) Notes() []Note {
	out := make([]Note, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, b.notes[id])
	}
	return out
}

// Len returns the number of notes.
func (b *NoteBook) Len() int { return len(b.notes) }

// NextID returns the ID the monotonic policy would assign next.
func (b *NoteBook) NextID() int { return b.nextID }

// SetNextID raises the monotonic counter to id. Lower values are ignored so
// that IDs in use are never handed out again.
func (b *NoteBook) SetNextID(id int) {
	if id > b.nextID {
		b.nextID = id
	}
}
