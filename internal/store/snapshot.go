package store

import (
	"fmt"

	"github.com/smileynet/assistant/internal/contact"
	"github.com/smileynet/assistant/internal/note"
)

// snapshotVersion tags the persisted layout.
const snapshotVersion = 1

// snapshot is the tagged, codec-neutral form of Books.
type snapshot struct {
	Version    int            `json:"version" yaml:"version"`
	Contacts   []contactEntry `json:"contacts" yaml:"contacts"`
	Notes      []noteEntry    `json:"notes" yaml:"notes"`
	NextNoteID int            `json:"next_note_id" yaml:"next_note_id"`
}

type contactEntry struct {
	Name     string   `json:"name" yaml:"name"`
	Phones   []string `json:"phones,omitempty" yaml:"phones,omitempty"`
	Email    string   `json:"email,omitempty" yaml:"email,omitempty"`
	Address  string   `json:"address,omitempty" yaml:"address,omitempty"`
	Birthday string   `json:"birthday,omitempty" yaml:"birthday,omitempty"` // DD.MM.YYYY
}

type noteEntry struct {
	ID   int    `json:"id" yaml:"id"`
	Text string `json:"text" yaml:"text"`
}

func toSnapshot(b Books) snapshot {
	s := snapshot{Version: snapshotVersion, NextNoteID: 1}
	if b.Contacts != nil {
		for _, r := range b.Contacts.Records() {
			e := contactEntry{Name: r.Name()}
			for _, p := range r.Phones() {
				e.Phones = append(e.Phones, p.String())
			}
			if v, ok := r.Email(); ok {
				e.Email = v.String()
			}
			if v, ok := r.Address(); ok {
				e.Address = v.String()
			}
			if v, ok := r.Birthday(); ok {
				e.Birthday = v.String()
			}
			s.Contacts = append(s.Contacts, e)
		}
	}
	if b.Notes != nil {
		for _, n := range b.Notes.Notes() {
			s.Notes = append(s.Notes, noteEntry{ID: n.ID, Text: n.Text})
		}
		s.NextNoteID = b.Notes.NextID()
	}
	return s
}

// books rebuilds the collections, re-validating every field.
func (s snapshot) books(policy note.IDPolicy) (Books, error) {
	if s.Version > snapshotVersion {
		return Books{}, fmt.Errorf("store: unsupported snapshot version %d", s.Version)
	}

	out := EmptyBooks(policy)
	for i, e := range s.Contacts {
		r, err := e.record()
		if err != nil {
			return Books{}, fmt.Errorf("store: contact %d (%q): %w", i, e.Name, err)
		}
		out.Contacts.Add(r)
	}
	for _, e := range s.Notes {
		if err := out.Notes.Restore(note.Note{ID: e.ID, Text: e.Text}); err != nil {
			return Books{}, fmt.Errorf("store: %w", err)
		}
	}
	out.Notes.SetNextID(s.NextNoteID)
	return out, nil
}

func (e contactEntry) record() (*contact.Record, error) {
	r, err := contact.NewRecord(e.Name)
	if err != nil {
		return nil, err
	}
	for _, p := range e.Phones {
		if _, err := r.AddPhone(p); err != nil {
			return nil, err
		}
	}
	if e.Email != "" {
		if err := r.SetEmail(e.Email); err != nil {
			return nil, err
		}
	}
	if e.Address != "" {
		if err := r.SetAddress(e.Address); err != nil {
			return nil, err
		}
	}
	if e.Birthday != "" {
		if err := r.SetBirthday(e.Birthday); err != nil {
			return nil, err
		}
	}
	return r, nil
}
