package note

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func ids(notes []Note) []int {
	var out []int
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func TestNoteBook_AddAssignsSequentialIDs(t *testing.T) {
	b := NewNoteBook()
	for i, text := range []string{"one", "two", "three"} {
		n := b.Add(text)
		if n.ID != i+1 {
			t.Errorf("Add(%q).ID = %d, want %d", text, n.ID, i+1)
		}
	}
}

func TestNoteBook_SizePlusOneReusesID(t *testing.T) {
	// Given: three notes
	b := NewNoteBook()
	b.Add("one")
	b.Add("two")
	b.Add("three")

	// When: note 2 is deleted and a new note added
	if err := b.Delete(2); err != nil {
		t.Fatalf("Delete(2) error = %v", err)
	}
	n := b.Add("four")

	// Then: the new note gets ID 3 again and replaces the old note 3
	if n.ID != 3 {
		t.Fatalf("Add().ID = %d, want 3", n.ID)
	}
	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2", b.Len())
	}
	got, err := b.Get(3)
	if err != nil {
		t.Fatalf("Get(3) error = %v", err)
	}
	if got.Text != "four" {
		t.Errorf("Get(3).Text = %q, want %q", got.Text, "four")
	}
	if diff := cmp.Diff([]int{1, 3}, ids(b.Notes())); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestNoteBook_MonotonicNeverReuses(t *testing.T) {
	b := NewNoteBook(WithIDPolicy(IDMonotonic))
	b.Add("one")
	b.Add("two")
	b.Add("three")
	_ = b.Delete(3)

	n := b.Add("four")
	if n.ID != 4 {
		t.Errorf("Add().ID = %d, want 4", n.ID)
	}
	if diff := cmp.Diff([]int{1, 2, 4}, ids(b.Notes())); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestNoteBook_Search(t *testing.T) {
	b := NewNoteBook()
	b.Add("hello world")
	b.Add("goodbye")

	got := b.Search("lo")
	want := []Note{{ID: 1, Text: "hello world"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Search(lo) mismatch (-want +got):\n%s", diff)
	}

	if got := b.Search("Hello"); len(got) != 0 {
		t.Errorf("Search is case-sensitive, got %v", got)
	}
	if got := b.Search("o"); len(got) != 2 {
		t.Errorf("Search(o) = %v, want both notes", got)
	}
}

func TestNoteBook_DeleteMissing(t *testing.T) {
	b := NewNoteBook()
	if err := b.Delete(7); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(7) error = %v, want ErrNotFound", err)
	}
	if _, err := b.Get(7); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(7) error = %v, want ErrNotFound", err)
	}
}

func TestNoteBook_Restore(t *testing.T) {
	b := NewNoteBook(WithIDPolicy(IDMonotonic))
	if err := b.Restore(Note{ID: 5, Text: "five"}); err != nil {
		t.Fatalf("Restore() error = %v", err)
	}
	if err := b.Restore(Note{ID: 0, Text: "zero"}); !errors.Is(err, ErrInvalidID) {
		t.Errorf("Restore(id 0) error = %v, want ErrInvalidID", err)
	}
	if n := b.Add("six"); n.ID != 6 {
		t.Errorf("Add() after Restore(5).ID = %d, want 6", n.ID)
	}
}

func TestNoteBook_SetNextIDOnlyRaises(t *testing.T) {
	b := NewNoteBook(WithIDPolicy(IDMonotonic))
	b.SetNextID(10)
	b.SetNextID(3)
	if b.NextID() != 10 {
		t.Errorf("NextID() = %d, want 10", b.NextID())
	}
	if n := b.Add("x"); n.ID != 10 {
		t.Errorf("Add().ID = %d, want 10", n.ID)
	}
}
