// Package store persists the address book and note book as a unit.
package store

import (
	"errors"
	"fmt"

	"github.com/smileynet/assistant/internal/contact"
	"github.com/smileynet/assistant/internal/note"
)

// Driver names accepted by Open.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
)

// ErrUnknownDriver indicates Open was given a driver it does not support.
var ErrUnknownDriver = errors.New("store: unknown driver")

// Books is the pair of collections saved and loaded together.
type Books struct {
	Contacts *contact.AddressBook
	Notes    *note.NoteBook
}

// EmptyBooks returns a fresh, empty pair of collections.
func EmptyBooks(policy note.IDPolicy) Books {
	return Books{
		Contacts: contact.NewAddressBook(),
		Notes:    note.NewNoteBook(note.WithIDPolicy(policy)),
	}
}

// Store saves and loads Books. Load on missing storage returns empty books.
type Store interface {
	Load() (Books, error)
	Save(Books) error
}

// Open returns the Store for driver rooted at path. policy is applied to the
// note book of every load.
func Open(driver, path string, policy note.IDPolicy) (Store, error) {
	switch driver {
	case DriverFile, "":
		return NewFileStore(path, policy), nil
	case DriverSQLite:
		return NewSQLiteStore(path, policy), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}
}
