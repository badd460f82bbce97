package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	"github.com/smileynet/assistant/internal/note"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS contacts (
	position INTEGER PRIMARY KEY,
	name     TEXT NOT NULL UNIQUE,
	email    TEXT NOT NULL DEFAULT '',
	address  TEXT NOT NULL DEFAULT '',
	birthday TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS phones (
	contact_position INTEGER NOT NULL REFERENCES contacts(position) ON DELETE CASCADE,
	position         INTEGER NOT NULL,
	number           TEXT NOT NULL,
	PRIMARY KEY (contact_position, position)
);
CREATE TABLE IF NOT EXISTS notes (
	position INTEGER PRIMARY KEY,
	id       INTEGER NOT NULL UNIQUE,
	body     TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);`

// SQLiteStore persists Books in a SQLite database file. Every Save replaces
// the full contents in one transaction.
type SQLiteStore struct {
	path   string
	policy note.IDPolicy
}

// NewSQLiteStore creates a SQLiteStore backed by the database at path.
func NewSQLiteStore(path string, policy note.IDPolicy) *SQLiteStore {
	return &SQLiteStore{path: path, policy: policy}
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) open() (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return nil, fmt.Errorf("store: creating directory: %w", err)
	}
	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, fmt.Errorf("store: opening %s: %w", s.path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: initializing schema: %w", err)
	}
	return db, nil
}

// Save replaces the stored books with b.
func (s *SQLiteStore) Save(b Books) (err error) {
	snap := toSnapshot(b)

	db, err := s.open()
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("store: beginning transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, table := range []string{"phones", "contacts", "notes", "meta"} {
		if _, err = tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("store: clearing %s: %w", table, err)
		}
	}

	for i, c := range snap.Contacts {
		if _, err = tx.Exec(
			"INSERT INTO contacts (position, name, email, address, birthday) VALUES (?, ?, ?, ?, ?)",
			i, c.Name, c.Email, c.Address, c.Birthday,
		); err != nil {
			return fmt.Errorf("store: inserting contact %q: %w", c.Name, err)
		}
		for j, p := range c.Phones {
			if _, err = tx.Exec(
				"INSERT INTO phones (contact_position, position, number) VALUES (?, ?, ?)",
				i, j, p,
			); err != nil {
				return fmt.Errorf("store: inserting phone for %q: %w", c.Name, err)
			}
		}
	}

	for i, n := range snap.Notes {
		if _, err = tx.Exec("INSERT INTO notes (position, id, body) VALUES (?, ?, ?)", i, n.ID, n.Text); err != nil {
			return fmt.Errorf("store: inserting note %d: %w", n.ID, err)
		}
	}

	meta := map[string]string{
		"version":      strconv.Itoa(snap.Version),
		"next_note_id": strconv.Itoa(snap.NextNoteID),
	}
	for k, v := range meta {
		if _, err = tx.Exec("INSERT INTO meta (key, value) VALUES (?, ?)", k, v); err != nil {
			return fmt.Errorf("store: writing meta %s: %w", k, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("store: committing: %w", err)
	}
	return nil
}

// Load reads the stored books. A missing database yields empty books.
func (s *SQLiteStore) Load() (Books, error) {
	if _, err := os.Stat(s.path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return EmptyBooks(s.policy), nil
		}
		return Books{}, fmt.Errorf("store: stat %s: %w", s.path, err)
	}

	db, err := s.open()
	if err != nil {
		return Books{}, err
	}
	defer db.Close()

	snap := snapshot{Version: snapshotVersion, NextNoteID: 1}
	if err := loadMeta(db, &snap); err != nil {
		return Books{}, err
	}
	if err := loadContacts(db, &snap); err != nil {
		return Books{}, err
	}
	if err := loadNotes(db, &snap); err != nil {
		return Books{}, err
	}
	return snap.books(s.policy)
}

func loadMeta(db *sql.DB, snap *snapshot) error {
	rows, err := db.Query("SELECT key, value FROM meta")
	if err != nil {
		return fmt.Errorf("store: reading meta: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return fmt.Errorf("store: scanning meta: %w", err)
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("store: meta %s: %w", k, err)
		}
		switch k {
		case "version":
			snap.Version = n
		case "next_note_id":
			snap.NextNoteID = n
		}
	}
	return rows.Err()
}

func loadContacts(db *sql.DB, snap *snapshot) error {
	rows, err := db.Query("SELECT position, name, email, address, birthday FROM contacts ORDER BY position")
	if err != nil {
		return fmt.Errorf("store: reading contacts: %w", err)
	}
	defer rows.Close()

	index := make(map[int]int)
	for rows.Next() {
		var pos int
		var c contactEntry
		if err := rows.Scan(&pos, &c.Name, &c.Email, &c.Address, &c.Birthday); err != nil {
			return fmt.Errorf("store: scanning contact: %w", err)
		}
		index[pos] = len(snap.Contacts)
		snap.Contacts = append(snap.Contacts, c)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("store: reading contacts: %w", err)
	}

	phones, err := db.Query("SELECT contact_position, number FROM phones ORDER BY contact_position, position")
	if err != nil {
		return fmt.Errorf("store: reading phones: %w", err)
	}
	defer phones.Close()

	for phones.Next() {
		var pos int
		var number string
		if err := phones.Scan(&pos, &number); err != nil {
			return fmt.Errorf("store: scanning phone: %w", err)
		}
		i, ok := index[pos]
		if !ok {
			return fmt.Errorf("store: phone %s references missing contact %d", number, pos)
		}
		snap.Contacts[i].Phones = append(snap.Contacts[i].Phones, number)
	}
	return phones.Err()
}

func loadNotes(db *sql.DB, snap *snapshot) error {
	rows, err := db.Query("SELECT id, body FROM notes ORDER BY position")
	if err != nil {
		return fmt.Errorf("store: reading notes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var n noteEntry
		if err := rows.Scan(&n.ID, &n.Text); err != nil {
			return fmt.Errorf("store: scanning note: %w", err)
		}
		snap.Notes = append(snap.Notes, n)
	}
	return rows.Err()
}
