package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/smileynet/assistant/internal/note"
)

// FileStore persists Books as a single JSON or YAML document. The codec
// follows the file extension: .yaml and .yml use YAML, anything else JSON.
type FileStore struct {
	path   string
	policy note.IDPolicy
}

// NewFileStore creates a FileStore backed by path.
func NewFileStore(path string, policy note.IDPolicy) *FileStore {
	return &FileStore{path: path, policy: policy}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) isYAML() bool {
	switch strings.ToLower(filepath.Ext(s.path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Save writes b to a temp file next to the target, then renames it into place.
func (s *FileStore) Save(b Books) error {
	data, err := s.marshal(toSnapshot(b))
	if err != nil {
		return fmt.Errorf("store: marshaling: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("store: creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("store: writing %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("store: closing %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("store: replacing %s: %w", s.path, err)
	}
	return nil
}

// Load reads Books from the file. A missing or empty file yields empty books.
func (s *FileStore) Load() (Books, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return EmptyBooks(s.policy), nil
		}
		return Books{}, fmt.Errorf("store: reading %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return EmptyBooks(s.policy), nil
	}

	var snap snapshot
	if err := s.unmarshal(data, &snap); err != nil {
		return Books{}, fmt.Errorf("store: parsing %s: %w", s.path, err)
	}
	return snap.books(s.policy)
}

func (s *FileStore) marshal(snap snapshot) ([]byte, error) {
	if s.isYAML() {
		return yaml.Marshal(snap)
	}
	return json.MarshalIndent(snap, "", "  ")
}

func (s *FileStore) unmarshal(data []byte, snap *snapshot) error {
	if s.isYAML() {
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		return dec.Decode(snap)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(snap)
}
