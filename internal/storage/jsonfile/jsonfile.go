// Package jsonfile provides a single-file JSON implementation of the
// storage.Store interface.
//
// The serialized form keeps user ids as textual object keys (the native
// encoding of an integer-keyed Go map) and timestamps as ISO-8601 text
// with the UTC designator, so a saved state round-trips exactly.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/tallyhq/tally/internal/models"
	"github.com/tallyhq/tally/internal/storage"
)

// Ensure FileStore implements storage.Store
var _ storage.Store = (*FileStore)(nil)

// FileStore implements storage.Store over a single JSON document on disk.
type FileStore struct {
	path string
}

// New creates a FileStore writing to the given path. The parent
// directory is created if it does not exist.
func New(path string) (*FileStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Close is a no-op; the file is only held open during Load and Save.
func (s *FileStore) Close() error {
	return nil
}

// Load reads the state file. A missing file yields an empty state; a
// corrupt or unreadable file is logged and also falls back to an empty
// state so a bad store never takes the service down.
func (s *FileStore) Load(ctx context.Context) (*models.LedgerState, error) {
	state, err := s.load()
	if err != nil {
		slog.Warn("Ledger state unreadable, falling back to empty state",
			"path", s.path,
			"error", err,
		)
		return models.NewLedgerState(), nil
	}
	return state, nil
}

func (s *FileStore) load() (*models.LedgerState, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.NewLedgerState(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	state := models.NewLedgerState()
	if err := json.Unmarshal(data, state); err != nil {
		return nil, fmt.Errorf("failed to decode state file: %w", err)
	}
	state.Normalize()
	return state, nil
}

// Save writes the full state atomically: marshal to a temp file in the
// same directory, then rename over the target.
func (s *FileStore) Save(ctx context.Context, state *models.LedgerState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp state file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace state file: %w", err)
	}
	return nil
}
