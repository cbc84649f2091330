// Package checkpoint persists the resume state of a run as a msgpack file.
package checkpoint

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
	"go.trai.ch/moveiface/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.CheckpointStore.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: filepath.Clean(path)}
}

// Load implements ports.CheckpointStore.
func (s *Store) Load() (*domain.Checkpoint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, "failed to open checkpoint"), "path", s.path)
	}
	defer f.Close() //nolint:errcheck // read-only

	var cp domain.Checkpoint
	if err := msgpack.NewDecoder(bufio.NewReader(f)).Decode(&cp); err != nil {
		return nil, domain.WrapFault(domain.ErrCheckpointCorrupt, err, "path %s", s.path)
	}
	if cp.Version != domain.CheckpointVersion {
		return nil, domain.NewFault(domain.ErrCheckpointCorrupt, "path %s: version %d, want %d",
			s.path, cp.Version, domain.CheckpointVersion)
	}
	return &cp, nil
}

// Save implements ports.CheckpointStore. The previous checkpoint stays intact
// until the new one is fully written.
func (s *Store) Save(cp *domain.Checkpoint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create checkpoint directory")
	}

	tmpFile, err := os.CreateTemp(dir, ".checkpoint-*.mp")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp checkpoint")
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, err := os.Stat(tmpName); err == nil {
			_ = os.Remove(tmpName)
		}
	}()

	cp.Version = domain.CheckpointVersion
	w := bufio.NewWriter(tmpFile)
	if err := msgpack.NewEncoder(w).Encode(cp); err != nil {
		_ = tmpFile.Close()
		return zerr.Wrap(err, "failed to encode checkpoint")
	}
	if err := w.Flush(); err != nil {
		_ = tmpFile.Close()
		return zerr.Wrap(err, "failed to write checkpoint")
	}
	if err := tmpFile.Close(); err != nil {
		return zerr.Wrap(err, "failed to close temp checkpoint")
	}
	if err := os.Chmod(tmpName, domain.PrivateFilePerm); err != nil {
		return zerr.Wrap(err, "failed to chmod checkpoint")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return zerr.Wrap(err, "failed to rename temp checkpoint")
	}
	return nil
}

// Clear implements ports.CheckpointStore.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, "failed to remove checkpoint"), "path", s.path)
	}
	return nil
}
