package jsonl

import (
	"os"
	"path/filepath"

	"go.trai.ch/moveiface/internal/core/domain"
	"go.trai.ch/zerr"
)

// Document replaces a single indented JSON file atomically.
type Document struct {
	path string
}

// NewDocument creates a Document writing to path.
func NewDocument(path string) *Document {
	return &Document{path: filepath.Clean(path)}
}

// Put implements ports.DocumentWriter.
func (d *Document) Put(v any) error {
	data, err := marshal(v, "  ")
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to marshal document"), "path", d.path)
	}
	return WriteFileAtomic(d.path, data)
}

// WriteFileAtomic writes data to a temp file next to path and renames it into place.
func WriteFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create document directory")
	}

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp document")
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, err := os.Stat(tmpName); err == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return zerr.Wrap(err, "failed to write document")
	}
	if err := tmpFile.Close(); err != nil {
		return zerr.Wrap(err, "failed to close temp document")
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.Wrap(err, "failed to chmod document")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.Wrap(err, "failed to rename temp document")
	}
	return nil
}
