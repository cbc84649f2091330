// Package jsonl implements newline-delimited JSON streams and atomic JSON documents.
package jsonl

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/moveiface/internal/core/domain"
	"go.trai.ch/zerr"
)

// Writer appends one JSON record per line. Each record reaches the file in a
// single write so a reader never sees a torn record in the middle of the stream.
type Writer struct {
	mu     sync.Mutex
	path   string
	f      *os.File
	offset int64
}

// Create opens path for writing. Unless resume is set the file is truncated.
func Create(path string, resume bool) (*Writer, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to create stream directory"), "path", path)
	}

	flags := os.O_WRONLY | os.O_CREATE
	if !resume {
		flags |= os.O_TRUNC
	}
	//nolint:gosec // Path is cleaned and provided by trusted caller
	f, err := os.OpenFile(path, flags, domain.FilePerm)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to open stream"), "path", path)
	}

	offset, err := f.Seek(0, io.SeekEnd)
	if err != nil {
		_ = f.Close()
		return nil, zerr.With(zerr.Wrap(err, "failed to seek stream"), "path", path)
	}
	return &Writer{path: path, f: f, offset: offset}, nil
}

// Append implements ports.RecordStream.
func (w *Writer) Append(v any) error {
	data, err := marshal(v, "")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStreamWrite.Error()), "path", w.path)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	n, err := w.f.Write(data)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStreamWrite.Error()), "path", w.path)
	}
	w.offset += int64(n)
	return nil
}

// Offset implements ports.RecordStream.
func (w *Writer) Offset() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.offset
}

// Truncate implements ports.RecordStream.
func (w *Writer) Truncate(offset int64) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.f.Truncate(offset); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to truncate stream"), "path", w.path)
	}
	if _, err := w.f.Seek(offset, io.SeekStart); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to seek stream"), "path", w.path)
	}
	w.offset = offset
	return nil
}

// Close implements ports.RecordStream.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.f.Sync(); err != nil {
		_ = w.f.Close()
		return zerr.With(zerr.Wrap(err, "failed to sync stream"), "path", w.path)
	}
	return w.f.Close()
}

// marshal encodes v followed by a newline. Type signatures such as
// vector<T0> and &mut T are kept verbatim instead of HTML-escaped.
func marshal(v any, indent string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
