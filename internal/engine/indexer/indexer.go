// Package indexer rebuilds the lookup artifacts of an existing report or
// legacy stream.
package indexer

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/tidwall/gjson"
	"go.trai.ch/moveiface/internal/adapters/jsonl"
	"go.trai.ch/moveiface/internal/core/domain"
	"go.trai.ch/moveiface/internal/core/ports"
	"go.trai.ch/zerr"
)

// Artifact file names.
const (
	MetaFile        = domain.IndexMetaFileName
	ByPackageIDFile = domain.IndexByIDFileName
	ErrorsFile      = domain.IndexErrorsFileName
)

// MissingPackageID keys rows without a package id.
const MissingPackageID = "<missing>"

// Meta describes the indexed stream.
type Meta struct {
	SourceJSONL string `json:"source_jsonl"`
	Rows        int    `json:"rows"`
	OK          int    `json:"ok"`
	Error       int    `json:"error"`
}

// Artifacts is the index of one stream.
type Artifacts struct {
	Meta Meta
	// ByPackageID maps each package id to the 1-based row it first appears in.
	ByPackageID map[string]int
	// Errors counts rows per error message.
	Errors map[string]int
}

// Indexer builds and writes index artifacts.
type Indexer struct {
	out ports.OutputFactory
}

// New creates an Indexer writing through out.
func New(out ports.OutputFactory) *Indexer {
	return &Indexer{out: out}
}

// Index reads the stream at source and writes its artifacts into dir.
func (ix *Indexer) Index(ctx context.Context, source, dir string) (*Artifacts, error) {
	f, err := os.Open(filepath.Clean(source))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInputUnreadable.Error()), "path", source)
	}
	defer func() { _ = f.Close() }()

	a, err := Build(ctx, f, source)
	if err != nil {
		return nil, err
	}
	if err := ix.Write(a, dir); err != nil {
		return nil, err
	}
	return a, nil
}

// Write stores a as the three artifact documents in dir.
func (ix *Indexer) Write(a *Artifacts, dir string) error {
	docs := []struct {
		name string
		v    any
	}{
		{MetaFile, a.Meta},
		{ByPackageIDFile, a.ByPackageID},
		{ErrorsFile, a.Errors},
	}
	for _, d := range docs {
		path := filepath.Join(dir, d.name)
		if err := ix.out.NewDocument(path).Put(d.v); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to write index artifact"), "path", path)
		}
	}
	return nil
}

// Build indexes the rows of r. Blank lines and a torn final line are ignored;
// any other line that is not a JSON object fails the build.
func Build(ctx context.Context, r io.Reader, source string) (*Artifacts, error) {
	a := &Artifacts{
		Meta:        Meta{SourceJSONL: source},
		ByPackageID: make(map[string]int),
		Errors:      make(map[string]int),
	}

	for line, err := range jsonl.Lines(r) {
		if err != nil {
			return nil, zerr.With(err, "path", source)
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !gjson.ValidBytes(line.Data) || !gjson.ParseBytes(line.Data).IsObject() {
			return nil, zerr.With(zerr.With(domain.ErrReportUnreadable, "path", source), "line", line.Number)
		}

		a.Meta.Rows++
		row := gjson.ParseBytes(line.Data)

		id := packageID(row)
		if _, seen := a.ByPackageID[id]; !seen {
			a.ByPackageID[id] = a.Meta.Rows
		}

		if msg, failed := errorMessage(row); failed {
			a.Errors[msg]++
		} else {
			a.Meta.OK++
		}
	}
	a.Meta.Error = a.Meta.Rows - a.Meta.OK
	return a, nil
}

func packageID(row gjson.Result) string {
	for _, key := range []string{"resolved_package_id", "package_id"} {
		if v := row.Get(key); v.Type == gjson.String {
			return v.String()
		}
	}
	return MissingPackageID
}

// errorMessage reads the error of a legacy row (a string), a report row
// (an object with a message) or an older summary row (stackless_error).
func errorMessage(row gjson.Result) (string, bool) {
	if v := row.Get("stackless_error"); v.Type == gjson.String {
		return v.String(), true
	}
	v := row.Get("error")
	switch {
	case v.Type == gjson.String:
		return v.String(), true
	case v.IsObject():
		return v.Get("message").String(), true
	default:
		return "", false
	}
}
