package extractor

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/moveiface/internal/core/domain"
)

// DumpExtractor reads a pre-extracted interface.json from each artifact directory.
type DumpExtractor struct {
	dataset *Dataset
}

// NewDumpExtractor creates a DumpExtractor.
func NewDumpExtractor(dataset *Dataset) *DumpExtractor {
	return &DumpExtractor{dataset: dataset}
}

// Extract implements ports.LocalExtractor.
func (e *DumpExtractor) Extract(ctx context.Context, id domain.PackageID) (*domain.RawLocalPackage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	art, err := e.dataset.Open(id)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	path := filepath.Join(art.Dir, InterfaceFileName)
	data, err := os.ReadFile(path) //nolint:gosec // path is inside the dataset
	if errors.Is(err, fs.ErrNotExist) {
		return nil, domain.NewFault(domain.ErrExtractionNotFound, "%s", path)
	}
	if err != nil {
		return nil, domain.WrapFault(domain.ErrExtractionDecode, err, "read %s", path)
	}

	var raw domain.RawLocalPackage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, domain.WrapFault(domain.ErrExtractionDecode, err, "parse %s", path)
	}
	if raw.OriginalID == "" {
		raw.OriginalID = art.OriginalID
	}
	if raw.Stats == nil {
		raw.Stats = art.stats()
		raw.Stats.ElapsedMillis = time.Since(start).Milliseconds()
	}
	return &raw, nil
}
