// Package extractor produces raw local interface descriptions from the
// sui-packages dataset.
package extractor

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/moveiface/internal/core/domain"
	"go.trai.ch/zerr"
)

// Files and directories inside a package artifact directory.
const (
	BytecodeDirName   = "bytecode_modules"
	MetadataFileName  = "metadata.json"
	InterfaceFileName = "interface.json"
	bytecodeExtension = ".mv"
)

// Dataset resolves package artifacts laid out as <root>/<layout>/0x<2 hex>/<62 hex>.
type Dataset struct {
	Root   string
	Layout string
}

// NewDataset creates a Dataset from its configuration.
func NewDataset(cfg domain.DatasetConfig) *Dataset {
	return &Dataset{Root: cfg.Root, Layout: cfg.Layout}
}

// Base returns the directory holding the two-hex-digit prefix directories.
func (d *Dataset) Base() string {
	return filepath.Join(d.Root, d.Layout)
}

// ArtifactDir returns the artifact directory of id. It does not check that it exists.
func (d *Dataset) ArtifactDir(id domain.PackageID) string {
	hex := strings.TrimPrefix(id.String(), "0x")
	return filepath.Join(d.Base(), "0x"+hex[:2], hex[2:])
}

// Artifact describes the on-disk artifact directory of one package.
type Artifact struct {
	Dir         string
	OriginalID  string
	Modules     []string
	ModuleBytes int64
}

// BytecodeDir returns the directory holding the package's .mv files.
func (a *Artifact) BytecodeDir() string {
	return filepath.Join(a.Dir, BytecodeDirName)
}

// Open inspects the artifact directory of id. A missing directory is
// domain.ErrExtractionNotFound.
func (d *Dataset) Open(id domain.PackageID) (*Artifact, error) {
	dir := d.ArtifactDir(id)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, domain.NewFault(domain.ErrExtractionNotFound, "artifact dir %s", dir)
	}

	art := &Artifact{Dir: dir}
	if art.OriginalID, err = readOriginalID(dir, id); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(art.BytecodeDir())
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, domain.WrapFault(domain.ErrExtractionNotFound, err, "bytecode dir %s", art.BytecodeDir())
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != bytecodeExtension {
			continue
		}
		art.Modules = append(art.Modules, strings.TrimSuffix(entry.Name(), bytecodeExtension))
		if fi, err := entry.Info(); err == nil {
			art.ModuleBytes += fi.Size()
		}
	}
	slices.Sort(art.Modules)
	return art, nil
}

func (a *Artifact) stats() *domain.ExtractorStats {
	return &domain.ExtractorStats{
		BytecodeModules: len(a.Modules),
		BytecodeBytes:   a.ModuleBytes,
	}
}

// readOriginalID returns metadata.json's originalPackageId, falling back to id.
func readOriginalID(dir string, id domain.PackageID) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, MetadataFileName)) //nolint:gosec // path is inside the dataset
	if errors.Is(err, fs.ErrNotExist) {
		return id.String(), nil
	}
	if err != nil {
		return "", domain.WrapFault(domain.ErrExtractionDecode, err, "read %s", MetadataFileName)
	}

	var meta struct {
		OriginalPackageID string `json:"originalPackageId"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return "", domain.WrapFault(domain.ErrExtractionDecode, err, "parse %s", MetadataFileName)
	}
	if meta.OriginalPackageID == "" {
		return id.String(), nil
	}
	original, err := domain.NormalizeAddress(meta.OriginalPackageID)
	if err != nil {
		return "", domain.WrapFault(domain.ErrExtractionDecode, err, "originalPackageId %q", meta.OriginalPackageID)
	}
	return original, nil
}

// Discover lists every package id in the dataset in lexicographic order.
// A positive limit truncates the result.
func (d *Dataset) Discover(limit int) ([]string, error) {
	prefixes, err := os.ReadDir(d.Base())
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInputUnreadable.Error()), "dataset", d.Base())
	}

	var ids []string
	for _, prefix := range prefixes {
		if !prefix.IsDir() || !strings.HasPrefix(prefix.Name(), "0x") {
			continue
		}
		packages, err := os.ReadDir(filepath.Join(d.Base(), prefix.Name()))
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrInputUnreadable.Error()), "dataset", d.Base())
		}
		for _, pkg := range packages {
			if pkg.Name() == "" || !pkg.IsDir() {
				continue
			}
			ids = append(ids, prefix.Name()+pkg.Name())
		}
	}

	slices.Sort(ids)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	return ids, nil
}
