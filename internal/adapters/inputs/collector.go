// Package inputs collects the package ids a run verifies from the command line,
// id files, MVR catalogs, earlier report streams and the dataset itself.
package inputs

import (
	"bufio"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"go.trai.ch/moveiface/internal/adapters/extractor"
	"go.trai.ch/moveiface/internal/adapters/jsonl"
	"go.trai.ch/moveiface/internal/core/domain"
	"go.trai.ch/moveiface/internal/core/ports"
	"go.trai.ch/zerr"
)

// NetworkMainnet and NetworkTestnet select the MVR catalog id field.
const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
)

// Collector implements ports.PackageSource.
type Collector struct {
	logger ports.Logger
}

// NewCollector creates a Collector.
func NewCollector(log ports.Logger) *Collector {
	return &Collector{logger: log}
}

// idSet keeps ids in first-occurrence order. Valid ids are de-duplicated by
// their canonical address so 0x2 and 0x02 count once.
type idSet struct {
	seen map[string]struct{}
	ids  []string
}

func (s *idSet) add(raw string) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return
	}
	key := id
	if pid, err := domain.ParsePackageID(id); err == nil {
		key = pid.String()
	}
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.ids = append(s.ids, id)
}

// Collect implements ports.PackageSource.
func (c *Collector) Collect(ctx context.Context, q *domain.InputQuery) ([]string, error) {
	set := &idSet{seen: make(map[string]struct{})}

	for _, id := range q.PackageIDs {
		set.add(id)
	}

	for _, path := range q.IDFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := readIDFile(path, set); err != nil {
			return nil, err
		}
	}

	for _, path := range q.CatalogFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := readCatalog(path, q.Network, set); err != nil {
			return nil, err
		}
	}

	for _, path := range q.ReportFiles {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		skipped, err := readReport(path, set)
		if err != nil {
			return nil, err
		}
		if skipped > 0 {
			c.logger.Warn(pluralize(skipped, "unparseable line", "unparseable lines") + " skipped in " + path)
		}
	}

	if q.Discover {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		ids, err := extractor.NewDataset(q.Dataset).Discover(0)
		if err != nil {
			return nil, err
		}
		for _, id := range ids {
			set.add(id)
		}
	}

	ids := set.ids
	if q.MaxPackages > 0 && len(ids) > q.MaxPackages {
		ids = ids[:q.MaxPackages]
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

func unreadable(err error, path string) error {
	return zerr.With(zerr.Wrap(err, domain.ErrInputUnreadable.Error()), "path", path)
}

func readIDFile(path string, set *idSet) error {
	//nolint:gosec // Path is provided by the operator
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return unreadable(err, path)
	}
	defer f.Close() //nolint:errcheck // read-only

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set.add(line)
	}
	if err := scanner.Err(); err != nil {
		return unreadable(err, path)
	}
	return nil
}

func readCatalog(path, network string, set *idSet) error {
	//nolint:gosec // Path is provided by the operator
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return unreadable(err, path)
	}
	if !gjson.ValidBytes(data) {
		return zerr.With(zerr.With(domain.ErrInputUnreadable, "path", path), "reason", "catalog is not valid JSON")
	}

	names := gjson.GetBytes(data, "names")
	if !names.IsArray() {
		return zerr.With(zerr.With(domain.ErrInputUnreadable, "path", path), "reason", "catalog has no names array")
	}

	field := NetworkMainnet + "_package_info_id"
	if network == NetworkTestnet {
		field = NetworkTestnet + "_package_info_id"
	}
	for _, item := range names.Array() {
		if v := item.Get(field); v.Type == gjson.String {
			set.add(v.Str)
		}
	}
	return nil
}

// readReport adds the package id of every record of a report or legacy stream
// and returns the number of lines it could not use.
func readReport(path string, set *idSet) (int, error) {
	//nolint:gosec // Path is provided by the operator
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return 0, unreadable(err, path)
	}
	defer f.Close() //nolint:errcheck // read-only

	skipped := 0
	for line, err := range jsonl.Lines(f) {
		if err != nil {
			return 0, unreadable(err, path)
		}
		if !gjson.ValidBytes(line.Data) {
			skipped++
			continue
		}
		id := gjson.GetBytes(line.Data, "resolved_package_id")
		if id.Type != gjson.String {
			id = gjson.GetBytes(line.Data, "package_id")
		}
		if id.Type != gjson.String {
			skipped++
			continue
		}
		set.add(id.Str)
	}
	return skipped, nil
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return strconv.Itoa(n) + " " + many
}
