package aggregator_test

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/moveiface/internal/core/domain"
)

// memStream is an in-memory ports.RecordStream.
type memStream struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *memStream) Append(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.Write(append(data, '\n'))
	return nil
}

func (s *memStream) Offset() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(s.buf.Len())
}

func (s *memStream) Truncate(offset int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buf.Truncate(int(offset))
	return nil
}

func (s *memStream) Close() error { return nil }

func (s *memStream) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func (s *memStream) lines() []string {
	return strings.Split(strings.TrimSuffix(s.String(), "\n"), "\n")
}

func decodeLines[T any](t *testing.T, s *memStream) []T {
	t.Helper()
	if s.String() == "" {
		return nil
	}
	var out []T
	for _, line := range s.lines() {
		var v T
		require.NoError(t, json.Unmarshal([]byte(line), &v))
		out = append(out, v)
	}
	return out
}

// memDocument keeps the last document put.
type memDocument struct {
	data []byte
	puts int
}

func (d *memDocument) Put(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	d.data = data
	d.puts++
	return nil
}

// memCheckpoint is an in-memory ports.CheckpointStore.
type memCheckpoint struct {
	cp      *domain.Checkpoint
	saves   int
	cleared bool
}

func (c *memCheckpoint) Load() (*domain.Checkpoint, error) {
	if c.cp == nil {
		return nil, nil
	}
	// Round-trip through JSON so the run never shares memory with the store.
	data, err := json.Marshal(c.cp)
	if err != nil {
		return nil, err
	}
	var cp domain.Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

func (c *memCheckpoint) Save(cp *domain.Checkpoint) error {
	data, err := json.Marshal(cp)
	if err != nil {
		return err
	}
	var stored domain.Checkpoint
	if err := json.Unmarshal(data, &stored); err != nil {
		return err
	}
	c.cp = &stored
	c.saves++
	return nil
}

func (c *memCheckpoint) Clear() error {
	c.cp = nil
	c.cleared = true
	return nil
}

type outputs struct {
	report, index, problems, legacy *memStream
	summary                         *memDocument
	checkpoint                      *memCheckpoint
}

func newOutputs() *outputs {
	return &outputs{
		report:     &memStream{},
		index:      &memStream{},
		problems:   &memStream{},
		legacy:     &memStream{},
		summary:    &memDocument{},
		checkpoint: &memCheckpoint{},
	}
}

// extractFunc adapts a function to ports.LocalExtractor.
type extractFunc func(ctx context.Context, id domain.PackageID) (*domain.RawLocalPackage, error)

func (f extractFunc) Extract(ctx context.Context, id domain.PackageID) (*domain.RawLocalPackage, error) {
	return f(ctx, id)
}

// remoteFunc adapts a function to ports.RemoteNormalizer.
type remoteFunc func(ctx context.Context, id domain.PackageID) (domain.RawRemotePackage, error)

func (f remoteFunc) NormalizedModules(ctx context.Context, id domain.PackageID) (domain.RawRemotePackage, error) {
	return f(ctx, id)
}

func ptr[T any](v T) *T { return &v }

// localPackage declares module m at addr with one public function f(u64): ret.
func localPackage(addr, ret string) *domain.RawLocalPackage {
	return &domain.RawLocalPackage{
		Modules: []domain.RawLocalModule{{
			Address: addr,
			Name:    "m",
			Functions: []domain.RawLocalFunction{{
				Name:       "f",
				Visibility: ptr("public"),
				Params:     []string{"u64"},
				Returns:    []string{ret},
			}},
		}},
	}
}

// remotePackage is the RPC view of localPackage.
func remotePackage(ret string) domain.RawRemotePackage {
	return domain.RawRemotePackage(`{"m":{"name":"m","structs":{},"exposedFunctions":{"f":{` +
		`"visibility":"Public","isEntry":false,"typeParameters":[],"parameters":["U64"],"return":["` + ret + `"]}}}}`)
}

func matchingExtractor() extractFunc {
	return func(_ context.Context, id domain.PackageID) (*domain.RawLocalPackage, error) {
		return localPackage(id.String(), "bool"), nil
	}
}

func matchingRemote() remoteFunc {
	return func(context.Context, domain.PackageID) (domain.RawRemotePackage, error) {
		return remotePackage("Bool"), nil
	}
}
