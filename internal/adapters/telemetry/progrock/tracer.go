// Package progrock provides the Progrock implementation of ports.Tracer.
package progrock

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"sync"

	"github.com/opencontainers/go-digest"
	"github.com/vito/progrock"
	"go.trai.ch/moveiface/internal/core/ports"
)

// Tracer records every span as a progrock vertex.
type Tracer struct {
	w   progrock.Writer
	rec *progrock.Recorder
}

// New creates a new Tracer recording to an in-memory tape.
func New() *Tracer {
	return NewTracer(progrock.NewTape())
}

// NewTracer creates a new Tracer with the given writer.
func NewTracer(w progrock.Writer) *Tracer {
	return &Tracer{
		w:   w,
		rec: progrock.NewRecorder(w),
	}
}

// Start records a new vertex. Spans with equal names are told apart by their
// start attributes.
func (t *Tracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	key := name
	for _, k := range slices.Sorted(maps.Keys(cfg.Attributes)) {
		key += fmt.Sprintf("\x00%s=%v", k, cfg.Attributes[k])
	}

	label := name
	if id, ok := cfg.Attributes["package_id"]; ok {
		label = fmt.Sprintf("%s %v", name, id)
	}

	v := t.rec.Vertex(digest.FromString(key), label)
	return ctx, &Vertex{vertex: v}
}

// EmitPlan records the plan as an already completed vertex.
func (t *Tracer) EmitPlan(_ context.Context, packageIDs []string) {
	v := t.rec.Vertex(digest.FromString("plan"), "plan")
	_, _ = fmt.Fprintf(v.Stdout(), "%d packages\n", len(packageIDs))
	v.Done(nil)
}

// Close flushes and closes the recording session.
func (t *Tracer) Close() error {
	if c, ok := t.w.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// Vertex implements ports.Span wrapping *progrock.VertexRecorder.
type Vertex struct {
	vertex *progrock.VertexRecorder

	mu  sync.Mutex
	err error
}

var _ io.Writer = (*Vertex)(nil)

// Write sends p to the vertex output.
func (v *Vertex) Write(p []byte) (int, error) {
	return v.vertex.Stdout().Write(p)
}

// SetAttribute writes the attribute as a key=value line.
func (v *Vertex) SetAttribute(key string, value any) {
	_, _ = fmt.Fprintf(v.vertex.Stdout(), "%s=%v\n", key, value)
}

// RecordError remembers err; End completes the vertex with it.
func (v *Vertex) RecordError(err error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.err = err
	_, _ = fmt.Fprintf(v.vertex.Stderr(), "%v\n", err)
}

// End marks the vertex as finished.
func (v *Vertex) End() {
	v.mu.Lock()
	err := v.err
	v.mu.Unlock()
	v.vertex.Done(err)
}
