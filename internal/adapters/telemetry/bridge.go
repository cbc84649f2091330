package telemetry

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/moveiface/internal/core/ports"
)

// AttrPackageID marks the span of one package. Only such spans are reported.
const AttrPackageID = "package_id"

// AttrStage names the pipeline stage a failed package span stopped in.
const AttrStage = "stage"

// progressSteps is how many progress lines a planned run reports at most.
const progressSteps = 20

// LogBridge implements sdktrace.SpanProcessor and reports finished package
// spans to the logger: failures as warnings, progress as info lines.
type LogBridge struct {
	logger ports.Logger

	mu    sync.Mutex
	total int
	done  int
	every int
}

// NewLogBridge returns a new LogBridge.
func NewLogBridge(log ports.Logger) *LogBridge {
	return &LogBridge{logger: log}
}

// Plan announces how many package spans to expect.
func (b *LogBridge) Plan(total int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.total = total
	b.done = 0
	b.every = max(1, total/progressSteps)
}

// OnStart is called when a span starts.
func (b *LogBridge) OnStart(_ context.Context, _ sdktrace.ReadWriteSpan) {}

// OnEnd is called when a span ends.
func (b *LogBridge) OnEnd(s sdktrace.ReadOnlySpan) {
	if b.logger == nil {
		return
	}

	var id, stage string
	for _, kv := range s.Attributes() {
		switch kv.Key {
		case attribute.Key(AttrPackageID):
			id = kv.Value.Emit()
		case attribute.Key(AttrStage):
			stage = kv.Value.Emit()
		}
	}
	if id == "" {
		return
	}

	if s.Status().Code == codes.Error {
		desc := s.Status().Description
		if desc == "" {
			desc = "package failed"
		}
		if stage != "" {
			b.logger.Warn(fmt.Sprintf("%s failed at %s: %s", id, stage, desc))
		} else {
			b.logger.Warn(fmt.Sprintf("%s failed: %s", id, desc))
		}
	}

	b.mu.Lock()
	b.done++
	done, total, every := b.done, b.total, b.every
	b.mu.Unlock()

	if total > 0 && (done%every == 0 || done == total) {
		b.logger.Info(fmt.Sprintf("progress: %d/%d packages", done, total))
	}
}

// ForceFlush does nothing.
func (b *LogBridge) ForceFlush(context.Context) error {
	return nil
}

// Shutdown does nothing.
func (b *LogBridge) Shutdown(context.Context) error {
	return nil
}
