// Package aggregator runs the verification pipeline over a list of package ids
// and streams per-package records in input order.
package aggregator

import (
	"context"
	"errors"

	"go.trai.ch/moveiface/internal/core/domain"
	"go.trai.ch/moveiface/internal/core/ports"
	"go.trai.ch/moveiface/internal/engine/differ"
	"go.trai.ch/moveiface/internal/engine/normalizer"
	"go.trai.ch/moveiface/internal/engine/sampler"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Options configures one run.
type Options struct {
	Mode    domain.OutputMode
	Workers int
	// Window bounds how many packages may be processed ahead of the oldest
	// unwritten one. Defaults to four times Workers.
	Window        int
	MaxMismatches int
	Resume        bool
	Sample        *domain.SampleInfo
}

// Streams are the sinks of a run. Streams the output mode excludes are nil.
type Streams struct {
	Report   ports.RecordStream
	Index    ports.RecordStream
	Problems ports.RecordStream
	Legacy   ports.RecordStream
	Summary  ports.DocumentWriter
	// Checkpoint is optional; without it a run cannot be resumed.
	Checkpoint ports.CheckpointStore
}

type namedStream struct {
	name   string
	stream ports.RecordStream
}

func (s *Streams) named() []namedStream {
	all := []namedStream{
		{domain.ReportFileName, s.Report},
		{domain.IndexFileName, s.Index},
		{domain.ProblemsFileName, s.Problems},
		{domain.LegacyFileName, s.Legacy},
	}
	out := all[:0]
	for _, ns := range all {
		if ns.stream != nil {
			out = append(out, ns)
		}
	}
	return out
}

// Aggregator verifies packages concurrently. A nil remote disables comparison.
type Aggregator struct {
	extractor  ports.LocalExtractor
	remote     ports.RemoteNormalizer
	normalizer *normalizer.Normalizer
	differ     *differ.Differ
	tracer     ports.Tracer
	logger     ports.Logger
}

// New creates a new Aggregator.
func New(
	extractor ports.LocalExtractor,
	remote ports.RemoteNormalizer,
	tracer ports.Tracer,
	logger ports.Logger,
) *Aggregator {
	return &Aggregator{
		extractor:  extractor,
		remote:     remote,
		normalizer: normalizer.New(),
		differ:     differ.New(),
		tracer:     tracer,
		logger:     logger,
	}
}

// Comparison reports whether remote interfaces are fetched and diffed.
func (a *Aggregator) Comparison() bool {
	return a.remote != nil
}

// Run verifies ids and writes one record per id to the streams. The summary
// document is written at the end, also when the run is interrupted; it is
// complete only if every id was written. Per-package failures are recorded,
// never returned; the returned error is run-fatal or the context error.
func (a *Aggregator) Run(ctx context.Context, ids []string, streams *Streams, opts Options) (*domain.Summary, error) {
	if len(ids) == 0 {
		return nil, domain.ErrNoPackages
	}
	if opts.Mode == "" {
		opts.Mode = domain.OutputDetailed
	}
	workers := max(1, opts.Workers)
	window := opts.Window
	if window <= 0 {
		window = 4 * workers
	}

	w := &writer{
		streams:     streams,
		named:       streams.named(),
		fingerprint: sampler.Fingerprint(ids),
		summary:     domain.NewSummary(opts.Mode, a.Comparison()),
		logger:      a.logger,
	}
	w.summary.Inputs = len(ids)
	w.summary.Sample = opts.Sample

	start := 0
	if opts.Resume {
		next, err := w.resume(len(ids))
		if err != nil {
			return nil, err
		}
		start = next
	}

	ctx, span := a.tracer.Start(ctx, "verify", ports.WithAttribute("packages", len(ids)-start))
	defer span.End()
	a.tracer.EmitPlan(ctx, ids[start:])

	sem := semaphore.NewWeighted(int64(window))
	order := make(chan chan *outcome, window)

	run, runCtx := errgroup.WithContext(ctx)

	// Dispatcher
	run.Go(func() error {
		defer close(order)

		pool, poolCtx := errgroup.WithContext(runCtx)
		pool.SetLimit(workers)
		defer func() { _ = pool.Wait() }()

		for i := start; i < len(ids); i++ {
			if err := sem.Acquire(runCtx, 1); err != nil {
				return nil
			}
			slot := make(chan *outcome, 1)
			select {
			case order <- slot:
			case <-runCtx.Done():
				sem.Release(1)
				return nil
			}
			pool.Go(func() error {
				o := a.process(poolCtx, i, ids[i], opts)
				o.interrupted = poolCtx.Err() != nil
				slot <- o
				return nil
			})
		}
		return nil
	})

	// Writer
	run.Go(func() error {
		for slot := range order {
			o := <-slot
			if w.stopped || o.interrupted {
				w.stopped = true
				sem.Release(1)
				continue
			}
			err := w.write(o)
			sem.Release(1)
			if err != nil {
				return err
			}
		}
		return nil
	})

	err := run.Wait()
	if err == nil {
		err = ctx.Err()
	}

	w.summary.Complete = err == nil && w.next == len(ids)
	if serr := w.finish(); serr != nil {
		err = errors.Join(err, serr)
	}
	if err != nil {
		span.RecordError(err)
		return w.summary, err
	}
	return w.summary, nil
}

func streamWriteFailed(err error, name string) error {
	return zerr.With(zerr.Wrap(err, domain.ErrStreamWrite.Error()), "stream", name)
}
