package aggregator

import (
	"errors"
	"fmt"

	"go.trai.ch/moveiface/internal/core/domain"
	"go.trai.ch/moveiface/internal/core/ports"
	"go.trai.ch/zerr"
)

// writer owns the streams and the summary. Only the writer goroutine touches it.
type writer struct {
	streams     *Streams
	named       []namedStream
	fingerprint uint64
	summary     *domain.Summary
	logger      ports.Logger

	// next is the input position of the first record not yet written.
	next    int
	stopped bool
}

// resume restores the summary and truncates every stream to the last
// checkpoint. Without a checkpoint the run starts over.
func (w *writer) resume(total int) (int, error) {
	var cp *domain.Checkpoint
	if w.streams.Checkpoint != nil {
		loaded, err := w.streams.Checkpoint.Load()
		if err != nil {
			return 0, err
		}
		cp = loaded
	}

	if cp != nil {
		if cp.Fingerprint != w.fingerprint || cp.Next > total {
			return 0, domain.NewFault(domain.ErrCheckpointMismatch, "checkpoint at %d of a different list", cp.Next)
		}
		if cp.Summary == nil || cp.Summary.ComparisonEnabled != w.summary.ComparisonEnabled || cp.Summary.Mode != w.summary.Mode {
			return 0, domain.NewFault(domain.ErrCheckpointMismatch, "checkpoint was written with other output settings")
		}
	}

	for _, ns := range w.named {
		var offset int64
		if cp != nil {
			offset = cp.Offsets[ns.name]
		}
		if err := ns.stream.Truncate(offset); err != nil {
			return 0, streamWriteFailed(err, ns.name)
		}
	}

	if cp == nil {
		w.logger.Info("no checkpoint found, starting from the first package")
		return 0, nil
	}

	sample := w.summary.Sample
	w.summary = cp.Summary
	w.summary.Inputs = total
	w.summary.Sample = sample
	if w.summary.ErrorsByStage == nil {
		w.summary.ErrorsByStage = make(map[domain.Stage]int)
	}
	if w.summary.ComparisonEnabled && w.summary.DiffSummary == nil {
		w.summary.DiffSummary = make(domain.DiffSummary)
	}
	w.next = cp.Next
	w.logger.Info(fmt.Sprintf("resuming at package %d of %d", cp.Next+1, total))
	return cp.Next, nil
}

// write appends the records of o to every enabled stream, updates the summary
// and checkpoints the new position.
func (w *writer) write(o *outcome) error {
	report := o.report
	w.record(o)

	s := w.streams
	if s.Report != nil {
		if err := s.Report.Append(report); err != nil {
			return streamWriteFailed(err, domain.ReportFileName)
		}
	}
	if s.Index != nil {
		rec := domain.IndexRecord{
			PackageID: report.PackageID,
			Line:      w.summary.Total,
			OK:        report.OK,
			HasError:  report.Error != nil,
		}
		if err := s.Index.Append(rec); err != nil {
			return streamWriteFailed(err, domain.IndexFileName)
		}
	}
	if s.Problems != nil && report.IsProblem() {
		if err := s.Problems.Append(report); err != nil {
			return streamWriteFailed(err, domain.ProblemsFileName)
		}
	}
	if s.Legacy != nil {
		if err := s.Legacy.Append(o.legacy); err != nil {
			return streamWriteFailed(err, domain.LegacyFileName)
		}
	}

	w.next = o.index + 1
	return w.checkpoint()
}

// record folds o into the summary.
func (w *writer) record(o *outcome) {
	s := w.summary
	s.Total++
	if o.localOK {
		s.LocalOK++
	}
	if o.report.Error != nil {
		s.ErrorsByStage[o.report.Error.Stage]++
	}
	if o.report.IsProblem() {
		s.Problems++
	}
	if !s.ComparisonEnabled {
		return
	}
	if o.rpcOK {
		*s.RPCOK++
	}
	if o.diff == nil {
		return
	}
	if o.diff.OK() {
		*s.InterfaceMatch++
		return
	}
	*s.MismatchingPackages++
	*s.TotalMismatches += len(o.diff.Mismatches)
	for cat, n := range o.diff.Summary {
		s.DiffSummary[cat] += n
	}
}

func (w *writer) checkpoint() error {
	if w.streams.Checkpoint == nil {
		return nil
	}
	offsets := make(map[string]int64, len(w.named))
	for _, ns := range w.named {
		offsets[ns.name] = ns.stream.Offset()
	}
	cp := &domain.Checkpoint{
		Version:     domain.CheckpointVersion,
		Fingerprint: w.fingerprint,
		Next:        w.next,
		Offsets:     offsets,
		Summary:     w.summary,
	}
	if err := w.streams.Checkpoint.Save(cp); err != nil {
		return zerr.Wrap(err, "failed to save checkpoint")
	}
	return nil
}

// finish writes the summary document. A complete run drops its checkpoint.
func (w *writer) finish() error {
	var errs error
	if w.streams.Summary != nil {
		if err := w.streams.Summary.Put(w.summary); err != nil {
			errs = errors.Join(errs, streamWriteFailed(err, domain.SummaryFileName))
		}
	}
	if w.summary.Complete && w.streams.Checkpoint != nil {
		if err := w.streams.Checkpoint.Clear(); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	return errs
}
