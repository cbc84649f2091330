package app

import (
	"errors"

	"go.trai.ch/moveiface/internal/core/domain"
	"go.trai.ch/moveiface/internal/core/ports"
	"go.trai.ch/moveiface/internal/engine/aggregator"
)

type streamTarget struct {
	name string
	dst  *ports.RecordStream
}

// openStreams opens the streams the output mode asks for. The returned func
// closes every opened stream.
func (a *App) openStreams(cfg *domain.Config) (*aggregator.Streams, func() error, error) {
	dir := cfg.Output.Dir
	streams := &aggregator.Streams{
		Summary:    a.outputs.NewDocument(domain.StreamPath(dir, domain.SummaryFileName)),
		Checkpoint: a.checkpoints.NewCheckpoint(domain.StreamPath(dir, domain.CheckpointFileName)),
	}

	var targets []streamTarget
	if cfg.Output.Mode.Detailed() {
		targets = append(targets,
			streamTarget{domain.ReportFileName, &streams.Report},
			streamTarget{domain.IndexFileName, &streams.Index},
			streamTarget{domain.ProblemsFileName, &streams.Problems},
		)
	}
	if cfg.Output.Mode.Legacy() {
		targets = append(targets, streamTarget{domain.LegacyFileName, &streams.Legacy})
	}

	var opened []ports.RecordStream
	closeAll := func() error {
		var errs error
		for _, s := range opened {
			errs = errors.Join(errs, s.Close())
		}
		return errs
	}

	for _, t := range targets {
		s, err := a.outputs.OpenStream(domain.StreamPath(dir, t.name), cfg.Run.Resume)
		if err != nil {
			_ = closeAll()
			return nil, nil, err
		}
		opened = append(opened, s)
		*t.dst = s
	}
	return streams, closeAll, nil
}
