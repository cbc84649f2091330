package aggregator

import (
	"context"
	"strings"

	"go.trai.ch/moveiface/internal/core/domain"
	"go.trai.ch/moveiface/internal/core/ports"
	"go.trai.ch/moveiface/internal/engine/differ"
	"go.trai.ch/zerr"
)

// Span attribute keys understood by the telemetry log bridge.
const (
	attrPackageID  = "package_id"
	attrStage      = "stage"
	attrMismatches = "mismatches"
)

// verdict is what verifying one package produced before projection.
type verdict struct {
	id    string
	local *domain.SideCounts
	rpc   *domain.SideCounts
	diff  *differ.Result
	err   *domain.PackageError
}

// outcome is the projected, ready-to-write result of one package.
type outcome struct {
	index   int
	report  *domain.PackageReport
	legacy  *domain.LegacyRecord
	diff    *differ.Result
	localOK bool
	rpcOK   bool
	// interrupted is set when the run was canceled while the package was in
	// flight; such outcomes are never written.
	interrupted bool
}

func (a *Aggregator) process(ctx context.Context, index int, raw string, opts Options) *outcome {
	ctx, span := a.tracer.Start(ctx, "package", ports.WithAttribute(attrPackageID, strings.TrimSpace(raw)))
	defer span.End()

	v := a.verify(ctx, raw)
	switch {
	case v.err != nil:
		span.SetAttribute(attrStage, string(v.err.Stage))
		span.RecordError(v.err.Err)
		if v.err.Kind == domain.KindInternal {
			a.logger.Error(zerr.With(zerr.Wrap(v.err, "internal fault"), attrPackageID, v.id))
		}
	case v.diff != nil:
		span.SetAttribute(attrMismatches, len(v.diff.Mismatches))
	}
	return project(index, v, opts.MaxMismatches)
}

// verify runs the stages of one package in sequence. The first failing stage
// ends the package; a panic in any stage is recovered and recorded against it.
func (a *Aggregator) verify(ctx context.Context, raw string) (v *verdict) {
	v = &verdict{id: strings.TrimSpace(raw)}
	stage := domain.StageInput

	defer func() {
		if r := recover(); r != nil {
			v.diff = nil
			v.err = domain.NewPackageError(stage, panicFault(stage, r))
		}
	}()

	fail := func(err error) *verdict {
		v.err = domain.NewPackageError(stage, err)
		return v
	}

	id, err := domain.ParsePackageID(v.id)
	if err != nil {
		return fail(domain.NewFault(domain.ErrInvalidPackageID, "%q", v.id))
	}
	v.id = id.String()

	stage = domain.StageLocal
	rawLocal, err := a.extractor.Extract(ctx, id)
	if err != nil {
		return fail(err)
	}

	stage = domain.StageNormalizeLocal
	local, err := a.normalizer.NormalizeLocal(id, rawLocal)
	if err != nil {
		return fail(err)
	}
	v.local = &domain.SideCounts{InterfaceCounts: local.Counts(), Extractor: rawLocal.Stats}

	if a.remote == nil {
		return v
	}

	stage = domain.StageRPC
	rawRemote, err := a.remote.NormalizedModules(ctx, id)
	if err != nil {
		return fail(err)
	}

	stage = domain.StageNormalizeRPC
	remote, err := a.normalizer.NormalizeRemote(id, rawRemote)
	if err != nil {
		return fail(err)
	}
	v.rpc = &domain.SideCounts{InterfaceCounts: remote.Counts()}

	stage = domain.StageDiff
	res, err := a.differ.Diff(local, remote)
	if err != nil {
		return fail(err)
	}
	v.diff = res
	return v
}

// panicFault classifies a recovered panic. A crash of the extractor is a
// translation failure of the package; anywhere else it is an internal fault.
func panicFault(stage domain.Stage, r any) error {
	switch stage {
	case domain.StageLocal:
		return domain.NewFault(domain.ErrTranslationPanic, "recovered: %v", r)
	case domain.StageDiff:
		return domain.NewFault(domain.ErrDiffInternal, "recovered: %v", r)
	default:
		return domain.NewFault(domain.ErrStagePanic, "recovered in %s: %v", stage, r)
	}
}

// project builds the stream records of v. Failed packages carry no
// comparison fields.
func project(index int, v *verdict, maxMismatches int) *outcome {
	o := &outcome{
		index:   index,
		diff:    v.diff,
		localOK: v.local != nil,
		rpcOK:   v.rpc != nil,
	}

	report := &domain.PackageReport{
		PackageID: v.id,
		Local:     v.local,
		RPC:       v.rpc,
	}

	view := differ.Legacy(&differ.Result{})
	if v.err == nil && v.diff != nil {
		view = differ.Legacy(v.diff)
	}
	legacy := &domain.LegacyRecord{
		ResolvedPackageID:   v.id,
		ModulesMissingLocal: view.ModulesMissingLocal,
		ModulesMissingRPC:   view.ModulesMissingRPC,
		ModulesWithDiffs:    view.ModulesWithDiffs,
		DiffSummary:         view.Summary,
	}

	switch {
	case v.err != nil:
		report.Error = v.err.Record()
		msg := report.Error.LegacyMessage()
		legacy.Error = &msg
		o.diff = nil
	case v.diff != nil:
		d := v.diff
		modules := d.Modules
		count := len(d.Mismatches)
		report.OK = d.OK()
		report.Modules = &modules
		report.DiffSummary = d.Summary
		report.MismatchCount = &count
		report.Mismatches = d.Mismatches
		if maxMismatches > 0 && count > maxMismatches {
			report.Mismatches = d.Mismatches[:maxMismatches]
			report.MismatchesTruncated = true
		}
		legacy.OK = report.OK
	default:
		// Comparison disabled: the package passes on its local side alone.
		report.OK = true
		legacy.OK = true
	}

	o.report = report
	o.legacy = legacy
	return o
}
