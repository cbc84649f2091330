// Package app implements the application layer for moveiface.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.trai.ch/moveiface/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/moveiface/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/moveiface/internal/core/domain"
	"go.trai.ch/moveiface/internal/core/ports"
	"go.trai.ch/moveiface/internal/engine/aggregator"
	"go.trai.ch/moveiface/internal/engine/indexer"
	"go.trai.ch/moveiface/internal/engine/sampler"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	logger       ports.Logger
	source       ports.PackageSource
	extractors   ports.ExtractorFactory
	remotes      ports.RemoteFactory
	outputs      ports.OutputFactory
	checkpoints  ports.CheckpointFactory
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	log ports.Logger,
	source ports.PackageSource,
	extractors ports.ExtractorFactory,
	remotes ports.RemoteFactory,
	outputs ports.OutputFactory,
	checkpoints ports.CheckpointFactory,
) *App {
	return &App{
		configLoader: loader,
		logger:       log,
		source:       source,
		extractors:   extractors,
		remotes:      remotes,
		outputs:      outputs,
		checkpoints:  checkpoints,
	}
}

// Overrides holds command line values that take precedence over the
// configuration file. Nil fields keep the configured value.
type Overrides struct {
	DatasetRoot   *string
	OutputDir     *string
	OutputMode    *string
	Telemetry     *string
	RPCURL        *string
	NoRPC         *bool
	Workers       *int
	SampleSize    *int
	MaxPackages   *int
	MaxMismatches *int
	Resume        *bool
}

//nolint:cyclop // one branch per flag
func (o *Overrides) apply(cfg *domain.Config) error {
	if o.DatasetRoot != nil {
		cfg.Dataset.Root = *o.DatasetRoot
	}
	if o.OutputDir != nil {
		cfg.Output.Dir = *o.OutputDir
	}
	if o.OutputMode != nil {
		mode, err := domain.ParseOutputMode(*o.OutputMode)
		if err != nil {
			return err
		}
		cfg.Output.Mode = mode
	}
	if o.Telemetry != nil {
		cfg.Telemetry = domain.TelemetryBackend(*o.Telemetry)
	}
	if o.RPCURL != nil {
		cfg.RPC.URL = *o.RPCURL
	}
	if o.NoRPC != nil {
		cfg.RPC.Enabled = !*o.NoRPC
	}
	if o.Workers != nil {
		cfg.Run.Workers = *o.Workers
	}
	if o.SampleSize != nil {
		cfg.Run.SampleSize = *o.SampleSize
	}
	if o.MaxPackages != nil {
		cfg.Run.MaxPackages = *o.MaxPackages
	}
	if o.MaxMismatches != nil {
		cfg.Output.MaxMismatches = *o.MaxMismatches
	}
	if o.Resume != nil {
		cfg.Run.Resume = *o.Resume
	}
	return config.Validate(cfg)
}

// VerifyOptions configuration for the Verify method.
type VerifyOptions struct {
	ConfigPath string
	Inputs     domain.InputQuery
	Overrides  Overrides
}

// Verify compares the local and remote interface of every collected package
// and writes the run artifacts.
func (a *App) Verify(ctx context.Context, opts VerifyOptions) error {
	// 1. Load the configuration
	cfg, err := a.loadConfig(opts.ConfigPath, &opts.Overrides)
	if err != nil {
		return err
	}

	// 2. Collect and sample the package ids
	sel, err := a.selectPackages(ctx, cfg, opts.Inputs, cfg.Run.SampleSize)
	if err != nil {
		return err
	}
	var sample *domain.SampleInfo
	if cfg.Run.SampleSize > 0 {
		sample = &domain.SampleInfo{
			Requested:  cfg.Run.SampleSize,
			Selected:   len(sel.IDs),
			Population: sel.Population,
			Seed:       sel.Seed,
		}
	}

	// 3. Build the pipeline sides
	extractor, err := a.extractors.NewExtractor(cfg)
	if err != nil {
		return zerr.Wrap(err, "failed to create local extractor")
	}
	var remote ports.RemoteNormalizer
	if cfg.RPC.Enabled {
		if remote, err = a.remotes.NewRemote(&cfg.RPC); err != nil {
			return zerr.Wrap(err, "failed to create rpc client")
		}
	} else {
		a.logger.Warn("rpc comparison disabled, only local interfaces are checked")
	}

	// 4. Initialize Telemetry
	tracer, shutdown, err := telemetry.New(cfg.Telemetry, a.logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = shutdown(context.WithoutCancel(ctx))
	}()

	// 5. Open the artifacts
	streams, closeStreams, err := a.openStreams(cfg)
	if err != nil {
		return err
	}

	// 6. Run the aggregator
	agg := aggregator.New(extractor, remote, tracer, a.logger)
	summary, runErr := agg.Run(ctx, sel.IDs, streams, aggregator.Options{
		Mode:          cfg.Output.Mode,
		Workers:       cfg.Run.Workers,
		MaxMismatches: cfg.Output.MaxMismatches,
		Resume:        cfg.Run.Resume,
		Sample:        sample,
	})
	if err := closeStreams(); err != nil {
		runErr = errors.Join(runErr, err)
	}
	if summary != nil {
		a.logSummary(summary, cfg.Output.Dir)
	}
	if runErr != nil {
		return zerr.Wrap(runErr, "verification run failed")
	}
	return nil
}

func (a *App) logSummary(s *domain.Summary, dir string) {
	msg := fmt.Sprintf("verified %d of %d packages: %d local ok", s.Total, s.Inputs, s.LocalOK)
	if s.ComparisonEnabled {
		msg += fmt.Sprintf(", %d rpc ok, %d matching, %d mismatching (%d mismatches)",
			*s.RPCOK, *s.InterfaceMatch, *s.MismatchingPackages, *s.TotalMismatches)
	}
	msg += fmt.Sprintf(", %d problems", s.Problems)
	a.logger.Info(msg)
	if !s.Complete {
		a.logger.Warn("run incomplete, rerun with --resume to continue")
	}
	a.logger.Info("summary -> " + domain.StreamPath(dir, domain.SummaryFileName))
}

// IndexOptions configuration for the Index method.
type IndexOptions struct {
	Source string
	OutDir string
}

// Index rebuilds the lookup artifacts of an existing report or legacy stream.
func (a *App) Index(ctx context.Context, opts IndexOptions) error {
	if opts.Source == "" {
		return zerr.With(domain.ErrConfigInvalid, "field", "source")
	}
	outDir := opts.OutDir
	if outDir == "" {
		outDir = DefaultIndexDir
	}

	artifacts, err := indexer.New(a.outputs).Index(ctx, opts.Source, outDir)
	if err != nil {
		return zerr.Wrap(err, "failed to build index")
	}
	a.logger.Info(fmt.Sprintf("indexed %d rows: %d ok, %d errors",
		artifacts.Meta.Rows, artifacts.Meta.OK, artifacts.Meta.Error))
	a.logger.Info("index artifacts -> " + outDir)
	return nil
}

// DefaultIndexDir is where index artifacts go when no directory is given.
var DefaultIndexDir = domain.StreamPath(domain.DefaultOutputDir, "index")

// SampleOptions configuration for the Sample method.
type SampleOptions struct {
	ConfigPath string
	Inputs     domain.InputQuery
	Overrides  Overrides
	Size       int
	Out        io.Writer
}

// Sample writes the reproducible sample of the collected ids to opts.Out,
// one id per line.
func (a *App) Sample(ctx context.Context, opts SampleOptions) error {
	cfg, err := a.loadConfig(opts.ConfigPath, &opts.Overrides)
	if err != nil {
		return err
	}
	sel, err := a.selectPackages(ctx, cfg, opts.Inputs, opts.Size)
	if err != nil {
		return err
	}
	for _, id := range sel.IDs {
		if _, err := fmt.Fprintln(opts.Out, id); err != nil {
			return zerr.Wrap(err, "failed to write sample")
		}
	}
	a.logger.Info(fmt.Sprintf("sampled %d of %d packages (seed %d)", len(sel.IDs), sel.Population, sel.Seed))
	return nil
}

func (a *App) loadConfig(path string, overrides *Overrides) (*domain.Config, error) {
	if path == "" {
		path = domain.ConfigFileName
	}
	cfg, err := a.configLoader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	if err := overrides.apply(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (a *App) selectPackages(ctx context.Context, cfg *domain.Config, q domain.InputQuery, size int) (sampler.Selection, error) {
	q.Dataset = cfg.Dataset
	q.MaxPackages = cfg.Run.MaxPackages
	ids, err := a.source.Collect(ctx, &q)
	if err != nil {
		return sampler.Selection{}, zerr.Wrap(err, "failed to collect package ids")
	}
	if len(ids) == 0 {
		return sampler.Selection{}, domain.ErrNoPackages
	}
	return sampler.Sample(ids, size), nil
}
