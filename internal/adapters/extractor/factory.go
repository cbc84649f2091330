package extractor

import (
	"go.trai.ch/moveiface/internal/core/domain"
	"go.trai.ch/moveiface/internal/core/ports"
	"go.trai.ch/zerr"
)

// Factory implements ports.ExtractorFactory.
type Factory struct {
	logger ports.Logger
}

// NewFactory creates a Factory.
func NewFactory(logger ports.Logger) *Factory {
	return &Factory{logger: logger}
}

// NewExtractor returns the extractor selected by cfg.Extractor.Mode.
func (f *Factory) NewExtractor(cfg *domain.Config) (ports.LocalExtractor, error) {
	dataset := NewDataset(cfg.Dataset)
	switch cfg.Extractor.Mode {
	case domain.ExtractorDump:
		return NewDumpExtractor(dataset), nil
	case domain.ExtractorCommand:
		return NewCommandExtractor(dataset, cfg.Extractor.Command, cfg.Extractor.Timeout, f.logger), nil
	default:
		return nil, zerr.With(domain.ErrConfigInvalid, "extractor.mode", string(cfg.Extractor.Mode))
	}
}
