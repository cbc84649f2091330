package jsonl

import "go.trai.ch/moveiface/internal/core/ports"

// Factory implements ports.OutputFactory on the local filesystem.
type Factory struct{}

// NewFactory creates a Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// OpenStream implements ports.OutputFactory.
func (f *Factory) OpenStream(path string, resume bool) (ports.RecordStream, error) {
	return Create(path, resume)
}

// NewDocument implements ports.OutputFactory.
func (f *Factory) NewDocument(path string) ports.DocumentWriter {
	return NewDocument(path)
}
