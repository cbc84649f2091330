package rpc

import (
	"go.trai.ch/moveiface/internal/core/domain"
	"go.trai.ch/moveiface/internal/core/ports"
)

// Factory implements ports.RemoteFactory.
type Factory struct{}

// NewFactory creates a Factory.
func NewFactory() *Factory {
	return &Factory{}
}

// NewRemote returns a client for cfg.
func (f *Factory) NewRemote(cfg *domain.RPCConfig) (ports.RemoteNormalizer, error) {
	return NewClient(cfg, nil)
}
