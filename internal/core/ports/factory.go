package ports

import (
	"context"

	"go.trai.ch/moveiface/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=factory.go -destination=mocks/mock_factory.go -package=mocks

// ExtractorFactory builds the local extractor selected by the configuration.
type ExtractorFactory interface {
	NewExtractor(cfg *domain.Config) (LocalExtractor, error)
}

// RemoteFactory builds the remote normalization client.
type RemoteFactory interface {
	NewRemote(cfg *domain.RPCConfig) (RemoteNormalizer, error)
}

// PackageSource collects the package ids a run should verify.
type PackageSource interface {
	// Collect merges every source named by q and returns the de-duplicated ids
	// in first-occurrence order.
	Collect(ctx context.Context, q *domain.InputQuery) ([]string, error)
}
