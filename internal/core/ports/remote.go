package ports

import (
	"context"

	"go.trai.ch/moveiface/internal/core/domain"
)

// RemoteNormalizer fetches the on-chain normalized modules of a package.
//
//go:generate go run go.uber.org/mock/mockgen -source=remote.go -destination=mocks/mock_remote.go -package=mocks
type RemoteNormalizer interface {
	// NormalizedModules returns the raw RPC result or an error classified by
	// domain.ErrRPCNotFound, domain.ErrRPCNetwork, domain.ErrRPCTimeout,
	// domain.ErrRPCRateLimited or domain.ErrRPCMalformed.
	NormalizedModules(ctx context.Context, id domain.PackageID) (domain.RawRemotePackage, error)
}
