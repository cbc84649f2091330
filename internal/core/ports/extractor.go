// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/moveiface/internal/core/domain"
)

// LocalExtractor produces the raw local interface description of a package.
//
//go:generate go run go.uber.org/mock/mockgen -source=extractor.go -destination=mocks/mock_extractor.go -package=mocks
type LocalExtractor interface {
	// Extract returns the raw description or an error classified by
	// domain.ErrExtractionNotFound, domain.ErrExtractionDecode,
	// domain.ErrTranslationPanic or domain.ErrExtractionTimeout.
	Extract(ctx context.Context, id domain.PackageID) (*domain.RawLocalPackage, error)
}
