// Package normalizer maps the local extractor output and the RPC normalized
// modules onto one canonical interface model.
package normalizer

import (
	"errors"
	"fmt"

	"go.trai.ch/moveiface/internal/core/domain"
)

// Normalizer converts raw interface descriptions into canonical models.
// It is stateless and safe for concurrent use.
type Normalizer struct{}

// New creates a new Normalizer.
func New() *Normalizer {
	return &Normalizer{}
}

// within prefixes the detail of a classified failure with its location,
// keeping the original classification.
func within(err error, format string, args ...any) error {
	var f *domain.Fault
	if errors.As(err, &f) {
		return &domain.Fault{
			Sentinel: f.Sentinel,
			Detail:   joinDetail(fmt.Sprintf(format, args...), f.Detail),
			Cause:    f.Cause,
		}
	}
	return domain.WrapFault(domain.ErrMalformedInterface, err, format, args...)
}

func joinDetail(location, detail string) string {
	if detail == "" {
		return location
	}
	return location + ": " + detail
}
