package ports

import (
	"context"
	"departure-optimizer-service/internal/domain"
)

// Contract for resolving one trip query against a routing provider.
type TripResolver interface {
	// Resolve returns the fastest trip for the query, or ok=false when the
	// provider found no route or the lookup failed. Per-query failures are
	// absorbed by the implementation and never returned to the caller.
	Resolve(ctx context.Context, q domain.TripQuery) (result domain.TripResult, ok bool)
}
