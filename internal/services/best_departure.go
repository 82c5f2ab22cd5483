package services

import (
	"context"
	"departure-optimizer-service/internal/domain"
	"departure-optimizer-service/internal/platform/obs"
	"departure-optimizer-service/internal/ports"
	"fmt"
	"log"
	"slices"
	"time"
)

type BestDepartureRequest struct {
	Origin      domain.Location
	Destination domain.Location
	Window      domain.TimeWindow
	// Parallelism bounds concurrent provider lookups; values below 1 mean 1.
	Parallelism int
	// MaxGridPoints rejects windows with more instants; 0 disables the check.
	MaxGridPoints int
}

// FindBestDeparture samples a transit trip at every instant of the window
// and returns all successful samples in grid order plus the fastest one.
// Instants with no route are skipped; an all-empty search is not an error.
func FindBestDeparture(
	ctx context.Context,
	req BestDepartureRequest,
	resolver ports.TripResolver,
	searchLog *log.Logger,
) (_ domain.Optimization[domain.LegCandidate], err error) {
	defer obs.Time(ctx, "search.FindBestDeparture")(&err)

	if err := req.Window.Validate(); err != nil {
		return domain.Optimization[domain.LegCandidate]{}, fmt.Errorf("find best departure: %w", err)
	}

	origin, destination := req.Origin.Normalize(), req.Destination.Normalize()
	if origin.IsEmpty() || destination.IsEmpty() {
		return domain.Optimization[domain.LegCandidate]{}, fmt.Errorf("find best departure: %w", ErrEmptyLocation)
	}

	if n := req.Window.Len(); checkGridSize(1, n, req.MaxGridPoints) != nil {
		return domain.Optimization[domain.LegCandidate]{}, fmt.Errorf(
			"find best departure: %d instants, limit %d: %w",
			n, req.MaxGridPoints, ErrGridTooLarge,
		)
	}
	instants := slices.Collect(req.Window.Instants())

	searchLog = orDefault(searchLog)
	reqID := obs.RequestID(ctx)
	searchLog.Printf("req_id=%s best departure %s -> %s window=%s..%s every=%s points=%d",
		reqID, origin, destination,
		req.Window.Start.Format(time.RFC3339), req.Window.End.Format(time.RFC3339),
		req.Window.Interval, len(instants))

	all, err := sampleGrid(ctx, len(instants), req.Parallelism, func(ctx context.Context, i int) (domain.LegCandidate, bool) {
		at := instants[i]
		trip, ok := resolver.Resolve(ctx, domain.TripQuery{
			Origin:      origin,
			Destination: destination,
			Departure:   at,
			Mode:        domain.TravelModeTransit,
		})
		if !ok {
			return domain.LegCandidate{}, false
		}
		return domain.NewLegCandidate(at, trip), true
	})
	if err != nil {
		return domain.Optimization[domain.LegCandidate]{}, fmt.Errorf("find best departure: %w", err)
	}

	best := pickFastest(all, legCost)
	if best != nil {
		searchLog.Printf("req_id=%s best departure done: %d/%d instants routed, fastest %s at %s",
			reqID, len(all), len(instants), best.Trip.DurationText, best.EffectiveDeparture.Format(time.RFC3339))
	} else {
		searchLog.Printf("req_id=%s best departure done: no routes in %d instants", reqID, len(instants))
	}

	return domain.Optimization[domain.LegCandidate]{Best: best, All: all}, nil
}

func legCost(c domain.LegCandidate) int { return c.Trip.DurationSeconds }
