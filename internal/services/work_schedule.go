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

type WorkScheduleRequest struct {
	Origins     []domain.Location
	Destination domain.Location
	// OnSite is the time spent at the destination between the two legs.
	OnSite        time.Duration
	Window        domain.TimeWindow
	Parallelism   int
	MaxGridPoints int
}

// OptimizeWorkSchedule evaluates a round trip for every (origin, departure)
// pair: out to the destination at the grid instant, back once the on-site
// duration has elapsed after arrival. Pairs where either leg has no route are
// skipped. All keeps origin-major, grid-minor order; Ranked and Best order
// by total commute time.
func OptimizeWorkSchedule(
	ctx context.Context,
	req WorkScheduleRequest,
	resolver ports.TripResolver,
	searchLog *log.Logger,
) (_ domain.Optimization[domain.RoundTripCandidate], err error) {
	defer obs.Time(ctx, "search.OptimizeWorkSchedule")(&err)

	var empty domain.Optimization[domain.RoundTripCandidate]

	if err := req.Window.Validate(); err != nil {
		return empty, fmt.Errorf("optimize work schedule: %w", err)
	}
	if req.OnSite < 0 {
		return empty, fmt.Errorf("optimize work schedule: on_site=%s: %w", req.OnSite, ErrInvalidOnSite)
	}
	if len(req.Origins) == 0 {
		return empty, fmt.Errorf("optimize work schedule: %w", ErrNoOrigins)
	}

	destination := req.Destination.Normalize()
	if destination.IsEmpty() {
		return empty, fmt.Errorf("optimize work schedule: %w", ErrEmptyLocation)
	}

	origins := make([]domain.Location, 0, len(req.Origins))
	for i, o := range req.Origins {
		o = o.Normalize()
		if o.IsEmpty() {
			return empty, fmt.Errorf("optimize work schedule: origin %d: %w", i, ErrEmptyLocation)
		}
		origins = append(origins, o)
	}

	if n := req.Window.Len(); checkGridSize(len(origins), n, req.MaxGridPoints) != nil {
		return empty, fmt.Errorf(
			"optimize work schedule: %d origin(s) x %d instants, limit %d: %w",
			len(origins), n, req.MaxGridPoints, ErrGridTooLarge,
		)
	}
	instants := slices.Collect(req.Window.Instants())
	points := len(origins) * len(instants)

	searchLog = orDefault(searchLog)
	reqID := obs.RequestID(ctx)
	searchLog.Printf("req_id=%s work schedule origins=%d -> %s window=%s..%s every=%s on_site=%s points=%d",
		reqID, len(origins), destination,
		req.Window.Start.Format(time.RFC3339), req.Window.End.Format(time.RFC3339),
		req.Window.Interval, req.OnSite, points)
	for _, o := range origins {
		searchLog.Printf("req_id=%s work schedule origin %s", reqID, o)
	}

	all, err := sampleGrid(ctx, points, req.Parallelism, func(ctx context.Context, i int) (domain.RoundTripCandidate, bool) {
		origin := origins[i/len(instants)]
		at := instants[i%len(instants)]
		return roundTrip(ctx, resolver, origin, destination, at, req.OnSite)
	})
	if err != nil {
		return empty, fmt.Errorf("optimize work schedule: %w", err)
	}

	ranked := rankByCost(all, roundTripCost)

	out := domain.Optimization[domain.RoundTripCandidate]{All: all, Ranked: ranked}
	if len(ranked) > 0 {
		out.Best = &ranked[0]
		searchLog.Printf("req_id=%s work schedule done: %d/%d pairs routed, best %s from %s at %s",
			reqID, len(all), points, out.Best.TotalText(), out.Best.Origin,
			out.Best.Outbound.EffectiveDeparture.Format(time.RFC3339))
	} else {
		searchLog.Printf("req_id=%s work schedule done: no complete round trips in %d pairs", reqID, points)
	}

	return out, nil
}

// roundTrip resolves the outbound leg and, only once it is known, the return
// leg leaving onSite after the outbound arrival.
func roundTrip(
	ctx context.Context,
	resolver ports.TripResolver,
	origin, destination domain.Location,
	at time.Time,
	onSite time.Duration,
) (domain.RoundTripCandidate, bool) {
	outTrip, ok := resolver.Resolve(ctx, domain.TripQuery{
		Origin:      origin,
		Destination: destination,
		Departure:   at,
		Mode:        domain.TravelModeTransit,
	})
	if !ok {
		return domain.RoundTripCandidate{}, false
	}
	outbound := domain.NewLegCandidate(at, outTrip)

	leave := outbound.ArrivesAt().Add(onSite)
	backTrip, ok := resolver.Resolve(ctx, domain.TripQuery{
		Origin:      destination,
		Destination: origin,
		Departure:   leave,
		Mode:        domain.TravelModeTransit,
	})
	if !ok {
		return domain.RoundTripCandidate{}, false
	}

	return domain.NewRoundTripCandidate(origin, outbound, domain.NewLegCandidate(leave, backTrip)), true
}

func roundTripCost(c domain.RoundTripCandidate) int { return c.TotalSeconds }
