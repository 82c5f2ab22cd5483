package directions

import (
	"context"
	"departure-optimizer-service/internal/domain"
	"strconv"
	"sync"
	"time"
)

// MockTrip is one canned answer. A zero At matches any departure time.
type MockTrip struct {
	From, To  string
	At        time.Time
	Seconds   int
	Departure *time.Time
	Summary   string
}

// MockTripResolver answers from a fixed table and records every query.
// Unknown queries resolve to "no route".
type MockTripResolver struct {
	mu      sync.Mutex
	m       map[string]domain.TripResult
	queries []domain.TripQuery
}

func NewMockTripResolver(trips []MockTrip) *MockTripResolver {
	m := make(map[string]domain.TripResult, len(trips))
	for _, t := range trips {
		m[mockKey(t.From, t.To, t.At)] = domain.TripResult{
			DurationSeconds: t.Seconds,
			DurationText:    domain.FormatDuration(time.Duration(t.Seconds) * time.Second),
			RouteSummary:    t.Summary,
			ActualDeparture: t.Departure,
		}
	}
	return &MockTripResolver{m: m}
}

func (p *MockTripResolver) Resolve(ctx context.Context, q domain.TripQuery) (domain.TripResult, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.queries = append(p.queries, q)

	from, to := string(q.Origin.Normalize()), string(q.Destination.Normalize())
	if r, ok := p.m[mockKey(from, to, q.Departure)]; ok {
		return r, true
	}
	r, ok := p.m[mockKey(from, to, time.Time{})]
	return r, ok
}

// Queries returns the queries seen so far in arrival order.
func (p *MockTripResolver) Queries() []domain.TripQuery {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]domain.TripQuery, len(p.queries))
	copy(out, p.queries)
	return out
}

func mockKey(from, to string, at time.Time) string {
	if at.IsZero() {
		return from + "|" + to + "|*"
	}
	return from + "|" + to + "|" + strconv.FormatInt(at.Unix(), 10)
}
