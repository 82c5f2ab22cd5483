package services

import (
	"context"
	"departure-optimizer-service/internal/adapters/directions"
	"departure-optimizer-service/internal/domain"
	"errors"
	"io"
	"log"
	"runtime"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kr/pretty"
)

var (
	t0      = time.Date(2026, 3, 2, 7, 0, 0, 0, time.UTC)
	discard = log.New(io.Discard, "", 0)
)

func window(t *testing.T, start, end time.Time, every time.Duration) domain.TimeWindow {
	t.Helper()

	w, err := domain.NewTimeWindow(start, end, every)
	if err != nil {
		t.Fatalf("window: %v", err)
	}
	return w
}

func requestedTimes(cands []domain.LegCandidate) []time.Time {
	out := make([]time.Time, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.RequestedDeparture.UTC())
	}
	return out
}

func TestFindBestDeparture(t *testing.T) {
	provider := directions.NewMockTripResolver([]directions.MockTrip{
		{From: "Home", To: "Work", At: t0, Seconds: 1800},
		{From: "Home", To: "Work", At: t0.Add(15 * time.Minute), Seconds: 1500},
		// t0+30m has no route
		{From: "Home", To: "Work", At: t0.Add(45 * time.Minute), Seconds: 1600},
	})

	got, err := FindBestDeparture(context.Background(), BestDepartureRequest{
		Origin:      "Home",
		Destination: "Work",
		Window:      window(t, t0, t0.Add(47*time.Minute), 15*time.Minute),
	}, provider, discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []time.Time{t0, t0.Add(15 * time.Minute), t0.Add(45 * time.Minute)}
	if diff := pretty.Diff(requestedTimes(got.All), want); len(diff) > 0 {
		t.Fatalf("candidates differ from grid order: %v", diff)
	}
	if got.Best == nil {
		t.Fatal("expected a best candidate")
	}
	if got.Best.Trip.DurationSeconds != 1500 {
		t.Fatalf("best duration = %d, want 1500", got.Best.Trip.DurationSeconds)
	}
	if !got.Best.RequestedDeparture.Equal(t0.Add(15 * time.Minute)) {
		t.Fatalf("best departure = %v, want %v", got.Best.RequestedDeparture, t0.Add(15*time.Minute))
	}

	if n := len(provider.Queries()); n != 4 {
		t.Fatalf("queries = %d, want 4", n)
	}
	for _, q := range provider.Queries() {
		if q.Mode != domain.TravelModeTransit {
			t.Fatalf("mode = %q, want transit", q.Mode)
		}
	}
}

func TestFindBestDepartureTieKeepsEarliest(t *testing.T) {
	provider := directions.NewMockTripResolver([]directions.MockTrip{
		{From: "A", To: "B", At: t0, Seconds: 1300},
		{From: "A", To: "B", At: t0.Add(15 * time.Minute), Seconds: 1200},
		{From: "A", To: "B", At: t0.Add(30 * time.Minute), Seconds: 1200},
	})

	got, err := FindBestDeparture(context.Background(), BestDepartureRequest{
		Origin:      "A",
		Destination: "B",
		Window:      window(t, t0, t0.Add(30*time.Minute), 15*time.Minute),
		Parallelism: 3,
	}, provider, discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Best.RequestedDeparture.Equal(t0.Add(15 * time.Minute)) {
		t.Fatalf("best departure = %v, want first of the tied instants", got.Best.RequestedDeparture)
	}
}

func TestFindBestDepartureEffectiveDeparture(t *testing.T) {
	actual := t0.Add(9 * time.Minute)
	provider := directions.NewMockTripResolver([]directions.MockTrip{
		{From: "A", To: "B", At: t0, Seconds: 900, Departure: &actual},
	})

	got, err := FindBestDeparture(context.Background(), BestDepartureRequest{
		Origin:      "A",
		Destination: "B",
		Window:      window(t, t0, t0, 15*time.Minute),
	}, provider, discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Best.EffectiveDeparture.Equal(actual) {
		t.Fatalf("effective departure = %v, want %v", got.Best.EffectiveDeparture, actual)
	}
	if !got.Best.RequestedDeparture.Equal(t0) {
		t.Fatalf("requested departure = %v, want %v", got.Best.RequestedDeparture, t0)
	}
}

func TestFindBestDepartureNoRoutes(t *testing.T) {
	provider := directions.NewMockTripResolver(nil)

	got, err := FindBestDeparture(context.Background(), BestDepartureRequest{
		Origin:      "A",
		Destination: "B",
		Window:      window(t, t0, t0.Add(time.Hour), 15*time.Minute),
	}, provider, discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Best != nil {
		t.Fatalf("best = %+v, want nil", got.Best)
	}
	if got.All == nil || len(got.All) != 0 {
		t.Fatalf("all = %#v, want empty slice", got.All)
	}
}

func TestFindBestDeparturePreconditions(t *testing.T) {
	provider := directions.NewMockTripResolver(nil)

	tests := []struct {
		name string
		req  BestDepartureRequest
		want error
	}{
		{
			name: "window end before start",
			req:  BestDepartureRequest{Origin: "A", Destination: "B", Window: domain.TimeWindow{Start: t0, End: t0.Add(-time.Hour), Interval: time.Minute}},
			want: domain.ErrInvalidWindow,
		},
		{
			name: "zero interval",
			req:  BestDepartureRequest{Origin: "A", Destination: "B", Window: domain.TimeWindow{Start: t0, End: t0}},
			want: domain.ErrInvalidInterval,
		},
		{
			name: "blank origin",
			req:  BestDepartureRequest{Origin: "  ", Destination: "B", Window: window(t, t0, t0, time.Minute)},
			want: ErrEmptyLocation,
		},
		{
			name: "grid over limit",
			req:  BestDepartureRequest{Origin: "A", Destination: "B", Window: window(t, t0, t0.Add(time.Hour), time.Minute), MaxGridPoints: 10},
			want: ErrGridTooLarge,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FindBestDeparture(context.Background(), tc.req, provider, discard)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}

	if n := len(provider.Queries()); n != 0 {
		t.Fatalf("queries = %d, want none for rejected requests", n)
	}
}

// allocatedDuring reports the bytes allocated while fn runs.
func allocatedDuring(fn func()) uint64 {
	var before, after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	fn()
	runtime.ReadMemStats(&after)
	return after.TotalAlloc - before.TotalAlloc
}

func TestFindBestDepartureRejectsWideWindowBeforeSampling(t *testing.T) {
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	w := window(t, start, start.AddDate(200, 0, 0), time.Minute)
	provider := directions.NewMockTripResolver(nil)

	var err error
	allocated := allocatedDuring(func() {
		_, err = FindBestDeparture(context.Background(), BestDepartureRequest{
			Origin:        "A",
			Destination:   "B",
			Window:        w,
			MaxGridPoints: 96,
		}, provider, discard)
	})

	if !errors.Is(err, ErrGridTooLarge) {
		t.Fatalf("err = %v, want ErrGridTooLarge", err)
	}
	if allocated > 1<<20 {
		t.Fatalf("allocated %d bytes rejecting the window, want < 1 MiB", allocated)
	}
	if n := len(provider.Queries()); n != 0 {
		t.Fatalf("queries = %d, want 0", n)
	}
}

// slowFirstResolver answers every query but makes earlier departures finish
// last, so completion order is the reverse of grid order.
type slowFirstResolver struct {
	end      time.Time
	inFlight atomic.Int32
	peak     atomic.Int32
}

func (r *slowFirstResolver) Resolve(ctx context.Context, q domain.TripQuery) (domain.TripResult, bool) {
	n := r.inFlight.Add(1)
	defer r.inFlight.Add(-1)
	for {
		p := r.peak.Load()
		if n <= p || r.peak.CompareAndSwap(p, n) {
			break
		}
	}

	time.Sleep(r.end.Sub(q.Departure) / time.Hour * time.Millisecond)
	return domain.TripResult{DurationSeconds: 600}, true
}

func TestFindBestDepartureParallelKeepsGridOrder(t *testing.T) {
	w := window(t, t0, t0.Add(8*time.Hour), time.Hour)
	resolver := &slowFirstResolver{end: w.End}

	got, err := FindBestDeparture(context.Background(), BestDepartureRequest{
		Origin:      "A",
		Destination: "B",
		Window:      w,
		Parallelism: 3,
	}, resolver, discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var want []time.Time
	for at := range w.Instants() {
		want = append(want, at)
	}
	if diff := pretty.Diff(requestedTimes(got.All), want); len(diff) > 0 {
		t.Fatalf("candidates differ from grid order: %v", diff)
	}
	if !got.Best.RequestedDeparture.Equal(t0) {
		t.Fatalf("best = %v, want first instant on equal durations", got.Best.RequestedDeparture)
	}
	if p := resolver.peak.Load(); p > 3 {
		t.Fatalf("peak in-flight lookups = %d, want <= 3", p)
	}
}

func TestFindBestDepartureCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := FindBestDeparture(ctx, BestDepartureRequest{
		Origin:      "A",
		Destination: "B",
		Window:      window(t, t0, t0.Add(time.Hour), 15*time.Minute),
	}, directions.NewMockTripResolver(nil), discard)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
