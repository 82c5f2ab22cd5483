package services

import (
	"context"
	"departure-optimizer-service/internal/adapters/directions"
	"departure-optimizer-service/internal/domain"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/kr/pretty"
)

func totals(cands []domain.RoundTripCandidate) []int {
	out := make([]int, 0, len(cands))
	for _, c := range cands {
		out = append(out, c.TotalSeconds)
	}
	return out
}

func TestOptimizeWorkScheduleReturnLegDependsOnOutbound(t *testing.T) {
	onSite := 8 * time.Hour
	leave := t0.Add(1200*time.Second + onSite)

	provider := directions.NewMockTripResolver([]directions.MockTrip{
		{From: "Home", To: "Office", At: t0, Seconds: 1200},
		{From: "Office", To: "Home", At: leave, Seconds: 1500},
	})

	got, err := OptimizeWorkSchedule(context.Background(), WorkScheduleRequest{
		Origins:     domain.SingleOrigin("Home"),
		Destination: "Office",
		OnSite:      onSite,
		Window:      window(t, t0, t0, 30*time.Minute),
	}, provider, discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Best == nil {
		t.Fatal("expected a best schedule")
	}
	if !got.Best.Return.RequestedDeparture.Equal(leave) {
		t.Fatalf("return departure = %v, want %v", got.Best.Return.RequestedDeparture, leave)
	}
	if got.Best.TotalSeconds != 2700 {
		t.Fatalf("total = %d, want 2700", got.Best.TotalSeconds)
	}

	qs := provider.Queries()
	if len(qs) != 2 {
		t.Fatalf("queries = %d, want 2", len(qs))
	}
	if qs[0].Origin != "Home" || qs[1].Origin != "Office" {
		t.Fatalf("query order = %s then %s, want outbound first", qs[0], qs[1])
	}
	if !qs[1].Departure.Equal(leave) {
		t.Fatalf("return query at %v, want %v", qs[1].Departure, leave)
	}
}

func TestOptimizeWorkScheduleUsesEffectiveOutboundDeparture(t *testing.T) {
	actual := t0.Add(6 * time.Minute)
	leave := actual.Add(1200*time.Second + time.Hour)

	provider := directions.NewMockTripResolver([]directions.MockTrip{
		{From: "Home", To: "Office", At: t0, Seconds: 1200, Departure: &actual},
		{From: "Office", To: "Home", At: leave, Seconds: 1300},
	})

	got, err := OptimizeWorkSchedule(context.Background(), WorkScheduleRequest{
		Origins:     domain.SingleOrigin("Home"),
		Destination: "Office",
		OnSite:      time.Hour,
		Window:      window(t, t0, t0, 30*time.Minute),
	}, provider, discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Best == nil || !got.Best.Return.RequestedDeparture.Equal(leave) {
		t.Fatalf("best = %# v, want return at %v", pretty.Formatter(got.Best), leave)
	}
}

func TestOptimizeWorkScheduleRankingIsStable(t *testing.T) {
	w := window(t, t0, t0.Add(90*time.Minute), 30*time.Minute)
	outbound := []int{2000, 1000, 1500, 4000}
	back := []int{3000, 2000, 1500, 5000}

	var trips []directions.MockTrip
	i := 0
	for at := range w.Instants() {
		trips = append(trips, directions.MockTrip{From: "Home", To: "Office", At: at, Seconds: outbound[i]})
		leave := at.Add(time.Duration(outbound[i])*time.Second + 4*time.Hour)
		trips = append(trips, directions.MockTrip{From: "Office", To: "Home", At: leave, Seconds: back[i]})
		i++
	}

	got, err := OptimizeWorkSchedule(context.Background(), WorkScheduleRequest{
		Origins:     []domain.Location{"Home"},
		Destination: "Office",
		OnSite:      4 * time.Hour,
		Window:      w,
		Parallelism: 4,
	}, directions.NewMockTripResolver(trips), discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if diff := pretty.Diff(totals(got.All), []int{5000, 3000, 3000, 9000}); len(diff) > 0 {
		t.Fatalf("generation order differs: %v", diff)
	}
	if diff := pretty.Diff(totals(got.Ranked), []int{3000, 3000, 5000, 9000}); len(diff) > 0 {
		t.Fatalf("ranked order differs: %v", diff)
	}

	// The two 3000s keep generation order: t0+30m before t0+60m.
	if !got.Ranked[0].Outbound.RequestedDeparture.Equal(t0.Add(30 * time.Minute)) {
		t.Fatalf("ranked[0] departs %v, want %v", got.Ranked[0].Outbound.RequestedDeparture, t0.Add(30*time.Minute))
	}
	if !got.Ranked[1].Outbound.RequestedDeparture.Equal(t0.Add(60 * time.Minute)) {
		t.Fatalf("ranked[1] departs %v, want %v", got.Ranked[1].Outbound.RequestedDeparture, t0.Add(60*time.Minute))
	}
	if got.Best == nil || got.Best.TotalSeconds != 3000 || got.Best.TotalText() != "50 mins" {
		t.Fatalf("best = %# v", pretty.Formatter(got.Best))
	}
}

func TestOptimizeWorkScheduleSkipsIncompletePairs(t *testing.T) {
	w := window(t, t0, t0.Add(60*time.Minute), 30*time.Minute)
	onSite := 2 * time.Hour
	leaveAfter := func(at time.Time, secs int) time.Time {
		return at.Add(time.Duration(secs)*time.Second + onSite)
	}

	provider := directions.NewMockTripResolver([]directions.MockTrip{
		// north: outbound at every instant, return only after t0
		{From: "North", To: "Office", At: t0, Seconds: 600},
		{From: "North", To: "Office", At: t0.Add(30 * time.Minute), Seconds: 600},
		{From: "North", To: "Office", At: t0.Add(60 * time.Minute), Seconds: 600},
		{From: "Office", To: "North", At: leaveAfter(t0.Add(30*time.Minute), 600), Seconds: 700},
		{From: "Office", To: "North", At: leaveAfter(t0.Add(60*time.Minute), 600), Seconds: 800},
		// south: outbound missing at t0+30m, return always available
		{From: "South", To: "Office", At: t0, Seconds: 900},
		{From: "South", To: "Office", At: t0.Add(60 * time.Minute), Seconds: 900},
		{From: "Office", To: "South", Seconds: 1000},
	})

	got, err := OptimizeWorkSchedule(context.Background(), WorkScheduleRequest{
		Origins:     []domain.Location{"North", "South"},
		Destination: "Office",
		OnSite:      onSite,
		Window:      w,
		Parallelism: 1,
	}, provider, discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got.All) != 4 {
		t.Fatalf("candidates = %d, want 4", len(got.All))
	}
	wantOrigins := []domain.Location{"North", "North", "South", "South"}
	for i, c := range got.All {
		if c.Origin != wantOrigins[i] {
			t.Fatalf("all[%d].origin = %s, want %s", i, c.Origin, wantOrigins[i])
		}
	}
	if got.Best.Origin != "North" || got.Best.TotalSeconds != 1300 {
		t.Fatalf("best = %s %d, want North 1300", got.Best.Origin, got.Best.TotalSeconds)
	}

	// 6 outbound queries plus one return per successful outbound.
	if n := len(provider.Queries()); n != 6+5 {
		t.Fatalf("queries = %d, want 11", n)
	}
}

func TestOptimizeWorkScheduleNoResults(t *testing.T) {
	got, err := OptimizeWorkSchedule(context.Background(), WorkScheduleRequest{
		Origins:     []domain.Location{"Home"},
		Destination: "Office",
		OnSite:      time.Hour,
		Window:      window(t, t0, t0.Add(time.Hour), 30*time.Minute),
	}, directions.NewMockTripResolver(nil), discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Best != nil || len(got.All) != 0 || len(got.Ranked) != 0 {
		t.Fatalf("got %# v, want empty optimization", pretty.Formatter(got))
	}
}

func TestOptimizeWorkSchedulePreconditions(t *testing.T) {
	w := window(t, t0, t0.Add(time.Hour), 30*time.Minute)

	tests := []struct {
		name string
		req  WorkScheduleRequest
		want error
	}{
		{"no origins", WorkScheduleRequest{Destination: "Office", Window: w}, ErrNoOrigins},
		{"blank origin", WorkScheduleRequest{Origins: []domain.Location{"Home", " "}, Destination: "Office", Window: w}, ErrEmptyLocation},
		{"blank destination", WorkScheduleRequest{Origins: []domain.Location{"Home"}, Window: w}, ErrEmptyLocation},
		{"negative on-site", WorkScheduleRequest{Origins: []domain.Location{"Home"}, Destination: "Office", OnSite: -time.Hour, Window: w}, ErrInvalidOnSite},
		{"bad window", WorkScheduleRequest{Origins: []domain.Location{"Home"}, Destination: "Office", Window: domain.TimeWindow{Start: t0, End: t0.Add(-time.Hour), Interval: time.Minute}}, domain.ErrInvalidWindow},
		{"grid over limit", WorkScheduleRequest{Origins: []domain.Location{"A", "B"}, Destination: "Office", Window: w, MaxGridPoints: 5}, ErrGridTooLarge},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := OptimizeWorkSchedule(context.Background(), tc.req, directions.NewMockTripResolver(nil), discard)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestOptimizeWorkScheduleRejectsWideWindowBeforeSampling(t *testing.T) {
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	w := window(t, start, start.AddDate(200, 0, 0), time.Minute)

	var err error
	allocated := allocatedDuring(func() {
		_, err = OptimizeWorkSchedule(context.Background(), WorkScheduleRequest{
			Origins:       []domain.Location{"North", "South"},
			Destination:   "Office",
			OnSite:        time.Hour,
			Window:        w,
			MaxGridPoints: 96,
		}, directions.NewMockTripResolver(nil), discard)
	})

	if !errors.Is(err, ErrGridTooLarge) {
		t.Fatalf("err = %v, want ErrGridTooLarge", err)
	}
	if allocated > 1<<20 {
		t.Fatalf("allocated %d bytes rejecting the window, want < 1 MiB", allocated)
	}
}

func TestCheckGridSize(t *testing.T) {
	tests := []struct {
		rows, cols, limit int
		tooLarge          bool
	}{
		{1, 96, 96, false},
		{1, 97, 96, true},
		{2, 48, 96, false},
		{2, 49, 96, true},
		{3, math.MaxInt, 96, true},
		{5, math.MaxInt, 0, false},
	}

	for _, tc := range tests {
		err := checkGridSize(tc.rows, tc.cols, tc.limit)
		if got := errors.Is(err, ErrGridTooLarge); got != tc.tooLarge {
			t.Fatalf("checkGridSize(%d, %d, %d) = %v, want too large %v", tc.rows, tc.cols, tc.limit, err, tc.tooLarge)
		}
	}
}

func TestRankByCostStable(t *testing.T) {
	type item struct {
		id   string
		cost int
	}
	in := []item{{"a", 5000}, {"b", 3000}, {"c", 3000}, {"d", 9000}}

	got := rankByCost(in, func(i item) int { return i.cost })
	want := []item{{"b", 3000}, {"c", 3000}, {"a", 5000}, {"d", 9000}}
	if diff := pretty.Diff(got, want); len(diff) > 0 {
		t.Fatalf("rank differs: %v", diff)
	}
	if in[0].id != "a" {
		t.Fatal("rankByCost must not reorder its input")
	}

	if best := pickFastest(in, func(i item) int { return i.cost }); best == nil || best.id != "b" {
		t.Fatalf("pickFastest = %+v, want b", best)
	}
	if best := pickFastest([]item{}, func(i item) int { return i.cost }); best != nil {
		t.Fatalf("pickFastest on empty = %+v, want nil", best)
	}
}
