package domain

import (
	"fmt"
	"time"
)

// LegCandidate is one evaluated grid instant of a single-leg search.
// EffectiveDeparture is the provider's reported departure when present,
// otherwise the requested instant.
type LegCandidate struct {
	RequestedDeparture time.Time
	EffectiveDeparture time.Time
	Trip               TripResult
}

func NewLegCandidate(requested time.Time, trip TripResult) LegCandidate {
	effective := requested
	if trip.ActualDeparture != nil {
		effective = *trip.ActualDeparture
	}
	return LegCandidate{
		RequestedDeparture: requested,
		EffectiveDeparture: effective,
		Trip:               trip,
	}
}

// ArrivesAt is the effective departure plus the trip duration.
func (c LegCandidate) ArrivesAt() time.Time {
	return c.EffectiveDeparture.Add(c.Trip.Duration())
}

// RoundTripCandidate pairs an outbound leg with the return leg that leaves
// the destination once the on-site duration has elapsed.
type RoundTripCandidate struct {
	Origin       Location
	Outbound     LegCandidate
	Return       LegCandidate
	TotalSeconds int
}

func NewRoundTripCandidate(origin Location, outbound, ret LegCandidate) RoundTripCandidate {
	return RoundTripCandidate{
		Origin:       origin,
		Outbound:     outbound,
		Return:       ret,
		TotalSeconds: outbound.Trip.DurationSeconds + ret.Trip.DurationSeconds,
	}
}

// TotalText is the total commute in whole minutes (floor).
func (c RoundTripCandidate) TotalText() string {
	return fmt.Sprintf("%d mins", c.TotalSeconds/60)
}

// Optimization is the outcome of a grid search. All keeps generation order;
// Ranked (when the search ranks) is a stable cost-ordered copy of All.
// Best is nil exactly when All is empty.
type Optimization[C any] struct {
	Best   *C
	All    []C
	Ranked []C
}
