package domain

import (
	"fmt"
	"strings"
	"time"
)

type TravelMode string

const (
	TravelModeTransit   TravelMode = "transit"
	TravelModeDriving   TravelMode = "driving"
	TravelModeWalking   TravelMode = "walking"
	TravelModeBicycling TravelMode = "bicycling"
)

// One directions lookup: where from, where to, and when to leave.
type TripQuery struct {
	Origin      Location
	Destination Location
	Departure   time.Time
	Mode        TravelMode
}

func (q TripQuery) String() string {
	return fmt.Sprintf("%s -> %s at %s (%s)", q.Origin, q.Destination, q.Departure.Format(time.RFC3339), q.Mode)
}

// Normalized outcome of one directions lookup. DurationSeconds is the
// fastest of all alternatives the provider returned.
//
// ActualDeparture and ActualArrival are only set when the provider reports
// concrete leg times (transit does, most other modes do not).
type TripResult struct {
	DurationSeconds int
	DurationText    string
	RouteSummary    string
	Steps           []string
	ActualDeparture *time.Time
	ActualArrival   *time.Time
	DepartureText   string
	ArrivalText     string
}

func (r TripResult) Duration() time.Duration {
	return time.Duration(r.DurationSeconds) * time.Second
}

// FormatDuration renders a duration the way the directions provider labels
// legs: "1 min", "25 mins", "1 hour 5 mins", "2 days 3 hours".
func FormatDuration(d time.Duration) string {
	mins := int((d + 30*time.Second) / time.Minute)
	if d > 0 && mins == 0 {
		mins = 1
	}

	days := mins / (24 * 60)
	hours := (mins % (24 * 60)) / 60
	mins = mins % 60

	parts := make([]string, 0, 2)
	switch {
	case days > 0:
		parts = append(parts, plural(days, "day"))
		if hours > 0 {
			parts = append(parts, plural(hours, "hour"))
		}
	case hours > 0:
		parts = append(parts, plural(hours, "hour"))
		if mins > 0 {
			parts = append(parts, plural(mins, "min"))
		}
	default:
		parts = append(parts, plural(mins, "min"))
	}

	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
