package directions

import (
	"departure-optimizer-service/internal/domain"
	"strings"
	"time"

	"googlemaps.github.io/maps"
)

const (
	stepSeparator = " -> "
	clockLayout   = "3:04 PM"
)

// fastestLeg returns the primary leg of the route with the strictly
// smallest duration; the first route wins ties. Routes without legs are
// skipped and counted in skipped.
func fastestLeg(routes []maps.Route) (best *maps.Leg, skipped int, ok bool) {
	for i := range routes {
		legs := routes[i].Legs
		if len(legs) == 0 || legs[0] == nil {
			skipped++
			continue
		}

		leg := legs[0]
		if best == nil || leg.Duration < best.Duration {
			best = leg
		}
	}

	return best, skipped, best != nil
}

// normalizeLeg turns a provider leg into the record the schedulers consume.
func normalizeLeg(leg *maps.Leg) domain.TripResult {
	summary := summarizeSteps(leg.Steps)

	result := domain.TripResult{
		DurationSeconds: int(leg.Duration / time.Second),
		DurationText:    domain.FormatDuration(leg.Duration),
		RouteSummary:    strings.Join(summary, stepSeparator),
		Steps:           summary,
	}

	if !leg.DepartureTime.IsZero() {
		t := leg.DepartureTime
		result.ActualDeparture = &t
		result.DepartureText = t.Format(clockLayout)
	}
	if !leg.ArrivalTime.IsZero() {
		t := leg.ArrivalTime
		result.ActualArrival = &t
		result.ArrivalText = t.Format(clockLayout)
	}

	return result
}

func summarizeSteps(steps []*maps.Step) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		if s == nil {
			continue
		}
		out = append(out, summarizeStep(s))
	}
	return out
}

// summarizeStep labels a transit step "<vehicle> <line>", a walking step
// "Walk", and anything else by its cleaned instruction text.
func summarizeStep(s *maps.Step) string {
	if td := s.TransitDetails; td != nil {
		return td.Line.Vehicle.Name + " " + td.Line.ShortName
	}

	text := cleanInstructions(s.HTMLInstructions)
	if strings.Contains(text, "Walk") {
		return "Walk"
	}
	return text
}

func cleanInstructions(html string) string {
	text := strings.NewReplacer("<b>", "", "</b>", "").Replace(html)
	return strings.ReplaceAll(text, "  ", " ")
}
