package directions

import (
	"context"
	"departure-optimizer-service/internal/domain"
	"departure-optimizer-service/internal/platform/obs"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"googlemaps.github.io/maps"
)

var ErrMissingAPIKey = errors.New("API Key is required")

// Options tunes the underlying maps client. A nil Limiter disables rate
// limiting and a zero Timeout means no client-side timeout.
type Options struct {
	BaseURL string
	// Limiter is shared by every resolver built with it, so the rate holds
	// across requests and API keys.
	Limiter *rate.Limiter
	Timeout time.Duration
}

// GoogleTripResolver implements TripResolver using the Google Directions API.
//
// Every query and its outcome is written to the search log. Provider
// failures are logged there and reported as "no route" so a single bad grid
// point never aborts a search.
//
// The resolver is safe for concurrent use.
type GoogleTripResolver struct {
	client *maps.Client
	log    *log.Logger
}

func NewGoogleTripResolver(apiKey string, searchLog *log.Logger, opts Options) (*GoogleTripResolver, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	httpClient := &http.Client{
		Timeout:   opts.Timeout,
		Transport: newRetryTransport(newLimitTransport(http.DefaultTransport, opts.Limiter)),
	}

	// The client's own limiter would be per resolver; limiting happens in
	// the transport instead.
	clientOpts := []maps.ClientOption{
		maps.WithAPIKey(apiKey),
		maps.WithHTTPClient(httpClient),
		maps.WithRateLimit(0),
	}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, maps.WithBaseURL(strings.TrimRight(opts.BaseURL, "/")))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("new google trip resolver: %w", err)
	}

	if searchLog == nil {
		searchLog = log.Default()
	}

	return &GoogleTripResolver{client: client, log: searchLog}, nil
}

func (g *GoogleTripResolver) Resolve(ctx context.Context, q domain.TripQuery) (domain.TripResult, bool) {
	reqID := obs.RequestID(ctx)
	g.log.Printf("req_id=%s checking trip %s", reqID, q)

	req := &maps.DirectionsRequest{
		Origin:        q.Origin.Normalize().String(),
		Destination:   q.Destination.Normalize().String(),
		Mode:          travelMode(q.Mode),
		DepartureTime: strconv.FormatInt(q.Departure.Unix(), 10),
		Alternatives:  true,
	}

	routes, _, err := g.client.Directions(ctx, req)
	if err != nil {
		g.log.Printf("req_id=%s directions error: %v", reqID, err)
		return domain.TripResult{}, false
	}

	if len(routes) == 0 {
		g.log.Printf("req_id=%s no route found", reqID)
		return domain.TripResult{}, false
	}

	leg, skipped, ok := fastestLeg(routes)
	if skipped > 0 {
		g.log.Printf("req_id=%s skipped %d route(s) without legs", reqID, skipped)
	}
	if !ok {
		g.log.Printf("req_id=%s no route found", reqID)
		return domain.TripResult{}, false
	}

	result := normalizeLeg(leg)
	g.log.Printf("req_id=%s best of %d route(s): %s (%s) departs=%s arrives=%s",
		reqID, len(routes), result.RouteSummary, result.DurationText,
		orNA(result.DepartureText), orNA(result.ArrivalText))

	return result, true
}

func travelMode(m domain.TravelMode) maps.Mode {
	switch m {
	case domain.TravelModeDriving:
		return maps.TravelModeDriving
	case domain.TravelModeWalking:
		return maps.TravelModeWalking
	case domain.TravelModeBicycling:
		return maps.TravelModeBicycling
	default:
		return maps.TravelModeTransit
	}
}

func orNA(s string) string {
	if s == "" {
		return "n/a"
	}
	return s
}
