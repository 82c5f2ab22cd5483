package handlers

import (
	"context"
	"departure-optimizer-service/internal/domain"
	"departure-optimizer-service/internal/ports"
	"departure-optimizer-service/internal/services"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// ResolverFactory builds a trip resolver bound to one provider credential.
type ResolverFactory func(apiKey string) (ports.TripResolver, error)

// SearchDefaults apply when a request leaves a field out.
type SearchDefaults struct {
	APIKey        string
	TripInterval  time.Duration
	WorkInterval  time.Duration
	Parallelism   int
	MaxGridPoints int
	TimeZone      *time.Location
}

// OptimizeHandler serves the departure and work schedule searches.
type OptimizeHandler struct {
	NewResolver ResolverFactory
	// Places resolves "@name" locations; nil leaves them literal.
	Places    ports.PlaceRepository
	SearchLog *log.Logger
	Defaults  SearchDefaults
}

var badRequestErrs = []error{
	domain.ErrInvalidWindow,
	domain.ErrInvalidInterval,
	services.ErrEmptyLocation,
	services.ErrNoOrigins,
	services.ErrGridTooLarge,
	services.ErrInvalidOnSite,
}

var errUnknownPlace = errors.New("unknown place")

func (h *OptimizeHandler) resolver(w http.ResponseWriter, r *http.Request, bodyKey string) (ports.TripResolver, bool) {
	key := strings.TrimSpace(bodyKey)
	if key == "" {
		key = strings.TrimSpace(h.Defaults.APIKey)
	}
	if key == "" {
		writeError(w, r, http.StatusBadRequest, "API Key is required")
		return nil, false
	}

	res, err := h.NewResolver(key)
	if err != nil {
		log.Printf("create trip resolver failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, err.Error())
		return nil, false
	}
	return res, true
}

func (h *OptimizeHandler) window(
	w http.ResponseWriter,
	r *http.Request,
	start, end, zone string,
	intervalMinutes *int,
	fallback time.Duration,
) (domain.TimeWindow, bool) {
	loc, err := resolveZone(zone, h.Defaults.TimeZone)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return domain.TimeWindow{}, false
	}

	from, err := parseInstant("window_start", start, loc)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return domain.TimeWindow{}, false
	}
	to, err := parseInstant("window_end", end, loc)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return domain.TimeWindow{}, false
	}

	interval, err := intervalOr(intervalMinutes, fallback)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return domain.TimeWindow{}, false
	}

	tw, err := domain.NewTimeWindow(from, to, interval)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return domain.TimeWindow{}, false
	}
	return tw, true
}

// location swaps "@name" for the saved place's address.
func (h *OptimizeHandler) location(ctx context.Context, raw string) (domain.Location, error) {
	loc := domain.Location(raw).Normalize()
	if h.Places == nil || !strings.HasPrefix(string(loc), "@") {
		return loc, nil
	}

	p, err := h.Places.GetPlace(ctx, strings.TrimPrefix(string(loc), "@"))
	if errors.Is(err, ports.ErrPlaceNotFound) {
		return "", fmt.Errorf("%w %q", errUnknownPlace, loc)
	}
	if err != nil {
		return "", fmt.Errorf("resolve place %q: %w", loc, err)
	}
	return p.Address.Normalize(), nil
}

func (h *OptimizeHandler) locations(w http.ResponseWriter, r *http.Request, raw ...string) ([]domain.Location, bool) {
	out := make([]domain.Location, 0, len(raw))
	for _, s := range raw {
		loc, err := h.location(r.Context(), s)
		if err != nil {
			status := statusFor(err, errUnknownPlace)
			if status == http.StatusInternalServerError {
				log.Printf("resolve location failed: %v", err)
			}
			writeError(w, r, status, err.Error())
			return nil, false
		}
		out = append(out, loc)
	}
	return out, true
}

func (h *OptimizeHandler) searchFailed(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusFor(err, badRequestErrs...)
	if status == http.StatusInternalServerError {
		log.Printf("%s failed: %v", op, err)
	}
	writeError(w, r, status, err.Error())
}
