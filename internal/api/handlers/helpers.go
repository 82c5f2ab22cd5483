package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeBody reads exactly one JSON object with no unknown fields. It writes
// the 400 response itself and reports false on failure.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, fmt.Sprintf("invalid json body: %v", err))
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

// parseInstant accepts RFC 3339 with an offset, or a local date-time
// without one, which is read in loc.
func parseInstant(field, s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}

	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%s: %q is not an ISO 8601 date-time", field, s)
}

func resolveZone(name string, fallback *time.Location) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		if fallback == nil {
			return time.Local, nil
		}
		return fallback, nil
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("unknown time_zone %q", name)
	}
	return loc, nil
}

// maxIntervalMinutes caps interval_minutes at one day.
const maxIntervalMinutes = 24 * 60

// intervalOr converts interval_minutes, bounded before the multiplication so
// it cannot overflow. Non-positive values are left to window validation.
func intervalOr(minutes *int, fallback time.Duration) (time.Duration, error) {
	if minutes == nil {
		return fallback, nil
	}
	if *minutes > maxIntervalMinutes {
		return 0, fmt.Errorf("interval_minutes must be at most %d, got %d", maxIntervalMinutes, *minutes)
	}
	return time.Duration(*minutes) * time.Minute, nil
}

// statusFor maps caller mistakes to 400 and everything else to 500.
func statusFor(err error, badRequest ...error) int {
	for _, target := range badRequest {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}
