package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Locations accepts either a single string or an array of strings.
type Locations []string

func (l *Locations) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = Locations{s}
		return nil
	}

	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return errors.New("origins must be a string or an array of strings")
	}
	*l = list
	return nil
}

// Hours accepts a JSON number or a numeric string.
type Hours float64

// maxHours is the largest value that still fits in a time.Duration.
var maxHours = float64(math.MaxInt64) / float64(time.Hour)

func (h *Hours) UnmarshalJSON(b []byte) error {
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return errors.New("work_duration_hours must be a number")
		}
		if f, err = strconv.ParseFloat(strings.TrimSpace(s), 64); err != nil {
			return fmt.Errorf("work_duration_hours: %q is not a number", s)
		}
	}

	if math.IsNaN(f) || math.IsInf(f, 0) || math.Abs(f) >= maxHours {
		return fmt.Errorf("work_duration_hours: %v is out of range", f)
	}
	*h = Hours(f)
	return nil
}

func (h Hours) Duration() time.Duration {
	return time.Duration(float64(h) * float64(time.Hour))
}

type OptimizeWorkRequest struct {
	APIKey            string    `json:"api_key"`
	Origins           Locations `json:"origins"`
	Destination       string    `json:"destination"`
	WorkDurationHours *Hours    `json:"work_duration_hours"`
	WindowStart       string    `json:"window_start"`
	WindowEnd         string    `json:"window_end"`
	IntervalMinutes   *int      `json:"interval_minutes"`
	TimeZone          string    `json:"time_zone"`
}

type ScheduleResponse struct {
	Origin              string    `json:"origin"`
	DepartureToWork     time.Time `json:"departure_to_work"`
	DurationToWork      int       `json:"duration_to_work"`
	RouteToWork         string    `json:"route_to_work"`
	LeaveWorkTime       time.Time `json:"leave_work_time"`
	DurationToHome      int       `json:"duration_to_home"`
	RouteToHome         string    `json:"route_to_home"`
	TotalCommuteSeconds int       `json:"total_commute_seconds"`
	TotalCommuteText    string    `json:"total_commute_text"`
}

type OptimizeWorkResponse struct {
	BestSchedule *ScheduleResponse  `json:"best_schedule"`
	Results      []ScheduleResponse `json:"results"`
}
