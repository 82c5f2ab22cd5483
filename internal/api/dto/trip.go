package dto

import "time"

type OptimizeTripRequest struct {
	APIKey          string `json:"api_key"`
	Origin          string `json:"origin"`
	Destination     string `json:"destination"`
	WindowStart     string `json:"window_start"`
	WindowEnd       string `json:"window_end"`
	IntervalMinutes *int   `json:"interval_minutes"`
	TimeZone        string `json:"time_zone"`
}

// DepartureResponse is one routed grid instant. DepartureTime is the
// provider's departure when known, otherwise RequestedTime.
type DepartureResponse struct {
	DepartureTime       time.Time  `json:"departure_time"`
	RequestedTime       time.Time  `json:"requested_time"`
	DurationSeconds     int        `json:"duration_seconds"`
	DurationText        string     `json:"duration_text"`
	RouteSummary        string     `json:"route_summary"`
	Steps               []string   `json:"steps"`
	ActualDepartureText string     `json:"actual_departure_text,omitempty"`
	ArrivalText         string     `json:"arrival_text,omitempty"`
	ArrivalTime         *time.Time `json:"arrival_time,omitempty"`
}

type OptimizeTripResponse struct {
	BestDeparture      *time.Time          `json:"best_departure"`
	MinDurationSeconds *int                `json:"min_duration_seconds"`
	BestRouteSummary   *string             `json:"best_route_summary"`
	Results            []DepartureResponse `json:"results"`
}
