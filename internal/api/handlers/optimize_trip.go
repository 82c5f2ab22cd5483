package handlers

import (
	"departure-optimizer-service/internal/api/dto"
	"departure-optimizer-service/internal/domain"
	"departure-optimizer-service/internal/services"
	"net/http"
)

// OptimizeTrip finds the fastest departure inside the requested window.
func (h *OptimizeHandler) OptimizeTrip(w http.ResponseWriter, r *http.Request) {
	var req dto.OptimizeTripRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resolver, ok := h.resolver(w, r, req.APIKey)
	if !ok {
		return
	}

	window, ok := h.window(w, r, req.WindowStart, req.WindowEnd, req.TimeZone, req.IntervalMinutes, h.Defaults.TripInterval)
	if !ok {
		return
	}

	locs, ok := h.locations(w, r, req.Origin, req.Destination)
	if !ok {
		return
	}

	svcReq := services.BestDepartureRequest{
		Origin:        locs[0],
		Destination:   locs[1],
		Window:        window,
		Parallelism:   h.Defaults.Parallelism,
		MaxGridPoints: h.Defaults.MaxGridPoints,
	}

	opt, err := services.FindBestDeparture(r.Context(), svcReq, resolver, h.SearchLog)
	if err != nil {
		h.searchFailed(w, r, "find best departure", err)
		return
	}

	writeJSON(w, r, http.StatusOK, tripResponse(opt))
}

func tripResponse(opt domain.Optimization[domain.LegCandidate]) dto.OptimizeTripResponse {
	res := dto.OptimizeTripResponse{
		Results: make([]dto.DepartureResponse, 0, len(opt.All)),
	}

	for _, c := range opt.All {
		res.Results = append(res.Results, dto.DepartureResponse{
			DepartureTime:       c.EffectiveDeparture,
			RequestedTime:       c.RequestedDeparture,
			DurationSeconds:     c.Trip.DurationSeconds,
			DurationText:        c.Trip.DurationText,
			RouteSummary:        c.Trip.RouteSummary,
			Steps:               c.Trip.Steps,
			ActualDepartureText: c.Trip.DepartureText,
			ArrivalText:         c.Trip.ArrivalText,
			ArrivalTime:         c.Trip.ActualArrival,
		})
	}

	if b := opt.Best; b != nil {
		departure := b.EffectiveDeparture
		seconds := b.Trip.DurationSeconds
		summary := b.Trip.RouteSummary

		res.BestDeparture = &departure
		res.MinDurationSeconds = &seconds
		res.BestRouteSummary = &summary
	}

	return res
}
