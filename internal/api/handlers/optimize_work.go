package handlers

import (
	"departure-optimizer-service/internal/api/dto"
	"departure-optimizer-service/internal/domain"
	"departure-optimizer-service/internal/services"
	"net/http"
)

// OptimizeWork ranks round trips from each origin to the workplace and back.
func (h *OptimizeHandler) OptimizeWork(w http.ResponseWriter, r *http.Request) {
	var req dto.OptimizeWorkRequest
	if !decodeBody(w, r, &req) {
		return
	}

	resolver, ok := h.resolver(w, r, req.APIKey)
	if !ok {
		return
	}

	if req.WorkDurationHours == nil {
		writeError(w, r, http.StatusBadRequest, "work_duration_hours is required")
		return
	}

	window, ok := h.window(w, r, req.WindowStart, req.WindowEnd, req.TimeZone, req.IntervalMinutes, h.Defaults.WorkInterval)
	if !ok {
		return
	}

	dest, ok := h.locations(w, r, req.Destination)
	if !ok {
		return
	}
	origins, ok := h.locations(w, r, req.Origins...)
	if !ok {
		return
	}

	svcReq := services.WorkScheduleRequest{
		Origins:       origins,
		Destination:   dest[0],
		OnSite:        req.WorkDurationHours.Duration(),
		Window:        window,
		Parallelism:   h.Defaults.Parallelism,
		MaxGridPoints: h.Defaults.MaxGridPoints,
	}

	opt, err := services.OptimizeWorkSchedule(r.Context(), svcReq, resolver, h.SearchLog)
	if err != nil {
		h.searchFailed(w, r, "optimize work schedule", err)
		return
	}

	writeJSON(w, r, http.StatusOK, workResponse(opt))
}

func workResponse(opt domain.Optimization[domain.RoundTripCandidate]) dto.OptimizeWorkResponse {
	res := dto.OptimizeWorkResponse{
		Results: make([]dto.ScheduleResponse, 0, len(opt.Ranked)),
	}
	for _, c := range opt.Ranked {
		res.Results = append(res.Results, scheduleResponse(c))
	}

	if opt.Best != nil {
		best := scheduleResponse(*opt.Best)
		res.BestSchedule = &best
	}

	return res
}

func scheduleResponse(c domain.RoundTripCandidate) dto.ScheduleResponse {
	return dto.ScheduleResponse{
		Origin:              c.Origin.String(),
		DepartureToWork:     c.Outbound.EffectiveDeparture,
		DurationToWork:      c.Outbound.Trip.DurationSeconds,
		RouteToWork:         c.Outbound.Trip.RouteSummary,
		LeaveWorkTime:       c.Return.EffectiveDeparture,
		DurationToHome:      c.Return.Trip.DurationSeconds,
		RouteToHome:         c.Return.Trip.RouteSummary,
		TotalCommuteSeconds: c.TotalSeconds,
		TotalCommuteText:    c.TotalText(),
	}
}
