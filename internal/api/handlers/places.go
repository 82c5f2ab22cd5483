package handlers

import (
	"departure-optimizer-service/internal/api/dto"
	"departure-optimizer-service/internal/ports"
	"log"
	"net/http"
)

// PlaceHandler exposes read-only saved place endpoints.
type PlaceHandler struct {
	Repo ports.PlaceRepository
}

func (h *PlaceHandler) List(w http.ResponseWriter, r *http.Request) {
	places, err := h.Repo.ListPlaces(r.Context())
	if err != nil {
		log.Printf("list places failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListPlacesResponse{
		Places: make([]dto.PlaceResponse, 0, len(places)),
	}
	for _, p := range places {
		res.Places = append(res.Places, dto.PlaceResponse{
			Name:    p.Name,
			Address: p.Address.String(),
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
