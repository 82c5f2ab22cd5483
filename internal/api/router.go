package api

import (
	"departure-optimizer-service/internal/api/handlers"
	"departure-optimizer-service/internal/ports"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type Deps struct {
	NewResolver    handlers.ResolverFactory
	Places         ports.PlaceRepository
	SearchLog      *log.Logger
	// SearchLogSink is checked by /health when the search log goes to a
	// remote store.
	SearchLogSink  handlers.Pinger
	Defaults       handlers.SearchDefaults
	AllowedOrigins []string
	StaticDir      string
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(requestIDMiddleware, loggingMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", requestIDHeader},
		ExposedHeaders: []string{requestIDHeader},
	}))

	healthHandler := &handlers.HealthHandler{Places: deps.Places, SearchLog: deps.SearchLogSink}
	optimizeHandler := &handlers.OptimizeHandler{
		NewResolver: deps.NewResolver,
		Places:      deps.Places,
		SearchLog:   deps.SearchLog,
		Defaults:    deps.Defaults,
	}

	r.Get("/health", healthHandler.Health)
	r.Route("/api", func(r chi.Router) {
		r.Post("/optimize-trip", optimizeHandler.OptimizeTrip)
		r.Post("/optimize-work", optimizeHandler.OptimizeWork)
		if deps.Places != nil {
			placeHandler := &handlers.PlaceHandler{Repo: deps.Places}
			r.Get("/places", placeHandler.List)
		}
	})

	if deps.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(deps.StaticDir)))
	}

	return r
}
