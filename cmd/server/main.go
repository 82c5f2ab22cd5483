package main

import (
	"database/sql"
	"departure-optimizer-service/internal/adapters/directions"
	"departure-optimizer-service/internal/adapters/logsink"
	"departure-optimizer-service/internal/adapters/repositories"
	"departure-optimizer-service/internal/api"
	"departure-optimizer-service/internal/api/handlers"
	"departure-optimizer-service/internal/config"
	"departure-optimizer-service/internal/platform/db"
	"departure-optimizer-service/internal/ports"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// main is the application composition root.
// It wires concrete adapters (Google Directions, SQL places, search log sink)
// behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()

	sink, err := logsink.Open(logsink.Config{
		Path:     cfg.SearchLogPath,
		RedisURL: cfg.SearchLogRedisURL,
		RedisKey: cfg.SearchLogRedisKey,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer sink.Close()
	searchLog := logsink.NewSearchLogger(sink)

	var sinkHealth handlers.Pinger
	if rs, ok := sink.(*logsink.RedisSink); ok {
		sinkHealth = rs
	}

	var places ports.PlaceRepository
	if cfg.DatabaseURL != "" {
		conn, dialect, err := openPlaces(cfg.DatabaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		// Initialize schema and load saved places on startup for local runs.
		if err := initAndSeed(conn, dialect, cfg.SeedPath); err != nil {
			log.Fatal(err)
		}
		places = repositories.NewSQLPlaceRepository(conn, dialect)
	}

	// Each request may carry its own key, so resolvers are built per request.
	// They share one limiter so MAPS_RATE_LIMIT holds for the whole process.
	limiter := directions.NewRateLimiter(cfg.MapsRateLimit)
	newResolver := func(apiKey string) (ports.TripResolver, error) {
		return directions.NewGoogleTripResolver(apiKey, searchLog, directions.Options{
			BaseURL: cfg.MapsBaseURL,
			Limiter: limiter,
			Timeout: cfg.ProviderTimeout,
		})
	}

	router := api.NewRouter(api.Deps{
		NewResolver:   newResolver,
		Places:        places,
		SearchLog:     searchLog,
		SearchLogSink: sinkHealth,
		Defaults: handlers.SearchDefaults{
			APIKey:        cfg.GoogleMapsAPIKey,
			TripInterval:  cfg.TripInterval,
			WorkInterval:  cfg.WorkInterval,
			Parallelism:   cfg.SearchParallelism,
			MaxGridPoints: cfg.MaxGridPoints,
			TimeZone:      cfg.DefaultTimeZone,
		},
		AllowedOrigins: cfg.CORSAllowedOrigins,
		StaticDir:      cfg.StaticDir,
	})

	if cfg.GoogleMapsAPIKey == "" {
		log.Println("GOOGLE_MAPS_API_KEY not set; requests must supply api_key")
	}

	// A full window is sampled before the response is written, so the write
	// timeout has to cover many sequential provider round trips.
	log.Printf("Server listening addr=%s", cfg.Addr())
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openPlaces(databaseURL string) (*sql.DB, db.Dialect, error) {
	if db.DialectOf(databaseURL) == db.SQLite {
		if dir := filepath.Dir(databaseURL); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, db.SQLite, fmt.Errorf("open places: create %q: %w", dir, err)
			}
		}
	}
	return db.Open(databaseURL)
}

// initAndSeed tolerates a missing seed file; saved places are optional.
func initAndSeed(conn *sql.DB, dialect db.Dialect, seedPath string) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if seedPath == "" {
		return nil
	}
	if _, err := os.Stat(seedPath); errors.Is(err, fs.ErrNotExist) {
		log.Printf("seed file %q not found, skipping", seedPath)
		return nil
	}

	if err := repositories.SeedFromJSON(conn, dialect, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
