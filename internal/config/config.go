package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the server settings read from the environment.
type Config struct {
	// HTTP
	Port               string
	StaticDir          string
	CORSAllowedOrigins []string

	// Routing provider
	GoogleMapsAPIKey string
	MapsBaseURL      string
	MapsRateLimit    int
	ProviderTimeout  time.Duration

	// Search
	TripInterval      time.Duration
	WorkInterval      time.Duration
	SearchParallelism int
	MaxGridPoints     int
	DefaultTimeZone   *time.Location
	SearchLogPath     string
	SearchLogRedisURL string
	SearchLogRedisKey string

	// Saved places
	DatabaseURL string
	SeedPath    string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:               Get("PORT", "8080"),
		StaticDir:          Get("STATIC_DIR", ""),
		CORSAllowedOrigins: GetList("CORS_ALLOWED_ORIGINS", []string{"*"}),

		GoogleMapsAPIKey: Get("GOOGLE_MAPS_API_KEY", ""),
		MapsBaseURL:      Get("MAPS_BASE_URL", ""),
		MapsRateLimit:    GetInt("MAPS_RATE_LIMIT", 10),
		ProviderTimeout:  time.Duration(GetInt("PROVIDER_TIMEOUT_SECONDS", 20)) * time.Second,

		TripInterval:      time.Duration(GetInt("TRIP_INTERVAL_MINUTES", 15)) * time.Minute,
		WorkInterval:      time.Duration(GetInt("WORK_INTERVAL_MINUTES", 30)) * time.Minute,
		SearchParallelism: GetInt("SEARCH_PARALLELISM", 4),
		MaxGridPoints:     GetInt("MAX_GRID_POINTS", 96),
		DefaultTimeZone:   GetLocation("DEFAULT_TIME_ZONE", time.Local),
		SearchLogPath:     Get("SEARCH_LOG_PATH", "debug_routes.txt"),
		SearchLogRedisURL: Get("SEARCH_LOG_REDIS_URL", ""),
		SearchLogRedisKey: Get("SEARCH_LOG_REDIS_KEY", "departure-optimizer:search-log"),

		DatabaseURL: Get("DATABASE_URL", "data/app.db"),
		SeedPath:    Get("SEED_PATH", "data/seeds/places.json"),
	}
}

func Get(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func GetInt(key string, defaultValue int) int {
	value := Get(key, "")
	if value == "" {
		return defaultValue
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("config: %s=%q is not an integer, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

// GetList splits a comma separated value, dropping blank items.
func GetList(key string, defaultValue []string) []string {
	value := Get(key, "")
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}

// GetLocation loads an IANA zone name; "Local" and "UTC" are accepted.
func GetLocation(key string, defaultValue *time.Location) *time.Location {
	value := Get(key, "")
	if value == "" {
		return defaultValue
	}

	loc, err := time.LoadLocation(value)
	if err != nil {
		log.Printf("config: %s=%q: %v, using %s", key, value, err, defaultValue)
		return defaultValue
	}
	return loc
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%s", c.Port)
}
