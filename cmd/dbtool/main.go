package main

import (
	"departure-optimizer-service/internal/adapters/repositories"
	"departure-optimizer-service/internal/config"
	"departure-optimizer-service/internal/platform/db"
	"log"
	"strings"

	"github.com/joho/godotenv"
)

// dbtool initializes the places schema and loads the seed file into
// DATABASE_URL (Postgres or SQLite).
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	databaseURL := config.Get("DATABASE_URL", "")
	if strings.TrimSpace(databaseURL) == "" {
		log.Fatal("DATABASE_URL is required")
	}

	conn, dialect, err := db.Open(databaseURL)
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	seedPath := config.Get("SEED_PATH", "data/seeds/places.json")

	log.Printf("Initializing database schema dialect=%s...", dialect)
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatalf("schema initialization failed: %v", err)
	}
	log.Println("Schema ready.")

	log.Printf("Seeding places from %s...", seedPath)
	if err := repositories.SeedFromJSON(conn, dialect, seedPath); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Seeding complete.")
}
