package repositories

import (
	"database/sql"
	"departure-optimizer-service/internal/platform/db"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the places schema. The DDL is valid for SQLite and Postgres.
func InitSchema(conn *sql.DB) error {
	if conn == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createPlacesQuery := `
	CREATE TABLE IF NOT EXISTS places (
		name TEXT PRIMARY KEY,
		address TEXT NOT NULL
	);
	`

	statements := []string{
		createPlacesQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type PlaceSeed struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Populate the places table from a JSON array of {name, address}.
// Existing names are overwritten.
func SeedFromJSON(conn *sql.DB, dialect db.Dialect, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed places: read %q: %w", jsonPath, err)
	}

	var data []PlaceSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed places: parse json: %w", err)
	}

	rows := make([]PlaceSeed, 0, len(data))
	for i, item := range data {
		name := strings.TrimPrefix(strings.TrimSpace(item.Name), "@")
		if name == "" {
			return fmt.Errorf("seed places: item at index %d: name cannot be empty", i+1)
		}

		addr := strings.Join(strings.Fields(item.Address), " ")
		if addr == "" {
			return fmt.Errorf("seed places: item %q: address cannot be empty", name)
		}
		rows = append(rows, PlaceSeed{Name: name, Address: addr})
	}

	tx, err := conn.Begin()
	if err != nil {
		return fmt.Errorf("seed places: begin tx: %w", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO places (
		name,
		address
	)
	VALUES (?, ?)
	ON CONFLICT (name) DO UPDATE SET address = excluded.address;
	`
	stmt, err := tx.Prepare(db.Rebind(dialect, query))
	if err != nil {
		return fmt.Errorf("seed places: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range rows {
		if _, err := stmt.Exec(p.Name, p.Address); err != nil {
			return fmt.Errorf("seed places: insert name=%q: %w", p.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed places: commit tx: %w", err)
	}

	return nil
}
