package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "pgx"
)

// DialectOf picks Postgres for postgres:// URLs and SQLite for anything
// else, which is treated as a file path or ":memory:".
func DialectOf(databaseURL string) Dialect {
	u := strings.ToLower(strings.TrimSpace(databaseURL))
	if strings.HasPrefix(u, "postgres://") || strings.HasPrefix(u, "postgresql://") {
		return Postgres
	}
	return SQLite
}

func Open(databaseURL string) (*sql.DB, Dialect, error) {
	dialect := DialectOf(databaseURL)

	db, err := sql.Open(string(dialect), databaseURL)
	if err != nil {
		return nil, dialect, fmt.Errorf("openDB: open %s database: %w", dialect, err)
	}

	switch dialect {
	case Postgres:
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(30 * time.Minute)
	case SQLite:
		// One connection keeps ":memory:" databases shared and serializes writers.
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, dialect, fmt.Errorf("openDB: verify %s connection: %w", dialect, err)
	}

	return db, dialect, nil
}

// Rebind rewrites "?" placeholders to "$1", "$2", ... for Postgres.
func Rebind(d Dialect, query string) string {
	if d != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
