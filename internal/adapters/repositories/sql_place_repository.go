package repositories

import (
	"context"
	"database/sql"
	"departure-optimizer-service/internal/domain"
	"departure-optimizer-service/internal/platform/db"
	"departure-optimizer-service/internal/platform/obs"
	"departure-optimizer-service/internal/ports"
	"errors"
	"fmt"
	"strings"
)

// SQL-backed implementation of the PlaceRepository port.
type SQLPlaceRepository struct {
	DB      *sql.DB
	Dialect db.Dialect
}

func NewSQLPlaceRepository(conn *sql.DB, dialect db.Dialect) *SQLPlaceRepository {
	return &SQLPlaceRepository{DB: conn, Dialect: dialect}
}

// Return all saved places ordered by name.
func (s *SQLPlaceRepository) ListPlaces(ctx context.Context) (_ []domain.Place, err error) {
	defer obs.Time(ctx, "places.ListPlaces")(&err)

	if s.DB == nil {
		return nil, errors.New("sql place repository: DB is nil")
	}

	query := `
	SELECT
		name,
		address
	FROM places
	ORDER BY name;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list places: query places table: %w", err)
	}
	defer rows.Close()

	places := make([]domain.Place, 0, 16)
	for rows.Next() {
		var name, addr string
		if err := rows.Scan(&name, &addr); err != nil {
			return nil, fmt.Errorf("list places: scan row: %w", err)
		}
		places = append(places, domain.Place{Name: name, Address: domain.Location(addr)})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list places: row iteration: %w", err)
	}

	return places, nil
}

// Return the place with the given name; a leading "@" is ignored.
func (s *SQLPlaceRepository) GetPlace(ctx context.Context, name string) (_ domain.Place, err error) {
	defer obs.Time(ctx, "places.GetPlace")(&err)

	if s.DB == nil {
		return domain.Place{}, errors.New("sql place repository: DB is nil")
	}

	name = strings.TrimPrefix(strings.TrimSpace(name), "@")

	query := `
	SELECT
		name,
		address
	FROM places
	WHERE name = ?;
	`
	var p domain.Place
	var addr string
	err = s.DB.QueryRowContext(ctx, db.Rebind(s.Dialect, query), name).Scan(&p.Name, &addr)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Place{}, fmt.Errorf("get place %q: %w", name, ports.ErrPlaceNotFound)
	}
	if err != nil {
		return domain.Place{}, fmt.Errorf("get place %q: %w", name, err)
	}
	p.Address = domain.Location(addr)

	return p, nil
}
