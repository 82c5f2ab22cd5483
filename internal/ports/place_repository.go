package ports

import (
	"context"
	"departure-optimizer-service/internal/domain"
	"errors"
)

var ErrPlaceNotFound = errors.New("place not found")

// Port: a boundary for retrieving saved places from a data source.
type PlaceRepository interface {
	// Retrieve all saved places ordered by name.
	ListPlaces(ctx context.Context) ([]domain.Place, error)
	// Retrieve one place by name; returns ErrPlaceNotFound when absent.
	GetPlace(ctx context.Context, name string) (domain.Place, error)
}
