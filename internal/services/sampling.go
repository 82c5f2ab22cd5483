package services

import (
	"context"
	"errors"
	"log"

	"golang.org/x/sync/errgroup"
)

var (
	ErrEmptyLocation = errors.New("origin and destination must be non-empty")
	ErrNoOrigins     = errors.New("at least one origin is required")
	ErrGridTooLarge  = errors.New("too many departure times to sample")
	ErrInvalidOnSite = errors.New("on-site duration must not be negative")
)

// sampleGrid evaluates n grid points with at most limit lookups in flight.
// Each point writes into its own slot, so the returned values keep grid
// order no matter which lookup finishes first. Points for which eval
// reports ok=false are dropped.
func sampleGrid[T any](
	ctx context.Context,
	n int,
	limit int,
	eval func(ctx context.Context, i int) (T, bool),
) ([]T, error) {
	slots := make([]T, n)
	found := make([]bool, n)

	var g errgroup.Group
	g.SetLimit(max(limit, 1))

	for i := 0; i < n; i++ {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			slots[i], found[i] = eval(ctx, i)
			return nil
		})
	}
	g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make([]T, 0, n)
	for i := range slots {
		if found[i] {
			out = append(out, slots[i])
		}
	}
	return out, nil
}

// checkGridSize rejects rows*cols above limit without forming the product,
// so it is safe to call before the grid exists. A limit of 0 disables it.
func checkGridSize(rows, cols, limit int) error {
	if limit > 0 && rows > 0 && cols > limit/rows {
		return ErrGridTooLarge
	}
	return nil
}

func orDefault(l *log.Logger) *log.Logger {
	if l == nil {
		return log.Default()
	}
	return l
}
