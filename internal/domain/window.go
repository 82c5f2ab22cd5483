package domain

import (
	"errors"
	"fmt"
	"iter"
	"time"
)

var (
	ErrInvalidWindow   = errors.New("window start must not be after window end")
	ErrInvalidInterval = errors.New("window interval must be positive")
)

// TimeWindow is the [Start, End] range over which departures are sampled
// every Interval. Both bounds are absolute instants; the grid is computed
// on the time line, so a window may span a daylight-saving change.
type TimeWindow struct {
	Start    time.Time
	End      time.Time
	Interval time.Duration
}

func NewTimeWindow(start, end time.Time, interval time.Duration) (TimeWindow, error) {
	w := TimeWindow{Start: start, End: end, Interval: interval}
	if err := w.Validate(); err != nil {
		return TimeWindow{}, err
	}
	return w, nil
}

func (w TimeWindow) Validate() error {
	if w.Interval <= 0 {
		return fmt.Errorf("time window: interval=%s: %w", w.Interval, ErrInvalidInterval)
	}
	if w.Start.After(w.End) {
		return fmt.Errorf("time window: start=%s end=%s: %w",
			w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339), ErrInvalidWindow)
	}
	return nil
}

// Len returns the number of grid instants, or 0 for an invalid window.
func (w TimeWindow) Len() int {
	if w.Validate() != nil {
		return 0
	}
	return int(w.End.Sub(w.Start)/w.Interval) + 1
}

// Instants yields Start, Start+Interval, ... up to and including the last
// instant that is not after End. The sequence can be ranged over repeatedly.
func (w TimeWindow) Instants() iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		n := w.Len()
		for i := 0; i < n; i++ {
			if !yield(w.Start.Add(time.Duration(i) * w.Interval)) {
				return
			}
		}
	}
}
