package metrics

import (
	"fmt"
	"iter"
	"time"
)

// Window is one closed-open fetch interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Duration returns the window length.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

func (w Window) String() string {
	return fmt.Sprintf("[%s, %s)", w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))
}

// Chunks splits [start, end) into contiguous sub-windows of at most max
// duration. The sequence is lazy and can be iterated more than once. The
// first window starts at start, consecutive windows share a boundary, and
// the last window ends exactly at end. start == end yields an empty
// sequence; end before start is a usage error.
func Chunks(start, end time.Time, max time.Duration) (iter.Seq[Window], error) {
	if max <= 0 {
		return nil, fmt.Errorf("invalid chunk duration %v: must be positive", max)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("invalid interval: end %s before start %s",
			end.Format(time.RFC3339), start.Format(time.RFC3339))
	}

	return func(yield func(Window) bool) {
		for cur := start; cur.Before(end); {
			next := cur.Add(max)
			if next.After(end) {
				next = end
			}
			if !yield(Window{Start: cur, End: next}) {
				return
			}
			cur = next
		}
	}, nil
}
