package activity

import (
	"time"
)

// Clock is a monotonic millisecond counter. Readings wrap at the counter
// period, so intervals must be computed with TicksDiff, never plain
// subtraction.
type Clock interface {
	TicksMs() int64
}

// ticksPeriod is the counter period: a 30-bit millisecond counter, wrapping
// roughly every 12 days.
const ticksPeriod = 1 << 30

// TicksDiff returns the signed difference a−b between two counter readings.
// The result is correct for any real interval shorter than half the period,
// including across a wrap.
func TicksDiff(a, b int64) int64 {
	d := (a - b) & (ticksPeriod - 1)
	if d >= ticksPeriod/2 {
		d -= ticksPeriod
	}
	return d
}

type monotonicClock struct {
	start time.Time
}

// NewMonotonicClock returns a Clock backed by the runtime monotonic clock.
func NewMonotonicClock() Clock {
	return &monotonicClock{start: time.Now()}
}

func (c *monotonicClock) TicksMs() int64 {
	return time.Since(c.start).Milliseconds() & (ticksPeriod - 1)
}
