package stopwatch

import "time"

// Clock provides the current instant.
// Tests substitute a manual clock to drive elapsed time deterministically.
type Clock interface {
	Now() time.Time
}

// SystemClock is the default Clock backed by time.Now, which carries a
// monotonic reading unaffected by wall-clock adjustments.
var SystemClock Clock = systemClock{}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now()
}
