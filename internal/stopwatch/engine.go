// Package stopwatch holds the timing model: running state, elapsed time,
// lap boundaries and the values derived from them.
//
// Engine is meant to be owned by a single sequential context (for example a
// bubbletea Update loop). Loop wraps an Engine for hosts that refresh it from
// a goroutine.
package stopwatch

import "time"

// Snapshot is a read-only copy of engine state handed to renderers.
type Snapshot struct {
	Running bool
	Elapsed int64 // milliseconds since last reset, excluding paused time
	LastLap int64 // elapsed at the most recent lap boundary, 0 if none
	Laps    []int64
}

// Engine tracks elapsed time and lap boundaries for one stopwatch session.
// It is not safe for concurrent use.
type Engine struct {
	clock   Clock
	running bool
	elapsed int64
	lastLap int64
	laps    []int64
	origin  time.Time

	// epoch identifies the current refresh schedule. Every Start, Stop and
	// Reset moves it forward so ticks scheduled earlier are rejected.
	epoch uint64
}

// New returns a zeroed engine. A nil clock falls back to SystemClock.
func New(clock Clock) *Engine {
	if clock == nil {
		clock = SystemClock
	}
	return &Engine{clock: clock}
}

// Start begins accumulating time, continuing from the frozen elapsed value.
// Calling Start while running does nothing.
func (e *Engine) Start() {
	if e.running {
		return
	}
	e.running = true
	e.origin = e.clock.Now().Add(-time.Duration(e.elapsed) * time.Millisecond)
	e.epoch++
}

// Stop freezes elapsed time at its last refreshed value and invalidates any
// pending refresh. Calling Stop while stopped does nothing.
func (e *Engine) Stop() {
	if !e.running {
		return
	}
	e.running = false
	e.epoch++
}

// Reset stops the engine and clears elapsed time and laps.
func (e *Engine) Reset() {
	e.Stop()
	e.elapsed = 0
	e.lastLap = 0
	e.laps = nil
	e.origin = time.Time{}
	e.epoch++
}

// Lap records the current elapsed time as a lap boundary.
// Laps can only be recorded while running; otherwise Lap is ignored.
func (e *Engine) Lap() {
	if !e.running {
		return
	}
	e.laps = append(e.laps, e.elapsed)
	e.lastLap = e.elapsed
}

// Refresh recomputes elapsed time from the clock when epoch is the engine's
// current refresh epoch and the engine is running. It reports whether the
// refresh was applied; false means the caller's schedule has been cancelled.
func (e *Engine) Refresh(epoch uint64) bool {
	if !e.running || epoch != e.epoch {
		return false
	}
	now := e.clock.Now().Sub(e.origin).Milliseconds()
	if now > e.elapsed {
		e.elapsed = now
	}
	return true
}

// Epoch returns the token a refresh schedule must present to Refresh.
func (e *Engine) Epoch() uint64 { return e.epoch }

func (e *Engine) Running() bool { return e.running }

func (e *Engine) Elapsed() int64 { return e.elapsed }

func (e *Engine) LastLap() int64 { return e.lastLap }

func (e *Engine) LapCount() int { return len(e.laps) }

// Laps returns a copy of the cumulative lap boundaries in recording order.
func (e *Engine) Laps() []int64 {
	if len(e.laps) == 0 {
		return nil
	}
	out := make([]int64, len(e.laps))
	copy(out, e.laps)
	return out
}

// CurrentLapElapsed returns time accrued since the most recent lap boundary,
// or the total elapsed time when no lap has been recorded.
func (e *Engine) CurrentLapElapsed() int64 {
	return e.elapsed - e.lastLap
}

// LapDuration returns the interval length of lap i. Out of range indexes
// yield 0.
func (e *Engine) LapDuration(i int) int64 {
	return LapDuration(e.laps, i)
}

// LapProgress returns how far the current lap is through its current minute,
// in [0, 1).
func (e *Engine) LapProgress() float64 {
	return float64(e.CurrentLapElapsed()%60000) / 60000
}

// Snapshot copies the engine state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Running: e.running,
		Elapsed: e.elapsed,
		LastLap: e.lastLap,
		Laps:    e.Laps(),
	}
}

// LapDuration returns laps[i]-laps[i-1], or laps[0] for the first lap.
func LapDuration(laps []int64, i int) int64 {
	if i < 0 || i >= len(laps) {
		return 0
	}
	if i == 0 {
		return laps[0]
	}
	return laps[i] - laps[i-1]
}

// CurrentLapElapsed returns the time accrued since the snapshot's last lap.
func (s Snapshot) CurrentLapElapsed() int64 {
	return s.Elapsed - s.LastLap
}
