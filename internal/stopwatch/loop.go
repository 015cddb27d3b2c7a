package stopwatch

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is roughly 60 refreshes per second.
const DefaultInterval = 16 * time.Millisecond

// Loop hosts an Engine for callers that are not a sequential event loop.
// A ticker goroutine refreshes elapsed time while running; Stop and Reset
// cancel it and wait for it to exit before returning.
type Loop struct {
	mu       sync.Mutex
	engine   *Engine
	interval time.Duration
	cancel   context.CancelFunc
	done     chan struct{}
	subs     []func(Snapshot)
}

// NewLoop wraps engine. A non-positive interval uses DefaultInterval.
func NewLoop(engine *Engine, interval time.Duration) *Loop {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Loop{engine: engine, interval: interval}
}

// Subscribe registers fn to receive a snapshot after every mutation and
// applied refresh. Callbacks run outside the loop's lock but may run on the
// ticker goroutine, so they must not call Stop or Reset.
func (l *Loop) Subscribe(fn func(Snapshot)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.subs = append(l.subs, fn)
}

// Start starts the engine and its refresh goroutine. Cancelling ctx stops
// the engine as Stop would.
func (l *Loop) Start(ctx context.Context) {
	l.mu.Lock()
	if l.engine.Running() {
		l.mu.Unlock()
		return
	}
	l.engine.Start()
	epoch := l.engine.Epoch()
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	l.cancel, l.done = cancel, done
	snap, subs := l.snapshotLocked()
	l.mu.Unlock()

	go l.run(ctx, epoch, done)
	notify(subs, snap)
}

func (l *Loop) run(ctx context.Context, epoch uint64, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			l.stopCancelled(epoch)
			return
		case <-ticker.C:
			l.mu.Lock()
			applied := l.engine.Refresh(epoch)
			snap, subs := l.snapshotLocked()
			l.mu.Unlock()
			if !applied {
				return
			}
			notify(subs, snap)
		}
	}
}

// stopCancelled freezes the engine when the schedule that owned ctx is still
// current, so a later Start begins a fresh refresh goroutine.
func (l *Loop) stopCancelled(epoch uint64) {
	l.mu.Lock()
	if l.engine.Epoch() != epoch {
		l.mu.Unlock()
		return
	}
	l.engine.Refresh(epoch)
	l.engine.Stop()
	cancel := l.cancel
	l.cancel, l.done = nil, nil
	snap, subs := l.snapshotLocked()
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	notify(subs, snap)
}

// Stop freezes the engine. When it returns no refresh is in flight.
func (l *Loop) Stop() {
	l.mu.Lock()
	l.engine.Stop()
	snap, subs := l.snapshotLocked()
	cancel, done := l.cancel, l.done
	l.cancel, l.done = nil, nil
	l.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}
	notify(subs, snap)
}

// Reset stops the engine, waits for the refresh goroutine, then clears it.
func (l *Loop) Reset() {
	l.mu.Lock()
	l.engine.Stop()
	cancel, done := l.cancel, l.done
	l.cancel, l.done = nil, nil
	l.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}

	l.mu.Lock()
	l.engine.Reset()
	snap, subs := l.snapshotLocked()
	l.mu.Unlock()
	notify(subs, snap)
}

// Lap records a lap boundary if running.
func (l *Loop) Lap() {
	l.mu.Lock()
	l.engine.Lap()
	snap, subs := l.snapshotLocked()
	l.mu.Unlock()
	notify(subs, snap)
}

// Snapshot returns the current engine state.
func (l *Loop) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.engine.Snapshot()
}

func (l *Loop) snapshotLocked() (Snapshot, []func(Snapshot)) {
	subs := make([]func(Snapshot), len(l.subs))
	copy(subs, l.subs)
	return l.engine.Snapshot(), subs
}

func notify(subs []func(Snapshot), snap Snapshot) {
	for _, fn := range subs {
		fn(snap)
	}
}
