package sim

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/castlesiege/internal/game/player"
)

// InputFunc returns the keys held for the next tick given the latest
// snapshot.
type InputFunc func(Snapshot) player.KeySet

// Loop drives a Simulation in real time on its own goroutine and publishes a
// snapshot after every tick.
//
// Invariant: the Simulation is only touched while mu is held.
type Loop struct {
	sim      *Simulation
	clock    *Clock
	interval time.Duration
	input    InputFunc
	logger   *zap.Logger

	mu     sync.Mutex
	paused bool
	snap   Snapshot
	done   chan struct{}
}

// NewLoop wraps s. A nil input steps with no keys held.
//
// Precondition: s and logger must be non-nil; interval > 0; maxDelta > 0.
func NewLoop(s *Simulation, interval, maxDelta time.Duration, input InputFunc, logger *zap.Logger) *Loop {
	if s == nil || logger == nil {
		panic("sim.NewLoop: simulation and logger must not be nil")
	}
	if interval <= 0 {
		panic("sim.NewLoop: interval must be > 0")
	}
	if input == nil {
		input = func(Snapshot) player.KeySet { return nil }
	}
	return &Loop{
		sim:      s,
		clock:    NewClock(time.Now(), maxDelta),
		interval: interval,
		input:    input,
		logger:   logger,
		snap:     s.Snapshot(),
		done:     make(chan struct{}),
	}
}

// Run ticks until ctx is cancelled. It blocks.
//
// Postcondition: Done() is closed when Run returns.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	l.logger.Info("simulation loop started", zap.Duration("interval", l.interval))
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("simulation loop stopped")
			return nil
		case now := <-ticker.C:
			l.Advance(now)
		}
	}
}

// Advance runs one iteration as if the ticker fired at now. While paused the
// clock still advances so resuming does not replay the pause.
func (l *Loop) Advance(now time.Time) []Notice {
	delta := l.clock.Advance(now)
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.paused {
		return nil
	}
	keys := l.input(l.snap)
	notes := l.sim.Step(delta, keys)
	l.snap = l.sim.Snapshot()
	return notes
}

// Snapshot returns the state published by the latest tick.
func (l *Loop) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snap
}

// Pause suspends stepping.
func (l *Loop) Pause() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.paused = true
}

// Resume continues stepping after Pause.
func (l *Loop) Resume() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.paused = false
}

// Paused reports whether stepping is suspended.
func (l *Loop) Paused() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.paused
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
