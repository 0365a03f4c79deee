package server

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/castlesiege/internal/frontend/ansi"
	"github.com/cory-johannsen/castlesiege/internal/frontend/hud"
	"github.com/cory-johannsen/castlesiege/internal/observability"
	"github.com/cory-johannsen/castlesiege/internal/sim"
)

// LoopService runs a sim.Loop until stopped.
type LoopService struct {
	loop    *sim.Loop
	mu      sync.Mutex
	cancel  context.CancelFunc
	stopped bool
}

// NewLoopService wraps loop.
//
// Precondition: loop must be non-nil.
func NewLoopService(loop *sim.Loop) *LoopService {
	if loop == nil {
		panic("server.NewLoopService: loop must not be nil")
	}
	return &LoopService{loop: loop}
}

// Start runs the loop and blocks until Stop. A service stopped before it
// started returns immediately.
func (s *LoopService) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		cancel()
		return nil
	}
	s.cancel = cancel
	s.mu.Unlock()
	return s.loop.Run(ctx)
}

// Stop cancels the loop and waits for it to return. Safe to call before
// Start and more than once.
func (s *LoopService) Stop() {
	s.mu.Lock()
	s.stopped = true
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()
	if cancel == nil {
		return
	}
	cancel()
	<-s.loop.Done()
}

// StatusService reports the loop state: a structured log line every
// interval and, when out is non-nil, the HUD and each notice as coloured text.
type StatusService struct {
	loop          *sim.Loop
	sim           *sim.Simulation
	interval      time.Duration
	inventorySize int
	logger        *zap.Logger
	out           io.Writer

	notices chan sim.Notice
	done    chan struct{}
	once    sync.Once
}

// NewStatusService builds a StatusService.
//
// Precondition: loop, s and logger must be non-nil; interval > 0.
func NewStatusService(loop *sim.Loop, s *sim.Simulation, interval time.Duration, inventorySize int, logger *zap.Logger, out io.Writer) *StatusService {
	if loop == nil || s == nil || logger == nil {
		panic("server.NewStatusService: loop, simulation and logger must not be nil")
	}
	if interval <= 0 {
		panic("server.NewStatusService: interval must be > 0")
	}
	return &StatusService{
		loop:          loop,
		sim:           s,
		interval:      interval,
		inventorySize: inventorySize,
		logger:        logger,
		out:           out,
		notices:       make(chan sim.Notice, 64),
		done:          make(chan struct{}),
	}
}

// Start reports until Stop.
func (s *StatusService) Start() error {
	s.sim.Subscribe(s.notices)
	defer s.sim.Unsubscribe(s.notices)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return nil
		case n := <-s.notices:
			if s.out != nil {
				fmt.Fprintln(s.out, ansi.RenderNotice(n))
			}
		case <-ticker.C:
			s.Report()
		}
	}
}

// Report emits one status line immediately.
func (s *StatusService) Report() {
	snap := s.loop.Snapshot()
	s.logger.Info("status", observability.StatusFields(snap)...)
	if s.out != nil {
		fmt.Fprint(s.out, ansi.RenderHUD(hud.FromSnapshot(snap, s.inventorySize)))
	}
}

// Stop ends reporting. Safe to call more than once.
func (s *StatusService) Stop() {
	s.once.Do(func() { close(s.done) })
}
