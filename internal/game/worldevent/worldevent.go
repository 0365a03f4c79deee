// Package worldevent implements the timed castle event that periodically
// buffs the player.
package worldevent

import (
	"fmt"
	"math"
	"strings"
)

// Phase is the scheduler state.
type Phase int

const (
	// Peaceful is the cooldown between events.
	Peaceful Phase = iota
	// Active is the event window during which the power bonus applies.
	Active
)

// String returns a human-readable phase label.
func (p Phase) String() string {
	switch p {
	case Peaceful:
		return "peaceful"
	case Active:
		return "active"
	default:
		return "unknown"
	}
}

// Config holds the event timings, bonus and status labels.
type Config struct {
	// InitialDelay is the countdown before the first event.
	InitialDelay float64
	// PeacefulDuration is the countdown after an event ends.
	PeacefulDuration float64
	// ActiveDuration is how long an event lasts.
	ActiveDuration float64
	// PowerBonus is added on entry to Active and removed on exit.
	PowerBonus float64
	// ActiveLabel is the status shown while the event runs.
	ActiveLabel string
	// PeacefulLabel is the status shown between events.
	PeacefulLabel string
}

// DefaultConfig returns the castle gate event: first opening after 45s, open
// for 30s, closed for 45s, +5 power while open.
func DefaultConfig() Config {
	return Config{
		InitialDelay:     45,
		PeacefulDuration: 45,
		ActiveDuration:   30,
		PowerBonus:       5,
		ActiveLabel:      "Castle gate opened!",
		PeacefulLabel:    "Castle peace",
	}
}

// Validate checks the event configuration invariants.
func (c Config) Validate() error {
	var errs []string
	if c.InitialDelay <= 0 || c.PeacefulDuration <= 0 || c.ActiveDuration <= 0 {
		errs = append(errs, "event durations must be > 0")
	}
	if c.PowerBonus < 0 {
		errs = append(errs, fmt.Sprintf("event power bonus must be >= 0, got %g", c.PowerBonus))
	}
	if c.ActiveLabel == "" || c.PeacefulLabel == "" {
		errs = append(errs, "event labels must not be empty")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Transition describes one phase change.
type Transition struct {
	From Phase
	To   Phase
	// PowerDelta is +PowerBonus on entry to Active and -PowerBonus on exit.
	PowerDelta float64
	// Label is the new status label.
	Label string
}

// Scheduler is a time-driven two-state machine alternating Peaceful and
// Active.
//
// Invariant: Timer() > 0 between ticks; phases strictly alternate.
type Scheduler struct {
	cfg   Config
	phase Phase
	timer float64
	label string
}

// NewScheduler returns a Scheduler in Peaceful with the initial countdown.
//
// Precondition: cfg passes Validate.
func NewScheduler(cfg Config) *Scheduler {
	return &Scheduler{
		cfg:   cfg,
		phase: Peaceful,
		timer: cfg.InitialDelay,
		label: cfg.PeacefulLabel,
	}
}

// Tick advances the countdown by delta and performs at most one transition.
//
// Precondition: delta >= 0.
// Postcondition: ok is true iff the phase changed; the new timer is the full
// duration of the entered phase.
func (s *Scheduler) Tick(delta float64) (tr Transition, ok bool) {
	if delta < 0 || math.IsNaN(delta) {
		panic(fmt.Sprintf("worldevent.Scheduler.Tick: delta must be >= 0, got %g", delta))
	}
	s.timer -= delta
	if s.timer > 0 {
		return Transition{}, false
	}
	switch s.phase {
	case Peaceful:
		s.phase = Active
		s.timer = s.cfg.ActiveDuration
		s.label = s.cfg.ActiveLabel
		return Transition{From: Peaceful, To: Active, PowerDelta: s.cfg.PowerBonus, Label: s.label}, true
	default:
		s.phase = Peaceful
		s.timer = s.cfg.PeacefulDuration
		s.label = s.cfg.PeacefulLabel
		return Transition{From: Active, To: Peaceful, PowerDelta: -s.cfg.PowerBonus, Label: s.label}, true
	}
}

// SetLabel overrides the status label of the current phase.
func (s *Scheduler) SetLabel(label string) {
	if label != "" {
		s.label = label
	}
}

// Phase returns the current phase.
func (s *Scheduler) Phase() Phase { return s.phase }

// Active reports whether the event is running.
func (s *Scheduler) Active() bool { return s.phase == Active }

// Timer returns the seconds until the next transition.
func (s *Scheduler) Timer() float64 { return s.timer }

// Label returns the current status label.
func (s *Scheduler) Label() string { return s.label }
