// Package progression tracks experience, levels and the per-level stat growth
// granted to the player.
package progression

import (
	"fmt"
	"math"
	"strings"
)

// Config holds the leveling curve.
type Config struct {
	// InitialThreshold is the XP required to leave level 1.
	InitialThreshold int
	// Growth multiplies the threshold after each level-up; the result is rounded.
	Growth float64
	// PowerPerLevel is added to player power on each level-up.
	PowerPerLevel float64
	// ArmorPerLevel is added to player armor on each level-up.
	ArmorPerLevel float64
}

// DefaultConfig returns the stock curve: 100 XP, ×1.3 growth, +2 power and +1
// armor per level.
func DefaultConfig() Config {
	return Config{
		InitialThreshold: 100,
		Growth:           1.3,
		PowerPerLevel:    2,
		ArmorPerLevel:    1,
	}
}

// Validate checks the curve invariants.
//
// Postcondition: Returns nil iff InitialThreshold >= 1, Growth > 1 and the
// per-level increments are >= 0.
func (c Config) Validate() error {
	var errs []string
	if c.InitialThreshold < 1 {
		errs = append(errs, fmt.Sprintf("initial threshold must be >= 1, got %d", c.InitialThreshold))
	}
	if c.Growth <= 1 {
		errs = append(errs, fmt.Sprintf("growth must be > 1, got %g", c.Growth))
	}
	if c.PowerPerLevel < 0 || c.ArmorPerLevel < 0 {
		errs = append(errs, "per-level increments must be >= 0")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// LevelUp reports the outcome of a GainXP call.
type LevelUp struct {
	// Levels is the number of levels gained; 0 when no threshold was crossed.
	Levels int
	// Power is the total power increase to apply.
	Power float64
	// Armor is the total armor increase to apply.
	Armor float64
}

// Tracker accumulates experience and computes level-ups.
//
// Invariant: Level() >= 1; 0 <= XP() < Threshold(); Threshold() strictly
// increases with each level.
type Tracker struct {
	cfg       Config
	level     int
	xp        float64
	threshold int
}

// NewTracker returns a Tracker at level 1 with no experience.
//
// Precondition: cfg passes Validate.
func NewTracker(cfg Config) *Tracker {
	return &Tracker{cfg: cfg, level: 1, threshold: cfg.InitialThreshold}
}

// GainXP adds amount and resolves every level-up it causes. Each level
// consumes the current threshold before the threshold grows for the next.
//
// Precondition: amount >= 0; panics otherwise.
// Postcondition: XP() < Threshold(); the returned LevelUp lists the stat
// growth the caller must apply.
func (t *Tracker) GainXP(amount float64) LevelUp {
	if amount < 0 || math.IsNaN(amount) {
		panic(fmt.Sprintf("progression.Tracker.GainXP: amount must be >= 0, got %g", amount))
	}
	t.xp += amount
	var up LevelUp
	for t.xp >= float64(t.threshold) {
		t.xp -= float64(t.threshold)
		t.level++
		t.threshold = t.next(t.threshold)
		up.Levels++
		up.Power += t.cfg.PowerPerLevel
		up.Armor += t.cfg.ArmorPerLevel
	}
	return up
}

// next grows the threshold, guaranteeing strict increase even when rounding
// would stall it.
func (t *Tracker) next(cur int) int {
	n := int(math.Round(float64(cur) * t.cfg.Growth))
	if n <= cur {
		n = cur + 1
	}
	return n
}

// Level returns the current level.
func (t *Tracker) Level() int { return t.level }

// XP returns the experience accumulated toward the next level.
func (t *Tracker) XP() float64 { return t.xp }

// Threshold returns the XP required for the next level.
func (t *Tracker) Threshold() int { return t.threshold }
