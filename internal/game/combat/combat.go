// Package combat implements the real-time proximity combat between the player
// and the mobs chasing them.
package combat

import (
	"fmt"
	"strings"
)

// ChaseMode selects when mobs pursue the player.
type ChaseMode string

const (
	// ChaseAggro pursues only inside the aggro radius.
	ChaseAggro ChaseMode = "aggro"
	// ChaseAlways pursues from anywhere in the arena.
	ChaseAlways ChaseMode = "always"
)

// Config holds the combat distances and chase speed.
type Config struct {
	Mode ChaseMode
	// AggroRadius gates pursuit in ChaseAggro mode.
	AggroRadius float64
	// MeleeRadius gates the damage exchange.
	MeleeRadius float64
	// ChaseSpeed is the mob pursuit speed in px/s.
	ChaseSpeed float64
}

// DefaultConfig returns aggro 90, melee 30, chase speed 40.
func DefaultConfig() Config {
	return Config{
		Mode:        ChaseAggro,
		AggroRadius: 90,
		MeleeRadius: 30,
		ChaseSpeed:  40,
	}
}

// Validate checks the combat configuration invariants.
//
// Postcondition: Returns nil iff the mode is known, radii are >= 0,
// MeleeRadius <= AggroRadius and ChaseSpeed >= 0.
func (c Config) Validate() error {
	var errs []string
	if c.Mode != ChaseAggro && c.Mode != ChaseAlways {
		errs = append(errs, fmt.Sprintf("chase mode must be one of [aggro, always], got %q", c.Mode))
	}
	if c.AggroRadius < 0 || c.MeleeRadius < 0 {
		errs = append(errs, "radii must be >= 0")
	}
	if c.MeleeRadius > c.AggroRadius {
		errs = append(errs, fmt.Sprintf("melee radius %g must not exceed aggro radius %g", c.MeleeRadius, c.AggroRadius))
	}
	if c.ChaseSpeed < 0 {
		errs = append(errs, fmt.Sprintf("chase speed must be >= 0, got %g", c.ChaseSpeed))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
