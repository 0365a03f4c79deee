// Package player provides the player entity and keyboard-driven movement.
package player

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/castlesiege/internal/game/geom"
)

// Config holds the player's starting stats and movement constants.
type Config struct {
	HP     float64
	Armor  float64
	Power  float64
	Speed  float64
	Radius float64
}

// DefaultConfig returns HP 100, armor 0, power 10, speed 160 px/s, radius 12.
func DefaultConfig() Config {
	return Config{HP: 100, Armor: 0, Power: 10, Speed: 160, Radius: 12}
}

// Validate checks the player configuration invariants.
func (c Config) Validate() error {
	var errs []string
	if c.HP <= 0 {
		errs = append(errs, fmt.Sprintf("hp must be > 0, got %g", c.HP))
	}
	if c.Armor < 0 || c.Power < 0 {
		errs = append(errs, "armor and power must be >= 0")
	}
	if c.Speed <= 0 {
		errs = append(errs, fmt.Sprintf("speed must be > 0, got %g", c.Speed))
	}
	if c.Radius < 0 {
		errs = append(errs, fmt.Sprintf("radius must be >= 0, got %g", c.Radius))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Player is the single player entity. It is never destroyed; HP floors at 0.
type Player struct {
	Pos    geom.Vec
	HP     float64
	Armor  float64
	Power  float64
	Speed  float64
	Radius float64
}

// New places a player built from cfg at pos.
func New(cfg Config, pos geom.Vec) *Player {
	return &Player{
		Pos:    pos,
		HP:     cfg.HP,
		Armor:  cfg.Armor,
		Power:  cfg.Power,
		Speed:  cfg.Speed,
		Radius: cfg.Radius,
	}
}

// Position returns the player's centre.
func (p *Player) Position() geom.Vec { return p.Pos }

// AddArmor credits a loot armor bonus.
func (p *Player) AddArmor(bonus float64) { p.Armor += bonus }

// ApplyDamage reduces HP by amount, flooring at zero.
//
// Precondition: amount >= 0.
// Postcondition: HP >= 0.
func (p *Player) ApplyDamage(amount float64) {
	p.HP -= amount
	if p.HP < 0 {
		p.HP = 0
	}
}

// Move advances the player along the direction held in keys for delta
// seconds and clamps the result inside bounds.
//
// Postcondition: bounds.Contains(p.Pos, p.Radius) when the arena can hold the
// player.
func (p *Player) Move(keys KeySet, delta float64, bounds geom.Bounds) {
	v := Velocity(keys)
	p.Pos = bounds.Clamp(p.Pos.Add(v.Mul(p.Speed*delta)), p.Radius)
}
