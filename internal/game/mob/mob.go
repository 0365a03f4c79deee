// Package mob provides hostile arena entities, their generation-indexed pool,
// the random spawner, and the deferred respawn queue.
package mob

import (
	"fmt"

	"github.com/cory-johannsen/castlesiege/internal/game/geom"
)

// ID is a generation-indexed handle into a Pool. A handle whose slot has been
// released never resolves again, even after the slot is reused.
type ID struct {
	Index uint32
	Gen   uint32
}

// String returns the handle as "index:gen".
func (id ID) String() string {
	return fmt.Sprintf("%d:%d", id.Index, id.Gen)
}

// Mob is a hostile entity chasing the player.
type Mob struct {
	// ID is assigned by Pool.Insert.
	ID ID
	// Pos is the mob's centre in arena pixels.
	Pos geom.Vec
	// HP is the current hit points; the mob dies when HP <= 0.
	HP float64
	// MaxHP is the HP rolled at spawn, used for health bars.
	MaxHP float64
	// Power is the damage dealt per second in melee.
	Power float64
	// Alive is cleared exactly once, when HP first drops to <= 0.
	Alive bool
	// Hue is a cosmetic tint in degrees [0, 360).
	Hue float64
}

// IsDead reports whether the mob has zero or fewer hit points.
func (m *Mob) IsDead() bool {
	return m.HP <= 0
}

// HPRatio returns HP/MaxHP clamped to [0, 1] for health-bar rendering.
func (m *Mob) HPRatio() float64 {
	if m.MaxHP <= 0 || m.HP <= 0 {
		return 0
	}
	if m.HP >= m.MaxHP {
		return 1
	}
	return m.HP / m.MaxHP
}
