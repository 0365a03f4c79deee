package combat

import (
	"fmt"
	"math"

	"github.com/cory-johannsen/castlesiege/internal/game/geom"
	"github.com/cory-johannsen/castlesiege/internal/game/mob"
	"github.com/cory-johannsen/castlesiege/internal/game/player"
)

// Kill records a mob that died this tick.
type Kill struct {
	// Mob is a copy of the mob at the moment of death.
	Mob mob.Mob
	// Pos is where the mob died; loot drops here.
	Pos geom.Vec
}

// Report summarizes one resolution pass.
type Report struct {
	Kills       []Kill
	DamageDealt float64
	DamageTaken float64
	// Engaged is the number of mobs inside melee range this tick.
	Engaged int
}

// Resolver runs the per-tick chase and damage exchange.
type Resolver struct {
	cfg Config
}

// NewResolver creates a Resolver.
//
// Precondition: cfg passes Validate.
func NewResolver(cfg Config) *Resolver {
	return &Resolver{cfg: cfg}
}

// Resolve advances every live mob for delta seconds:
//  1. mobs inside the aggro radius (any distance in ChaseAlways) step toward
//     the player without overshooting; a mob on the player's exact position
//     does not move;
//  2. mobs that started the tick inside the melee radius trade damage with
//     the player simultaneously, scaled by delta;
//  3. mobs whose HP reaches <= 0 are marked dead and reported.
//
// Dead mobs are left in the pool for the caller to release; they are never
// revisited because Alive is checked first.
//
// Precondition: delta >= 0; p and pool must be non-nil.
// Postcondition: p.HP >= 0; every reported Kill has Alive == false.
func (r *Resolver) Resolve(p *player.Player, pool *mob.Pool, delta float64) Report {
	if delta < 0 || math.IsNaN(delta) {
		panic(fmt.Sprintf("combat.Resolver.Resolve: delta must be >= 0, got %g", delta))
	}
	var rep Report
	pool.Each(func(m *mob.Mob) {
		if !m.Alive {
			return
		}
		dir, dist, ok := geom.Direction(m.Pos, p.Pos)
		if r.pursues(dist) && ok {
			m.Pos = m.Pos.Add(dir.Mul(math.Min(r.cfg.ChaseSpeed*delta, dist)))
		}
		if dist < r.cfg.MeleeRadius {
			rep.Engaged++
			dealt := p.Power * delta
			taken := m.Power * delta
			m.HP -= dealt
			p.ApplyDamage(taken)
			rep.DamageDealt += dealt
			rep.DamageTaken += taken
		}
		if m.IsDead() {
			m.Alive = false
			rep.Kills = append(rep.Kills, Kill{Mob: *m, Pos: m.Pos})
		}
	})
	return rep
}

func (r *Resolver) pursues(dist float64) bool {
	return r.cfg.Mode == ChaseAlways || dist < r.cfg.AggroRadius
}
