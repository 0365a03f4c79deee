package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/castlesiege/internal/game/combat"
	"github.com/cory-johannsen/castlesiege/internal/game/geom"
	"github.com/cory-johannsen/castlesiege/internal/game/mob"
	"github.com/cory-johannsen/castlesiege/internal/game/player"
)

func newPlayer(pos geom.Vec) *player.Player {
	return player.New(player.DefaultConfig(), pos)
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, combat.DefaultConfig().Validate())

	bad := combat.DefaultConfig()
	bad.Mode = "never"
	assert.Error(t, bad.Validate())

	bad = combat.DefaultConfig()
	bad.MeleeRadius = 100
	assert.Error(t, bad.Validate())
}

func TestResolve_OutOfAggro_NoMovement(t *testing.T) {
	p := newPlayer(geom.Vec{0, 0})
	pool := mob.NewPool(0)
	id := pool.Insert(mob.Mob{Pos: geom.Vec{200, 0}, HP: 40, MaxHP: 40, Power: 8, Alive: true})

	rep := combat.NewResolver(combat.DefaultConfig()).Resolve(p, pool, 1)
	m, _ := pool.Get(id)
	assert.Equal(t, geom.Vec{200, 0}, m.Pos)
	assert.Equal(t, 0, rep.Engaged)
}

func TestResolve_ChaseAlways_MovesFromAfar(t *testing.T) {
	cfg := combat.DefaultConfig()
	cfg.Mode = combat.ChaseAlways
	p := newPlayer(geom.Vec{0, 0})
	pool := mob.NewPool(0)
	id := pool.Insert(mob.Mob{Pos: geom.Vec{500, 0}, HP: 40, MaxHP: 40, Power: 8, Alive: true})

	combat.NewResolver(cfg).Resolve(p, pool, 0.5)
	m, _ := pool.Get(id)
	assert.InDelta(t, 480.0, m.Pos.X(), 1e-9)
}

func TestResolve_InAggro_ChasesWithoutDamage(t *testing.T) {
	p := newPlayer(geom.Vec{0, 0})
	pool := mob.NewPool(0)
	id := pool.Insert(mob.Mob{Pos: geom.Vec{0, 60}, HP: 40, MaxHP: 40, Power: 8, Alive: true})

	rep := combat.NewResolver(combat.DefaultConfig()).Resolve(p, pool, 0.05)
	m, _ := pool.Get(id)
	assert.InDelta(t, 58.0, m.Pos.Y(), 1e-9)
	assert.Equal(t, 40.0, m.HP)
	assert.Equal(t, 100.0, p.HP)
	assert.Empty(t, rep.Kills)
}

func TestResolve_Melee_SimultaneousExchange(t *testing.T) {
	p := newPlayer(geom.Vec{0, 0})
	pool := mob.NewPool(0)
	id := pool.Insert(mob.Mob{Pos: geom.Vec{20, 0}, HP: 40, MaxHP: 40, Power: 8, Alive: true})

	rep := combat.NewResolver(combat.DefaultConfig()).Resolve(p, pool, 0.5)
	m, _ := pool.Get(id)
	assert.Equal(t, 35.0, m.HP)
	assert.Equal(t, 96.0, p.HP)
	assert.Equal(t, 1, rep.Engaged)
	assert.Equal(t, 5.0, rep.DamageDealt)
	assert.Equal(t, 4.0, rep.DamageTaken)
}

func TestResolve_ZeroDistance_NoNaN(t *testing.T) {
	p := newPlayer(geom.Vec{100, 100})
	pool := mob.NewPool(0)
	id := pool.Insert(mob.Mob{Pos: geom.Vec{100, 100}, HP: 40, MaxHP: 40, Power: 8, Alive: true})

	combat.NewResolver(combat.DefaultConfig()).Resolve(p, pool, 0.05)
	m, _ := pool.Get(id)
	assert.Equal(t, geom.Vec{100, 100}, m.Pos, "coincident mob must not move")
	assert.Less(t, m.HP, 40.0, "coincident mob is still in melee range")
}

func TestResolve_PlayerHPFloorsAtZero(t *testing.T) {
	p := newPlayer(geom.Vec{0, 0})
	p.HP = 1
	pool := mob.NewPool(0)
	pool.Insert(mob.Mob{Pos: geom.Vec{5, 0}, HP: 1000, MaxHP: 1000, Power: 50, Alive: true})

	combat.NewResolver(combat.DefaultConfig()).Resolve(p, pool, 1)
	assert.Equal(t, 0.0, p.HP)
}

// Scenario: hp 40 vs power 10 at delta 1 dies on the 4th tick, exactly once.
func TestResolve_KillOnFourthTick(t *testing.T) {
	p := newPlayer(geom.Vec{100, 100})
	p.Power = 10
	pool := mob.NewPool(0)
	id := pool.Insert(mob.Mob{Pos: geom.Vec{110, 100}, HP: 40, MaxHP: 40, Power: 1, Alive: true})
	r := combat.NewResolver(combat.DefaultConfig())

	for tick := 1; tick <= 3; tick++ {
		rep := r.Resolve(p, pool, 1)
		require.Empty(t, rep.Kills, "tick %d", tick)
	}
	rep := r.Resolve(p, pool, 1)
	require.Len(t, rep.Kills, 1)
	m, _ := pool.Get(id)
	assert.False(t, m.Alive)
	assert.Equal(t, m.Pos, rep.Kills[0].Pos)

	assert.Empty(t, r.Resolve(p, pool, 1).Kills, "a dead mob never dies twice")
}

func TestResolve_PanicsOnNegativeDelta(t *testing.T) {
	assert.Panics(t, func() {
		combat.NewResolver(combat.DefaultConfig()).Resolve(newPlayer(geom.Vec{}), mob.NewPool(0), -1)
	})
}

// Property: once a mob is dead, no later tick changes its HP, position or
// liveness.
func TestProperty_Resolve_DeathIsOneWay(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		p := newPlayer(geom.Vec{300, 300})
		p.Power = rapid.Float64Range(1, 200).Draw(rt, "power")
		pool := mob.NewPool(0)
		id := pool.Insert(mob.Mob{
			Pos:   geom.Vec{300 + rapid.Float64Range(-25, 25).Draw(rt, "dx"), 300},
			HP:    rapid.Float64Range(1, 60).Draw(rt, "hp"),
			Power: 1,
			Alive: true,
		})
		r := combat.NewResolver(combat.DefaultConfig())
		var dead *mob.Mob
		for i := 0; i < 200; i++ {
			r.Resolve(p, pool, rapid.Float64Range(0, 0.05).Draw(rt, "delta"))
			m, _ := pool.Get(id)
			if dead != nil {
				if m.Alive || m.HP != dead.HP || m.Pos != dead.Pos {
					rt.Fatalf("dead mob changed: %+v -> %+v", *dead, *m)
				}
				continue
			}
			if !m.Alive {
				snap := *m
				dead = &snap
			}
		}
	})
}
