package player_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/castlesiege/internal/game/geom"
	"github.com/cory-johannsen/castlesiege/internal/game/player"
)

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, player.DefaultConfig().Validate())
	bad := player.DefaultConfig()
	bad.Speed = 0
	assert.Error(t, bad.Validate())
}

func TestVelocity(t *testing.T) {
	cases := []struct {
		name string
		keys []string
		want geom.Vec
	}{
		{"none", nil, geom.Vec{0, 0}},
		{"up", []string{player.KeyW}, geom.Vec{0, -1}},
		{"arrow down", []string{player.ArrowDown}, geom.Vec{0, 1}},
		{"left", []string{player.KeyA}, geom.Vec{-1, 0}},
		{"right arrow", []string{player.ArrowRight}, geom.Vec{1, 0}},
		{"diagonal", []string{player.KeyW, player.KeyD}, geom.Vec{1, -1}},
		{"opposite cancel", []string{player.KeyA, player.ArrowRight}, geom.Vec{0, 0}},
		{"both up keys", []string{player.KeyW, player.ArrowUp}, geom.Vec{0, -1}},
		{"unrelated", []string{"Space"}, geom.Vec{0, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, player.Velocity(player.NewKeySet(tc.keys...)))
		})
	}
}

func TestKeySet_PressRelease(t *testing.T) {
	ks := player.NewKeySet()
	ks.Press(player.KeyW)
	assert.True(t, ks.Has(player.KeyW))
	ks.Release(player.KeyW)
	assert.False(t, ks.Has(player.KeyW))
	var nilSet player.KeySet
	assert.False(t, nilSet.Has(player.KeyW))
}

func TestMove_ScalesBySpeedAndDelta(t *testing.T) {
	p := player.New(player.DefaultConfig(), geom.Vec{480, 300})
	p.Move(player.NewKeySet(player.KeyD), 0.05, geom.NewBounds(960, 600))
	assert.InDelta(t, 488.0, p.Pos.X(), 1e-9)
	assert.InDelta(t, 300.0, p.Pos.Y(), 1e-9)
}

func TestMove_ClampsAtEdge(t *testing.T) {
	p := player.New(player.DefaultConfig(), geom.Vec{13, 300})
	p.Move(player.NewKeySet(player.KeyA), 0.05, geom.NewBounds(960, 600))
	assert.Equal(t, 12.0, p.Pos.X())
}

func TestApplyDamage_FloorsAtZero(t *testing.T) {
	p := player.New(player.DefaultConfig(), geom.Vec{})
	p.ApplyDamage(150)
	assert.Equal(t, 0.0, p.HP)
}

// Property: for every delta in [0, cap] the player stays inside the arena.
func TestProperty_Move_StaysInBounds(t *testing.T) {
	codes := []string{player.KeyW, player.KeyA, player.KeyS, player.KeyD,
		player.ArrowUp, player.ArrowDown, player.ArrowLeft, player.ArrowRight}
	rapid.Check(t, func(rt *rapid.T) {
		b := geom.NewBounds(960, 600)
		p := player.New(player.DefaultConfig(), geom.Vec{480, 300})
		steps := rapid.IntRange(1, 500).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			held := rapid.SliceOfDistinct(rapid.SampledFrom(codes), func(s string) string { return s }).Draw(rt, "keys")
			delta := rapid.Float64Range(0, 0.05).Draw(rt, "delta")
			p.Move(player.NewKeySet(held...), delta, b)
			if !b.Contains(p.Pos, p.Radius) {
				rt.Fatalf("player at %v escaped arena", p.Pos)
			}
		}
	})
}
