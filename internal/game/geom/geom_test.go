package geom_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/castlesiege/internal/game/geom"
)

func TestNewBounds_PanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { geom.NewBounds(0, 10) })
	assert.Panics(t, func() { geom.NewBounds(10, -1) })
}

func TestBounds_Clamp_InsetByRadius(t *testing.T) {
	b := geom.NewBounds(100, 50)
	got := b.Clamp(geom.Vec{-20, 80}, 5)
	assert.Equal(t, geom.Vec{5, 45}, got)
}

func TestBounds_Clamp_TooSmallArenaCentres(t *testing.T) {
	b := geom.NewBounds(8, 100)
	got := b.Clamp(geom.Vec{1, 50}, 10)
	assert.Equal(t, 4.0, got.X())
}

func TestDirection_ZeroDistance(t *testing.T) {
	p := geom.Vec{3, 4}
	dir, dist, ok := geom.Direction(p, p)
	assert.False(t, ok)
	assert.Equal(t, 0.0, dist)
	assert.Equal(t, geom.Vec{}, dir)
}

func TestDirection_Unit(t *testing.T) {
	dir, dist, ok := geom.Direction(geom.Vec{0, 0}, geom.Vec{3, 4})
	assert.True(t, ok)
	assert.InDelta(t, 5.0, dist, 1e-9)
	assert.InDelta(t, 1.0, dir.Len(), 1e-9)
}

func TestProperty_Clamp_AlwaysInside(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w := rapid.Float64Range(50, 2000).Draw(rt, "w")
		h := rapid.Float64Range(50, 2000).Draw(rt, "h")
		r := rapid.Float64Range(0, 20).Draw(rt, "r")
		x := rapid.Float64Range(-1e6, 1e6).Draw(rt, "x")
		y := rapid.Float64Range(-1e6, 1e6).Draw(rt, "y")
		b := geom.NewBounds(w, h)
		got := b.Clamp(geom.Vec{x, y}, r)
		if !b.Contains(got, r) {
			rt.Fatalf("clamped %v escapes bounds %v (r=%f)", got, b, r)
		}
	})
}

func TestProperty_Direction_NeverNaN(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		a := geom.Vec{rapid.Float64Range(-1000, 1000).Draw(rt, "ax"), rapid.Float64Range(-1000, 1000).Draw(rt, "ay")}
		b := geom.Vec{rapid.Float64Range(-1000, 1000).Draw(rt, "bx"), rapid.Float64Range(-1000, 1000).Draw(rt, "by")}
		dir, _, _ := geom.Direction(a, b)
		if math.IsNaN(dir.X()) || math.IsNaN(dir.Y()) {
			rt.Fatalf("NaN direction for %v -> %v", a, b)
		}
	})
}
