package player

import "github.com/cory-johannsen/castlesiege/internal/game/geom"

// Input codes for the movement keys. Names follow the browser KeyboardEvent.code
// convention so any input adapter can share them.
const (
	KeyW       = "KeyW"
	KeyA       = "KeyA"
	KeyS       = "KeyS"
	KeyD       = "KeyD"
	ArrowUp    = "ArrowUp"
	ArrowDown  = "ArrowDown"
	ArrowLeft  = "ArrowLeft"
	ArrowRight = "ArrowRight"
)

// KeySet is the set of currently held input codes. It is owned by the input
// source; the simulation only reads it.
type KeySet map[string]struct{}

// NewKeySet returns a KeySet holding codes.
func NewKeySet(codes ...string) KeySet {
	ks := make(KeySet, len(codes))
	for _, c := range codes {
		ks.Press(c)
	}
	return ks
}

// Press marks code as held.
func (ks KeySet) Press(code string) { ks[code] = struct{}{} }

// Release marks code as no longer held.
func (ks KeySet) Release(code string) { delete(ks, code) }

// Has reports whether code is held. A nil KeySet holds nothing.
func (ks KeySet) Has(code string) bool {
	_, ok := ks[code]
	return ok
}

// Clone returns an independent copy.
func (ks KeySet) Clone() KeySet {
	out := make(KeySet, len(ks))
	for k := range ks {
		out[k] = struct{}{}
	}
	return out
}

// Velocity returns the per-axis movement direction for keys. Each axis is -1,
// 0 or 1; opposite keys cancel. Diagonals are not normalized.
func Velocity(keys KeySet) geom.Vec {
	var x, y float64
	if keys.Has(KeyW) || keys.Has(ArrowUp) {
		y--
	}
	if keys.Has(KeyS) || keys.Has(ArrowDown) {
		y++
	}
	if keys.Has(KeyA) || keys.Has(ArrowLeft) {
		x--
	}
	if keys.Has(KeyD) || keys.Has(ArrowRight) {
		x++
	}
	return geom.Vec{x, y}
}
