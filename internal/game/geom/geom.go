// Package geom provides the 2D arena geometry shared by the simulation:
// positions, bounds clamping, and guarded direction vectors.
package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Vec is a position or displacement in arena pixels.
type Vec = mgl64.Vec2

// Bounds is the fixed arena rectangle [0, Width] × [0, Height].
//
// Invariant: Width > 0 and Height > 0 once constructed by NewBounds.
type Bounds struct {
	Width  float64
	Height float64
}

// NewBounds returns the arena rectangle.
//
// Precondition: width > 0 and height > 0.
func NewBounds(width, height float64) Bounds {
	if width <= 0 || height <= 0 {
		panic("geom.NewBounds: width and height must be > 0")
	}
	return Bounds{Width: width, Height: height}
}

// Clamp keeps an entity of the given radius fully inside b.
// When the arena is narrower than the entity, it is centred on that axis.
//
// Postcondition: radius <= X <= Width-radius and radius <= Y <= Height-radius
// whenever the arena is large enough to hold the entity.
func (b Bounds) Clamp(p Vec, radius float64) Vec {
	return Vec{
		clampAxis(p.X(), radius, b.Width),
		clampAxis(p.Y(), radius, b.Height),
	}
}

// Contains reports whether p lies inside b inset by radius.
func (b Bounds) Contains(p Vec, radius float64) bool {
	return p.X() >= radius && p.X() <= b.Width-radius &&
		p.Y() >= radius && p.Y() <= b.Height-radius
}

func clampAxis(v, radius, extent float64) float64 {
	lo, hi := radius, extent-radius
	if lo > hi {
		return extent / 2
	}
	return mgl64.Clamp(v, lo, hi)
}

// Dist returns the Euclidean distance between a and b.
func Dist(a, b Vec) float64 {
	return b.Sub(a).Len()
}

// Direction returns the unit vector from 'from' towards 'to' and the distance
// between them. When the points coincide it returns (zero, 0, false) instead
// of a NaN vector.
func Direction(from, to Vec) (Vec, float64, bool) {
	d := to.Sub(from)
	dist := d.Len()
	if dist == 0 || math.IsNaN(dist) {
		return Vec{}, 0, false
	}
	return d.Mul(1 / dist), dist, true
}
