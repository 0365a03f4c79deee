package sim

import (
	"math"

	"github.com/cory-johannsen/castlesiege/internal/game/geom"
	"github.com/cory-johannsen/castlesiege/internal/game/player"
)

// autopilotDeadZone keeps the autopilot from jittering across a target axis.
const autopilotDeadZone = 2.0

// Autopilot picks movement keys for an unattended player: toward the nearest
// drop if any exists, otherwise toward the nearest mob. It returns an empty
// set when there is nothing to chase.
func Autopilot(snap Snapshot) player.KeySet {
	target, ok := nearestDrop(snap)
	if !ok {
		target, ok = nearestMob(snap)
	}
	keys := player.NewKeySet()
	if !ok {
		return keys
	}
	d := target.Sub(snap.Player.Pos)
	switch {
	case d.X() > autopilotDeadZone:
		keys.Press(player.KeyD)
	case d.X() < -autopilotDeadZone:
		keys.Press(player.KeyA)
	}
	switch {
	case d.Y() > autopilotDeadZone:
		keys.Press(player.KeyS)
	case d.Y() < -autopilotDeadZone:
		keys.Press(player.KeyW)
	}
	return keys
}

func nearestDrop(snap Snapshot) (geom.Vec, bool) {
	best, found := math.Inf(1), false
	var at geom.Vec
	for _, d := range snap.Drops {
		if dist := geom.Dist(snap.Player.Pos, d.Pos); dist < best {
			best, at, found = dist, d.Pos, true
		}
	}
	return at, found
}

func nearestMob(snap Snapshot) (geom.Vec, bool) {
	best, found := math.Inf(1), false
	var at geom.Vec
	for _, m := range snap.Mobs {
		if dist := geom.Dist(snap.Player.Pos, m.Pos); dist < best {
			best, at, found = dist, m.Pos, true
		}
	}
	return at, found
}
