package sim

import (
	"github.com/cory-johannsen/castlesiege/internal/game/geom"
	"github.com/cory-johannsen/castlesiege/internal/game/loot"
	"github.com/cory-johannsen/castlesiege/internal/game/worldevent"
)

// PlayerView is the read-only player state.
type PlayerView struct {
	Pos    geom.Vec
	HP     float64
	MaxHP  float64
	Armor  float64
	Power  float64
	Radius float64
}

// MobView is the read-only state of one live mob.
type MobView struct {
	ID      string
	Pos     geom.Vec
	HP      float64
	HPRatio float64
	Power   float64
	Hue     float64
	Radius  float64
}

// EventView is the read-only world event state.
type EventView struct {
	Phase  worldevent.Phase
	Active bool
	Label  string
	// Timer is the seconds until the next transition.
	Timer float64
}

// Snapshot is a deep copy of the simulation state for render and HUD
// collaborators. Mutating it has no effect on the Simulation.
type Snapshot struct {
	Tick     uint64
	Time     float64
	Bounds   geom.Bounds
	Player   PlayerView
	Mobs     []MobView
	Drops    []loot.Drop
	Features []Feature

	Level  int
	XP     float64
	XPNext int
	// Inventory lists the most recent items, newest first, capped at
	// Config.InventoryView.
	Inventory []string
	// InventoryCount counts every collected item.
	InventoryCount int

	Event EventView
}

// Snapshot copies the current state.
func (s *Simulation) Snapshot() Snapshot {
	mobs := s.pool.Snapshot()
	views := make([]MobView, 0, len(mobs))
	for i := range mobs {
		m := &mobs[i]
		views = append(views, MobView{
			ID:      m.ID.String(),
			Pos:     m.Pos,
			HP:      m.HP,
			HPRatio: m.HPRatio(),
			Power:   m.Power,
			Hue:     m.Hue,
			Radius:  s.cfg.MobRadius,
		})
	}
	view := s.cfg.InventoryView
	if view == 0 {
		view = DefaultInventoryView
	}
	features := make([]Feature, len(s.features))
	copy(features, s.features)
	return Snapshot{
		Tick:   s.tick,
		Time:   s.now,
		Bounds: s.bounds,
		Player: PlayerView{
			Pos:    s.player.Pos,
			HP:     s.player.HP,
			MaxHP:  s.cfg.Player.HP,
			Armor:  s.player.Armor,
			Power:  s.player.Power,
			Radius: s.player.Radius,
		},
		Mobs:           views,
		Drops:          s.loot.Drops(),
		Features:       features,
		Level:          s.progress.Level(),
		XP:             s.progress.XP(),
		XPNext:         s.progress.Threshold(),
		Inventory:      s.loot.Inventory().Top(view),
		InventoryCount: s.loot.Inventory().Len(),
		Event: EventView{
			Phase:  s.event.Phase(),
			Active: s.event.Active(),
			Label:  s.event.Label(),
			Timer:  s.event.Timer(),
		},
	}
}
