package loot

import (
	"github.com/google/uuid"

	"github.com/cory-johannsen/castlesiege/internal/game/geom"
)

// Drop is a time-limited loot pickup anchored at a position.
//
// Invariant: Timer > 0 while the drop is held by a Manager.
type Drop struct {
	InstanceID string
	Pos        geom.Vec
	Item       ItemDef
	// Timer is the seconds left before the drop expires.
	Timer float64
}

// Collector receives the effect of a pickup.
type Collector interface {
	// Position is where pickups are measured from.
	Position() geom.Vec
	// AddArmor credits the item's armor bonus.
	AddArmor(bonus float64)
}

// Manager owns the active drops and the inventory they are collected into.
// It is not safe for concurrent use; the simulation serialises access.
type Manager struct {
	drops        []Drop
	inventory    Inventory
	lifetime     float64
	pickupRadius float64
}

// NewManager creates an empty Manager.
//
// Precondition: lifetime > 0; pickupRadius >= 0.
func NewManager(lifetime, pickupRadius float64) *Manager {
	if lifetime <= 0 {
		panic("loot.NewManager: lifetime must be > 0")
	}
	return &Manager{lifetime: lifetime, pickupRadius: pickupRadius}
}

// Spawn places item at pos with a full timer and returns the drop.
//
// Postcondition: Len() grows by one; the drop's Timer equals the lifetime.
func (m *Manager) Spawn(pos geom.Vec, item ItemDef) Drop {
	d := Drop{
		InstanceID: uuid.New().String(),
		Pos:        pos,
		Item:       item,
		Timer:      m.lifetime,
	}
	m.drops = append(m.drops, d)
	return d
}

// Tick ages every drop by delta, sweeps the expired ones, then collects every
// remaining drop within the pickup radius of c. Expired drops are removed
// silently; collected drops are returned.
//
// Precondition: delta >= 0; c must be non-nil.
// Postcondition: every held drop has Timer > 0 and lies outside the pickup
// radius; each returned drop was credited to c and the inventory exactly once.
func (m *Manager) Tick(delta float64, c Collector) []Drop {
	kept := m.drops[:0]
	for _, d := range m.drops {
		d.Timer -= delta
		if d.Timer > 0 {
			kept = append(kept, d)
		}
	}
	m.drops = kept

	var collected []Drop
	at := c.Position()
	kept = m.drops[:0]
	for _, d := range m.drops {
		if geom.Dist(d.Pos, at) < m.pickupRadius {
			m.inventory.Add(d.Item.Name)
			c.AddArmor(d.Item.ArmorBonus)
			d.Timer = 0
			collected = append(collected, d)
			continue
		}
		kept = append(kept, d)
	}
	clear(m.drops[len(kept):])
	m.drops = kept
	return collected
}

// Len returns the number of active drops.
func (m *Manager) Len() int {
	return len(m.drops)
}

// Drops returns a snapshot copy of the active drops.
//
// Postcondition: returned slice is a copy; mutations do not affect the Manager.
func (m *Manager) Drops() []Drop {
	out := make([]Drop, len(m.drops))
	copy(out, m.drops)
	return out
}

// Inventory returns the collected-items inventory.
func (m *Manager) Inventory() *Inventory {
	return &m.inventory
}
