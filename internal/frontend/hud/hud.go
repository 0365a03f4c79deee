// Package hud projects a simulation snapshot into the values shown on the
// heads-up display.
package hud

import (
	"fmt"
	"math"
	"strings"

	"github.com/cory-johannsen/castlesiege/internal/sim"
)

// DefaultInventorySize is how many recent items the HUD lists.
const DefaultInventorySize = sim.DefaultInventoryView

// View is the HUD's read-only projection of a snapshot.
type View struct {
	Level  int
	XP     float64
	XPNext int
	Armor  float64
	Power  float64
	HP     float64
	MaxHP  float64
	// Inventory holds the most recent items, newest first.
	Inventory []string
	// InventoryTotal counts every collected item.
	InventoryTotal int
	EventLabel     string
	EventActive    bool
}

// FromSnapshot builds a View listing at most n inventory items; n <= 0 uses
// DefaultInventorySize.
func FromSnapshot(snap sim.Snapshot, n int) View {
	if n <= 0 {
		n = DefaultInventorySize
	}
	items := snap.Inventory
	if len(items) > n {
		items = items[:n]
	}
	inv := make([]string, len(items))
	copy(inv, items)
	return View{
		Level:          snap.Level,
		XP:             snap.XP,
		XPNext:         snap.XPNext,
		Armor:          snap.Player.Armor,
		Power:          snap.Player.Power,
		HP:             snap.Player.HP,
		MaxHP:          snap.Player.MaxHP,
		Inventory:      inv,
		InventoryTotal: max(snap.InventoryCount, len(inv)),
		EventLabel:     snap.Event.Label,
		EventActive:    snap.Event.Active,
	}
}

// XPRatio returns XP/XPNext clamped to [0, 1] for the experience bar.
func (v View) XPRatio() float64 {
	if v.XPNext <= 0 {
		return 0
	}
	return math.Min(1, math.Max(0, v.XP/float64(v.XPNext)))
}

// Lines renders the view as plain text, one HUD row per line.
func (v View) Lines() []string {
	lines := []string{
		fmt.Sprintf("Level %d  XP %d/%d", v.Level, int(math.Floor(v.XP)), v.XPNext),
		fmt.Sprintf("HP %d  Armor %g  Power %g", int(math.Ceil(v.HP)), v.Armor, v.Power),
		v.EventLabel,
	}
	if len(v.Inventory) == 0 {
		return append(lines, "Inventory: empty")
	}
	inv := "Inventory: " + strings.Join(v.Inventory, ", ")
	if more := v.InventoryTotal - len(v.Inventory); more > 0 {
		inv += fmt.Sprintf(" (+%d more)", more)
	}
	return append(lines, inv)
}
