package hud_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/castlesiege/internal/frontend/hud"
	"github.com/cory-johannsen/castlesiege/internal/sim"
)

func snapshotWith(items int) sim.Snapshot {
	inv := make([]string, items)
	for i := range inv {
		inv[i] = fmt.Sprintf("item-%d", i)
	}
	return sim.Snapshot{
		Player:         sim.PlayerView{HP: 76.4, MaxHP: 100, Armor: 3, Power: 12},
		Level:          2,
		XP:             25.5,
		XPNext:         130,
		Inventory:      inv,
		InventoryCount: items,
		Event:          sim.EventView{Label: "Castle peace"},
	}
}

func TestFromSnapshot_CopiesStats(t *testing.T) {
	v := hud.FromSnapshot(snapshotWith(2), 6)
	assert.Equal(t, 2, v.Level)
	assert.Equal(t, 130, v.XPNext)
	assert.Equal(t, 3.0, v.Armor)
	assert.Equal(t, 12.0, v.Power)
	assert.Equal(t, "Castle peace", v.EventLabel)
	assert.Equal(t, []string{"item-0", "item-1"}, v.Inventory)
}

func TestFromSnapshot_TruncatesInventory(t *testing.T) {
	v := hud.FromSnapshot(snapshotWith(10), 0)
	assert.Len(t, v.Inventory, hud.DefaultInventorySize)
	assert.Equal(t, 10, v.InventoryTotal)
	assert.Equal(t, "item-0", v.Inventory[0])
}

func TestFromSnapshot_TotalComesFromCount(t *testing.T) {
	snap := snapshotWith(6)
	snap.InventoryCount = 40
	v := hud.FromSnapshot(snap, 6)
	assert.Len(t, v.Inventory, 6)
	assert.Equal(t, 40, v.InventoryTotal)
	assert.Contains(t, v.Lines()[3], "(+34 more)")
}

func TestFromSnapshot_DoesNotAliasSnapshot(t *testing.T) {
	snap := snapshotWith(3)
	v := hud.FromSnapshot(snap, 6)
	v.Inventory[0] = "changed"
	assert.Equal(t, "item-0", snap.Inventory[0])
}

func TestView_Lines(t *testing.T) {
	lines := hud.FromSnapshot(snapshotWith(8), 6).Lines()
	require.Len(t, lines, 4)
	assert.Equal(t, "Level 2  XP 25/130", lines[0])
	assert.Equal(t, "HP 77  Armor 3  Power 12", lines[1])
	assert.Equal(t, "Castle peace", lines[2])
	assert.Contains(t, lines[3], "(+2 more)")
}

func TestView_Lines_EmptyInventory(t *testing.T) {
	lines := hud.FromSnapshot(snapshotWith(0), 6).Lines()
	assert.Equal(t, "Inventory: empty", lines[3])
}

func TestProperty_XPRatioInUnitRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		v := hud.View{
			XP:     rapid.Float64Range(-10, 1000).Draw(rt, "xp"),
			XPNext: rapid.IntRange(-5, 500).Draw(rt, "next"),
		}
		if r := v.XPRatio(); r < 0 || r > 1 {
			rt.Fatalf("ratio %f out of range", r)
		}
	})
}
