package loot_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/castlesiege/internal/game/loot"
	"github.com/cory-johannsen/castlesiege/internal/game/rng"
)

func TestDefaultTable_Valid(t *testing.T) {
	tbl := loot.DefaultTable()
	require.NoError(t, tbl.Validate())
	assert.Len(t, tbl.Items, 4)
}

func TestTable_Validate_Rejects(t *testing.T) {
	assert.Error(t, loot.Table{}.Validate())
	assert.Error(t, loot.Table{Items: []loot.ItemDef{{ID: "a"}}}.Validate())
	assert.Error(t, loot.Table{Items: []loot.ItemDef{{ID: "a", Name: "A", ArmorBonus: -1}}}.Validate())
	assert.Error(t, loot.Table{Items: []loot.ItemDef{
		{ID: "a", Name: "A"}, {ID: "a", Name: "B"},
	}}.Validate())
}

func TestTable_Roll_ReturnsTableItem(t *testing.T) {
	tbl := loot.DefaultTable()
	src := rng.NewSeeded(9)
	for i := 0; i < 50; i++ {
		assert.Contains(t, tbl.Items, tbl.Roll(src))
	}
}

func TestLoadTable_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "parts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
items:
  - id: gauntlet
    name: Gauntlet
    armor_bonus: 3
  - id: buckler
    name: Buckler
    armor_bonus: 1.5
`), 0644))

	tbl, err := loot.LoadTable(path)
	require.NoError(t, err)
	require.Len(t, tbl.Items, 2)
	assert.Equal(t, "Gauntlet", tbl.Items[0].Name)
	assert.Equal(t, 1.5, tbl.Items[1].ArmorBonus)
}

func TestLoadTable_InvalidPath(t *testing.T) {
	_, err := loot.LoadTable("/nonexistent/loot.yaml")
	assert.Error(t, err)
}

func TestLoadTableFromBytes_InvalidYAML(t *testing.T) {
	_, err := loot.LoadTableFromBytes([]byte("items: [unterminated"))
	assert.Error(t, err)
}
