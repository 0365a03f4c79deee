// Package loot defines castle-part items, loot table rolls, ground drops and the player inventory.
package loot

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/castlesiege/internal/game/rng"
)

// ItemDef defines the static properties of a loot item.
type ItemDef struct {
	ID         string  `yaml:"id"`
	Name       string  `yaml:"name"`
	ArmorBonus float64 `yaml:"armor_bonus"`
}

// Validate checks that the ItemDef satisfies its invariants.
//
// Postcondition: returns nil iff ID and Name are non-empty and ArmorBonus >= 0.
func (d ItemDef) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("name must not be empty"))
	}
	if d.ArmorBonus < 0 {
		errs = append(errs, fmt.Errorf("armor_bonus must be >= 0, got %g", d.ArmorBonus))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item %q: %w", d.ID, errors.Join(errs...))
	}
	return nil
}

// Table is the static list of items a dead mob can drop. Each roll picks one
// entry uniformly.
type Table struct {
	Items []ItemDef `yaml:"items"`
}

// DefaultTable returns the castle armour parts table.
func DefaultTable() Table {
	return Table{Items: []ItemDef{
		{ID: "helm_fragment", Name: "Helm fragment", ArmorBonus: 2},
		{ID: "chest_plate_shard", Name: "Chest plate shard", ArmorBonus: 2},
		{ID: "greaves_plate", Name: "Greaves plate", ArmorBonus: 2},
		{ID: "crystal_core", Name: "Crystal core", ArmorBonus: 2},
	}}
}

// Validate checks that the table is non-empty, IDs are unique and every item
// is valid.
func (t Table) Validate() error {
	if len(t.Items) == 0 {
		return errors.New("loot table: must contain at least one item")
	}
	seen := make(map[string]bool, len(t.Items))
	for i, item := range t.Items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("loot table: item[%d]: %w", i, err)
		}
		if seen[item.ID] {
			return fmt.Errorf("loot table: duplicate item id %q", item.ID)
		}
		seen[item.ID] = true
	}
	return nil
}

// Roll picks one item uniformly.
//
// Precondition: t must have passed Validate; src must be non-nil.
func (t Table) Roll(src rng.Source) ItemDef {
	return rng.Pick(src, t.Items)
}

// LoadTableFromBytes parses a loot table from raw YAML bytes.
//
// Postcondition: Returns a validated Table or an error.
func LoadTableFromBytes(data []byte) (Table, error) {
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Table{}, fmt.Errorf("parsing loot table YAML: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

// LoadTable reads and validates the loot table at path.
func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("reading loot table %q: %w", path, err)
	}
	t, err := LoadTableFromBytes(data)
	if err != nil {
		return Table{}, fmt.Errorf("loading %q: %w", path, err)
	}
	return t, nil
}
