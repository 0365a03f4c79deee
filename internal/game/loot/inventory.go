package loot

// Inventory is the ordered list of collected item names, most recent first.
// Growth is unbounded; Top truncates for display.
type Inventory struct {
	items []string
}

// Add prepends name.
//
// Postcondition: Top(1)[0] == name.
func (inv *Inventory) Add(name string) {
	inv.items = append(inv.items, "")
	copy(inv.items[1:], inv.items)
	inv.items[0] = name
}

// Len returns the number of collected items.
func (inv *Inventory) Len() int {
	return len(inv.items)
}

// Top returns a copy of the n most recent items; n <= 0 returns all.
//
// Postcondition: returned slice is non-nil and has min(n, Len()) entries.
func (inv *Inventory) Top(n int) []string {
	if n <= 0 || n > len(inv.items) {
		n = len(inv.items)
	}
	out := make([]string, n)
	copy(out, inv.items[:n])
	return out
}
