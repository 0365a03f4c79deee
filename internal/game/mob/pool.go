package mob

// slot is one arena cell of a Pool.
type slot struct {
	mob  Mob
	gen  uint32
	live bool
}

// Pool stores mobs in a slice-backed arena with a free list so dead mobs do
// not accumulate over a long session.
// It is not safe for concurrent use; the simulation serialises access.
//
// Invariant: Len() equals the number of live slots; every index on the free
// list refers to a non-live slot.
type Pool struct {
	slots []slot
	free  []uint32
	live  int
}

// NewPool creates an empty Pool with room for capacity mobs before growing.
func NewPool(capacity int) *Pool {
	if capacity < 0 {
		capacity = 0
	}
	return &Pool{slots: make([]slot, 0, capacity)}
}

// Insert stores m in a free slot and returns its handle.
//
// Postcondition: Get(id) returns the stored mob with ID == id.
func (p *Pool) Insert(m Mob) ID {
	var idx uint32
	if n := len(p.free); n > 0 {
		idx = p.free[n-1]
		p.free = p.free[:n-1]
	} else {
		idx = uint32(len(p.slots))
		p.slots = append(p.slots, slot{})
	}
	s := &p.slots[idx]
	id := ID{Index: idx, Gen: s.gen}
	m.ID = id
	s.mob = m
	s.live = true
	p.live++
	return id
}

// Get resolves id to its live mob.
//
// Postcondition: Returns (nil, false) for released or unknown handles.
func (p *Pool) Get(id ID) (*Mob, bool) {
	if int(id.Index) >= len(p.slots) {
		return nil, false
	}
	s := &p.slots[id.Index]
	if !s.live || s.gen != id.Gen {
		return nil, false
	}
	return &s.mob, true
}

// Release frees the slot held by id and bumps its generation.
//
// Postcondition: Get(id) returns false; returns false if id was not live.
func (p *Pool) Release(id ID) bool {
	if _, ok := p.Get(id); !ok {
		return false
	}
	s := &p.slots[id.Index]
	s.live = false
	s.gen++
	s.mob = Mob{}
	p.free = append(p.free, id.Index)
	p.live--
	return true
}

// Each calls fn for every live mob in slot order. fn may mutate the mob but
// must not Insert or Release.
func (p *Pool) Each(fn func(m *Mob)) {
	for i := range p.slots {
		if p.slots[i].live {
			fn(&p.slots[i].mob)
		}
	}
}

// Len returns the number of live mobs.
func (p *Pool) Len() int {
	return p.live
}

// Slots returns the number of allocated slots, live or free.
func (p *Pool) Slots() int {
	return len(p.slots)
}

// Snapshot returns copies of all live mobs in slot order.
//
// Postcondition: returned slice is a copy; mutations do not affect the pool.
func (p *Pool) Snapshot() []Mob {
	out := make([]Mob, 0, p.live)
	p.Each(func(m *Mob) { out = append(out, *m) })
	return out
}
