package mob

import (
	"container/heap"
	"math"
)

// respawnEntry represents a single pending respawn.
type respawnEntry struct {
	readyAt float64
	seq     uint64
}

// respawnHeap orders entries by readyAt, then by scheduling order.
type respawnHeap []respawnEntry

func (h respawnHeap) Len() int { return len(h) }
func (h respawnHeap) Less(i, j int) bool {
	if h[i].readyAt != h[j].readyAt {
		return h[i].readyAt < h[j].readyAt
	}
	return h[i].seq < h[j].seq
}
func (h respawnHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *respawnHeap) Push(x any)   { *h = append(*h, x.(respawnEntry)) }
func (h *respawnHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// RespawnQueue schedules mob respawns against the simulation clock instead
// of wall-clock timers.
// It is not safe for concurrent use.
type RespawnQueue struct {
	pending respawnHeap
	seq     uint64
	// max is the population cap; 0 means uncapped.
	max int
}

// NewRespawnQueue creates an empty queue. max caps the live population when a
// respawn fires; 0 disables the cap.
func NewRespawnQueue(max int) *RespawnQueue {
	return &RespawnQueue{max: max}
}

// Schedule enqueues a respawn to fire at now+delay (simulation seconds).
// A delay <= 0 fires on the next Tick.
//
// Postcondition: Pending() grows by one.
func (q *RespawnQueue) Schedule(now, delay float64) {
	q.seq++
	heap.Push(&q.pending, respawnEntry{readyAt: now + math.Max(delay, 0), seq: q.seq})
}

// Tick drains every entry whose readyAt <= now and spawns one mob per entry,
// skipping spawns while the population cap is reached.
//
// Postcondition: no pending entry has readyAt <= now; returns the handles
// spawned.
func (q *RespawnQueue) Tick(now float64, sp *Spawner) []ID {
	var spawned []ID
	for q.pending.Len() > 0 && q.pending[0].readyAt <= now {
		heap.Pop(&q.pending)
		if q.max > 0 && sp.pool.Len() >= q.max {
			continue
		}
		spawned = append(spawned, sp.Spawn())
	}
	return spawned
}

// Pending returns the number of scheduled respawns.
func (q *RespawnQueue) Pending() int {
	return q.pending.Len()
}

// NextAt returns the time of the earliest pending respawn.
//
// Postcondition: ok is false when nothing is pending.
func (q *RespawnQueue) NextAt() (at float64, ok bool) {
	if q.pending.Len() == 0 {
		return 0, false
	}
	return q.pending[0].readyAt, true
}
