package sim

import (
	"sync"

	"github.com/cory-johannsen/castlesiege/internal/game/geom"
)

// NoticeKind classifies a Notice.
type NoticeKind int

const (
	// NoticeKill reports a mob death.
	NoticeKill NoticeKind = iota
	// NoticePickup reports a collected drop.
	NoticePickup
	// NoticeLevelUp reports one or more levels gained.
	NoticeLevelUp
	// NoticeEventStart reports the world event becoming active.
	NoticeEventStart
	// NoticeEventEnd reports the world event returning to peace.
	NoticeEventEnd
)

// String returns a short lowercase name for k.
func (k NoticeKind) String() string {
	switch k {
	case NoticeKill:
		return "kill"
	case NoticePickup:
		return "pickup"
	case NoticeLevelUp:
		return "level_up"
	case NoticeEventStart:
		return "event_start"
	case NoticeEventEnd:
		return "event_end"
	default:
		return "unknown"
	}
}

// Notice is a gameplay message emitted by Step. Expired drops emit nothing.
type Notice struct {
	Kind NoticeKind
	// At is the simulation time in seconds.
	At float64
	// Text is a human-readable description.
	Text string
	// Pos is the kill or pickup position; zero for other kinds.
	Pos geom.Vec
	// Level is the level reached for NoticeLevelUp.
	Level int
}

// broadcaster fans notices out to subscriber channels without blocking.
type broadcaster struct {
	mu   sync.Mutex
	subs map[chan<- Notice]struct{}
}

func newBroadcaster() *broadcaster {
	return &broadcaster{subs: make(map[chan<- Notice]struct{})}
}

func (b *broadcaster) subscribe(ch chan<- Notice) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[ch] = struct{}{}
}

func (b *broadcaster) unsubscribe(ch chan<- Notice) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, ch)
}

// publish delivers each notice to every subscriber. A full channel drops the
// notice for that subscriber.
func (b *broadcaster) publish(notes []Notice) {
	if len(notes) == 0 {
		return
	}
	b.mu.Lock()
	subs := make([]chan<- Notice, 0, len(b.subs))
	for ch := range b.subs {
		subs = append(subs, ch)
	}
	b.mu.Unlock()
	for _, ch := range subs {
		for _, n := range notes {
			select {
			case ch <- n:
			default:
			}
		}
	}
}
