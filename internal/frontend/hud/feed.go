package hud

import "github.com/cory-johannsen/castlesiege/internal/sim"

// FeedItem is one notice shown in the on-screen message feed.
type FeedItem struct {
	Kind sim.NoticeKind
	Text string
	// Age is the seconds since the notice was pushed.
	Age float64
}

// Feed keeps the most recent notices for a limited time.
//
// Invariant: len(Items()) <= max; every item has Age < ttl.
type Feed struct {
	max   int
	ttl   float64
	items []FeedItem
}

// NewFeed returns a Feed holding at most max notices for ttl seconds each.
//
// Precondition: max > 0; ttl > 0.
func NewFeed(max int, ttl float64) *Feed {
	if max <= 0 || ttl <= 0 {
		panic("hud.NewFeed: max and ttl must be > 0")
	}
	return &Feed{max: max, ttl: ttl}
}

// Push adds n as the newest item, evicting the oldest when full.
func (f *Feed) Push(n sim.Notice) {
	f.items = append([]FeedItem{{Kind: n.Kind, Text: n.Text}}, f.items...)
	if len(f.items) > f.max {
		f.items = f.items[:f.max]
	}
}

// Tick ages every item by delta seconds and drops the expired ones.
func (f *Feed) Tick(delta float64) {
	kept := f.items[:0]
	for _, it := range f.items {
		it.Age += delta
		if it.Age < f.ttl {
			kept = append(kept, it)
		}
	}
	f.items = kept
}

// Items returns a copy of the current items, newest first.
func (f *Feed) Items() []FeedItem {
	out := make([]FeedItem, len(f.items))
	copy(out, f.items)
	return out
}

// Alpha returns the display opacity of it in [0, 1], fading over the last
// third of the feed lifetime.
func (f *Feed) Alpha(it FeedItem) float64 {
	fade := f.ttl / 3
	left := f.ttl - it.Age
	switch {
	case left <= 0:
		return 0
	case left >= fade:
		return 1
	default:
		return left / fade
	}
}
