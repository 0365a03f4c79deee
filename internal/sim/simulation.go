// Package sim owns the arena simulation: one player, the mob pool, combat,
// loot, progression and the world event, advanced one tick at a time.
package sim

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/castlesiege/internal/game/combat"
	"github.com/cory-johannsen/castlesiege/internal/game/geom"
	"github.com/cory-johannsen/castlesiege/internal/game/loot"
	"github.com/cory-johannsen/castlesiege/internal/game/mob"
	"github.com/cory-johannsen/castlesiege/internal/game/player"
	"github.com/cory-johannsen/castlesiege/internal/game/progression"
	"github.com/cory-johannsen/castlesiege/internal/game/rng"
	"github.com/cory-johannsen/castlesiege/internal/game/worldevent"
)

// Config holds every tunable of a Simulation.
type Config struct {
	Width  float64
	Height float64

	Player player.Config
	Spawn  mob.SpawnConfig
	Combat combat.Config

	// InitialMobs is spawned at construction.
	InitialMobs int
	// MaxMobs caps respawns; 0 means no cap.
	MaxMobs int
	// MobRadius is the render radius of a mob.
	MobRadius float64
	// RespawnDelay is the seconds between a death and its replacement.
	RespawnDelay float64
	// XPReward is granted per kill.
	XPReward float64

	// DropLifetime is the seconds a drop stays collectable.
	DropLifetime float64
	// PickupRadius is the collection distance.
	PickupRadius float64
	LootTable    loot.Table
	// InventoryView is how many recent items a Snapshot carries;
	// 0 means DefaultInventoryView.
	InventoryView int

	Progression progression.Config
	Event       worldevent.Config

	// Features enables the decorative castle scenery.
	Features bool
}

// DefaultInventoryView is the number of recent items a Snapshot lists when
// Config.InventoryView is 0.
const DefaultInventoryView = 6

// DefaultConfig returns the stock 960×600 arena.
func DefaultConfig() Config {
	return Config{
		Width:         960,
		Height:        600,
		Player:        player.DefaultConfig(),
		Spawn:         mob.DefaultSpawnConfig(),
		Combat:        combat.DefaultConfig(),
		InitialMobs:   8,
		MobRadius:     14,
		RespawnDelay:  2.5,
		XPReward:      25,
		DropLifetime:  10,
		PickupRadius:  25,
		LootTable:     loot.DefaultTable(),
		InventoryView: DefaultInventoryView,
		Progression:   progression.DefaultConfig(),
		Event:         worldevent.DefaultConfig(),
		Features:      true,
	}
}

// Validate checks every section and reports all violations at once.
func (c Config) Validate() error {
	var errs []string
	if c.Width <= 0 || c.Height <= 0 {
		errs = append(errs, fmt.Sprintf("arena must be > 0 in both axes, got %gx%g", c.Width, c.Height))
	}
	if c.InitialMobs < 0 || c.MaxMobs < 0 {
		errs = append(errs, "mob counts must be >= 0")
	}
	if c.RespawnDelay < 0 || c.XPReward < 0 {
		errs = append(errs, "respawn delay and xp reward must be >= 0")
	}
	if c.DropLifetime <= 0 {
		errs = append(errs, fmt.Sprintf("drop lifetime must be > 0, got %g", c.DropLifetime))
	}
	if c.PickupRadius < 0 {
		errs = append(errs, fmt.Sprintf("pickup radius must be >= 0, got %g", c.PickupRadius))
	}
	if c.InventoryView < 0 {
		errs = append(errs, fmt.Sprintf("inventory view must be >= 0, got %d", c.InventoryView))
	}
	sections := []struct {
		name string
		v    interface{ Validate() error }
	}{
		{"player", c.Player},
		{"spawn", c.Spawn},
		{"combat", c.Combat},
		{"loot", c.LootTable},
		{"progression", c.Progression},
		{"event", c.Event},
	}
	for _, sec := range sections {
		if err := sec.v.Validate(); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", sec.name, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("simulation config: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Hooks receives gameplay callbacks. Event hooks may return a replacement
// status label; "" keeps the default.
type Hooks interface {
	OnKill(mobID string, x, y float64)
	OnLevelUp(level int)
	OnEventStart(label string) string
	OnEventEnd(label string) string
}

type nopHooks struct{}

func (nopHooks) OnKill(string, float64, float64) {}
func (nopHooks) OnLevelUp(int)                   {}
func (nopHooks) OnEventStart(string) string      { return "" }
func (nopHooks) OnEventEnd(string) string        { return "" }

// Simulation is the single owner of all game state.
// It is not safe for concurrent use; Subscribe and Unsubscribe are the
// exceptions.
type Simulation struct {
	cfg    Config
	logger *zap.Logger
	hooks  Hooks
	src    rng.Source
	bounds geom.Bounds

	now  float64
	tick uint64

	player   *player.Player
	pool     *mob.Pool
	spawner  *mob.Spawner
	respawns *mob.RespawnQueue
	resolver *combat.Resolver
	loot     *loot.Manager
	progress *progression.Tracker
	event    *worldevent.Scheduler
	features []Feature
	notices  *broadcaster
}

// New builds a Simulation with the player centred and InitialMobs spawned.
// A nil hooks disables scripting callbacks.
//
// Precondition: cfg passes Validate; src and logger must be non-nil.
func New(cfg Config, src rng.Source, logger *zap.Logger, hooks Hooks) *Simulation {
	if src == nil || logger == nil {
		panic("sim.New: src and logger must not be nil")
	}
	if hooks == nil {
		hooks = nopHooks{}
	}
	bounds := geom.NewBounds(cfg.Width, cfg.Height)
	pool := mob.NewPool(cfg.InitialMobs)
	s := &Simulation{
		cfg:      cfg,
		logger:   logger,
		hooks:    hooks,
		src:      src,
		bounds:   bounds,
		player:   player.New(cfg.Player, geom.Vec{cfg.Width / 2, cfg.Height / 2}),
		pool:     pool,
		spawner:  mob.NewSpawner(cfg.Spawn, bounds, src, pool),
		respawns: mob.NewRespawnQueue(cfg.MaxMobs),
		resolver: combat.NewResolver(cfg.Combat),
		loot:     loot.NewManager(cfg.DropLifetime, cfg.PickupRadius),
		progress: progression.NewTracker(cfg.Progression),
		event:    worldevent.NewScheduler(cfg.Event),
		notices:  newBroadcaster(),
	}
	if cfg.Features {
		s.features = layoutFeatures(bounds)
	}
	s.spawner.SpawnN(cfg.InitialMobs)
	logger.Info("simulation created",
		zap.Float64("width", cfg.Width),
		zap.Float64("height", cfg.Height),
		zap.Int("mobs", pool.Len()),
	)
	return s
}

// Step advances the simulation by delta seconds and returns the notices
// emitted during the tick. The order within a tick is fixed: due respawns,
// player movement, combat, loot, world event.
//
// Precondition: delta >= 0 and not NaN; keys may be nil.
// Postcondition: player HP >= 0; no dead mob remains in the pool.
func (s *Simulation) Step(delta float64, keys player.KeySet) []Notice {
	if delta < 0 || math.IsNaN(delta) {
		panic(fmt.Sprintf("sim.Simulation.Step: delta must be >= 0, got %g", delta))
	}
	s.now += delta
	s.tick++
	var notes []Notice

	if ids := s.respawns.Tick(s.now, s.spawner); len(ids) > 0 {
		s.logger.Debug("mobs respawned", zap.Int("count", len(ids)), zap.Float64("at", s.now))
	}

	s.player.Move(keys, delta, s.bounds)

	rep := s.resolver.Resolve(s.player, s.pool, delta)
	for _, k := range rep.Kills {
		notes = s.handleKill(k, notes)
	}

	for _, d := range s.loot.Tick(delta, s.player) {
		notes = append(notes, Notice{
			Kind: NoticePickup,
			At:   s.now,
			Text: fmt.Sprintf("Picked up %s (+%g armor)", d.Item.Name, d.Item.ArmorBonus),
			Pos:  d.Pos,
		})
	}

	if tr, ok := s.event.Tick(delta); ok {
		notes = s.handleTransition(tr, notes)
	}

	s.notices.publish(notes)
	return notes
}

func (s *Simulation) handleKill(k combat.Kill, notes []Notice) []Notice {
	id := k.Mob.ID
	s.pool.Release(id)
	s.respawns.Schedule(s.now, s.cfg.RespawnDelay)
	item := s.cfg.LootTable.Roll(s.src)
	s.loot.Spawn(k.Pos, item)
	s.logger.Debug("mob killed",
		zap.Stringer("mob", id),
		zap.Float64("x", k.Pos.X()),
		zap.Float64("y", k.Pos.Y()),
		zap.String("drop", item.ID),
	)
	notes = append(notes, Notice{
		Kind: NoticeKill,
		At:   s.now,
		Text: fmt.Sprintf("Mob defeated, %s dropped", item.Name),
		Pos:  k.Pos,
	})
	s.hooks.OnKill(id.String(), k.Pos.X(), k.Pos.Y())

	_, notes = s.gainXP(s.cfg.XPReward, notes)
	return notes
}

// gainXP feeds the tracker and, on a level-up, applies the stat growth,
// appends one NoticeLevelUp and calls OnLevelUp with the final level.
func (s *Simulation) gainXP(amount float64, notes []Notice) (progression.LevelUp, []Notice) {
	up := s.progress.GainXP(amount)
	if up.Levels == 0 {
		return up, notes
	}
	s.player.Power += up.Power
	s.player.Armor += up.Armor
	level := s.progress.Level()
	s.logger.Info("level up",
		zap.Int("level", level),
		zap.Int("gained", up.Levels),
		zap.Float64("power", s.player.Power),
		zap.Float64("armor", s.player.Armor),
	)
	notes = append(notes, Notice{
		Kind:  NoticeLevelUp,
		At:    s.now,
		Text:  fmt.Sprintf("Level up! Now level %d", level),
		Level: level,
	})
	s.hooks.OnLevelUp(level)
	return up, notes
}

func (s *Simulation) handleTransition(tr worldevent.Transition, notes []Notice) []Notice {
	s.player.Power += tr.PowerDelta
	kind := NoticeEventStart
	override := ""
	if tr.To == worldevent.Active {
		override = s.hooks.OnEventStart(tr.Label)
	} else {
		kind = NoticeEventEnd
		override = s.hooks.OnEventEnd(tr.Label)
	}
	s.event.SetLabel(override)
	label := s.event.Label()
	s.logger.Info("world event transition",
		zap.Stringer("from", tr.From),
		zap.Stringer("to", tr.To),
		zap.Float64("power_delta", tr.PowerDelta),
		zap.String("label", label),
	)
	return append(notes, Notice{Kind: kind, At: s.now, Text: label})
}

// Subscribe registers ch to receive every notice. Delivery never blocks; a
// full channel misses notices. Safe to call concurrently with Step.
//
// Precondition: ch must not be nil.
func (s *Simulation) Subscribe(ch chan<- Notice) {
	s.notices.subscribe(ch)
}

// Unsubscribe removes ch. Safe to call concurrently with Step.
func (s *Simulation) Unsubscribe(ch chan<- Notice) {
	s.notices.unsubscribe(ch)
}

// Now returns the accumulated simulation time in seconds.
func (s *Simulation) Now() float64 { return s.now }

// Bounds returns the arena rectangle.
func (s *Simulation) Bounds() geom.Bounds { return s.bounds }

// SpawnDrop places item at pos, clamped into the arena.
func (s *Simulation) SpawnDrop(pos geom.Vec, item loot.ItemDef) loot.Drop {
	return s.loot.Spawn(s.bounds.Clamp(pos, 0), item)
}

// GrantXP awards experience outside of combat. A level-up is handled as in
// combat: stats grow, OnLevelUp runs and the notice goes to subscribers.
//
// Precondition: amount >= 0.
func (s *Simulation) GrantXP(amount float64) progression.LevelUp {
	up, notes := s.gainXP(amount, nil)
	s.notices.publish(notes)
	return up
}
