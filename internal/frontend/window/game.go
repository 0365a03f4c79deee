// Package window runs the simulation in a desktop window: it polls the
// keyboard, steps the simulation once per frame and draws the snapshot.
package window

import (
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/cory-johannsen/castlesiege/internal/frontend/hud"
	"github.com/cory-johannsen/castlesiege/internal/game/player"
	"github.com/cory-johannsen/castlesiege/internal/sim"
)

// keyBindings maps ebiten keys to simulation input codes.
var keyBindings = []struct {
	key  ebiten.Key
	code string
}{
	{ebiten.KeyW, player.KeyW},
	{ebiten.KeyA, player.KeyA},
	{ebiten.KeyS, player.KeyS},
	{ebiten.KeyD, player.KeyD},
	{ebiten.KeyArrowUp, player.ArrowUp},
	{ebiten.KeyArrowDown, player.ArrowDown},
	{ebiten.KeyArrowLeft, player.ArrowLeft},
	{ebiten.KeyArrowRight, player.ArrowRight},
}

// Options tunes the window adapter.
type Options struct {
	// MaxDelta caps one frame's simulation step.
	MaxDelta time.Duration
	// InventorySize is how many recent items the HUD lists.
	InventorySize int
	// Autopilot steers the player when no movement key is held.
	Autopilot bool
}

// Game implements ebiten.Game over a Simulation.
type Game struct {
	sim    *sim.Simulation
	clock  *sim.Clock
	opts   Options
	logger *zap.Logger

	keys   player.KeySet
	snap   sim.Snapshot
	feed   *hud.Feed
	paused bool
}

// New creates a Game. The simulation is owned by the Game from here on.
//
// Precondition: s and logger must be non-nil; opts.MaxDelta > 0.
func New(s *sim.Simulation, opts Options, logger *zap.Logger) *Game {
	if s == nil || logger == nil {
		panic("window.New: simulation and logger must not be nil")
	}
	return &Game{
		sim:    s,
		clock:  sim.NewClock(time.Now(), opts.MaxDelta),
		opts:   opts,
		logger: logger,
		keys:   player.NewKeySet(),
		snap:   s.Snapshot(),
		feed:   hud.NewFeed(5, 4),
	}
}

// Update polls input and advances the simulation by one clamped frame.
// P toggles pause; Escape quits.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.logger.Info("window closed by player")
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
		g.logger.Info("pause toggled", zap.Bool("paused", g.paused))
	}

	delta := g.clock.Advance(time.Now())
	if g.paused {
		return nil
	}

	g.pollKeys()
	keys := g.keys
	if g.opts.Autopilot && len(keys) == 0 {
		keys = sim.Autopilot(g.snap)
	}
	for _, n := range g.sim.Step(delta, keys) {
		g.feed.Push(n)
	}
	g.feed.Tick(delta)
	g.snap = g.sim.Snapshot()
	return nil
}

func (g *Game) pollKeys() {
	for _, b := range keyBindings {
		if ebiten.IsKeyPressed(b.key) {
			g.keys.Press(b.code)
		} else {
			g.keys.Release(b.code)
		}
	}
}

// Layout keeps the logical screen at the arena size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(g.snap.Bounds.Width), int(g.snap.Bounds.Height)
}

// Run opens the window and blocks until it is closed.
func (g *Game) Run(title string) error {
	ebiten.SetWindowSize(int(g.snap.Bounds.Width), int(g.snap.Bounds.Height))
	ebiten.SetWindowTitle(title)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
