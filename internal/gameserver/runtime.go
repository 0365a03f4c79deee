// Package gameserver assembles a runnable simulation from configuration:
// randomness source, loot table, Lua hooks and the simulation itself.
package gameserver

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/castlesiege/internal/config"
	"github.com/cory-johannsen/castlesiege/internal/game/rng"
	"github.com/cory-johannsen/castlesiege/internal/scripting"
	"github.com/cory-johannsen/castlesiege/internal/sim"
)

// Runtime owns one simulation and its scripting VM.
type Runtime struct {
	Config  config.Config
	Sim     *sim.Simulation
	Scripts *scripting.Manager
	logger  *zap.Logger
}

// NewRuntime builds the simulation described by cfg. A zero runner seed
// draws from crypto/rand; any other seed makes the run reproducible.
//
// Precondition: cfg passes Validate; logger must be non-nil.
// Postcondition: Returns a Runtime the caller must Close, or a non-nil error.
func NewRuntime(cfg config.Config, logger *zap.Logger) (*Runtime, error) {
	if logger == nil {
		panic("gameserver.NewRuntime: logger must not be nil")
	}
	simCfg, err := cfg.SimConfig()
	if err != nil {
		return nil, fmt.Errorf("building simulation config: %w", err)
	}

	var src rng.Source
	if cfg.Runner.Seed != 0 {
		src = rng.NewSeeded(cfg.Runner.Seed)
	} else {
		src = rng.NewCryptoSource()
	}

	scripts := scripting.NewManager(logger.Named("scripting"))
	if cfg.Scripting.ScriptDir != "" {
		if err := scripts.Load(cfg.Scripting.ScriptDir, cfg.Scripting.InstructionLimit); err != nil {
			return nil, err
		}
	}

	s := sim.New(simCfg, src, logger.Named("sim"), scripts)
	// Hooks run inside Step on the simulation goroutine, so reading the
	// snapshot here needs no extra locking.
	scripts.GetPlayer = func() *scripting.PlayerInfo {
		snap := s.Snapshot()
		return &scripting.PlayerInfo{
			X:     snap.Player.Pos.X(),
			Y:     snap.Player.Pos.Y(),
			HP:    snap.Player.HP,
			Armor: snap.Player.Armor,
			Power: snap.Player.Power,
			Level: snap.Level,
		}
	}

	logger.Info("runtime ready",
		zap.Int64("seed", cfg.Runner.Seed),
		zap.Int("loot_items", len(simCfg.LootTable.Items)),
		zap.String("script_dir", cfg.Scripting.ScriptDir),
	)
	return &Runtime{Config: cfg, Sim: s, Scripts: scripts, logger: logger}, nil
}

// Close releases the scripting VM.
func (r *Runtime) Close() {
	r.Scripts.Close()
}
