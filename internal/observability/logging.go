// Package observability provides logging helpers for the simulation binaries.
package observability

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/cory-johannsen/castlesiege/internal/config"
	"github.com/cory-johannsen/castlesiege/internal/sim"
)

// NewLogger creates a structured logger from the given logging configuration.
//
// Precondition: cfg.Level must be one of "debug", "info", "warn", "error".
// Precondition: cfg.Format must be "json" or "console".
// Postcondition: Returns a configured zap.Logger or a non-nil error.
func NewLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", cfg.Level, err)
	}

	var zapCfg zap.Config
	switch cfg.Format {
	case "json":
		zapCfg = zap.NewProductionConfig()
	case "console":
		zapCfg = zap.NewDevelopmentConfig()
		// Warn-level stack traces drown the per-tick debug output.
		zapCfg.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// StatusFields summarises a snapshot as structured log fields for the
// periodic status line.
func StatusFields(snap sim.Snapshot) []zap.Field {
	return []zap.Field{
		zap.Uint64("tick", snap.Tick),
		zap.Float64("sim_time", snap.Time),
		zap.Int("level", snap.Level),
		zap.Float64("xp", snap.XP),
		zap.Int("xp_next", snap.XPNext),
		zap.Float64("hp", snap.Player.HP),
		zap.Float64("armor", snap.Player.Armor),
		zap.Float64("power", snap.Player.Power),
		zap.Int("mobs", len(snap.Mobs)),
		zap.Int("drops", len(snap.Drops)),
		zap.Int("inventory", snap.InventoryCount),
		zap.String("event", snap.Event.Label),
	}
}
