// Package main runs castlesiege in a desktop window.
package main

import (
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/castlesiege/internal/config"
	"github.com/cory-johannsen/castlesiege/internal/frontend/window"
	"github.com/cory-johannsen/castlesiege/internal/gameserver"
	"github.com/cory-johannsen/castlesiege/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	autopilot := flag.Bool("autopilot", false, "steer the player when no key is held")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	rt, err := gameserver.NewRuntime(cfg, logger)
	if err != nil {
		logger.Fatal("building runtime", zap.Error(err))
	}
	defer rt.Close()

	game := window.New(rt.Sim, window.Options{
		MaxDelta:      cfg.Arena.MaxDelta,
		InventorySize: cfg.Loot.InventoryDisplay,
		Autopilot:     *autopilot,
	}, logger.Named("window"))

	logger.Info("window starting",
		zap.Float64("width", cfg.Arena.Width),
		zap.Float64("height", cfg.Arena.Height),
		zap.Duration("startup", time.Since(start)),
	)
	if err := game.Run("Castle Siege"); err != nil {
		logger.Fatal("window error", zap.Error(err))
	}
	logger.Info("window closed")
}
