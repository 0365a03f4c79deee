// Package main runs castlesiege headless in real time, printing the HUD and
// gameplay notices to the terminal until interrupted.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/castlesiege/internal/config"
	"github.com/cory-johannsen/castlesiege/internal/gameserver"
	"github.com/cory-johannsen/castlesiege/internal/observability"
	"github.com/cory-johannsen/castlesiege/internal/server"
	"github.com/cory-johannsen/castlesiege/internal/sim"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	quiet := flag.Bool("quiet", false, "log status only; do not print the HUD")
	duration := flag.Duration("duration", 0, "stop after this long; 0 runs until interrupted")
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

	var input sim.InputFunc
	if cfg.Runner.Autopilot {
		input = sim.Autopilot
	}
	loop := sim.NewLoop(rt.Sim, cfg.Runner.TickInterval(), cfg.Arena.MaxDelta, input, logger.Named("loop"))

	var out io.Writer = os.Stdout
	if *quiet {
		out = nil
	}
	status := server.NewStatusService(loop, rt.Sim, cfg.Runner.StatusInterval, cfg.Loot.InventoryDisplay, logger.Named("status"), out)

	lifecycle := server.NewLifecycle(logger)
	lifecycle.Add("loop", server.NewLoopService(loop))
	lifecycle.Add("status", status)

	ctx := context.Background()
	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	logger.Info("headless runner initialized",
		zap.Int("tick_rate", cfg.Runner.TickRate),
		zap.Bool("autopilot", cfg.Runner.Autopilot),
		zap.Duration("startup", time.Since(start)),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("runner error", zap.Error(err))
	}
	status.Report()
}
