// Package config provides Viper-based configuration loading for castlesiege.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/cory-johannsen/castlesiege/internal/game/combat"
	"github.com/cory-johannsen/castlesiege/internal/game/loot"
	"github.com/cory-johannsen/castlesiege/internal/game/mob"
	"github.com/cory-johannsen/castlesiege/internal/game/player"
	"github.com/cory-johannsen/castlesiege/internal/game/progression"
	"github.com/cory-johannsen/castlesiege/internal/game/worldevent"
	"github.com/cory-johannsen/castlesiege/internal/sim"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// ArenaConfig holds the play field settings.
type ArenaConfig struct {
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
	// MaxDelta caps a single simulation tick.
	MaxDelta time.Duration `mapstructure:"max_delta"`
	// Features enables decorative towers and banners.
	Features bool `mapstructure:"features"`
}

// PlayerConfig holds the player's starting stats.
type PlayerConfig struct {
	HP     float64 `mapstructure:"hp"`
	Armor  float64 `mapstructure:"armor"`
	Power  float64 `mapstructure:"power"`
	Speed  float64 `mapstructure:"speed"`
	Radius float64 `mapstructure:"radius"`
}

// MobsConfig holds spawning, chase and reward settings for mobs.
type MobsConfig struct {
	InitialCount int `mapstructure:"initial_count"`
	// MaxCount caps respawns; 0 disables the cap.
	MaxCount int `mapstructure:"max_count"`
	// SpawnMode is "anywhere" or "edges".
	SpawnMode string `mapstructure:"spawn_mode"`
	// ChaseMode is "aggro" or "always".
	ChaseMode    string        `mapstructure:"chase_mode"`
	HPMin        float64       `mapstructure:"hp_min"`
	HPMax        float64       `mapstructure:"hp_max"`
	PowerMin     float64       `mapstructure:"power_min"`
	PowerMax     float64       `mapstructure:"power_max"`
	Radius       float64       `mapstructure:"radius"`
	AggroRadius  float64       `mapstructure:"aggro_radius"`
	MeleeRadius  float64       `mapstructure:"melee_radius"`
	ChaseSpeed   float64       `mapstructure:"chase_speed"`
	RespawnDelay time.Duration `mapstructure:"respawn_delay"`
	XPReward     float64       `mapstructure:"xp_reward"`
	EdgeBand     float64       `mapstructure:"edge_band"`
}

// LootConfig holds drop lifetime, pickup and loot table settings.
type LootConfig struct {
	Timer        time.Duration `mapstructure:"timer"`
	PickupRadius float64       `mapstructure:"pickup_radius"`
	// TableFile is an optional YAML loot table; empty uses the built-in table.
	TableFile string `mapstructure:"table_file"`
	// InventoryDisplay is how many recent items the HUD lists.
	InventoryDisplay int `mapstructure:"inventory_display"`
}

// ProgressionConfig holds the leveling curve.
type ProgressionConfig struct {
	InitialThreshold int     `mapstructure:"initial_threshold"`
	Growth           float64 `mapstructure:"growth"`
	PowerPerLevel    float64 `mapstructure:"power_per_level"`
	ArmorPerLevel    float64 `mapstructure:"armor_per_level"`
}

// EventConfig holds the world event timings, bonus and labels.
type EventConfig struct {
	InitialDelay     time.Duration `mapstructure:"initial_delay"`
	PeacefulDuration time.Duration `mapstructure:"peaceful_duration"`
	ActiveDuration   time.Duration `mapstructure:"active_duration"`
	PowerBonus       float64       `mapstructure:"power_bonus"`
	ActiveLabel      string        `mapstructure:"active_label"`
	PeacefulLabel    string        `mapstructure:"peaceful_label"`
}

// ScriptingConfig holds the Lua hook settings.
type ScriptingConfig struct {
	// ScriptDir holds *.lua hook files; empty disables scripting.
	ScriptDir string `mapstructure:"script_dir"`
	// InstructionLimit bounds each hook call; 0 means unlimited.
	InstructionLimit int `mapstructure:"instruction_limit"`
}

// RunnerConfig holds the real-time loop settings.
type RunnerConfig struct {
	// TickRate is ticks per second.
	TickRate int `mapstructure:"tick_rate"`
	// StatusInterval is how often the headless runner logs a status line.
	StatusInterval time.Duration `mapstructure:"status_interval"`
	// Autopilot steers the player when no one is at the keyboard.
	Autopilot bool `mapstructure:"autopilot"`
	// Seed makes runs reproducible; 0 uses crypto/rand.
	Seed int64 `mapstructure:"seed"`
}

// TickInterval returns the wall-clock time between ticks.
//
// Precondition: TickRate > 0.
func (r RunnerConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(r.TickRate)
}

// Config is the top-level application configuration.
type Config struct {
	Logging     LoggingConfig     `mapstructure:"logging"`
	Arena       ArenaConfig       `mapstructure:"arena"`
	Player      PlayerConfig      `mapstructure:"player"`
	Mobs        MobsConfig        `mapstructure:"mobs"`
	Loot        LootConfig        `mapstructure:"loot"`
	Progression ProgressionConfig `mapstructure:"progression"`
	Event       EventConfig       `mapstructure:"event"`
	Scripting   ScriptingConfig   `mapstructure:"scripting"`
	Runner      RunnerConfig      `mapstructure:"runner"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateArena(c.Arena); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateLoot(c.Loot); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateScripting(c.Scripting); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateRunner(c.Runner); err != nil {
		errs = append(errs, err.Error())
	}
	if err := c.simConfig(loot.DefaultTable()).Validate(); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateArena(a ArenaConfig) error {
	if a.MaxDelta <= 0 {
		return fmt.Errorf("arena.max_delta must be > 0, got %s", a.MaxDelta)
	}
	return nil
}

func validateLoot(l LootConfig) error {
	if l.InventoryDisplay < 0 {
		return fmt.Errorf("loot.inventory_display must be >= 0, got %d", l.InventoryDisplay)
	}
	return nil
}

func validateScripting(s ScriptingConfig) error {
	if s.InstructionLimit < 0 {
		return fmt.Errorf("scripting.instruction_limit must be >= 0, got %d", s.InstructionLimit)
	}
	return nil
}

func validateRunner(r RunnerConfig) error {
	var errs []string
	if r.TickRate < 1 || r.TickRate > 1000 {
		errs = append(errs, fmt.Sprintf("runner.tick_rate must be 1-1000, got %d", r.TickRate))
	}
	if r.StatusInterval <= 0 {
		errs = append(errs, fmt.Sprintf("runner.status_interval must be > 0, got %s", r.StatusInterval))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// SimConfig converts the game sections into a simulation configuration,
// loading the loot table file when one is configured.
//
// Postcondition: Returns a sim.Config or a non-nil error from the table load.
func (c Config) SimConfig() (sim.Config, error) {
	table := loot.DefaultTable()
	if c.Loot.TableFile != "" {
		var err error
		if table, err = loot.LoadTable(c.Loot.TableFile); err != nil {
			return sim.Config{}, err
		}
	}
	return c.simConfig(table), nil
}

func (c Config) simConfig(table loot.Table) sim.Config {
	return sim.Config{
		Width:  c.Arena.Width,
		Height: c.Arena.Height,
		Player: player.Config{
			HP:     c.Player.HP,
			Armor:  c.Player.Armor,
			Power:  c.Player.Power,
			Speed:  c.Player.Speed,
			Radius: c.Player.Radius,
		},
		Spawn: mob.SpawnConfig{
			Mode:     mob.SpawnMode(c.Mobs.SpawnMode),
			HPMin:    c.Mobs.HPMin,
			HPMax:    c.Mobs.HPMax,
			PowerMin: c.Mobs.PowerMin,
			PowerMax: c.Mobs.PowerMax,
			EdgeBand: c.Mobs.EdgeBand,
		},
		Combat: combat.Config{
			Mode:        combat.ChaseMode(c.Mobs.ChaseMode),
			AggroRadius: c.Mobs.AggroRadius,
			MeleeRadius: c.Mobs.MeleeRadius,
			ChaseSpeed:  c.Mobs.ChaseSpeed,
		},
		InitialMobs:   c.Mobs.InitialCount,
		MaxMobs:       c.Mobs.MaxCount,
		MobRadius:     c.Mobs.Radius,
		RespawnDelay:  c.Mobs.RespawnDelay.Seconds(),
		XPReward:      c.Mobs.XPReward,
		DropLifetime:  c.Loot.Timer.Seconds(),
		PickupRadius:  c.Loot.PickupRadius,
		LootTable:     table,
		InventoryView: c.Loot.InventoryDisplay,
		Progression: progression.Config{
			InitialThreshold: c.Progression.InitialThreshold,
			Growth:           c.Progression.Growth,
			PowerPerLevel:    c.Progression.PowerPerLevel,
			ArmorPerLevel:    c.Progression.ArmorPerLevel,
		},
		Event: worldevent.Config{
			InitialDelay:     c.Event.InitialDelay.Seconds(),
			PeacefulDuration: c.Event.PeacefulDuration.Seconds(),
			ActiveDuration:   c.Event.ActiveDuration.Seconds(),
			PowerBonus:       c.Event.PowerBonus,
			ActiveLabel:      c.Event.ActiveLabel,
			PeacefulLabel:    c.Event.PeacefulLabel,
		},
		Features: c.Arena.Features,
	}
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and the
// environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with CASTLE_ prefix
	v.SetEnvPrefix("CASTLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Defaults returns a Viper instance holding only the built-in defaults.
func Defaults() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("arena.width", 960)
	v.SetDefault("arena.height", 600)
	v.SetDefault("arena.max_delta", "50ms")
	v.SetDefault("arena.features", true)

	v.SetDefault("player.hp", 100)
	v.SetDefault("player.armor", 0)
	v.SetDefault("player.power", 10)
	v.SetDefault("player.speed", 160)
	v.SetDefault("player.radius", 12)

	v.SetDefault("mobs.initial_count", 8)
	v.SetDefault("mobs.max_count", 0)
	v.SetDefault("mobs.spawn_mode", "anywhere")
	v.SetDefault("mobs.chase_mode", "aggro")
	v.SetDefault("mobs.hp_min", 40)
	v.SetDefault("mobs.hp_max", 60)
	v.SetDefault("mobs.power_min", 6)
	v.SetDefault("mobs.power_max", 10)
	v.SetDefault("mobs.radius", 14)
	v.SetDefault("mobs.aggro_radius", 90)
	v.SetDefault("mobs.melee_radius", 30)
	v.SetDefault("mobs.chase_speed", 40)
	v.SetDefault("mobs.respawn_delay", "2.5s")
	v.SetDefault("mobs.xp_reward", 25)
	v.SetDefault("mobs.edge_band", 60)

	v.SetDefault("loot.timer", "10s")
	v.SetDefault("loot.pickup_radius", 25)
	v.SetDefault("loot.table_file", "")
	v.SetDefault("loot.inventory_display", 6)

	v.SetDefault("progression.initial_threshold", 100)
	v.SetDefault("progression.growth", 1.3)
	v.SetDefault("progression.power_per_level", 2)
	v.SetDefault("progression.armor_per_level", 1)

	v.SetDefault("event.initial_delay", "45s")
	v.SetDefault("event.peaceful_duration", "45s")
	v.SetDefault("event.active_duration", "30s")
	v.SetDefault("event.power_bonus", 5)
	v.SetDefault("event.active_label", "Castle gate opened!")
	v.SetDefault("event.peaceful_label", "Castle peace")

	v.SetDefault("scripting.script_dir", "")
	v.SetDefault("scripting.instruction_limit", 100000)

	v.SetDefault("runner.tick_rate", 60)
	v.SetDefault("runner.status_interval", "5s")
	v.SetDefault("runner.autopilot", true)
	v.SetDefault("runner.seed", 0)
}
