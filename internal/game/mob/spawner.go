package mob

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/castlesiege/internal/game/geom"
	"github.com/cory-johannsen/castlesiege/internal/game/rng"
)

// SpawnMode selects where new mobs appear.
type SpawnMode string

const (
	// SpawnAnywhere places mobs uniformly across the arena.
	SpawnAnywhere SpawnMode = "anywhere"
	// SpawnEdges places mobs in a band along the left or right edge.
	SpawnEdges SpawnMode = "edges"
)

// SpawnConfig holds the uniform stat ranges for new mobs.
type SpawnConfig struct {
	Mode     SpawnMode
	HPMin    float64
	HPMax    float64
	PowerMin float64
	PowerMax float64
	// EdgeBand is the width of the spawn band in SpawnEdges mode.
	EdgeBand float64
}

// DefaultSpawnConfig returns the stock ranges: HP [40, 60), power [6, 10).
func DefaultSpawnConfig() SpawnConfig {
	return SpawnConfig{
		Mode:     SpawnAnywhere,
		HPMin:    40,
		HPMax:    60,
		PowerMin: 6,
		PowerMax: 10,
		EdgeBand: 60,
	}
}

// Validate checks the spawn configuration invariants.
//
// Postcondition: Returns nil iff the mode is known, 0 < HPMin <= HPMax,
// 0 <= PowerMin <= PowerMax and EdgeBand >= 0.
func (c SpawnConfig) Validate() error {
	var errs []string
	if c.Mode != SpawnAnywhere && c.Mode != SpawnEdges {
		errs = append(errs, fmt.Sprintf("spawn mode must be one of [anywhere, edges], got %q", c.Mode))
	}
	if c.HPMin <= 0 || c.HPMin > c.HPMax {
		errs = append(errs, fmt.Sprintf("hp range must satisfy 0 < min <= max, got [%g, %g]", c.HPMin, c.HPMax))
	}
	if c.PowerMin < 0 || c.PowerMin > c.PowerMax {
		errs = append(errs, fmt.Sprintf("power range must satisfy 0 <= min <= max, got [%g, %g]", c.PowerMin, c.PowerMax))
	}
	if c.EdgeBand < 0 {
		errs = append(errs, fmt.Sprintf("edge band must be >= 0, got %g", c.EdgeBand))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Spawner creates randomized mobs inside the arena.
type Spawner struct {
	cfg    SpawnConfig
	bounds geom.Bounds
	src    rng.Source
	pool   *Pool
}

// NewSpawner returns a Spawner that inserts into pool.
//
// Precondition: cfg passes Validate; src and pool must be non-nil.
func NewSpawner(cfg SpawnConfig, bounds geom.Bounds, src rng.Source, pool *Pool) *Spawner {
	if src == nil || pool == nil {
		panic("mob.NewSpawner: src and pool must not be nil")
	}
	return &Spawner{cfg: cfg, bounds: bounds, src: src, pool: pool}
}

// Spawn creates one alive mob and appends it to the pool.
//
// Postcondition: the new mob is alive with HP in [HPMin, HPMax] and power in
// [PowerMin, PowerMax]; MaxHP == HP.
func (s *Spawner) Spawn() ID {
	hp := rng.Uniform(s.src, s.cfg.HPMin, s.cfg.HPMax)
	return s.pool.Insert(Mob{
		Pos:   s.position(),
		HP:    hp,
		MaxHP: hp,
		Power: rng.Uniform(s.src, s.cfg.PowerMin, s.cfg.PowerMax),
		Alive: true,
		Hue:   rng.Uniform(s.src, 0, 360),
	})
}

// SpawnN spawns n mobs and returns their handles.
func (s *Spawner) SpawnN(n int) []ID {
	ids := make([]ID, 0, n)
	for i := 0; i < n; i++ {
		ids = append(ids, s.Spawn())
	}
	return ids
}

func (s *Spawner) position() geom.Vec {
	y := rng.Uniform(s.src, 0, s.bounds.Height)
	if s.cfg.Mode != SpawnEdges {
		return geom.Vec{rng.Uniform(s.src, 0, s.bounds.Width), y}
	}
	band := s.cfg.EdgeBand
	if band > s.bounds.Width/2 {
		band = s.bounds.Width / 2
	}
	x := rng.Uniform(s.src, 0, band)
	if s.src.Intn(2) == 1 {
		x = s.bounds.Width - x
	}
	return geom.Vec{x, y}
}
