package sim_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/cory-johannsen/castlesiege/internal/game/player"
	"github.com/cory-johannsen/castlesiege/internal/game/rng"
	"github.com/cory-johannsen/castlesiege/internal/sim"
)

func newIdleLoop(t *testing.T, input sim.InputFunc) *sim.Loop {
	t.Helper()
	cfg := sim.DefaultConfig()
	cfg.InitialMobs = 0
	s := sim.New(cfg, rng.NewSeeded(1), zaptest.NewLogger(t), nil)
	return sim.NewLoop(s, 10*time.Millisecond, sim.DefaultMaxDelta, input, zaptest.NewLogger(t))
}

func TestLoop_Advance_UsesInputAndPublishesSnapshot(t *testing.T) {
	l := newIdleLoop(t, func(sim.Snapshot) player.KeySet {
		return player.NewKeySet(player.KeyD)
	})
	before := l.Snapshot()
	l.Advance(time.Now().Add(time.Hour))
	after := l.Snapshot()

	assert.Equal(t, before.Tick+1, after.Tick)
	// Stalled frame is clamped to the cap: 160 px/s × 0.05 s.
	assert.InDelta(t, before.Player.Pos.X()+8, after.Player.Pos.X(), 1e-9)
}

func TestLoop_PauseSkipsSteps(t *testing.T) {
	l := newIdleLoop(t, nil)
	l.Pause()
	assert.True(t, l.Paused())
	l.Advance(time.Now().Add(time.Hour))
	assert.Equal(t, uint64(0), l.Snapshot().Tick)

	l.Resume()
	assert.False(t, l.Paused())
	l.Advance(time.Now().Add(2 * time.Hour))
	assert.Equal(t, uint64(1), l.Snapshot().Tick)
}

func TestLoop_Run_StopsOnCancel(t *testing.T) {
	l := newIdleLoop(t, nil)
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() { errCh <- l.Run(ctx) }()

	require.Eventually(t, func() bool { return l.Snapshot().Tick > 0 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop in time")
	}
	<-l.Done()
}

func TestNewLoop_Panics(t *testing.T) {
	assert.Panics(t, func() { sim.NewLoop(nil, time.Millisecond, time.Millisecond, nil, zaptest.NewLogger(t)) })
}
