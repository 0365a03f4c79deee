package scripting_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/castlesiege/internal/scripting"
)

func newTestManager(t testing.TB) (*scripting.Manager, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.DebugLevel)
	mgr := scripting.NewManager(zap.New(core))
	t.Cleanup(mgr.Close)
	return mgr, logs
}

func writeTempLua(t testing.TB, filename, src string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(src), 0644))
	return dir
}

func TestManager_Load_CallsHook(t *testing.T) {
	mgr, _ := newTestManager(t)
	dir := writeTempLua(t, "hooks.lua", `
		function test_hook(a, b)
			return a + b
		end
	`)
	require.NoError(t, mgr.Load(dir, 0))
	ret, err := mgr.CallHook("test_hook", lua.LNumber(3), lua.LNumber(4))
	require.NoError(t, err)
	assert.Equal(t, lua.LNumber(7), ret)
}

func TestManager_NoVM_NoOp(t *testing.T) {
	mgr, _ := newTestManager(t)
	ret, err := mgr.CallHook("anything")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
	assert.Equal(t, "", mgr.OnEventStart("Castle gate opened!"))
}

func TestManager_CallHook_MissingHook_NoOp(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.Load(writeTempLua(t, "empty.lua", `-- no functions`), 0))
	ret, err := mgr.CallHook("nonexistent_hook")
	require.NoError(t, err)
	assert.Equal(t, lua.LNil, ret)
}

func TestManager_CallHook_RuntimeError_WarnLogNoPanic(t *testing.T) {
	mgr, logs := newTestManager(t)
	require.NoError(t, mgr.Load(writeTempLua(t, "bad.lua", `
		function on_kill()
			error("intentional error")
		end
	`), 0))
	assert.NotPanics(t, func() { mgr.OnKill("0:0", 1, 2) })
	assert.NotEmpty(t, logs.FilterLevelExact(zap.WarnLevel).All())
}

func TestManager_InstructionLimit_StopsRunawayHook(t *testing.T) {
	mgr, logs := newTestManager(t)
	require.NoError(t, mgr.Load(writeTempLua(t, "loop.lua", `
		function on_event_start(label)
			while true do end
		end
	`), 1000))
	assert.Equal(t, "", mgr.OnEventStart("Castle gate opened!"))
	assert.NotEmpty(t, logs.FilterLevelExact(zap.WarnLevel).All())
}

func TestManager_Load_SyntaxError(t *testing.T) {
	mgr, _ := newTestManager(t)
	err := mgr.Load(writeTempLua(t, "broken.lua", `function (`), 0)
	assert.Error(t, err)
}

func TestManager_Load_MissingDir(t *testing.T) {
	mgr, _ := newTestManager(t)
	assert.Error(t, mgr.Load("/nonexistent/scripts", 0))
}

func TestManager_EventHooks_OverrideLabel(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.Load(writeTempLua(t, "events.lua", `
		function on_event_start(label)
			return label .. " Defend the walls!"
		end
		function on_event_end(label)
			return nil
		end
	`), 0))
	assert.Equal(t, "Castle gate opened! Defend the walls!", mgr.OnEventStart("Castle gate opened!"))
	assert.Equal(t, "", mgr.OnEventEnd("Castle peace"))
}

func TestManager_EnginePlayer(t *testing.T) {
	mgr, _ := newTestManager(t)
	mgr.GetPlayer = func() *scripting.PlayerInfo {
		return &scripting.PlayerInfo{X: 1, Y: 2, HP: 80, Armor: 4, Power: 12, Level: 3}
	}
	require.NoError(t, mgr.Load(writeTempLua(t, "player.lua", `
		function on_event_start(label)
			local p = engine.player()
			return "level " .. p.level .. " power " .. p.power
		end
	`), 0))
	assert.Equal(t, "level 3 power 12", mgr.OnEventStart("x"))
}

func TestManager_EngineLog(t *testing.T) {
	mgr, logs := newTestManager(t)
	require.NoError(t, mgr.Load(writeTempLua(t, "log.lua", `
		function on_level_up(level)
			engine.log("reached " .. level)
		end
	`), 0))
	mgr.OnLevelUp(4)
	entries := logs.FilterMessage("script").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "reached 4", entries[0].ContextMap()["msg"])
}

func TestSandbox_DangerousGlobalsRemoved(t *testing.T) {
	L := scripting.NewSandboxedState()
	defer L.Close()
	for _, name := range []string{"dofile", "loadfile", "load", "collectgarbage", "require", "os", "io"} {
		assert.Equal(t, lua.LNil, L.GetGlobal(name), "global %q must be absent", name)
	}
}

// Property: a numeric hook returns the same value it was given.
func TestProperty_CallHook_EchoesNumbers(t *testing.T) {
	mgr, _ := newTestManager(t)
	require.NoError(t, mgr.Load(writeTempLua(t, "echo.lua", `
		function echo(n) return n end
	`), 0))
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(-1_000_000, 1_000_000).Draw(rt, "n")
		ret, err := mgr.CallHook("echo", lua.LNumber(n))
		if err != nil || ret != lua.LNumber(n) {
			rt.Fatalf("echo(%d) = %v, %v", n, ret, err)
		}
	})
}
