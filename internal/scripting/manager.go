package scripting

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Hook names the simulation calls.
const (
	HookKill       = "on_kill"
	HookLevelUp    = "on_level_up"
	HookEventStart = "on_event_start"
	HookEventEnd   = "on_event_end"
)

// PlayerInfo is a snapshot of the player passed to engine.player().
type PlayerInfo struct {
	X, Y  float64
	HP    float64
	Armor float64
	Power float64
	Level int
}

// Manager owns one sandboxed LState and dispatches simulation hooks to it.
// With no scripts loaded every hook is a no-op.
//
// Manager is safe for concurrent use; calls into the VM are serialized.
type Manager struct {
	mu        sync.Mutex
	L         *lua.LState
	instLimit int
	logger    *zap.Logger

	// GetPlayer is injected after construction. nil makes engine.player()
	// return nil.
	GetPlayer func() *PlayerInfo
}

// NewManager creates a Manager with no VM loaded.
//
// Precondition: logger must be non-nil.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{logger: logger}
}

// Load creates a sandboxed VM, registers the engine.* module, then executes
// every *.lua file in scriptDir in lexicographic order. A previously loaded
// VM is replaced only when the new one loads cleanly.
//
// Precondition: scriptDir must be a readable directory; instLimit <= 0 uses
// DefaultInstructionLimit.
// Postcondition: Returns an error on read or Lua load failure.
func (m *Manager) Load(scriptDir string, instLimit int) error {
	entries, err := os.ReadDir(scriptDir)
	if err != nil {
		return fmt.Errorf("scripting: reading script dir %q: %w", scriptDir, err)
	}
	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".lua" {
			luaFiles = append(luaFiles, filepath.Join(scriptDir, e.Name()))
		}
	}
	sort.Strings(luaFiles)

	L := NewSandboxedState()
	m.RegisterModules(L)
	for _, path := range luaFiles {
		err := withBudget(L, instLimit, func() error { return L.DoFile(path) })
		if err != nil {
			L.Close()
			return fmt.Errorf("scripting: loading %q: %w", path, err)
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.L != nil {
		m.L.Close()
	}
	m.L = L
	m.instLimit = instLimit
	m.logger.Info("scripts loaded",
		zap.String("dir", scriptDir),
		zap.Int("files", len(luaFiles)),
	)
	return nil
}

// Close releases the VM. Subsequent hooks are no-ops.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.L != nil {
		m.L.Close()
		m.L = nil
	}
}

// CallHook calls the named Lua global function. Returns (LNil, nil) if no VM
// is loaded or the hook is not defined. Lua runtime errors, including an
// exhausted instruction budget, are logged at Warn level and never
// propagated.
//
// Postcondition: Returns the first return value of the hook, or LNil.
func (m *Manager) CallHook(hook string, args ...lua.LValue) (lua.LValue, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.L == nil {
		return lua.LNil, nil
	}
	L := m.L
	fn := L.GetGlobal(hook)
	if fn.Type() != lua.LTFunction {
		return lua.LNil, nil
	}

	err := withBudget(L, m.instLimit, func() error {
		return L.CallByParam(lua.P{
			Fn:      fn,
			NRet:    1,
			Protect: true,
		}, args...)
	})
	if err != nil {
		m.logger.Warn("scripting: Lua runtime error",
			zap.String("hook", hook),
			zap.Error(err),
		)
		return lua.LNil, nil
	}
	ret := L.Get(-1)
	L.Pop(1)
	return ret, nil
}

// OnKill fires on_kill(mob_id, x, y).
func (m *Manager) OnKill(mobID string, x, y float64) {
	_, _ = m.CallHook(HookKill, lua.LString(mobID), lua.LNumber(x), lua.LNumber(y))
}

// OnLevelUp fires on_level_up(level).
func (m *Manager) OnLevelUp(level int) {
	_, _ = m.CallHook(HookLevelUp, lua.LNumber(level))
}

// OnEventStart fires on_event_start(label) and returns a replacement status
// label when the hook returns a non-empty string.
func (m *Manager) OnEventStart(label string) string {
	return stringResult(m.CallHook(HookEventStart, lua.LString(label)))
}

// OnEventEnd fires on_event_end(label) and returns a replacement status label
// when the hook returns a non-empty string.
func (m *Manager) OnEventEnd(label string) string {
	return stringResult(m.CallHook(HookEventEnd, lua.LString(label)))
}

func stringResult(v lua.LValue, err error) string {
	if err != nil {
		return ""
	}
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}
