package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// RegisterModules registers the engine table into L:
//
//	engine.log(msg)   logs msg at Info level
//	engine.player()   returns {x, y, hp, armor, power, level} or nil
//
// Precondition: L must be from NewSandboxedState.
func (m *Manager) RegisterModules(L *lua.LState) {
	engine := L.NewTable()
	L.SetField(engine, "log", L.NewFunction(m.luaLog))
	L.SetField(engine, "player", L.NewFunction(m.luaPlayer))
	L.SetGlobal("engine", engine)
}

func (m *Manager) luaLog(L *lua.LState) int {
	msg := L.CheckString(1)
	m.logger.Info("script", zap.String("msg", msg))
	return 0
}

// luaPlayer runs inside CallHook, which already holds m.mu; GetPlayer must not
// call back into the Manager.
func (m *Manager) luaPlayer(L *lua.LState) int {
	if m.GetPlayer == nil {
		L.Push(lua.LNil)
		return 1
	}
	p := m.GetPlayer()
	if p == nil {
		L.Push(lua.LNil)
		return 1
	}
	t := L.NewTable()
	t.RawSetString("x", lua.LNumber(p.X))
	t.RawSetString("y", lua.LNumber(p.Y))
	t.RawSetString("hp", lua.LNumber(p.HP))
	t.RawSetString("armor", lua.LNumber(p.Armor))
	t.RawSetString("power", lua.LNumber(p.Power))
	t.RawSetString("level", lua.LNumber(p.Level))
	L.Push(t)
	return 1
}
