package scripting

import (
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/famecs/famecs/internal/core/ecs"
	"github.com/famecs/famecs/internal/scenario"
)

// installAPI exposes the manager to scripts as the global table "ecs". Entities
// are passed as numeric ids; component kinds and sources ("@name") as strings.
func (e *Engine) installAPI() {
	api := e.vm.SetFuncs(e.vm.NewTable(), map[string]lua.LGFunction{
		"query":       e.luaQuery(false),
		"query_exact": e.luaQuery(true),
		"count":       e.luaCount,
		"has":         e.luaHas,
		"add":         e.luaAdd,
		"remove":      e.luaRemove,
		"create":      e.luaCreate,
		"destroy":     e.luaDestroy,
		"entity":      e.luaEntity,
		"log":         e.luaLog,
	})
	e.vm.SetGlobal("ecs", api)
}

func (e *Engine) luaQuery(exact bool) lua.LGFunction {
	return func(L *lua.LState) int {
		es := e.query(L, 1, exact)
		t := L.CreateTable(len(es), 0)
		for _, ent := range es {
			t.Append(lua.LNumber(ent.ID()))
		}
		L.Push(t)
		return 1
	}
}

// ecs.count(ref...) -> number of entities holding at least refs
func (e *Engine) luaCount(L *lua.LState) int {
	L.Push(lua.LNumber(len(e.query(L, 1, false))))
	return 1
}

// ecs.has(id, ref) -> bool
func (e *Engine) luaHas(L *lua.LState) int {
	ent := e.checkEntity(L, 1)
	key := e.checkKey(L, 2)
	L.Push(lua.LBool(ent.Has(key)))
	return 1
}

// ecs.add(id, kind, fields[, source])
func (e *Engine) luaAdd(L *lua.LState) int {
	ent := e.checkEntity(L, 1)
	spec := scenario.ComponentSpec{
		Kind:   L.CheckString(2),
		Fields: tableFields(L.OptTable(3, L.NewTable())),
		Source: L.OptString(4, ""),
	}
	c, err := e.world.Component(spec)
	if err != nil {
		L.RaiseError("ecs.add: %v", err)
		return 0
	}
	if err := e.world.Manager.AddComponent(ent, c); err != nil {
		L.RaiseError("ecs.add: %v", err)
	}
	return 0
}

// ecs.remove(id, ref)
func (e *Engine) luaRemove(L *lua.LState) int {
	ent := e.checkEntity(L, 1)
	key := e.checkKey(L, 2)
	if err := e.world.Manager.RemoveComponent(ent, key); err != nil {
		L.RaiseError("ecs.remove: %v", err)
	}
	return 0
}

// ecs.create([name]) -> id of a new entity without components
func (e *Engine) luaCreate(L *lua.LState) int {
	ent, err := e.world.Spawn(L.OptString(1, ""), nil)
	if err != nil {
		L.RaiseError("ecs.create: %v", err)
		return 0
	}
	L.Push(lua.LNumber(ent.ID()))
	return 1
}

// ecs.destroy(id) queues the entity for end-of-tick cleanup.
func (e *Engine) luaDestroy(L *lua.LState) int {
	ent := e.checkEntity(L, 1)
	if err := e.world.Manager.MarkForDestruction(ent); err != nil {
		L.RaiseError("ecs.destroy: %v", err)
	}
	return 0
}

// ecs.entity(name) -> id or nil
func (e *Engine) luaEntity(L *lua.LState) int {
	ent, ok := e.world.Entity(L.CheckString(1))
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(ent.ID()))
	return 1
}

func (e *Engine) luaLog(L *lua.LState) int {
	e.log.Info("lua", zap.String("msg", L.CheckString(1)))
	return 0
}

func (e *Engine) query(L *lua.LState, from int, exact bool) []*ecs.Entity {
	keys := make([]ecs.Key, 0, L.GetTop())
	for i := from; i <= L.GetTop(); i++ {
		keys = append(keys, e.checkKey(L, i))
	}
	if exact {
		return e.world.Manager.QueryExact(keys...)
	}
	return e.world.Manager.QuerySuperset(keys...)
}

func (e *Engine) checkEntity(L *lua.LState, n int) *ecs.Entity {
	id := L.CheckInt64(n)
	ent, ok := e.world.Manager.Entity(ecs.EntityID(id))
	if !ok {
		L.ArgError(n, "no such entity")
		return nil
	}
	return ent
}

func (e *Engine) checkKey(L *lua.LState, n int) ecs.Key {
	key, err := e.world.Key(L.CheckString(n))
	if err != nil {
		L.ArgError(n, err.Error())
	}
	return key
}

// tableFields converts a flat Lua table to component fields.
func tableFields(t *lua.LTable) scenario.Fields {
	f := make(scenario.Fields)
	t.ForEach(func(k, v lua.LValue) {
		name, ok := k.(lua.LString)
		if !ok {
			return
		}
		switch val := v.(type) {
		case lua.LNumber:
			f[string(name)] = float64(val)
		case lua.LString:
			f[string(name)] = string(val)
		case lua.LBool:
			f[string(name)] = bool(val)
		}
	})
	return f
}
