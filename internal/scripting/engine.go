package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/famecs/famecs/internal/scenario"
)

// TickFunc is the global a script defines to run once per tick.
const TickFunc = "on_tick"

// Engine wraps a single gopher-lua VM bound to a scenario world.
// Single-goroutine access only (game loop).
type Engine struct {
	vm    *lua.LState
	world *scenario.World
	log   *zap.Logger
}

// NewEngine creates a Lua engine, installs the ecs API and loads every script
// in scriptsDir. An empty scriptsDir loads nothing.
func NewEngine(scriptsDir string, w *scenario.World, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, world: w, log: log}
	e.installAPI()

	if scriptsDir != "" {
		if err := e.loadDir(scriptsDir); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load scripts: %w", err)
		}
	}
	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// DoString runs a chunk of Lua in the engine's VM.
func (e *Engine) DoString(src string) error {
	return e.vm.DoString(src)
}

// HasTick reports whether a script defined on_tick.
func (e *Engine) HasTick() bool {
	return e.vm.GetGlobal(TickFunc) != lua.LNil
}

// Tick calls on_tick(tick) if a script defined it.
func (e *Engine) Tick(tick uint64) error {
	fn := e.vm.GetGlobal(TickFunc)
	if fn == lua.LNil {
		return nil
	}
	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    0,
		Protect: true,
	}, lua.LNumber(tick)); err != nil {
		return fmt.Errorf("lua %s: %w", TickFunc, err)
	}
	return nil
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
