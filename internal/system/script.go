package system

import (
	"time"

	"go.uber.org/zap"

	coresys "github.com/famecs/famecs/internal/core/system"
	"github.com/famecs/famecs/internal/scripting"
)

// ScriptSystem runs the Lua on_tick hook. A failing script is logged and the
// tick continues.
// Phase 2 (Update).
type ScriptSystem struct {
	lua   *scripting.Engine
	log   *zap.Logger
	ticks uint64
}

func NewScriptSystem(lua *scripting.Engine, log *zap.Logger) *ScriptSystem {
	return &ScriptSystem{lua: lua, log: log}
}

func (s *ScriptSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ScriptSystem) Update(_ time.Duration) {
	s.ticks++
	if err := s.lua.Tick(s.ticks); err != nil {
		s.log.Error("script tick failed", zap.Uint64("tick", s.ticks), zap.Error(err))
	}
}
