package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/famecs/famecs/internal/component"
	"github.com/famecs/famecs/internal/core/ecs"
	coresys "github.com/famecs/famecs/internal/core/system"
)

// ExpirySystem counts Expiry down once per tick and queues entities that reach
// zero for CleanupSystem.
// Phase 2 (Update).
type ExpirySystem struct {
	manager *ecs.Manager
	log     *zap.Logger
}

func NewExpirySystem(m *ecs.Manager, log *zap.Logger) *ExpirySystem {
	return &ExpirySystem{manager: m, log: log}
}

func (s *ExpirySystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ExpirySystem) Update(_ time.Duration) {
	ecs.Each1(s.manager, func(e *ecs.Entity, x *component.Expiry) {
		x.Ticks--
		if x.Ticks > 0 {
			return
		}
		if err := s.manager.MarkForDestruction(e); err != nil {
			s.log.Warn("expiry: mark failed", zap.Uint64("entity", uint64(e.ID())), zap.Error(err))
		}
	})
}
