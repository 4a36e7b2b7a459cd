package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/famecs/famecs/internal/core/ecs"
	coresys "github.com/famecs/famecs/internal/core/system"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end.
// Phase 4 (Cleanup).
type CleanupSystem struct {
	manager *ecs.Manager
	log     *zap.Logger
}

func NewCleanupSystem(m *ecs.Manager, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{manager: m, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	if n := s.manager.FlushDestroyQueue(); n > 0 {
		s.log.Debug("entities destroyed", zap.Int("count", n))
	}
}
