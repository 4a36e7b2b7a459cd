package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/famecs/famecs/internal/core/ecs"
	coresys "github.com/famecs/famecs/internal/core/system"
)

// ReportSystem logs the family table every interval ticks and, when enabled,
// verifies the index partition. A failed check is fatal to the session: it
// is recorded and returned by Err.
// Phase 3 (PostUpdate).
type ReportSystem struct {
	manager  *ecs.Manager
	interval int
	check    bool
	log      *zap.Logger

	tickCount int
	err       error
}

func NewReportSystem(m *ecs.Manager, interval int, check bool, log *zap.Logger) *ReportSystem {
	if interval <= 0 {
		interval = 1
	}
	return &ReportSystem{manager: m, interval: interval, check: check, log: log}
}

func (s *ReportSystem) Phase() coresys.Phase { return coresys.PhasePostUpdate }

func (s *ReportSystem) Update(_ time.Duration) {
	s.tickCount++
	if s.check && s.err == nil {
		if err := s.manager.Check(); err != nil {
			s.err = err
			s.log.Error("family index check failed", zap.Error(err))
		}
	}
	if s.tickCount%s.interval != 0 {
		return
	}
	fams := s.manager.Families()
	live := 0
	for _, f := range fams {
		if f.Size == 0 {
			continue
		}
		live++
		s.log.Debug("family", zap.Stringer("key", f.Key), zap.Int("size", f.Size))
	}
	s.log.Info("index report",
		zap.Int("tick", s.tickCount),
		zap.Int("entities", s.manager.Len()),
		zap.Int("families", len(fams)),
		zap.Int("occupied", live))
}

// Err returns the first consistency failure seen.
func (s *ReportSystem) Err() error { return s.err }
