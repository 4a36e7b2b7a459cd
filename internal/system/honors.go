package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/famecs/famecs/internal/component"
	"github.com/famecs/famecs/internal/core/ecs"
	coresys "github.com/famecs/famecs/internal/core/system"
)

// HonorsSystem keeps the Honors component in step with each student's grades:
// a student whose credit-weighted mean reaches the threshold holds Honors,
// everyone else loses it. Students without grades are skipped.
// Phase 2 (Update).
type HonorsSystem struct {
	manager   *ecs.Manager
	students  *coresys.Query
	threshold float64
	log       *zap.Logger
}

func NewHonorsSystem(m *ecs.Manager, threshold float64, log *zap.Logger) *HonorsSystem {
	return &HonorsSystem{
		manager:   m,
		students:  coresys.NewQuery(m, ecs.TypeKey[*component.Student]()),
		threshold: threshold,
		log:       log,
	}
}

func (s *HonorsSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *HonorsSystem) Update(_ time.Duration) {
	honorsKey := ecs.TypeKey[*component.Honors]()
	for _, e := range s.students.Entities() {
		mean, ok := MeanGrade(e)
		if !ok {
			continue
		}
		has := e.Has(honorsKey)
		switch {
		case mean >= s.threshold:
			// refresh the mean even if already honored
			if err := s.manager.AddComponent(e, &component.Honors{Mean: mean}); err != nil {
				s.log.Warn("honors: award failed", zap.Uint64("entity", uint64(e.ID())), zap.Error(err))
				continue
			}
			if !has {
				s.log.Debug("honors awarded", zap.Uint64("entity", uint64(e.ID())), zap.Float64("mean", mean))
			}
		case has:
			if err := s.manager.RemoveComponent(e, honorsKey); err != nil {
				s.log.Warn("honors: revoke failed", zap.Uint64("entity", uint64(e.ID())), zap.Error(err))
			}
		}
	}
}

// MeanGrade returns the credit-weighted mean over every course-keyed Grade on e.
func MeanGrade(e *ecs.Entity) (float64, bool) {
	var sum, weight float64
	e.Each(func(_ ecs.Key, v any) {
		g, ok := v.(*component.Grade)
		if !ok {
			return
		}
		w := 1.0
		if g.Course != nil && g.Course.Credits > 0 {
			w = float64(g.Course.Credits)
		}
		sum += g.Score * w
		weight += w
	})
	if weight == 0 {
		return 0, false
	}
	return sum / weight, true
}
