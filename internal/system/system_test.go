package system_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/famecs/famecs/internal/component"
	"github.com/famecs/famecs/internal/core/ecs"
	"github.com/famecs/famecs/internal/core/event"
	coresys "github.com/famecs/famecs/internal/core/system"
	"github.com/famecs/famecs/internal/system"
)

var honorsKey = ecs.TypeKey[*component.Honors]()

func enrol(t *testing.T, m *ecs.Manager, name string, grades map[*component.Course]float64) *ecs.Entity {
	t.Helper()
	cs := []any{&component.Student{Name: name}}
	for c, score := range grades {
		cs = append(cs, &component.Grade{Course: c, Score: score})
	}
	e, err := m.CreateEntity(cs...)
	require.NoError(t, err)
	return e
}

func TestHonorsSystem(t *testing.T) {
	m := ecs.NewManager()
	algebra := &component.Course{Code: "MATH101", Credits: 3}
	art := &component.Course{Code: "ART100", Credits: 1}
	for _, c := range []*component.Course{algebra, art} {
		_, err := m.RegisterSourceComponent(c)
		require.NoError(t, err)
	}

	alice := enrol(t, m, "alice", map[*component.Course]float64{algebra: 95, art: 70})
	bob := enrol(t, m, "bob", map[*component.Course]float64{algebra: 60, art: 100})
	carol := enrol(t, m, "carol", nil)

	s := system.NewHonorsSystem(m, 85, zaptest.NewLogger(t))
	s.Update(time.Millisecond)

	assert.True(t, alice.Has(honorsKey))
	h, _ := ecs.Get[*component.Honors](alice)
	assert.InDelta(t, (95*3+70*1)/4.0, h.Mean, 1e-9)
	assert.False(t, bob.Has(honorsKey))
	assert.False(t, carol.Has(honorsKey))

	// alice drops below the threshold
	require.NoError(t, m.AddComponent(alice, &component.Grade{Course: algebra, Score: 50}))
	s.Update(time.Millisecond)
	assert.False(t, alice.Has(honorsKey))
	assert.NoError(t, m.Check())
}

func TestMeanGrade(t *testing.T) {
	m := ecs.NewManager()
	e, err := m.CreateEntity(&component.Student{}, &component.Grade{Score: 80})
	require.NoError(t, err)
	mean, ok := system.MeanGrade(e)
	require.True(t, ok)
	assert.Equal(t, 80.0, mean)

	empty, err := m.CreateEntity(&component.Student{})
	require.NoError(t, err)
	_, ok = system.MeanGrade(empty)
	assert.False(t, ok)
}

func TestExpiryAndCleanup(t *testing.T) {
	log := zaptest.NewLogger(t)
	m := ecs.NewManager()
	short, err := m.CreateEntity(&component.Expiry{Ticks: 1})
	require.NoError(t, err)
	long, err := m.CreateEntity(&component.Expiry{Ticks: 3})
	require.NoError(t, err)

	r := coresys.NewRunner()
	r.Register(system.NewCleanupSystem(m, log))
	r.Register(system.NewExpirySystem(m, log))

	r.Tick(time.Millisecond)
	assert.True(t, short.Destroyed())
	assert.False(t, long.Destroyed())

	r.Tick(time.Millisecond)
	r.Tick(time.Millisecond)
	assert.True(t, long.Destroyed())
	assert.Equal(t, 0, m.Len())
}

func TestEventDispatchSystem(t *testing.T) {
	bus := event.NewBus()
	m := ecs.NewManager(ecs.WithObserver(event.NewManagerObserver(bus)))
	created := 0
	event.Subscribe(bus, func(event.EntityCreated) { created++ })

	_, err := m.CreateEntity(&component.Student{Name: "a"})
	require.NoError(t, err)

	s := system.NewEventDispatchSystem(bus)
	assert.Equal(t, coresys.PhasePreUpdate, s.Phase())
	s.Update(time.Millisecond)
	assert.Equal(t, 1, created)
	s.Update(time.Millisecond)
	assert.Equal(t, 1, created)
}

func TestReportSystem(t *testing.T) {
	m := ecs.NewManager()
	_, err := m.CreateEntity(&component.Student{})
	require.NoError(t, err)

	s := system.NewReportSystem(m, 2, true, zaptest.NewLogger(t))
	for i := 0; i < 4; i++ {
		s.Update(time.Millisecond)
	}
	assert.NoError(t, s.Err())
}
