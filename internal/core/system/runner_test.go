package system_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famecs/famecs/internal/core/ecs"
	"github.com/famecs/famecs/internal/core/system"
)

func TestRunnerPhaseOrder(t *testing.T) {
	var trace []string
	rec := func(name string, p system.Phase) system.System {
		return system.Func{P: p, Fn: func(time.Duration) { trace = append(trace, name) }}
	}

	r := system.NewRunner()
	r.Register(rec("cleanup", system.PhaseCleanup))
	r.Register(rec("update-1", system.PhaseUpdate))
	r.Register(rec("input", system.PhaseInput))
	r.Register(rec("update-2", system.PhaseUpdate))

	r.Tick(time.Millisecond)
	assert.Equal(t, []string{"input", "update-1", "update-2", "cleanup"}, trace)
	assert.Equal(t, uint64(1), r.Ticks())

	trace = nil
	r.TickPhase(system.PhaseUpdate, time.Millisecond)
	assert.Equal(t, []string{"update-1", "update-2"}, trace)
	assert.Equal(t, uint64(1), r.Ticks())
	assert.Equal(t, 4, r.Len())
}

func TestPhaseString(t *testing.T) {
	assert.Equal(t, "update", system.PhaseUpdate.String())
	assert.Equal(t, "unknown", system.Phase(42).String())
}

type tag struct{}
type extra struct{}

func TestQuery(t *testing.T) {
	m := ecs.NewManager()
	q := system.NewQuery(m, ecs.TypeKey[tag]())
	exact := system.NewExactQuery(m, ecs.TypeKey[tag]())
	assert.False(t, q.Ready())
	assert.Empty(t, q.Entities())

	plain, err := m.CreateEntity(tag{})
	require.NoError(t, err)
	_, err = m.CreateEntity(tag{}, extra{})
	require.NoError(t, err)

	assert.True(t, q.Ready())
	assert.Len(t, q.Entities(), 2)
	assert.Len(t, q.Entities(ecs.TypeKey[extra]()), 1)
	require.Len(t, exact.Entities(), 1)
	assert.Equal(t, plain.ID(), exact.Entities()[0].ID())
}
