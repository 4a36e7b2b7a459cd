package event_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famecs/famecs/internal/core/ecs"
	"github.com/famecs/famecs/internal/core/event"
)

type ping struct{ N int }

func TestBusDeliversNextTick(t *testing.T) {
	b := event.NewBus()
	var got []int
	event.Subscribe(b, func(p ping) { got = append(got, p.N) })

	event.Emit(b, ping{1})
	event.Emit(b, ping{2})
	assert.Equal(t, 2, b.Pending())

	b.DispatchAll()
	assert.Empty(t, got)

	b.SwapBuffers()
	assert.Equal(t, 0, b.Pending())
	b.DispatchAll()
	assert.Equal(t, []int{1, 2}, got)

	// front is replaced on the next swap
	b.SwapBuffers()
	b.DispatchAll()
	assert.Equal(t, []int{1, 2}, got)
}

type position struct{ X int }
type velocity struct{ X int }

func TestManagerObserver(t *testing.T) {
	b := event.NewBus()
	m := ecs.NewManager(ecs.WithObserver(event.NewManagerObserver(b)))

	var created []event.EntityCreated
	var moved []event.EntityMoved
	var destroyed []event.EntityDestroyed
	families := 0
	event.Subscribe(b, func(ev event.EntityCreated) { created = append(created, ev) })
	event.Subscribe(b, func(ev event.EntityMoved) { moved = append(moved, ev) })
	event.Subscribe(b, func(ev event.EntityDestroyed) { destroyed = append(destroyed, ev) })
	event.Subscribe(b, func(event.FamilyCreated) { families++ })

	e, err := m.CreateEntity(position{})
	require.NoError(t, err)
	require.NoError(t, m.AddComponent(e, position{X: 3}))
	require.NoError(t, m.AddComponent(e, velocity{}))
	require.NoError(t, m.DestroyEntity(e))

	b.SwapBuffers()
	b.DispatchAll()

	p, _ := m.FamilyKeyOf(ecs.TypeKey[position]())
	pv, _ := m.FamilyKeyOf(ecs.TypeKey[position](), ecs.TypeKey[velocity]())
	assert.Equal(t, []event.EntityCreated{{EntityID: e.ID(), Family: p}}, created)
	assert.Equal(t, []event.EntityMoved{{EntityID: e.ID(), From: p, To: pv}}, moved)
	assert.Equal(t, []event.EntityDestroyed{{EntityID: e.ID(), Family: pv}}, destroyed)
	assert.Equal(t, 2, families)
}
