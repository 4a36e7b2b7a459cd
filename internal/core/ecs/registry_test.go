package ecs_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/famecs/famecs/internal/core/ecs"
)

func TestRegistryTypeIDs(t *testing.T) {
	r := ecs.NewRegistry()
	ta := reflect.TypeOf(compA{})
	tb := reflect.TypeOf(compB{})

	assert.Equal(t, ecs.ComponentID(0), r.TypeID(ta))
	assert.Equal(t, ecs.ComponentID(1), r.TypeID(tb))
	assert.Equal(t, ecs.ComponentID(0), r.TypeID(ta))
	assert.Equal(t, 2, r.NumTypes())

	got, ok := r.Type(1)
	require.True(t, ok)
	assert.Equal(t, tb, got)
	_, ok = r.Type(-1)
	assert.False(t, ok)

	_, ok = r.LookupType(reflect.TypeOf(compC{}))
	assert.False(t, ok)
	assert.Equal(t, 2, r.NumTypes())
}

func TestRegistrySources(t *testing.T) {
	r := ecs.NewRegistry()
	c1, c2 := &course{}, &course{}

	assert.Equal(t, ecs.ComponentID(0), c1.SourceID())
	_, err := r.Resolve(ecs.SourceKey(c1))
	assert.ErrorIs(t, err, ecs.ErrUnregisteredSource)

	id1, err := r.RegisterSource(c1)
	require.NoError(t, err)
	id2, err := r.RegisterSource(c2)
	require.NoError(t, err)
	assert.Equal(t, ecs.ComponentID(-1), id1)
	assert.Equal(t, ecs.ComponentID(-2), id2)
	assert.Equal(t, id2, c2.SourceID())

	got, err := r.Resolve(ecs.SourceKey(c2))
	require.NoError(t, err)
	assert.Equal(t, id2, got)

	// sources do not consume type ids
	assert.Equal(t, ecs.ComponentID(0), r.TypeID(reflect.TypeOf(compA{})))

	_, err = ecs.NewRegistry().Resolve(ecs.SourceKey(c1))
	assert.ErrorIs(t, err, ecs.ErrForeignSource)
}

func TestKeyOf(t *testing.T) {
	c := &course{}
	assert.Equal(t, ecs.TypeKey[compA](), ecs.KeyOf(compA{}))
	assert.Equal(t, ecs.SourceKey(c), ecs.KeyOf(grade{Course: c}))
	assert.Equal(t, ecs.TypeKey[grade](), ecs.KeyOf(grade{}))
	assert.True(t, ecs.SourceKey(c).IsSource())
	assert.Nil(t, ecs.SourceKey(c).Type())
	assert.Equal(t, reflect.TypeOf(compA{}), ecs.TypeKey[compA]().Type())
	assert.Equal(t, "ecs_test.compA", ecs.TypeKey[compA]().String())
}

// looseGrade returns its course without a nil check, so a missing course
// arrives as a nil *course inside a non-nil Sourcer.
type looseGrade struct {
	Course *course
	Score  int
}

func (g looseGrade) ComponentSource() ecs.Sourcer { return g.Course }

func TestKeyOfNilPointerSource(t *testing.T) {
	assert.Equal(t, ecs.TypeKey[looseGrade](), ecs.KeyOf(looseGrade{}))

	m := ecs.NewManager()
	e, err := m.CreateEntity(looseGrade{Score: 3})
	require.NoError(t, err)
	assert.True(t, e.Has(ecs.TypeKey[looseGrade]()))

	c := &course{}
	_, err = m.RegisterSourceComponent(c)
	require.NoError(t, err)
	require.NoError(t, m.AddComponent(e, looseGrade{Course: c, Score: 4}))
	assert.True(t, e.Has(ecs.SourceKey(c)))
	assert.Equal(t, 2, e.Len())
	assert.NoError(t, m.Check())
}
