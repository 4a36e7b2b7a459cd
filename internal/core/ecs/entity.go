package ecs

import (
	"slices"
)

// EntityID is assigned monotonically by a Manager and never reused.
type EntityID uint64

type entry struct {
	value any
	id    ComponentID
}

// Entity holds at most one component per Key. All mutation goes through the
// owning Manager so the family index stays consistent; the accessors here are
// read-only.
type Entity struct {
	id         EntityID
	manager    *Manager
	components map[Key]entry
	fam        *family
	slot       int
	destroyed  bool
}

func newEntity(id EntityID, m *Manager) *Entity {
	return &Entity{
		id:         id,
		manager:    m,
		components: make(map[Key]entry, 4),
		slot:       -1,
	}
}

func (e *Entity) ID() EntityID      { return e.id }
func (e *Entity) Manager() *Manager { return e.manager }

// Get returns the component stored under k.
func (e *Entity) Get(k Key) (any, bool) {
	e.manager.mu.RLock()
	defer e.manager.mu.RUnlock()
	s, ok := e.components[k]
	return s.value, ok
}

// Has reports whether a component is stored under k.
func (e *Entity) Has(k Key) bool {
	_, ok := e.Get(k)
	return ok
}

// Len returns the number of components held.
func (e *Entity) Len() int {
	e.manager.mu.RLock()
	defer e.manager.mu.RUnlock()
	return len(e.components)
}

// Keys returns the held keys ordered by resolved id.
func (e *Entity) Keys() []Key {
	e.manager.mu.RLock()
	defer e.manager.mu.RUnlock()
	keys := make([]Key, 0, len(e.components))
	for k := range e.components {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, func(a, b Key) int {
		return int(e.components[a].id) - int(e.components[b].id)
	})
	return keys
}

// Each calls fn for every component, ordered by resolved id. fn must not mutate
// the entity through the Manager.
func (e *Entity) Each(fn func(Key, any)) {
	for _, k := range e.Keys() {
		if v, ok := e.Get(k); ok {
			fn(k, v)
		}
	}
}

// FamilyKey returns the canonical key of the entity's current component set.
func (e *Entity) FamilyKey() FamilyKey {
	e.manager.mu.RLock()
	defer e.manager.mu.RUnlock()
	return e.familyKey()
}

// Destroyed reports whether the entity has been removed from its Manager.
func (e *Entity) Destroyed() bool {
	e.manager.mu.RLock()
	defer e.manager.mu.RUnlock()
	return e.destroyed
}

func (e *Entity) familyKey() FamilyKey {
	ids := make([]ComponentID, 0, len(e.components))
	for _, s := range e.components {
		ids = append(ids, s.id)
	}
	slices.Sort(ids)
	return packKey(ids)
}

// attach stores each component under its key, overwriting. Keys must already be
// resolved against the registry.
func (e *Entity) attach(keys []Key, ids []ComponentID, components []any) {
	for i, c := range components {
		e.components[keys[i]] = entry{value: c, id: ids[i]}
	}
}

// holds returns a *MissingComponentError for the first key e does not hold.
func (e *Entity) holds(keys []Key) error {
	for _, k := range keys {
		if _, ok := e.components[k]; !ok {
			return &MissingComponentError{Entity: e.id, Key: k}
		}
	}
	return nil
}

// detach removes every key. Callers check holds first.
func (e *Entity) detach(keys []Key) {
	for _, k := range keys {
		delete(e.components, k)
	}
}

// Get returns the component of type T held by e.
func Get[T any](e *Entity) (T, bool) {
	v, ok := e.Get(TypeKey[T]())
	if !ok {
		var zero T
		return zero, false
	}
	t, ok := v.(T)
	return t, ok
}
