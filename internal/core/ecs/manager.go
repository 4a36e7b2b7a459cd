package ecs

import (
	"reflect"
	"sync"

	"go.uber.org/zap"
)

// Observer is told about every index transition. Calls happen while the Manager
// holds its write lock, so an Observer must not call back into the Manager.
type Observer interface {
	EntityCreated(e *Entity, key FamilyKey)
	EntityMoved(e *Entity, from, to FamilyKey)
	EntityDestroyed(e *Entity, key FamilyKey)
	FamilyCreated(key FamilyKey)
}

type nopObserver struct{}

func (nopObserver) EntityCreated(*Entity, FamilyKey)          {}
func (nopObserver) EntityMoved(*Entity, FamilyKey, FamilyKey) {}
func (nopObserver) EntityDestroyed(*Entity, FamilyKey)        {}
func (nopObserver) FamilyCreated(FamilyKey)                   {}

// Option configures a Manager.
type Option func(*Manager)

func WithLogger(log *zap.Logger) Option {
	return func(m *Manager) { m.log = log }
}

func WithObserver(o Observer) Option {
	return func(m *Manager) { m.observer = o }
}

// WithCapacity presizes the entity table.
func WithCapacity(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.entities = make(map[EntityID]*Entity, n)
		}
	}
}

// Manager owns the entities, the component registry and the family index. It is
// the only way to mutate an entity's component set. A single RWMutex makes each
// remove-mutate-add transition atomic to queries.
type Manager struct {
	mu           sync.RWMutex
	registry     *Registry
	index        familyIndex
	entities     map[EntityID]*Entity
	nextID       EntityID
	destroyQueue []*Entity
	observer     Observer
	log          *zap.Logger
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		registry:     NewRegistry(),
		index:        newFamilyIndex(),
		entities:     make(map[EntityID]*Entity, 256),
		destroyQueue: make([]*Entity, 0, 64),
		observer:     nopObserver{},
		log:          zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateEntity allocates the next id, attaches components and indexes the
// entity. An entity without components joins the empty family.
func (m *Manager) CreateEntity(components ...any) (*Entity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	keys, ids, err := m.resolveComponents(components)
	if err != nil {
		return nil, err
	}
	e := newEntity(m.nextID, m)
	m.nextID++
	e.attach(keys, ids, components)
	m.entities[e.id] = e
	f := m.addToFamily(e)
	m.observer.EntityCreated(e, f.key)
	return e, nil
}

// AddComponent attaches components to e, replacing any held under the same key.
func (m *Manager) AddComponent(e *Entity, components ...any) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.owned(e); err != nil {
		return err
	}
	keys, ids, err := m.resolveComponents(components)
	if err != nil {
		return err
	}
	from := e.fam.key
	m.index.remove(e)
	e.attach(keys, ids, components)
	to := m.addToFamily(e).key
	m.observer.EntityMoved(e, from, to)
	return nil
}

// RemoveComponent detaches the components under keys. If any key is absent it
// returns a *MissingComponentError and e is left unchanged, keeping its place
// in its family.
func (m *Manager) RemoveComponent(e *Entity, keys ...Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.owned(e); err != nil {
		return err
	}
	if err := e.holds(keys); err != nil {
		return err
	}
	from := e.fam.key
	m.index.remove(e)
	e.detach(keys)
	to := m.addToFamily(e).key
	m.observer.EntityMoved(e, from, to)
	return nil
}

// DestroyEntity removes e from its family and from the entity table. Its id is
// not reused.
func (m *Manager) DestroyEntity(e *Entity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.owned(e); err != nil {
		return err
	}
	m.destroy(e)
	return nil
}

// MarkForDestruction queues e for FlushDestroyQueue.
func (m *Manager) MarkForDestruction(e *Entity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.owned(e); err != nil {
		return err
	}
	m.destroyQueue = append(m.destroyQueue, e)
	return nil
}

// FlushDestroyQueue destroys every queued entity and returns how many were
// destroyed. Entities queued twice are destroyed once.
func (m *Manager) FlushDestroyQueue() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for i, e := range m.destroyQueue {
		if !e.destroyed {
			m.destroy(e)
			n++
		}
		m.destroyQueue[i] = nil
	}
	m.destroyQueue = m.destroyQueue[:0]
	return n
}

// QueryExact returns the entities whose component set is exactly keys.
func (m *Manager) QueryExact(keys ...Key) []*Entity {
	m.mu.RLock()
	defer m.mu.RUnlock()

	key, ok := m.canonical(keys)
	if !ok {
		return []*Entity{}
	}
	return m.index.exact(key)
}

// QuerySuperset returns the entities holding at least keys. Order follows family
// creation and is stable until the next mutation.
func (m *Manager) QuerySuperset(keys ...Key) []*Entity {
	m.mu.RLock()
	defer m.mu.RUnlock()

	key, ok := m.canonical(keys)
	if !ok {
		return []*Entity{}
	}
	return m.index.superset(key)
}

// RegisterSourceComponent stamps src with a fresh negative id so it can key
// components on entities.
func (m *Manager) RegisterSourceComponent(src Sourcer) (ComponentID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registry.RegisterSource(src)
}

// TypeID returns the id of t, registering it on first use.
func (m *Manager) TypeID(t reflect.Type) ComponentID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.registry.TypeID(t)
}

// TypeOf returns the component type registered under id.
func (m *Manager) TypeOf(id ComponentID) (reflect.Type, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.registry.Type(id)
}

// Resolve returns the id k resolves to without registering anything.
func (m *Manager) Resolve(k Key) (ComponentID, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.registry.Resolve(k)
}

// FamilyKeyOf canonicalizes keys. It reports false if any key is unknown.
func (m *Manager) FamilyKeyOf(keys ...Key) (FamilyKey, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.canonical(keys)
}

// Entity returns the live entity with the given id.
func (m *Manager) Entity(id EntityID) (*Entity, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.entities[id]
	return e, ok
}

// Len returns the number of live entities.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entities)
}

// Families lists every family ever created, in creation order.
func (m *Manager) Families() []FamilyStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.index.stats()
}

func (m *Manager) owned(e *Entity) error {
	if e.manager != m {
		return ErrForeignEntity
	}
	if e.destroyed {
		return ErrDestroyed
	}
	return nil
}

func (m *Manager) resolveComponents(components []any) ([]Key, []ComponentID, error) {
	keys := make([]Key, len(components))
	ids := make([]ComponentID, len(components))
	for i, c := range components {
		if c == nil {
			return nil, nil, ErrNilComponent
		}
		k := KeyOf(c)
		id, err := m.registry.resolveAssign(k)
		if err != nil {
			return nil, nil, err
		}
		keys[i] = k
		ids[i] = id
	}
	return keys, ids, nil
}

func (m *Manager) canonical(keys []Key) (FamilyKey, bool) {
	ids := make([]ComponentID, len(keys))
	for i, k := range keys {
		id, err := m.registry.Resolve(k)
		if err != nil {
			return "", false
		}
		ids[i] = id
	}
	return NewFamilyKey(ids...), true
}

func (m *Manager) addToFamily(e *Entity) *family {
	f, created := m.index.add(e)
	if created {
		m.log.Debug("family created",
			zap.Stringer("key", f.key),
			zap.Int("families", len(m.index.order)))
		m.observer.FamilyCreated(f.key)
	}
	return f
}

func (m *Manager) destroy(e *Entity) {
	key := e.fam.key
	m.index.remove(e)
	delete(m.entities, e.id)
	e.destroyed = true
	m.observer.EntityDestroyed(e, key)
}

// Register returns the id of component type T, registering it on first use.
func Register[T any](m *Manager) ComponentID {
	return m.TypeID(reflect.TypeOf((*T)(nil)).Elem())
}

// IDOf returns the id of T if it has been registered.
func IDOf[T any](m *Manager) (ComponentID, bool) {
	id, err := m.Resolve(TypeKey[T]())
	return id, err == nil
}
