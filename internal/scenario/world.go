package scenario

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/famecs/famecs/internal/core/ecs"
)

// SourceRefPrefix marks a key reference naming a source ("@algebra") rather
// than a component kind ("grade").
const SourceRefPrefix = "@"

// World binds a manager to a catalog and remembers named sources and entities.
type World struct {
	Manager *ecs.Manager
	Catalog *Catalog

	sources  map[string]ecs.Sourcer
	entities map[string]*ecs.Entity
}

func NewWorld(m *ecs.Manager, c *Catalog) *World {
	return &World{
		Manager:  m,
		Catalog:  c,
		sources:  make(map[string]ecs.Sourcer, 8),
		entities: make(map[string]*ecs.Entity, 64),
	}
}

// AddSource builds a source of the given kind, registers it with the manager
// and names it.
func (w *World) AddSource(name, kind string, f Fields) (ecs.Sourcer, error) {
	if _, dup := w.sources[name]; dup {
		return nil, fmt.Errorf("source %q: already defined", name)
	}
	src, err := w.Catalog.BuildSource(kind, f)
	if err != nil {
		return nil, fmt.Errorf("source %q: %w", name, err)
	}
	if _, err := w.Manager.RegisterSourceComponent(src); err != nil {
		return nil, fmt.Errorf("source %q: %w", name, err)
	}
	w.sources[name] = src
	return src, nil
}

func (w *World) Source(name string) (ecs.Sourcer, bool) {
	src, ok := w.sources[name]
	return src, ok
}

// Entity returns a named entity if it is still alive.
func (w *World) Entity(name string) (*ecs.Entity, bool) {
	e, ok := w.entities[name]
	if !ok || e.Destroyed() {
		return nil, false
	}
	return e, true
}

// Name binds name to e, replacing any earlier binding.
func (w *World) Name(name string, e *ecs.Entity) {
	w.entities[name] = e
}

// Component builds the component described by spec.
func (w *World) Component(spec ComponentSpec) (any, error) {
	var src ecs.Sourcer
	if spec.Source != "" {
		s, ok := w.sources[spec.Source]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownSource, spec.Source)
		}
		src = s
	}
	return w.Catalog.Build(spec.Kind, spec.Fields, src)
}

// Spawn creates an entity from component specs. A non-empty name is bound to
// the new entity.
func (w *World) Spawn(name string, specs []ComponentSpec) (*ecs.Entity, error) {
	cs := make([]any, 0, len(specs))
	for _, spec := range specs {
		c, err := w.Component(spec)
		if err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	e, err := w.Manager.CreateEntity(cs...)
	if err != nil {
		return nil, err
	}
	if name != "" {
		w.Name(name, e)
	}
	return e, nil
}

// Key resolves a reference: "@name" is the key of a named source, anything
// else is a component kind.
func (w *World) Key(ref string) (ecs.Key, error) {
	if name, ok := strings.CutPrefix(ref, SourceRefPrefix); ok {
		src, ok := w.sources[name]
		if !ok {
			return ecs.Key{}, fmt.Errorf("%w: %q", ErrUnknownSource, name)
		}
		return ecs.SourceKey(src), nil
	}
	return w.Catalog.TypeKey(ref)
}

// Keys resolves every reference.
func (w *World) Keys(refs ...string) ([]ecs.Key, error) {
	keys := make([]ecs.Key, len(refs))
	for i, ref := range refs {
		k, err := w.Key(ref)
		if err != nil {
			return nil, err
		}
		keys[i] = k
	}
	return keys, nil
}

// Describe names each id of key: kind names for component types, "@name" for
// named sources.
func (w *World) Describe(key ecs.FamilyKey) []string {
	ids := key.IDs()
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = w.describe(id)
	}
	return out
}

func (w *World) describe(id ecs.ComponentID) string {
	if id < 0 {
		for name, src := range w.sources {
			if k, err := w.Manager.Resolve(ecs.SourceKey(src)); err == nil && k == id {
				return SourceRefPrefix + name
			}
		}
		return "source" + strconv.Itoa(int(id))
	}
	if t, ok := w.Manager.TypeOf(id); ok {
		if name, ok := w.Catalog.KindOf(t); ok {
			return name
		}
		return t.String()
	}
	return "type" + strconv.Itoa(int(id))
}
