package scenario

import (
	"errors"
	"fmt"
	"reflect"
	"sort"

	"github.com/famecs/famecs/internal/core/ecs"
)

var (
	ErrUnknownKind   = errors.New("scenario: unknown kind")
	ErrUnknownSource = errors.New("scenario: unknown source")
	ErrUnknownEntity = errors.New("scenario: unknown entity")
)

// ComponentFactory builds a component from its fields. src is the resolved
// source when the scenario names one, nil otherwise.
type ComponentFactory func(f Fields, src ecs.Sourcer) (any, error)

// SourceFactory builds an unregistered source object.
type SourceFactory func(f Fields) (ecs.Sourcer, error)

type kind struct {
	typ   reflect.Type
	build ComponentFactory
}

// Catalog maps kind names to component and source constructors.
type Catalog struct {
	kinds   map[string]kind
	sources map[string]SourceFactory
}

func NewCatalog() *Catalog {
	return &Catalog{
		kinds:   make(map[string]kind, 16),
		sources: make(map[string]SourceFactory, 4),
	}
}

// RegisterKind registers a component kind producing values of type T.
func RegisterKind[T any](c *Catalog, name string, build func(Fields, ecs.Sourcer) (T, error)) {
	c.kinds[name] = kind{
		typ: reflect.TypeOf((*T)(nil)).Elem(),
		build: func(f Fields, src ecs.Sourcer) (any, error) {
			return build(f, src)
		},
	}
}

// RegisterSourceKind registers a source kind producing values of type T.
func RegisterSourceKind[T ecs.Sourcer](c *Catalog, name string, build func(Fields) (T, error)) {
	c.sources[name] = func(f Fields) (ecs.Sourcer, error) {
		return build(f)
	}
}

// Build constructs a component of the named kind.
func (c *Catalog) Build(name string, f Fields, src ecs.Sourcer) (any, error) {
	k, ok := c.kinds[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	v, err := k.build(f, src)
	if err != nil {
		return nil, fmt.Errorf("build %s: %w", name, err)
	}
	return v, nil
}

// BuildSource constructs a source object of the named kind.
func (c *Catalog) BuildSource(name string, f Fields) (ecs.Sourcer, error) {
	build, ok := c.sources[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	src, err := build(f)
	if err != nil {
		return nil, fmt.Errorf("build source %s: %w", name, err)
	}
	return src, nil
}

// TypeKey returns the key components of the named kind are stored under when
// they carry no source.
func (c *Catalog) TypeKey(name string) (ecs.Key, error) {
	k, ok := c.kinds[name]
	if !ok {
		return ecs.Key{}, fmt.Errorf("%w: %q", ErrUnknownKind, name)
	}
	return ecs.TypeKeyFor(k.typ), nil
}

// KindOf returns the kind name registered for component type t.
func (c *Catalog) KindOf(t reflect.Type) (string, bool) {
	for name, k := range c.kinds {
		if k.typ == t {
			return name, true
		}
	}
	return "", false
}

// Kinds lists the registered component kinds.
func (c *Catalog) Kinds() []string {
	names := make([]string, 0, len(c.kinds))
	for n := range c.kinds {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
