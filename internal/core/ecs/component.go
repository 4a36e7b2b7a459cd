package ecs

import (
	"fmt"
	"reflect"
)

// ComponentID identifies a component slot inside a family key. Component types
// get non-negative ids, registered sources get negative ids.
type ComponentID int

// Source is embedded by external objects (a course, a zone, a guild) that key
// components on an entity. The zero value is unregistered; a Manager stamps it
// with a negative id in RegisterSourceComponent.
type Source struct {
	id    ComponentID
	owner *Registry
}

// SourceID returns the stamped id, or 0 if the source was never registered.
func (s *Source) SourceID() ComponentID { return s.id }

func (s *Source) source() *Source { return s }

// Sourcer is satisfied by any pointer to a struct embedding Source.
type Sourcer interface {
	source() *Source
}

// SourcedComponent is a component keyed by an external source object rather than
// by its type, so one component type may appear once per source on an entity.
type SourcedComponent interface {
	ComponentSource() Sourcer
}

// Key addresses one component slot on an entity: either a component type or a
// source object identity.
type Key struct {
	typ reflect.Type
	src *Source
}

// TypeKey returns the key for component type T.
func TypeKey[T any]() Key {
	return Key{typ: reflect.TypeOf((*T)(nil)).Elem()}
}

// TypeKeyFor returns the key for component type t.
func TypeKeyFor(t reflect.Type) Key {
	return Key{typ: t}
}

// TypeKeyOf returns the key for the dynamic type of c, ignoring any source.
func TypeKeyOf(c any) Key {
	return Key{typ: reflect.TypeOf(c)}
}

// SourceKey returns the key for components attached under src.
func SourceKey(src Sourcer) Key {
	return Key{src: src.source()}
}

// KeyOf returns the key a component is stored under when attached. A
// SourcedComponent whose source is nil, including a nil pointer, is keyed by
// its type.
func KeyOf(c any) Key {
	if sc, ok := c.(SourcedComponent); ok {
		if src := sc.ComponentSource(); !isNilSource(src) {
			return SourceKey(src)
		}
	}
	return TypeKeyOf(c)
}

func isNilSource(src Sourcer) bool {
	if src == nil {
		return true
	}
	v := reflect.ValueOf(src)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// IsSource reports whether k addresses a source slot.
func (k Key) IsSource() bool { return k.src != nil }

// Type returns the component type of a type key, nil for source keys.
func (k Key) Type() reflect.Type { return k.typ }

func (k Key) String() string {
	switch {
	case k.src != nil:
		return fmt.Sprintf("source(%d)", k.src.id)
	case k.typ != nil:
		return k.typ.String()
	default:
		return "<nil>"
	}
}
