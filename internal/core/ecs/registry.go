package ecs

import (
	"reflect"
)

// Registry assigns component ids. Types are numbered in first-seen order from 0;
// sources are stamped from -1 downwards. Each Manager owns one Registry.
type Registry struct {
	types      map[reflect.Type]ComponentID
	names      []reflect.Type
	nextSource ComponentID
}

func NewRegistry() *Registry {
	return &Registry{
		types:      make(map[reflect.Type]ComponentID, 16),
		names:      make([]reflect.Type, 0, 16),
		nextSource: -1,
	}
}

// TypeID returns the id of t, assigning the next one on first sight.
func (r *Registry) TypeID(t reflect.Type) ComponentID {
	if id, ok := r.types[t]; ok {
		return id
	}
	id := ComponentID(len(r.names))
	r.types[t] = id
	r.names = append(r.names, t)
	return id
}

// LookupType returns the id of t without registering it.
func (r *Registry) LookupType(t reflect.Type) (ComponentID, bool) {
	id, ok := r.types[t]
	return id, ok
}

// Type returns the component type registered under id.
func (r *Registry) Type(id ComponentID) (reflect.Type, bool) {
	if id < 0 || int(id) >= len(r.names) {
		return nil, false
	}
	return r.names[id], true
}

// NumTypes returns how many component types have been registered.
func (r *Registry) NumTypes() int { return len(r.names) }

// RegisterSource stamps src with a fresh negative id. A source already stamped by
// this registry keeps its id.
func (r *Registry) RegisterSource(src Sourcer) (ComponentID, error) {
	s := src.source()
	if s.owner == r {
		return s.id, nil
	}
	if s.owner != nil {
		return 0, ErrForeignSource
	}
	s.id = r.nextSource
	s.owner = r
	r.nextSource--
	return s.id, nil
}

// Resolve maps k to its component id without registering anything.
func (r *Registry) Resolve(k Key) (ComponentID, error) {
	if k.src != nil {
		switch k.src.owner {
		case r:
			return k.src.id, nil
		case nil:
			return 0, ErrUnregisteredSource
		default:
			return 0, ErrForeignSource
		}
	}
	id, ok := r.types[k.typ]
	if !ok {
		return 0, ErrUnknownComponentType
	}
	return id, nil
}

// resolveAssign is Resolve but registers unseen component types.
func (r *Registry) resolveAssign(k Key) (ComponentID, error) {
	if k.src != nil {
		return r.Resolve(k)
	}
	return r.TypeID(k.typ), nil
}
