package system

import "github.com/famecs/famecs/internal/core/ecs"

// Query is the working set of a system: a fixed template of component keys
// resolved against a manager on every call.
type Query struct {
	m     *ecs.Manager
	keys  []ecs.Key
	exact bool
}

// NewQuery matches entities holding at least keys.
func NewQuery(m *ecs.Manager, keys ...ecs.Key) *Query {
	return &Query{m: m, keys: keys}
}

// NewExactQuery matches entities holding exactly keys.
func NewExactQuery(m *ecs.Manager, keys ...ecs.Key) *Query {
	return &Query{m: m, keys: keys, exact: true}
}

// Entities returns the current working set, or the set for an ad hoc template
// when keys are given.
func (q *Query) Entities(keys ...ecs.Key) []*ecs.Entity {
	if len(keys) == 0 {
		keys = q.keys
	}
	if q.exact {
		return q.m.QueryExact(keys...)
	}
	return q.m.QuerySuperset(keys...)
}

// Ready reports whether every key of the template is known to the manager, i.e.
// whether the query can match anything at all.
func (q *Query) Ready() bool {
	_, ok := q.m.FamilyKeyOf(q.keys...)
	return ok
}
