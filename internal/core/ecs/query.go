package ecs

// The working set of each helper is taken before the first call, so fn may
// mutate entities. An entity that an earlier call destroyed or stripped of a
// queried component is skipped.

// Each1 calls fn for every entity holding a component of type A.
func Each1[A any](m *Manager, fn func(*Entity, A)) {
	for _, e := range m.QuerySuperset(TypeKey[A]()) {
		if e.Destroyed() {
			continue
		}
		a, ok := Get[A](e)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

// Each2 calls fn for every entity holding components of types A and B.
func Each2[A, B any](m *Manager, fn func(*Entity, A, B)) {
	for _, e := range m.QuerySuperset(TypeKey[A](), TypeKey[B]()) {
		if e.Destroyed() {
			continue
		}
		a, okA := Get[A](e)
		b, okB := Get[B](e)
		if !okA || !okB {
			continue
		}
		fn(e, a, b)
	}
}

// Each3 calls fn for every entity holding components of types A, B and C.
func Each3[A, B, C any](m *Manager, fn func(*Entity, A, B, C)) {
	for _, e := range m.QuerySuperset(TypeKey[A](), TypeKey[B](), TypeKey[C]()) {
		if e.Destroyed() {
			continue
		}
		a, okA := Get[A](e)
		b, okB := Get[B](e)
		c, okC := Get[C](e)
		if !okA || !okB || !okC {
			continue
		}
		fn(e, a, b, c)
	}
}
