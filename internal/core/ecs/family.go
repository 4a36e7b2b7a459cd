package ecs

import (
	"encoding/binary"
	"slices"
	"strconv"
	"strings"
)

// FamilyKey is the canonical signature of a component set: the ascending,
// deduplicated component ids packed into a string so it can key a map.
type FamilyKey string

const idWidth = 8

// NewFamilyKey canonicalizes ids in any order into a FamilyKey.
func NewFamilyKey(ids ...ComponentID) FamilyKey {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	return packKey(sorted)
}

func packKey(sorted []ComponentID) FamilyKey {
	buf := make([]byte, len(sorted)*idWidth)
	for i, id := range sorted {
		binary.BigEndian.PutUint64(buf[i*idWidth:], uint64(id))
	}
	return FamilyKey(buf)
}

// Len returns the number of ids in the key.
func (k FamilyKey) Len() int { return len(k) / idWidth }

// IDs returns the ids in ascending order.
func (k FamilyKey) IDs() []ComponentID {
	ids := make([]ComponentID, k.Len())
	for i := range ids {
		ids[i] = ComponentID(int64(binary.BigEndian.Uint64([]byte(k[i*idWidth : (i+1)*idWidth]))))
	}
	return ids
}

// Contains reports whether every id of sub is also in k.
func (k FamilyKey) Contains(sub FamilyKey) bool {
	return containsSorted(k.IDs(), sub.IDs())
}

func (k FamilyKey) String() string {
	var sb strings.Builder
	sb.WriteByte('(')
	for i, id := range k.IDs() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.Itoa(int(id)))
	}
	sb.WriteByte(')')
	return sb.String()
}

// containsSorted walks two ascending id lists.
func containsSorted(set, sub []ComponentID) bool {
	if len(sub) > len(set) {
		return false
	}
	i := 0
	for _, want := range sub {
		for i < len(set) && set[i] < want {
			i++
		}
		if i == len(set) || set[i] != want {
			return false
		}
		i++
	}
	return true
}

// family holds every entity whose live family key equals key.
type family struct {
	key      FamilyKey
	ids      []ComponentID
	entities []*Entity
}

// FamilyStats describes one family for reporting.
type FamilyStats struct {
	Key  FamilyKey
	Size int
}

// familyIndex maps family keys to families. Families are never dropped, so
// order (creation order) gives superset queries a stable iteration.
type familyIndex struct {
	byKey map[FamilyKey]*family
	order []*family
}

func newFamilyIndex() familyIndex {
	return familyIndex{
		byKey: make(map[FamilyKey]*family, 32),
		order: make([]*family, 0, 32),
	}
}

// add puts e into the family for its current key, creating it if needed.
// It reports whether a new family was created.
func (x *familyIndex) add(e *Entity) (*family, bool) {
	key := e.familyKey()
	f, ok := x.byKey[key]
	if !ok {
		f = &family{key: key, ids: key.IDs()}
		x.byKey[key] = f
		x.order = append(x.order, f)
	}
	e.fam = f
	e.slot = len(f.entities)
	f.entities = append(f.entities, e)
	return f, !ok
}

// remove takes e out of its family. An entity that was never indexed is left
// alone.
func (x *familyIndex) remove(e *Entity) {
	f := e.fam
	if f == nil {
		return
	}
	if e.slot >= len(f.entities) || f.entities[e.slot] != e {
		return
	}
	last := len(f.entities) - 1
	if e.slot < last {
		moved := f.entities[last]
		f.entities[e.slot] = moved
		moved.slot = e.slot
	}
	f.entities[last] = nil
	f.entities = f.entities[:last]
	e.fam = nil
	e.slot = -1
}

// exact returns a copy of the family at key.
func (x *familyIndex) exact(key FamilyKey) []*Entity {
	f, ok := x.byKey[key]
	if !ok || len(f.entities) == 0 {
		return []*Entity{}
	}
	return slices.Clone(f.entities)
}

// superset returns every entity whose family key contains key.
func (x *familyIndex) superset(key FamilyKey) []*Entity {
	want := key.IDs()
	var out []*Entity
	for _, f := range x.order {
		if len(f.entities) == 0 || !containsSorted(f.ids, want) {
			continue
		}
		out = append(out, f.entities...)
	}
	if out == nil {
		return []*Entity{}
	}
	return out
}

func (x *familyIndex) stats() []FamilyStats {
	out := make([]FamilyStats, 0, len(x.order))
	for _, f := range x.order {
		out = append(out, FamilyStats{Key: f.key, Size: len(f.entities)})
	}
	return out
}
