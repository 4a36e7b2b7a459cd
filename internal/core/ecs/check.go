package ecs

// Check verifies that the family index partitions the live entities: every entity
// sits in exactly one family, at the recorded slot, and that family's key equals
// the entity's live family key. A failure is a *CorruptionError.
func (m *Manager) Check() error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	indexed := 0
	for _, f := range m.index.order {
		if got, ok := m.index.byKey[f.key]; !ok || got != f {
			return &CorruptionError{Family: f.key, Reason: "family missing from key table"}
		}
		for i, e := range f.entities {
			switch {
			case e.destroyed:
				return &CorruptionError{Entity: e.id, Family: f.key, Reason: "destroyed entity still indexed"}
			case e.fam != f || e.slot != i:
				return &CorruptionError{Entity: e.id, Family: f.key, Reason: "entity back reference mismatch"}
			case e.familyKey() != f.key:
				return &CorruptionError{Entity: e.id, Family: f.key, Reason: "live key " + e.familyKey().String()}
			case m.entities[e.id] != e:
				return &CorruptionError{Entity: e.id, Family: f.key, Reason: "entity missing from entity table"}
			}
			indexed++
		}
	}
	if indexed != len(m.entities) {
		for _, e := range m.entities {
			if e.fam == nil {
				return &CorruptionError{Entity: e.id, Reason: "live entity not indexed"}
			}
		}
		return &CorruptionError{Reason: "entity counted in more than one family"}
	}
	return nil
}
