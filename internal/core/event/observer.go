package event

import "github.com/famecs/famecs/internal/core/ecs"

// ManagerObserver forwards family index transitions onto a Bus. Moves that leave
// the family unchanged (overwrites) are not published.
type ManagerObserver struct {
	bus *Bus
}

var _ ecs.Observer = (*ManagerObserver)(nil)

func NewManagerObserver(b *Bus) *ManagerObserver {
	return &ManagerObserver{bus: b}
}

func (o *ManagerObserver) EntityCreated(e *ecs.Entity, key ecs.FamilyKey) {
	Emit(o.bus, EntityCreated{EntityID: e.ID(), Family: key})
}

func (o *ManagerObserver) EntityMoved(e *ecs.Entity, from, to ecs.FamilyKey) {
	if from == to {
		return
	}
	Emit(o.bus, EntityMoved{EntityID: e.ID(), From: from, To: to})
}

func (o *ManagerObserver) EntityDestroyed(e *ecs.Entity, key ecs.FamilyKey) {
	Emit(o.bus, EntityDestroyed{EntityID: e.ID(), Family: key})
}

func (o *ManagerObserver) FamilyCreated(key ecs.FamilyKey) {
	Emit(o.bus, FamilyCreated{Family: key})
}
