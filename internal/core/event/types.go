package event

import "github.com/famecs/famecs/internal/core/ecs"

// Index transition events published by ManagerObserver.

type EntityCreated struct {
	EntityID ecs.EntityID
	Family   ecs.FamilyKey
}

type EntityMoved struct {
	EntityID ecs.EntityID
	From     ecs.FamilyKey
	To       ecs.FamilyKey
}

type EntityDestroyed struct {
	EntityID ecs.EntityID
	Family   ecs.FamilyKey
}

type FamilyCreated struct {
	Family ecs.FamilyKey
}
