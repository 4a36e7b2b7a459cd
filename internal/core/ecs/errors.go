package ecs

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownComponentType is returned by Registry.Resolve for a type that was
	// never registered. Queries treat it as an empty result.
	ErrUnknownComponentType = errors.New("ecs: unknown component type")
	ErrUnregisteredSource   = errors.New("ecs: source not registered")
	ErrForeignSource        = errors.New("ecs: source registered with another manager")
	ErrForeignEntity        = errors.New("ecs: entity belongs to another manager")
	ErrDestroyed            = errors.New("ecs: entity destroyed")
	ErrMissingComponent     = errors.New("ecs: missing component")
	ErrNilComponent         = errors.New("ecs: nil component")
)

// MissingComponentError reports a remove of a key the entity does not hold.
type MissingComponentError struct {
	Entity EntityID
	Key    Key
}

func (e *MissingComponentError) Error() string {
	return fmt.Sprintf("ecs: entity %d has no component %s", e.Entity, e.Key)
}

func (e *MissingComponentError) Is(target error) bool {
	return target == ErrMissingComponent
}

// CorruptionError means the family index no longer partitions entities by their
// live family key. It is a programming error, never a recoverable condition.
type CorruptionError struct {
	Entity EntityID
	Family FamilyKey
	Reason string
}

func (e *CorruptionError) Error() string {
	return fmt.Sprintf("ecs: family index corrupt: entity %d in family %s: %s", e.Entity, e.Family, e.Reason)
}
