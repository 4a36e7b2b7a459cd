package component

import "github.com/famecs/famecs/internal/core/ecs"

// Student marks an entity as an enrolled student.
type Student struct {
	Name string
	Year int
}

// Course is an external object that keys per-course components on students.
// It must be registered with the manager before any Grade references it.
type Course struct {
	ecs.Source
	Code    string
	Title   string
	Credits int
}

// Grade is one student's result in one course. It is keyed by its Course, so a
// student holds one Grade per course.
type Grade struct {
	Course *Course
	Score  float64
}

func (g *Grade) ComponentSource() ecs.Sourcer {
	if g.Course == nil {
		return nil
	}
	return g.Course
}

// Honors is awarded by HonorsSystem.
type Honors struct {
	Mean float64
}

// Expiry counts down once per tick; at zero the entity is destroyed.
type Expiry struct {
	Ticks int
}
