package component

import (
	"fmt"

	"github.com/famecs/famecs/internal/core/ecs"
	"github.com/famecs/famecs/internal/scenario"
)

// Kind names used in scenario files and scripts.
const (
	KindStudent = "student"
	KindCourse  = "course"
	KindGrade   = "grade"
	KindHonors  = "honors"
	KindExpiry  = "expiry"
)

// Register adds every component kind of this package to c.
func Register(c *scenario.Catalog) {
	scenario.RegisterKind(c, KindStudent, func(f scenario.Fields, _ ecs.Sourcer) (*Student, error) {
		name, err := f.String("name")
		if err != nil {
			return nil, err
		}
		year, err := f.IntOr("year", 1)
		if err != nil {
			return nil, err
		}
		return &Student{Name: name, Year: year}, nil
	})
	scenario.RegisterKind(c, KindGrade, func(f scenario.Fields, src ecs.Sourcer) (*Grade, error) {
		score, err := f.Float("score")
		if err != nil {
			return nil, err
		}
		g := &Grade{Score: score}
		if src != nil {
			course, ok := src.(*Course)
			if !ok {
				return nil, fmt.Errorf("grade source must be a course, got %T", src)
			}
			g.Course = course
		}
		return g, nil
	})
	scenario.RegisterKind(c, KindHonors, func(f scenario.Fields, _ ecs.Sourcer) (*Honors, error) {
		mean, err := f.FloatOr("mean", 0)
		if err != nil {
			return nil, err
		}
		return &Honors{Mean: mean}, nil
	})
	scenario.RegisterKind(c, KindExpiry, func(f scenario.Fields, _ ecs.Sourcer) (*Expiry, error) {
		ticks, err := f.Int("ticks")
		if err != nil {
			return nil, err
		}
		return &Expiry{Ticks: ticks}, nil
	})
	scenario.RegisterSourceKind(c, KindCourse, func(f scenario.Fields) (*Course, error) {
		code, err := f.String("code")
		if err != nil {
			return nil, err
		}
		title, err := f.StringOr("title", code)
		if err != nil {
			return nil, err
		}
		credits, err := f.IntOr("credits", 1)
		if err != nil {
			return nil, err
		}
		return &Course{Code: code, Title: title, Credits: credits}, nil
	})
}
