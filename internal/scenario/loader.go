package scenario

import (
	"fmt"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// File is a scenario document: source objects, then entities.
type File struct {
	Sources  []SourceSpec `yaml:"sources"`
	Entities []EntitySpec `yaml:"entities"`
}

type SourceSpec struct {
	Name   string `yaml:"name"`
	Kind   string `yaml:"kind"`
	Fields Fields `yaml:"fields"`
}

// EntitySpec describes Count entities (default 1) sharing one component list.
// With Count > 1 the entities are named "<name>-<i>".
type EntitySpec struct {
	Name       string          `yaml:"name"`
	Count      int             `yaml:"count"`
	Components []ComponentSpec `yaml:"components"`
}

type ComponentSpec struct {
	Kind   string `yaml:"kind"`
	Source string `yaml:"source"`
	Fields Fields `yaml:"fields"`
}

// Parse decodes a scenario document.
func Parse(raw []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return &f, nil
}

// Load reads a scenario file and applies it to w.
func Load(path string, w *World) (Stats, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Stats{}, fmt.Errorf("read scenario %s: %w", path, err)
	}
	f, err := Parse(raw)
	if err != nil {
		return Stats{}, fmt.Errorf("%s: %w", path, err)
	}
	return Apply(f, w)
}

// Stats counts what Apply created.
type Stats struct {
	Sources  int
	Entities int
}

// Apply registers every source, then spawns every entity. A bad entry is skipped
// and reported; the remaining entries are still applied.
func Apply(f *File, w *World) (Stats, error) {
	var st Stats
	var errs error
	for i, s := range f.Sources {
		if _, err := w.AddSource(s.Name, s.Kind, s.Fields); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("sources[%d]: %w", i, err))
			continue
		}
		st.Sources++
	}
	for i, spec := range f.Entities {
		count := spec.Count
		if count <= 0 {
			count = 1
		}
		for n := 0; n < count; n++ {
			name := spec.Name
			if count > 1 && name != "" {
				name = fmt.Sprintf("%s-%d", spec.Name, n)
			}
			if _, err := w.Spawn(name, spec.Components); err != nil {
				errs = multierr.Append(errs, fmt.Errorf("entities[%d] %q: %w", i, name, err))
				break
			}
			st.Entities++
		}
	}
	return st, errs
}
