package scenario

import (
	"fmt"
	"math"
)

// Fields are the raw attributes of a component as decoded from YAML or Lua.
type Fields map[string]any

func (f Fields) String(name string) (string, error) {
	v, ok := f[name]
	if !ok {
		return "", fmt.Errorf("field %q: missing", name)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("field %q: want string, got %T", name, v)
	}
	return s, nil
}

func (f Fields) StringOr(name, def string) (string, error) {
	if _, ok := f[name]; !ok {
		return def, nil
	}
	return f.String(name)
}

// Float accepts any numeric value.
func (f Fields) Float(name string) (float64, error) {
	v, ok := f[name]
	if !ok {
		return 0, fmt.Errorf("field %q: missing", name)
	}
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	default:
		return 0, fmt.Errorf("field %q: want number, got %T", name, v)
	}
}

func (f Fields) FloatOr(name string, def float64) (float64, error) {
	if _, ok := f[name]; !ok {
		return def, nil
	}
	return f.Float(name)
}

// Int accepts integral numbers, including whole floats from Lua.
func (f Fields) Int(name string) (int, error) {
	n, err := f.Float(name)
	if err != nil {
		return 0, err
	}
	if n != math.Trunc(n) {
		return 0, fmt.Errorf("field %q: want integer, got %v", name, n)
	}
	return int(n), nil
}

func (f Fields) IntOr(name string, def int) (int, error) {
	if _, ok := f[name]; !ok {
		return def, nil
	}
	return f.Int(name)
}
