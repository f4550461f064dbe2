package plot

import (
	"fmt"

	"flightplots/internal/ulog"
)

// Field selects samples from the current dataset, either directly by name
// or through a derivation.
type Field struct {
	Name   string
	derive func(ulog.Data) ([]float64, error)
}

// F selects a logged field by name.
func F(name string) Field { return Field{Name: name} }

// Fields selects several logged fields by name.
func Fields(names ...string) []Field {
	out := make([]Field, len(names))
	for i, n := range names {
		out[i] = F(n)
	}
	return out
}

// Derived computes samples from the dataset. name labels the result.
func Derived(name string, fn func(ulog.Data) ([]float64, error)) Field {
	return Field{Name: name, derive: fn}
}

// Scaled multiplies a logged field by k.
func Scaled(name string, k float64) Field {
	return Derived(name, func(d ulog.Data) ([]float64, error) {
		src, ok := d[name]
		if !ok {
			return nil, fmt.Errorf("%s: %w", name, ulog.ErrFieldNotFound)
		}
		out := make([]float64, len(src))
		for i, v := range src {
			out[i] = v * k
		}
		return out, nil
	})
}

// Negated flips the sign of a logged field, e.g. NED down to altitude up.
func Negated(name string) Field { return Scaled(name, -1) }

func (f Field) values(t *ulog.Topic) ([]float64, error) {
	if f.derive != nil {
		v, err := f.derive(t.Data)
		if err != nil {
			return nil, err
		}
		return v, nil
	}
	return t.Field(f.Name)
}
