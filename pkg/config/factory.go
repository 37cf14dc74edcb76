package config

import "io"

// Variant is a node selected by name from a Factory.
type Variant interface {
	Configurable

	// Name returns the registered name of the variant.
	Name() string
}

type builder[T Variant] struct {
	name  string
	build func() T
}

// Factory is a registry of named variants for one polymorphic slot, such
// as the spindle or kinematics of a machine. T should be an interface type.
type Factory[T Variant] struct {
	builders []builder[T]
}

// Register adds a variant under name. Registration order is match order.
func (f *Factory[T]) Register(name string, build func() T) {
	f.builders = append(f.builders, builder[T]{name: name, build: build})
}

// Names returns the registered variant names in registration order.
func (f *Factory[T]) Names() []string {
	names := make([]string, len(f.builders))
	for i, b := range f.builders {
		names[i] = b.name
	}
	return names
}

// Apply visits the variant held in *slot.
//
// While parsing, the first registered variant whose name matches an
// unconsumed section header is built and entered. The variant previously
// held in the slot is closed first if it implements io.Closer. In any other
// mode the held variant, if any, is entered under its own name.
func (f *Factory[T]) Apply(h SectionVisitor, slot *T) {
	if h.Type().IsParsing() {
		for _, b := range f.builders {
			if !h.MatchesUninitialized(b.name) {
				continue
			}
			if c, ok := any(*slot).(io.Closer); ok {
				_ = c.Close()
			}
			inst := b.build()
			*slot = inst
			EnterFactory(h, b.name, inst)
			return
		}
		return
	}
	if any(*slot) != nil {
		EnterFactory(h, (*slot).Name(), *slot)
	}
}
