package setting

import "errors"

// ErrMoved is the panic value raised when a moved-from holder is used.
var ErrMoved = errors.New("setting used after move")

// noCopy flags by-value copies under go vet's copylocks check.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Setting owns one value of type T. The zero value holds T's zero value.
//
// Settings are declared as fields of configuration nodes and must not be
// copied. Use Take or MoveFrom to transfer ownership.
type Setting[T any] struct {
	noCopy noCopy

	value T
	moved bool
}

// New returns a holder owning v.
func New[T any](v T) *Setting[T] {
	return &Setting[T]{value: v}
}

// Value returns the held value.
func (s *Setting[T]) Value() T {
	s.mustOwn()
	return s.value
}

// Ptr returns mutable access to the held value.
func (s *Setting[T]) Ptr() *T {
	s.mustOwn()
	return &s.value
}

// Set replaces the held value. Setting a moved-from holder makes it own a
// value again.
func (s *Setting[T]) Set(v T) {
	s.value = v
	s.moved = false
}

// Take moves the value into a new holder. s is left moved-from.
func (s *Setting[T]) Take() *Setting[T] {
	s.mustOwn()
	dst := &Setting[T]{value: s.value}
	s.clear()
	return dst
}

// MoveFrom moves the value of src into s. src is left moved-from.
func (s *Setting[T]) MoveFrom(src *Setting[T]) {
	if src == s {
		return
	}
	src.mustOwn()
	s.value = src.value
	s.moved = false
	src.clear()
}

// Moved returns true if the value has been moved out of s.
func (s *Setting[T]) Moved() bool { return s.moved }

func (s *Setting[T]) clear() {
	var zero T
	s.value = zero
	s.moved = true
}

func (s *Setting[T]) mustOwn() {
	if s.moved {
		panic(ErrMoved)
	}
}
