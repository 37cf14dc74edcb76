package setting

import (
	"errors"
	"log/slog"

	"github.com/motion-firmware/motioncfg/pkg/pin"
)

// ErrStillBound is the panic value raised when a pin is bound over a live
// binding.
var ErrStillBound = errors.New("pin setting still bound; release it first")

// Pin owns a hardware pin binding. The zero value is an undefined pin.
type Pin struct {
	noCopy noCopy

	pin   *pin.Pin
	moved bool
}

// NewPin returns a holder that takes ownership of p.
func NewPin(p *pin.Pin) *Pin {
	return &Pin{pin: p}
}

// Get returns the wrapped pin. An unbound holder returns nil, which behaves
// as an undefined pin.
func (s *Pin) Get() *pin.Pin {
	s.mustOwn()
	return s.pin
}

// Bind takes ownership of p. The previous binding must have been released;
// binding over a live pin panics with ErrStillBound.
func (s *Pin) Bind(p *pin.Pin) {
	if !s.moved && s.pin.Defined() {
		panic(ErrStillBound)
	}
	s.pin = p
	s.moved = false
}

// Release frees the hardware pin and leaves the holder undefined.
func (s *Pin) Release() {
	if s.moved {
		return
	}
	s.pin.Release()
	s.pin = nil
}

// Take moves the binding into a new holder. s is left moved-from.
func (s *Pin) Take() *Pin {
	s.mustOwn()
	dst := &Pin{pin: s.pin}
	s.pin = nil
	s.moved = true
	return dst
}

// MoveFrom releases the current binding and moves the binding of src into s.
// src is left moved-from.
func (s *Pin) MoveFrom(src *Pin) {
	if src == s {
		return
	}
	src.mustOwn()
	s.Release()
	s.pin = src.pin
	s.moved = false
	src.pin = nil
	src.moved = true
}

// Moved returns true if the binding has been moved out of s.
func (s *Pin) Moved() bool { return s.moved }

func (s *Pin) mustOwn() {
	if s.moved {
		panic(ErrMoved)
	}
}

// Forwarded pin operations.

// Undefined returns true if no physical pin is bound.
func (s *Pin) Undefined() bool { return s.Get().Undefined() }

// Defined returns true if a physical pin is bound.
func (s *Pin) Defined() bool { return s.Get().Defined() }

// Write sets the logical level.
func (s *Pin) Write(on bool) { s.Get().Write(on) }

// SynchronousWrite sets the logical level and returns once it is applied.
func (s *Pin) SynchronousWrite(on bool) { s.Get().SynchronousWrite(on) }

// Read returns the logical level.
func (s *Pin) Read() bool { return s.Get().Read() }

// SetAttr configures the pin.
func (s *Pin) SetAttr(a pin.Attr) error { return s.Get().SetAttr(a) }

// Attr returns the configured attributes.
func (s *Pin) Attr() pin.Attr { return s.Get().Attr() }

// On sets the logical on level.
func (s *Pin) On() { s.Get().On() }

// Off sets the logical off level.
func (s *Pin) Off() { s.Get().Off() }

// Capabilities returns what the physical pin supports.
func (s *Pin) Capabilities() pin.Capabilities { return s.Get().Capabilities() }

// Name returns the pin description text.
func (s *Pin) Name() string { return s.Get().Name() }

// Report logs the binding under legend.
func (s *Pin) Report(logger *slog.Logger, legend string) { s.Get().Report(logger, legend) }
