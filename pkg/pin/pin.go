package pin

import (
	"fmt"
	"log/slog"
)

// noCopy flags by-value copies of a Pin under go vet's copylocks check.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Pin is a handle to one physical pin. The zero value, and a nil *Pin, are
// undefined pins: reads return false and writes are ignored.
//
// A Pin must not be copied; ownership moves by pointer.
type Pin struct {
	noCopy noCopy

	desc     Description
	bank     *Bank
	caps     Capabilities
	attr     Attr
	released bool
}

// Undefined returns true if no physical pin is bound.
func (p *Pin) Undefined() bool {
	return p == nil || p.desc.Undefined() || p.released
}

// Defined returns true if a physical pin is bound.
func (p *Pin) Defined() bool { return !p.Undefined() }

// Name returns the description text of the pin.
func (p *Pin) Name() string {
	if p.Undefined() {
		return UndefinedName
	}
	return p.desc.String()
}

// Description returns the parsed description the pin was acquired with.
func (p *Pin) Description() Description {
	if p.Undefined() {
		return Description{}
	}
	return p.desc
}

// Capabilities returns what the physical pin supports.
func (p *Pin) Capabilities() Capabilities {
	if p.Undefined() {
		return 0
	}
	return p.caps
}

// Attr returns the attributes the pin is configured with.
func (p *Pin) Attr() Attr {
	if p.Undefined() {
		return AttrNone
	}
	return p.attr
}

// SetAttr configures the pin. Attributes implied by the description
// (active-low, pulls) are kept. An output with AttrInitialOn is driven on.
func (p *Pin) SetAttr(a Attr) error {
	if p.Undefined() {
		return nil
	}
	a |= p.desc.Attr()
	if !p.caps.supports(a) {
		return fmt.Errorf("%w: %s: %s", ErrUnsupportedAttr, p.Name(), a)
	}
	p.attr = a
	if a.Has(AttrOutput) {
		p.Write(a.Has(AttrInitialOn))
	}
	return nil
}

// Write sets the logical level of the pin.
func (p *Pin) Write(on bool) {
	if p.Undefined() {
		return
	}
	p.bank.write(p.desc.Number, on != p.attr.Has(AttrActiveLow))
}

// SynchronousWrite sets the logical level and returns once it is applied.
func (p *Pin) SynchronousWrite(on bool) { p.Write(on) }

// Read returns the logical level of the pin.
func (p *Pin) Read() bool {
	if p.Undefined() {
		return false
	}
	return p.bank.Level(p.desc.Number) != p.attr.Has(AttrActiveLow)
}

// On sets the pin to its logical on level.
func (p *Pin) On() { p.Write(true) }

// Off sets the pin to its logical off level.
func (p *Pin) Off() { p.Write(false) }

// Release returns the physical pin to its bank. Releasing twice is a no-op.
func (p *Pin) Release() {
	if p.Undefined() {
		return
	}
	p.released = true
	p.bank.release(p)
}

// Report logs the pin binding under the given legend. Undefined pins are
// not reported.
func (p *Pin) Report(logger *slog.Logger, legend string) {
	if p.Undefined() || logger == nil {
		return
	}
	logger.Info(legend, slog.String("pin", p.Name()), slog.String("attr", p.Attr().String()))
}
