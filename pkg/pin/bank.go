package pin

import (
	"fmt"
	"sync"
)

// Bank is an in-memory GPIO controller. It tracks which physical pins are
// owned and the level each one is at.
//
// Bank is safe for concurrent use.
type Bank struct {
	mu     sync.Mutex
	caps   map[int]Capabilities
	owned  map[int]*Pin
	levels map[int]bool
}

// NewBank creates a bank with the given capabilities per pin number.
func NewBank(caps map[int]Capabilities) *Bank {
	c := make(map[int]Capabilities, len(caps))
	for n, v := range caps {
		c[n] = v
	}
	return &Bank{
		caps:   c,
		owned:  make(map[int]*Pin),
		levels: make(map[int]bool),
	}
}

// NewESP32Bank creates a bank with the GPIO layout of an ESP32 module.
// GPIO 6-11 are wired to flash and left out; 34-39 are input only.
func NewESP32Bank() *Bank {
	caps := make(map[int]Capabilities)
	for n := 0; n <= 33; n++ {
		switch {
		case n >= 6 && n <= 11, n == 20, n == 24, n >= 28 && n <= 31:
			continue
		}
		caps[n] = CapGPIO
	}
	for _, n := range []int{32, 33} {
		caps[n] |= CapADC
	}
	for n := 34; n <= 39; n++ {
		if n == 37 || n == 38 {
			continue
		}
		caps[n] = CapInputOnly
	}
	return NewBank(caps)
}

// Acquire binds a pin to the given description.
// An undefined description yields an undefined pin that owns nothing.
func (b *Bank) Acquire(d Description) (*Pin, error) {
	if d.Undefined() {
		return &Pin{}, nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	caps, ok := b.caps[d.Number]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchPin, d)
	}
	if _, inUse := b.owned[d.Number]; inUse {
		return nil, fmt.Errorf("%w: %s", ErrPinInUse, d)
	}
	attr := d.Attr()
	if !caps.supports(attr) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedAttr, d)
	}

	p := &Pin{desc: d, bank: b, caps: caps, attr: attr}
	b.owned[d.Number] = p
	return p, nil
}

// InUse returns true if the physical pin is currently owned.
func (b *Bank) InUse(n int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.owned[n]
	return ok
}

// Level returns the physical level of a pin.
func (b *Bank) Level(n int) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.levels[n]
}

// SetLevel drives the physical level of a pin from outside, as a connected
// switch or sensor would.
func (b *Bank) SetLevel(n int, level bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.levels[n] = level
}

func (b *Bank) write(n int, level bool) {
	b.mu.Lock()
	b.levels[n] = level
	b.mu.Unlock()
}

func (b *Bank) release(p *Pin) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.owned[p.desc.Number] == p {
		delete(b.owned, p.desc.Number)
	}
}
