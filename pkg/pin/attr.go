package pin

import "strings"

// Attr is the set of attributes a pin is configured with.
type Attr uint16

const (
	// AttrInput configures the pin as an input.
	AttrInput Attr = 1 << iota

	// AttrOutput configures the pin as an output.
	AttrOutput

	// AttrPullUp enables the internal pull-up.
	AttrPullUp

	// AttrPullDown enables the internal pull-down.
	AttrPullDown

	// AttrActiveLow inverts the logical level.
	AttrActiveLow

	// AttrInitialOn drives an output to its logical on level when configured.
	AttrInitialOn
)

// AttrNone is the empty attribute set.
const AttrNone Attr = 0

// Has returns true if all bits of o are set.
func (a Attr) Has(o Attr) bool { return a&o == o }

// String returns the attribute set as a compact flag list.
func (a Attr) String() string {
	var parts []string
	if a.Has(AttrInput) {
		parts = append(parts, "in")
	}
	if a.Has(AttrOutput) {
		parts = append(parts, "out")
	}
	if a.Has(AttrPullUp) {
		parts = append(parts, "pu")
	}
	if a.Has(AttrPullDown) {
		parts = append(parts, "pd")
	}
	if a.Has(AttrActiveLow) {
		parts = append(parts, "low")
	}
	if a.Has(AttrInitialOn) {
		parts = append(parts, "on")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}

// Capabilities is the set of functions a physical pin supports.
type Capabilities uint16

const (
	// CapInput means the pin can be read.
	CapInput Capabilities = 1 << iota

	// CapOutput means the pin can be driven.
	CapOutput

	// CapPullUp means the pin has an internal pull-up.
	CapPullUp

	// CapPullDown means the pin has an internal pull-down.
	CapPullDown

	// CapPWM means the pin can be driven by a PWM channel.
	CapPWM

	// CapADC means the pin is connected to an ADC.
	CapADC

	// CapUART means the pin can be routed to a UART.
	CapUART

	// Common capability combinations.

	// CapGPIO is a full bidirectional GPIO.
	CapGPIO = CapInput | CapOutput | CapPullUp | CapPullDown | CapPWM | CapUART

	// CapInputOnly is an input without pulls.
	CapInputOnly = CapInput | CapADC
)

// Has returns true if all bits of o are set.
func (c Capabilities) Has(o Capabilities) bool { return c&o == o }

// supports reports whether the attributes can be applied to a pin with
// these capabilities.
func (c Capabilities) supports(a Attr) bool {
	if a.Has(AttrInput) && !c.Has(CapInput) {
		return false
	}
	if a.Has(AttrOutput) && !c.Has(CapOutput) {
		return false
	}
	if a.Has(AttrPullUp) && !c.Has(CapPullUp) {
		return false
	}
	if a.Has(AttrPullDown) && !c.Has(CapPullDown) {
		return false
	}
	return true
}
