// Package pin models the hardware pins a machine configuration binds to.
//
// A Pin is a handle to one physical pin owned by a Bank. Pins are acquired
// from a textual Description and must be released before the same physical
// pin can be acquired again, so there is never more than one live owner of
// a pin.
//
// # Descriptions
//
// Pins are described as text in the machine configuration:
//
//	gpio.12           plain GPIO 12
//	gpio.12:low       active-low (logical on drives the pin low)
//	gpio.35:pu        with pull-up
//	gpio.4:low:pd     active-low with pull-down
//	no_pin            no pin bound
//
// # Banks
//
// The Bank in this package is an in-memory GPIO controller with a capability
// map per pin. It is used by the configuration tooling and tests; the levels
// it records can be inspected with Bank.Level and driven with Bank.SetLevel.
package pin
