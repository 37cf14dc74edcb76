// Package machine declares the configuration tree of a motion controller.
//
// A Machine is loaded from YAML in three passes: the parser stores the
// values, the after-parse pass fills in required sections with defaults and
// the validator checks invariants spanning several items. Pins are then
// configured for the direction they are used in.
//
//	m, err := machine.Load(data, machine.WithPins(pin.NewESP32Bank()))
//	if err != nil {
//	    return err
//	}
//	defer m.Close()
//
// # Sections
//
// Optional sections stay nil until the input names them. Polymorphic slots
// (spindle and kinematics) are chosen by variant name:
//
//	kinematics:
//	  WallPlotter:
//	    left_anchor_x: -267
//	PWM:
//	  output_pin: gpio.25
//
// # Runtime access
//
// Get and Set address single items by slash path, e.g.
// "/axes/x/steps_per_mm". Dump regenerates the tree as YAML, JSON or a CBOR
// snapshot.
package machine
