// Package config defines how configuration trees are declared and visited.
//
// # Nodes and Handlers
//
// A configuration tree is made of nodes implementing Configurable. A node
// declares its items in Group, calling back into the Handler once per item,
// in declaration order:
//
//	func (a *Axis) Group(h config.Handler) {
//	    h.ItemFloat("steps_per_mm", &a.StepsPerMm, 0.001, 100000)
//	    h.ItemFloat("max_rate_mm_per_min", &a.MaxRate, 0.001, 100000)
//	    config.Section(h, "homing", &a.Homing)
//	    config.Section(h, "motor0", &a.Motor0)
//	}
//
// A Handler is one traversal strategy. The parser populates values from
// text, generators read them back out, the runtime handler gets or sets a
// single item by path. Every handler sees the same declaration, so bounds
// and names are written once.
//
// # Handler Modes
//
// Handlers report a HandlerType. Section uses it to pick between two
// behaviours: while parsing, a nil child slot is allocated when the input
// has an unconsumed section with that name; in every other mode only
// present children are visited and nothing is allocated.
//
// # Adapters
//
// Some item categories are implemented once on top of the Handler interface:
// ItemUint32 and ItemUint8 route through the signed 32-bit item, and
// ItemString routes through the bounded text view, replacing the owned
// string only when the handler returns different text.
//
// ItemUint32 cannot represent values above math.MaxInt32. Bounds and values
// above that ceiling are clamped to it before being handed to the handler.
//
// # Errors
//
// The dispatch layer never fails on its own. Handlers detect bound
// violations and report them as *ValidationError.
//
// # Concurrency
//
// Traversals are plain synchronous call trees. Nothing in this package
// locks; callers must not traverse one tree from several goroutines at once.
package config
