package config

import (
	"math"
	"net/netip"

	"github.com/motion-firmware/motioncfg/pkg/enum"
	"github.com/motion-firmware/motioncfg/pkg/setting"
	"github.com/motion-firmware/motioncfg/pkg/uart"
)

// HandlerType tells the generic traversal helpers which mode a handler runs in.
type HandlerType uint8

const (
	// HandlerParser populates the tree from input and may allocate sections.
	HandlerParser HandlerType = iota

	// HandlerAfterParse runs post-parse hooks.
	HandlerAfterParse

	// HandlerRuntime gets or sets a single item by path.
	HandlerRuntime

	// HandlerGenerator reads the tree out for reporting or regeneration.
	HandlerGenerator

	// HandlerValidator checks node-level invariants.
	HandlerValidator
)

// IsParsing returns true only for HandlerParser.
func (t HandlerType) IsParsing() bool { return t == HandlerParser }

// String returns the handler type name.
func (t HandlerType) String() string {
	switch t {
	case HandlerParser:
		return "parser"
	case HandlerAfterParse:
		return "afterparse"
	case HandlerRuntime:
		return "runtime"
	case HandlerGenerator:
		return "generator"
	case HandlerValidator:
		return "validator"
	default:
		return "unknown"
	}
}

// Default item bounds.
const (
	DefaultInt32Min  int32   = 0
	DefaultInt32Max  int32   = MaxInt32
	DefaultFloatMin  float32 = -3e38
	DefaultFloatMax  float32 = 3e38
	DefaultMinLength         = 0
	DefaultMaxLength         = 255

	// MaxInt32 is the ceiling of every integer item, signed or not.
	MaxInt32 int32 = math.MaxInt32
)

// SectionHooks are the two hooks composite traversal uses. They are kept
// apart from the item methods so Section, EnterFactory and Factory depend
// on nothing else.
type SectionHooks interface {
	// EnterSection visits the named child node.
	EnterSection(name string, value Configurable)

	// MatchesUninitialized returns true if the unconsumed input holds a
	// section header equal to name. Only meaningful while parsing.
	MatchesUninitialized(name string) bool
}

// SectionVisitor is what the composite helpers need from a handler.
type SectionVisitor interface {
	SectionHooks
	Type() HandlerType
}

// Handler is a traversal strategy over a configuration tree. It has one
// method per item category.
//
// Handlers must enforce the bounds they are given: out-of-range input while
// parsing is rejected, never clamped.
type Handler interface {
	SectionVisitor

	// ItemBool visits a boolean.
	ItemBool(name string, value *setting.Setting[bool])

	// ItemInt32 visits a signed integer bounded by [min, max].
	ItemInt32(name string, value *setting.Setting[int32], min, max int32)

	// ItemFloat visits a float bounded by [min, max].
	ItemFloat(name string, value *setting.Setting[float32], min, max float32)

	// ItemSpeedMap visits a calibration table. The sequence is replaced or
	// reported as a whole.
	ItemSpeedMap(name string, value *setting.Setting[[]SpeedEntry])

	// ItemUart visits the three fields of a serial frame format together so
	// the combination can be validated at once.
	ItemUart(name string, wordLength *setting.Setting[uart.Data], parity *setting.Setting[uart.Parity], stopBits *setting.Setting[uart.Stop])

	// ItemStringRange visits a text view whose length is bounded by
	// [minLength, maxLength].
	ItemStringRange(name string, value *setting.Setting[StringRange], minLength, maxLength int)

	// ItemPin visits a pin binding. A parser must release the old pin
	// before binding the new one.
	ItemPin(name string, value *setting.Pin)

	// ItemIPAddress visits an IP address.
	ItemIPAddress(name string, value *setting.Setting[netip.Addr])

	// ItemEnum visits an integer stored by symbolic name through table.
	ItemEnum(name string, value *setting.Setting[int], table enum.Table)
}

// Configurable is a node of the configuration tree.
type Configurable interface {
	// Group calls h once per declared item, in declaration order.
	Group(h Handler)
}

// Defaulter is implemented by nodes with non-zero defaults. Section calls
// SetDefaults on every node it allocates, before entering it.
type Defaulter interface {
	SetDefaults()
}

// AfterParser is implemented by nodes that fix themselves up once parsing
// is done, typically by allocating required sections with defaults.
type AfterParser interface {
	AfterParse()
}

// Validator is implemented by nodes with invariants spanning several items.
type Validator interface {
	Validate() error
}
