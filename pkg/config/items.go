package config

import (
	"strings"

	"github.com/motion-firmware/motioncfg/pkg/setting"
)

// ItemUint32 visits an unsigned integer through the signed 32-bit item.
//
// Values above MaxInt32 cannot be represented: bounds and the current value
// are clamped to MaxInt32 before the handler sees them. The stored value is
// only written back when the handler changed it.
func ItemUint32(h Handler, name string, value *setting.Setting[uint32], min, max uint32) {
	presented := clampInt32(value.Value())
	tmp := setting.New(presented)
	h.ItemInt32(name, tmp, clampInt32(min), clampInt32(max))
	if v := tmp.Value(); v != presented {
		value.Set(uint32(v))
	}
}

// ItemUint8 visits an 8-bit unsigned integer through the signed 32-bit item.
func ItemUint8(h Handler, name string, value *setting.Setting[uint8], min, max uint8) {
	presented := int32(value.Value())
	tmp := setting.New(presented)
	h.ItemInt32(name, tmp, int32(min), int32(max))
	if v := tmp.Value(); v != presented {
		value.Set(uint8(v))
	}
}

func clampInt32(v uint32) int32 {
	if v > uint32(MaxInt32) {
		return MaxInt32
	}
	return int32(v)
}

// ItemString visits an owned string through the bounded text view.
//
// The handler sees a view of the owned string. If the view it leaves behind
// covers the same bytes, the owned string is untouched; otherwise a new
// owned string is made from the view and stored, exactly once.
func ItemString(h Handler, name string, value *setting.Setting[string], minLength, maxLength int) {
	orig := NewStringRange(value.Value())
	tmp := setting.New(orig)
	h.ItemStringRange(name, tmp, minLength, maxLength)
	if r := tmp.Value(); !r.Same(orig) {
		value.Set(strings.Clone(r.String()))
	}
}

// Section visits an optional child node held in *slot.
//
// While parsing, a nil slot whose name matches an unconsumed section header
// is allocated, given its defaults if it is a Defaulter, and entered; a slot
// that is already set is left alone. In any other mode the child is entered
// if present and nothing is allocated.
func Section[T any, P interface {
	*T
	Configurable
}](h SectionVisitor, name string, slot *P) {
	if h.Type().IsParsing() {
		if *slot == nil && h.MatchesUninitialized(name) {
			*slot = P(new(T))
			if d, ok := any(*slot).(Defaulter); ok {
				d.SetDefaults()
			}
			h.EnterSection(name, *slot)
		}
		return
	}
	if *slot != nil {
		h.EnterSection(name, *slot)
	}
}

// EnterFactory visits a node constructed by a Factory. It never allocates.
func EnterFactory(h SectionHooks, name string, value Configurable) {
	h.EnterSection(name, value)
}

// JoinPath returns the slash-separated path of name below parents.
func JoinPath(parents []string, name string) string {
	var b strings.Builder
	for _, p := range parents {
		if p == "" {
			continue
		}
		b.WriteByte('/')
		b.WriteString(p)
	}
	b.WriteByte('/')
	b.WriteString(name)
	return b.String()
}
