package generator

import (
	"net/netip"

	"github.com/motion-firmware/motioncfg/pkg/config"
	"github.com/motion-firmware/motioncfg/pkg/enum"
	"github.com/motion-firmware/motioncfg/pkg/scalar"
	"github.com/motion-firmware/motioncfg/pkg/setting"
	"github.com/motion-firmware/motioncfg/pkg/uart"
)

// Kind is the scalar type of an item's text.
type Kind uint8

const (
	// KindString is free text.
	KindString Kind = iota
	// KindInt is a decimal integer.
	KindInt
	// KindFloat is a decimal number.
	KindFloat
	// KindBool is "true" or "false".
	KindBool
)

// Sink receives a tree in declaration order.
type Sink interface {
	// Enter opens a section.
	Enter(name string)

	// Leave closes the innermost open section.
	Leave()

	// Value adds an item to the innermost open section.
	Value(name, text string, kind Kind)
}

// Walk visits root and feeds every present section and item to s.
func Walk(root config.Configurable, s Sink) {
	root.Group(&walker{sink: s})
}

type walker struct {
	sink Sink
}

func (w *walker) Type() config.HandlerType { return config.HandlerGenerator }

func (w *walker) MatchesUninitialized(string) bool { return false }

func (w *walker) EnterSection(name string, value config.Configurable) {
	w.sink.Enter(name)
	value.Group(w)
	w.sink.Leave()
}

func (w *walker) ItemBool(name string, value *setting.Setting[bool]) {
	w.sink.Value(name, scalar.FormatBool(value.Value()), KindBool)
}

func (w *walker) ItemInt32(name string, value *setting.Setting[int32], _, _ int32) {
	w.sink.Value(name, scalar.FormatInt32(value.Value()), KindInt)
}

func (w *walker) ItemFloat(name string, value *setting.Setting[float32], _, _ float32) {
	w.sink.Value(name, scalar.FormatFloat(value.Value()), KindFloat)
}

func (w *walker) ItemSpeedMap(name string, value *setting.Setting[[]config.SpeedEntry]) {
	w.sink.Value(name, scalar.FormatSpeedMap(value.Value()), KindString)
}

func (w *walker) ItemUart(name string, wordLength *setting.Setting[uart.Data], parity *setting.Setting[uart.Parity], stopBits *setting.Setting[uart.Stop]) {
	w.sink.Value(name, uart.FormatMode(wordLength.Value(), parity.Value(), stopBits.Value()), KindString)
}

func (w *walker) ItemStringRange(name string, value *setting.Setting[config.StringRange], _, _ int) {
	w.sink.Value(name, value.Value().String(), KindString)
}

func (w *walker) ItemPin(name string, value *setting.Pin) {
	w.sink.Value(name, value.Name(), KindString)
}

func (w *walker) ItemIPAddress(name string, value *setting.Setting[netip.Addr]) {
	w.sink.Value(name, scalar.FormatIPAddress(value.Value()), KindString)
}

func (w *walker) ItemEnum(name string, value *setting.Setting[int], table enum.Table) {
	if text, ok := scalar.FormatEnum(value.Value(), table); ok {
		w.sink.Value(name, text, KindString)
	} else {
		w.sink.Value(name, text, KindInt)
	}
}

// Compile-time interface satisfaction check.
var _ config.Handler = (*walker)(nil)
