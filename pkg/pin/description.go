package pin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Pin errors.
var (
	ErrBadDescription  = errors.New("invalid pin description")
	ErrNoSuchPin       = errors.New("no such pin")
	ErrPinInUse        = errors.New("pin already in use")
	ErrUnsupportedAttr = errors.New("attribute not supported by pin")
)

// Kind is the pin driver family named in a description.
type Kind uint8

const (
	// KindUndefined means no pin is bound.
	KindUndefined Kind = iota

	// KindGPIO is a native GPIO pin.
	KindGPIO
)

// UndefinedName is the description text of an unbound pin.
const UndefinedName = "NO_PIN"

// Description is the parsed form of a pin description such as "gpio.12:low:pu".
type Description struct {
	Kind      Kind
	Number    int
	ActiveLow bool
	PullUp    bool
	PullDown  bool
}

// ParseDescription parses pin description text.
// The empty string and "no_pin" describe an undefined pin.
func ParseDescription(s string) (Description, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == "no_pin" {
		return Description{}, nil
	}

	parts := strings.Split(s, ":")
	family, num, ok := strings.Cut(parts[0], ".")
	if !ok || family != "gpio" {
		return Description{}, fmt.Errorf("%w: %q: unknown pin type", ErrBadDescription, s)
	}
	n, err := strconv.Atoi(num)
	if err != nil || n < 0 {
		return Description{}, fmt.Errorf("%w: %q: bad pin number", ErrBadDescription, s)
	}

	d := Description{Kind: KindGPIO, Number: n}
	for _, opt := range parts[1:] {
		switch opt {
		case "low":
			d.ActiveLow = true
		case "high":
			d.ActiveLow = false
		case "pu":
			d.PullUp = true
		case "pd":
			d.PullDown = true
		default:
			return Description{}, fmt.Errorf("%w: %q: unknown option %q", ErrBadDescription, s, opt)
		}
	}
	if d.PullUp && d.PullDown {
		return Description{}, fmt.Errorf("%w: %q: pu and pd are exclusive", ErrBadDescription, s)
	}
	return d, nil
}

// Undefined returns true if the description binds no pin.
func (d Description) Undefined() bool { return d.Kind == KindUndefined }

// Attr returns the attributes implied by the description options.
func (d Description) Attr() Attr {
	var a Attr
	if d.ActiveLow {
		a |= AttrActiveLow
	}
	if d.PullUp {
		a |= AttrPullUp
	}
	if d.PullDown {
		a |= AttrPullDown
	}
	return a
}

// String returns the canonical description text.
func (d Description) String() string {
	if d.Undefined() {
		return UndefinedName
	}
	var b strings.Builder
	fmt.Fprintf(&b, "gpio.%d", d.Number)
	if d.ActiveLow {
		b.WriteString(":low")
	}
	if d.PullUp {
		b.WriteString(":pu")
	}
	if d.PullDown {
		b.WriteString(":pd")
	}
	return b.String()
}
