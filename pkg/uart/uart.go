// Package uart defines the serial frame format of a UART: word length,
// parity and stop bits.
package uart

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMode is returned for unknown or inconsistent frame formats.
var ErrInvalidMode = errors.New("invalid uart mode")

// Data is the word length in bits.
type Data uint8

// Supported word lengths.
const (
	Data5 Data = 5
	Data6 Data = 6
	Data7 Data = 7
	Data8 Data = 8
)

// Valid returns true for 5 to 8 data bits.
func (d Data) Valid() bool { return d >= Data5 && d <= Data8 }

// Parity is the parity mode.
type Parity uint8

// Parity modes.
const (
	ParityNone Parity = iota
	ParityEven
	ParityOdd
)

// String returns the single-letter parity code.
func (p Parity) String() string {
	switch p {
	case ParityNone:
		return "N"
	case ParityEven:
		return "E"
	case ParityOdd:
		return "O"
	default:
		return "?"
	}
}

// Stop is the number of stop bits.
type Stop uint8

// Stop bit settings.
const (
	Stop1 Stop = iota
	Stop1_5
	Stop2
)

// String returns the stop bits as written in a mode string.
func (s Stop) String() string {
	switch s {
	case Stop1:
		return "1"
	case Stop1_5:
		return "1.5"
	case Stop2:
		return "2"
	default:
		return "?"
	}
}

// Validate checks that the three fields form a frame a UART can produce.
// 1.5 stop bits exist only with 5 data bits, and 2 stop bits are not
// available with 5 data bits.
func Validate(d Data, p Parity, s Stop) error {
	if !d.Valid() {
		return fmt.Errorf("%w: %d data bits", ErrInvalidMode, d)
	}
	if p > ParityOdd {
		return fmt.Errorf("%w: parity %d", ErrInvalidMode, p)
	}
	switch s {
	case Stop1:
	case Stop1_5:
		if d != Data5 {
			return fmt.Errorf("%w: 1.5 stop bits need 5 data bits", ErrInvalidMode)
		}
	case Stop2:
		if d == Data5 {
			return fmt.Errorf("%w: 2 stop bits not available with 5 data bits", ErrInvalidMode)
		}
	default:
		return fmt.Errorf("%w: stop bits %d", ErrInvalidMode, s)
	}
	return nil
}

// ParseMode parses a mode string such as "8N1", "7E2" or "5N1.5".
func ParseMode(s string) (Data, Parity, Stop, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) < 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}

	if s[0] < '5' || s[0] > '8' {
		return 0, 0, 0, fmt.Errorf("%w: %q: data bits", ErrInvalidMode, s)
	}
	d := Data(s[0] - '0')

	var p Parity
	switch s[1] {
	case 'N':
		p = ParityNone
	case 'E':
		p = ParityEven
	case 'O':
		p = ParityOdd
	default:
		return 0, 0, 0, fmt.Errorf("%w: %q: parity", ErrInvalidMode, s)
	}

	var st Stop
	switch s[2:] {
	case "1":
		st = Stop1
	case "1.5":
		st = Stop1_5
	case "2":
		st = Stop2
	default:
		return 0, 0, 0, fmt.Errorf("%w: %q: stop bits", ErrInvalidMode, s)
	}

	if err := Validate(d, p, st); err != nil {
		return 0, 0, 0, err
	}
	return d, p, st, nil
}

// FormatMode returns the mode string for the three fields.
func FormatMode(d Data, p Parity, s Stop) string {
	return fmt.Sprintf("%d%s%s", d, p, s)
}
