package log

import (
	"errors"
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Change log file errors.
var (
	ErrNotChangeLog  = errors.New("not a change log")
	ErrFormatVersion = errors.New("unsupported change log version")
)

// Magic and FormatVersion identify a change log file. Every file starts with
// one header item followed by one item per event.
const (
	Magic         = "motioncfg/changelog"
	FormatVersion = 1
)

type header struct {
	Magic   string `cbor:"1,keyasint"`
	Version uint   `cbor:"2,keyasint"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error

	// Times keep nanoseconds and their zone offset as tagged RFC 3339 text.
	encMode, err = cbor.EncOptions{
		Sort:        cbor.SortCoreDeterministic,
		IndefLength: cbor.IndefLengthForbidden,
		Time:        cbor.TimeRFC3339Nano,
		TimeTag:     cbor.EncTagRequired,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("change log encoder mode: %v", err))
	}

	// Unknown keys are skipped so older tools read newer logs.
	decMode, err = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("change log decoder mode: %v", err))
	}
}

// MarshalEvent returns the CBOR item of one event.
func MarshalEvent(event Event) ([]byte, error) {
	return encMode.Marshal(event)
}

// UnmarshalEvent decodes one event item.
func UnmarshalEvent(data []byte) (Event, error) {
	var event Event
	if err := decMode.Unmarshal(data, &event); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrNotChangeLog, err)
	}
	return event, nil
}

func writeHeader(w io.Writer) error {
	data, err := encMode.Marshal(header{Magic: Magic, Version: FormatVersion})
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// readHeader consumes and checks the header. It returns io.EOF for an empty
// stream.
func readHeader(dec *cbor.Decoder) error {
	var raw cbor.RawMessage
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return io.EOF
		}
		return fmt.Errorf("%w: %v", ErrNotChangeLog, err)
	}
	var h header
	if err := decMode.Unmarshal(raw, &h); err != nil || h.Magic != Magic {
		return ErrNotChangeLog
	}
	if h.Version != FormatVersion {
		return fmt.Errorf("%w: %d", ErrFormatVersion, h.Version)
	}
	return nil
}
