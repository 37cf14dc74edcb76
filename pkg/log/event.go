package log

import "time"

// Event is one change, or refused change, to a configuration item.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Time when the change was made (nanosecond precision).
	Time time.Time `cbor:"1,keyasint"`

	// Session groups the events of one parse or one shell session (UUID).
	Session string `cbor:"2,keyasint"`

	// Source tells what made the change.
	Source Source `cbor:"3,keyasint"`

	// Path is the slash path of the item, e.g. "/axes/x/steps_per_mm".
	Path string `cbor:"4,keyasint"`

	// Old is the previous value as text.
	Old string `cbor:"5,keyasint,omitempty"`

	// New is the requested value as text.
	New string `cbor:"6,keyasint"`

	// Rejected holds the reason when the change was refused.
	Rejected string `cbor:"7,keyasint,omitempty"`
}

// Applied returns true if the change took effect.
func (e Event) Applied() bool { return e.Rejected == "" }

// Source identifies what made a change.
type Source uint8

const (
	// SourceFile is a configuration file read by the parser.
	SourceFile Source = 0
	// SourceRuntime is a single setting changed by path.
	SourceRuntime Source = 1
	// SourceSnapshot is a restored CBOR snapshot.
	SourceSnapshot Source = 2
)

// String returns the source name.
func (s Source) String() string {
	switch s {
	case SourceFile:
		return "FILE"
	case SourceRuntime:
		return "RUNTIME"
	case SourceSnapshot:
		return "SNAPSHOT"
	default:
		return "UNKNOWN"
	}
}
