package log

import "sync"

// Logger receives change events. Implementations must be safe for
// concurrent use.
type Logger interface {
	Log(event Event)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(Event)

// Log calls f(event).
func (f LoggerFunc) Log(event Event) { f(event) }

// Discard drops every event.
var Discard Logger = discard{}

type discard struct{}

func (discard) Log(Event) {}

// Tee returns a Logger that hands each event to every logger in order. Nil
// and Discard entries are dropped and nested tees are flattened.
func Tee(loggers ...Logger) Logger {
	var t tee
	for _, l := range loggers {
		switch x := l.(type) {
		case nil, discard:
		case tee:
			t = append(t, x...)
		default:
			t = append(t, l)
		}
	}
	switch len(t) {
	case 0:
		return Discard
	case 1:
		return t[0]
	}
	return t
}

type tee []Logger

func (t tee) Log(event Event) {
	for _, l := range t {
		l.Log(event)
	}
}

// Recorder keeps events in memory in arrival order.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Log appends the event.
func (r *Recorder) Log(event Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Rejected returns the recorded refused changes.
func (r *Recorder) Rejected() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if !e.Applied() {
			out = append(out, e)
		}
	}
	return out
}
