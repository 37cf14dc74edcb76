package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestDiscard(t *testing.T) {
	Discard.Log(Event{Path: "/name"})
}

func TestTeeFansOut(t *testing.T) {
	a, b := &Recorder{}, &Recorder{}
	var seen []string
	f := LoggerFunc(func(e Event) { seen = append(seen, e.Path) })

	l := Tee(a, nil, Discard, Tee(b, f))
	l.Log(Event{Path: "/name"})

	if len(a.Events()) != 1 || len(b.Events()) != 1 || len(seen) != 1 {
		t.Errorf("got %d, %d and %d events, want 1 each", len(a.Events()), len(b.Events()), len(seen))
	}
	if n := len(l.(tee)); n != 3 {
		t.Errorf("nested tee: got %d loggers, want 3", n)
	}
}

func TestTeeCollapses(t *testing.T) {
	if l := Tee(); l != Discard {
		t.Errorf("empty tee: got %T, want Discard", l)
	}
	if l := Tee(nil, Discard); l != Discard {
		t.Errorf("discard-only tee: got %T, want Discard", l)
	}
	r := &Recorder{}
	if l := Tee(Discard, r); l != Logger(r) {
		t.Errorf("single logger: got %T, want the logger itself", l)
	}
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	r.Log(Event{Path: "/a", New: "1"})
	r.Log(Event{Path: "/b", New: "x", Rejected: "not a number"})

	events := r.Events()
	if len(events) != 2 || events[0].Path != "/a" {
		t.Fatalf("got %+v", events)
	}
	events[0].Path = "/changed"
	if r.Events()[0].Path != "/a" {
		t.Error("Events must return a copy")
	}

	rejected := r.Rejected()
	if len(rejected) != 1 || rejected[0].Path != "/b" {
		t.Errorf("Rejected: got %+v", rejected)
	}
}

func TestSlogAdapterLevels(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	a := NewSlogAdapter(logger)

	a.Log(Event{Source: SourceRuntime, Path: "/axes/x/steps_per_mm", Old: "80.000", New: "100.000"})
	a.Log(Event{Source: SourceFile, Path: "/axes/x/steps_per_mm", New: "-5", Rejected: "value out of range"})

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[0], "level=INFO") || !strings.Contains(lines[0], "new=100.000") {
		t.Errorf("applied line: %s", lines[0])
	}
	if !strings.Contains(lines[1], "level=WARN") || !strings.Contains(lines[1], `reason="value out of range"`) {
		t.Errorf("rejected line: %s", lines[1])
	}
}
