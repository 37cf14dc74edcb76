package log

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"
)

func TestEventCBORRoundTrip(t *testing.T) {
	event := Event{
		Time:    time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC),
		Session: "4a1d6f3e-0000-4000-8000-000000000001",
		Source:  SourceRuntime,
		Path:    "/axes/x/steps_per_mm",
		Old:     "80.000",
		New:     "100.000",
	}

	data, err := MarshalEvent(event)
	if err != nil {
		t.Fatalf("MarshalEvent failed: %v", err)
	}
	decoded, err := UnmarshalEvent(data)
	if err != nil {
		t.Fatalf("UnmarshalEvent failed: %v", err)
	}

	if !decoded.Time.Equal(event.Time) {
		t.Errorf("Time: got %v, want %v", decoded.Time, event.Time)
	}
	if decoded.Session != event.Session {
		t.Errorf("Session: got %q, want %q", decoded.Session, event.Session)
	}
	if decoded.Source != event.Source {
		t.Errorf("Source: got %v, want %v", decoded.Source, event.Source)
	}
	if decoded.Path != event.Path || decoded.Old != event.Old || decoded.New != event.New {
		t.Errorf("got %+v, want %+v", decoded, event)
	}
	if !decoded.Applied() {
		t.Error("decoded event should be applied")
	}
}

func TestEventCBORUsesIntegerKeys(t *testing.T) {
	data, err := MarshalEvent(Event{Path: "/name", New: "x"})
	if err != nil {
		t.Fatalf("MarshalEvent failed: %v", err)
	}
	if bytes.Contains(data, []byte("Path")) {
		t.Error("encoding should not contain field names")
	}
}

func TestEventOmitsEmptyOptionalFields(t *testing.T) {
	plain, _ := MarshalEvent(Event{Path: "/name", New: "x"})
	withOld, _ := MarshalEvent(Event{Path: "/name", Old: "y", New: "x"})
	if len(plain) >= len(withOld) {
		t.Errorf("empty Old should be omitted: %d >= %d bytes", len(plain), len(withOld))
	}
}

func TestHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := writeHeader(&buf); err != nil {
		t.Fatalf("writeHeader failed: %v", err)
	}
	if err := readHeader(decMode.NewDecoder(bytes.NewReader(buf.Bytes()))); err != nil {
		t.Errorf("readHeader: got %v, want nil", err)
	}

	if err := readHeader(decMode.NewDecoder(&bytes.Buffer{})); err != io.EOF {
		t.Errorf("empty stream: got %v, want io.EOF", err)
	}

	event, _ := MarshalEvent(Event{Path: "/name", New: "x"})
	if err := readHeader(decMode.NewDecoder(bytes.NewReader(event))); !errors.Is(err, ErrNotChangeLog) {
		t.Errorf("event first: got %v, want ErrNotChangeLog", err)
	}

	future, _ := encMode.Marshal(header{Magic: Magic, Version: FormatVersion + 1})
	if err := readHeader(decMode.NewDecoder(bytes.NewReader(future))); !errors.Is(err, ErrFormatVersion) {
		t.Errorf("newer version: got %v, want ErrFormatVersion", err)
	}
}

func TestUnmarshalEventRejectsGarbage(t *testing.T) {
	if _, err := UnmarshalEvent([]byte("not cbor")); !errors.Is(err, ErrNotChangeLog) {
		t.Errorf("got %v, want ErrNotChangeLog", err)
	}
}

func TestTimeKeepsZone(t *testing.T) {
	zone := time.FixedZone("CET", 3600)
	at := time.Date(2026, 3, 1, 13, 0, 0, 5, zone)
	data, _ := MarshalEvent(Event{Time: at, Path: "/name"})
	e, err := UnmarshalEvent(data)
	if err != nil {
		t.Fatalf("UnmarshalEvent failed: %v", err)
	}
	if !e.Time.Equal(at) {
		t.Errorf("Time: got %v, want %v", e.Time, at)
	}
	if _, off := e.Time.Zone(); off != 3600 {
		t.Errorf("zone offset: got %d, want 3600", off)
	}
}

func TestSourceString(t *testing.T) {
	tests := []struct {
		s    Source
		want string
	}{
		{SourceFile, "FILE"},
		{SourceRuntime, "RUNTIME"},
		{SourceSnapshot, "SNAPSHOT"},
		{Source(99), "UNKNOWN"},
	}
	for _, tt := range tests {
		if got := tt.s.String(); got != tt.want {
			t.Errorf("Source(%d).String(): got %q, want %q", tt.s, got, tt.want)
		}
	}
}
