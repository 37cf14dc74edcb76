package log

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func createTestLogFile(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.clog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()
	return path
}

func TestReaderFilters(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	events := []Event{
		{Time: base, Session: "s1", Source: SourceFile, Path: "/name", New: "plotter"},
		{Time: base.Add(time.Second), Session: "s1", Source: SourceFile, Path: "/axes/x/steps_per_mm", New: "80"},
		{Time: base.Add(2 * time.Second), Session: "s2", Source: SourceRuntime, Path: "/axes/x/steps_per_mm", New: "-1", Rejected: "out of range"},
		{Time: base.Add(3 * time.Second), Session: "s2", Source: SourceRuntime, Path: "/axes/y/steps_per_mm", New: "90"},
	}
	path := createTestLogFile(t, events)

	runtime := SourceRuntime
	start := base.Add(time.Second)
	end := base.Add(3 * time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 4},
		{"session", Filter{Session: "s1"}, 2},
		{"source", Filter{Source: &runtime}, 2},
		{"path prefix", Filter{PathPrefix: "/axes/x"}, 2},
		{"rejected only", Filter{RejectedOnly: true}, 1},
		{"time window", Filter{TimeStart: &start, TimeEnd: &end}, 2},
		{"combined", Filter{Session: "s2", PathPrefix: "/axes/y"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := readAll(t, path, tt.filter)
			if len(got) != tt.want {
				t.Errorf("got %d events, want %d", len(got), tt.want)
			}
		})
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "missing.clog")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReaderRejectsForeignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("name: plotter\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewReader(path); !errors.Is(err, ErrNotChangeLog) {
		t.Errorf("got %v, want ErrNotChangeLog", err)
	}
}

func TestReaderEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.clog")
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	if n := len(readAll(t, path, Filter{})); n != 0 {
		t.Errorf("got %d events, want 0", n)
	}
}

func TestReaderHeaderOnly(t *testing.T) {
	path := createTestLogFile(t, nil)
	if n := len(readAll(t, path, Filter{})); n != 0 {
		t.Errorf("got %d events, want 0", n)
	}
}
