package log

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestFileLoggerCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.clog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("log file was not created")
	}
}

func TestFileLoggerAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.clog")

	for _, p := range []string{"/first", "/second"} {
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger failed: %v", err)
		}
		logger.Log(Event{Time: time.Now(), Path: p})
		logger.Close()
	}

	events := readAll(t, path, Filter{})
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].Path != "/first" || events[1].Path != "/second" {
		t.Errorf("order: got %q, %q", events[0].Path, events[1].Path)
	}
}

func TestFileLoggerIgnoresLogAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.clog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger.Log(Event{Path: "/kept"})
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	logger.Log(Event{Path: "/dropped"})
	if err := logger.Close(); err != nil {
		t.Errorf("second Close: got %v, want nil", err)
	}

	if n := len(readAll(t, path, Filter{})); n != 1 {
		t.Errorf("got %d events, want 1", n)
	}
}

func TestFileLoggerConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.clog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				logger.Log(Event{Time: time.Now(), Path: "/axes/x/max_rate_mm_per_min"})
			}
		}()
	}
	wg.Wait()
	logger.Close()

	if n := len(readAll(t, path, Filter{})); n != 100 {
		t.Errorf("got %d events, want 100", n)
	}
}

func TestFileLoggerSurfacesWriteFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.clog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger.Log(Event{Path: "/kept"})
	if err := logger.Err(); err != nil {
		t.Fatalf("Err after good write: %v", err)
	}

	logger.file.Close()
	logger.Log(Event{Path: "/axes/x/steps_per_mm"})
	logger.Log(Event{Path: "/axes/y/steps_per_mm"})

	if !errors.Is(logger.Err(), os.ErrClosed) {
		t.Errorf("Err: got %v, want os.ErrClosed", logger.Err())
	}
	if !strings.Contains(logger.Err().Error(), "/axes/x/steps_per_mm") {
		t.Errorf("Err should name the first lost event: %v", logger.Err())
	}
	if n := logger.Written(); n != 1 {
		t.Errorf("Written: got %d, want 1", n)
	}
	if err := logger.Close(); !errors.Is(err, os.ErrClosed) {
		t.Errorf("Close: got %v, want os.ErrClosed", err)
	}
}

func TestFileLoggerStampsTime(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.clog")
	before := time.Now()

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger.Log(Event{Path: "/name"})
	logger.Close()

	events := readAll(t, path, Filter{})
	if len(events) != 1 || events[0].Time.Before(before) {
		t.Errorf("got %+v, want one event stamped after %v", events, before)
	}
}

func TestFileLoggerRefusesForeignFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("name: plotter\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileLogger(path); !errors.Is(err, ErrNotChangeLog) {
		t.Errorf("got %v, want ErrNotChangeLog", err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "name: plotter\n" {
		t.Errorf("foreign file was modified: %q", data)
	}
}

func readAll(t *testing.T, path string, filter Filter) []Event {
	t.Helper()

	r, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer r.Close()

	var events []Event
	for {
		e, err := r.Next()
		if err == io.EOF {
			return events
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		events = append(events, e)
	}
}
