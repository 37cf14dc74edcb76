package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// FileLogger appends change events to a change log file. It is safe for
// concurrent use.
//
// A failed write does not stop later events from being attempted; the first
// failure is kept and returned by Err and Close.
type FileLogger struct {
	path string

	mu      sync.Mutex
	file    *os.File
	written int
	err     error
	closed  bool
}

// NewFileLogger opens path for appending, creating it with mode 0644. A new
// or empty file gets a header; an existing file must already be a change
// log.
func NewFileLogger(path string) (*FileLogger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	if err := prepare(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("change log %s: %w", path, err)
	}
	return &FileLogger{path: path, file: f}, nil
}

func prepare(f *os.File) error {
	err := readHeader(decMode.NewDecoder(f))
	if errors.Is(err, io.EOF) {
		return writeHeader(f)
	}
	return err
}

// Log appends an event. A zero Time is stamped with the current time.
func (l *FileLogger) Log(event Event) {
	if event.Time.IsZero() {
		event.Time = time.Now()
	}
	data, err := MarshalEvent(event)

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return
	}
	if err == nil {
		_, err = l.file.Write(data)
	}
	if err != nil {
		if l.err == nil {
			l.err = fmt.Errorf("change log %s: event %d (%s): %w", l.path, l.written+1, event.Path, err)
		}
		return
	}
	l.written++
}

// Written returns how many events were stored.
func (l *FileLogger) Written() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.written
}

// Err returns the first write failure, if any.
func (l *FileLogger) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.err
}

// Close syncs and closes the file and returns the first write failure
// together with any close failure. Later Log calls are ignored; repeated
// Close calls return nil.
func (l *FileLogger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed {
		return nil
	}
	l.closed = true
	var syncErr error
	if l.err == nil {
		syncErr = l.file.Sync()
	}
	return errors.Join(l.err, syncErr, l.file.Close())
}
