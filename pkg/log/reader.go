package log

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fxamacker/cbor/v2"
)

// Filter selects change events. Zero fields match everything.
type Filter struct {
	// Session filters by exact session ID.
	Session string

	// Source filters by change source.
	Source *Source

	// PathPrefix keeps events whose path starts with it, e.g. "/axes/x".
	PathPrefix string

	// RejectedOnly keeps only refused changes.
	RejectedOnly bool

	// TimeStart keeps events at or after this time.
	TimeStart *time.Time

	// TimeEnd keeps events before this time.
	TimeEnd *time.Time
}

func (f *Filter) matches(event Event) bool {
	if f.Session != "" && event.Session != f.Session {
		return false
	}
	if f.Source != nil && event.Source != *f.Source {
		return false
	}
	if f.PathPrefix != "" && !strings.HasPrefix(event.Path, f.PathPrefix) {
		return false
	}
	if f.RejectedOnly && event.Applied() {
		return false
	}
	if f.TimeStart != nil && event.Time.Before(*f.TimeStart) {
		return false
	}
	if f.TimeEnd != nil && !event.Time.Before(*f.TimeEnd) {
		return false
	}
	return true
}

// Reader streams change events from a file written by FileLogger.
type Reader struct {
	file    *os.File
	decoder *cbor.Decoder
	filter  Filter
	done    bool
}

// NewReader returns a Reader over all events in path.
func NewReader(path string) (*Reader, error) {
	return NewFilteredReader(path, Filter{})
}

// NewFilteredReader returns a Reader over the events in path matching filter.
// It returns ErrNotChangeLog when the file does not start with a change log
// header.
func NewFilteredReader(path string, filter Filter) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	r := &Reader{
		file:    f,
		decoder: decMode.NewDecoder(f),
		filter:  filter,
	}
	switch err := readHeader(r.decoder); {
	case errors.Is(err, io.EOF):
		r.done = true
	case err != nil:
		f.Close()
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// Next returns the next matching event, or io.EOF at the end of the file.
func (r *Reader) Next() (Event, error) {
	if r.done {
		return Event{}, io.EOF
	}
	for {
		var event Event
		if err := r.decoder.Decode(&event); err != nil {
			if errors.Is(err, io.EOF) {
				return Event{}, io.EOF
			}
			return Event{}, err
		}
		if r.filter.matches(event) {
			return event, nil
		}
	}
}

// Close closes the underlying file.
func (r *Reader) Close() error {
	return r.file.Close()
}
