package generator

import (
	"fmt"
	"strings"

	"github.com/tidwall/sjson"

	"github.com/motion-firmware/motioncfg/pkg/config"
)

// JSONSink builds a JSON document with sjson. Keys keep declaration order.
type JSONSink struct {
	doc  []byte
	path []string
	err  error
}

// NewJSONSink returns a JSONSink holding an empty object.
func NewJSONSink() *JSONSink {
	return &JSONSink{doc: []byte("{}")}
}

func (s *JSONSink) key(name string) string {
	parts := make([]string, 0, len(s.path)+1)
	for _, p := range append(s.path, name) {
		parts = append(parts, escapeKey(p))
	}
	return strings.Join(parts, ".")
}

func (s *JSONSink) set(name, raw string) {
	if s.err != nil {
		return
	}
	s.doc, s.err = sjson.SetRawBytes(s.doc, s.key(name), []byte(raw))
}

// Enter implements Sink.
func (s *JSONSink) Enter(name string) {
	s.set(name, "{}")
	s.path = append(s.path, name)
}

// Leave implements Sink.
func (s *JSONSink) Leave() {
	if len(s.path) > 0 {
		s.path = s.path[:len(s.path)-1]
	}
}

// Value implements Sink.
func (s *JSONSink) Value(name, text string, kind Kind) {
	if s.err != nil {
		return
	}
	switch kind {
	case KindString:
		s.doc, s.err = sjson.SetBytes(s.doc, s.key(name), text)
	default:
		s.set(name, text)
	}
}

// Bytes returns the document, or the first error sjson reported.
func (s *JSONSink) Bytes() ([]byte, error) {
	if s.err != nil {
		return nil, fmt.Errorf("encode json: %w", s.err)
	}
	return s.doc, nil
}

// JSON returns root as a JSON document.
func JSON(root config.Configurable) ([]byte, error) {
	s := NewJSONSink()
	Walk(root, s)
	return s.Bytes()
}

// escapeKey escapes the sjson path metacharacters in a key.
func escapeKey(k string) string {
	var b strings.Builder
	for _, r := range k {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\', ':':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Compile-time interface satisfaction check.
var _ Sink = (*JSONSink)(nil)
