package snapshot

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/motion-firmware/motioncfg/pkg/config"
	"github.com/motion-firmware/motioncfg/pkg/generator"
	"github.com/motion-firmware/motioncfg/pkg/log"
	"github.com/motion-firmware/motioncfg/pkg/parser"
	"github.com/motion-firmware/motioncfg/pkg/scalar"
)

// Version is the envelope version written by this package.
const Version = 1

// Snapshot errors.
var (
	ErrVersion = errors.New("unsupported snapshot version")
	ErrValue   = errors.New("unsupported snapshot value")
)

// Snapshot is the envelope of an encoded tree.
type Snapshot struct {
	// Version of the envelope.
	Version uint8 `cbor:"1,keyasint"`

	// Taken is when the snapshot was made.
	Taken time.Time `cbor:"2,keyasint"`

	// Tree holds sections as nested maps and items as strings, integers,
	// floats or booleans.
	Tree map[string]any `cbor:"3,keyasint"`
}

// New captures root.
func New(root config.Configurable, taken time.Time) *Snapshot {
	b := newBuilder()
	generator.Walk(root, b)
	return &Snapshot{Version: Version, Taken: taken, Tree: b.root}
}

// Marshal encodes s.
func (s *Snapshot) Marshal() ([]byte, error) {
	data, err := encMode.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// Encode captures root now and encodes it.
func Encode(root config.Configurable) ([]byte, error) {
	return New(root, time.Now()).Marshal()
}

// Decode decodes a snapshot envelope.
func Decode(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := decMode.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if s.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, s.Version)
	}
	return &s, nil
}

// Node returns the tree as a YAML mapping node with keys sorted.
func (s *Snapshot) Node() (*yaml.Node, error) {
	return toNode(s.Tree)
}

// Restore decodes data and parses it into root. Change events are tagged
// log.SourceSnapshot unless opts say otherwise.
func Restore(data []byte, root config.Configurable, opts ...parser.Option) error {
	s, err := Decode(data)
	if err != nil {
		return err
	}
	node, err := s.Node()
	if err != nil {
		return err
	}
	opts = append([]parser.Option{parser.WithSource(log.SourceSnapshot)}, opts...)
	return parser.ParseNode(node, root, opts...)
}

// builder is a generator.Sink producing nested maps.
type builder struct {
	root  map[string]any
	stack []map[string]any
}

func newBuilder() *builder {
	root := map[string]any{}
	return &builder{root: root, stack: []map[string]any{root}}
}

func (b *builder) top() map[string]any { return b.stack[len(b.stack)-1] }

func (b *builder) Enter(name string) {
	m := map[string]any{}
	b.top()[name] = m
	b.stack = append(b.stack, m)
}

func (b *builder) Leave() {
	b.stack = b.stack[:len(b.stack)-1]
}

func (b *builder) Value(name, text string, kind generator.Kind) {
	var v any = text
	switch kind {
	case generator.KindInt:
		if n, err := strconv.ParseInt(text, 10, 64); err == nil {
			v = n
		}
	case generator.KindFloat:
		if f, err := scalar.ParseFloat(text); err == nil {
			v = f
		}
	case generator.KindBool:
		if t, err := scalar.ParseBool(text); err == nil {
			v = t
		}
	}
	b.top()[name] = v
}

func toNode(v any) (*yaml.Node, error) {
	switch x := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"}, nil
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, k := range keys {
			child, err := toNode(x[k])
			if err != nil {
				return nil, fmt.Errorf("%s: %w", k, err)
			}
			n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: k}, child)
		}
		return n, nil
	case string:
		return scalarNode("!!str", x), nil
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(x)), nil
	case int64:
		return scalarNode("!!int", strconv.FormatInt(x, 10)), nil
	case uint64:
		return scalarNode("!!int", strconv.FormatUint(x, 10)), nil
	case float32:
		return scalarNode("!!float", strconv.FormatFloat(float64(x), 'f', -1, 32)), nil
	case float64:
		return scalarNode("!!float", strconv.FormatFloat(x, 'f', -1, 64)), nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrValue, v)
	}
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// Compile-time interface satisfaction check.
var _ generator.Sink = (*builder)(nil)
