package generator

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/motion-firmware/motioncfg/pkg/config"
)

var yamlTags = map[Kind]string{
	KindString: "!!str",
	KindInt:    "!!int",
	KindFloat:  "!!float",
	KindBool:   "!!bool",
}

// YAMLSink builds a yaml.v3 node tree.
type YAMLSink struct {
	root  *yaml.Node
	stack []*yaml.Node
}

// NewYAMLSink returns an empty YAMLSink.
func NewYAMLSink() *YAMLSink {
	root := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	return &YAMLSink{root: root, stack: []*yaml.Node{root}}
}

func (s *YAMLSink) top() *yaml.Node { return s.stack[len(s.stack)-1] }

func (s *YAMLSink) add(name string, value *yaml.Node) {
	key := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
	top := s.top()
	top.Content = append(top.Content, key, value)
}

// Enter implements Sink.
func (s *YAMLSink) Enter(name string) {
	m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	s.add(name, m)
	s.stack = append(s.stack, m)
}

// Leave implements Sink.
func (s *YAMLSink) Leave() {
	if len(s.stack) > 1 {
		s.stack = s.stack[:len(s.stack)-1]
	}
}

// Value implements Sink.
func (s *YAMLSink) Value(name, text string, kind Kind) {
	s.add(name, &yaml.Node{Kind: yaml.ScalarNode, Tag: yamlTags[kind], Value: text})
}

// Node returns the top-level mapping node.
func (s *YAMLSink) Node() *yaml.Node { return s.root }

// YAMLNode returns root as a yaml.v3 mapping node.
func YAMLNode(root config.Configurable) *yaml.Node {
	s := NewYAMLSink()
	Walk(root, s)
	return s.Node()
}

// YAML returns root as a YAML document.
func YAML(root config.Configurable) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(YAMLNode(root)); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode yaml: %w", err)
	}
	return buf.Bytes(), nil
}

// Compile-time interface satisfaction check.
var _ Sink = (*YAMLSink)(nil)
