package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"net/netip"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/motion-firmware/motioncfg/pkg/config"
	"github.com/motion-firmware/motioncfg/pkg/enum"
	"github.com/motion-firmware/motioncfg/pkg/log"
	"github.com/motion-firmware/motioncfg/pkg/pin"
	"github.com/motion-firmware/motioncfg/pkg/scalar"
	"github.com/motion-firmware/motioncfg/pkg/setting"
	"github.com/motion-firmware/motioncfg/pkg/uart"
)

// Parser errors.
var (
	ErrSyntax     = errors.New("invalid YAML")
	ErrNotSection = errors.New("expected a section")
	ErrNotScalar  = errors.New("expected a single value")
)

// frame is one mapping being consumed.
type frame struct {
	path     string
	node     *yaml.Node
	consumed []bool
}

func newFrame(path string, node *yaml.Node) *frame {
	f := &frame{path: path, node: node}
	if node != nil {
		f.consumed = make([]bool, len(node.Content)/2)
	}
	return f
}

// find returns the index of the first unconsumed key equal to name.
func (f *frame) find(name string) int {
	if f.node == nil {
		return -1
	}
	for i := range f.consumed {
		if !f.consumed[i] && strings.EqualFold(f.node.Content[2*i].Value, name) {
			return i
		}
	}
	return -1
}

// take consumes the key equal to name and returns its value node.
func (f *frame) take(name string) (*yaml.Node, bool) {
	i := f.find(name)
	if i < 0 {
		return nil, false
	}
	f.consumed[i] = true
	return f.node.Content[2*i+1], true
}

// leftovers returns the keys nobody consumed.
func (f *frame) leftovers() []*yaml.Node {
	var keys []*yaml.Node
	for i, c := range f.consumed {
		if !c {
			keys = append(keys, f.node.Content[2*i])
		}
	}
	return keys
}

func (f *frame) itemPath(name string) string {
	return f.path + "/" + name
}

// Parser is a config.Handler that stores values from a YAML node tree.
// A Parser is used for one traversal and is not safe for concurrent use.
type Parser struct {
	frames  []*frame
	pins    *pin.Bank
	logger  *slog.Logger
	changes log.Logger
	session string
	source  log.Source
	errs    []error
}

// New returns a Parser over a YAML document or mapping node.
func New(node *yaml.Node, opts ...Option) (*Parser, error) {
	if node != nil && node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			node = nil
		} else {
			node = node.Content[0]
		}
	}
	switch {
	case isEmpty(node):
		node = nil
	case node.Kind != yaml.MappingNode:
		return nil, fmt.Errorf("%w: top level: line %d", ErrNotSection, node.Line)
	}

	p := &Parser{
		logger:  discardLogger(),
		changes: log.Discard,
		session: uuid.NewString(),
		source:  log.SourceFile,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.pins == nil {
		p.pins = pin.NewESP32Bank()
	}
	p.frames = []*frame{newFrame("", node)}
	return p, nil
}

// Parse decodes YAML data and stores it into root.
func Parse(data []byte, root config.Configurable, opts ...Option) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return ParseNode(&doc, root, opts...)
}

// ParseNode stores an already decoded YAML node tree into root.
func ParseNode(node *yaml.Node, root config.Configurable, opts ...Option) error {
	p, err := New(node, opts...)
	if err != nil {
		return err
	}
	return p.Run(root)
}

// Run visits root and returns every recorded failure.
func (p *Parser) Run(root config.Configurable) error {
	root.Group(p)
	p.reportLeftovers(p.frames[0])
	return p.Err()
}

// Err returns the recorded failures joined, or nil.
func (p *Parser) Err() error {
	return errors.Join(p.errs...)
}

// Session returns the session ID stamped on change events.
func (p *Parser) Session() string { return p.session }

// Type implements config.SectionVisitor.
func (p *Parser) Type() config.HandlerType { return config.HandlerParser }

func (p *Parser) top() *frame { return p.frames[len(p.frames)-1] }

// MatchesUninitialized implements config.SectionHooks.
func (p *Parser) MatchesUninitialized(name string) bool {
	return p.top().find(name) >= 0
}

// EnterSection implements config.SectionHooks.
func (p *Parser) EnterSection(name string, value config.Configurable) {
	parent := p.top()
	path := parent.itemPath(name)

	node, ok := parent.take(name)
	switch {
	case !ok, isEmpty(node):
		node = nil
	case node.Kind != yaml.MappingNode:
		p.fail(path, node.Value, ErrNotSection)
		return
	}

	f := newFrame(path, node)
	p.frames = append(p.frames, f)
	value.Group(p)
	p.frames = p.frames[:len(p.frames)-1]
	p.reportLeftovers(f)
}

func (p *Parser) reportLeftovers(f *frame) {
	for _, k := range f.leftovers() {
		p.logger.Warn("ignored setting", "path", f.itemPath(k.Value), "line", k.Line)
	}
}

// text consumes the named key and returns its value as text.
func (p *Parser) text(name string) (string, bool) {
	f := p.top()
	node, ok := f.take(name)
	if !ok {
		return "", false
	}
	switch {
	case isEmpty(node):
		return "", true
	case node.Kind == yaml.ScalarNode:
		return node.Value, true
	default:
		p.fail(f.itemPath(name), "", ErrNotScalar)
		return "", false
	}
}

// fail records a refused value.
func (p *Parser) fail(path, value string, err error) {
	p.errs = append(p.errs, &config.ValidationError{Path: path, Value: value, Err: err})
	p.changes.Log(log.Event{
		Time:     time.Now(),
		Session:  p.session,
		Source:   p.source,
		Path:     path,
		New:      value,
		Rejected: err.Error(),
	})
}

// changed records a stored value if it differs from the old one.
func (p *Parser) changed(path, old, value string) {
	if old == value {
		return
	}
	p.changes.Log(log.Event{
		Time:    time.Now(),
		Session: p.session,
		Source:  p.source,
		Path:    path,
		Old:     old,
		New:     value,
	})
}

// ItemBool implements config.Handler.
func (p *Parser) ItemBool(name string, value *setting.Setting[bool]) {
	s, ok := p.text(name)
	if !ok {
		return
	}
	path := p.top().itemPath(name)
	v, err := scalar.ParseBool(s)
	if err != nil {
		p.fail(path, s, err)
		return
	}
	old := scalar.FormatBool(value.Value())
	value.Set(v)
	p.changed(path, old, scalar.FormatBool(v))
}

// ItemInt32 implements config.Handler.
func (p *Parser) ItemInt32(name string, value *setting.Setting[int32], min, max int32) {
	s, ok := p.text(name)
	if !ok {
		return
	}
	path := p.top().itemPath(name)
	v, err := scalar.ParseInt32(s)
	if err == nil {
		err = config.CheckInt32(v, min, max)
	}
	if err != nil {
		p.fail(path, s, err)
		return
	}
	old := scalar.FormatInt32(value.Value())
	value.Set(v)
	p.changed(path, old, scalar.FormatInt32(v))
}

// ItemFloat implements config.Handler.
func (p *Parser) ItemFloat(name string, value *setting.Setting[float32], min, max float32) {
	s, ok := p.text(name)
	if !ok {
		return
	}
	path := p.top().itemPath(name)
	v, err := scalar.ParseFloat(s)
	if err == nil {
		err = config.CheckFloat(v, min, max)
	}
	if err != nil {
		p.fail(path, s, err)
		return
	}
	old := scalar.FormatFloat(value.Value())
	value.Set(v)
	p.changed(path, old, scalar.FormatFloat(v))
}

// ItemSpeedMap implements config.Handler. The table may be written as one
// string or as a list of "speed=percent%" entries.
func (p *Parser) ItemSpeedMap(name string, value *setting.Setting[[]config.SpeedEntry]) {
	f := p.top()
	node, ok := f.take(name)
	if !ok {
		return
	}
	path := f.itemPath(name)

	var s string
	switch {
	case isEmpty(node):
	case node.Kind == yaml.ScalarNode:
		s = node.Value
	case node.Kind == yaml.SequenceNode:
		parts := make([]string, 0, len(node.Content))
		for _, c := range node.Content {
			if c.Kind != yaml.ScalarNode {
				p.fail(path, "", ErrNotScalar)
				return
			}
			parts = append(parts, c.Value)
		}
		s = strings.Join(parts, " ")
	default:
		p.fail(path, "", ErrNotScalar)
		return
	}

	v, err := scalar.ParseSpeedMap(s)
	if err != nil {
		p.fail(path, s, err)
		return
	}
	old := scalar.FormatSpeedMap(value.Value())
	value.Set(v)
	p.changed(path, old, scalar.FormatSpeedMap(v))
}

// ItemUart implements config.Handler. The three fields are written together
// as a mode string such as "8N1".
func (p *Parser) ItemUart(name string, wordLength *setting.Setting[uart.Data], parity *setting.Setting[uart.Parity], stopBits *setting.Setting[uart.Stop]) {
	s, ok := p.text(name)
	if !ok {
		return
	}
	path := p.top().itemPath(name)
	d, par, st, err := uart.ParseMode(s)
	if err != nil {
		p.fail(path, s, err)
		return
	}
	old := uart.FormatMode(wordLength.Value(), parity.Value(), stopBits.Value())
	wordLength.Set(d)
	parity.Set(par)
	stopBits.Set(st)
	p.changed(path, old, uart.FormatMode(d, par, st))
}

// ItemStringRange implements config.Handler.
func (p *Parser) ItemStringRange(name string, value *setting.Setting[config.StringRange], minLength, maxLength int) {
	s, ok := p.text(name)
	if !ok {
		return
	}
	path := p.top().itemPath(name)
	if err := config.CheckLength(s, minLength, maxLength); err != nil {
		p.fail(path, s, err)
		return
	}
	old := value.Value().String()
	value.Set(config.NewStringRange(s))
	p.changed(path, old, s)
}

// ItemPin implements config.Handler.
//
// The old pin is released before the new one is acquired, so a pin may be
// bound again to the same physical pin. If the new pin cannot be acquired
// the old binding is restored when possible.
func (p *Parser) ItemPin(name string, value *setting.Pin) {
	s, ok := p.text(name)
	if !ok {
		return
	}
	path := p.top().itemPath(name)
	desc, err := pin.ParseDescription(s)
	if err != nil {
		p.fail(path, s, err)
		return
	}

	oldDesc := value.Get().Description()
	value.Release()

	np, err := p.pins.Acquire(desc)
	if err != nil {
		if prev, perr := p.pins.Acquire(oldDesc); perr == nil {
			value.Bind(prev)
		}
		p.fail(path, s, err)
		return
	}
	value.Bind(np)
	p.changed(path, oldDesc.String(), desc.String())
}

// ItemIPAddress implements config.Handler.
func (p *Parser) ItemIPAddress(name string, value *setting.Setting[netip.Addr]) {
	s, ok := p.text(name)
	if !ok {
		return
	}
	path := p.top().itemPath(name)
	a, err := scalar.ParseIPAddress(s)
	if err != nil {
		p.fail(path, s, err)
		return
	}
	old := scalar.FormatIPAddress(value.Value())
	value.Set(a)
	p.changed(path, old, scalar.FormatIPAddress(a))
}

// ItemEnum implements config.Handler.
func (p *Parser) ItemEnum(name string, value *setting.Setting[int], table enum.Table) {
	s, ok := p.text(name)
	if !ok {
		return
	}
	path := p.top().itemPath(name)
	v, err := scalar.ParseEnum(s, table)
	if err != nil {
		p.fail(path, s, err)
		return
	}
	old, _ := scalar.FormatEnum(value.Value(), table)
	value.Set(v)
	now, _ := scalar.FormatEnum(v, table)
	p.changed(path, old, now)
}

func isEmpty(n *yaml.Node) bool {
	return n == nil || n.Kind == 0 || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

// Compile-time interface satisfaction check.
var _ config.Handler = (*Parser)(nil)
