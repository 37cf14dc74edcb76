package runtime

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/netip"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/motion-firmware/motioncfg/pkg/config"
	"github.com/motion-firmware/motioncfg/pkg/enum"
	"github.com/motion-firmware/motioncfg/pkg/generator"
	"github.com/motion-firmware/motioncfg/pkg/log"
	"github.com/motion-firmware/motioncfg/pkg/pin"
	"github.com/motion-firmware/motioncfg/pkg/scalar"
	"github.com/motion-firmware/motioncfg/pkg/setting"
	"github.com/motion-firmware/motioncfg/pkg/uart"
)

// ErrUnknownSetting is returned for a path that names no present item.
var ErrUnknownSetting = errors.New("unknown setting")

// Option configures a Settings.
type Option func(*Settings)

// WithPins sets the bank new pins are acquired from.
func WithPins(b *pin.Bank) Option {
	return func(s *Settings) { s.pins = b }
}

// WithLogger sets the operational logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithChangeLog sets where change events go.
func WithChangeLog(l log.Logger) Option {
	return func(s *Settings) {
		if l != nil {
			s.changes = l
		}
	}
}

// WithSession sets the session ID stamped on change events.
func WithSession(id string) Option {
	return func(s *Settings) { s.session = id }
}

// Settings gets and sets items of a tree by path. One Settings is meant to
// serve one interactive session; it is not safe for concurrent use.
type Settings struct {
	pins    *pin.Bank
	logger  *slog.Logger
	changes log.Logger
	session string
}

// New returns a Settings.
func New(opts ...Option) *Settings {
	s := &Settings{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		changes: log.Discard,
		session: uuid.NewString(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.pins == nil {
		s.pins = pin.NewESP32Bank()
	}
	return s
}

// Session returns the session ID stamped on change events.
func (s *Settings) Session() string { return s.session }

// Get returns the text of the item at path.
func (s *Settings) Get(root config.Configurable, path string) (string, error) {
	h := s.newHandler(path, nil)
	root.Group(h)
	if !h.found {
		return "", fmt.Errorf("%w: %s", ErrUnknownSetting, path)
	}
	return h.result, nil
}

// Set stores value into the item at path and returns the stored text.
// A value that fails its bound yields a *config.ValidationError and leaves
// the item unchanged.
func (s *Settings) Set(root config.Configurable, path, value string) (string, error) {
	h := s.newHandler(path, &value)
	root.Group(h)
	if !h.found {
		return "", fmt.Errorf("%w: %s", ErrUnknownSetting, path)
	}
	if h.err != nil {
		return "", h.err
	}
	s.logger.Debug("setting changed", "path", h.matched, "value", h.result)
	return h.result, nil
}

// Exec runs a "$path" or "$path=value" command line and returns the report
// line of the item.
func (s *Settings) Exec(root config.Configurable, line string) (string, error) {
	cmd, err := ParseCommand(line)
	if err != nil {
		return "", err
	}
	var v string
	if cmd.IsSet {
		v, err = s.Set(root, cmd.Path, cmd.Value)
	} else {
		v, err = s.Get(root, cmd.Path)
	}
	if err != nil {
		return "", err
	}
	return Report(cmd.Path, v), nil
}

// List returns the report line of every present item in declaration order.
func List(root config.Configurable) []string {
	l := &lister{}
	generator.Walk(root, l)
	return l.lines
}

type lister struct {
	path  []string
	lines []string
}

func (l *lister) Enter(name string) { l.path = append(l.path, name) }
func (l *lister) Leave()            { l.path = l.path[:len(l.path)-1] }
func (l *lister) Value(name, text string, _ generator.Kind) {
	l.lines = append(l.lines, Report(config.JoinPath(l.path, name), text))
}

func (s *Settings) newHandler(path string, value *string) *handler {
	var target []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			target = append(target, p)
		}
	}
	return &handler{s: s, target: target, value: value}
}

// handler is a config.Handler of type HandlerRuntime looking for one item.
type handler struct {
	s      *Settings
	target []string
	path   []string
	value  *string

	found   bool
	matched string
	result  string
	err     error
}

func (h *handler) Type() config.HandlerType { return config.HandlerRuntime }

func (h *handler) MatchesUninitialized(string) bool { return false }

// EnterSection descends only into sections on the way to the target.
func (h *handler) EnterSection(name string, value config.Configurable) {
	depth := len(h.path)
	if h.found || depth >= len(h.target)-1 || !strings.EqualFold(h.target[depth], name) {
		return
	}
	h.path = append(h.path, name)
	value.Group(h)
	h.path = h.path[:depth]
}

// match returns true if name is the target item.
func (h *handler) match(name string) bool {
	if h.found || len(h.path) != len(h.target)-1 || !strings.EqualFold(h.target[len(h.path)], name) {
		return false
	}
	h.found = true
	h.matched = config.JoinPath(h.path, name)
	return true
}

// update reports current, or parses and stores the new value through set.
func (h *handler) update(current string, set func(string) (string, error)) {
	if h.value == nil {
		h.result = current
		return
	}
	now, err := set(*h.value)
	if err != nil {
		h.err = &config.ValidationError{Path: h.matched, Value: *h.value, Err: err}
		h.s.changes.Log(log.Event{
			Time:     time.Now(),
			Session:  h.s.session,
			Source:   log.SourceRuntime,
			Path:     h.matched,
			New:      *h.value,
			Rejected: err.Error(),
		})
		return
	}
	h.result = now
	if now != current {
		h.s.changes.Log(log.Event{
			Time:    time.Now(),
			Session: h.s.session,
			Source:  log.SourceRuntime,
			Path:    h.matched,
			Old:     current,
			New:     now,
		})
	}
}

func (h *handler) ItemBool(name string, value *setting.Setting[bool]) {
	if !h.match(name) {
		return
	}
	h.update(scalar.FormatBool(value.Value()), func(s string) (string, error) {
		v, err := scalar.ParseBool(s)
		if err != nil {
			return "", err
		}
		value.Set(v)
		return scalar.FormatBool(v), nil
	})
}

func (h *handler) ItemInt32(name string, value *setting.Setting[int32], min, max int32) {
	if !h.match(name) {
		return
	}
	h.update(scalar.FormatInt32(value.Value()), func(s string) (string, error) {
		v, err := scalar.ParseInt32(s)
		if err == nil {
			err = config.CheckInt32(v, min, max)
		}
		if err != nil {
			return "", err
		}
		value.Set(v)
		return scalar.FormatInt32(v), nil
	})
}

func (h *handler) ItemFloat(name string, value *setting.Setting[float32], min, max float32) {
	if !h.match(name) {
		return
	}
	h.update(scalar.FormatFloat(value.Value()), func(s string) (string, error) {
		v, err := scalar.ParseFloat(s)
		if err == nil {
			err = config.CheckFloat(v, min, max)
		}
		if err != nil {
			return "", err
		}
		value.Set(v)
		return scalar.FormatFloat(v), nil
	})
}

func (h *handler) ItemSpeedMap(name string, value *setting.Setting[[]config.SpeedEntry]) {
	if !h.match(name) {
		return
	}
	h.update(scalar.FormatSpeedMap(value.Value()), func(s string) (string, error) {
		v, err := scalar.ParseSpeedMap(s)
		if err != nil {
			return "", err
		}
		value.Set(v)
		return scalar.FormatSpeedMap(v), nil
	})
}

func (h *handler) ItemUart(name string, wordLength *setting.Setting[uart.Data], parity *setting.Setting[uart.Parity], stopBits *setting.Setting[uart.Stop]) {
	if !h.match(name) {
		return
	}
	h.update(uart.FormatMode(wordLength.Value(), parity.Value(), stopBits.Value()), func(s string) (string, error) {
		d, p, st, err := uart.ParseMode(s)
		if err != nil {
			return "", err
		}
		wordLength.Set(d)
		parity.Set(p)
		stopBits.Set(st)
		return uart.FormatMode(d, p, st), nil
	})
}

func (h *handler) ItemStringRange(name string, value *setting.Setting[config.StringRange], minLength, maxLength int) {
	if !h.match(name) {
		return
	}
	h.update(value.Value().String(), func(s string) (string, error) {
		if err := config.CheckLength(s, minLength, maxLength); err != nil {
			return "", err
		}
		value.Set(config.NewStringRange(s))
		return s, nil
	})
}

// ItemPin releases the old pin before acquiring the new one and restores
// the old binding if the new pin cannot be acquired.
func (h *handler) ItemPin(name string, value *setting.Pin) {
	if !h.match(name) {
		return
	}
	h.update(value.Name(), func(s string) (string, error) {
		desc, err := pin.ParseDescription(s)
		if err != nil {
			return "", err
		}
		old := value.Get().Description()
		value.Release()
		np, err := h.s.pins.Acquire(desc)
		if err != nil {
			if prev, perr := h.s.pins.Acquire(old); perr == nil {
				value.Bind(prev)
			}
			return "", err
		}
		value.Bind(np)
		return desc.String(), nil
	})
}

func (h *handler) ItemIPAddress(name string, value *setting.Setting[netip.Addr]) {
	if !h.match(name) {
		return
	}
	h.update(scalar.FormatIPAddress(value.Value()), func(s string) (string, error) {
		a, err := scalar.ParseIPAddress(s)
		if err != nil {
			return "", err
		}
		value.Set(a)
		return scalar.FormatIPAddress(a), nil
	})
}

func (h *handler) ItemEnum(name string, value *setting.Setting[int], table enum.Table) {
	if !h.match(name) {
		return
	}
	current, _ := scalar.FormatEnum(value.Value(), table)
	h.update(current, func(s string) (string, error) {
		v, err := scalar.ParseEnum(s, table)
		if err != nil {
			return "", err
		}
		value.Set(v)
		now, _ := scalar.FormatEnum(v, table)
		return now, nil
	})
}

// Compile-time interface satisfaction check.
var _ config.Handler = (*handler)(nil)
