package machine

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/motion-firmware/motioncfg/pkg/config"
	"github.com/motion-firmware/motioncfg/pkg/generator"
	"github.com/motion-firmware/motioncfg/pkg/log"
	"github.com/motion-firmware/motioncfg/pkg/parser"
	"github.com/motion-firmware/motioncfg/pkg/pin"
	"github.com/motion-firmware/motioncfg/pkg/runtime"
	"github.com/motion-firmware/motioncfg/pkg/setting"
	"github.com/motion-firmware/motioncfg/pkg/snapshot"
)

// WallPlotterProfile is a complete configuration of the two-cord wall
// plotter on an ESP32 board.
//
//go:embed profiles/wall_plotter.yaml
var WallPlotterProfile []byte

// Machine is the root of the configuration tree.
type Machine struct {
	Name  setting.Setting[string]
	Board setting.Setting[string]
	Meta  setting.Setting[string]

	Stepping   *Stepping
	Axes       *Axes
	Kinematics *Kinematics
	Uart1      *Uart
	Spindle    Spindle
	Wifi       *Wifi
	TouchPlate *TouchPlate
	Control    *Control
	Coolant    *Coolant
	Start      *Start

	logger   *slog.Logger
	settings *runtime.Settings
	session  string
}

// New returns an empty machine with default name and board.
func New() *Machine {
	m := &Machine{}
	m.Name.Set("None")
	m.Board.Set("None")
	return m
}

// Group implements config.Configurable.
func (m *Machine) Group(h config.Handler) {
	config.ItemString(h, "name", &m.Name, 1, 64)
	config.ItemString(h, "board", &m.Board, 1, 64)
	config.ItemString(h, "meta", &m.Meta, 0, 255)
	config.Section(h, "stepping", &m.Stepping)
	config.Section(h, "axes", &m.Axes)
	config.Section(h, "kinematics", &m.Kinematics)
	config.Section(h, "uart1", &m.Uart1)
	Spindles.Apply(h, &m.Spindle)
	config.Section(h, "wifi", &m.Wifi)
	config.Section(h, "touch_plate", &m.TouchPlate)
	config.Section(h, "control", &m.Control)
	config.Section(h, "coolant", &m.Coolant)
	config.Section(h, "start", &m.Start)
}

// AfterParse materializes the sections every machine needs.
func (m *Machine) AfterParse() {
	if m.Stepping == nil {
		m.Stepping = &Stepping{}
		m.Stepping.SetDefaults()
	}
	if m.Axes == nil {
		m.Axes = defaultAxes()
	}
	if m.Kinematics == nil {
		m.Kinematics = &Kinematics{}
	}
	if m.Spindle == nil {
		m.Spindle = &NoSpindle{}
	}
	if m.Start == nil {
		m.Start = &Start{}
		m.Start.SetDefaults()
	}
}

// defaultAxes returns the X, Y and Z axes of the wall plotter. Z lifts the
// pen and is measured in percent.
func defaultAxes() *Axes {
	a := &Axes{X: &Axis{}, Y: &Axis{}, Z: &Axis{}}
	a.X.SetDefaults()
	a.Y.SetDefaults()
	a.Z.SetDefaults()
	a.Z.StepsPerMm.Set(1)
	a.Z.MaxRate.Set(100000)
	a.Z.Acceleration.Set(100)
	a.Z.MaxTravel.Set(100)
	return a
}

// Validate implements config.Validator with the checks spanning sections.
func (m *Machine) Validate() error {
	if m.Kinematics == nil || m.Axes == nil {
		return nil
	}
	if w, ok := m.Kinematics.System.(*WallPlotter); ok {
		for _, i := range w.axes() {
			if m.Axes.Axis(i) == nil {
				return fmt.Errorf("%w: %s", ErrMissingAxis, AxisNames[i])
			}
		}
	}
	return nil
}

type pinIniter interface {
	InitPins() error
}

// initPins configures every pin for the direction its node uses it in.
func (m *Machine) initPins() error {
	var errs []error
	walk(m, &walker{onNode: func(path string, node config.Configurable) {
		if pi, ok := node.(pinIniter); ok {
			if err := pi.InitPins(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", path, err))
			}
		}
	}})
	return errors.Join(errs...)
}

// Option configures Load.
type Option func(*options)

type options struct {
	pins    *pin.Bank
	logger  *slog.Logger
	changes log.Logger
	session string
}

// WithPins sets the bank pins are acquired from.
func WithPins(b *pin.Bank) Option {
	return func(o *options) { o.pins = b }
}

// WithLogger sets the operational logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithChangeLog sets where change events go.
func WithChangeLog(l log.Logger) Option {
	return func(o *options) { o.changes = l }
}

// WithSession sets the session ID stamped on change events.
func WithSession(id string) Option {
	return func(o *options) { o.session = id }
}

// Load parses YAML data into a new machine, fills in required sections,
// validates the result and configures its pins. On error every acquired
// pin is released.
func Load(data []byte, opts ...Option) (*Machine, error) {
	o := options{
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		changes: log.Discard,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.pins == nil {
		o.pins = pin.NewESP32Bank()
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if o.session == "" {
		o.session = uuid.NewString()
	}

	m := New()
	m.logger = o.logger
	m.session = o.session
	m.settings = runtime.New(
		runtime.WithPins(o.pins),
		runtime.WithLogger(o.logger),
		runtime.WithChangeLog(o.changes),
		runtime.WithSession(o.session),
	)

	err := parser.Parse(data, m,
		parser.WithPins(o.pins),
		parser.WithLogger(o.logger),
		parser.WithChangeLog(o.changes),
		parser.WithSession(o.session),
	)
	if err != nil {
		m.Close()
		return nil, err
	}

	config.AfterParse(m)

	if err := config.Validate(m); err != nil {
		m.Close()
		return nil, err
	}
	if err := m.initPins(); err != nil {
		m.Close()
		return nil, err
	}

	o.logger.Info("machine loaded", "name", m.Name.Value(), "board", m.Board.Value(), "session", o.session)
	return m, nil
}

// Session returns the session ID stamped on change events.
func (m *Machine) Session() string { return m.session }

// Format is a dump encoding.
type Format string

// Dump formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// ParseFormat returns the Format named by s.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatYAML, FormatJSON, FormatCBOR:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Dump regenerates the tree in format f.
func (m *Machine) Dump(f Format) ([]byte, error) {
	switch f {
	case FormatYAML:
		return generator.YAML(m)
	case FormatJSON:
		return generator.JSON(m)
	case FormatCBOR:
		return snapshot.Encode(m)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
	}
}

// Get returns the text of the item at path, e.g. "/axes/x/steps_per_mm".
func (m *Machine) Get(path string) (string, error) {
	return m.runtime().Get(m, path)
}

// Set stores value into the item at path and returns the stored text.
// The value is checked against the item's bounds; node-level invariants are
// checked again and a violation is reported without undoing the change.
// A rebound pin gets the attributes its node configures it with.
func (m *Machine) Set(path, value string) (string, error) {
	v, applied, err := m.set(path, value)
	if !applied {
		return "", err
	}
	return v, err
}

func (m *Machine) set(path, value string) (string, bool, error) {
	v, err := m.runtime().Set(m, path, value)
	// A refused rebind restores the old pin bare, so it is configured too.
	pinErr := m.initPinsAt(path)
	if err != nil {
		return "", false, errors.Join(err, pinErr)
	}
	if pinErr != nil {
		return v, true, pinErr
	}
	if err := config.Validate(m); err != nil {
		return v, true, err
	}
	return v, true, nil
}

// Exec runs a "$path" or "$path=value" command line. For a set that was
// applied but broke an invariant, both the report and the error are
// returned.
func (m *Machine) Exec(line string) (string, error) {
	cmd, err := runtime.ParseCommand(line)
	if err != nil {
		return "", err
	}
	if !cmd.IsSet {
		v, err := m.Get(cmd.Path)
		if err != nil {
			return "", err
		}
		return runtime.Report(cmd.Path, v), nil
	}
	v, applied, err := m.set(cmd.Path, cmd.Value)
	if !applied {
		return "", err
	}
	return runtime.Report(cmd.Path, v), err
}

// initPinsAt re-runs InitPins on the node owning the pin at p. It does
// nothing when p is not a pin.
func (m *Machine) initPinsAt(p string) error {
	p = "/" + strings.Trim(p, "/")
	isPin := false
	walk(m, &walker{onPin: func(pinPath string, _ *setting.Pin) {
		if strings.EqualFold(pinPath, p) {
			isPin = true
		}
	}})
	if !isPin {
		return nil
	}

	owner := path.Dir(p)
	var err error
	walk(m, &walker{onNode: func(nodePath string, node config.Configurable) {
		if !strings.EqualFold(nodePath, owner) {
			return
		}
		if pi, ok := node.(pinIniter); ok {
			if e := pi.InitPins(); e != nil {
				err = fmt.Errorf("%s: %w", nodePath, e)
			}
		}
	}})
	return err
}

// List returns "$path=value" lines for every item.
func (m *Machine) List() []string {
	return runtime.List(m)
}

func (m *Machine) runtime() *runtime.Settings {
	if m.settings == nil {
		m.settings = runtime.New()
	}
	return m.settings
}

// ReportPins logs every bound pin with its path.
func (m *Machine) ReportPins(logger *slog.Logger) {
	walk(m, &walker{onPin: func(path string, p *setting.Pin) {
		p.Report(logger, path)
	}})
}

// Close releases every pin of the machine.
func (m *Machine) Close() {
	walk(m, &walker{onPin: func(_ string, p *setting.Pin) {
		p.Release()
	}})
}
