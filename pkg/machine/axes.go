package machine

import (
	"fmt"

	"github.com/motion-firmware/motioncfg/pkg/config"
	"github.com/motion-firmware/motioncfg/pkg/pin"
	"github.com/motion-firmware/motioncfg/pkg/setting"
)

// AxisNames are the section names of the axes, by axis index.
var AxisNames = [...]string{"x", "y", "z", "a", "b", "c"}

// Axes holds up to six axes and the pin shared by their drivers.
type Axes struct {
	SharedStepperDisable setting.Pin

	X, Y, Z, A, B, C *Axis
}

// slots returns the axis slots in index order.
func (a *Axes) slots() [len(AxisNames)]**Axis {
	return [...]**Axis{&a.X, &a.Y, &a.Z, &a.A, &a.B, &a.C}
}

// Axis returns the axis at index i, or nil.
func (a *Axes) Axis(i int) *Axis {
	if i < 0 || i >= len(AxisNames) {
		return nil
	}
	return *a.slots()[i]
}

// Group implements config.Configurable.
func (a *Axes) Group(h config.Handler) {
	h.ItemPin("shared_stepper_disable_pin", &a.SharedStepperDisable)
	for i, slot := range a.slots() {
		config.Section(h, AxisNames[i], slot)
	}
}

// InitPins configures the shared disable pin as an output.
func (a *Axes) InitPins() error {
	return a.SharedStepperDisable.SetAttr(pin.AttrOutput)
}

// Axis is one machine axis.
type Axis struct {
	StepsPerMm   setting.Setting[float32]
	MaxRate      setting.Setting[float32]
	Acceleration setting.Setting[float32]
	MaxTravel    setting.Setting[float32]
	SoftLimits   setting.Setting[bool]

	Homing *Homing
	Motor0 *Motor
}

// SetDefaults implements config.Defaulter.
func (a *Axis) SetDefaults() {
	a.StepsPerMm.Set(1024 / (20 * 3.14))
	a.MaxRate.Set(400)
	a.Acceleration.Set(10)
	a.MaxTravel.Set(900)
}

// Group implements config.Configurable.
func (a *Axis) Group(h config.Handler) {
	h.ItemFloat("steps_per_mm", &a.StepsPerMm, 0.001, 100000)
	h.ItemFloat("max_rate_mm_per_min", &a.MaxRate, 0.001, 100000)
	h.ItemFloat("acceleration_mm_per_sec2", &a.Acceleration, 0.001, 100000)
	h.ItemFloat("max_travel_mm", &a.MaxTravel, 0.1, 10000000)
	h.ItemBool("soft_limits", &a.SoftLimits)
	config.Section(h, "homing", &a.Homing)
	config.Section(h, "motor0", &a.Motor0)
}

// Validate implements config.Validator.
func (a *Axis) Validate() error {
	if a.SoftLimits.Value() && a.Homing == nil {
		return ErrSoftLimitsNeedHoming
	}
	return nil
}

// Homing configures the homing cycle of an axis.
type Homing struct {
	Cycle             setting.Setting[int32]
	PositiveDirection setting.Setting[bool]
	Mpos              setting.Setting[float32]
	FeedMmPerMin      setting.Setting[float32]
	SeekMmPerMin      setting.Setting[float32]
	SettleMs          setting.Setting[uint32]
	SeekScaler        setting.Setting[float32]
	FeedScaler        setting.Setting[float32]
}

// SetDefaults implements config.Defaulter.
func (h *Homing) SetDefaults() {
	h.Cycle.Set(-1)
	h.PositiveDirection.Set(true)
	h.FeedMmPerMin.Set(50)
	h.SeekMmPerMin.Set(200)
	h.SettleMs.Set(250)
	h.SeekScaler.Set(1.1)
	h.FeedScaler.Set(1.1)
}

// Group implements config.Configurable.
func (h *Homing) Group(hd config.Handler) {
	hd.ItemInt32("cycle", &h.Cycle, -1, 6)
	hd.ItemBool("positive_direction", &h.PositiveDirection)
	hd.ItemFloat("mpos_mm", &h.Mpos, -100000, 100000)
	hd.ItemFloat("feed_mm_per_min", &h.FeedMmPerMin, 1, 100000)
	hd.ItemFloat("seek_mm_per_min", &h.SeekMmPerMin, 1, 100000)
	config.ItemUint32(hd, "settle_ms", &h.SettleMs, 0, 1000)
	hd.ItemFloat("seek_scaler", &h.SeekScaler, 1, 100)
	hd.ItemFloat("feed_scaler", &h.FeedScaler, 1, 100)
}

// Motor is the driver of an axis.
type Motor struct {
	StepPin      setting.Pin
	DirectionPin setting.Pin
	DisablePin   setting.Pin
	LimitNegPin  setting.Pin
	LimitPosPin  setting.Pin
	HardLimits   setting.Setting[bool]
	PulloffMm    setting.Setting[float32]
}

// SetDefaults implements config.Defaulter.
func (m *Motor) SetDefaults() {
	m.PulloffMm.Set(1)
}

// Group implements config.Configurable.
func (m *Motor) Group(h config.Handler) {
	h.ItemPin("step_pin", &m.StepPin)
	h.ItemPin("direction_pin", &m.DirectionPin)
	h.ItemPin("disable_pin", &m.DisablePin)
	h.ItemPin("limit_neg_pin", &m.LimitNegPin)
	h.ItemPin("limit_pos_pin", &m.LimitPosPin)
	h.ItemBool("hard_limits", &m.HardLimits)
	h.ItemFloat("pulloff_mm", &m.PulloffMm, 0.1, 100000)
}

// Validate implements config.Validator.
func (m *Motor) Validate() error {
	if m.DirectionPin.Defined() && m.StepPin.Undefined() {
		return ErrNoStepPin
	}
	if m.HardLimits.Value() && m.LimitNegPin.Undefined() && m.LimitPosPin.Undefined() {
		return ErrNoLimitPin
	}
	for _, p := range []*setting.Pin{&m.StepPin, &m.DirectionPin, &m.DisablePin} {
		if err := needCaps(p, pin.CapOutput); err != nil {
			return err
		}
	}
	for _, p := range []*setting.Pin{&m.LimitNegPin, &m.LimitPosPin} {
		if err := needCaps(p, pin.CapInput); err != nil {
			return err
		}
	}
	return nil
}

// InitPins configures driver pins as outputs and limit switches as inputs.
func (m *Motor) InitPins() error {
	return initPins(pin.AttrOutput, &m.StepPin, &m.DirectionPin, &m.DisablePin).
		then(pin.AttrInput, &m.LimitNegPin, &m.LimitPosPin).err
}

// needCaps returns ErrPinCapability if a defined pin lacks caps.
func needCaps(p *setting.Pin, caps pin.Capabilities) error {
	if p.Defined() && !p.Capabilities().Has(caps) {
		return fmt.Errorf("%w: %s", ErrPinCapability, p.Name())
	}
	return nil
}

// pinInit applies attributes to groups of pins, stopping at the first error.
type pinInit struct {
	err error
}

func initPins(a pin.Attr, pins ...*setting.Pin) pinInit {
	return pinInit{}.then(a, pins...)
}

func (p pinInit) then(a pin.Attr, pins ...*setting.Pin) pinInit {
	for _, s := range pins {
		if p.err != nil {
			return p
		}
		if s.Defined() {
			if err := s.SetAttr(a); err != nil {
				p.err = fmt.Errorf("%s: %w", s.Name(), err)
			}
		}
	}
	return p
}
