package machine

import (
	"github.com/motion-firmware/motioncfg/pkg/config"
	"github.com/motion-firmware/motioncfg/pkg/pin"
	"github.com/motion-firmware/motioncfg/pkg/scalar"
	"github.com/motion-firmware/motioncfg/pkg/setting"
)

// Spindle is the tool driver of a machine. Closing a spindle releases its
// pins.
type Spindle interface {
	config.Variant
	Close() error
}

// Spindles is the registry of spindle variants.
var Spindles config.Factory[Spindle]

func init() {
	Spindles.Register("NoSpindle", func() Spindle { return &NoSpindle{} })
	Spindles.Register("PWM", func() Spindle { return NewPWM() })
	Spindles.Register("Laser", func() Spindle { return NewLaser() })
}

// NoSpindle is a machine without a tool driver.
type NoSpindle struct{}

// Name implements config.Variant.
func (*NoSpindle) Name() string { return "NoSpindle" }

// Group implements config.Configurable.
func (*NoSpindle) Group(config.Handler) {}

// Close implements Spindle.
func (*NoSpindle) Close() error { return nil }

// pwmOutput holds what PWM spindles and lasers share.
type pwmOutput struct {
	PwmHz         setting.Setting[uint32]
	OutputPin     setting.Pin
	EnablePin     setting.Pin
	DisableWithS0 setting.Setting[bool]
	S0WithDisable setting.Setting[bool]
	ToolNum       setting.Setting[uint32]
	SpeedMap      setting.Setting[[]config.SpeedEntry]
}

func (o *pwmOutput) group(h config.Handler) {
	config.ItemUint32(h, "pwm_hz", &o.PwmHz, 1, 20000000)
	h.ItemPin("output_pin", &o.OutputPin)
	h.ItemPin("enable_pin", &o.EnablePin)
	h.ItemBool("disable_with_s0", &o.DisableWithS0)
	h.ItemBool("s0_with_disable", &o.S0WithDisable)
	config.ItemUint32(h, "tool_num", &o.ToolNum, 0, 99)
	h.ItemSpeedMap("speed_map", &o.SpeedMap)
}

func (o *pwmOutput) validate() error {
	if o.OutputPin.Undefined() {
		return ErrNoOutputPin
	}
	if err := needCaps(&o.OutputPin, pin.CapPWM); err != nil {
		return err
	}
	if err := needCaps(&o.EnablePin, pin.CapOutput); err != nil {
		return err
	}
	if len(o.SpeedMap.Value()) == 0 {
		return ErrEmptySpeedMap
	}
	return nil
}

// pwmClockHz is the clock the PWM timer divides down to PwmHz.
const pwmClockHz = 80_000_000

// MaxDuty returns the full-scale duty value at the configured frequency: the
// timer resolution is the widest that still fits PwmHz, at most 16 bits.
func (o *pwmOutput) MaxDuty() uint32 {
	hz := max(o.PwmHz.Value(), 1)
	bits := 0
	for bits < 16 && uint32(1)<<(bits+1) <= pwmClockHz/hz {
		bits++
	}
	return uint32(1)<<bits - 1
}

// Duty returns the output duty for a spindle speed.
func (o *pwmOutput) Duty(speed uint32) uint32 {
	o.setupSpeeds()
	return config.MapSpeed(o.SpeedMap.Value(), speed)
}

func (o *pwmOutput) setupSpeeds() {
	config.SetupSpeeds(*o.SpeedMap.Ptr(), o.MaxDuty())
}

func (o *pwmOutput) close() {
	o.OutputPin.Release()
	o.EnablePin.Release()
}

func mustSpeedMap(s string) []config.SpeedEntry {
	m, err := scalar.ParseSpeedMap(s)
	if err != nil {
		panic(err)
	}
	return m
}

// PWM is a spindle whose speed is set by PWM duty.
type PWM struct {
	pwmOutput
	DirectionPin setting.Pin
	SpinupMs     setting.Setting[uint32]
	SpindownMs   setting.Setting[uint32]
}

// NewPWM returns a PWM spindle with defaults.
func NewPWM() *PWM {
	s := &PWM{}
	s.PwmHz.Set(5000)
	s.S0WithDisable.Set(true)
	s.SpeedMap.Set(mustSpeedMap("0=0% 10000=100%"))
	return s
}

// Name implements config.Variant.
func (*PWM) Name() string { return "PWM" }

// Group implements config.Configurable.
func (s *PWM) Group(h config.Handler) {
	s.group(h)
	h.ItemPin("direction_pin", &s.DirectionPin)
	config.ItemUint32(h, "spinup_ms", &s.SpinupMs, 0, 60000)
	config.ItemUint32(h, "spindown_ms", &s.SpindownMs, 0, 60000)
}

// Validate implements config.Validator.
func (s *PWM) Validate() error {
	if err := s.validate(); err != nil {
		return err
	}
	return needCaps(&s.DirectionPin, pin.CapOutput)
}

// InitPins configures the spindle pins as outputs and prepares the speed map
// for the output resolution.
func (s *PWM) InitPins() error {
	s.setupSpeeds()
	return initPins(pin.AttrOutput, &s.OutputPin, &s.EnablePin, &s.DirectionPin).err
}

// Close implements Spindle.
func (s *PWM) Close() error {
	s.close()
	s.DirectionPin.Release()
	return nil
}

// Laser is a PWM-driven laser. It has no spin-up delay and no direction.
type Laser struct {
	pwmOutput
}

// NewLaser returns a laser with defaults.
func NewLaser() *Laser {
	s := &Laser{}
	s.PwmHz.Set(5000)
	s.DisableWithS0.Set(true)
	s.SpeedMap.Set(mustSpeedMap("0=0% 255=100%"))
	return s
}

// Name implements config.Variant.
func (*Laser) Name() string { return "Laser" }

// Group implements config.Configurable.
func (s *Laser) Group(h config.Handler) {
	s.group(h)
}

// Validate implements config.Validator.
func (s *Laser) Validate() error {
	return s.validate()
}

// InitPins configures the laser pins as outputs and prepares the speed map
// for the output resolution.
func (s *Laser) InitPins() error {
	s.setupSpeeds()
	return initPins(pin.AttrOutput, &s.OutputPin, &s.EnablePin).err
}

// Close implements Spindle.
func (s *Laser) Close() error {
	s.close()
	return nil
}

// Compile-time interface satisfaction checks.
var (
	_ Spindle          = (*NoSpindle)(nil)
	_ Spindle          = (*PWM)(nil)
	_ Spindle          = (*Laser)(nil)
	_ config.Validator = (*PWM)(nil)
)
