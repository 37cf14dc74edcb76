package machine

import (
	"fmt"
	"net/netip"

	"github.com/motion-firmware/motioncfg/pkg/config"
	"github.com/motion-firmware/motioncfg/pkg/enum"
	"github.com/motion-firmware/motioncfg/pkg/pin"
	"github.com/motion-firmware/motioncfg/pkg/setting"
	"github.com/motion-firmware/motioncfg/pkg/uart"
)

// Uart is a serial port routed to GPIO pins.
type Uart struct {
	TxdPin   setting.Pin
	RxdPin   setting.Pin
	RtsPin   setting.Pin
	Baud     setting.Setting[uint32]
	DataBits setting.Setting[uart.Data]
	Parity   setting.Setting[uart.Parity]
	StopBits setting.Setting[uart.Stop]
}

// SetDefaults implements config.Defaulter.
func (u *Uart) SetDefaults() {
	u.Baud.Set(115200)
	u.DataBits.Set(uart.Data8)
	u.Parity.Set(uart.ParityNone)
	u.StopBits.Set(uart.Stop1)
}

// Group implements config.Configurable.
func (u *Uart) Group(h config.Handler) {
	h.ItemPin("txd_pin", &u.TxdPin)
	h.ItemPin("rxd_pin", &u.RxdPin)
	h.ItemPin("rts_pin", &u.RtsPin)
	config.ItemUint32(h, "baud", &u.Baud, 2400, 10000000)
	h.ItemUart("mode", &u.DataBits, &u.Parity, &u.StopBits)
}

// Validate implements config.Validator.
func (u *Uart) Validate() error {
	if u.TxdPin.Undefined() || u.RxdPin.Undefined() {
		return ErrUartPins
	}
	for _, p := range []*setting.Pin{&u.TxdPin, &u.RxdPin, &u.RtsPin} {
		if err := needCaps(p, pin.CapUART); err != nil {
			return err
		}
	}
	return uart.Validate(u.DataBits.Value(), u.Parity.Value(), u.StopBits.Value())
}

// InitPins configures the transmit and RTS pins as outputs and the receive
// pin as an input.
func (u *Uart) InitPins() error {
	return initPins(pin.AttrOutput, &u.TxdPin, &u.RtsPin).
		then(pin.AttrInput, &u.RxdPin).err
}

// WiFi modes.
const (
	WifiOff = iota
	WifiSTA
	WifiAP
	WifiSTAThenAP
)

// WifiModes maps WiFi mode names to values.
var WifiModes = enum.Table{
	{Value: WifiOff, Name: "Off"},
	{Value: WifiSTA, Name: "STA"},
	{Value: WifiAP, Name: "AP"},
	{Value: WifiSTAThenAP, Name: "STA>AP"},
}

// Wifi configures the network interface.
type Wifi struct {
	Mode      setting.Setting[int]
	Ssid      setting.Setting[string]
	Hostname  setting.Setting[string]
	IPAddress setting.Setting[netip.Addr]
	Gateway   setting.Setting[netip.Addr]
	Netmask   setting.Setting[netip.Addr]
}

// SetDefaults implements config.Defaulter.
func (w *Wifi) SetDefaults() {
	w.Mode.Set(WifiSTA)
	w.Hostname.Set("motion")
	w.Netmask.Set(netip.AddrFrom4([4]byte{255, 255, 255, 0}))
}

// Group implements config.Configurable.
func (w *Wifi) Group(h config.Handler) {
	h.ItemEnum("mode", &w.Mode, WifiModes)
	config.ItemString(h, "ssid", &w.Ssid, 0, 32)
	config.ItemString(h, "hostname", &w.Hostname, 1, 32)
	h.ItemIPAddress("ip_address", &w.IPAddress)
	h.ItemIPAddress("gateway", &w.Gateway)
	h.ItemIPAddress("netmask", &w.Netmask)
}

// Validate implements config.Validator.
func (w *Wifi) Validate() error {
	if w.Mode.Value() != WifiOff && w.Ssid.Value() == "" {
		return fmt.Errorf("%w in mode %s", ErrNoSSID, modeName(w.Mode.Value()))
	}
	return nil
}

func modeName(v int) string {
	name, _ := WifiModes.Name(v)
	return name
}

// TouchPlate is the tool length sensing input.
type TouchPlate struct {
	Pin            setting.Pin
	CheckModeStart setting.Setting[bool]
	HardStop       setting.Setting[bool]
}

// SetDefaults implements config.Defaulter.
func (p *TouchPlate) SetDefaults() {
	p.CheckModeStart.Set(true)
}

// Group implements config.Configurable.
func (p *TouchPlate) Group(h config.Handler) {
	h.ItemPin("pin", &p.Pin)
	h.ItemBool("check_mode_start", &p.CheckModeStart)
	h.ItemBool("hard_stop", &p.HardStop)
}

// Validate implements config.Validator.
func (p *TouchPlate) Validate() error {
	return needCaps(&p.Pin, pin.CapInput)
}

// InitPins configures the touch plate as an input.
func (p *TouchPlate) InitPins() error {
	return initPins(pin.AttrInput, &p.Pin).err
}

// Control holds the operator input pins.
type Control struct {
	SafetyDoorPin setting.Pin
	ResetPin      setting.Pin
	FeedHoldPin   setting.Pin
	CycleStartPin setting.Pin
}

func (c *Control) pins() []*setting.Pin {
	return []*setting.Pin{&c.SafetyDoorPin, &c.ResetPin, &c.FeedHoldPin, &c.CycleStartPin}
}

// Group implements config.Configurable.
func (c *Control) Group(h config.Handler) {
	h.ItemPin("safety_door_pin", &c.SafetyDoorPin)
	h.ItemPin("reset_pin", &c.ResetPin)
	h.ItemPin("feed_hold_pin", &c.FeedHoldPin)
	h.ItemPin("cycle_start_pin", &c.CycleStartPin)
}

// Validate implements config.Validator.
func (c *Control) Validate() error {
	for _, p := range c.pins() {
		if err := needCaps(p, pin.CapInput); err != nil {
			return err
		}
	}
	return nil
}

// InitPins configures the control pins as inputs.
func (c *Control) InitPins() error {
	return initPins(pin.AttrInput, c.pins()...).err
}

// Coolant drives the flood and mist valves.
type Coolant struct {
	FloodPin setting.Pin
	MistPin  setting.Pin
	DelayMs  setting.Setting[uint32]
}

// Group implements config.Configurable.
func (c *Coolant) Group(h config.Handler) {
	h.ItemPin("flood_pin", &c.FloodPin)
	h.ItemPin("mist_pin", &c.MistPin)
	config.ItemUint32(h, "delay_ms", &c.DelayMs, 0, 10000)
}

// Validate implements config.Validator.
func (c *Coolant) Validate() error {
	if err := needCaps(&c.FloodPin, pin.CapOutput); err != nil {
		return err
	}
	return needCaps(&c.MistPin, pin.CapOutput)
}

// InitPins configures the valves as outputs.
func (c *Coolant) InitPins() error {
	return initPins(pin.AttrOutput, &c.FloodPin, &c.MistPin).err
}

// Start configures what happens at power-up.
type Start struct {
	MustHome          setting.Setting[bool]
	CheckLimits       setting.Setting[bool]
	DeactivateParking setting.Setting[bool]
}

// SetDefaults implements config.Defaulter.
func (s *Start) SetDefaults() {
	s.MustHome.Set(true)
	s.CheckLimits.Set(true)
}

// Group implements config.Configurable.
func (s *Start) Group(h config.Handler) {
	h.ItemBool("must_home", &s.MustHome)
	h.ItemBool("check_limits", &s.CheckLimits)
	h.ItemBool("deactivate_parking", &s.DeactivateParking)
}
