package machine

import (
	"github.com/motion-firmware/motioncfg/pkg/config"
	"github.com/motion-firmware/motioncfg/pkg/enum"
	"github.com/motion-firmware/motioncfg/pkg/setting"
)

// Step generation engines.
const (
	EngineTimed = iota
	EngineRMT
	EngineI2SStatic
	EngineI2SStream
)

// EngineNames maps step engine names to values.
var EngineNames = enum.Table{
	{Value: EngineTimed, Name: "Timed"},
	{Value: EngineRMT, Name: "RMT"},
	{Value: EngineI2SStatic, Name: "I2S_static"},
	{Value: EngineI2SStream, Name: "I2S_stream"},
}

// Stepping configures step pulse generation.
type Stepping struct {
	Engine         setting.Setting[int]
	IdleMs         setting.Setting[uint32]
	PulseUs        setting.Setting[uint32]
	DirDelayUs     setting.Setting[uint32]
	DisableDelayUs setting.Setting[uint32]
}

// SetDefaults implements config.Defaulter.
func (s *Stepping) SetDefaults() {
	s.Engine.Set(EngineRMT)
	s.IdleMs.Set(25)
	s.PulseUs.Set(1)
}

// Group implements config.Configurable.
func (s *Stepping) Group(h config.Handler) {
	h.ItemEnum("engine", &s.Engine, EngineNames)
	config.ItemUint32(h, "idle_ms", &s.IdleMs, 0, 10000000)
	config.ItemUint32(h, "pulse_us", &s.PulseUs, 1, 10000)
	config.ItemUint32(h, "dir_delay_us", &s.DirDelayUs, 0, 10000)
	config.ItemUint32(h, "disable_delay_us", &s.DisableDelayUs, 0, 10000)
}
