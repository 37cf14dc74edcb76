package config

import (
	"net/netip"

	"github.com/motion-firmware/motioncfg/pkg/enum"
	"github.com/motion-firmware/motioncfg/pkg/setting"
	"github.com/motion-firmware/motioncfg/pkg/uart"
)

// NopItems implements every item method of Handler as a no-op. Handlers
// that only care about sections embed it.
type NopItems struct{}

func (NopItems) ItemBool(string, *setting.Setting[bool])                       {}
func (NopItems) ItemInt32(string, *setting.Setting[int32], int32, int32)       {}
func (NopItems) ItemFloat(string, *setting.Setting[float32], float32, float32) {}
func (NopItems) ItemSpeedMap(string, *setting.Setting[[]SpeedEntry])           {}
func (NopItems) ItemUart(string, *setting.Setting[uart.Data], *setting.Setting[uart.Parity], *setting.Setting[uart.Stop]) {
}
func (NopItems) ItemStringRange(string, *setting.Setting[StringRange], int, int) {}
func (NopItems) ItemPin(string, *setting.Pin)                                    {}
func (NopItems) ItemIPAddress(string, *setting.Setting[netip.Addr])              {}
func (NopItems) ItemEnum(string, *setting.Setting[int], enum.Table)              {}
