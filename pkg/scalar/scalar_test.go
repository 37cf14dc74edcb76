package scalar

import (
	"errors"
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motion-firmware/motioncfg/pkg/config"
	"github.com/motion-firmware/motioncfg/pkg/enum"
)

func TestParseBool(t *testing.T) {
	for _, s := range []string{"true", "YES", "on", "1"} {
		v, err := ParseBool(s)
		require.NoError(t, err, s)
		assert.True(t, v, s)
	}
	for _, s := range []string{"false", "No", "off", "0"} {
		v, err := ParseBool(s)
		require.NoError(t, err, s)
		assert.False(t, v, s)
	}
	_, err := ParseBool("maybe")
	assert.ErrorIs(t, err, config.ErrFormat)
}

func TestParseInt32(t *testing.T) {
	v, err := ParseInt32(" -42 ")
	require.NoError(t, err)
	assert.Equal(t, int32(-42), v)

	_, err = ParseInt32("3000000000")
	assert.ErrorIs(t, err, config.ErrFormat)
	_, err = ParseInt32("1.5")
	assert.ErrorIs(t, err, config.ErrFormat)
}

func TestFloatRoundTrip(t *testing.T) {
	tests := []struct {
		in   float32
		want string
	}{
		{80, "80.000"},
		{12.5, "12.500"},
		{16.306, "16.306"},
		{16.3026, "16.3026"},
		{80.0125, "80.0125"},
		{-267, "-267.000"},
	}
	for _, tt := range tests {
		got := FormatFloat(tt.in)
		assert.Equal(t, tt.want, got)
		v, err := ParseFloat(got)
		require.NoError(t, err)
		assert.Equal(t, tt.in, v, got)
	}

	_, err := ParseFloat("fast")
	assert.ErrorIs(t, err, config.ErrFormat)
}

func TestParseIPAddress(t *testing.T) {
	a, err := ParseIPAddress("192.168.0.1")
	require.NoError(t, err)
	assert.Equal(t, netip.MustParseAddr("192.168.0.1"), a)

	assert.Equal(t, "192.168.0.1", FormatIPAddress(a))
	assert.Equal(t, "", FormatIPAddress(netip.Addr{}))

	a, err = ParseIPAddress("")
	require.NoError(t, err)
	assert.False(t, a.IsValid())

	_, err = ParseIPAddress("192.168.0")
	assert.ErrorIs(t, err, config.ErrFormat)
}

func TestParseEnum(t *testing.T) {
	table := enum.Table{{Value: 0, Name: "STA"}, {Value: 1, Name: "AP"}}
	v, err := ParseEnum("ap", table)
	require.NoError(t, err)
	assert.Equal(t, 1, v)

	v, err = ParseEnum("0", table)
	require.NoError(t, err)
	assert.Equal(t, 0, v)

	_, err = ParseEnum("7", table)
	assert.ErrorIs(t, err, config.ErrUnknownName)

	name, ok := FormatEnum(1, table)
	assert.True(t, ok)
	assert.Equal(t, "AP", name)
	name, ok = FormatEnum(7, table)
	assert.False(t, ok)
	assert.Equal(t, "7", name)

	_, err = ParseEnum("mesh", table)
	assert.True(t, errors.Is(err, config.ErrUnknownName))
	assert.Contains(t, err.Error(), "STA, AP")
}

func TestSpeedMap(t *testing.T) {
	entries, err := ParseSpeedMap("0=0% 1000=12.5% 24000=100%")
	require.NoError(t, err)
	assert.Equal(t, []config.SpeedEntry{
		{Speed: 0, Percent: 0},
		{Speed: 1000, Percent: 12.5},
		{Speed: 24000, Percent: 100},
	}, entries)
	assert.Equal(t, "0=0% 1000=12.5% 24000=100%", FormatSpeedMap(entries))

	entries, err = ParseSpeedMap("   ")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSpeedMapErrors(t *testing.T) {
	for _, s := range []string{"1000", "x=10%", "1000=abc%", "1000=120%", "2000=10% 1000=20%"} {
		_, err := ParseSpeedMap(s)
		assert.ErrorIs(t, err, config.ErrFormat, s)
	}
}
