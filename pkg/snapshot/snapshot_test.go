package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motion-firmware/motioncfg/pkg/config"
	"github.com/motion-firmware/motioncfg/pkg/generator"
	"github.com/motion-firmware/motioncfg/pkg/log"
	"github.com/motion-firmware/motioncfg/pkg/parser"
	"github.com/motion-firmware/motioncfg/pkg/pin"
	"github.com/motion-firmware/motioncfg/pkg/setting"
)

type motor struct {
	steps  setting.Setting[float32]
	offset setting.Setting[int32]
	invert setting.Setting[bool]
	step   setting.Pin
}

func (m *motor) Group(h config.Handler) {
	h.ItemFloat("steps_per_mm", &m.steps, 0.001, 100000)
	h.ItemInt32("offset", &m.offset, -1000, 1000)
	h.ItemBool("invert", &m.invert)
	h.ItemPin("step_pin", &m.step)
}

type machine struct {
	name  setting.Setting[string]
	motor *motor
}

func (m *machine) Group(h config.Handler) {
	config.ItemString(h, "name", &m.name, 0, 32)
	config.Section(h, "motor", &m.motor)
}

func sample(t *testing.T, bank *pin.Bank) *machine {
	t.Helper()
	m := &machine{}
	err := parser.Parse([]byte(`
name: wall plotter
motor:
  steps_per_mm: 0.1
  offset: -12
  invert: true
  step_pin: gpio.14:low
`), m, parser.WithPins(bank))
	require.NoError(t, err)
	return m
}

func TestRestoreRoundTrip(t *testing.T) {
	src := sample(t, pin.NewESP32Bank())

	data, err := Encode(src)
	require.NoError(t, err)

	changes := &log.Recorder{}
	dst := &machine{}
	require.NoError(t, Restore(data, dst, parser.WithPins(pin.NewESP32Bank()), parser.WithChangeLog(changes)))

	want, err := generator.YAML(src)
	require.NoError(t, err)
	got, err := generator.YAML(dst)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))

	require.NotEmpty(t, changes.Events())
	for _, e := range changes.Events() {
		assert.Equal(t, log.SourceSnapshot, e.Source)
	}
}

func TestMarshalDeterministic(t *testing.T) {
	taken := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	a := sample(t, pin.NewESP32Bank())
	b := sample(t, pin.NewESP32Bank())

	first, err := New(a, taken).Marshal()
	require.NoError(t, err)
	second, err := New(b, taken).Marshal()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestDecodeEnvelope(t *testing.T) {
	taken := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	data, err := New(sample(t, pin.NewESP32Bank()), taken).Marshal()
	require.NoError(t, err)

	s, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, uint8(Version), s.Version)
	assert.True(t, s.Taken.Equal(taken))
	assert.Equal(t, "wall plotter", s.Tree["name"])

	motor, ok := s.Tree["motor"].(map[string]any)
	require.True(t, ok, "sections decode as maps")
	assert.Equal(t, true, motor["invert"])
	assert.Equal(t, int64(-12), motor["offset"])
	assert.Equal(t, "gpio.14:low", motor["step_pin"])
}

func TestDecodeRejectsVersion(t *testing.T) {
	s := &Snapshot{Version: 9, Tree: map[string]any{}}
	data, err := s.Marshal()
	require.NoError(t, err)

	_, err = Decode(data)
	assert.ErrorIs(t, err, ErrVersion)

	_, err = Decode([]byte{0xff})
	assert.Error(t, err)
}

func TestNodeRejectsUnknownValues(t *testing.T) {
	s := &Snapshot{Version: Version, Tree: map[string]any{"list": []any{1, 2}}}
	_, err := s.Node()
	assert.ErrorIs(t, err, ErrValue)
}

func TestRestoreChecksBounds(t *testing.T) {
	s := &Snapshot{Version: Version, Tree: map[string]any{
		"motor": map[string]any{"offset": int64(5000)},
	}}
	data, err := s.Marshal()
	require.NoError(t, err)

	err = Restore(data, &machine{})
	assert.ErrorIs(t, err, config.ErrOutOfRange)
}
