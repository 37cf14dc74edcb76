package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/motion-firmware/motioncfg/pkg/config"
	"github.com/motion-firmware/motioncfg/pkg/log"
	"github.com/motion-firmware/motioncfg/pkg/snapshot"
)

func writeProfile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, RunInit(path, false))
	return path
}

func TestRunInit(t *testing.T) {
	path := writeProfile(t)

	err := RunInit(path, false)
	assert.ErrorIs(t, err, ErrExists)

	require.NoError(t, RunInit(path, true))
	_, err = os.Stat(path + ".bak")
	assert.NoError(t, err, "overwrite keeps a backup")
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), Env{})
	assert.ErrorIs(t, err, ErrNoConfig)
}

func TestRunCheck(t *testing.T) {
	path := writeProfile(t)

	var buf bytes.Buffer
	require.NoError(t, RunCheck(path, Env{}, &buf))
	assert.Equal(t, path+": ok (Wall Plotter on ESP32 Dev Controller)\n", buf.String())
}

func TestRunCheckReportsEveryProblem(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	doc := "stepping:\n  engine: Bogus\n  pulse_us: 20000\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	var buf bytes.Buffer
	err := RunCheck(path, Env{}, &buf)
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "/stepping/engine")
	assert.Contains(t, out, "/stepping/pulse_us")
	assert.NotContains(t, out, ": ok")
}

func TestRunDump(t *testing.T) {
	path := writeProfile(t)

	var buf bytes.Buffer
	require.NoError(t, RunDump(path, "json", Env{}, &buf))
	assert.True(t, gjson.ValidBytes(buf.Bytes()))
	assert.Equal(t, "Wall Plotter", gjson.GetBytes(buf.Bytes(), "name").String())
	assert.Equal(t, "gpio.14", gjson.GetBytes(buf.Bytes(), "axes.x.motor0.step_pin").String())

	buf.Reset()
	require.NoError(t, RunDump(path, "cbor", Env{}, &buf))
	snap, err := snapshot.Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, uint8(snapshot.Version), snap.Version)

	err = RunDump(path, "toml", Env{}, &buf)
	assert.Error(t, err)
}

func TestRunGet(t *testing.T) {
	path := writeProfile(t)

	var buf bytes.Buffer
	require.NoError(t, RunGet(path, "/axes/x/steps_per_mm", Env{}, &buf))
	assert.Equal(t, "$/axes/x/steps_per_mm=16.306\n", buf.String())

	assert.Error(t, RunGet(path, "/axes/a/steps_per_mm", Env{}, &buf))
}

func TestRunSetSaves(t *testing.T) {
	path := writeProfile(t)
	changes := &log.Recorder{}
	env := Env{Changes: changes}

	var buf bytes.Buffer
	require.NoError(t, RunSet(path, []string{"/axes/x/steps_per_mm=80", "/wifi/ssid=Shop"}, env, &buf))
	assert.Equal(t, "$/axes/x/steps_per_mm=80.000\n$/wifi/ssid=Shop\n", buf.String())

	buf.Reset()
	require.NoError(t, RunGet(path, "/wifi/ssid", Env{}, &buf))
	assert.Equal(t, "$/wifi/ssid=Shop\n", buf.String())

	var runtimeEvents int
	for _, e := range changes.Events() {
		if e.Source == log.SourceRuntime {
			runtimeEvents++
		}
	}
	assert.Equal(t, 2, runtimeEvents)
}

func TestRunSetLeavesFileOnFailure(t *testing.T) {
	path := writeProfile(t)
	before, err := os.ReadFile(path)
	require.NoError(t, err)

	tests := []struct {
		name        string
		assignments []string
	}{
		{"out of range", []string{"/axes/x/steps_per_mm=80", "/axes/x/steps_per_mm=-1"}},
		{"missing value", []string{"/axes/x/steps_per_mm"}},
		{"broken invariant", []string{"/kinematics/WallPlotter/right_axis=0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.Error(t, RunSet(path, tt.assignments, Env{}, &buf))

			after, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, before, after)
		})
	}
}

func TestRunSetOutOfRangeIsValidationError(t *testing.T) {
	path := writeProfile(t)

	var buf bytes.Buffer
	err := RunSet(path, []string{"/axes/x/steps_per_mm=-1"}, Env{}, &buf)
	assert.ErrorIs(t, err, config.ErrOutOfRange)
}

func TestRunList(t *testing.T) {
	path := writeProfile(t)

	var buf bytes.Buffer
	require.NoError(t, RunList(path, Env{}, &buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Contains(t, lines, "$/name=Wall Plotter")
	assert.Contains(t, lines, "$/wifi/ssid=Tap")
}
