package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/logger"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pianobot.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "piano.sf2", cfg.SoundFont)
	assert.True(t, cfg.Realtime)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
backend: smf
output: out/fur-elise.mid
realtime: false
serial:
  device: /dev/ttyUSB0
server:
  addr: 127.0.0.1:9000
  allowed_origins: [http://localhost:3000]
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "smf", cfg.Backend)
	assert.Equal(t, "out/fur-elise.mid", cfg.Output)
	assert.False(t, cfg.Realtime)
	assert.Equal(t, "/dev/ttyUSB0", cfg.Serial.Device)
	assert.Equal(t, 115200, cfg.Serial.Baud, "unset keys keep their default")
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 1000, cfg.Layout.Width)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"backend", "backend: theremin"},
		{"log level", "log_level: loud"},
		{"midi device", "midi_device: -1"},
		{"baud", "serial:\n  baud: 0"},
		{"width", "layout:\n  width: 3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "backend: [unterminated"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalid)
}

func TestOptionsApply(t *testing.T) {
	cfg := Default()
	cfg.Backend = "wav"
	cfg.Output = "render.wav"
	cfg.MIDIDevice = 2
	cfg.Realtime = false

	var opts contracts.SessionOptions
	for _, o := range cfg.Options(logger.NewNopLogger()) {
		o(&opts)
	}
	assert.Equal(t, contracts.WAVBackend, opts.Backend)
	assert.Equal(t, "render.wav", opts.OutputPath)
	assert.Equal(t, "piano.sf2", opts.SoundFontPath)
	require.NotNil(t, opts.MIDIConfig)
	assert.Equal(t, 2, opts.MIDIConfig.DeviceID)
	assert.NotNil(t, opts.Clock, "non-realtime runs on a virtual clock")
	assert.Equal(t, contracts.InfoLevel, opts.LogLevel)
}
