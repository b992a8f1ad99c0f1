// Package config loads the pianobot YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/actuator"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/hand"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/keyboard"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/robot"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file read when no --config flag is given.
const DefaultPath = "pianobot.yaml"

// ErrInvalid is returned when a configuration value is out of range.
var ErrInvalid = errors.New("invalid configuration")

// Config is the on-disk configuration.
type Config struct {
	LogLevel   string `yaml:"log_level"`   // debug, info, warn, error
	LogFile    string `yaml:"log_file"`    // empty: stderr
	Backend    string `yaml:"backend"`     // auto, soundfont, synth, midi, wav, smf, silent
	SoundFont  string `yaml:"soundfont"`   // .sf2 instrument
	Output     string `yaml:"output"`      // file written by the wav and smf backends
	MIDIDevice int    `yaml:"midi_device"` // output destination index
	Realtime   bool   `yaml:"realtime"`    // false plays on a virtual clock, instantly

	Serial struct {
		Device string `yaml:"device"` // empty: no hand hardware
		Baud   int    `yaml:"baud"`
	} `yaml:"serial"`

	Server struct {
		Addr           string   `yaml:"addr"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`

	Layout struct {
		Width int `yaml:"width"`
	} `yaml:"layout"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	var cfg Config
	cfg.LogLevel = "info"
	cfg.Backend = string(contracts.AutoBackend)
	cfg.SoundFont = robot.DefaultSoundFont
	cfg.Realtime = true
	cfg.Serial.Baud = actuator.DefaultBaud
	cfg.Server.Addr = ":8080"
	cfg.Server.AllowedOrigins = []string{"*"}
	cfg.Layout.Width = keyboard.DefaultWidth
	return cfg
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every value that has a fixed domain.
func (c Config) Validate() error {
	if _, ok := contracts.ParseLogLevel(c.LogLevel); !ok {
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	switch contracts.ToneBackend(c.Backend) {
	case contracts.AutoBackend, contracts.SoundFontBackend, contracts.SynthBackend, contracts.MIDIBackend,
		contracts.WAVBackend, contracts.SMFBackend, contracts.SilentBackend:
	default:
		return fmt.Errorf("%w: backend %q", ErrInvalid, c.Backend)
	}
	if c.MIDIDevice < 0 {
		return fmt.Errorf("%w: midi_device %d", ErrInvalid, c.MIDIDevice)
	}
	if c.Serial.Baud <= 0 {
		return fmt.Errorf("%w: serial.baud %d", ErrInvalid, c.Serial.Baud)
	}
	if c.Layout.Width < keyboard.KeyCount {
		return fmt.Errorf("%w: layout.width %d is narrower than %d keys", ErrInvalid, c.Layout.Width, keyboard.KeyCount)
	}
	return nil
}

// MIDIConfig is the MIDI backend configuration.
func (c Config) MIDIConfig() contracts.MIDIConfig {
	return contracts.MIDIConfig{ClientName: "pianobot", DeviceID: c.MIDIDevice}
}

// Options translates the configuration into session options. The actuator is opened by
// the caller since it owns a device.
func (c Config) Options(log contracts.Logger) []contracts.Option {
	level, _ := contracts.ParseLogLevel(c.LogLevel)
	opts := []contracts.Option{
		contracts.WithLogger(log),
		contracts.WithLogLevel(level),
		contracts.WithBackend(contracts.ToneBackend(c.Backend)),
		contracts.WithSoundFont(c.SoundFont),
		contracts.WithOutput(c.Output),
		contracts.WithMIDIConfig(c.MIDIConfig()),
		contracts.WithKeyboardWidth(c.Layout.Width),
	}
	if !c.Realtime {
		opts = append(opts, contracts.WithClock(hand.NewManualClock()))
	}
	return opts
}
