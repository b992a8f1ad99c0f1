package robot

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/midi/mididarwin"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/midi/midiwindows"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/tone"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
)

// ErrUnsupportedOS is returned when the operating system has no MIDI output implementation.
var ErrUnsupportedOS = errors.New("unsupported operating system")

// ErrUnknownBackend is returned for a tone backend name the session does not know.
var ErrUnknownBackend = errors.New("unknown tone backend")

// CustomBackend is reported when the tone player was supplied with WithTonePlayer.
const CustomBackend contracts.ToneBackend = "custom"

// Default output files of the recording backends.
const (
	DefaultWAVOutput = "performance.wav"
	DefaultSMFOutput = "performance.mid"
)

// midiPlayerInitializers maps OS names to corresponding MIDI output initializers.
var midiPlayerInitializers = map[string]func(*contracts.MIDIConfig, contracts.Logger) (contracts.MIDIPlayer, error){
	"darwin":  mididarwin.NewMIDIPlayer,  // macOS (CoreMIDI) output.
	"windows": midiwindows.NewMIDIPlayer, // Windows (winmm) output.
}

// NewMIDIPlayer opens the MIDI output of the current operating system.
func NewMIDIPlayer(config *contracts.MIDIConfig, logger contracts.Logger) (contracts.MIDIPlayer, error) {
	if initializer, exists := midiPlayerInitializers[runtime.GOOS]; exists {
		return initializer(config, logger)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupportedOS, runtime.GOOS)
}

// newTonePlayer selects the tone player once, at session construction. An audio device
// that cannot be opened degrades the session to silence; it never fails later.
func newTonePlayer(opts *contracts.SessionOptions) (contracts.TonePlayer, contracts.ToneBackend, error) {
	log := opts.Logger
	if opts.TonePlayer != nil {
		return opts.TonePlayer, CustomBackend, nil
	}

	switch opts.Backend {
	case contracts.SilentBackend:
		return tone.Silent{}, contracts.SilentBackend, nil
	case contracts.WAVBackend:
		return tone.NewWAVRecorder(outputOr(opts.OutputPath, DefaultWAVOutput), opts.Clock, log), contracts.WAVBackend, nil
	case contracts.SMFBackend:
		return tone.NewSMFRecorder(outputOr(opts.OutputPath, DefaultSMFOutput), opts.Clock, log), contracts.SMFBackend, nil
	case contracts.MIDIBackend:
		p, err := NewMIDIPlayer(opts.MIDIConfig, log)
		if err != nil {
			log.Error("MIDI backend unavailable", log.Field().Error("error", err))
			return nil, "", err
		}
		return p, contracts.MIDIBackend, nil
	}

	out, err := tone.OpenOutput(tone.SampleRate)
	if err != nil {
		log.Warn("No audio device; running silent", log.Field().Error("error", err))
		return tone.Silent{}, contracts.SilentBackend, nil
	}

	switch opts.Backend {
	case contracts.SoundFontBackend:
		p, err := tone.NewSoundFontPlayer(opts.SoundFontPath, out, log)
		if err != nil {
			_ = out.Close()
			log.Error("Soundfont backend unavailable", log.Field().String("path", opts.SoundFontPath), log.Field().Error("error", err))
			return nil, "", err
		}
		return p, contracts.SoundFontBackend, nil
	case contracts.SynthBackend:
		return tone.NewSynthPlayer(out, log), contracts.SynthBackend, nil
	}

	p, err := tone.NewSoundFontPlayer(opts.SoundFontPath, out, log)
	if err == nil {
		return p, contracts.SoundFontBackend, nil
	}
	log.Warn("Soundfont unavailable; using fallback synth",
		log.Field().String("path", opts.SoundFontPath),
		log.Field().Error("error", err))
	return tone.NewSynthPlayer(out, log), contracts.SynthBackend, nil
}

func outputOr(path, fallback string) string {
	if path == "" {
		return fallback
	}
	return path
}
