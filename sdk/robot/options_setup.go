package robot

import (
	"fmt"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/hand"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/keyboard"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/logger"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
)

// DefaultSoundFont is the soundfont probed by the auto backend.
const DefaultSoundFont = "piano.sf2"

// applyDefaultOptions sets default values for SessionOptions if not explicitly provided.
//
// opts ...contracts.Option: A variadic list of option functions that can modify SessionOptions.
//
// Returns:
//   - contracts.SessionOptions: The finalized session options with defaults applied.
//   - error: An error if an option carries an invalid value.
func applyDefaultOptions(opts ...contracts.Option) (contracts.SessionOptions, error) {
	options := &contracts.SessionOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.Logger == nil {
		options.Logger = logger.NewZapLogger()
	}
	if options.Clock == nil {
		options.Clock = hand.NewRealClock()
	}
	if options.Backend == "" {
		options.Backend = contracts.AutoBackend
	}
	if !knownBackend(options.Backend) {
		return *options, fmt.Errorf("%w: %q", ErrUnknownBackend, options.Backend)
	}
	if options.SoundFontPath == "" {
		options.SoundFontPath = DefaultSoundFont
	}
	if options.MIDIConfig == nil {
		options.MIDIConfig = &contracts.MIDIConfig{ClientName: "Greedy Piano Robot"}
	}
	if options.KeyboardWidth == 0 {
		options.KeyboardWidth = keyboard.DefaultWidth
	}
	if options.KeyboardWidth < keyboard.KeyCount {
		return *options, fmt.Errorf("keyboard width %d is narrower than %d keys", options.KeyboardWidth, keyboard.KeyCount)
	}

	options.Logger.SetLevel(options.LogLevel) // The zero value is InfoLevel.
	return *options, nil
}

func knownBackend(b contracts.ToneBackend) bool {
	switch b {
	case contracts.AutoBackend, contracts.SoundFontBackend, contracts.SynthBackend, contracts.MIDIBackend,
		contracts.WAVBackend, contracts.SMFBackend, contracts.SilentBackend:
		return true
	}
	return false
}
