package contracts

// MIDIConfig holds configuration for the MIDI output backend.
type MIDIConfig struct {
	ClientName string // Name of the MIDI client registered with the OS.
	DeviceID   int    // Index of the output destination.
}

// SessionOptions defines the configuration options for a robot session.
type SessionOptions struct {
	Logger        Logger      // Logger for logging events and errors.
	LogLevel      LogLevel    // Level of logging to use.
	Backend       ToneBackend // Tone backend to select at construction.
	SoundFontPath string      // Soundfont used by the soundfont backend and probed by AutoBackend.
	OutputPath    string      // Output file for the wav and smf backends.
	TonePlayer    TonePlayer  // Explicit tone player; overrides Backend.
	Clock         Clock       // Timeline; real time unless overridden.
	FrameSink     FrameSink   // Optional presentation layer.
	Actuator      Actuator    // Optional hand hardware.
	MIDIConfig    *MIDIConfig // Configuration specific to the MIDI backend.
	KeyboardWidth int         // Width handed to the position mapper.
}

// Option is a function that modifies SessionOptions.
type Option func(*SessionOptions)

// WithLogger sets the logger for the session.
func WithLogger(l Logger) Option {
	return func(opts *SessionOptions) {
		opts.Logger = l
	}
}

// WithLogLevel sets the logging level for the session.
func WithLogLevel(level LogLevel) Option {
	return func(opts *SessionOptions) {
		opts.LogLevel = level
	}
}

// WithBackend selects the tone backend.
func WithBackend(b ToneBackend) Option {
	return func(opts *SessionOptions) {
		opts.Backend = b
	}
}

// WithSoundFont sets the soundfont path.
func WithSoundFont(path string) Option {
	return func(opts *SessionOptions) {
		opts.SoundFontPath = path
	}
}

// WithOutput sets the output file of the recording backends.
func WithOutput(path string) Option {
	return func(opts *SessionOptions) {
		opts.OutputPath = path
	}
}

// WithTonePlayer installs a ready tone player, bypassing backend selection.
func WithTonePlayer(p TonePlayer) Option {
	return func(opts *SessionOptions) {
		opts.TonePlayer = p
	}
}

// WithClock sets the clock driving animation and playback.
func WithClock(c Clock) Option {
	return func(opts *SessionOptions) {
		opts.Clock = c
	}
}

// WithFrameSink sets the presentation layer receiving animation frames.
func WithFrameSink(s FrameSink) Option {
	return func(opts *SessionOptions) {
		opts.FrameSink = s
	}
}

// WithActuator attaches hand hardware.
func WithActuator(a Actuator) Option {
	return func(opts *SessionOptions) {
		opts.Actuator = a
	}
}

// WithMIDIConfig sets the MIDI backend configuration.
func WithMIDIConfig(config MIDIConfig) Option {
	return func(opts *SessionOptions) {
		opts.MIDIConfig = &config
	}
}

// WithKeyboardWidth sets the layout width used by the position mapper.
func WithKeyboardWidth(w int) Option {
	return func(opts *SessionOptions) {
		opts.KeyboardWidth = w
	}
}
