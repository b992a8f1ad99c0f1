package contracts

import "time"

// ToneBackend names a tone player implementation.
type ToneBackend string

const (
	// AutoBackend picks the soundfont sampler when the soundfont file loads, the harmonic synth otherwise.
	AutoBackend ToneBackend = "auto"
	// SoundFontBackend renders notes from an .sf2 instrument (sustain-capable).
	SoundFontBackend ToneBackend = "soundfont"
	// SynthBackend plays pre-rendered harmonic tones (fire-and-forget).
	SynthBackend ToneBackend = "synth"
	// MIDIBackend sends note on/off to an external MIDI destination (sustain-capable).
	MIDIBackend ToneBackend = "midi"
	// WAVBackend renders the performance to a WAV file on the session clock.
	WAVBackend ToneBackend = "wav"
	// SMFBackend records the performance to a Standard MIDI File on the session clock.
	SMFBackend ToneBackend = "smf"
	// SilentBackend produces no sound.
	SilentBackend ToneBackend = "silent"
)

// DefaultVelocity is the note-on velocity used for every melody note.
const DefaultVelocity uint8 = 100

// TonePlayer produces audible sound for a note. Play is fire-and-forget: it returns
// without waiting for the tone to finish.
type TonePlayer interface {
	Play(note string, duration time.Duration) error // Starts the note; the caller owns the timing.
	Close() error                                   // Releases the audio resources.
}

// SustainPlayer is a TonePlayer that can hold a note until it is explicitly released.
type SustainPlayer interface {
	TonePlayer
	NoteOn(note string, velocity uint8) error // Starts holding the note.
	NoteOff(note string) error                // Releases the note.
}

// MIDIPlayer is a SustainPlayer bound to an external MIDI output destination.
type MIDIPlayer interface {
	SustainPlayer
	ListDevices() ([]DeviceInfo, error) // Lists the available output destinations.
}

// Clock drives the animation and playback timeline. Now is the elapsed time since the
// clock was created.
type Clock interface {
	Now() time.Duration
	Sleep(d time.Duration)
}
