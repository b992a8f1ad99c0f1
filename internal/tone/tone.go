// Package tone implements the tone players the melody is heard through: a soundfont
// sampler, a harmonic fallback synth, offline WAV and SMF recorders and a silent player.
package tone

import (
	"errors"
	"io"
	"sync"
	"time"
)

// SampleRate is the rate every rendering backend works at.
const SampleRate = 44100

var (
	// ErrNoSoundFont is returned when the soundfont file is missing or unreadable.
	ErrNoSoundFont = errors.New("soundfont not available")
	// ErrAudioUnavailable is returned when no audio output can be opened.
	ErrAudioUnavailable = errors.New("audio output unavailable")
	// ErrClosed is returned by players used after Close.
	ErrClosed = errors.New("tone player closed")
)

// Renderer fills stereo sample blocks on demand.
type Renderer interface {
	Render(left, right []float32)
}

// Output is an audio device accepting interleaved stereo float32 samples.
type Output interface {
	PlayPCM(samples []float32) error      // Queues a finished buffer; returns immediately.
	Stream(r Renderer) (io.Closer, error) // Pulls samples from r until the closer is closed.
	Close() error
}

// OutputOpener opens an Output at the given sample rate.
type OutputOpener func(sampleRate int) (Output, error)

var (
	outputMu     sync.Mutex
	outputOpener OutputOpener
)

// RegisterOutput installs the audio device implementation. Device packages call it from
// init so that importing them for side effects enables sound.
func RegisterOutput(open OutputOpener) {
	outputMu.Lock()
	defer outputMu.Unlock()
	outputOpener = open
}

// OpenOutput opens the registered audio device.
func OpenOutput(sampleRate int) (Output, error) {
	outputMu.Lock()
	open := outputOpener
	outputMu.Unlock()
	if open == nil {
		return nil, ErrAudioUnavailable
	}
	out, err := open(sampleRate)
	if err != nil {
		return nil, errors.Join(ErrAudioUnavailable, err)
	}
	return out, nil
}

// Silent is a fire-and-forget player that makes no sound.
type Silent struct{}

// Play does nothing.
func (Silent) Play(string, time.Duration) error { return nil }

// Close does nothing.
func (Silent) Close() error { return nil }
