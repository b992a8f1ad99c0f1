package tone

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/keyboard"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
	"github.com/sinshu/go-meltysynth/meltysynth"
)

const (
	sfChannel = 0
	sfProgram = 0
)

// SoundFontPlayer is the high-fidelity, sustain-capable player. A meltysynth synthesizer
// is rendered continuously into the output; NoteOn and NoteOff drive it.
type SoundFontPlayer struct {
	mu     sync.Mutex
	synth  *meltysynth.Synthesizer
	stream io.Closer
	out    Output
	logger contracts.Logger
}

// LoadSoundFont parses an .sf2 file into a synthesizer ready for program 0 on channel 0.
func LoadSoundFont(path string) (*meltysynth.Synthesizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoSoundFont, err)
	}
	defer f.Close()

	sf, err := meltysynth.NewSoundFont(f)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoSoundFont, path, err)
	}
	synth, err := meltysynth.NewSynthesizer(sf, meltysynth.NewSynthesizerSettings(SampleRate))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNoSoundFont, path, err)
	}
	synth.ProcessMidiMessage(sfChannel, 0xC0, sfProgram, 0)
	return synth, nil
}

// NewSoundFontPlayer loads path and starts streaming it to out.
func NewSoundFontPlayer(path string, out Output, logger contracts.Logger) (*SoundFontPlayer, error) {
	synth, err := LoadSoundFont(path)
	if err != nil {
		return nil, err
	}
	p := &SoundFontPlayer{synth: synth, out: out, logger: logger}
	stream, err := out.Stream(p)
	if err != nil {
		return nil, err
	}
	p.stream = stream
	logger.Info("Soundfont loaded", logger.Field().String("path", path))
	return p, nil
}

// Render is called by the output to pull samples.
func (p *SoundFontPlayer) Render(left, right []float32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.synth.Render(left, right)
}

// NoteOn starts holding note.
func (p *SoundFontPlayer) NoteOn(note string, velocity uint8) error {
	key, err := keyboard.MIDINumber(note)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stream == nil {
		return ErrClosed
	}
	p.synth.NoteOn(sfChannel, int32(key), int32(velocity))
	return nil
}

// NoteOff releases note.
func (p *SoundFontPlayer) NoteOff(note string) error {
	key, err := keyboard.MIDINumber(note)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.stream == nil {
		return ErrClosed
	}
	p.synth.NoteOff(sfChannel, int32(key))
	return nil
}

// Play starts note and releases it after duration on the wall clock.
func (p *SoundFontPlayer) Play(note string, duration time.Duration) error {
	if err := p.NoteOn(note, contracts.DefaultVelocity); err != nil {
		return err
	}
	time.AfterFunc(duration, func() { _ = p.NoteOff(note) })
	return nil
}

// Close stops the stream and the output.
func (p *SoundFontPlayer) Close() error {
	p.mu.Lock()
	stream := p.stream
	p.stream = nil
	p.mu.Unlock()
	if stream == nil {
		return nil
	}
	if err := stream.Close(); err != nil {
		return err
	}
	return p.out.Close()
}
