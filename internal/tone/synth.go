package tone

import (
	"fmt"
	"math"
	"time"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/keyboard"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
)

const (
	// NoteLength is the length of every pre-rendered fallback note.
	NoteLength = 700 * time.Millisecond
	// NoteVolume is the fallback synth's output gain.
	NoteVolume = 0.45
)

// RenderNote synthesizes a mono piano-like tone: three harmonics under a fast attack and
// exponential decay.
func RenderNote(freq float64, length time.Duration, volume float64, sampleRate int) []float32 {
	n := int(float64(sampleRate) * length.Seconds())
	out := make([]float32, n)
	for i := range out {
		t := float64(i) / float64(sampleRate)
		w := 0.9*math.Sin(2*math.Pi*freq*t) +
			0.5*math.Sin(2*math.Pi*2*freq*t)*0.5 +
			0.2*math.Sin(2*math.Pi*3*freq*t)*0.2
		env := math.Min(1, 5*t) * math.Exp(-3*t)
		out[i] = float32(w * env * volume)
	}
	return out
}

// Stereo duplicates a mono buffer into interleaved left/right samples.
func Stereo(mono []float32) []float32 {
	out := make([]float32, 2*len(mono))
	for i, s := range mono {
		out[2*i] = s
		out[2*i+1] = s
	}
	return out
}

// SynthPlayer is the fallback fire-and-forget player. All notes are rendered up front.
type SynthPlayer struct {
	out    Output
	notes  map[string][]float32
	logger contracts.Logger
}

// NewSynthPlayer pre-renders every key of the keyboard and plays through out.
func NewSynthPlayer(out Output, logger contracts.Logger) *SynthPlayer {
	p := &SynthPlayer{out: out, notes: make(map[string][]float32, keyboard.KeyCount), logger: logger}
	for _, name := range keyboard.NoteOrder {
		freq, _ := keyboard.Frequency(name)
		p.notes[name] = Stereo(RenderNote(freq, NoteLength, NoteVolume, SampleRate))
	}
	logger.Info("Fallback synth ready", logger.Field().Int("notes", len(p.notes)))
	return p
}

// Play starts the pre-rendered note. The duration is not used: the note always rings for
// NoteLength.
func (p *SynthPlayer) Play(note string, _ time.Duration) error {
	if p.out == nil {
		return ErrClosed
	}
	buf, ok := p.notes[note]
	if !ok {
		return fmt.Errorf("%w: %q", keyboard.ErrInvalidNote, note)
	}
	return p.out.PlayPCM(buf)
}

// Close releases the output.
func (p *SynthPlayer) Close() error {
	if p.out == nil {
		return nil
	}
	err := p.out.Close()
	p.out = nil
	return err
}
