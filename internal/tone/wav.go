package tone

import (
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/cwbudde/wav"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/keyboard"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
	"github.com/go-audio/audio"
)

// WAVRecorder records the performance on the session clock and renders it with the
// harmonic synth into a 16-bit stereo WAV file on Close.
type WAVRecorder struct {
	timeline
	path   string
	logger contracts.Logger
}

// NewWAVRecorder creates a recorder writing to path.
func NewWAVRecorder(path string, clock contracts.Clock, logger contracts.Logger) *WAVRecorder {
	return &WAVRecorder{timeline: newTimeline(clock), path: path, logger: logger}
}

// Mix renders spans into interleaved stereo samples at sampleRate. Each note rings for at
// least NoteLength; the mix is normalized when it would clip.
func Mix(spans []Span, sampleRate int) []float32 {
	var end time.Duration
	for _, s := range spans {
		if e := s.On + noteLength(s); e > end {
			end = e
		}
	}
	frames := int(float64(sampleRate) * end.Seconds())
	mono := make([]float32, frames)
	for _, s := range spans {
		freq, err := keyboard.Frequency(s.Note)
		if err != nil {
			continue
		}
		gain := NoteVolume * float64(s.Velocity) / 127
		note := RenderNote(freq, noteLength(s), gain, sampleRate)
		start := int(float64(sampleRate) * s.On.Seconds())
		for i, v := range note {
			if start+i >= len(mono) {
				break
			}
			mono[start+i] += v
		}
	}

	var peak float32
	for _, v := range mono {
		if a := float32(math.Abs(float64(v))); a > peak {
			peak = a
		}
	}
	if peak > 0.99 {
		g := 0.99 / peak
		for i := range mono {
			mono[i] *= g
		}
	}
	return Stereo(mono)
}

func noteLength(s Span) time.Duration {
	if d := s.Off - s.On; d > NoteLength {
		return d
	}
	return NoteLength
}

// Close renders the recording and writes the file.
func (r *WAVRecorder) Close() error {
	spans, ok := r.finish()
	if !ok {
		return nil
	}
	samples := Mix(spans, SampleRate)
	if err := writeWAV(r.path, samples, SampleRate); err != nil {
		r.logger.Error("Failed to write WAV", r.logger.Field().String("path", r.path), r.logger.Field().Error("error", err))
		return err
	}
	r.logger.Info("Performance rendered",
		r.logger.Field().String("path", r.path),
		r.logger.Field().Int("notes", len(spans)),
		r.logger.Field().Int("frames", len(samples)/2))
	return nil
}

func writeWAV(path string, samples []float32, sampleRate int) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 2, 1)
	buf := &audio.Float32Buffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: 2,
		},
		Data:           samples,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}
