package tone

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

const (
	// SMFResolution is the ticks per quarter note of exported files.
	SMFResolution = 960
	// SMFTempo is the tempo written to exported files; ticks map to wall time through it.
	SMFTempo = 120.0
)

// SMFRecorder records the performance on the session clock and writes it as a
// single-track Standard MIDI File on Close.
type SMFRecorder struct {
	timeline
	path   string
	logger contracts.Logger
}

// NewSMFRecorder creates a recorder writing to path.
func NewSMFRecorder(path string, clock contracts.Clock, logger contracts.Logger) *SMFRecorder {
	return &SMFRecorder{timeline: newTimeline(clock), path: path, logger: logger}
}

type smfEvent struct {
	at  uint32
	msg midi.Message
}

// Ticks converts a time offset into ticks at SMFTempo and SMFResolution.
func Ticks(d time.Duration) uint32 {
	quarter := time.Duration(float64(time.Minute) / SMFTempo)
	return uint32(float64(d) / float64(quarter) * SMFResolution)
}

// Track converts spans into a track of note on/off messages on channel 0.
func Track(spans []Span) smf.Track {
	events := make([]smfEvent, 0, 2*len(spans))
	for _, s := range spans {
		events = append(events,
			smfEvent{at: Ticks(s.On), msg: midi.NoteOn(0, s.Key, s.Velocity)},
			smfEvent{at: Ticks(s.Off), msg: midi.NoteOff(0, s.Key)},
		)
	}
	// Note offs sort before note ons at the same tick so repeated keys retrigger.
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].at != events[j].at {
			return events[i].at < events[j].at
		}
		return isNoteOff(events[i].msg) && !isNoteOff(events[j].msg)
	})

	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName("greedy piano robot"))
	tr.Add(0, smf.MetaTempo(SMFTempo))
	var last uint32
	for _, ev := range events {
		tr.Add(ev.at-last, ev.msg)
		last = ev.at
	}
	tr.Close(0)
	return tr
}

func isNoteOff(msg midi.Message) bool {
	var ch, key uint8
	return msg.GetNoteEnd(&ch, &key)
}

// Close writes the file.
func (r *SMFRecorder) Close() error {
	spans, ok := r.finish()
	if !ok {
		return nil
	}
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(SMFResolution)
	if err := s.Add(Track(spans)); err != nil {
		return err
	}
	if dir := filepath.Dir(r.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := s.WriteFile(r.path); err != nil {
		r.logger.Error("Failed to write MIDI file", r.logger.Field().String("path", r.path), r.logger.Field().Error("error", err))
		return err
	}
	r.logger.Info("Performance exported", r.logger.Field().String("path", r.path), r.logger.Field().Int("notes", len(spans)))
	return nil
}
