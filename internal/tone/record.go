package tone

import (
	"fmt"
	"sync"
	"time"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/keyboard"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
)

// Span is one recorded note.
type Span struct {
	Note     string
	Key      uint8
	Velocity uint8
	On       time.Duration
	Off      time.Duration
}

// timeline records note spans against a clock. Recorders embed it.
type timeline struct {
	mu     sync.Mutex
	clock  contracts.Clock
	open   map[string]int
	spans  []Span
	closed bool
}

func newTimeline(clock contracts.Clock) timeline {
	return timeline{clock: clock, open: make(map[string]int)}
}

// NoteOn opens a span at the clock's current time.
func (t *timeline) NoteOn(note string, velocity uint8) error {
	key, err := keyboard.MIDINumber(note)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	if _, held := t.open[note]; held {
		return nil
	}
	now := t.clock.Now()
	t.open[note] = len(t.spans)
	t.spans = append(t.spans, Span{Note: note, Key: key, Velocity: velocity, On: now, Off: now})
	return nil
}

// NoteOff closes the span of note. Releasing a note that is not held is an error.
func (t *timeline) NoteOff(note string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	i, held := t.open[note]
	if !held {
		return fmt.Errorf("note %q released without note on", note)
	}
	t.spans[i].Off = t.clock.Now()
	delete(t.open, note)
	return nil
}

// Play records a span of the given duration starting now.
func (t *timeline) Play(note string, duration time.Duration) error {
	key, err := keyboard.MIDINumber(note)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return ErrClosed
	}
	now := t.clock.Now()
	t.spans = append(t.spans, Span{Note: note, Key: key, Velocity: contracts.DefaultVelocity, On: now, Off: now + duration})
	return nil
}

// Spans returns the recorded spans; notes still held end at the current time.
func (t *timeline) Spans() []Span {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshot()
}

func (t *timeline) snapshot() []Span {
	out := make([]Span, len(t.spans))
	copy(out, t.spans)
	now := t.clock.Now()
	for _, i := range t.open {
		out[i].Off = now
	}
	return out
}

// finish marks the timeline closed and returns its final spans. ok is false if it was
// already closed.
func (t *timeline) finish() (spans []Span, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return nil, false
	}
	spans = t.snapshot()
	t.closed = true
	return spans, true
}
