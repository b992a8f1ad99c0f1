package melody

import (
	"time"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/hand"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
)

const (
	// InterNotePause is the rest after each note.
	InterNotePause = 80 * time.Millisecond
	// SustainFraction is the share of a note's duration a sustain-capable player holds it.
	SustainFraction = 0.8
)

// KeyMapper resolves note names to key indices.
type KeyMapper interface {
	KeyIndex(note string) (int, error)
}

// Step is the record of one played note.
type Step struct {
	Index    int           `json:"index"`
	Note     string        `json:"note"`
	Key      int           `json:"key"`
	Decision hand.Decision `json:"decision"`
	Move     hand.Move     `json:"move"`
}

// Player plays melodies on a hand. Only one Play may run at a time.
type Player struct {
	hand     *hand.Hand
	animator *hand.Animator
	keys     KeyMapper
	tone     contracts.TonePlayer
	actuator contracts.Actuator
	clock    contracts.Clock
	logger   contracts.Logger
}

// NewPlayer wires a player. actuator may be nil.
func NewPlayer(h *hand.Hand, a *hand.Animator, keys KeyMapper, tone contracts.TonePlayer, actuator contracts.Actuator, clock contracts.Clock, logger contracts.Logger) *Player {
	return &Player{
		hand:     h,
		animator: a,
		keys:     keys,
		tone:     tone,
		actuator: actuator,
		clock:    clock,
		logger:   logger,
	}
}

// Play runs events in order. Every note is resolved before the first move, so an unknown
// note fails the whole melody without moving any finger. Statistics are not reset here.
func (p *Player) Play(events []NoteEvent) ([]Step, error) {
	keys := make([]int, len(events))
	for i, ev := range events {
		k, err := p.keys.KeyIndex(ev.Note)
		if err != nil {
			p.logger.Error("Melody rejected", p.logger.Field().Int("index", i), p.logger.Field().Error("error", err))
			return nil, err
		}
		keys[i] = k
	}

	steps := make([]Step, 0, len(events))
	for i, ev := range events {
		step, err := p.playNote(i, ev, keys[i])
		if err != nil {
			return steps, err
		}
		steps = append(steps, step)
	}
	return steps, nil
}

func (p *Player) playNote(i int, ev NoteEvent, key int) (Step, error) {
	d, err := p.hand.Choose(key)
	if err != nil {
		p.logger.Error("Greedy choice failed", p.logger.Field().String("note", ev.Note), p.logger.Field().Error("error", err))
		return Step{}, err
	}
	start, err := p.hand.Position(d.Finger)
	if err != nil {
		return Step{}, err
	}
	p.logger.Debug("Finger chosen",
		p.logger.Field().Int("index", i),
		p.logger.Field().String("note", ev.Note),
		p.logger.Field().Int("key", key),
		p.logger.Field().Int("finger", d.Finger),
		p.logger.Field().Float64("distance", d.Distance))

	if p.actuator != nil {
		cmd := contracts.MoveCommand{Finger: d.Finger, Key: key, Duration: ev.Duration.Seconds()}
		if err := p.actuator.Move(cmd); err != nil {
			p.logger.Warn("Actuator move failed", p.logger.Field().Int("finger", d.Finger), p.logger.Field().Error("error", err))
		}
	}

	m, err := p.animator.AnimateMove(d.Finger, start, float64(key), key, ev.Note, ev.Duration)
	if err != nil {
		return Step{}, err
	}

	p.sound(ev)
	p.clock.Sleep(InterNotePause)

	return Step{Index: i, Note: ev.Note, Key: key, Decision: d, Move: m}, nil
}

// sound plays the note after the move has landed.
func (p *Player) sound(ev NoteEvent) {
	if sp, ok := p.tone.(contracts.SustainPlayer); ok {
		if err := sp.NoteOn(ev.Note, contracts.DefaultVelocity); err != nil {
			p.logger.Warn("Note on failed", p.logger.Field().String("note", ev.Note), p.logger.Field().Error("error", err))
		}
		p.clock.Sleep(time.Duration(float64(ev.Duration) * SustainFraction))
		if err := sp.NoteOff(ev.Note); err != nil {
			p.logger.Warn("Note off failed", p.logger.Field().String("note", ev.Note), p.logger.Field().Error("error", err))
		}
		return
	}
	if err := p.tone.Play(ev.Note, ev.Duration); err != nil {
		p.logger.Warn("Tone failed", p.logger.Field().String("note", ev.Note), p.logger.Field().Error("error", err))
	}
	p.clock.Sleep(ev.Duration)
}
