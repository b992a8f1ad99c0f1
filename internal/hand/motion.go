package hand

import (
	"fmt"
	"math"
	"time"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
	"golang.org/x/exp/constraints"
)

const (
	// MinSteps keeps short moves from looking jerky.
	MinSteps = 12
	// StepsPerSecond scales the step count with the move duration.
	StepsPerSecond = 40
	// KeyLitProgress is the progress after which the target key is drawn pressed.
	KeyLitProgress = 0.6
)

// Ease is the cosine ease-in-out curve: zero velocity at both ends, fastest at t = 0.5.
func Ease(t float64) float64 {
	t = clamp(t, 0, 1)
	return -0.5 * (math.Cos(math.Pi*t) - 1)
}

// Interpolate returns the eased position at progress t between start and end.
func Interpolate(start, end, t float64) float64 {
	return start + (end-start)*Ease(t)
}

// StepCount returns the number of animation steps for a move lasting d.
func StepCount(d time.Duration) int {
	n := int(StepsPerSecond * d.Seconds())
	if n < MinSteps {
		return MinSteps
	}
	return n
}

// Trajectory returns the steps+1 positions of a move, first and last exactly start and end.
func Trajectory(start, end float64, steps int) []float64 {
	if steps < 1 {
		steps = 1
	}
	out := make([]float64, steps+1)
	for s := 0; s <= steps; s++ {
		out[s] = Interpolate(start, end, float64(s)/float64(steps))
	}
	out[steps] = end
	return out
}

// Move describes a committed finger move.
type Move struct {
	Finger   int     `json:"finger"`
	From     float64 `json:"from"`
	To       float64 `json:"to"`
	Distance float64 `json:"distance"`
	Steps    int     `json:"steps"`
}

// Animator moves one finger at a time, rendering each step and committing the result to
// the hand. It is the only writer of the hand's positions and statistics.
type Animator struct {
	hand   *Hand
	clock  contracts.Clock
	sink   contracts.FrameSink
	logger contracts.Logger
}

// NewAnimator creates an animator. sink may be nil for a headless run.
func NewAnimator(h *Hand, clock contracts.Clock, sink contracts.FrameSink, logger contracts.Logger) *Animator {
	return &Animator{hand: h, clock: clock, sink: sink, logger: logger}
}

// AnimateMove moves finger from start to end over duration, sleeping on the clock between
// frames, then commits end as the finger's resting position.
func (a *Animator) AnimateMove(finger int, start, end float64, target int, note string, duration time.Duration) (Move, error) {
	if finger < 0 || finger >= len(a.hand.positions) {
		return Move{}, fmt.Errorf("%w: finger %d of %d", ErrInvariantViolation, finger, len(a.hand.positions))
	}
	if end < 0 || end > float64(a.hand.keyCount-1) {
		return Move{}, fmt.Errorf("%w: end position %v outside [0,%d]", ErrInvariantViolation, end, a.hand.keyCount-1)
	}

	steps := StepCount(duration)
	delay := duration / time.Duration(steps)
	path := Trajectory(start, end, steps)
	for s, current := range path {
		t := float64(s) / float64(steps)
		if a.sink != nil {
			positions := a.hand.Positions()
			positions[finger] = current
			a.sink.Render(contracts.Frame{
				Note:      note,
				Target:    target,
				Finger:    finger,
				Positions: positions,
				Progress:  t,
				Remaining: math.Abs(current - end),
				KeyLit:    t > KeyLitProgress,
			})
		}
		a.clock.Sleep(delay)
	}

	a.hand.commit(finger, start, end)
	m := Move{Finger: finger, From: start, To: end, Distance: math.Abs(start - end), Steps: steps}
	a.logger.Debug("Move committed",
		a.logger.Field().Int("finger", finger),
		a.logger.Field().Float64("from", start),
		a.logger.Field().Float64("to", end),
		a.logger.Field().Int("steps", steps),
		a.logger.Field().Float64("total_distance", a.hand.stats.TotalDistance()))
	return m, nil
}

func clamp[T constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
