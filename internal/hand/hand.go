package hand

import (
	"fmt"
	"math"
)

// Hand is the mutable state of one session: five resting positions and the statistics.
// It is written only by Animator.commit.
type Hand struct {
	keyCount  int
	positions []float64
	stats     Stats
}

// NewHand creates a hand over a keyboard of keyCount keys with finger i resting on key i.
func NewHand(keyCount int) *Hand {
	h := &Hand{keyCount: keyCount, positions: make([]float64, FingerCount)}
	h.Reset()
	return h
}

// KeyCount is the size of the keyboard the hand plays on.
func (h *Hand) KeyCount() int { return h.keyCount }

// Positions returns a copy of the resting positions.
func (h *Hand) Positions() []float64 {
	out := make([]float64, len(h.positions))
	copy(out, h.positions)
	return out
}

// Position returns the resting position of finger.
func (h *Hand) Position(finger int) (float64, error) {
	if finger < 0 || finger >= len(h.positions) {
		return 0, fmt.Errorf("%w: finger %d of %d", ErrInvariantViolation, finger, len(h.positions))
	}
	return h.positions[finger], nil
}

// Stats exposes the running statistics.
func (h *Hand) Stats() *Stats { return &h.stats }

// Validate checks the finger count and that every finger rests on the keyboard.
func (h *Hand) Validate() error {
	if len(h.positions) != FingerCount {
		return fmt.Errorf("%w: %d fingers, want %d", ErrInvariantViolation, len(h.positions), FingerCount)
	}
	for i, p := range h.positions {
		if math.IsNaN(p) || p < 0 || p > float64(h.keyCount-1) {
			return fmt.Errorf("%w: finger %d at %v outside [0,%d]", ErrInvariantViolation, i, p, h.keyCount-1)
		}
	}
	return nil
}

// Choose applies the greedy rule against the current resting positions.
func (h *Hand) Choose(target int) (Decision, error) {
	if err := h.Validate(); err != nil {
		return Decision{}, err
	}
	if target < 0 || target >= h.keyCount {
		return Decision{}, fmt.Errorf("%w: target key %d outside [0,%d]", ErrInvariantViolation, target, h.keyCount-1)
	}
	return Choose(h.positions, target)
}

// Reset puts finger i back on key i and clears the statistics.
func (h *Hand) Reset() {
	h.positions = h.positions[:0]
	for i := 0; i < FingerCount; i++ {
		h.positions = append(h.positions, float64(i))
	}
	h.stats.Reset()
}

// ResetStats clears the statistics and leaves the fingers where they are.
func (h *Hand) ResetStats() {
	h.stats.Reset()
}

func (h *Hand) commit(finger int, start, end float64) {
	h.positions[finger] = end
	h.stats.record(finger, math.Abs(start-end))
}
