// Package hand holds the robot hand's finger state and the greedy rule that decides which
// finger plays each note.
package hand

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvariantViolation is returned when the finger state is malformed. It signals a
// programming error, never an expected runtime condition.
var ErrInvariantViolation = errors.New("hand invariant violation")

// FingerCount is the number of fingers on the hand.
const FingerCount = 5

// Decision is the greedy choice for one note.
type Decision struct {
	Finger   int     `json:"finger"`   // Chosen finger, 0-based.
	Distance float64 `json:"distance"` // |position of Finger - target|.
}

// Choose returns the finger nearest to target. Ties go to the lowest index.
func Choose(positions []float64, target int) (Decision, error) {
	if len(positions) == 0 {
		return Decision{}, fmt.Errorf("%w: no fingers to choose from", ErrInvariantViolation)
	}
	best := Decision{Finger: 0, Distance: math.Abs(positions[0] - float64(target))}
	for i := 1; i < len(positions); i++ {
		d := math.Abs(positions[i] - float64(target))
		if d < best.Distance {
			best = Decision{Finger: i, Distance: d}
		}
	}
	return best, nil
}
