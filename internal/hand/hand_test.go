package hand

import (
	"testing"
	"time"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHandStartsOnFirstKeys(t *testing.T) {
	h := NewHand(12)
	assert.Equal(t, []float64{0, 1, 2, 3, 4}, h.Positions())
	assert.Equal(t, 0.0, h.Stats().TotalDistance())
	_, ok := h.Stats().MostUsedFinger()
	assert.False(t, ok)
	require.NoError(t, h.Validate())
}

func TestPositionsReturnsCopy(t *testing.T) {
	h := NewHand(12)
	p := h.Positions()
	p[0] = 9
	assert.Equal(t, 0.0, h.positions[0])
}

func TestResetLaw(t *testing.T) {
	h := NewHand(12)
	a := NewAnimator(h, NewManualClock(), nil, logger.NewNopLogger())
	_, err := a.AnimateMove(4, 4, 11, 11, "G#5", 350*time.Millisecond)
	require.NoError(t, err)
	_, err = a.AnimateMove(0, 0, 6, 6, "D#5", 350*time.Millisecond)
	require.NoError(t, err)
	require.NotZero(t, h.Stats().TotalDistance())

	h.Reset()

	assert.Equal(t, []float64{0, 1, 2, 3, 4}, h.Positions())
	assert.Equal(t, [FingerCount]int{}, h.Stats().Usages())
	assert.Equal(t, 0.0, h.Stats().TotalDistance())
}

func TestResetStatsKeepsPositions(t *testing.T) {
	h := NewHand(12)
	a := NewAnimator(h, NewManualClock(), nil, logger.NewNopLogger())
	_, err := a.AnimateMove(2, 2, 7, 7, "E5", 350*time.Millisecond)
	require.NoError(t, err)

	h.ResetStats()

	assert.Equal(t, []float64{0, 1, 7, 3, 4}, h.Positions())
	assert.Equal(t, 0.0, h.Stats().TotalDistance())
	assert.Equal(t, 0, h.Stats().Usage(2))
}

func TestValidateDetectsMalformedState(t *testing.T) {
	cases := map[string][]float64{
		"too few fingers":  {0, 1, 2},
		"too many fingers": {0, 1, 2, 3, 4, 5},
		"below keyboard":   {-1, 1, 2, 3, 4},
		"above keyboard":   {0, 1, 2, 3, 12},
	}
	for name, positions := range cases {
		t.Run(name, func(t *testing.T) {
			h := NewHand(12)
			h.positions = positions
			assert.ErrorIs(t, h.Validate(), ErrInvariantViolation)
			_, err := h.Choose(3)
			assert.ErrorIs(t, err, ErrInvariantViolation)
		})
	}
}

func TestChooseRejectsTargetOffKeyboard(t *testing.T) {
	h := NewHand(12)
	_, err := h.Choose(12)
	assert.ErrorIs(t, err, ErrInvariantViolation)
	_, err = h.Choose(-1)
	assert.ErrorIs(t, err, ErrInvariantViolation)
}

func TestPositionOutOfRange(t *testing.T) {
	h := NewHand(12)
	_, err := h.Position(5)
	assert.ErrorIs(t, err, ErrInvariantViolation)
	p, err := h.Position(3)
	require.NoError(t, err)
	assert.Equal(t, 3.0, p)
}
