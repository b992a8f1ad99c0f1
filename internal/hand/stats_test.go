package hand

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMostUsedFinger(t *testing.T) {
	var s Stats
	_, ok := s.MostUsedFinger()
	assert.False(t, ok, "fresh stats have no most used finger")

	s.record(3, 2)
	s.record(1, 1)
	s.record(3, 0)
	f, ok := s.MostUsedFinger()
	assert.True(t, ok)
	assert.Equal(t, 3, f)
	assert.Equal(t, 3.0, s.TotalDistance())
}

func TestMostUsedFingerTieIsLowestIndex(t *testing.T) {
	var s Stats
	s.record(4, 1)
	s.record(2, 1)
	f, ok := s.MostUsedFinger()
	assert.True(t, ok)
	assert.Equal(t, 2, f)
}

func TestUsageOutOfRange(t *testing.T) {
	var s Stats
	s.record(0, 1)
	assert.Equal(t, 0, s.Usage(-1))
	assert.Equal(t, 0, s.Usage(FingerCount))
	assert.Equal(t, 1, s.Usage(0))
}

func TestStatsReset(t *testing.T) {
	var s Stats
	s.record(0, 5)
	s.Reset()
	assert.Equal(t, 0.0, s.TotalDistance())
	assert.Equal(t, [FingerCount]int{}, s.Usages())
}
