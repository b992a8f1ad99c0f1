package hand

// Stats accumulates distance and finger usage between resets.
type Stats struct {
	total float64
	usage [FingerCount]int
}

// TotalDistance is the sum of |start-end| over every committed move.
func (s *Stats) TotalDistance() float64 {
	return s.total
}

// Usage returns how many notes finger has played. Out-of-range fingers report 0.
func (s *Stats) Usage(finger int) int {
	if finger < 0 || finger >= FingerCount {
		return 0
	}
	return s.usage[finger]
}

// Usages returns the per-finger usage counts.
func (s *Stats) Usages() [FingerCount]int {
	return s.usage
}

// MostUsedFinger returns the finger with the highest usage, the lowest index among ties.
// ok is false when no note has been played since the last reset.
func (s *Stats) MostUsedFinger() (finger int, ok bool) {
	best := 0
	for i := 1; i < FingerCount; i++ {
		if s.usage[i] > s.usage[best] {
			best = i
		}
	}
	if s.usage[best] == 0 {
		return 0, false
	}
	return best, true
}

// Reset zeroes the distance and all usage counts.
func (s *Stats) Reset() {
	*s = Stats{}
}

func (s *Stats) record(finger int, distance float64) {
	s.total += distance
	s.usage[finger]++
}
