package robot

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/hand"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/logger"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingPlayer struct {
	plays  int
	closes int
}

func (c *countingPlayer) Play(string, time.Duration) error {
	c.plays++
	return nil
}

func (c *countingPlayer) Close() error {
	c.closes++
	return nil
}

type countingActuator struct {
	moves  int
	closes int
}

func (c *countingActuator) Move(contracts.MoveCommand) error {
	c.moves++
	return nil
}

func (c *countingActuator) Close() error {
	c.closes++
	return nil
}

func newTestSession(t *testing.T, opts ...contracts.Option) *Session {
	t.Helper()
	base := []contracts.Option{
		contracts.WithLogger(logger.NewNopLogger()),
		contracts.WithClock(hand.NewManualClock()),
		contracts.WithBackend(contracts.SilentBackend),
	}
	s, err := NewSession(append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestPlayMelodyReport(t *testing.T) {
	s := newTestSession(t)
	assert.Equal(t, contracts.SilentBackend, s.Backend())

	r, err := s.PlayMelody()
	require.NoError(t, err)
	_, err = uuid.Parse(r.RunID)
	assert.NoError(t, err)
	assert.Len(t, r.Steps, 9)
	assert.Equal(t, 10.0, r.TotalDistance)
	assert.Equal(t, [hand.FingerCount]int{1, 0, 2, 1, 5}, r.Usage)
	assert.Equal(t, 4, r.MostUsed)
	assert.Equal(t, []float64{0, 1, 3, 5, 7}, r.Positions)

	st := s.State()
	assert.False(t, st.Playing)
	assert.Equal(t, 10.0, st.TotalDistance)
	assert.Equal(t, 4, st.MostUsed)
	assert.Equal(t, NoFinger, st.Finger)
}

func TestSecondPlayStartsFromLastPositions(t *testing.T) {
	s := newTestSession(t)
	first, err := s.PlayMelody()
	require.NoError(t, err)
	second, err := s.PlayMelody()
	require.NoError(t, err)

	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, 3.0, second.TotalDistance, "statistics restart for every run")
	assert.Equal(t, [hand.FingerCount]int{1, 1, 1, 3, 3}, second.Usage)
	assert.Equal(t, 3, second.MostUsed, "ties go to the lowest finger")
	assert.Equal(t, []float64{0, 2, 3, 5, 7}, second.Positions)
}

func TestResetRestoresHomePositions(t *testing.T) {
	s := newTestSession(t)
	_, err := s.PlayMelody()
	require.NoError(t, err)

	require.NoError(t, s.Reset())
	st := s.State()
	assert.Equal(t, []float64{0, 1, 2, 3, 4}, st.Positions)
	assert.Equal(t, 0.0, st.TotalDistance)
	assert.Equal(t, NoFinger, st.MostUsed)

	r, err := s.PlayMelody()
	require.NoError(t, err)
	assert.Equal(t, 10.0, r.TotalDistance)
}

func TestTriggersWhilePlayingAreBusy(t *testing.T) {
	var s *Session
	var frames int
	var playErr, resetErr error
	var during State
	sink := contracts.FrameSinkFunc(func(f contracts.Frame) {
		frames++
		if frames == 1 {
			_, playErr = s.PlayMelody()
			resetErr = s.Reset()
			during = s.State()
		}
	})
	s = newTestSession(t, contracts.WithFrameSink(sink))

	_, err := s.PlayMelody()
	require.NoError(t, err)
	assert.ErrorIs(t, playErr, ErrBusy)
	assert.ErrorIs(t, resetErr, ErrBusy)
	assert.True(t, during.Playing)
	assert.Equal(t, "E5", during.Note)
	assert.Equal(t, 4, during.Finger)
	assert.Greater(t, frames, 9)
}

func TestCloseReleasesToneAndActuatorOnce(t *testing.T) {
	tp := &countingPlayer{}
	act := &countingActuator{}
	s, err := NewSession(
		contracts.WithLogger(logger.NewNopLogger()),
		contracts.WithClock(hand.NewManualClock()),
		contracts.WithTonePlayer(tp),
		contracts.WithActuator(act),
	)
	require.NoError(t, err)
	assert.Equal(t, CustomBackend, s.Backend())

	_, err = s.PlayMelody()
	require.NoError(t, err)
	assert.Equal(t, 9, tp.plays)
	assert.Equal(t, 9, act.moves)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Equal(t, 1, tp.closes)
	assert.Equal(t, 1, act.closes)
}

func TestInvalidOptions(t *testing.T) {
	_, err := NewSession(
		contracts.WithLogger(logger.NewNopLogger()),
		contracts.WithBackend("theremin"),
	)
	assert.ErrorIs(t, err, ErrUnknownBackend)

	_, err = NewSession(
		contracts.WithLogger(logger.NewNopLogger()),
		contracts.WithBackend(contracts.SilentBackend),
		contracts.WithKeyboardWidth(5),
	)
	assert.Error(t, err)
}

func TestAutoBackendWithoutAudioDeviceIsSilent(t *testing.T) {
	s := newTestSession(t, contracts.WithBackend(contracts.AutoBackend))
	assert.Equal(t, contracts.SilentBackend, s.Backend())
}

func TestMIDIBackendOnUnsupportedOS(t *testing.T) {
	if runtime.GOOS == "darwin" || runtime.GOOS == "windows" {
		t.Skip("platform has a MIDI output implementation")
	}
	_, err := NewSession(
		contracts.WithLogger(logger.NewNopLogger()),
		contracts.WithBackend(contracts.MIDIBackend),
	)
	assert.ErrorIs(t, err, ErrUnsupportedOS)
}

func TestExportBackendsWriteOnClose(t *testing.T) {
	dir := t.TempDir()
	for _, tc := range []struct {
		backend contracts.ToneBackend
		file    string
	}{
		{contracts.WAVBackend, "fur-elise.wav"},
		{contracts.SMFBackend, "fur-elise.mid"},
	} {
		t.Run(string(tc.backend), func(t *testing.T) {
			path := filepath.Join(dir, tc.file)
			s, err := NewSession(
				contracts.WithLogger(logger.NewNopLogger()),
				contracts.WithClock(hand.NewManualClock()),
				contracts.WithBackend(tc.backend),
				contracts.WithOutput(path),
			)
			require.NoError(t, err)
			_, err = s.PlayMelody()
			require.NoError(t, err)
			require.NoError(t, s.Close())

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Greater(t, info.Size(), int64(0))
		})
	}
}
