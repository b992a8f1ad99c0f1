package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/hand"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/logger"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/robot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ contracts.FrameSink = (*Sink)(nil)

func newSession(t *testing.T) *robot.Session {
	t.Helper()
	s, err := robot.NewSession(
		contracts.WithLogger(logger.NewNopLogger()),
		contracts.WithClock(hand.NewManualClock()),
		contracts.WithBackend(contracts.SilentBackend),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestHUD(t *testing.T) {
	idle := HUD(robot.State{Finger: robot.NoFinger, MostUsed: robot.NoFinger})
	assert.Contains(t, idle, "Total distance: 0.00 keys")
	assert.Contains(t, idle, "Most used finger: -")

	moving := HUD(robot.State{Note: "E5", Finger: 4, Remaining: 1.5, TotalDistance: 10, MostUsed: 4})
	assert.Contains(t, moving, "Note: E5")
	assert.Contains(t, moving, "Finger: 5")
	assert.Contains(t, moving, "Distance: 1.50")
	assert.Contains(t, moving, "Total distance: 10.00 keys")
	assert.Contains(t, moving, "Most used finger: 5")
}

func TestHandRowPlacesFingers(t *testing.T) {
	row := HandRow(Layout(), []float64{0, 1, 2, 3, 4}, robot.NoFinger)
	for _, f := range []string{"1", "2", "3", "4", "5"} {
		assert.Contains(t, row, f)
	}
	assert.Less(t, strings.Index(row, "1"), strings.Index(row, "5"))
}

func TestKeyboardRowLabels(t *testing.T) {
	row := KeyboardRow(-1)
	assert.Contains(t, row, "A4")
	assert.Contains(t, row, "G#5")
}

func TestSpacePlaysThenReports(t *testing.T) {
	s := newSession(t)
	m := NewModel(s)

	next, cmd := m.Update(key(" "))
	m = next.(Model)
	require.NotNil(t, cmd)
	assert.True(t, m.state.Playing)

	_, ignored := m.Update(key(" "))
	assert.Nil(t, ignored, "keys are ignored while playing")

	next, _ = m.Update(cmd())
	m = next.(Model)
	require.NoError(t, m.err)
	require.NotNil(t, m.report)
	assert.Equal(t, 10.0, m.report.TotalDistance)
	assert.False(t, m.state.Playing)
	assert.Contains(t, m.View(), "Most used finger: 5")
}

func TestResetKey(t *testing.T) {
	s := newSession(t)
	_, err := s.PlayMelody()
	require.NoError(t, err)

	m := NewModel(s)
	next, cmd := m.Update(key("r"))
	require.NotNil(t, cmd)
	next, _ = next.(Model).Update(cmd())
	m = next.(Model)
	assert.Equal(t, []float64{0, 1, 2, 3, 4}, m.state.Positions)
	assert.Equal(t, robot.NoFinger, m.state.MostUsed)
}

func TestFrameUpdatesMove(t *testing.T) {
	m := NewModel(newSession(t))
	next, _ := m.Update(frameMsg{Note: "E5", Target: 7, Finger: 4, Positions: []float64{0, 1, 2, 3, 5.5}, Remaining: 1.5, KeyLit: false})
	m = next.(Model)
	assert.True(t, m.state.Playing)
	assert.Equal(t, "E5", m.state.Note)
	assert.Equal(t, 5.5, m.state.Positions[4])
}

func TestQuit(t *testing.T) {
	_, cmd := NewModel(newSession(t)).Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
