// Package tui is the terminal presentation of the robot hand.
package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/keyboard"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/robot"
)

// Session is the part of robot.Session the model drives.
type Session interface {
	PlayMelody() (robot.Report, error)
	Reset() error
	State() robot.State
}

type frameMsg contracts.Frame

type playedMsg struct {
	report robot.Report
	err    error
}

type resetMsg struct{ err error }

// Sink forwards animation frames to a running program. Frames rendered before Attach are
// dropped.
type Sink struct {
	mu      sync.Mutex
	program *tea.Program
}

// Attach binds the sink to p.
func (s *Sink) Attach(p *tea.Program) {
	s.mu.Lock()
	s.program = p
	s.mu.Unlock()
}

// Render implements contracts.FrameSink.
func (s *Sink) Render(f contracts.Frame) {
	s.mu.Lock()
	p := s.program
	s.mu.Unlock()
	if p != nil {
		p.Send(frameMsg(f))
	}
}

// Model is the bubbletea model. Keys are ignored while a melody plays.
type Model struct {
	session Session
	layout  keyboard.Layout
	state   robot.State
	report  *robot.Report
	err     error
}

// NewModel creates a model showing the session's current state.
func NewModel(session Session) Model {
	return Model{session: session, layout: Layout(), state: session.State()}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.String() == "q" {
			return m, tea.Quit
		}
		if m.state.Playing {
			return m, nil
		}
		switch msg.String() {
		case " ":
			m.state.Playing = true
			m.err = nil
			return m, m.play()
		case "r":
			m.err = nil
			return m, m.reset()
		}
	case frameMsg:
		// Statistics come from the session; the move itself from the frame.
		st := m.session.State()
		st.Playing = true
		st.Note = msg.Note
		st.Target = msg.Target
		st.Finger = msg.Finger
		st.Positions = msg.Positions
		st.Remaining = msg.Remaining
		st.KeyLit = msg.KeyLit
		m.state = st
	case playedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.report = &msg.report
		}
		m.state = m.session.State()
	case resetMsg:
		m.err = msg.err
		m.report = nil
		m.state = m.session.State()
	}
	return m, nil
}

func (m Model) play() tea.Cmd {
	s := m.session
	return func() tea.Msg {
		r, err := s.PlayMelody()
		return playedMsg{report: r, err: err}
	}
}

func (m Model) reset() tea.Cmd {
	s := m.session
	return func() tea.Msg {
		return resetMsg{err: s.Reset()}
	}
}
