// Package robot is the entry point of the greedy piano robot: a session owns one hand,
// one tone player chosen at construction and the built-in melody, and serializes the
// "play melody" and "reset" triggers.
package robot

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/hand"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/keyboard"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/melody"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
	"github.com/google/uuid"
)

// ErrBusy is returned when a trigger arrives while another one is running.
var ErrBusy = errors.New("session busy")

// NoFinger marks an unset finger in State and Report.
const NoFinger = -1

// Report summarizes one melody run.
type Report struct {
	RunID         string                `json:"run_id"`
	Backend       contracts.ToneBackend `json:"backend"`
	Steps         []melody.Step         `json:"steps"`
	TotalDistance float64               `json:"total_distance"`
	Usage         [hand.FingerCount]int `json:"usage"`
	MostUsed      int                   `json:"most_used"` // NoFinger when nothing was played.
	Positions     []float64             `json:"positions"`
}

// State is a snapshot of the session for presentation layers. While a melody plays it
// reflects the latest rendered frame.
type State struct {
	Playing       bool                  `json:"playing"`
	Backend       contracts.ToneBackend `json:"backend"`
	Note          string                `json:"note,omitempty"`
	Target        int                   `json:"target"`
	Finger        int                   `json:"finger"`
	Positions     []float64             `json:"positions"`
	Remaining     float64               `json:"remaining"`
	KeyLit        bool                  `json:"key_lit"`
	TotalDistance float64               `json:"total_distance"`
	Usage         [hand.FingerCount]int `json:"usage"`
	MostUsed      int                   `json:"most_used"`
}

// Session drives the hand through the built-in melody.
type Session struct {
	opts     contracts.SessionOptions
	logger   contracts.Logger
	hand     *hand.Hand
	layout   keyboard.Layout
	player   *melody.Player
	tone     contracts.TonePlayer
	backend  contracts.ToneBackend
	running  atomic.Bool
	mu       sync.Mutex // Guards state.
	state    State
	closeErr error
	closed   sync.Once
}

// NewSession creates a new session with the specified options.
// It applies default options and selects the tone player.
//
// opts ...contracts.Option: A variadic list of option functions to customize the session.
//
// Returns:
//   - *Session: A ready session with the hand at rest.
//   - error: An error if an option is invalid or an explicitly requested backend is unavailable.
func NewSession(opts ...contracts.Option) (*Session, error) {
	options, err := applyDefaultOptions(opts...)
	if err != nil {
		return nil, err
	}

	tp, backend, err := newTonePlayer(&options)
	if err != nil {
		return nil, err
	}

	s := &Session{
		opts:    options,
		logger:  options.Logger,
		hand:    hand.NewHand(keyboard.KeyCount),
		layout:  keyboard.NewLayout(options.KeyboardWidth),
		tone:    tp,
		backend: backend,
	}
	animator := hand.NewAnimator(s.hand, options.Clock, contracts.FrameSinkFunc(s.render), options.Logger)
	s.player = melody.NewPlayer(s.hand, animator, s.layout, tp, options.Actuator, options.Clock, options.Logger)
	s.refresh()

	s.logger.Info("Session ready", s.logger.Field().String("backend", string(backend)))
	return s, nil
}

// Backend reports the tone backend the session selected.
func (s *Session) Backend() contracts.ToneBackend { return s.backend }

// Layout is the position mapper used by the session.
func (s *Session) Layout() keyboard.Layout { return s.layout }

// Melody returns the built-in melody.
func (s *Session) Melody() []melody.NoteEvent { return melody.Builtin() }

// PlayMelody resets the statistics and plays the built-in melody from the current finger
// positions. It returns ErrBusy if another trigger is running.
func (s *Session) PlayMelody() (Report, error) {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("Play ignored; session busy")
		return Report{}, ErrBusy
	}
	defer s.running.Store(false)

	runID := uuid.NewString()
	log := s.logger
	log.Info("Melody started", log.Field().String("run_id", runID))

	s.hand.ResetStats()
	s.setPlaying(true)
	steps, err := s.player.Play(melody.Builtin())
	s.setPlaying(false)
	if err != nil {
		log.Error("Melody failed", log.Field().String("run_id", runID), log.Field().Error("error", err))
		return Report{RunID: runID, Backend: s.backend, Steps: steps}, err
	}

	st := s.hand.Stats()
	r := Report{
		RunID:         runID,
		Backend:       s.backend,
		Steps:         steps,
		TotalDistance: st.TotalDistance(),
		Usage:         st.Usages(),
		MostUsed:      mostUsed(st),
		Positions:     s.hand.Positions(),
	}
	log.Info("Melody finished",
		log.Field().String("run_id", runID),
		log.Field().Int("notes", len(steps)),
		log.Field().Float64("total_distance", r.TotalDistance),
		log.Field().Int("most_used", r.MostUsed))
	return r, nil
}

// Reset puts every finger back on its home key and clears the statistics. It returns
// ErrBusy while a melody is playing.
func (s *Session) Reset() error {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("Reset ignored; session busy")
		return ErrBusy
	}
	defer s.running.Store(false)

	s.hand.Reset()
	s.refresh()
	s.logger.Info("Hand reset")
	return nil
}

// State returns the latest snapshot.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Positions = append([]float64(nil), s.state.Positions...)
	return st
}

// Close releases the tone player and the actuator. It is safe to call more than once.
func (s *Session) Close() error {
	s.closed.Do(func() {
		var errs []error
		if err := s.tone.Close(); err != nil {
			s.logger.Error("Failed to close tone player", s.logger.Field().Error("error", err))
			errs = append(errs, err)
		}
		if s.opts.Actuator != nil {
			if err := s.opts.Actuator.Close(); err != nil {
				s.logger.Error("Failed to close actuator", s.logger.Field().Error("error", err))
				errs = append(errs, err)
			}
		}
		s.closeErr = errors.Join(errs...)
		s.logger.Info("Session closed")
	})
	return s.closeErr
}

// render runs on the playing goroutine, which is the only writer of the hand, so reading
// the statistics here is safe.
func (s *Session) render(f contracts.Frame) {
	st := s.hand.Stats()
	s.mu.Lock()
	s.state.Note = f.Note
	s.state.Target = f.Target
	s.state.Finger = f.Finger
	s.state.Positions = f.Positions
	s.state.Remaining = f.Remaining
	s.state.KeyLit = f.KeyLit
	s.state.TotalDistance = st.TotalDistance()
	s.state.Usage = st.Usages()
	s.state.MostUsed = mostUsed(st)
	s.mu.Unlock()

	if s.opts.FrameSink != nil {
		s.opts.FrameSink.Render(f)
	}
}

func (s *Session) setPlaying(playing bool) {
	if !playing {
		s.refresh()
		return
	}
	s.mu.Lock()
	s.state.Playing = true
	s.mu.Unlock()
}

// refresh rebuilds the idle snapshot from the hand.
func (s *Session) refresh() {
	st := s.hand.Stats()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = State{
		Backend:       s.backend,
		Target:        NoFinger,
		Finger:        NoFinger,
		Positions:     s.hand.Positions(),
		TotalDistance: st.TotalDistance(),
		Usage:         st.Usages(),
		MostUsed:      mostUsed(st),
	}
}

func mostUsed(st *hand.Stats) int {
	if f, ok := st.MostUsedFinger(); ok {
		return f
	}
	return NoFinger
}
