package contracts

// Frame is one rendered step of a finger move.
type Frame struct {
	Note      string    // Note being reached for.
	Target    int       // Key index of the note.
	Finger    int       // Finger being moved (0-based).
	Positions []float64 // All five finger positions; only Finger is fractional.
	Progress  float64   // Move progress t in [0,1] before easing.
	Remaining float64   // |current position - target|.
	KeyLit    bool      // True once the finger is close enough to show the key pressed.
}

// FrameSink renders frames. The presentation layer implements it.
type FrameSink interface {
	Render(frame Frame)
}

// FrameSinkFunc adapts a function to a FrameSink.
type FrameSinkFunc func(Frame)

// Render calls f(frame).
func (f FrameSinkFunc) Render(frame Frame) { f(frame) }

// MoveCommand is sent to the hand hardware when a finger is dispatched to a key.
type MoveCommand struct {
	Finger   int
	Key      int
	Duration float64 // Seconds.
}

// Actuator drives a physical hand.
type Actuator interface {
	Move(cmd MoveCommand) error
	Close() error
}
