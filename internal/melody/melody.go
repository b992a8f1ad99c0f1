// Package melody sequences note events through the greedy finger choice, the finger
// animation and the tone player.
package melody

import "time"

// NoteEvent is one note of a melody.
type NoteEvent struct {
	Note     string        `json:"note"`
	Duration time.Duration `json:"duration"`
}

// FurElise is the simplified opening of "Für Elise" the demo plays.
var FurElise = []NoteEvent{
	{"E5", 350 * time.Millisecond},
	{"D#5", 350 * time.Millisecond},
	{"E5", 350 * time.Millisecond},
	{"D#5", 350 * time.Millisecond},
	{"E5", 350 * time.Millisecond},
	{"B4", 450 * time.Millisecond},
	{"D5", 350 * time.Millisecond},
	{"C5", 350 * time.Millisecond},
	{"A4", 700 * time.Millisecond},
}

// Builtin returns a copy of the built-in melody.
func Builtin() []NoteEvent {
	out := make([]NoteEvent, len(FurElise))
	copy(out, FurElise)
	return out
}
