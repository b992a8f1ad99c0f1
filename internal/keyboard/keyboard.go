// Package keyboard defines the one-octave chromatic keyboard the hand plays on and maps
// key indices to screen positions.
package keyboard

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidNote is returned for a note name outside the keyboard's alphabet.
var ErrInvalidNote = errors.New("invalid note")

// NoteOrder lists the keys from left to right.
var NoteOrder = [...]string{
	"A4", "A#4", "B4", "C5", "C#5", "D5", "D#5", "E5", "F5", "F#5", "G5", "G#5",
}

// KeyCount is the number of keys on the keyboard.
const KeyCount = len(NoteOrder)

// baseMIDI is the MIDI number of NoteOrder[0].
const baseMIDI = 69

var keyIndex = func() map[string]int {
	m := make(map[string]int, KeyCount)
	for i, n := range NoteOrder {
		m[n] = i
	}
	return m
}()

// KeyIndex returns the ordinal key of note.
func KeyIndex(note string) (int, error) {
	idx, ok := keyIndex[note]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNote, note)
	}
	return idx, nil
}

// NoteAt returns the note name of key index idx.
func NoteAt(idx int) (string, error) {
	if idx < 0 || idx >= KeyCount {
		return "", fmt.Errorf("%w: key index %d", ErrInvalidNote, idx)
	}
	return NoteOrder[idx], nil
}

// MIDINumber returns the MIDI note number of note (A4 = 69).
func MIDINumber(note string) (uint8, error) {
	idx, err := KeyIndex(note)
	if err != nil {
		return 0, err
	}
	return uint8(baseMIDI + idx), nil
}

// Frequency returns the equal-tempered frequency of note in Hz.
func Frequency(note string) (float64, error) {
	m, err := MIDINumber(note)
	if err != nil {
		return 0, err
	}
	return 440.0 * math.Pow(2, (float64(m)-baseMIDI)/12.0), nil
}
