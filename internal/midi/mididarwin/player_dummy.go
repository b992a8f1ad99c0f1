//go:build !darwin
// +build !darwin

package mididarwin

import (
	"errors"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
)

// ErrMIDIUnavailable is returned by every call on a platform without CoreMIDI.
var ErrMIDIUnavailable = errors.New("MIDI functionality is not available on this platform")

// NewMIDIPlayer reports that CoreMIDI output is not available outside macOS.
func NewMIDIPlayer(_ *contracts.MIDIConfig, logger contracts.Logger) (contracts.MIDIPlayer, error) {
	logger.Warn("CoreMIDI player requested on non-macOS system")
	return nil, ErrMIDIUnavailable
}
