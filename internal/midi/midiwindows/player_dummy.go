//go:build !windows
// +build !windows

package midiwindows

import (
	"errors"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
)

// ErrMIDIUnavailable is returned on platforms without winmm.
var ErrMIDIUnavailable = errors.New("MIDI functionality is not available on this platform")

// NewMIDIPlayer logs a warning and reports that winmm output is unavailable on this platform.
func NewMIDIPlayer(_ *contracts.MIDIConfig, logger contracts.Logger) (contracts.MIDIPlayer, error) {
	logger.Warn("winmm MIDI player requested on non-Windows system")
	return nil, ErrMIDIUnavailable
}
