//go:build !darwin
// +build !darwin

package mididarwin

import (
	"testing"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/logger"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
	"github.com/stretchr/testify/assert"
)

func TestDummyPlayerUnavailable(t *testing.T) {
	p, err := NewMIDIPlayer(&contracts.MIDIConfig{ClientName: "test"}, logger.NewNopLogger())
	assert.Nil(t, p)
	assert.ErrorIs(t, err, ErrMIDIUnavailable)
}
