//go:build darwin
// +build darwin

package mididarwin

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/keyboard"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
	"github.com/youpy/go-coremidi"
	"gitlab.com/gomidi/midi/v2"
)

// Error definitions for MIDI output issues.
var (
	ErrNoMIDIDevices       = errors.New("no MIDI destinations found")
	ErrInvalidMIDIDevice   = errors.New("invalid MIDI destination")
	ErrCreateOutputPort    = errors.New("error creating output port")
	ErrMIDIPlayerClosed    = errors.New("MIDI player closed")
	ErrMIDIConnectionError = errors.New("error sending to MIDI destination")
)

const (
	channel     = 0
	allNotesOff = 123 // Channel mode controller.
)

// PlayerMid sends melody notes to a CoreMIDI destination on macOS.
type PlayerMid struct {
	logger      contracts.Logger
	client      coremidi.Client      // CoreMIDI client instance.
	outputPort  coremidi.OutputPort  // Port the packets are sent through.
	destination coremidi.Destination // Selected destination.
	mu          sync.Mutex           // Serializes sends and Close.
	closed      bool
}

// NewMIDIPlayer registers a CoreMIDI client and connects to the configured destination.
func NewMIDIPlayer(config *contracts.MIDIConfig, logger contracts.Logger) (contracts.MIDIPlayer, error) {
	client, err := coremidi.NewClient(config.ClientName)
	if err != nil {
		return nil, err
	}
	port, err := coremidi.NewOutputPort(client, "Output Port")
	if err != nil {
		logger.Error(ErrCreateOutputPort.Error())
		return nil, fmt.Errorf("%w: %v", ErrCreateOutputPort, err)
	}

	destinations, err := coremidi.AllDestinations()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI destinations: %w", err)
	}
	if len(destinations) == 0 {
		logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}
	if config.DeviceID < 0 || config.DeviceID >= len(destinations) {
		logger.Error(ErrInvalidMIDIDevice.Error(), logger.Field().Int("deviceID", config.DeviceID))
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidMIDIDevice, config.DeviceID, len(destinations))
	}

	dest := destinations[config.DeviceID]
	logger.Info("MIDI destination selected",
		logger.Field().Int("deviceID", config.DeviceID),
		logger.Field().String("deviceName", dest.Name()))

	return &PlayerMid{
		logger:      logger,
		client:      client,
		outputPort:  port,
		destination: dest,
	}, nil
}

// ListDevices retrieves the available MIDI destinations.
func (p *PlayerMid) ListDevices() ([]contracts.DeviceInfo, error) {
	destinations, err := coremidi.AllDestinations()
	if err != nil {
		return nil, fmt.Errorf("error listing MIDI destinations: %w", err)
	}
	if len(destinations) == 0 {
		p.logger.Warn(ErrNoMIDIDevices.Error())
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, len(destinations))
	for i, dest := range destinations {
		entity := dest.Entity()
		devices[i] = contracts.DeviceInfo{
			Name:         dest.Name(),
			EntityName:   entity.Name(),
			Manufacturer: entity.Manufacturer(),
		}
	}
	return devices, nil
}

// NoteOn starts holding note on the destination.
func (p *PlayerMid) NoteOn(note string, velocity uint8) error {
	key, err := keyboard.MIDINumber(note)
	if err != nil {
		return err
	}
	return p.send(midi.NoteOn(channel, key, velocity))
}

// NoteOff releases note.
func (p *PlayerMid) NoteOff(note string) error {
	key, err := keyboard.MIDINumber(note)
	if err != nil {
		return err
	}
	return p.send(midi.NoteOff(channel, key))
}

// Play starts note and releases it after duration.
func (p *PlayerMid) Play(note string, duration time.Duration) error {
	if err := p.NoteOn(note, contracts.DefaultVelocity); err != nil {
		return err
	}
	time.AfterFunc(duration, func() {
		if err := p.NoteOff(note); err != nil {
			p.logger.Warn("Delayed note off failed", p.logger.Field().String("note", note), p.logger.Field().Error("error", err))
		}
	})
	return nil
}

func (p *PlayerMid) send(msg midi.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrMIDIPlayerClosed
	}
	packet := coremidi.NewPacket(msg.Bytes(), 0)
	if err := packet.Send(&p.outputPort, &p.destination); err != nil {
		return fmt.Errorf("%w: %v", ErrMIDIConnectionError, err)
	}
	p.logger.Debug("MIDI message sent", p.logger.Field().String("message", msg.String()))
	return nil
}

// Close silences the channel and stops accepting notes. It is safe to call more than once.
func (p *PlayerMid) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	packet := coremidi.NewPacket(midi.ControlChange(channel, allNotesOff, 0).Bytes(), 0)
	if err := packet.Send(&p.outputPort, &p.destination); err != nil {
		p.logger.Warn("Failed to silence MIDI destination", p.logger.Field().Error("error", err))
	}
	p.logger.Info("MIDI player closed")
	return nil
}
