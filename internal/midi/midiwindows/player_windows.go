//go:build windows
// +build windows

package midiwindows

import (
	"errors"
	"fmt"
	"sync"
	"time"
	"unsafe"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/keyboard"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
	"gitlab.com/gomidi/midi/v2"
	"golang.org/x/sys/windows"
)

// Type definitions for MIDI handles
type HMIDIOUT windows.Handle

// Constants for midiOutOpen
const (
	CALLBACK_NULL = 0x00000000 // No callback; the player never reads from the device
)

const (
	channel     = 0
	allNotesOff = 123
)

// Error definitions for MIDI output issues.
var (
	ErrNoMIDIDevices     = errors.New("no MIDI devices found")
	ErrInvalidMIDIDevice = errors.New("invalid MIDI device")
	ErrMIDIPlayerClosed  = errors.New("MIDI player closed")
)

// Struct representing MIDI output device capabilities (MIDIOUTCAPSW)
type midiOutCaps struct {
	wMid           uint16
	wPid           uint16
	vDriverVersion uint32
	szPname        [32]uint16
	wTechnology    uint16
	wVoices        uint16
	wNotes         uint16
	wChannelMask   uint16
	dwSupport      uint32
}

// Load the winmm.dll library and required functions
var (
	winmm                 = windows.NewLazySystemDLL("winmm.dll")
	procMidiOutGetNumDevs = winmm.NewProc("midiOutGetNumDevs")
	procMidiOutGetDevCaps = winmm.NewProc("midiOutGetDevCapsW")
	procMidiOutOpen       = winmm.NewProc("midiOutOpen")
	procMidiOutShortMsg   = winmm.NewProc("midiOutShortMsg")
	procMidiOutReset      = winmm.NewProc("midiOutReset")
	procMidiOutClose      = winmm.NewProc("midiOutClose")
)

// PlayerMid sends melody notes to a winmm MIDI output device
type PlayerMid struct {
	logger contracts.Logger
	handle HMIDIOUT
	mu     sync.Mutex
}

// NewMIDIPlayer opens the configured MIDI output device
func NewMIDIPlayer(config *contracts.MIDIConfig, logger contracts.Logger) (contracts.MIDIPlayer, error) {
	r0, _, _ := procMidiOutGetNumDevs.Call()
	numDevices := int(r0)
	if numDevices == 0 {
		logger.Warn("No MIDI devices found")
		return nil, ErrNoMIDIDevices
	}
	if config.DeviceID < 0 || config.DeviceID >= numDevices {
		logger.Error(fmt.Sprintf("MIDI device %d out of range (%d devices)", config.DeviceID, numDevices))
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidMIDIDevice, config.DeviceID, numDevices)
	}

	p := &PlayerMid{logger: logger}
	r1, _, err := procMidiOutOpen.Call(
		uintptr(unsafe.Pointer(&p.handle)),
		uintptr(config.DeviceID),
		0,
		0,
		uintptr(CALLBACK_NULL),
	)
	if r1 != 0 {
		logger.Error(fmt.Sprintf("Failed to open MIDI device %d: %v", config.DeviceID, err))
		return nil, fmt.Errorf("failed to open MIDI device %d: %v", config.DeviceID, err)
	}

	logger.Info(fmt.Sprintf("MIDI device %d opened for output", config.DeviceID))
	return p, nil
}

// ListDevices lists the available MIDI output devices
func (p *PlayerMid) ListDevices() ([]contracts.DeviceInfo, error) {
	r0, _, _ := procMidiOutGetNumDevs.Call()
	numDevices := uint32(r0)
	if numDevices == 0 {
		p.logger.Warn("No MIDI devices found")
		return nil, ErrNoMIDIDevices
	}

	devices := make([]contracts.DeviceInfo, 0, numDevices)
	for i := uint32(0); i < numDevices; i++ {
		var caps midiOutCaps
		r1, _, _ := procMidiOutGetDevCaps.Call(
			uintptr(i),
			uintptr(unsafe.Pointer(&caps)),
			unsafe.Sizeof(caps),
		)
		if r1 != 0 {
			p.logger.Warn(fmt.Sprintf("Failed to get information for MIDI device %d", i))
			continue
		}
		deviceName := windows.UTF16ToString(caps.szPname[:])
		devices = append(devices, contracts.DeviceInfo{
			Name:         deviceName,
			EntityName:   deviceName,
			Manufacturer: fmt.Sprintf("MID: %d PID: %d", caps.wMid, caps.wPid),
		})
	}
	return devices, nil
}

// NoteOn starts holding note
func (p *PlayerMid) NoteOn(note string, velocity uint8) error {
	key, err := keyboard.MIDINumber(note)
	if err != nil {
		return err
	}
	return p.send(midi.NoteOn(channel, key, velocity))
}

// NoteOff releases note
func (p *PlayerMid) NoteOff(note string) error {
	key, err := keyboard.MIDINumber(note)
	if err != nil {
		return err
	}
	return p.send(midi.NoteOff(channel, key))
}

// Play starts note and releases it after duration
func (p *PlayerMid) Play(note string, duration time.Duration) error {
	if err := p.NoteOn(note, contracts.DefaultVelocity); err != nil {
		return err
	}
	time.AfterFunc(duration, func() {
		if err := p.NoteOff(note); err != nil {
			p.logger.Warn(fmt.Sprintf("Delayed note off for %s failed: %v", note, err))
		}
	})
	return nil
}

// shortMsg packs a channel message the way midiOutShortMsg expects it
func shortMsg(msg midi.Message) uintptr {
	var packed uint32
	for i, b := range msg.Bytes() {
		if i > 2 {
			break
		}
		packed |= uint32(b) << (8 * i)
	}
	return uintptr(packed)
}

func (p *PlayerMid) send(msg midi.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle == 0 {
		return ErrMIDIPlayerClosed
	}
	r1, _, err := procMidiOutShortMsg.Call(uintptr(p.handle), shortMsg(msg))
	if r1 != 0 {
		return fmt.Errorf("failed to send MIDI message %s: %v", msg, err)
	}
	p.logger.Debug(fmt.Sprintf("MIDI message sent: %s", msg))
	return nil
}

// Close silences and closes the device
func (p *PlayerMid) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.handle == 0 {
		return nil
	}

	procMidiOutShortMsg.Call(uintptr(p.handle), shortMsg(midi.ControlChange(channel, allNotesOff, 0)))
	procMidiOutReset.Call(uintptr(p.handle))
	r1, _, err := procMidiOutClose.Call(uintptr(p.handle))
	if r1 != 0 {
		p.logger.Error(fmt.Sprintf("Failed to close MIDI device: %v", err))
		return err
	}
	p.handle = 0
	p.logger.Info("MIDI device closed")
	return nil
}
