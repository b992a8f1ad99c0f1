// Package actuator drives the physical robot hand over a serial link.
package actuator

import (
	"errors"
	"fmt"
	"math"
)

const (
	SOF0    = 0xAA
	SOF1    = 0x55
	CmdMove = 0x20
)

const payloadLen = 4

// FrameLen is the size of an encoded move frame.
const FrameLen = 4 + payloadLen + 1

var (
	// ErrFrame is returned for bytes that are not a well-formed move frame.
	ErrFrame = errors.New("malformed actuator frame")
	// ErrChecksum is returned when a frame's checksum does not match its contents.
	ErrChecksum = errors.New("actuator frame checksum mismatch")
)

// Frame tells the hand controller to move one finger onto a key.
type Frame struct {
	Finger   byte // 0-4, thumb first
	Key      byte // 0-11, A4 first
	Duration byte // centiseconds, saturated at 255
	Seq      byte
}

// Encode builds the on-wire representation:
//
//	[SOF0][SOF1][LEN][CMD][finger][key][duration][seq][CKS]
func (f Frame) Encode() []byte {
	payload := []byte{f.Finger, f.Key, f.Duration, f.Seq}
	length := byte(len(payload) + 1) // +1 for CMD byte

	out := []byte{SOF0, SOF1, length, CmdMove}
	out = append(out, payload...)
	out = append(out, checksum(length, CmdMove, payload))
	return out
}

// Decode parses one encoded frame.
func Decode(b []byte) (Frame, error) {
	if len(b) != FrameLen {
		return Frame{}, fmt.Errorf("%w: %d bytes, want %d", ErrFrame, len(b), FrameLen)
	}
	if b[0] != SOF0 || b[1] != SOF1 {
		return Frame{}, fmt.Errorf("%w: bad start of frame % X", ErrFrame, b[:2])
	}
	if b[2] != payloadLen+1 {
		return Frame{}, fmt.Errorf("%w: length %d", ErrFrame, b[2])
	}
	if b[3] != CmdMove {
		return Frame{}, fmt.Errorf("%w: command 0x%02X", ErrFrame, b[3])
	}
	payload := b[4 : 4+payloadLen]
	if want := checksum(b[2], b[3], payload); b[FrameLen-1] != want {
		return Frame{}, fmt.Errorf("%w: got 0x%02X want 0x%02X", ErrChecksum, b[FrameLen-1], want)
	}
	return Frame{Finger: payload[0], Key: payload[1], Duration: payload[2], Seq: payload[3]}, nil
}

// Centiseconds converts seconds to the frame's duration unit.
func Centiseconds(seconds float64) byte {
	cs := math.Round(seconds * 100)
	switch {
	case cs <= 0 || math.IsNaN(cs):
		return 0
	case cs >= math.MaxUint8:
		return math.MaxUint8
	}
	return byte(cs)
}

func checksum(length, cmd byte, payload []byte) byte {
	cks := length ^ cmd
	for _, b := range payload {
		cks ^= b
	}
	return cks
}
