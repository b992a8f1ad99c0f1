package actuator

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/logger"
	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ contracts.Actuator = (*Serial)(nil)

type bufferPort struct {
	bytes.Buffer
	closed bool
	err    error
}

func (b *bufferPort) Write(p []byte) (int, error) {
	if b.err != nil {
		return 0, b.err
	}
	return b.Buffer.Write(p)
}

func (b *bufferPort) Close() error {
	b.closed = true
	return nil
}

func TestFrameEncode(t *testing.T) {
	f := Frame{Finger: 4, Key: 7, Duration: 35, Seq: 0}
	got := f.Encode()
	// LEN=5, CMD=0x20: 0x05^0x20^0x04^0x07^0x23^0x00 = 0x05
	assert.Equal(t, []byte{0xAA, 0x55, 0x05, 0x20, 0x04, 0x07, 0x23, 0x00, 0x05}, got)
	assert.Len(t, got, FrameLen)
}

func TestDecodeRoundTrip(t *testing.T) {
	f := Frame{Finger: 2, Key: 11, Duration: 70, Seq: 200}
	got, err := Decode(f.Encode())
	require.NoError(t, err)
	assert.Equal(t, f, got)
}

func TestDecodeRejects(t *testing.T) {
	good := Frame{Finger: 1, Key: 3, Duration: 45, Seq: 9}.Encode()
	corrupt := func(i int, v byte) []byte {
		b := append([]byte(nil), good...)
		b[i] = v
		return b
	}

	tests := []struct {
		name string
		in   []byte
		want error
	}{
		{"short", good[:5], ErrFrame},
		{"bad sof", corrupt(0, 0x00), ErrFrame},
		{"bad length", corrupt(2, 0x09), ErrFrame},
		{"bad command", corrupt(3, 0x10), ErrFrame},
		{"bad payload", corrupt(5, 0x04), ErrChecksum},
		{"bad checksum", corrupt(FrameLen-1, good[FrameLen-1]^0xFF), ErrChecksum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCentiseconds(t *testing.T) {
	assert.Equal(t, byte(35), Centiseconds(0.35))
	assert.Equal(t, byte(70), Centiseconds(0.7))
	assert.Equal(t, byte(0), Centiseconds(-1))
	assert.Equal(t, byte(255), Centiseconds(10))
}

func TestSerialMoveWritesSequencedFrames(t *testing.T) {
	port := &bufferPort{}
	s := New(port, logger.NewNopLogger())

	require.NoError(t, s.Move(contracts.MoveCommand{Finger: 4, Key: 7, Duration: 0.35}))
	require.NoError(t, s.Move(contracts.MoveCommand{Finger: 2, Key: 2, Duration: 0.45}))

	out := port.Bytes()
	require.Len(t, out, 2*FrameLen)
	first, err := Decode(out[:FrameLen])
	require.NoError(t, err)
	second, err := Decode(out[FrameLen:])
	require.NoError(t, err)
	assert.Equal(t, Frame{Finger: 4, Key: 7, Duration: 35, Seq: 0}, first)
	assert.Equal(t, Frame{Finger: 2, Key: 2, Duration: 45, Seq: 1}, second)
}

func TestSerialMoveErrors(t *testing.T) {
	port := &bufferPort{err: errors.New("unplugged")}
	s := New(port, logger.NewNopLogger())
	assert.Error(t, s.Move(contracts.MoveCommand{Finger: 0, Key: 0}))
	assert.ErrorIs(t, s.Move(contracts.MoveCommand{Finger: 300}), ErrFrame)

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.True(t, port.closed)
	assert.ErrorIs(t, s.Move(contracts.MoveCommand{}), io.ErrClosedPipe)
}
