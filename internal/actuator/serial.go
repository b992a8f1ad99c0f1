package actuator

import (
	"fmt"
	"io"
	"sync"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/sdk/contracts"
	"go.bug.st/serial"
)

// DefaultBaud is the baud rate of the hand controller firmware.
const DefaultBaud = 115200

// Serial sends move frames to the hand controller.
type Serial struct {
	mu     sync.Mutex
	port   io.WriteCloser
	seq    byte
	logger contracts.Logger
}

// Open opens the named serial device at the given baud rate.
func Open(device string, baud int, logger contracts.Logger) (*Serial, error) {
	if baud <= 0 {
		baud = DefaultBaud
	}
	p, err := serial.Open(device, &serial.Mode{BaudRate: baud})
	if err != nil {
		logger.Error("Failed to open serial port", logger.Field().String("device", device), logger.Field().Int("baud", baud), logger.Field().Error("error", err))
		return nil, fmt.Errorf("open %s: %w", device, err)
	}
	logger.Info("Serial port opened", logger.Field().String("device", device), logger.Field().Int("baud", baud))
	return New(p, logger), nil
}

// New wraps an already open link.
func New(port io.WriteCloser, logger contracts.Logger) *Serial {
	return &Serial{port: port, logger: logger}
}

// Ports lists the serial devices present on the system.
func Ports() ([]string, error) {
	return serial.GetPortsList()
}

// Move encodes cmd and writes it to the link. Sequence numbers wrap at 256.
func (s *Serial) Move(cmd contracts.MoveCommand) error {
	if cmd.Finger < 0 || cmd.Finger > 0xFF || cmd.Key < 0 || cmd.Key > 0xFF {
		return fmt.Errorf("%w: finger %d key %d out of byte range", ErrFrame, cmd.Finger, cmd.Key)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		return io.ErrClosedPipe
	}

	f := Frame{Finger: byte(cmd.Finger), Key: byte(cmd.Key), Duration: Centiseconds(cmd.Duration), Seq: s.seq}
	n, err := s.port.Write(f.Encode())
	if err != nil {
		s.logger.Error("Serial write failed", s.logger.Field().Error("error", err))
		return err
	}
	s.seq++
	s.logger.Debug("Frame sent",
		s.logger.Field().Int("bytes", n),
		s.logger.Field().Uint8("seq", f.Seq),
		s.logger.Field().Uint8("finger", f.Finger),
		s.logger.Field().Uint8("key", f.Key))
	return nil
}

// Close closes the underlying link.
func (s *Serial) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.port == nil {
		return nil
	}
	s.logger.Info("Closing serial port")
	err := s.port.Close()
	s.port = nil
	return err
}
