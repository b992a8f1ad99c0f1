// Package speaker plays tone output through the system audio device with oto. Importing
// it registers the device with package tone:
//
//	import _ "github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/tone/speaker"
package speaker

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"sync"
	"time"

	"github.com/dallylademoraes/greedy-algorithm-piano-robot/internal/tone"
	"github.com/ebitengine/oto/v3"
)

func init() {
	tone.RegisterOutput(Open)
}

const bytesPerFrame = 2 * 4 // stereo float32

var (
	ctxOnce sync.Once
	ctx     *oto.Context
	ctxErr  error
)

// Speaker is a tone.Output backed by an oto context. oto allows one context per process,
// so every Speaker shares it.
type Speaker struct {
	mu      sync.Mutex
	players []*oto.Player
	closed  bool
}

// Open returns a speaker at sampleRate. The first call fixes the rate for the process.
func Open(sampleRate int) (tone.Output, error) {
	ctxOnce.Do(func() {
		c, ready, err := oto.NewContext(&oto.NewContextOptions{
			SampleRate:   sampleRate,
			ChannelCount: 2,
			Format:       oto.FormatFloat32LE,
			BufferSize:   20 * time.Millisecond,
		})
		if err != nil {
			ctxErr = err
			return
		}
		<-ready
		ctx = c
	})
	if ctxErr != nil {
		return nil, ctxErr
	}
	return &Speaker{}, nil
}

// PlayPCM starts a finished buffer and returns immediately.
func (s *Speaker) PlayPCM(samples []float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return tone.ErrClosed
	}
	s.reap()

	var pcm bytes.Buffer
	pcm.Grow(4 * len(samples))
	if err := binary.Write(&pcm, binary.LittleEndian, samples); err != nil {
		return err
	}
	p := ctx.NewPlayer(bytes.NewReader(pcm.Bytes()))
	p.Play()
	s.players = append(s.players, p)
	return nil
}

// Stream pulls samples from r until the returned closer is closed.
func (s *Speaker) Stream(r tone.Renderer) (io.Closer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, tone.ErrClosed
	}
	sr := &renderReader{r: r}
	p := ctx.NewPlayer(sr)
	p.Play()
	return &stream{player: p, reader: sr}, nil
}

// Close stops every player started by this speaker.
func (s *Speaker) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	for _, p := range s.players {
		_ = p.Close()
	}
	s.players = nil
	return nil
}

// reap drops players that finished.
func (s *Speaker) reap() {
	keep := s.players[:0]
	for _, p := range s.players {
		if p.IsPlaying() {
			keep = append(keep, p)
			continue
		}
		_ = p.Close()
	}
	s.players = keep
}

// renderReader adapts a tone.Renderer to the io.Reader oto pulls from.
type renderReader struct {
	mu          sync.Mutex
	r           tone.Renderer
	left, right []float32
	done        bool
}

func (rr *renderReader) Read(p []byte) (int, error) {
	rr.mu.Lock()
	defer rr.mu.Unlock()
	if rr.done {
		return 0, io.EOF
	}
	frames := len(p) / bytesPerFrame
	if frames == 0 {
		return 0, nil
	}
	if cap(rr.left) < frames {
		rr.left = make([]float32, frames)
		rr.right = make([]float32, frames)
	}
	left, right := rr.left[:frames], rr.right[:frames]
	rr.r.Render(left, right)
	for i := 0; i < frames; i++ {
		binary.LittleEndian.PutUint32(p[i*bytesPerFrame:], math.Float32bits(left[i]))
		binary.LittleEndian.PutUint32(p[i*bytesPerFrame+4:], math.Float32bits(right[i]))
	}
	return frames * bytesPerFrame, nil
}

func (rr *renderReader) stop() {
	rr.mu.Lock()
	rr.done = true
	rr.mu.Unlock()
}

type stream struct {
	player *oto.Player
	reader *renderReader
}

func (s *stream) Close() error {
	s.reader.stop()
	return s.player.Close()
}
