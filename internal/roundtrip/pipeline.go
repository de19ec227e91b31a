// Package roundtrip drives a codec over a raw PCM stream, encoding and
// immediately decoding each frame, so the reconstructed speech can be
// listened to or measured without an intermediate bit file.
package roundtrip

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/blues/codec2/internal/pcmio"
)

// Codec is the engine a Pipeline drives. *codec2.Codec2 implements it.
type Codec interface {
	SamplesPerFrame() int
	BytesPerFrame() int
	EncodeTo(dst []byte, pcm []int16) error
	DecodeTo(dst []int16, bits []byte) error
}

// PartialPolicy decides what happens to samples after the last whole frame.
type PartialPolicy int

const (
	// PartialDrop discards them; the run still succeeds.
	PartialDrop PartialPolicy = iota
	// PartialReject fails the run with ErrPartialFrame once every whole
	// frame has been written.
	PartialReject
)

func (p PartialPolicy) String() string {
	switch p {
	case PartialDrop:
		return "drop"
	case PartialReject:
		return "reject"
	}
	return fmt.Sprintf("PartialPolicy(%d)", int(p))
}

// Stats describes a finished run.
type Stats struct {
	Frames         int   // whole frames round-tripped
	Samples        int64 // samples written
	DroppedSamples int   // whole samples in the trailing partial frame
	DroppedBytes   int   // bytes in the trailing partial frame
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithPartialPolicy sets the trailing partial frame policy.
func WithPartialPolicy(policy PartialPolicy) Option {
	return func(p *Pipeline) { p.policy = policy }
}

// Pipeline owns one sample frame and one bit frame, sized once from the
// codec's geometry and reused for every frame.
type Pipeline struct {
	codec   Codec
	samples []int16
	bits    []byte
	policy  PartialPolicy
	logger  *slog.Logger
}

// NewPipeline queries the codec's frame geometry and allocates the frame
// buffers.
func NewPipeline(c Codec, opts ...Option) (*Pipeline, error) {
	nsam, nbyte := c.SamplesPerFrame(), c.BytesPerFrame()
	if nsam <= 0 || nbyte <= 0 {
		return nil, &ResourceError{Err: fmt.Errorf("invalid frame geometry: %d samples, %d bytes", nsam, nbyte)}
	}

	p := &Pipeline{
		codec:   c,
		samples: make([]int16, nsam),
		bits:    make([]byte, nbyte),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger.Debug("frame pipeline ready",
		"samples_per_frame", nsam,
		"bytes_per_frame", nbyte,
		"partial_frame", p.policy,
	)
	return p, nil
}

// Run round-trips r into w frame by frame until r is exhausted. Output frame
// n is the decoded form of input frame n. A trailing partial frame is never
// encoded or written. Output is flushed before Run returns.
func (p *Pipeline) Run(r io.Reader, w io.Writer) (st Stats, err error) {
	in := pcmio.NewReader(r, len(p.samples))
	out := pcmio.NewWriter(w, len(p.samples))
	defer func() {
		if ferr := out.Flush(); ferr != nil && err == nil {
			err = &StreamError{Op: "flush", Frame: st.Frames, Err: ferr}
		}
	}()

	for {
		if err := in.ReadFrame(p.samples); err != nil {
			err = p.finish(&st, err)
			return st, err
		}
		if err := p.codec.EncodeTo(p.bits, p.samples); err != nil {
			return st, &StreamError{Op: "encode", Frame: st.Frames, Err: err}
		}
		if err := p.codec.DecodeTo(p.samples, p.bits); err != nil {
			return st, &StreamError{Op: "decode", Frame: st.Frames, Err: err}
		}
		if err := out.WriteFrame(p.samples); err != nil {
			return st, &StreamError{Op: "write", Frame: st.Frames, Err: err}
		}
		st.Frames++
		st.Samples += int64(len(p.samples))
	}
}

// finish classifies the error that ended the read loop.
func (p *Pipeline) finish(st *Stats, err error) error {
	var short *pcmio.ShortFrameError
	switch {
	case errors.Is(err, io.EOF):
		return nil
	case errors.As(err, &short):
		st.DroppedSamples = short.Samples
		st.DroppedBytes = short.Bytes
		p.logger.Debug("partial frame at end of input",
			"frame", st.Frames,
			"samples", short.Samples,
			"bytes", short.Bytes,
		)
		if p.policy == PartialReject {
			return fmt.Errorf("%w: %d bytes after frame %d", ErrPartialFrame, short.Bytes, st.Frames)
		}
		return nil
	default:
		return &StreamError{Op: "read", Frame: st.Frames, Err: err}
	}
}
