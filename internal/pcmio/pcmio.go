// Package pcmio reads and writes headerless 16-bit PCM one whole frame at a
// time. Samples are in the host's native byte order, the layout produced by
// tools such as `sox -t raw -e signed -b 16`.
package pcmio

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const bytesPerSample = 2

// ShortFrameError reports a stream that ended part way through a frame.
// The partial frame is not returned.
type ShortFrameError struct {
	Samples int // whole samples read
	Bytes   int // bytes read, including a trailing odd byte
}

func (e *ShortFrameError) Error() string {
	return fmt.Sprintf("pcmio: short frame: %d samples (%d bytes)", e.Samples, e.Bytes)
}

// Reader reads fixed size frames of samples.
type Reader struct {
	r   io.Reader
	raw []byte
}

// NewReader returns a Reader producing frames of samplesPerFrame samples.
func NewReader(r io.Reader, samplesPerFrame int) *Reader {
	return &Reader{
		r:   r,
		raw: make([]byte, samplesPerFrame*bytesPerSample),
	}
}

// ReadFrame fills dst with the next frame. It returns io.EOF when the stream
// is exhausted on a frame boundary and *ShortFrameError when it ends inside
// a frame. dst is left unspecified on error.
func (r *Reader) ReadFrame(dst []int16) error {
	if len(dst)*bytesPerSample != len(r.raw) {
		return fmt.Errorf("pcmio: frame of %d samples, reader expects %d", len(dst), len(r.raw)/bytesPerSample)
	}

	n, err := io.ReadFull(r.r, r.raw)
	switch {
	case errors.Is(err, io.EOF):
		return io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		return &ShortFrameError{Samples: n / bytesPerSample, Bytes: n}
	case err != nil:
		return err
	}

	for i := range dst {
		dst[i] = int16(binary.NativeEndian.Uint16(r.raw[i*bytesPerSample:]))
	}
	return nil
}

// Writer writes fixed size frames of samples through a buffer. Call Flush
// when done.
type Writer struct {
	w   *bufio.Writer
	raw []byte
}

// NewWriter returns a Writer for frames of samplesPerFrame samples.
func NewWriter(w io.Writer, samplesPerFrame int) *Writer {
	return &Writer{
		w:   bufio.NewWriter(w),
		raw: make([]byte, samplesPerFrame*bytesPerSample),
	}
}

// WriteFrame writes one frame.
func (w *Writer) WriteFrame(src []int16) error {
	if len(src)*bytesPerSample != len(w.raw) {
		return fmt.Errorf("pcmio: frame of %d samples, writer expects %d", len(src), len(w.raw)/bytesPerSample)
	}
	for i, s := range src {
		binary.NativeEndian.PutUint16(w.raw[i*bytesPerSample:], uint16(s))
	}
	_, err := w.w.Write(w.raw)
	return err
}

// Flush writes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}
