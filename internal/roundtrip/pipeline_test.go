package roundtrip_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"testing"
	"testing/iotest"

	"github.com/blues/codec2/internal/roundtrip"
)

// fakeCodec packs samples verbatim into bits and adds one on decode, so the
// output of a round trip is the input shifted by one. It records the order
// of calls.
type fakeCodec struct {
	nsam      int
	calls     []string
	failAfter int // fail the encode of this frame when > 0
}

func (c *fakeCodec) SamplesPerFrame() int { return c.nsam }
func (c *fakeCodec) BytesPerFrame() int   { return 2 * c.nsam }

func (c *fakeCodec) EncodeTo(dst []byte, pcm []int16) error {
	n := len(c.calls) / 2
	if c.failAfter > 0 && n == c.failAfter {
		return errors.New("encoder exploded")
	}
	c.calls = append(c.calls, fmt.Sprintf("E%d", n))
	for i, s := range pcm {
		binary.LittleEndian.PutUint16(dst[2*i:], uint16(s))
	}
	return nil
}

func (c *fakeCodec) DecodeTo(dst []int16, bits []byte) error {
	c.calls = append(c.calls, fmt.Sprintf("D%d", len(c.calls)/2))
	for i := range dst {
		dst[i] = int16(binary.LittleEndian.Uint16(bits[2*i:])) + 1
	}
	return nil
}

func pcmBytes(s []int16) []byte {
	b := make([]byte, 2*len(s))
	for i, v := range s {
		binary.NativeEndian.PutUint16(b[2*i:], uint16(v))
	}
	return b
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPipeline_OrderAndCallSequence(t *testing.T) {
	t.Parallel()
	c := &fakeCodec{nsam: 3}
	p, err := roundtrip.NewPipeline(c, roundtrip.WithLogger(quietLogger()))
	if err != nil {
		t.Fatal(err)
	}

	in := []int16{10, 11, 12, 20, 21, 22, 30, 31, 32}
	var out bytes.Buffer
	st, err := p.Run(bytes.NewReader(pcmBytes(in)), &out)
	if err != nil {
		t.Fatal(err)
	}
	if st.Frames != 3 || st.Samples != 9 || st.DroppedBytes != 0 {
		t.Errorf("stats = %+v", st)
	}
	want := pcmBytes([]int16{11, 12, 13, 21, 22, 23, 31, 32, 33})
	if !bytes.Equal(out.Bytes(), want) {
		t.Errorf("output %x, want %x", out.Bytes(), want)
	}
	if wantCalls := []string{"E0", "D0", "E1", "D1", "E2", "D2"}; !slices.Equal(c.calls, wantCalls) {
		t.Errorf("calls %v, want %v", c.calls, wantCalls)
	}
}

func TestPipeline_EmptyInput(t *testing.T) {
	t.Parallel()
	c := &fakeCodec{nsam: 4}
	p, _ := roundtrip.NewPipeline(c, roundtrip.WithLogger(quietLogger()))
	var out bytes.Buffer
	st, err := p.Run(bytes.NewReader(nil), &out)
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 || st.Frames != 0 {
		t.Errorf("wrote %d bytes, stats %+v", out.Len(), st)
	}
	if len(c.calls) != 0 {
		t.Errorf("codec called on empty input: %v", c.calls)
	}
}

func TestPipeline_PartialFrameDropped(t *testing.T) {
	t.Parallel()
	c := &fakeCodec{nsam: 4}
	p, _ := roundtrip.NewPipeline(c, roundtrip.WithLogger(quietLogger()))

	data := append(pcmBytes([]int16{1, 2, 3, 4, 5, 6}), 0x7f)
	var out bytes.Buffer
	st, err := p.Run(bytes.NewReader(data), &out)
	if err != nil {
		t.Fatal(err)
	}
	if out.Len() != 8 {
		t.Errorf("wrote %d bytes, want 8", out.Len())
	}
	if st.Frames != 1 || st.DroppedSamples != 2 || st.DroppedBytes != 5 {
		t.Errorf("stats = %+v", st)
	}
}

func TestPipeline_PartialFrameRejected(t *testing.T) {
	t.Parallel()
	c := &fakeCodec{nsam: 4}
	p, _ := roundtrip.NewPipeline(c,
		roundtrip.WithLogger(quietLogger()),
		roundtrip.WithPartialPolicy(roundtrip.PartialReject),
	)

	var out bytes.Buffer
	st, err := p.Run(bytes.NewReader(pcmBytes([]int16{1, 2, 3, 4, 5})), &out)
	if !errors.Is(err, roundtrip.ErrPartialFrame) {
		t.Fatalf("got %v, want ErrPartialFrame", err)
	}
	if out.Len() != 8 || st.Frames != 1 {
		t.Errorf("whole frames must still be written: %d bytes, stats %+v", out.Len(), st)
	}
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestPipeline_WriteFailure(t *testing.T) {
	t.Parallel()
	c := &fakeCodec{nsam: 2}
	p, _ := roundtrip.NewPipeline(c, roundtrip.WithLogger(quietLogger()))

	disk := errors.New("disk full")
	_, err := p.Run(bytes.NewReader(pcmBytes([]int16{1, 2, 3, 4})), failingWriter{disk})
	var se *roundtrip.StreamError
	if !errors.As(err, &se) {
		t.Fatalf("got %T (%v), want *StreamError", err, err)
	}
	if !errors.Is(err, disk) {
		t.Errorf("error %v does not wrap the write failure", err)
	}
}

func TestPipeline_ReadFailure(t *testing.T) {
	t.Parallel()
	c := &fakeCodec{nsam: 2}
	p, _ := roundtrip.NewPipeline(c, roundtrip.WithLogger(quietLogger()))

	boom := errors.New("device unplugged")
	r := io.MultiReader(bytes.NewReader(pcmBytes([]int16{1, 2})), iotest.ErrReader(boom))
	var out bytes.Buffer
	st, err := p.Run(r, &out)
	var se *roundtrip.StreamError
	if !errors.As(err, &se) || se.Op != "read" || se.Frame != 1 {
		t.Fatalf("got %v, want read StreamError at frame 1", err)
	}
	if !errors.Is(err, boom) {
		t.Errorf("error %v does not wrap %v", err, boom)
	}
	if st.Frames != 1 || out.Len() != 4 {
		t.Errorf("frames before the failure must be flushed: %d bytes, stats %+v", out.Len(), st)
	}
}

func TestPipeline_EncodeFailure(t *testing.T) {
	t.Parallel()
	c := &fakeCodec{nsam: 2, failAfter: 1}
	p, _ := roundtrip.NewPipeline(c, roundtrip.WithLogger(quietLogger()))

	var out bytes.Buffer
	_, err := p.Run(bytes.NewReader(pcmBytes([]int16{1, 2, 3, 4})), &out)
	var se *roundtrip.StreamError
	if !errors.As(err, &se) || se.Op != "encode" || se.Frame != 1 {
		t.Fatalf("got %v, want encode StreamError at frame 1", err)
	}
}

func TestNewPipeline_BadGeometry(t *testing.T) {
	t.Parallel()
	_, err := roundtrip.NewPipeline(&fakeCodec{nsam: 0})
	var re *roundtrip.ResourceError
	if !errors.As(err, &re) {
		t.Errorf("got %v, want *ResourceError", err)
	}
}

func TestPartialPolicy_String(t *testing.T) {
	t.Parallel()
	if roundtrip.PartialDrop.String() != "drop" || roundtrip.PartialReject.String() != "reject" {
		t.Error("unexpected policy names")
	}
}
