package codec2_test

import (
	"bytes"
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/blues/codec2"
)

// voice returns n samples of a 120 Hz harmonic buzz with a slow tremolo,
// loud enough to exercise pitch and voicing estimation.
func voice(n int) []int16 {
	out := make([]int16, n)
	for i := range out {
		t := float64(i) / codec2.SampleRate
		v := 0.0
		for h := 1; h <= 10; h++ {
			v += math.Sin(2*math.Pi*120*float64(h)*t) / float64(h)
		}
		env := 0.6 + 0.4*math.Sin(2*math.Pi*3*t)
		out[i] = int16(3000 * env * v)
	}
	return out
}

func allModes() []codec2.Mode {
	return []codec2.Mode{codec2.Mode3200, codec2.Mode2400, codec2.Mode1400, codec2.Mode1200}
}

func TestNew_Geometry(t *testing.T) {
	t.Parallel()
	tests := []struct {
		mode        codec2.Mode
		samples     int
		bits, bytes int
	}{
		{codec2.Mode3200, 160, 64, 8},
		{codec2.Mode2400, 160, 48, 6},
		{codec2.Mode1400, 320, 56, 7},
		{codec2.Mode1200, 320, 48, 6},
	}
	for _, tt := range tests {
		c, err := codec2.New(tt.mode)
		if err != nil {
			t.Fatalf("New(%v): %v", tt.mode, err)
		}
		if c.Mode() != tt.mode {
			t.Errorf("Mode() = %v, want %v", c.Mode(), tt.mode)
		}
		if got := c.SamplesPerFrame(); got != tt.samples {
			t.Errorf("%v: SamplesPerFrame() = %d, want %d", tt.mode, got, tt.samples)
		}
		if got := c.BitsPerFrame(); got != tt.bits {
			t.Errorf("%v: BitsPerFrame() = %d, want %d", tt.mode, got, tt.bits)
		}
		if got := c.BytesPerFrame(); got != tt.bytes {
			t.Errorf("%v: BytesPerFrame() = %d, want %d", tt.mode, got, tt.bytes)
		}
		c.Close()
	}
}

func TestNew_InvalidMode(t *testing.T) {
	t.Parallel()
	if _, err := codec2.New(codec2.Mode(2)); err == nil {
		t.Fatal("New(Mode(2)): expected error")
	}
}

func TestEncodeDecode_FrameLengths(t *testing.T) {
	t.Parallel()
	for _, mode := range allModes() {
		mode := mode
		t.Run(mode.String(), func(t *testing.T) {
			t.Parallel()
			c, err := codec2.New(mode)
			if err != nil {
				t.Fatal(err)
			}
			defer c.Close()

			n := c.SamplesPerFrame()
			speech := voice(6 * n)
			for f := 0; f < 6; f++ {
				bits, err := c.Encode(speech[f*n : (f+1)*n])
				if err != nil {
					t.Fatalf("frame %d: Encode: %v", f, err)
				}
				if len(bits) != c.BytesPerFrame() {
					t.Fatalf("frame %d: encoded %d bytes, want %d", f, len(bits), c.BytesPerFrame())
				}
				pcm, err := c.Decode(bits)
				if err != nil {
					t.Fatalf("frame %d: Decode: %v", f, err)
				}
				if len(pcm) != n {
					t.Fatalf("frame %d: decoded %d samples, want %d", f, len(pcm), n)
				}
			}
		})
	}
}

func TestEncodeTo_ClearsDestination(t *testing.T) {
	t.Parallel()
	c, err := codec2.New(codec2.Mode1400)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	dst := bytes.Repeat([]byte{0xff}, c.BytesPerFrame())
	if err := c.EncodeTo(dst, make([]int16, c.SamplesPerFrame())); err != nil {
		t.Fatal(err)
	}
	c2, _ := codec2.New(codec2.Mode1400)
	defer c2.Close()
	want, err := c2.Encode(make([]int16, c2.SamplesPerFrame()))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(dst, want) {
		t.Errorf("EncodeTo into a dirty buffer = %x, want %x", dst, want)
	}
}

func TestEncodeDecode_Deterministic(t *testing.T) {
	t.Parallel()
	for _, mode := range allModes() {
		a, _ := codec2.New(mode)
		b, _ := codec2.New(mode)
		n := a.SamplesPerFrame()
		speech := voice(4 * n)
		for f := 0; f < 4; f++ {
			frame := speech[f*n : (f+1)*n]
			ba, err := a.Encode(frame)
			if err != nil {
				t.Fatal(err)
			}
			bb, err := b.Encode(frame)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(ba, bb) {
				t.Fatalf("%v frame %d: encoders disagree: %x vs %x", mode, f, ba, bb)
			}
			pa, _ := a.Decode(ba)
			pb, _ := b.Decode(bb)
			if !slices.Equal(pa, pb) {
				t.Fatalf("%v frame %d: decoders disagree", mode, f)
			}
		}
		a.Close()
		b.Close()
	}
}

func TestDecodeTo_InPlace(t *testing.T) {
	t.Parallel()
	c, _ := codec2.New(codec2.Mode2400)
	defer c.Close()

	frame := voice(c.SamplesPerFrame())
	bits := make([]byte, c.BytesPerFrame())
	if err := c.EncodeTo(bits, frame); err != nil {
		t.Fatal(err)
	}
	if err := c.DecodeTo(frame, bits); err != nil {
		t.Fatal(err)
	}
	if len(frame) != c.SamplesPerFrame() {
		t.Fatalf("frame length changed to %d", len(frame))
	}
}

func TestEncode_WrongLength(t *testing.T) {
	t.Parallel()
	c, _ := codec2.New(codec2.Mode3200)
	defer c.Close()

	if _, err := c.Encode(make([]int16, c.SamplesPerFrame()-1)); err == nil {
		t.Error("Encode: expected error for short frame")
	}
	if err := c.EncodeTo(make([]byte, 3), make([]int16, c.SamplesPerFrame())); err == nil {
		t.Error("EncodeTo: expected error for short bit buffer")
	}
	if _, err := c.Decode(make([]byte, c.BytesPerFrame()+1)); err == nil {
		t.Error("Decode: expected error for long bit frame")
	}
	if err := c.DecodeTo(make([]int16, 10), make([]byte, c.BytesPerFrame())); err == nil {
		t.Error("DecodeTo: expected error for short sample buffer")
	}
}

func TestClose(t *testing.T) {
	t.Parallel()
	c, _ := codec2.New(codec2.Mode1200)
	if err := c.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if _, err := c.Encode(make([]int16, c.SamplesPerFrame())); !errors.Is(err, codec2.ErrClosed) {
		t.Errorf("Encode after Close: got %v, want ErrClosed", err)
	}
	if _, err := c.Decode(make([]byte, c.BytesPerFrame())); !errors.Is(err, codec2.ErrClosed) {
		t.Errorf("Decode after Close: got %v, want ErrClosed", err)
	}
	if c.SamplesPerFrame() != 320 {
		t.Errorf("geometry must survive Close, got %d samples", c.SamplesPerFrame())
	}
}

func TestDecode_AnyBitPattern(t *testing.T) {
	t.Parallel()
	for _, mode := range allModes() {
		c, _ := codec2.New(mode)
		for _, fill := range []byte{0x00, 0xff, 0xa5, 0x5a} {
			bits := bytes.Repeat([]byte{fill}, c.BytesPerFrame())
			if _, err := c.Decode(bits); err != nil {
				t.Errorf("%v: Decode(%x): %v", mode, bits, err)
			}
		}
		c.Close()
	}
}
