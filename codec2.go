package codec2

import (
	"errors"
	"fmt"
	"math"
)

// ErrClosed is returned by a Codec2 after Close.
var ErrClosed = errors.New("codec2: codec is closed")

// Codec2 is a Codec 2 encoder/decoder pair for one mode. Encoder and
// decoder state share the instance, so a single Codec2 can round-trip a
// stream. It is not safe for concurrent use.
type Codec2 struct {
	mode   Mode
	nsam   int // samples per frame
	nbit   int // bits per frame
	c2c    c2const
	closed bool

	// encoder
	w      []float64 // analysis window, length mPitch
	sn     []float64 // analysis buffer, length mPitch
	bigW   []float64 // frequency domain window
	speech []float64 // current input frame as float
	nlp    *nlpState
	prevF0 float64 // Hz
	xqEnc  [2]float64

	// decoder
	synth     []float64 // overlap-add buffer, length 2*nSamp
	pn        []float64 // trapezoidal synthesis window
	prevModel model
	prevLsps  []float64
	prevE     float64
	xqDec     [2]float64
	lpcPF     bool
	bassBoost bool
	beta      float64
	gamma     float64
	exPhase   float64
	bgEst     float64
	seed      uint64

	fwd FFT
	inv FFT
}

// New creates a codec for mode.
func New(mode Mode) (*Codec2, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("codec2: unsupported mode %d", int(mode))
	}

	cc := newC2Const(SampleRate)
	c := &Codec2{
		mode:      mode,
		nsam:      subFrames(mode) * cc.nSamp,
		nbit:      frameBits(mode),
		c2c:       cc,
		w:         makeAnalysisWindow(&cc),
		sn:        make([]float64, cc.mPitch),
		bigW:      make([]float64, fftSize),
		nlp:       newNLP(&cc),
		prevF0:    1 / pMaxS,
		synth:     make([]float64, 2*cc.nSamp),
		pn:        makeSynthesisWindow(&cc),
		prevLsps:  make([]float64, LpcOrder),
		prevE:     1,
		lpcPF:     true,
		bassBoost: true,
		beta:      0.2,
		gamma:     0.5,
		seed:      1,
		fwd:       NewFFT(fftSize),
		inv:       NewFFT(fftSize),
	}
	c.speech = make([]float64, c.nsam)

	for i := range c.sn {
		c.sn[i] = 1.0
	}
	// TODO: replace the flat W with the transform of the analysis window;
	// voicing estimation currently assumes an ideal window response.
	for i := range c.bigW {
		c.bigW[i] = 1.0
	}
	for i := range c.prevLsps {
		c.prevLsps[i] = float64(i) * math.Pi / float64(LpcOrder+1)
	}

	c.prevModel = newModel()
	c.prevModel.wo = twoPi / float64(cc.pMax)
	c.prevModel.l = int(math.Pi / c.prevModel.wo)
	c.prevModel.voiced = false

	return c, nil
}

// subFrames is the number of 10ms subframes in one frame of mode.
func subFrames(mode Mode) int {
	switch mode {
	case Mode1400, Mode1200:
		return 4
	}
	return 2
}

// frameBits is the packed size of one frame of mode.
func frameBits(mode Mode) int {
	switch mode {
	case Mode3200:
		return 2 + woBits + energyBits + sumBits(lspFineBits)
	case Mode2400:
		return 2 + woeBits + lspScalarTotal() + 2
	case Mode1400:
		return 4 + 2*woeBits + lspScalarTotal()
	case Mode1200:
		return 4 + 2*woeBits + sumBits(lspCoarseBits) + 1
	}
	return 0
}

// Mode returns the codec's mode.
func (c *Codec2) Mode() Mode { return c.mode }

// SamplesPerFrame is the number of PCM samples consumed by Encode and
// produced by Decode.
func (c *Codec2) SamplesPerFrame() int { return c.nsam }

// BitsPerFrame is the number of meaningful bits in an encoded frame.
func (c *Codec2) BitsPerFrame() int { return c.nbit }

// BytesPerFrame is the encoded frame size, BitsPerFrame rounded up to whole
// bytes.
func (c *Codec2) BytesPerFrame() int { return (c.nbit + 7) / 8 }

// Close releases the codec's buffers. Further Encode or Decode calls
// return ErrClosed. Close is idempotent.
func (c *Codec2) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.w, c.sn, c.bigW, c.speech = nil, nil, nil, nil
	c.synth, c.pn, c.prevLsps = nil, nil, nil
	c.nlp = nil
	return nil
}

// Encode compresses one frame of SamplesPerFrame samples.
func (c *Codec2) Encode(pcm []int16) ([]byte, error) {
	bits := make([]byte, c.BytesPerFrame())
	if err := c.EncodeTo(bits, pcm); err != nil {
		return nil, err
	}
	return bits, nil
}

// EncodeTo compresses pcm into dst, which must be BytesPerFrame long.
func (c *Codec2) EncodeTo(dst []byte, pcm []int16) error {
	if c.closed {
		return ErrClosed
	}
	if len(pcm) != c.nsam {
		return fmt.Errorf("invalid PCM frame length: got %d, want %d", len(pcm), c.nsam)
	}
	if len(dst) != c.BytesPerFrame() {
		return fmt.Errorf("invalid bits buffer length: got %d, want %d", len(dst), c.BytesPerFrame())
	}

	for i, s := range pcm {
		c.speech[i] = float64(s)
	}

	w := newBitWriter(dst)
	var err error
	switch c.mode {
	case Mode3200:
		err = c.encode3200(w)
	case Mode2400:
		err = c.encode2400(w)
	case Mode1400:
		err = c.encode40ms(w, false)
	case Mode1200:
		err = c.encode40ms(w, true)
	}
	if err != nil {
		return err
	}
	if w.n != uint(c.nbit) {
		return fmt.Errorf("bit packing error: got %d bits, expected %d", w.n, c.nbit)
	}
	return nil
}

// Decode reconstructs SamplesPerFrame samples from one encoded frame.
func (c *Codec2) Decode(bits []byte) ([]int16, error) {
	speech := make([]int16, c.nsam)
	if err := c.DecodeTo(speech, bits); err != nil {
		return nil, err
	}
	return speech, nil
}

// DecodeTo reconstructs one frame into dst, which must be SamplesPerFrame
// long. dst may be the slice that was just encoded.
func (c *Codec2) DecodeTo(dst []int16, bits []byte) error {
	if c.closed {
		return ErrClosed
	}
	if len(bits) != c.BytesPerFrame() {
		return fmt.Errorf("invalid bits buffer length: got %d, want %d", len(bits), c.BytesPerFrame())
	}
	if len(dst) != c.nsam {
		return fmt.Errorf("invalid PCM frame length: got %d, want %d", len(dst), c.nsam)
	}

	r := newBitReader(bits)
	switch c.mode {
	case Mode3200:
		return c.decode20ms(r, dst, c.unpack3200)
	case Mode2400:
		return c.decode20ms(r, dst, c.unpack2400)
	case Mode1400:
		return c.decode40ms(r, dst, false)
	case Mode1200:
		return c.decode40ms(r, dst, true)
	}
	return fmt.Errorf("codec2: unsupported mode %d", int(c.mode))
}
