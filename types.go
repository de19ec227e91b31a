package codec2

import "math"

const twoPi = 2.0 * math.Pi

// Sampling and analysis geometry shared by every mode.
const (
	SampleRate         = 8000 // Hz
	SamplesPerSubFrame = 80   // one 10ms analysis subframe
	LpcOrder           = 10
)

// FFT and pitch estimator constants.
const (
	fftSize   = 512
	peFFTSize = 512  // DFT size for pitch estimation
	nlpDec    = 5    // decimation factor in the pitch estimator
	nlpCNLP   = 0.3  // sub-multiple post processor threshold
	vThresh   = 6.0  // voicing SNR threshold in dB
	nlpNTap   = 48   // decimation FIR filter order
	nlpCoeff  = 0.95 // DC notch filter parameter
	maxAmp    = 160  // maximum number of harmonics
)

// Timing of the analysis and synthesis windows, in seconds.
const (
	mPitchS = 0.0400 // pitch analysis window
	pMinS   = 0.0025 // minimum pitch period
	pMaxS   = 0.0200 // maximum pitch period
	twS     = 0.0050 // trapezoidal synthesis window overlap
)

// PCMBuffer holds signed 16-bit PCM samples.
type PCMBuffer []int16

type comp struct {
	re float64
	im float64
}

// model holds the sinusoidal parameters of one 10ms subframe.
type model struct {
	wo     float64   // fundamental frequency in radians
	l      int       // number of harmonics
	a      []float64 // harmonic amplitudes, index 0 unused
	phi    []float64 // harmonic phases, index 0 unused
	voiced bool
	e      float64 // LPC energy
}

func newModel() model {
	return model{
		voiced: true,
		e:      1.0,
		a:      make([]float64, maxAmp+1),
		phi:    make([]float64, maxAmp+1),
	}
}

// c2const holds the geometry derived from SampleRate at construction time.
type c2const struct {
	fs     int     // sample rate
	nSamp  int     // samples per 10ms subframe
	mPitch int     // pitch analysis window in samples
	pMin   int     // minimum pitch period in samples
	pMax   int     // maximum pitch period in samples
	woMin  float64 // minimum fundamental in radians
	woMax  float64 // maximum fundamental in radians
	nw     int     // analysis window length in samples
	tw     int     // synthesis window overlap in samples
}

func newC2Const(fs int) c2const {
	nw := 279
	if fs != 8000 {
		// keeps the FFT size constant at the cost of a shorter window
		nw = 511
	}
	return c2const{
		fs:     fs,
		nSamp:  int(math.Round(float64(fs) * 0.01)),
		mPitch: int(math.Floor(float64(fs) * mPitchS)),
		pMin:   int(math.Floor(float64(fs) * pMinS)),
		pMax:   int(math.Floor(float64(fs) * pMaxS)),
		woMin:  twoPi / math.Floor(float64(fs)*pMaxS),
		woMax:  twoPi / math.Floor(float64(fs)*pMinS),
		nw:     nw,
		tw:     int(float64(fs) * twS),
	}
}
