package codec2

import "github.com/mjibson/go-dsp/fft"

// FFT is the transform used by analysis and synthesis.
type FFT interface {
	Forward(in []float64) []complex128
	Inverse(in []complex128) []float64
}

// dspFFT implements FFT with go-dsp.
type dspFFT struct {
	size int
}

// NewFFT returns an FFT of the given size.
func NewFFT(size int) FFT {
	return &dspFFT{size: size}
}

// Forward returns the FFT of a real-valued input.
func (f *dspFFT) Forward(in []float64) []complex128 {
	return fft.FFTReal(in)
}

// Inverse returns the real part of the inverse FFT. go-dsp scales by 1/N;
// synthesise undoes that.
func (f *dspFFT) Inverse(in []complex128) []float64 {
	out := fft.IFFT(in)
	re := make([]float64, len(out))
	for i, v := range out {
		re[i] = real(v)
	}
	return re
}
