package codec2

import "math"

// nlpFir is a 48-tap 600 Hz low-pass filter applied before decimation.
var nlpFir = [nlpNTap]float64{
	-1.0818124e-03, -1.1008344e-03, -9.2768838e-04, -4.2289438e-04,
	5.5034190e-04, 2.0029849e-03, 3.7058509e-03, 5.1449415e-03,
	5.5924666e-03, 4.3036754e-03, 8.0284511e-04, -4.8204610e-03,
	-1.1705810e-02, -1.8199275e-02, -2.2065282e-02, -2.0920610e-02,
	-1.2808831e-02, 3.2204775e-03, 2.6683811e-02, 5.5520624e-02,
	8.6305944e-02, 1.1480192e-01, 1.3674206e-01, 1.4867556e-01,
	1.4867556e-01, 1.3674206e-01, 1.1480192e-01, 8.6305944e-02,
	5.5520624e-02, 2.6683811e-02, 3.2204775e-03, -1.2808831e-02,
	-2.0920610e-02, -2.2065282e-02, -1.8199275e-02, -1.1705810e-02,
	-4.8204610e-03, 8.0284511e-04, 4.3036754e-03, 5.5924666e-03,
	5.1449415e-03, 3.7058509e-03, 2.0029849e-03, 5.5034190e-04,
	-4.2289438e-04, -9.2768838e-04, -1.1008344e-03, -1.0818124e-03,
}

// nlpState is the non-linear pitch estimator. It squares the speech,
// removes DC, low-pass filters and decimates, then picks the strongest
// spectral peak and checks its sub-multiples.
type nlpState struct {
	fs     int
	m      int
	sq     []float64
	memX   float64
	memY   float64
	memFir [nlpNTap]float64
	fft    FFT
	w      []float64 // window over the decimated signal
	pMin   int
	pMax   int
}

func newNLP(cc *c2const) *nlpState {
	m := cc.mPitch
	s := &nlpState{
		fs:   cc.fs,
		m:    m,
		sq:   make([]float64, m),
		fft:  NewFFT(peFFTSize),
		pMin: cc.pMin,
		pMax: cc.pMax,
	}
	n := m / nlpDec
	s.w = make([]float64, n)
	for i := range s.w {
		s.w[i] = 0.5 - 0.5*math.Cos(twoPi*float64(i)/float64(n-1))
	}
	return s
}

// estimate consumes the newest n samples of sn and returns the pitch period
// in samples together with the new F0 estimate in Hz.
func (s *nlpState) estimate(sn []float64, n int, prevF0 float64) (float64, float64) {
	m := s.m
	for i := m - n; i < m; i++ {
		s.sq[i] = sn[i] * sn[i]
	}

	for i := m - n; i < m; i++ {
		notch := s.sq[i] - s.memX
		notch += nlpCoeff * s.memY
		s.memX = s.sq[i]
		s.memY = notch
		s.sq[i] = notch + 1.0
	}

	for i := m - n; i < m; i++ {
		copy(s.memFir[:], s.memFir[1:])
		s.memFir[nlpNTap-1] = s.sq[i]
		acc := 0.0
		for j := 0; j < nlpNTap; j++ {
			acc += s.memFir[j] * nlpFir[j]
		}
		s.sq[i] = acc
	}

	in := make([]float64, peFFTSize)
	for i := 0; i < m/nlpDec; i++ {
		in[i] = s.sq[i*nlpDec] * s.w[i]
	}
	fw := make([]float64, peFFTSize)
	for i, v := range s.fft.Forward(in) {
		fw[i] = real(v)*real(v) + imag(v)*imag(v)
	}

	minBin := peFFTSize * nlpDec / s.pMax
	maxBin := peFFTSize * nlpDec / s.pMin
	gmax := 0.0
	gmaxBin := minBin
	for i := minBin; i <= maxBin; i++ {
		if fw[i] > gmax {
			gmax = fw[i]
			gmaxBin = i
		}
	}

	bestF0 := s.postProcessSubMultiples(fw, gmax, gmaxBin, prevF0)

	copy(s.sq, s.sq[n:m])
	return float64(s.fs) / bestF0, bestF0
}

// postProcessSubMultiples looks for a peak at gmaxBin/2, gmaxBin/3, ... that
// is strong enough to be the real fundamental. The threshold is relaxed
// near the previous frame's F0.
func (s *nlpState) postProcessSubMultiples(fw []float64, gmax float64, gmaxBin int, prevF0 float64) float64 {
	minBin := peFFTSize * nlpDec / s.pMax
	cmaxBin := gmaxBin
	prevBin := int(prevF0 * float64(peFFTSize*nlpDec) / float64(s.fs))

	for mult := 2; gmaxBin/mult >= minBin; mult++ {
		b := gmaxBin / mult
		bmin := max(int(0.8*float64(b)), minBin)
		bmax := int(1.2 * float64(b))

		thresh := nlpCNLP * gmax
		if prevBin > bmin && prevBin < bmax {
			thresh *= 0.5
		}

		lmax := 0.0
		lmaxBin := bmin
		for b2 := bmin; b2 <= bmax; b2++ {
			if fw[b2] > lmax {
				lmax = fw[b2]
				lmaxBin = b2
			}
		}

		if lmax > thresh && lmaxBin > 0 && lmaxBin+1 < len(fw) {
			if fw[lmaxBin-1] < lmax && fw[lmaxBin+1] < lmax {
				cmaxBin = lmaxBin
			}
		}
	}

	return float64(cmaxBin) * float64(s.fs) / float64(peFFTSize*nlpDec)
}
