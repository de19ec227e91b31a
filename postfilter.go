package codec2

import "math"

const (
	bgThresh = 40.0 // dB
	bgBeta   = 0.1
	bgMargin = 6.0
)

// postfilter tracks background noise in unvoiced frames and randomises the
// phase of voiced harmonics that fall below it, which reduces the buzzy
// quality of low level voiced speech.
func postfilter(m *model, bgEst *float64, seed *uint64) {
	e := 1e-12
	for k := 1; k <= m.l; k++ {
		e += m.a[k] * m.a[k]
	}
	e = 10.0 * math.Log10(e/float64(m.l))
	if e < bgThresh && !m.voiced {
		*bgEst = *bgEst*(1.0-bgBeta) + e*bgBeta
	}

	if !m.voiced {
		return
	}
	thresh := math.Pow(10.0, (*bgEst+bgMargin)/20.0)
	for k := 1; k <= m.l; k++ {
		if m.a[k] < thresh {
			m.phi[k] = twoPi / randMax * float64(nextRand(seed))
		}
	}
}

// earProtection attenuates a subframe whose peak exceeds 30000. Each dB over
// the set point costs two dB of level, so large excursions from bit errors
// are pulled down hardest.
func earProtection(buf []float64) {
	peak := 0.0
	for _, s := range buf {
		peak = math.Max(peak, math.Abs(s))
	}
	over := peak / 30000.0
	if over <= 1.0 {
		return
	}
	gain := 1.0 / (over * over)
	for i := range buf {
		buf[i] *= gain
	}
}

// aksToM2 samples the LPC synthesis filter 1/A(z) at each harmonic of m and
// replaces the harmonic amplitudes with it. aw receives A(e^jw). It returns
// the SNR between the old and new amplitudes in dB.
func (c *Codec2) aksToM2(ak []float64, m *model, e float64, aw []comp) float64 {
	r := twoPi / fftSize

	a := make([]float64, fftSize)
	copy(a, ak[:LpcOrder+1])
	for i, v := range c.fwd.Forward(a) {
		aw[i] = comp{re: real(v), im: imag(v)}
	}

	pw := make([]float64, fftSize/2)
	for i := range pw {
		pw[i] = 1.0 / (aw[i].re*aw[i].re + aw[i].im*aw[i].im + 1e-6)
	}

	if c.lpcPF {
		c.lpcPostFilter(pw, ak, e)
	} else {
		for i := range pw {
			pw[i] *= e
		}
	}

	signal := 1e-30
	noise := 1e-32
	for k := 1; k <= m.l; k++ {
		am := int((float64(k)-0.5)*m.wo/r + 0.5)
		bm := min(int((float64(k)+0.5)*m.wo/r+0.5), fftSize/2)
		em := 0.0
		for i := am; i < bm; i++ {
			em += pw[i]
		}
		amp := math.Sqrt(em)
		signal += m.a[k] * m.a[k]
		noise += (m.a[k] - amp) * (m.a[k] - amp)
		m.a[k] = amp
	}
	return 10.0 * math.Log10(signal/noise)
}

// lpcPostFilter sharpens the formants of the power spectrum pw by weighting
// it with (A(z/gamma)/A(z))^beta, keeping the overall energy at e, and
// optionally lifts the band below 1 kHz.
func (c *Codec2) lpcPostFilter(pw, ak []float64, e float64) {
	x := make([]float64, fftSize)
	x[0] = ak[0]
	coeff := c.gamma
	for i := 1; i <= LpcOrder; i++ {
		x[i] = ak[i] * coeff
		coeff *= c.gamma
	}
	ww := c.fwd.Forward(x)

	bins := fftSize / 2
	eBefore := 1e-4
	for i := 0; i < bins; i++ {
		eBefore += pw[i]
	}

	eAfter := 1e-4
	for i := 0; i < bins; i++ {
		mag2 := real(ww[i])*real(ww[i]) + imag(ww[i])*imag(ww[i])
		rw := math.Sqrt(mag2 * pw[i])
		pf := math.Pow(rw, c.beta)
		pw[i] *= pf * pf
		eAfter += pw[i]
	}

	gain := eBefore / eAfter * e
	for i := 0; i < bins; i++ {
		pw[i] *= gain
	}

	if c.bassBoost {
		for i := 0; i < fftSize/8; i++ {
			pw[i] *= 1.4 * 1.4
		}
	}
}

// applyLpcCorrection attenuates the first harmonic of low pitched voices,
// which LPC modelling overestimates.
func applyLpcCorrection(m *model) {
	if m.wo < math.Pi*150.0/4000.0 {
		m.a[1] *= 0.032
	}
}
