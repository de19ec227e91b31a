package codec2

import (
	"fmt"
	"math"
)

// analyzeSubFrame shifts nSamp new samples into the analysis buffer and
// estimates pitch, harmonic amplitudes and voicing for m. Energy and LSPs
// are computed separately, at the mode's parameter update points.
func (c *Codec2) analyzeSubFrame(speech []float64, m *model) error {
	nSamp := c.c2c.nSamp
	mPitch := c.c2c.mPitch
	if len(c.sn) < mPitch {
		return fmt.Errorf("analysis buffer length (%d) is less than the pitch window (%d)", len(c.sn), mPitch)
	}
	if len(speech) < nSamp {
		return fmt.Errorf("subframe has %d samples, want %d", len(speech), nSamp)
	}

	copy(c.sn, c.sn[nSamp:mPitch])
	copy(c.sn[mPitch-nSamp:], speech[:nSamp])

	sw := make([]comp, fftSize)
	dftSpeech(&c.c2c, c.fwd, sw, c.sn, c.w)

	var pitch float64
	pitch, c.prevF0 = c.nlp.estimate(c.sn, nSamp, c.prevF0)
	m.wo = twoPi / pitch
	m.l = int(math.Floor(math.Pi / m.wo))

	twoStagePitchRefinement(&c.c2c, m, sw)
	estimateAmplitudes(m, sw, false)
	estimateVoicing(&c.c2c, m, sw, c.bigW)
	return nil
}

// dftSpeech windows the analysis buffer, centres it on sample zero and
// transforms it.
func dftSpeech(cc *c2const, f FFT, sw []comp, sn, w []float64) {
	mPitch := cc.mPitch
	nw := cc.nw
	in := make([]float64, fftSize)

	// second half of the window goes to the start of the FFT input
	for i := 0; i < nw/2; i++ {
		in[i] = sn[i+mPitch/2] * w[i+mPitch/2]
	}
	// first half wraps to the end
	for i := 0; i < nw/2; i++ {
		in[fftSize-nw/2+i] = sn[i+mPitch/2-nw/2] * w[i+mPitch/2-nw/2]
	}

	for i, v := range f.Forward(in) {
		sw[i] = comp{re: real(v), im: imag(v)}
	}
}

// harmonicSumRefine searches pitch periods in [pmin, pmax] for the one
// whose harmonics capture the most spectral energy.
func harmonicSumRefine(m *model, sw []comp, pmin, pmax, pstep float64) {
	var eMax float64
	woBest := m.wo
	r := twoPi / fftSize
	oneOnR := 1.0 / r
	for p := pmin; p <= pmax; p += pstep {
		e := 0.0
		wo := twoPi / p
		step := wo * oneOnR
		bf := step
		for k := 1; k <= m.l; k++ {
			b := int(bf + 0.5)
			e += sw[b].re*sw[b].re + sw[b].im*sw[b].im
			bf += step
		}
		if e > eMax {
			eMax = e
			woBest = wo
		}
	}
	m.wo = woBest
}

func twoStagePitchRefinement(cc *c2const, m *model, sw []comp) {
	harmonicSumRefine(m, sw, twoPi/m.wo-5, twoPi/m.wo+5, 1.0)
	harmonicSumRefine(m, sw, twoPi/m.wo-1, twoPi/m.wo+1, 0.25)

	m.wo = math.Max(m.wo, twoPi/float64(cc.pMax))
	m.wo = math.Min(m.wo, twoPi/float64(cc.pMin))
	m.l = int(math.Floor(math.Pi / m.wo))
	if m.wo*float64(m.l) >= 0.95*math.Pi {
		m.l--
	}
}

// estimateAmplitudes sets each harmonic amplitude to the RMS of the
// spectrum in the band around it.
func estimateAmplitudes(m *model, sw []comp, withPhase bool) {
	r := twoPi / fftSize
	oneOnR := 1.0 / r
	for k := 1; k <= m.l; k++ {
		am := int((float64(k)-0.5)*m.wo*oneOnR + 0.5)
		bm := int((float64(k)+0.5)*m.wo*oneOnR + 0.5)
		den := 0.0
		for i := am; i < bm; i++ {
			den += sw[i].re*sw[i].re + sw[i].im*sw[i].im
		}
		m.a[k] = math.Sqrt(den)

		if withPhase {
			b := int(float64(k)*m.wo/r + 0.5)
			b = max(0, min(b, len(sw)-1))
			m.phi[k] = math.Atan2(sw[b].im, sw[b].re)
		}
	}
}

// estimateVoicing makes the voiced/unvoiced decision from how well a
// harmonic model fits the low band, then corrects it with the low/high
// band energy ratio. It returns the fit SNR in dB.
func estimateVoicing(cc *c2const, m *model, sw []comp, w []float64) float64 {
	errAcc := 1e-4
	sig := 1e-4
	l1000 := int(float64(m.l) * 1000.0 / (float64(cc.fs) / 2))
	for l := 1; l <= l1000; l++ {
		sig += m.a[l] * m.a[l]
	}

	wo := m.wo
	for l := 1; l <= l1000; l++ {
		var am comp
		den := 0.0
		al := int(math.Ceil((float64(l)-0.5)*wo*fftSize/twoPi + 0.5))
		bl := int(math.Ceil((float64(l)+0.5)*wo*fftSize/twoPi + 0.5))
		offset := int(fftSize/2 - float64(l)*wo*fftSize/twoPi + 0.5)
		for k := al; k < bl; k++ {
			am.re += sw[k].re * w[offset+k]
			am.im += sw[k].im * w[offset+k]
			den += w[offset+k] * w[offset+k]
		}
		am.re /= den
		am.im /= den
		for k := al; k < bl; k++ {
			ewRe := sw[k].re - am.re*w[offset+k]
			ewIm := sw[k].im - am.im*w[offset+k]
			errAcc += ewRe*ewRe + ewIm*ewIm
		}
	}
	snr := 10.0 * math.Log10(sig/errAcc)
	m.voiced = snr > vThresh

	l2000 := int(float64(m.l) * 2000.0 / (float64(cc.fs) / 2))
	l4000 := int(float64(m.l) * 4000.0 / (float64(cc.fs) / 2))
	eLow, eHigh := 1e-4, 1e-4
	for l := 1; l <= l2000; l++ {
		eLow += m.a[l] * m.a[l]
	}
	for l := l2000; l <= l4000; l++ {
		eHigh += m.a[l] * m.a[l]
	}
	ratio := 10.0 * math.Log10(eLow/eHigh)

	if !m.voiced && ratio > 10.0 {
		m.voiced = true
	}
	if m.voiced {
		if ratio < -10.0 {
			m.voiced = false
		}
		sixty := 60.0 * twoPi / float64(cc.fs)
		if ratio < -4.0 && m.wo <= sixty {
			m.voiced = false
		}
	}
	return snr
}

// makeAnalysisWindow returns an mPitch long window whose central nw samples
// hold a Hann window normalised for the analysis FFT.
func makeAnalysisWindow(cc *c2const) []float64 {
	mPitch := cc.mPitch
	nw := cc.nw
	w := make([]float64, mPitch)
	start := mPitch/2 - nw/2
	sum := 0.0
	for i := start; i < start+nw; i++ {
		j := i - start
		w[i] = 0.5 - 0.5*math.Cos(twoPi*float64(j)/float64(nw-1))
		sum += w[i] * w[i]
	}
	norm := 1.0 / math.Sqrt(sum*fftSize)
	for i := range w {
		w[i] *= norm
	}
	return w
}
