package codec2

import "math"

// synthesizeSubFrame renders one 10ms subframe of m into speech: phase
// synthesis, post filtering, inverse FFT with overlap-add, gain, ear
// protection and conversion to 16-bit PCM.
func (c *Codec2) synthesizeSubFrame(m *model, speech []int16, aw []comp, gain float64) {
	nsam := c.c2c.nSamp

	h := make([]comp, maxAmp+1)
	samplePhase(m, h, aw)
	phaseSynthZeroOrder(nsam, m, &c.exPhase, h, &c.seed)

	postfilter(m, &c.bgEst, &c.seed)

	synthesise(nsam, c.inv, c.synth, m, c.pn, true)

	for i := 0; i < nsam; i++ {
		c.synth[i] *= gain
	}
	earProtection(c.synth[:nsam])

	for i := 0; i < nsam; i++ {
		s := c.synth[i]
		switch {
		case s > 32767.0:
			speech[i] = 32767
		case s < -32767.0:
			speech[i] = -32767
		default:
			speech[i] = int16(s)
		}
	}
}

// synthesise builds the harmonic spectrum of m, inverse transforms it and
// overlap-adds the result into sn with the trapezoidal window pn. When shift
// is set the buffer is advanced by nSamp first and the new tail overwrites
// rather than accumulates.
func synthesise(nSamp int, inv FFT, sn []float64, m *model, pn []float64, shift bool) {
	const n = fftSize
	half := n/2 + 1

	if shift {
		copy(sn[:nSamp-1], sn[nSamp:2*nSamp-1])
		sn[nSamp-1] = 0.0
	}

	sw := make([]complex128, half)
	r := twoPi / n
	for k := 1; k <= m.l; k++ {
		b := min(int(float64(k)*m.wo/r+0.5), half-1)
		sw[b] = complex(m.a[k]*math.Cos(m.phi[k]), m.a[k]*math.Sin(m.phi[k]))
	}

	// Hermitian symmetric full spectrum for a real output
	full := make([]complex128, n)
	full[0] = sw[0]
	full[n/2] = sw[n/2]
	for k := 1; k < n/2; k++ {
		full[k] = sw[k]
		full[n-k] = complex(real(sw[k]), -imag(sw[k]))
	}

	out := inv.Inverse(full)
	for i := range out {
		out[i] *= n
	}

	for i := 0; i < nSamp-1; i++ {
		sn[i] += out[n-nSamp+1+i] * pn[i]
	}
	for i, j := nSamp-1, 0; i < 2*nSamp && j < len(out); i, j = i+1, j+1 {
		if shift {
			sn[i] = out[j] * pn[i]
		} else {
			sn[i] += out[j] * pn[i]
		}
	}
}

// makeSynthesisWindow returns the 2*nSamp trapezoidal overlap-add window.
func makeSynthesisWindow(cc *c2const) []float64 {
	nsamp := cc.nSamp
	tw := cc.tw
	pn := make([]float64, 2*nsamp)

	inc := 1.0 / (2.0 * float64(tw))
	win := 0.0
	for i := nsamp/2 - tw; i < nsamp/2+tw; i++ {
		pn[i] = win
		win += inc
	}
	for i := nsamp/2 + tw; i < 3*nsamp/2-tw; i++ {
		pn[i] = 1.0
	}
	win = 1.0
	for i := 3*nsamp/2 - tw; i < 3*nsamp/2+tw; i++ {
		pn[i] = win
		win -= inc
	}
	return pn
}
