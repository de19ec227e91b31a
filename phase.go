package codec2

import "math"

const randMax = 32767

// phaseSynthZeroOrder advances the excitation phase by one subframe and
// sets each harmonic's phase to that of the excitation filtered by h.
// Unvoiced frames get random excitation phases.
func phaseSynthZeroOrder(nSamp int, m *model, exPhase *float64, h []comp, seed *uint64) {
	*exPhase += m.wo * float64(nSamp)
	*exPhase -= twoPi * math.Floor(*exPhase/twoPi+0.5)

	for k := 1; k <= m.l; k++ {
		var ex comp
		if m.voiced {
			ex = comp{re: math.Cos(*exPhase * float64(k)), im: math.Sin(*exPhase * float64(k))}
		} else {
			phi := twoPi * float64(nextRand(seed)) / randMax
			ex = comp{re: math.Cos(phi), im: math.Sin(phi)}
		}
		re := h[k].re*ex.re - h[k].im*ex.im
		im := h[k].im*ex.re + h[k].re*ex.im
		m.phi[k] = math.Atan2(im, re+1e-12)
	}
}

// samplePhase sets h[k] to the conjugate of the synthesis filter response
// a at harmonic k.
func samplePhase(m *model, h, a []comp) {
	r := twoPi / fftSize
	for k := 1; k <= m.l; k++ {
		b := int(float64(k)*m.wo/r + 0.5)
		b = max(0, min(b, len(a)-1))
		h[k] = comp{re: a[b].re, im: -a[b].im}
	}
}

// nextRand is the classic ANSI C linear congruential generator. It is kept
// so that decoded output is reproducible across runs and implementations.
func nextRand(seed *uint64) int {
	*seed = *seed*1103515245 + 12345
	return int((*seed / 65536) % 32768)
}
