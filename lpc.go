package codec2

import "math"

const lspDelta = 0.01 // grid spacing of the LSP root search

// speechToLsps runs LPC analysis over the windowed analysis buffer and
// returns the LPC energy and the unquantised LSPs in radians.
func speechToLsps(sn, w []float64, order int) (float64, []float64) {
	wn := make([]float64, len(sn))
	energy := 0.0
	for i := range sn {
		wn[i] = sn[i] * w[i]
		energy += wn[i] * wn[i]
	}

	lsp := make([]float64, order)
	if energy == 0.0 {
		evenLsps(lsp)
		return 0, lsp
	}

	r := make([]float64, order+1)
	for i := 0; i <= order; i++ {
		for j := 0; j < len(wn)-i; j++ {
			r[i] += wn[j] * wn[j+i]
		}
	}

	ak := levinsonDurbin(r, order)
	e := 0.0
	for i := 0; i <= order; i++ {
		e += ak[i] * r[i]
	}

	// bandwidth expansion
	for i := 0; i <= order; i++ {
		ak[i] *= math.Pow(0.994, float64(i))
	}

	if roots := lpcToLsp(ak, lsp, order, 5, lspDelta); roots != order {
		evenLsps(lsp)
	}
	return e, lsp
}

// evenLsps fills lsp with evenly spaced values, a benign fallback when LPC
// analysis fails.
func evenLsps(lsp []float64) {
	for i := range lsp {
		lsp[i] = math.Pi / float64(len(lsp)) * float64(i)
	}
}

func levinsonDurbin(r []float64, order int) []float64 {
	ak := make([]float64, order+1)
	prev := make([]float64, order+1)
	e := r[0]
	ak[0] = 1.0
	for i := 1; i <= order; i++ {
		sum := 0.0
		for j := 1; j < i; j++ {
			sum += ak[j] * r[i-j]
		}
		k := -(r[i] + sum) / e
		copy(prev, ak[:i+1])
		for j := 1; j < i; j++ {
			ak[j] = prev[j] + k*prev[i-j]
		}
		ak[i] = k
		e *= 1 - k*k
	}
	return ak
}

// lpcToLsp finds the LSPs of the LPC polynomial a by searching for sign
// changes of the Chebyshev expansions of P and Q on a grid of size delta,
// refining each root with nb bisections. It returns the number of roots
// found.
func lpcToLsp(a, lsp []float64, order, nb int, delta float64) int {
	m := order / 2
	p := make([]float64, order+1)
	q := make([]float64, order+1)
	p[0], q[0] = 1.0, 1.0
	for i := 1; i <= m; i++ {
		p[i] = a[i] + a[order+1-i] - p[i-1]
		q[i] = a[i] - a[order+1-i] + q[i-1]
	}
	for i := 0; i < m; i++ {
		p[i] *= 2.0
		q[i] *= 2.0
	}

	roots := 0
	xl, xr := 1.0, 0.0
	var xm float64
	for j := 0; j < order; j++ {
		poly := p
		if j%2 == 1 {
			poly = q
		}
		poly = poly[:m+1]

		psuml := chebPolyEval(poly, xl, order)
		for searching := true; searching && xr >= -1.0; {
			xr = xl - delta
			psumr := chebPolyEval(poly, xr, order)
			if psumr*psuml < 0.0 || psumr == 0.0 {
				roots++
				for k := 0; k <= nb; k++ {
					xm = (xl + xr) / 2.0
					psumm := chebPolyEval(poly, xm, order)
					if psumm*psuml > 0.0 {
						psuml = psumm
						xl = xm
					} else {
						xr = xm
					}
				}
				lsp[j] = xm
				xl = xm
				searching = false
			} else {
				psuml = psumr
				xl = xr
			}
		}
	}

	for i := 0; i < order; i++ {
		lsp[i] = math.Acos(math.Max(-1.0, math.Min(1.0, lsp[i])))
	}
	return roots
}

// chebPolyEval evaluates the Chebyshev series coef (length order/2+1,
// highest order first) at x.
func chebPolyEval(coef []float64, x float64, order int) float64 {
	n := order/2 + 1
	t := make([]float64, n)
	t[0] = 1.0
	if n > 1 {
		t[1] = x
	}
	for i := 2; i < n; i++ {
		t[i] = 2*x*t[i-1] - t[i-2]
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += coef[order/2-i] * t[i]
	}
	return sum
}

// checkLspOrder swaps out-of-order neighbours apart until the LSPs are
// ascending, returning the number of swaps.
func checkLspOrder(lsp []float64) int {
	swaps := 0
	for i := 1; i < len(lsp); i++ {
		if lsp[i] < lsp[i-1] {
			swaps++
			tmp := lsp[i-1]
			lsp[i-1] = lsp[i] - 0.1
			lsp[i] = tmp + 0.1
			i = 0
		}
	}
	return swaps
}

// bwExpandLsps enforces a minimum spacing in Hz between adjacent LSPs:
// minSepLow for the first four, minSepHigh above.
func bwExpandLsps(lsp []float64, minSepLow, minSepHigh float64) {
	factor := math.Pi / 4000.0
	for i := 1; i < len(lsp); i++ {
		sep := minSepHigh
		if i < 4 {
			sep = minSepLow
		}
		if lsp[i]-lsp[i-1] < sep*factor {
			lsp[i] = lsp[i-1] + sep*factor
		}
	}
}

// lspToLpc converts LSPs in radians to LPC coefficients ak[0..order].
func lspToLpc(lsp, ak []float64, order int) {
	xfreq := make([]float64, order)
	for i := range xfreq {
		xfreq[i] = math.Cos(lsp[i])
	}

	n := order / 2
	wp := make([]float64, order*4+2)
	xin1, xin2 := 1.0, 1.0
	for j := 0; j <= order; j++ {
		for i := 0; i < n; i++ {
			idx := i * 4
			xout1 := xin1 - 2.0*xfreq[2*i]*wp[idx] + wp[idx+1]
			xout2 := xin2 - 2.0*xfreq[2*i+1]*wp[idx+2] + wp[idx+3]
			wp[idx+1] = wp[idx]
			wp[idx+3] = wp[idx+2]
			wp[idx] = xin1
			wp[idx+2] = xin2
			xin1 = xout1
			xin2 = xout2
		}
		if n > 0 {
			last := (n-1)*4 + 3
			xout1 := xin1 + wp[last+1]
			xout2 := xin2 - wp[last+2]
			ak[j] = 0.5 * (xout1 + xout2)
			wp[last+1] = xin1
			wp[last+2] = xin2
		} else {
			ak[j] = 1.0
		}
		xin1, xin2 = 0.0, 0.0
	}
}
