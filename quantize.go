package codec2

import (
	"math"
	"math/bits"
)

const (
	woBits     = 7
	energyBits = 5
	woeBits    = 8
	eMinDB     = -10.0
	eMaxDB     = 40.0
)

// Bit widths of the uniform LSP quantisers. The fine grid gives 50 bits,
// the coarse one 27.
var (
	lspFineBits   = [LpcOrder]int{5, 5, 5, 5, 5, 5, 5, 5, 5, 5}
	lspCoarseBits = [LpcOrder]int{3, 3, 3, 3, 3, 3, 3, 2, 2, 2}
)

var woePredictor = [2]float64{0.8, 0.9}

// lspScalarBits returns the index width of scalar codebook i.
func lspScalarBits(i int) uint {
	return uint(bits.Len(uint(len(lspCodebooks[i]) - 1)))
}

// lspScalarTotal is the number of bits used by encodeLspsScalar.
func lspScalarTotal() int {
	n := 0
	for i := range lspCodebooks {
		n += int(lspScalarBits(i))
	}
	return n
}

func sumBits(b [LpcOrder]int) int {
	n := 0
	for _, v := range b {
		n += v
	}
	return n
}

// nearest returns the index of the codebook value closest to x.
func nearest(cb []float64, x float64) int {
	best := 0
	bestErr := math.Inf(1)
	for j, v := range cb {
		if e := (v - x) * (v - x); e < bestErr {
			bestErr = e
			best = j
		}
	}
	return best
}

// encodeLspsScalar quantises each LSP independently against its codebook.
func encodeLspsScalar(indexes []int, lsp []float64) {
	for i := range lspCodebooks {
		hz := 4000.0 / math.Pi * lsp[i]
		indexes[i] = nearest(lspCodebooks[i], hz)
	}
}

func decodeLspsScalar(lsp []float64, indexes []int) {
	for i, cb := range lspCodebooks {
		idx := max(0, min(indexes[i], len(cb)-1))
		lsp[i] = math.Pi / 4000.0 * cb[idx]
	}
}

// lspRange is the span of LSP i in Hz covered by its scalar codebook.
func lspRange(i int) (lo, hi float64) {
	cb := lspCodebooks[i]
	return cb[0], cb[len(cb)-1]
}

// encodeLspsUniform quantises each LSP on a uniform grid of 1<<widths[i]
// levels spanning the scalar codebook's range.
func encodeLspsUniform(indexes []int, lsp []float64, widths [LpcOrder]int) {
	for i, w := range widths {
		lo, hi := lspRange(i)
		levels := (1 << w) - 1
		hz := 4000.0 / math.Pi * lsp[i]
		idx := int(math.Floor((hz-lo)/(hi-lo)*float64(levels) + 0.5))
		if math.IsNaN(hz) {
			idx = 0
		}
		indexes[i] = max(0, min(idx, levels))
	}
}

func decodeLspsUniform(lsp []float64, indexes []int, widths [LpcOrder]int) {
	for i, w := range widths {
		lo, hi := lspRange(i)
		levels := (1 << w) - 1
		idx := max(0, min(indexes[i], levels))
		lsp[i] = math.Pi / 4000.0 * (lo + (hi-lo)*float64(idx)/float64(levels))
	}
}

// encodeWo quantises the fundamental linearly between woMin and woMax.
func encodeWo(cc *c2const, wo float64, nbits int) int {
	levels := 1 << nbits
	norm := (wo - cc.woMin) / (cc.woMax - cc.woMin)
	idx := int(math.Floor(float64(levels)*norm + 0.5))
	return max(0, min(idx, levels-1))
}

func decodeWo(cc *c2const, idx, nbits int) float64 {
	step := (cc.woMax - cc.woMin) / float64(int(1)<<nbits)
	return cc.woMin + step*float64(idx)
}

// encodeEnergy quantises energy linearly in dB between eMinDB and eMaxDB.
func encodeEnergy(e float64, nbits int) int {
	levels := 1 << nbits
	db := 10.0 * math.Log10(math.Max(e, 1e-12))
	norm := (db - eMinDB) / (eMaxDB - eMinDB)
	idx := int(math.Floor(float64(levels)*norm + 0.5))
	if math.IsNaN(norm) {
		idx = 0
	}
	return max(0, min(idx, levels-1))
}

func decodeEnergy(idx, nbits int) float64 {
	step := (eMaxDB - eMinDB) / float64(int(1)<<nbits)
	return math.Pow(10.0, (eMinDB+step*float64(idx))/10.0)
}

// encodeWoE jointly quantises pitch and energy against woeCodebook using a
// first order predictor whose state is xq.
func encodeWoE(m *model, e float64, xq *[2]float64) int {
	e = math.Max(e, 0)
	x := [2]float64{
		math.Log2(m.wo / math.Pi * 4000.0 / 50.0),
		10.0 * math.Log10(1e-4+e),
	}
	w := woeWeights(x, *xq)

	var residual [2]float64
	for i := range residual {
		residual[i] = x[i] - woePredictor[i]*xq[i]
	}

	best := 0
	bestDist := math.Inf(1)
	for i, v := range woeCodebook {
		d := 0.0
		for j := range v {
			diff := residual[j] - v[j]
			d += w[j] * diff * diff
		}
		if d < bestDist {
			bestDist = d
			best = i
		}
	}

	for i := range xq {
		xq[i] = woePredictor[i]*xq[i] + woeCodebook[best][i]
	}
	return best
}

// decodeWoE updates the predictor state and sets m.wo, m.l and m.e.
func decodeWoE(cc *c2const, m *model, xq *[2]float64, idx int) {
	for i := range xq {
		xq[i] = woePredictor[i]*xq[i] + woeCodebook[idx][i]
	}
	m.wo = math.Pow(2.0, xq[0]) * (math.Pi * 50.0) / 4000.0
	m.wo = math.Max(cc.woMin, math.Min(m.wo, cc.woMax))
	m.l = int(math.Floor(math.Pi / m.wo))
	m.e = math.Pow(10.0, xq[1]/10.0)
}

// woeWeights returns squared perceptual weights for the pitch and energy
// errors given the current vector x and the predictor state xp.
func woeWeights(x, xp [2]float64) [2]float64 {
	w := [2]float64{30.0, 1.0}
	if x[1] < 0 {
		w[0] *= 0.6
		w[1] *= 0.3
	}
	if x[1] < -10 {
		w[0] *= 0.3
		w[1] *= 0.3
	}
	if d := math.Abs(x[0] - xp[0]); d < 0.2 {
		w[0] *= 2.0
		w[1] *= 1.5
	} else if d > 0.5 {
		w[0] *= 0.5
	}
	if x[1] < xp[1]-10 {
		w[1] *= 0.5
	}
	if x[1] < xp[1]-20 {
		w[1] *= 0.5
	}
	w[0] *= w[0]
	w[1] *= w[1]
	return w
}
