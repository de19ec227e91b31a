package codec2

import "math"

// interpWo sets the fundamental of interp, weight of the way from prev to
// next. Unvoiced subframes get woMin.
func interpWo(interp, prev, next *model, weight, woMin float64) {
	if interp.voiced && !prev.voiced && !next.voiced {
		interp.voiced = false
	}
	if interp.voiced {
		switch {
		case prev.voiced && next.voiced:
			interp.wo = (1.0-weight)*prev.wo + weight*next.wo
		case !prev.voiced && next.voiced:
			interp.wo = next.wo
		case prev.voiced && !next.voiced:
			interp.wo = prev.wo
		}
	} else {
		interp.wo = woMin
	}
	interp.l = int(math.Pi / interp.wo)
}

// interpEnergy interpolates linearly in the log domain.
func interpEnergy(prevE, nextE, weight float64) float64 {
	if prevE <= 0 || nextE <= 0 {
		return math.Sqrt(prevE * nextE)
	}
	return math.Pow(10.0, (1.0-weight)*math.Log10(prevE)+weight*math.Log10(nextE))
}

func interpLsps(interp, prev, next []float64, weight float64) {
	for i := range interp {
		interp[i] = (1.0-weight)*prev[i] + weight*next[i]
	}
}
