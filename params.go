package gem

import "math"

// hussParams are the empirical coefficients of the normalized
// ice-thickness-change curve of Huss and Hock (2015), fit by glacier size
// class.
type hussParams struct {
	gamma, a, b, c float64
}

// hussParamsForArea selects the size class from the glacier's current
// ice-covered area [m2]: large valley glaciers above 20 km², medium 5-20
// km², small below 5 km². An area exactly at a breakpoint takes the
// smaller class.
func hussParamsForArea(areaM2 float64) hussParams {
	switch km2 := areaM2 / 1e6; {
	case km2 > 20.:
		return hussParams{6., -0.02, 0.12, 0.}
	case km2 > 5.:
		return hussParams{4., -0.05, 0.19, 0.01}
	default:
		return hussParams{2., -0.30, 0.60, 0.09}
	}
}

// value evaluates the normalized thickness change at normalized elevation
// hn (0 at the glacier head, 1 at the terminus), clipped into [0,1] since
// the fitted polynomials over/undershoot slightly at the ends.
func (p hussParams) value(hn float64) float64 {
	v := math.Pow(hn+p.a, p.gamma) + p.b*(hn+p.a) + p.c
	if v < 0. {
		return 0.
	}
	if v > 1. {
		return 1.
	}
	return v
}
