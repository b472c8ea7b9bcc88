package massbalance

import "sort"

// SurfaceType classifies what melt energy reaches once the seasonal
// snowpack is gone.
type SurfaceType int

const (
	Bare SurfaceType = iota // no glacier ice in the bin
	Ice
	Snow
	Firn
)

func (t SurfaceType) String() string {
	switch t {
	case Bare:
		return "bare"
	case Ice:
		return "ice"
	case Snow:
		return "snow"
	case Firn:
		return "firn"
	}
	return "unknown"
}

// initialSurfaceTypes splits the glacier at its median active elevation:
// the ablation area exposes ice, the accumulation area holds snow.
func initialSurfaceTypes(surfaceElev, thick []float64) []SurfaceType {
	st := make([]SurfaceType, len(thick))
	var elevs []float64
	for i, h := range thick {
		if h > 0. {
			elevs = append(elevs, surfaceElev[i])
		}
	}
	med := median(elevs)
	for i, h := range thick {
		switch {
		case h <= 0.:
			st[i] = Bare
		case surfaceElev[i] < med:
			st[i] = Ice
		default:
			st[i] = Snow
		}
	}
	return st
}

// updateSurfaceTypes reclassifies each active bin from the running mean of
// its last five annual balances [m w.e.]: net loss exposes ice, net gain
// buries it under snow that ages into firn after its first year.
func updateSurfaceTypes(st []SurfaceType, mbHist [][]float64, thick []float64) {
	y0 := len(mbHist) - 5
	if y0 < 0 {
		y0 = 0
	}
	for i := range st {
		if thick[i] <= 0. {
			st[i] = Bare
			continue
		}
		mean, n := 0., 0
		for y := y0; y < len(mbHist); y++ {
			mean += mbHist[y][i]
			n++
		}
		mean /= float64(n)
		if mean <= 0. {
			st[i] = Ice
		} else if st[i] == Snow || st[i] == Firn {
			st[i] = Firn
		} else {
			st[i] = Snow
		}
	}
}

// beneathDDF returns the degree-day factor of the surface under the
// seasonal snowpack [m w.e. d-1 K-1]. Firn melts midway between snow and
// ice (Huss and Hock, 2015).
func beneathDDF(t SurfaceType, p Params) float64 {
	switch t {
	case Snow:
		return p.DDFSnow
	case Firn:
		return (p.DDFSnow + p.DDFIce) / 2.
	default:
		return p.DDFIce
	}
}

func median(x []float64) float64 {
	if len(x) == 0 {
		return 0.
	}
	s := append([]float64(nil), x...)
	sort.Float64s(s)
	if len(s)%2 == 1 {
		return s[len(s)/2]
	}
	return (s[len(s)/2-1] + s[len(s)/2]) / 2.
}
