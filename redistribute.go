package gem

import (
	"math"

	"github.com/maseology/gem/flowline"
)

// redistributeCurve applies one pass of the Huss and Hock (2015) normalized
// thickness-change curve, moving fl's section toward the requested
// glacier-wide volume change [m3 ice]. prior is the pre-pass state; active
// the bins carrying ice at entry; heights the year-start surface
// elevations; mbAnnual the annualized per-bin mass balance [m ice] that
// weights the fallback for nearly vanished glaciers (fewer than four
// active bins, where the curve has no shape to work with).
//
// Returns the per-bin thickness change and the volume change that could
// not be absorbed, negative once bins bottom out at zero section. Residuals
// under tol are zeroed so rounding noise cannot drive the retreat and
// advance iterations.
func redistributeCurve(fl, prior *flowline.Flowline, active []int, heights []float64,
	volChange float64, mbAnnual []float64, tol float64) ([]float64, float64) {

	n := fl.NBins()
	dx := fl.DX()
	area := prior.BinAreas()

	binVol := make([]float64, n) // requested volume change per bin [m3]
	curved := false
	if len(active) > 3 {
		asum := 0.
		for _, i := range active {
			asum += area[i]
		}
		par := hussParamsForArea(asum)

		hmax, hmin := math.Inf(-1), math.Inf(1)
		for _, i := range active {
			if heights[i] > hmax {
				hmax = heights[i]
			}
			if heights[i] < hmin {
				hmin = heights[i]
			}
		}
		if hmax > hmin {
			cn, den := make([]float64, n), 0.
			for _, i := range active {
				cn[i] = par.value((hmax - heights[i]) / (hmax - hmin))
				den += area[i] * cn[i]
			}
			if den != 0. {
				fs := volChange / den // thickness scale [m ice]
				for _, i := range active {
					binVol[i] = cn[i] * fs * area[i]
				}
				curved = true
			}
		}
	}
	if !curved {
		for _, i := range active {
			binVol[i] = mbAnnual[i] * area[i]
		}
	}

	// the section is the authoritative update path: thickness must stay
	// derived or volume is not conserved on curved beds
	secPrior := prior.Section()
	sec := fl.Section()
	for i := 0; i < n; i++ {
		s := sec[i] + binVol[i]/dx
		if s < 0. {
			s = 0.
		}
		sec[i] = s
	}
	fl.SetSection(sec)

	thickPrior := prior.Thick()
	thick := fl.Thick()
	dthick := make([]float64, n)
	remaining := 0.
	for i := 0; i < n; i++ {
		dthick[i] = thick[i] - thickPrior[i]
		r := binVol[i] - (sec[i]-secPrior[i])*dx
		if math.Abs(r) < tol {
			r = 0.
		}
		remaining += r
	}
	return dthick, remaining
}

func exceedsAny(x []float64, thr float64) bool {
	for _, v := range x {
		if v > thr {
			return true
		}
	}
	return false
}
