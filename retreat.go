package gem

import (
	"fmt"

	"github.com/maseology/gem/flowline"
)

// propagateRetreat re-invokes the redistribution curve over the shrinking
// active-bin set until the outstanding volume loss is absorbed. remaining
// must be negative at entry. Each pass spreads the deficit uniformly over
// whatever ice survives; bins that bottom out push their share onto the
// next pass. Returns the thickness-change field of the final pass.
func propagateRetreat(fl *flowline.Flowline, heights []float64, remaining float64,
	tol float64, maxIter int) ([]float64, error) {

	var dthick []float64
	for it := 0; remaining < 0.; it++ {
		if it >= maxIter {
			return nil, fmt.Errorf("retreat still holds %e m3 after %d passes: %w",
				remaining, it, ErrNonConvergence)
		}
		prior := fl.Copy()
		active := prior.ActiveBins()
		if len(active) == 0 {
			// nothing left to take from
			return make([]float64, fl.NBins()), nil
		}
		area := prior.BinAreas()
		asum := 0.
		for _, i := range active {
			asum += area[i]
		}
		mb := make([]float64, fl.NBins())
		for _, i := range active {
			mb[i] = remaining / asum
		}
		dthick, remaining = redistributeCurve(fl, prior, active, heights, remaining, mb, tol)
	}
	return dthick, nil
}
