package gem

import (
	"fmt"
	"math"
)

// propagateAdvance caps per-bin thickness gains at the advance threshold
// and places the freed volume into newly colonized terminus bins until no
// gain exceeds the threshold. dthick is the thickness-change field from
// the preceding curve pass; heights the year-start surface elevations.
// Volume that cannot be placed without leaving terrain the glacier has
// ever occupied is discarded and the section reverted, never accumulated
// silently.
func (s *Simulator) propagateAdvance(dthick, heights []float64) error {
	fl := s.fl
	n := fl.NBins()
	dx := fl.DX()
	thr := s.cfg.AdvanceThreshold

	for it := 0; exceedsAny(dthick, thr); it++ {
		if it >= s.cfg.MaxIterations {
			return fmt.Errorf("advance unresolved after %d passes: %w", it, ErrNonConvergence)
		}
		raw := fl.Copy()
		rawThick := raw.Thick()
		rawWidth := raw.Width()

		var adv []int
		for i := range dthick {
			if dthick[i] <= thr {
				dthick[i] = 0.
			} else {
				adv = append(adv, i)
			}
		}

		// cap gains at the threshold; the advancing bins keep exactly
		// their prior thickness plus the threshold
		th := fl.Thick()
		for _, i := range adv {
			th[i] -= dthick[i] - thr
		}
		fl.SetThick(th)

		// volume freed by the capping, to be placed downslope
		thNew, wNew := fl.Thick(), fl.Width()
		advVol := 0.
		for _, i := range adv {
			advVol += rawWidth[i]*dx*rawThick[i] - wNew[i]*dx*thNew[i]
		}

		// colonize the highest bin under the current terminus, never on
		// terrain below anything the glacier has occupied
		active := fl.ActiveBins()
		surf := fl.SurfaceElev()
		minElev := math.Inf(1)
		for _, i := range active {
			if surf[i] < minElev {
				minElev = surf[i]
			}
		}
		bin2add, best := -1, math.Inf(-1)
		for i := 0; i < n; i++ {
			if surf[i] >= minElev || s.bed[i] < s.initBedFloor {
				continue
			}
			if surf[i] > best {
				best, bin2add = surf[i], i
			}
		}
		if bin2add < 0 {
			// downslope domain edge: drop the volume
			fl.SetSection(raw.Section())
			return nil
		}

		sec := fl.Section()
		sec[bin2add] = advVol / dx
		fl.SetSection(sec)

		// fill the new bin to at most the average terminus thickness; the
		// terminus defined on the pre-colonization extent, then on the
		// initial extent when the current one cannot supply an average
		thick := fl.Thick()
		avg, ok := terminusAvgThickness(thick, heights, active, s.cfg.TerminusPercentage)
		if !ok {
			avg, _ = terminusAvgThickness(thick, heights, s.initIdx, s.cfg.TerminusPercentage)
		}
		if thick[bin2add] > avg { // false on an undefined (NaN) average
			thick[bin2add] = avg
			fl.SetThick(thick)
		}
		advVol -= fl.Section()[bin2add] * dx // volume the new bin absorbed
		if advVol <= 0. {
			return nil
		}

		// spread the residual across the glacier and re-examine the
		// resulting gains against the threshold
		okBelow := false
		minAct := math.Inf(1)
		for _, i := range active {
			if heights[i] < minAct {
				minAct = heights[i]
			}
		}
		for i := 0; i < n; i++ {
			if heights[i] < minAct && s.bed[i] >= s.initBedFloor {
				okBelow = true
				break
			}
		}
		if !okBelow {
			fl.SetSection(raw.Section())
			return nil
		}
		prior := fl.Copy()
		actNow := prior.ActiveBins()
		area := prior.BinAreas()
		asum := 0.
		for _, i := range actNow {
			asum += area[i]
		}
		mb := make([]float64, n)
		for _, i := range actNow {
			mb[i] = advVol / asum
		}
		dthick, _ = redistributeCurve(fl, prior, actNow, heights, advVol, mb, s.cfg.Tolerance)
	}
	return nil
}

// terminusAvgThickness averages ice thickness over the terminus subset of
// set: members whose normalized year-start elevation sits in the lowest
// pct of the set's range, widened to the whole set when fewer than two
// qualify. The subset's single lowest bin is excluded from the average (it
// may itself still need filling). ok is false when that lowest bin cannot
// be identified within the subset; the average is NaN when nothing but the
// lowest bin qualifies.
func terminusAvgThickness(thick, heights []float64, set []int, pct float64) (float64, bool) {
	if len(set) == 0 {
		return math.NaN(), false
	}
	hmin, hmax := math.Inf(1), math.Inf(-1)
	for _, i := range set {
		if heights[i] < hmin {
			hmin = heights[i]
		}
		if heights[i] > hmax {
			hmax = heights[i]
		}
	}
	var term []int
	if hmax > hmin {
		for _, i := range set {
			if (heights[i]-hmin)/(hmax-hmin)*100. < pct {
				term = append(term, i)
			}
		}
	}
	if len(term) <= 1 {
		term = set
	}

	tmin := math.Inf(1)
	for _, i := range term {
		if heights[i] < tmin {
			tmin = heights[i]
		}
	}
	// first bin anywhere matching the subset's lowest elevation; elevation
	// ties can point outside the subset
	minIdx := -1
	for i, h := range heights {
		if h == tmin {
			minIdx = i
			break
		}
	}
	member := false
	for _, i := range term {
		if i == minIdx {
			member = true
			break
		}
	}
	if !member {
		return math.NaN(), false
	}
	sum, cnt := 0., 0
	for _, i := range term {
		if i != minIdx {
			sum += thick[i]
			cnt++
		}
	}
	if cnt == 0 {
		return math.NaN(), true
	}
	return sum / float64(cnt), true
}
