package gem

import (
	"github.com/maseology/gem/flowline"
)

// updateGeometry advances the glacier one hydrological year: geometry is
// frozen through the spin-up and constant-area windows (the mass balance
// is still fetched so providers can evolve their own state), otherwise the
// annual mass balance is pushed through the redistribution pipeline. The
// year's state is then recorded.
func (s *Simulator) updateGeometry(yr int) error {
	fl := s.fl
	heights := fl.SurfaceElev()

	frozen := s.cfg.AreaConstant || yr < s.cfg.SpinupYears || yr < s.cfg.ConstantAreaYears
	if frozen {
		s.mb.AnnualMassBalance(heights, yr)
	} else if len(fl.ActiveBins()) > 0 {
		mbClim := s.mb.AnnualMassBalance(heights, yr)
		if err := s.redistributeHuss(fl.Copy(), mbClim, heights, s.dates.SecondsInYear(yr)); err != nil {
			return err
		}
	}
	s.recordAnnual(yr)
	return nil
}

// redistributeHuss converts the climatic mass balance into a glacier-wide
// volume change [m3 ice] and spreads it across bins, resolving retreat and
// advance. A loss meeting or exceeding the glacier's volume removes it
// outright.
func (s *Simulator) redistributeHuss(prior *flowline.Flowline, mbClim, heights []float64,
	secInYear float64) error {

	fl := s.fl
	n := fl.NBins()

	area := prior.BinAreas()
	mbAnnual := make([]float64, n) // [m ice/s] -> [m ice]
	volChange := 0.
	for i := 0; i < n; i++ {
		mbAnnual[i] = mbClim[i] * secInYear
		volChange += mbAnnual[i] * area[i]
	}

	if -volChange >= fl.Volume() {
		fl.SetSection(make([]float64, n))
		return nil
	}

	active := fl.ActiveBins()
	dthick, remaining := redistributeCurve(fl, prior, active, heights, volChange, mbAnnual, s.cfg.Tolerance)

	if remaining < 0. {
		var err error
		if dthick, err = propagateRetreat(fl, heights, remaining, s.cfg.Tolerance, s.cfg.MaxIterations); err != nil {
			return err
		}
	}
	if exceedsAny(dthick, s.cfg.AdvanceThreshold) {
		return s.propagateAdvance(dthick, heights)
	}
	return nil
}

// recordAnnual stores the year's geometry in the engine diagnostics and,
// when the provider keeps coupling arrays, mirrors it there. Bin areas and
// the glacier-wide volume here are plan-form (width by spacing by
// thickness), zeroed where no ice is present; rectangular beds otherwise
// report their fixed bed width on empty bins.
func (s *Simulator) recordAnnual(yr int) {
	fl := s.fl
	area := fl.BinAreas()
	th, w := fl.Thick(), fl.Width()
	wideA, wideV := 0., 0.
	for i := range area {
		if th[i] <= 0. {
			w[i] = 0.
		}
		wideA += area[i]
		wideV += area[i] * th[i]
	}
	s.diag.record(yr, area, th, w, wideA, wideV)
	if r, ok := s.mb.(AnnualGeometryRecorder); ok {
		r.RecordAnnualGeometry(yr, area, th, w, wideA, wideV)
	}
}
