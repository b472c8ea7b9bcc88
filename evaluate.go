package gem

import (
	"context"
	"fmt"
	"math"

	"github.com/maseology/gem/hyd"
	"github.com/maseology/gem/massbalance"
	"github.com/maseology/objfunc"
)

// buildRealization assembles a fresh simulator for one parameter set on a
// copy of the shared glacier.
func (e *Ensemble) buildRealization(par massbalance.Params) (*Simulator, *massbalance.DegreeDay, error) {
	fl := e.Fl.Copy()
	sm, err := hyd.StartMonth(e.Hemisphere)
	if err != nil {
		return nil, nil, err
	}
	dates, err := hyd.NewDatesTable(e.Cfg.StartYear, e.Cfg.NYears, sm, e.Cfg.LeapYears)
	if err != nil {
		return nil, nil, err
	}
	mb, err := massbalance.NewDegreeDay(e.Hemisphere, e.Clim, par, dates, fl)
	if err != nil {
		return nil, nil, err
	}
	s, err := New(fl, mb, e.Cfg)
	if err != nil {
		return nil, nil, err
	}
	return s, mb, nil
}

// collect gathers a finished realization's series and scores it against
// the observed balances.
func (e *Ensemble) collect(id int, par massbalance.Params, s *Simulator, mb *massbalance.DegreeDay) Result {
	res := Result{Id: id, Par: par, Score: math.NaN()}

	d := s.Diagnostics()
	res.Vol, res.Area = d.Volume, d.Area
	res.Wide, res.Elas = make([]float64, e.Cfg.NYears), make([]float64, e.Cfg.NYears)
	for k := 0; k < e.Cfg.NYears; k++ {
		res.Wide[k] = mb.WideMassBalance(k)
		res.Elas[k] = mb.ELA(k)
	}
	res.Thick = s.Flowline().Thick()

	if n := len(e.Obs); n > 0 {
		if n > e.Cfg.NYears {
			n = e.Cfg.NYears
		}
		res.Score = objfunc.KGE(e.Obs[:n], res.Wide[:n])
	}
	return res
}

// RunAndStore drives one parameter set over the full run horizon and
// assembles the model output dataset.
func (e *Ensemble) RunAndStore(par massbalance.Params) (*RunDataset, error) {
	s, _, err := e.buildRealization(par)
	if err != nil {
		return nil, err
	}
	return s.RunAndStore(context.Background(), e.Cfg.NYears)
}

// runOne evaluates one parameter set over the full run horizon.
func (e *Ensemble) runOne(id int, par massbalance.Params) Result {
	fail := func(err error) Result {
		return Result{Id: id, Par: par, Score: math.NaN(),
			Err: fmt.Errorf("realization %d: %w", id, err)}
	}
	s, mb, err := e.buildRealization(par)
	if err != nil {
		return fail(err)
	}
	if err := s.RunUntil(context.Background(), e.Cfg.NYears); err != nil {
		return fail(err)
	}
	return e.collect(id, par, s, mb)
}
