package gem

import (
	"github.com/maseology/gem/flowline"
	"github.com/maseology/gem/massbalance"
)

// Ensemble shares one glacier, its climate forcing and a run configuration
// across any number of degree-day parameter realizations. Every evaluation
// runs on a copy of Fl, so an Ensemble can be reused and evaluated
// concurrently.
type Ensemble struct {
	Fl         *flowline.Flowline
	Cfg        Config
	Clim       massbalance.Climate
	Hemisphere string
	Obs        []float64 // observed annual glacier-wide balances [m w.e.], optional
}

// Result is the outcome of a single realization.
type Result struct {
	Id    int
	Par   massbalance.Params
	Score float64   // KGE against the observed balances, NaN without observations
	Vol   []float64 // [yr] glacier volume [m3]
	Area  []float64 // [yr] glacier plan-form area [m2]
	Wide  []float64 // [yr] glacier-wide specific balance [m w.e.]
	Elas  []float64 // [yr] equilibrium-line altitude [m asl]
	Thick []float64 // final bin ice thickness [m]
	Err   error
}
