package gem

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"
	"time"

	"github.com/maseology/gem/massbalance"
	"github.com/maseology/gem/opt"
	"github.com/maseology/glbopt"
	mrg63k3a "github.com/maseology/pnrg/MRG63k3a"
)

// Calibrate searches the degree-day parameter space by shuffled complex
// evolution for the best KGE against the observed balance series; ncmplx
// complexes, one per processor when ncmplx < 1. Realizations that fail or
// score NaN are pushed to the bottom of the search.
func (e *Ensemble) Calibrate(ncmplx int) (massbalance.Params, float64, error) {
	if len(e.Obs) == 0 {
		return massbalance.Params{}, 0., fmt.Errorf("calibrate: no observed balances to fit")
	}
	if ncmplx < 1 {
		ncmplx = runtime.GOMAXPROCS(0)
	}

	rng := rand.New(mrg63k3a.New())
	rng.Seed(time.Now().UnixNano())

	gen := func(u []float64) float64 {
		res := e.runOne(-1, opt.Par7(u))
		if res.Err != nil || math.IsNaN(res.Score) {
			return -9999.
		}
		return res.Score
	}

	fmt.Println(" optimizing..")
	uFinal, _ := glbopt.SCE(ncmplx, opt.NDim, rng, gen, false)

	par := opt.Par7(uFinal)
	final := e.runOne(-1, par)
	if final.Err != nil {
		return par, 0., final.Err
	}
	fmt.Printf("\nfinal parameters:\n\tddfsnow:\t%v\n\tddfice:\t\t%v\n\ttsnow:\t\t%v\n\tpfac:\t\t%v\n\tpgrad:\t\t%v\n\tlapse:\t\t%v\n\ttbias:\t\t%v\n\n",
		par.DDFSnow, par.DDFIce, par.TempSnow, par.PrecFactor, par.PrecGrad, par.LapseRate, par.TempBias)
	return par, final.Score, nil
}
