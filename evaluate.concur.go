package gem

import (
	"runtime"
	"sync"

	"github.com/maseology/gem/massbalance"
)

// Evaluate runs every parameter set across nwrkrs workers; nwrkrs < 1
// takes a worker per processor. Results hold the slot of their parameter
// set, failed realizations carry their error.
func (e *Ensemble) Evaluate(pars []massbalance.Params, nwrkrs int) []Result {
	if nwrkrs < 1 {
		nwrkrs = runtime.GOMAXPROCS(0)
	}

	var wg sync.WaitGroup
	sem := make(chan struct{}, nwrkrs)
	out := make([]Result, len(pars))
	for k, par := range pars {
		wg.Add(1)
		sem <- struct{}{}
		go func(k int, par massbalance.Params) {
			defer wg.Done()
			out[k] = e.runOne(k, par)
			<-sem
		}(k, par)
	}
	wg.Wait()

	return out
}
