package gem

import (
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/maseology/gem/opt"
	"github.com/maseology/mmio"
	"github.com/maseology/montecarlo/smpln"
	mrg63k3a "github.com/maseology/pnrg/MRG63k3a"
)

// GenerateSamples draws n Latin hypercube realizations of the degree-day
// parameters and evaluates them across nwrkrs workers. The sample space,
// per-sample series and a score table land under outdir, batch-stamped.
func (e *Ensemble) GenerateSamples(n, nwrkrs int, outdir string) []Result {
	if nwrkrs < 1 {
		nwrkrs = runtime.GOMAXPROCS(0)
	}

	// build sampling plan
	rng := rand.New(mrg63k3a.New())
	rng.Seed(time.Now().UnixNano())
	sp := smpln.NewLHC(rng, n, opt.NDim, false)

	outdirbatch := outdir + time.Now().Format("060102150405") // batch number = date
	func() {                                                  // save sample space
		lns := make([]string, n)
		for k := 0; k < n; k++ {
			lns[k] = fmt.Sprint(k)
			for j := 0; j < opt.NDim; j++ {
				lns[k] += fmt.Sprintf(",%f", sp.U[j][k])
			}
		}
		mmio.WriteLines(outdirbatch+".samplespace.csv", lns)
	}()

	var wg sync.WaitGroup
	sem := make(chan struct{}, nwrkrs)
	out := make([]Result, n)
	for k := 0; k < n; k++ {
		fmt.Printf(" >> releasing sample %d\n", k+1)
		wg.Add(1)
		sem <- struct{}{}
		go func(k int, outdirprfx string) {
			defer wg.Done()
			ut := make([]float64, opt.NDim)
			for j := 0; j < opt.NDim; j++ {
				ut[j] = sp.U[j][k]
			}
			res := e.runOne(k, opt.Par7(ut))
			if res.Err == nil {
				saveResultBins(res, outdirprfx)
			}
			out[k] = res
			<-sem
		}(k, fmt.Sprintf("%s.%d.", outdirbatch, k))
	}
	wg.Wait()

	func() { // save score table
		id := make([]interface{}, n)
		ddfsnow, ddfice, tsnow, pfac := make([]interface{}, n), make([]interface{}, n), make([]interface{}, n), make([]interface{}, n)
		pgrad, lapse, tbias := make([]interface{}, n), make([]interface{}, n), make([]interface{}, n)
		kge, vol, area := make([]interface{}, n), make([]interface{}, n), make([]interface{}, n)
		for k, r := range out {
			id[k] = k
			ddfsnow[k] = r.Par.DDFSnow
			ddfice[k] = r.Par.DDFIce
			tsnow[k] = r.Par.TempSnow
			pfac[k] = r.Par.PrecFactor
			pgrad[k] = r.Par.PrecGrad
			lapse[k] = r.Par.LapseRate
			tbias[k] = r.Par.TempBias
			kge[k] = r.Score
			if nv := len(r.Vol); nv > 0 {
				vol[k] = r.Vol[nv-1]
				area[k] = r.Area[nv-1]
			} else {
				vol[k] = -9999.
				area[k] = -9999.
			}
		}
		mmio.WriteCSV(outdirbatch+".results.csv",
			"id,ddfsnow,ddfice,tsnow,pfac,pgrad,lapse,tbias,kge,vol,area",
			id, ddfsnow, ddfice, tsnow, pfac, pgrad, lapse, tbias, kge, vol, area)
	}()

	return out
}
