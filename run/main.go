package main

import (
	"fmt"
	"runtime"

	"github.com/maseology/gem"
	"github.com/maseology/gem/massbalance"
	"github.com/maseology/mmio"
	log "github.com/sirupsen/logrus"
)

func main() {

	const (
		// mdlPrfx = "S:/GEM/peyto."
		mdlPrfx = "M:/GEM-kennicott/kennicott." // "S:/GEM/kennicott." //
	)

	fmt.Println("")
	tt := mmio.NewTimer()
	defer tt.Lap(fmt.Sprintf("\nRun complete. n processes: %v", runtime.GOMAXPROCS(0)))

	// load data
	dom, err := gem.LoadDomain(mdlPrfx)
	if err != nil {
		log.Fatalf("domain load failed: %v", err)
	}
	tt.Print("Master Domain Load complete\n")
	mmio.MakeDir(mdlPrfx + "out/")

	// run model
	// ddfsnow, ddfice, tsnow, pfac, pgrad, lapse, tbias := 0.0038, 0.0071, 1.21, 1.32, 1.2e-4, -0.0062, 0.48
	ddfsnow, ddfice, tsnow, pfac, pgrad, lapse, tbias := 0.0041, 0.0062, 1., 1.5, 1.e-4, -0.0065, 0.
	par := massbalance.Params{
		DDFSnow:       ddfsnow,
		DDFIce:        ddfice,
		TempSnow:      tsnow,
		PrecFactor:    pfac,
		PrecGrad:      pgrad,
		LapseRate:     lapse,
		TempBias:      tbias,
		RefreezeMonth: massbalance.DefaultParams().RefreezeMonth,
	}
	res, err := dom.EvaluateSerial(par, mdlPrfx+"out/")
	if err != nil {
		log.Fatalf("model run failed: %v", err)
	}
	log.WithFields(log.Fields{
		"KGE":    fmt.Sprintf("%.4f", res.Score),
		"volume": fmt.Sprintf("%.4e", res.Vol[len(res.Vol)-1]),
		"area":   fmt.Sprintf("%.4e", res.Area[len(res.Area)-1]),
		"nyears": dom.Cfg.NYears,
	}).Info("simulation complete")

	// store model output
	ds, err := dom.RunAndStore(par)
	if err != nil {
		log.Fatalf("output assembly failed: %v", err)
	}
	if err := ds.SaveGob(mdlPrfx + "out/run.gob"); err != nil {
		log.Fatalf("%v", err)
	}

	// // sample models
	// dom.GenerateSamples(1000, runtime.GOMAXPROCS(0), mdlPrfx+"MC/")

	// // find optimal model
	// if par, kge, err := dom.Calibrate(0); err != nil {
	// 	log.Fatalf("calibration failed: %v", err)
	// } else {
	// 	fmt.Println(par, kge)
	// }
}
