package main

import (
	"fmt"
	"log"
	"math"

	"github.com/maseology/gem"
	"github.com/maseology/mmio"
	"gonum.org/v1/gonum/stat"
)

const (
	gobFP = "M:/GEM-kennicott/out/run.gob" // "S:/GEM/peyto/out/run.gob" //
	csvFP = "M:/GEM-kennicott/out/trends.csv"
)

func main() {
	tt := mmio.NewTimer()
	defer tt.Print("trend analysis complete")

	ds, err := gem.LoadGobRunDataset(gobFP)
	if err != nil {
		log.Fatalf("Fatal error: read failed: %v", err)
	}
	fmt.Printf(" loaded %d-step run (%s calendar, %s hemisphere)\n", len(ds.Time), ds.Attrs.Calendar, ds.Attrs.Hemisphere)

	clean := func(x, y []float64) (xx, yy []float64) { // pair-wise NaN filter
		for i := range y {
			if math.IsNaN(y[i]) {
				continue
			}
			xx = append(xx, x[i])
			yy = append(yy, y[i])
		}
		return
	}

	type series struct {
		nam string
		v   []float64
	}
	sers := []series{
		{"volume_m3", ds.VolumeM3},
		{"area_m2", ds.AreaM2},
		{"length_m", ds.LengthM},
		{"ela_m", ds.ELAm},
	}
	if ds.CalvingM3 != nil {
		sers = append(sers, series{"calving_m3", ds.CalvingM3})
	}
	if ds.VolumeBslM3 != nil {
		sers = append(sers, series{"volume_bsl_m3", ds.VolumeBslM3})
	}

	var nams, means, sds, slopes, icpts []interface{}
	for _, s := range sers {
		x, y := clean(ds.Time, s.v)
		if len(y) < 2 {
			fmt.Printf(" %-14s insufficient data\n", s.nam)
			continue
		}
		alpha, beta := stat.LinearRegression(x, y, nil, false)
		mu, sd := stat.Mean(y, nil), stat.StdDev(y, nil)
		fmt.Printf(" %-14s mean %12.4e sd %12.4e trend %12.4e /yr\n", s.nam, mu, sd, beta)
		nams, means, sds = append(nams, s.nam), append(means, mu), append(sds, sd)
		slopes, icpts = append(slopes, beta), append(icpts, alpha)
	}
	if n := len(ds.VolumeM3); n > 1 && ds.VolumeM3[0] > 0. {
		dv := ds.VolumeM3[n-1] - ds.VolumeM3[0]
		fmt.Printf("\n net volume change: %.1f%%  (%.4f Gt)\n", dv/ds.VolumeM3[0]*100., dv*gem.DensityIce/1e12)
		if a := ds.AreaM2[0]; a > 0. {
			fmt.Printf(" mean specific balance: %.3f m w.e./yr\n",
				dv*gem.DensityIce/gem.DensityWater/a/float64(len(ds.YearTime)-1))
		}
	}

	if err := mmio.WriteCSV(csvFP, "series,mean,stdev,slope,intercept", nams, means, sds, slopes, icpts); err != nil {
		log.Fatalf("Fatal error: WriteCSV failed: %v", err)
	}
}
