package main

import (
	"fmt"
	"log"
	"math"
	"sort"

	"github.com/maseology/mmio"
	"gonum.org/v1/gonum/stat"
)

const (
	evalfp = "M:/GEM-kennicott/MC/260318103025.results.csv" // created by Ensemble.GenerateSamples
	minL   = 0.2                                            // behavioural likelihood threshold (KGE)
)

var parnams = []string{"ddfsnow", "ddfice", "tsnow", "pfac", "pgrad", "lapse", "tbias"}

func main() {
	tt := mmio.NewTimer()
	defer tt.Lap("gem MC postpro complete")

	dat, err := mmio.ReadCSV(evalfp)
	if err != nil {
		log.Fatalf(" readEvalCSV failed: %v", err)
	}

	// collect behavioural realizations
	// columns: id,ddfsnow,ddfice,tsnow,pfac,pgrad,lapse,tbias,kge,vol,area
	type rlz struct {
		id        int
		of        float64
		par       []float64
		vol, area float64
	}
	rlzs := []rlz{}
	for _, ln := range dat {
		of := ln[8]
		if math.IsNaN(of) || of < minL {
			continue
		}
		rlzs = append(rlzs, rlz{
			id:   int(ln[0]),
			of:   of,
			par:  ln[1:8],
			vol:  ln[9],
			area: ln[10],
		})
	}
	if len(rlzs) == 0 {
		log.Fatalf(" no behavioural realizations (KGE >= %.2f) of %d sampled", minL, len(dat))
	}
	sort.Slice(rlzs, func(i, j int) bool { return rlzs[i].of > rlzs[j].of })
	fmt.Printf(" %d of %d realizations behavioural; best KGE %.4f (id %d)\n", len(rlzs), len(dat), rlzs[0].of, rlzs[0].id)

	// likelihood-weighted parameter posterior
	ws, cols := make([]float64, len(rlzs)), make([][]float64, len(parnams))
	for j := range cols {
		cols[j] = make([]float64, len(rlzs))
	}
	for i, r := range rlzs {
		ws[i] = r.of - minL
		for j := range parnams {
			cols[j][i] = r.par[j]
		}
	}
	fmt.Println("\n weighted parameter posterior:")
	for j, nam := range parnams {
		mu := stat.Mean(cols[j], ws)
		sd := math.Sqrt(stat.Variance(cols[j], ws))
		fmt.Printf("  %-8s %12.6f +/- %.6f\n", nam, mu, sd)
	}

	// ranked table
	n := len(rlzs)
	rank, id, of := make([]interface{}, n), make([]interface{}, n), make([]interface{}, n)
	vol, area := make([]interface{}, n), make([]interface{}, n)
	pcols := make([][]interface{}, len(parnams))
	for j := range pcols {
		pcols[j] = make([]interface{}, n)
	}
	for i, r := range rlzs {
		rank[i], id[i], of[i], vol[i], area[i] = i+1, r.id, r.of, r.vol, r.area
		for j := range parnams {
			pcols[j][i] = r.par[j]
		}
	}
	cexp := append([][]interface{}{rank, id, of}, pcols...)
	cexp = append(cexp, vol, area)
	if err := mmio.WriteCSV(mmio.GetFileDir(evalfp)+"/behavioural.csv",
		"rank,id,kge,ddfsnow,ddfice,tsnow,pfac,pgrad,lapse,tbias,vol,area", cexp...); err != nil {
		log.Fatalf(" WriteCSV failed: %v", err)
	}
}
