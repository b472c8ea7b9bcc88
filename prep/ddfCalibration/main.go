package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/maseology/glbopt"
	"github.com/maseology/mmaths"
	"github.com/maseology/objfunc"
	mrg63k3a "github.com/maseology/pnrg/MRG63k3a"

	"github.com/maseology/goHydro/snowpack"
	"github.com/maseology/mmio"
)

// calibrates a daily cold-content snowpack to AWS snow-depth recession,
// yielding a prior for the snow degree-day factor [m/°C/d].
func main() {
	tt := mmio.NewTimer()
	defer tt.Print("snow degree-day evaluation complete")

	dat := func(fp string) [][]float64 { // load daily AWS data
		b, err := os.ReadFile(fp)
		if err != nil {
			panic(err)
		}

		var dat [][]float64
		if err := json.Unmarshal(b, &dat); err != nil {
			panic(err)
		}
		for _, v := range dat {
			if len(v) != 4 { // ['MeanDailyT', 'Rainfall', 'Snowfall', 'Snowdepth']
				panic("not a valid input size")
			}
		}
		return dat
	}("M:/GEM-kennicott/dat/aws.json")

	gen := func(tindex, ddf, ddfc, baseT, tsf float64) (x, obs, sim []float64) {
		sp := snowpack.NewCCF(tindex, ddf, ddfc, baseT, tsf)
		x, obs, sim = make([]float64, len(dat)), make([]float64, len(dat)), make([]float64, len(dat))
		for k, v := range dat { // ['MeanDailyT', 'Rainfall', 'Snowfall', 'Snowdepth']
			x[k] = float64(k)
			obs[k] = v[3] / 100. // convert from cm depth
			sp.Update(v[1]/1000., v[2]/1000., v[0])
			_, d := sp.Properties()
			sim[k] = d
		}
		return
	}

	smple := func(u []float64) (tindex, ddf, ddfc, baseT, tsf float64) {
		tindex = mmaths.LinearTransform(0.0002, 0.0005, u[0])
		ddf = mmaths.LinearTransform(0.001, 0.01, u[1]) // search range kept consistent with the model's snow factor
		ddfc = mmaths.LinearTransform(0.85, 1.5, u[2])
		baseT = mmaths.LinearTransform(-5., 5., u[3])
		tsf = mmaths.LinearTransform(0.1, 0.6, u[4])
		return
	}
	ofnc := func(obs, sim []float64) float64 {
		obs0, sim0 := []float64{}, []float64{}
		for i := 0; i < len(obs); i++ {
			if obs[i] == 0. && sim[i] == 0. { // do not reward snow-free agreement
				continue
			}
			obs0 = append(obs0, obs[i])
			sim0 = append(sim0, sim[i])
		}
		return objfunc.NSE(obs0, sim0)
	}
	eval := func(u []float64) float64 {
		tindex, ddf, ddfc, baseT, tsf := smple(u)
		_, obs, sim := gen(tindex, ddf, ddfc, baseT, tsf)
		return ofnc(obs, sim)
	}
	rng := rand.New(mrg63k3a.New())
	rng.Seed(time.Now().UnixNano())
	uFinal, _ := glbopt.SCE(200, 5, rng, eval, false)

	func(u []float64) { // print outputs
		tindex, ddf, ddfc, baseT, tsf := smple(u)
		x, obs, sim := gen(tindex, ddf, ddfc, baseT, tsf)

		ix, iobs, isim := make([]interface{}, len(obs)), make([]interface{}, len(obs)), make([]interface{}, len(obs))
		for i := 0; i < len(obs); i++ {
			ix[i] = x[i]
			iobs[i] = obs[i]
			isim[i] = sim[i]
		}
		mmio.WriteCSV("snowdepth.csv", "d,obs,sim", ix, iobs, isim)
		fmt.Println(" snow depth NSE: ", objfunc.NSE(obs, sim))
		fmt.Printf(" ddfsnow prior: %f m/°C/d (tindex %f; ddfc %f; baseT %f; tsf %f)\n", ddf, tindex, ddfc, baseT, tsf)
	}(uFinal)
}
