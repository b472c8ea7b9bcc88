package gem

import (
	"fmt"
	"math"

	"github.com/maseology/gem/hyd"
	"github.com/maseology/gem/massbalance"
	"github.com/maseology/goHydro/gmet"
)

// buildClimate pulls one station's monthly series out of a NetCDF bundle
// and reorders it into hydrological years covering the run. Temperature
// arrives [deg C], precipitation [mm].
func buildClimate(ncfp string, sid, startYear, nYears int, hemisphere string, zref float64) (massbalance.Climate, error) {
	none := massbalance.Climate{}
	sm, err := hyd.StartMonth(hemisphere)
	if err != nil {
		return none, err
	}

	vars := []string{
		"air_temperature",
		"precipitation_amount",
	}
	fmt.Println(" loading: " + ncfp)
	g, err := gmet.LoadNC(ncfp, vars)
	if err != nil {
		return none, fmt.Errorf("climate: %v", err)
	}
	fmt.Printf("  dates available: %v to %v\n", g.Ts[0], g.Ts[g.Nts-1])

	ix := -1
	for i, s := range g.Sids {
		if s == sid {
			ix = i
			break
		}
	}
	if ix < 0 {
		return none, fmt.Errorf("climate: station %d not in %s", sid, ncfp)
	}
	ta := g.GetAllData("air_temperature")[ix]
	pa := g.GetAllData("precipitation_amount")[ix]

	// index the series by calendar month
	xt := make(map[int]int, g.Nts)
	for j, t := range g.Ts {
		xt[t.Year()*100+int(t.Month())] = j
	}

	min0 := func(x float64, cy, cm int) float64 {
		if math.IsNaN(x) {
			fmt.Printf("   > precipitation NaN %d-%02d -- set to zero\n", cy, cm)
			return 0.
		}
		if x < 0. {
			return 0.
		}
		return x / 1000. // to [m]
	}

	clim := massbalance.Climate{
		Temp: make([]float64, 12*nYears),
		Prec: make([]float64, 12*nYears),
		ZRef: zref,
	}
	for k := 0; k < nYears; k++ {
		for hm := 1; hm <= 12; hm++ {
			cy, cm := hyd.ToCalendar(startYear+k, hm, sm)
			j, ok := xt[cy*100+cm]
			if !ok {
				return none, fmt.Errorf("climate: %d-%02d missing from %s", cy, cm, ncfp)
			}
			if math.IsNaN(ta[j]) {
				return none, fmt.Errorf("climate: air temperature NaN %d-%02d", cy, cm)
			}
			jj := 12*k + hm - 1
			clim.Temp[jj] = ta[j]
			clim.Prec[jj] = min0(pa[j], cy, cm)
		}
	}
	return clim, nil
}
