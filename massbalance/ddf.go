package massbalance

import (
	"fmt"
	"math"

	"github.com/maseology/gem/flowline"
	"github.com/maseology/gem/hyd"
)

// DegreeDay is the reference mass-balance provider. Years must be asked
// for in order from zero; the provider carries its snowpack, surface types
// and balance history across calls. It also keeps the annual geometry the
// engine pushes back, which masks the glacier for the following year.
type DegreeDay struct {
	hemisphere string
	dates      *hyd.DatesTable
	clim       Climate
	par        Params

	nbins int
	swe   []float64     // seasonal snowpack [m w.e.]
	surf  []SurfaceType // nil until the first simulated year

	thick  []float64   // latest engine-recorded ice thickness
	areas  []float64   // latest engine-recorded plan-form bin areas [m2]
	mbHist [][]float64 // [yr][bin] annual balance [m w.e.]
	wide   []float64   // [yr] glacier-wide specific balance [m w.e.]
	elas   []float64   // [yr] equilibrium-line altitude [m asl]

	// annual geometry mirrored from the engine
	BinArea  [][]float64
	BinThick [][]float64
	BinWidth [][]float64
	WideArea []float64
	WideVol  []float64
}

// NewDegreeDay builds a provider for the glacier's initial geometry and a
// monthly climate series covering the dates table.
func NewDegreeDay(hemisphere string, clim Climate, par Params, dates *hyd.DatesTable,
	fl *flowline.Flowline) (*DegreeDay, error) {

	if _, err := hyd.StartMonth(hemisphere); err != nil {
		return nil, err
	}
	if dates == nil || fl == nil {
		return nil, fmt.Errorf("massbalance: nil dates table or flowline")
	}
	if err := clim.check(dates.NYears); err != nil {
		return nil, fmt.Errorf("massbalance: %v", err)
	}
	if err := par.check(); err != nil {
		return nil, fmt.Errorf("massbalance: %v", err)
	}

	n := fl.NBins()
	return &DegreeDay{
		hemisphere: hemisphere,
		dates:      dates,
		clim:       clim,
		par:        par,
		nbins:      n,
		swe:        make([]float64, n),
		thick:      fl.Thick(),
		areas:      fl.BinAreas(),
		BinArea:    make([][]float64, dates.NYears),
		BinThick:   make([][]float64, dates.NYears),
		BinWidth:   make([][]float64, dates.NYears),
		WideArea:   make([]float64, dates.NYears),
		WideVol:    make([]float64, dates.NYears),
	}, nil
}

// Hemisphere reports the hemisphere the climate series belongs to.
func (m *DegreeDay) Hemisphere() string { return m.hemisphere }

// Params returns the model parameters in use.
func (m *DegreeDay) Params() Params { return m.par }

// AnnualMassBalance computes the per-bin climatic balance of hydrological
// year yr [m ice s-1] at the supplied bin surface elevations.
func (m *DegreeDay) AnnualMassBalance(surfaceElev []float64, yr int) []float64 {
	if len(surfaceElev) != m.nbins {
		panic("massbalance: bin count changed between years")
	}
	if yr != len(m.mbHist) {
		panic(fmt.Sprintf("massbalance: year %d requested, year %d is next", yr, len(m.mbHist)))
	}
	if m.surf == nil {
		m.surf = initialSurfaceTypes(surfaceElev, m.thick)
	}

	mbwe := make([]float64, m.nbins) // [m w.e.]
	for i := 0; i < m.nbins; i++ {
		dz := surfaceElev[i] - m.clim.ZRef

		// downscale the year's monthly series to the bin
		var t, p [12]float64
		tann := 0.
		for hm := 1; hm <= 12; hm++ {
			j := 12*yr + hm - 1
			t[hm-1] = m.clim.Temp[j] + m.par.TempBias + m.par.LapseRate*dz
			p[hm-1] = m.clim.Prec[j] * m.par.PrecFactor * (1. + m.par.PrecGrad*dz)
			if p[hm-1] < 0. {
				p[hm-1] = 0.
			}
			tann += t[hm-1] / 12.
		}

		ddfUnder := beneathDDF(m.surf[i], m.par)
		for hm := 1; hm <= 12; hm++ {
			tc, pm := t[hm-1], p[hm-1]

			snow := pm * snowFraction(tc, m.par.TempSnow)
			m.swe[i] += snow

			pdd := 0.
			if tc > 0. {
				pdd = tc * m.dates.DaysInMonth(yr, hm)
			}

			// the snowpack melts first; leftover degree-days reach the
			// surface beneath
			meltSnow := m.par.DDFSnow * pdd
			residual := 0.
			if meltSnow >= m.swe[i] {
				residual = pdd
				if m.par.DDFSnow > 0. {
					residual = pdd - m.swe[i]/m.par.DDFSnow
				}
				meltSnow = m.swe[i]
			}
			m.swe[i] -= meltSnow
			meltUnder := ddfUnder * residual

			mbwe[i] += snow - meltSnow - meltUnder
			if hm == m.par.RefreezeMonth {
				mbwe[i] += refreezePotential(tann)
			}
		}
	}

	m.mbHist = append(m.mbHist, mbwe)
	m.wide = append(m.wide, wideSpecific(mbwe, m.areas))
	m.elas = append(m.elas, elaFromProfile(mbwe, surfaceElev, m.thick))
	updateSurfaceTypes(m.surf, m.mbHist, m.thick)

	// hand the engine an ice rate
	secs := m.dates.SecondsInYear(yr)
	out := make([]float64, m.nbins)
	for i, b := range mbwe {
		out[i] = b * densityWater / densityIce / secs
	}
	return out
}

// ELA returns the equilibrium-line altitude of a simulated year [m asl],
// NaN before the year ran or when the balance profile never crosses zero.
func (m *DegreeDay) ELA(yr int) float64 {
	if yr < 0 || yr >= len(m.elas) {
		return math.NaN()
	}
	return m.elas[yr]
}

// WideMassBalance returns the glacier-wide specific balance of a simulated
// year [m w.e.], NaN before the year ran.
func (m *DegreeDay) WideMassBalance(yr int) float64 {
	if yr < 0 || yr >= len(m.wide) {
		return math.NaN()
	}
	return m.wide[yr]
}

// Years reports how many years have been simulated.
func (m *DegreeDay) Years() int { return len(m.mbHist) }

// RecordAnnualGeometry mirrors the engine's yearly geometry record; the
// thickness mask drives next year's surface typing and balance weighting.
func (m *DegreeDay) RecordAnnualGeometry(yr int, binArea, binThick, binWidth []float64,
	area, volume float64) {

	if yr < 0 || yr >= len(m.WideArea) {
		return
	}
	m.BinArea[yr] = binArea
	m.BinThick[yr] = binThick
	m.BinWidth[yr] = binWidth
	m.WideArea[yr] = area
	m.WideVol[yr] = volume

	m.thick = binThick
	m.areas = make([]float64, len(binArea))
	for i := range binArea {
		if binThick[i] > 0. {
			m.areas[i] = binArea[i]
		}
	}
}

// wideSpecific area-weights the bin balances over the ice-covered area.
func wideSpecific(mbwe, areas []float64) float64 {
	sum, asum := 0., 0.
	for i, a := range areas {
		sum += mbwe[i] * a
		asum += a
	}
	if asum == 0. {
		return math.NaN()
	}
	return sum / asum
}

// elaFromProfile interpolates the lowest elevation where the balance
// profile turns non-negative, scanning the active bins from the terminus
// up. NaN when the glacier holds no sign change.
func elaFromProfile(mbwe, surfaceElev, thick []float64) float64 {
	var act []int
	for i, h := range thick {
		if h > 0. {
			act = append(act, i)
		}
	}
	for k := len(act) - 1; k >= 1; k-- {
		d, u := act[k], act[k-1] // down-glacier, up-glacier
		if mbwe[u] >= 0. && mbwe[d] < 0. {
			f := -mbwe[d] / (mbwe[u] - mbwe[d])
			return surfaceElev[d] + f*(surfaceElev[u]-surfaceElev[d])
		}
	}
	return math.NaN()
}
