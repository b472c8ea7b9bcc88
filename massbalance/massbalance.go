// Package massbalance supplies climatic mass balance to the geometry
// engine. Its reference provider is a monthly degree-day model: station or
// GCM-cell climate downscaled to each elevation bin, accumulation split by
// a snow-temperature ramp, melt by surface-type degree-day factors through
// a tracked seasonal snowpack, and an annual refreeze approximation after
// Woodward et al. (1997).
package massbalance

import "fmt"

const (
	densityIce   = 900.  // [kg m-3]
	densityWater = 1000. // [kg m-3]
)

// Climate is a monthly forcing series at one reference point, ordered by
// hydrological year from the start of the run.
type Climate struct {
	Temp []float64 // [deg C] monthly mean air temperature
	Prec []float64 // [m w.e.] monthly precipitation total
	ZRef float64   // [m asl] elevation the series applies at
}

func (c Climate) check(nYears int) error {
	if len(c.Temp) != 12*nYears || len(c.Prec) != 12*nYears {
		return fmt.Errorf("climate series hold %d/%d months, need %d",
			len(c.Temp), len(c.Prec), 12*nYears)
	}
	return nil
}

// Params are the degree-day model parameters. Degree-day factors are in
// m w.e. per degree-day.
type Params struct {
	DDFSnow    float64 // melt factor of the seasonal snowpack
	DDFIce     float64 // melt factor of exposed glacier ice
	TempSnow   float64 // [deg C] midpoint of the rain/snow ramp
	PrecFactor float64 // precipitation correction factor
	PrecGrad   float64 // [m-1] precipitation gain with elevation
	LapseRate  float64 // [K m-1] temperature lapse with elevation
	TempBias   float64 // [K] additive temperature correction
	// RefreezeMonth is the hydrological month (1-12) the annual refreeze
	// potential is credited in.
	RefreezeMonth int
}

// DefaultParams returns the model parameters of Huss and Hock (2015) scale:
// snow melting at 4.1 mm per degree-day and ice forty percent faster.
func DefaultParams() Params {
	return Params{
		DDFSnow:       0.0041,
		DDFIce:        0.0041 / 0.7,
		TempSnow:      1.0,
		PrecFactor:    1.0,
		PrecGrad:      1e-4,
		LapseRate:     -0.0065,
		TempBias:      0.,
		RefreezeMonth: 1,
	}
}

func (p Params) check() error {
	switch {
	case p.DDFSnow < 0. || p.DDFIce < 0.:
		return fmt.Errorf("negative degree-day factor")
	case p.PrecFactor <= 0.:
		return fmt.Errorf("precipitation factor %f", p.PrecFactor)
	case p.RefreezeMonth < 1 || p.RefreezeMonth > 12:
		return fmt.Errorf("refreeze month %d out of the hydrological year", p.RefreezeMonth)
	}
	return nil
}

// snowFraction ramps the solid share of precipitation linearly over
// one degree either side of the snow temperature.
func snowFraction(tC, tSnow float64) float64 {
	switch {
	case tC <= tSnow-1.:
		return 1.
	case tC >= tSnow+1.:
		return 0.
	}
	return (tSnow + 1. - tC) / 2.
}

// refreezePotential approximates annual refreezing [m w.e.] from the mean
// annual air temperature [deg C] after Woodward et al. (1997).
func refreezePotential(tAnnual float64) float64 {
	rp := (-0.69*tAnnual + 0.0096) / 100.
	if rp < 0. {
		return 0.
	}
	return rp
}
