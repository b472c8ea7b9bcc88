package opt

import (
	"github.com/maseology/gem/massbalance"
	"github.com/maseology/mmaths"
)

// NDim is the dimension of the calibration hypercube.
const NDim = 7

// Par7 maps a point on the unit hypercube onto degree-day model
// parameters. The ice melt factor is sampled as a multiple of the snow
// factor so ice never melts slower than snow.
func Par7(u []float64) massbalance.Params {
	ddfSnow := mmaths.LogLinearTransform(.001, .01, u[0]) // [m w.e. d-1 K-1]
	return massbalance.Params{
		DDFSnow:       ddfSnow,
		DDFIce:        ddfSnow * mmaths.LinearTransform(1., 2.5, u[1]),
		TempSnow:      mmaths.LinearTransform(-1., 3., u[2]),
		PrecFactor:    mmaths.LogLinearTransform(.5, 5., u[3]),
		PrecGrad:      mmaths.LinearTransform(0., 5e-4, u[4]), // [m-1]
		LapseRate:     mmaths.LinearTransform(-.009, -.003, u[5]),
		TempBias:      mmaths.LinearTransform(-2., 2., u[6]),
		RefreezeMonth: 1,
	}
}
