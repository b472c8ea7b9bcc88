package gem

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetreatAbsorbsDeficitAndEmptiesTerminus(t *testing.T) {
	fl := rectLine(t, 100., 400.,
		[]float64{3080., 2960., 2840., 2720., 2605.},
		[]float64{80., 60., 40., 20., 5.})
	heights := fl.SurfaceElev()
	vol0 := fl.Volume()

	dthick, err := propagateRetreat(fl, heights, -1e6, 1e-6, 200)
	require.NoError(t, err)

	assert.InDelta(t, vol0-1e6, fl.Volume(), 1.)
	assert.Zero(t, fl.Thick()[4], "thin terminus bin should empty")
	assert.Positive(t, fl.Thick()[3], "retreat overshot the terminus")
	for i, d := range dthick {
		assert.LessOrEqual(t, d, 1e-12, "bin %d thickened during retreat", i)
	}
}

func TestRetreatExhaustsIceWithoutError(t *testing.T) {
	fl := rectLine(t, 100., 400.,
		[]float64{3080., 2960., 2840., 2720., 2605.},
		[]float64{80., 60., 40., 20., 5.})
	heights := fl.SurfaceElev()

	// deficit beyond the glacier's volume
	dthick, err := propagateRetreat(fl, heights, -1e7, 1e-6, 200)
	require.NoError(t, err)
	assert.Zero(t, fl.Volume())
	for _, d := range dthick {
		assert.Zero(t, d)
	}
}

func TestRetreatIterationCap(t *testing.T) {
	fl := rectLine(t, 100., 400.,
		[]float64{3080., 2960., 2840., 2720., 2605.},
		[]float64{80., 60., 40., 20., 5.})

	_, err := propagateRetreat(fl, fl.SurfaceElev(), -1e6, 1e-6, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNonConvergence))
}
