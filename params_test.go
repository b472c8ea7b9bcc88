package gem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHussParamsClassSelection(t *testing.T) {
	large := hussParams{6., -0.02, 0.12, 0.}
	medium := hussParams{4., -0.05, 0.19, 0.01}
	small := hussParams{2., -0.30, 0.60, 0.09}

	assert.Equal(t, large, hussParamsForArea(25e6))
	assert.Equal(t, medium, hussParamsForArea(10e6))
	assert.Equal(t, small, hussParamsForArea(2e6))

	// a breakpoint area belongs to the smaller class
	assert.Equal(t, medium, hussParamsForArea(20e6))
	assert.Equal(t, small, hussParamsForArea(5e6))

	assert.Equal(t, small, hussParamsForArea(0.))
}

func TestHussCurveAnchorsAndClipping(t *testing.T) {
	for _, area := range []float64{25e6, 10e6, 2e6} {
		p := hussParamsForArea(area)
		assert.InDelta(t, 0., p.value(0.), 1e-3, "head of glacier, area %.0f", area)
		assert.InDelta(t, 1., p.value(1.), 1e-9, "terminus, area %.0f", area)
	}

	// the clip bounds hold well outside the fitted range
	p := hussParamsForArea(25e6)
	assert.Equal(t, 0., p.value(-0.5))
	assert.Equal(t, 1., p.value(1.5))
}

func TestHussCurveMonotoneWithinUnitInterval(t *testing.T) {
	for _, area := range []float64{25e6, 10e6, 2e6} {
		p := hussParamsForArea(area)
		prev := p.value(0.)
		for k := 1; k <= 100; k++ {
			v := p.value(float64(k) / 100.)
			assert.GreaterOrEqual(t, v, 0.)
			assert.LessOrEqual(t, v, 1.)
			assert.GreaterOrEqual(t, v, prev, "curve dipped at hn=%f, area %.0f", float64(k)/100., area)
			prev = v
		}
	}
}
