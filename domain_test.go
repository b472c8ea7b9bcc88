package gem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/maseology/gem/flowline"
	"github.com/maseology/gem/massbalance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDataset() *Dataset {
	return &Dataset{
		Shape:       flowline.Rectangular,
		DX:          100.,
		SurfaceElev: []float64{3000., 2900., 2800.},
		Thick:       []float64{50., 50., 0.},
		Width:       []float64{400., 400., 400.},
		Hemisphere:  "nh",
		Clim: massbalance.Climate{
			Temp: make([]float64, 24),
			Prec: make([]float64, 24),
			ZRef: 2900.,
		},
		Obs: []float64{-.5, -.6},
	}
}

func TestDatasetGobRoundTrip(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "dataset.gob")
	in := testDataset()
	require.NoError(t, in.SaveGob(fp))

	out, err := LoadGobDataset(fp)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDatasetFlowline(t *testing.T) {
	fl, err := testDataset().Flowline()
	require.NoError(t, err)
	assert.Equal(t, 3, fl.NBins())
	assert.Equal(t, flowline.Rectangular, fl.Shape())

	bad := testDataset()
	bad.Thick = bad.Thick[:2] // ragged
	_, err = bad.Flowline()
	assert.Error(t, err)
}

func TestLoadDomain(t *testing.T) {
	prfx := filepath.Join(t.TempDir(), "kg") + "."
	require.NoError(t, os.WriteFile(prfx+"config.ini",
		[]byte("[run]\nStartYear = 2005\nNYears = 2\n"), 0644))
	require.NoError(t, testDataset().SaveGob(prfx+"dataset.gob"))

	e, err := LoadDomain(prfx)
	require.NoError(t, err)
	assert.Equal(t, 2005, e.Cfg.StartYear)
	assert.Equal(t, 2, e.Cfg.NYears)
	assert.Equal(t, 3, e.Fl.NBins())
	assert.Equal(t, "nh", e.Hemisphere)
	assert.Len(t, e.Obs, 2)

	// the loaded domain is runnable end to end
	out := e.Evaluate([]massbalance.Params{{
		DDFSnow:       0.004,
		DDFIce:        0.008,
		TempSnow:      1.,
		PrecFactor:    1.,
		RefreezeMonth: 1,
	}}, 1)
	require.NoError(t, out[0].Err)
	assert.Len(t, out[0].Wide, 2)
}

func TestLoadDomainMissing(t *testing.T) {
	_, err := LoadDomain(filepath.Join(t.TempDir(), "nope") + ".")
	assert.Error(t, err)
}
