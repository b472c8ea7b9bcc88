package gem

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubMB supplies a uniform climatic mass balance [m ice s-1], or fn's
// field when set.
type stubMB struct {
	hemi  string
	rate  float64
	fn    func(surfaceElev []float64, yr int) []float64
	ela   float64
	calls int
}

func (m *stubMB) AnnualMassBalance(surfaceElev []float64, yr int) []float64 {
	m.calls++
	if m.fn != nil {
		return m.fn(surfaceElev, yr)
	}
	out := make([]float64, len(surfaceElev))
	for i := range out {
		out[i] = m.rate
	}
	return out
}

func (m *stubMB) Hemisphere() string {
	if m.hemi == "" {
		return "nh"
	}
	return m.hemi
}

func (m *stubMB) ELA(yr int) float64 { return m.ela }

type recordingMB struct {
	stubMB
	years []int
}

func (m *recordingMB) RecordAnnualGeometry(yr int, binArea, binThick, binWidth []float64, area, volume float64) {
	m.years = append(m.years, yr)
}

// noleap hydrological year [s]
const secNoleap = 365. * 86400.

func TestNewValidates(t *testing.T) {
	fl := rectLine(t, 100., 500.,
		[]float64{3000., 2900., 2800., 2700.},
		[]float64{50., 50., 50., 0.})
	cfg := DefaultConfig()

	_, err := New(nil, &stubMB{}, cfg)
	assert.True(t, errors.Is(err, ErrConfig))

	_, err = New(fl, nil, cfg)
	assert.True(t, errors.Is(err, ErrConfig))

	_, err = New(fl, &stubMB{hemi: "equatorial"}, cfg)
	assert.True(t, errors.Is(err, ErrConfig))

	bad := cfg
	bad.NYears = 0
	_, err = New(fl, &stubMB{}, bad)
	assert.True(t, errors.Is(err, ErrConfig))

	bad = cfg
	bad.TerminusPercentage = 150.
	_, err = New(fl, &stubMB{}, bad)
	assert.True(t, errors.Is(err, ErrConfig))

	s, err := New(fl, &stubMB{}, cfg)
	require.NoError(t, err)
	assert.True(t, errors.Is(s.RunUntil(context.Background(), cfg.NYears+1), ErrConfig))
}

func TestRunZeroForcingLeavesGeometryUntouched(t *testing.T) {
	fl := rectLine(t, 100., 500.,
		[]float64{3000., 2900., 2800., 2700., 2600., 2500., 2400., 2300., 2200., 2100.},
		[]float64{100., 100., 100., 100., 100., 100., 100., 100., 0., 0.})
	sec0 := fl.Section()

	mb := &stubMB{}
	cfg := DefaultConfig()
	cfg.NYears = 5
	s, err := New(fl, mb, cfg)
	require.NoError(t, err)

	require.NoError(t, s.RunUntil(context.Background(), 5))
	assert.Equal(t, sec0, fl.Section())
	assert.Equal(t, 5, mb.calls)
	assert.Equal(t, 5, s.Year())
}

func TestRunUntilProgressiveDecline(t *testing.T) {
	fl := rectLine(t, 100., 400.,
		[]float64{3100., 2995., 2890., 2785., 2680., 2575., 2470., 2308., 2200., 2100.},
		[]float64{100., 95., 90., 85., 80., 75., 70., 8., 0., 0.})

	mb := &stubMB{rate: -1. / 0.9 / secNoleap} // -1 m w.e. per year as ice
	cfg := DefaultConfig()
	cfg.NYears = 5
	s, err := New(fl, mb, cfg)
	require.NoError(t, err)

	ctx := context.Background()
	prev := fl.Volume()
	for y := 1; y <= 5; y++ {
		require.NoError(t, s.RunUntil(ctx, y))
		v := fl.Volume()
		assert.Less(t, v, prev, "volume must decline through year %d", y)
		prev = v
	}

	th := fl.Thick()
	assert.Zero(t, th[7], "thin terminus bin should have wasted away")
	assert.Positive(t, th[0], "accumulation area should survive")
	assert.Equal(t, 700., fl.Length())

	d := s.Diagnostics()
	assert.Greater(t, d.Volume[0], d.Volume[4])
	assert.Zero(t, d.BinThick[4][7])
	assert.Equal(t, th, d.BinThick[4], "final diagnostics row must match the live geometry")
}

func TestRunUntilDomainBoundary(t *testing.T) {
	fl := rectLine(t, 100., 400.,
		[]float64{3050., 2950., 2850., 2750., 2659.5},
		[]float64{50., 50., 50., 50., 9.5})

	mb := &stubMB{rate: 2. / secNoleap} // strong thickening at the edge
	cfg := DefaultConfig()
	cfg.NYears = 5
	s, err := New(fl, mb, cfg)
	require.NoError(t, err)

	err = s.RunUntil(context.Background(), 5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDomainBoundary))
}

func TestRunUntilNumericalInstability(t *testing.T) {
	fl := rectLine(t, 100., 400.,
		[]float64{3050., 2950., 2850., 2750., 2650.},
		[]float64{50., 50., 50., 50., 5.})

	mb := &stubMB{fn: func(surfaceElev []float64, yr int) []float64 {
		out := make([]float64, len(surfaceElev))
		for i := range out {
			out[i] = math.NaN()
		}
		return out
	}}
	cfg := DefaultConfig()
	cfg.NYears = 2
	s, err := New(fl, mb, cfg)
	require.NoError(t, err)

	err = s.RunUntil(context.Background(), 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNumericalInstability))
}

func TestRunUntilHonorsCancellation(t *testing.T) {
	fl := rectLine(t, 100., 400.,
		[]float64{3050., 2950., 2850., 2750., 2650.},
		[]float64{50., 50., 50., 50., 0.})
	cfg := DefaultConfig()
	cfg.NYears = 5
	s, err := New(fl, &stubMB{}, cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.True(t, errors.Is(s.RunUntil(ctx, 5), context.Canceled))
	assert.Equal(t, 0, s.Year())
}

func TestFrozenWindowsSkipRedistribution(t *testing.T) {
	fl := rectLine(t, 100., 500.,
		[]float64{3000., 2900., 2800., 2700., 2600., 2500.},
		[]float64{100., 100., 100., 100., 100., 0.})

	mb := &stubMB{rate: -1. / secNoleap}
	cfg := DefaultConfig()
	cfg.NYears = 3
	cfg.SpinupYears = 2
	s, err := New(fl, mb, cfg)
	require.NoError(t, err)

	require.NoError(t, s.RunUntil(context.Background(), 3))
	d := s.Diagnostics()
	assert.Equal(t, d.Volume[0], d.Volume[1], "geometry must hold through the spin-up")
	assert.Less(t, d.Volume[2], d.Volume[1])
	assert.Equal(t, 3, mb.calls, "providers still see every year")
}

func TestAreaConstantFreezesWholeRun(t *testing.T) {
	fl := rectLine(t, 100., 500.,
		[]float64{3000., 2900., 2800., 2700., 2600., 2500.},
		[]float64{100., 100., 100., 100., 100., 0.})
	sec0 := fl.Section()

	cfg := DefaultConfig()
	cfg.NYears = 4
	cfg.AreaConstant = true
	s, err := New(fl, &stubMB{rate: -5. / secNoleap}, cfg)
	require.NoError(t, err)

	require.NoError(t, s.RunUntil(context.Background(), 4))
	assert.Equal(t, sec0, fl.Section())
}

func TestExtremeLossRemovesGlacier(t *testing.T) {
	fl := rectLine(t, 100., 300.,
		[]float64{3000., 2900., 2800., 2700.},
		[]float64{20., 15., 10., 0.})

	mb := &recordingMB{stubMB: stubMB{rate: -50. / secNoleap}}
	cfg := DefaultConfig()
	cfg.NYears = 2
	s, err := New(fl, mb, cfg)
	require.NoError(t, err)

	require.NoError(t, s.RunUntil(context.Background(), 2))
	assert.Zero(t, fl.Volume())
	assert.Zero(t, fl.Area())

	// both years recorded, on the engine and on the provider
	d := s.Diagnostics()
	assert.Zero(t, d.Volume[0])
	assert.Zero(t, d.Volume[1])
	assert.Equal(t, []int{0, 1}, mb.years)
}

func TestRunAndStoreYearly(t *testing.T) {
	fl := rectLine(t, 100., 500.,
		[]float64{3080., 2970., 2860., 2750., 2640., 2500.},
		[]float64{80., 70., 60., 50., 40., 0.})
	sec0 := fl.Section()
	vol0 := fl.Volume()

	mb := &stubMB{rate: -1. / secNoleap, ela: 2850.}
	cfg := DefaultConfig()
	cfg.StartYear = 2000
	cfg.NYears = 4
	s, err := New(fl, mb, cfg)
	require.NoError(t, err)

	ds, err := s.RunAndStore(context.Background(), 3)
	require.NoError(t, err)

	require.Equal(t, []float64{2000., 2001., 2002., 2003.}, ds.Time)
	assert.Equal(t, ds.Time, ds.YearTime)
	assert.Equal(t, []int{2000, 2001, 2002, 2003}, ds.HydroYear)
	assert.Equal(t, []int{1, 1, 1, 1}, ds.HydroMonth)
	assert.Equal(t, 1999, ds.CalendarYear[0])
	assert.Equal(t, 10, ds.CalendarMonth[0])

	assert.InDelta(t, vol0, ds.VolumeM3[0], 1e-6)
	for j := 1; j < 4; j++ {
		assert.Less(t, ds.VolumeM3[j], ds.VolumeM3[j-1])
	}
	assert.InDelta(t, 5.*500.*100., ds.AreaM2[0], 1e-6)
	assert.Equal(t, 500., ds.LengthM[0])

	for j := 0; j < 3; j++ {
		assert.Equal(t, 2850., ds.ELAm[j])
	}
	assert.True(t, math.IsNaN(ds.ELAm[3]), "no ELA belongs to the final state row")

	require.Len(t, ds.Section, 4)
	assert.Equal(t, sec0, ds.Section[0], "row 0 must hold the initial geometry")
	assert.Less(t, ds.Section[3][4], ds.Section[0][4])

	assert.Nil(t, ds.CalvingM3)
	assert.Nil(t, ds.CalvingRateMyr)
	assert.Nil(t, ds.CalvingBucketM3)
	assert.Nil(t, ds.VolumeBslM3)
	assert.Nil(t, ds.VolumeBwlM3)

	assert.Equal(t, Version, ds.Attrs.Version)
	assert.Equal(t, "365-day no leap", ds.Attrs.Calendar)
	assert.Equal(t, "nh", ds.Attrs.Hemisphere)
	assert.Len(t, ds.Attrs.CreationDate, 19)

	// the engine is consumed
	_, err = s.RunAndStore(context.Background(), 3)
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestRunAndStoreRejectsBadHorizon(t *testing.T) {
	fl := rectLine(t, 100., 500.,
		[]float64{3000., 2900., 2800., 2700.},
		[]float64{50., 50., 50., 0.})
	cfg := DefaultConfig()
	cfg.NYears = 4
	s, err := New(fl, &stubMB{}, cfg)
	require.NoError(t, err)

	_, err = s.RunAndStore(context.Background(), 0)
	assert.True(t, errors.Is(err, ErrConfig))
	_, err = s.RunAndStore(context.Background(), 5)
	assert.True(t, errors.Is(err, ErrConfig))
}

func TestRunAndStoreMonthlyStairSteps(t *testing.T) {
	fl := rectLine(t, 100., 500.,
		[]float64{3080., 2970., 2860., 2750., 2640., 2500.},
		[]float64{80., 70., 60., 50., 40., 0.})

	mb := &stubMB{rate: -1. / secNoleap, ela: 2850.}
	cfg := DefaultConfig()
	cfg.StartYear = 2000
	cfg.NYears = 2
	cfg.StoreMonthly = true
	s, err := New(fl, mb, cfg)
	require.NoError(t, err)

	ds, err := s.RunAndStore(context.Background(), 2)
	require.NoError(t, err)

	require.Len(t, ds.Time, 25)
	assert.Equal(t, 2000., ds.Time[0])
	assert.Equal(t, 2001., ds.Time[12])
	assert.Equal(t, 2002., ds.Time[24])

	// scalars hold within a hydrological year and step at its boundary
	for j := 1; j < 12; j++ {
		assert.Equal(t, ds.VolumeM3[0], ds.VolumeM3[j])
	}
	assert.Less(t, ds.VolumeM3[12], ds.VolumeM3[11])

	// hydrological October maps onto the prior calendar year up north
	assert.Equal(t, 2, ds.HydroMonth[1])
	assert.Equal(t, 1999, ds.CalendarYear[1])
	assert.Equal(t, 11, ds.CalendarMonth[1])
	assert.Equal(t, 2000, ds.CalendarYear[3])
	assert.Equal(t, 1, ds.CalendarMonth[3])

	assert.Equal(t, 2850., ds.ELAm[0])
	assert.True(t, math.IsNaN(ds.ELAm[24]))

	// geometry snapshots stay yearly regardless of the scalar axis
	assert.Len(t, ds.Section, 3)
	assert.Equal(t, []float64{2000., 2001., 2002.}, ds.YearTime)
}

func TestRunAndStoreTidewaterSeries(t *testing.T) {
	fl := rectLine(t, 100., 500.,
		[]float64{3080., 2970., 2860., 2750., 2640., 2500.},
		[]float64{80., 70., 60., 50., 40., 0.})

	cfg := DefaultConfig()
	cfg.NYears = 2
	cfg.Tidewater = true
	cfg.MarineTerminating = true
	cfg.WaterLevel = 2650.
	s, err := New(fl, &stubMB{}, cfg)
	require.NoError(t, err)

	ds, err := s.RunAndStore(context.Background(), 2)
	require.NoError(t, err)

	require.NotNil(t, ds.CalvingM3)
	require.NotNil(t, ds.CalvingRateMyr)
	require.NotNil(t, ds.CalvingBucketM3)
	require.NotNil(t, ds.VolumeBwlM3)
	assert.Zero(t, ds.CalvingM3[0])
	assert.Positive(t, ds.VolumeBwlM3[0], "terminus ice sits below the water level")
	assert.Zero(t, ds.VolumeBslM3[0], "nothing below sea level on this bed")
	assert.Equal(t, 2650., ds.Attrs.WaterLevel)
}
