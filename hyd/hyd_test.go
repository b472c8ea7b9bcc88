package hyd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToCalendar(t *testing.T) {
	tests := []struct {
		hy, hm, start int
		cy, cm        int
	}{
		{2000, 1, StartMonthNorth, 1999, 10},
		{2000, 3, StartMonthNorth, 1999, 12},
		{2000, 4, StartMonthNorth, 2000, 1},
		{2000, 12, StartMonthNorth, 2000, 9},
		{2000, 1, StartMonthSouth, 1999, 4},
		{2000, 9, StartMonthSouth, 1999, 12},
		{2000, 10, StartMonthSouth, 2000, 1},
		{2000, 12, StartMonthSouth, 2000, 3},
	}
	for _, tt := range tests {
		cy, cm := ToCalendar(tt.hy, tt.hm, tt.start)
		assert.Equal(t, tt.cy, cy)
		assert.Equal(t, tt.cm, cm)
	}
}

func TestFloatYearRoundTrip(t *testing.T) {
	for y := 1999; y <= 2002; y++ {
		for m := 1; m <= 12; m++ {
			yy, mm := FromFloatYear(FloatYear(y, m))
			assert.Equal(t, y, yy)
			assert.Equal(t, m, mm)
		}
	}
	assert.InDelta(t, 2000., FloatYear(2000, 1), 1e-12)
	assert.InDelta(t, 2000.5, FloatYear(2000, 7), 1e-12)
}

func TestMonthlyTimeseries(t *testing.T) {
	ts := MonthlyTimeseries(2000, 2002)
	require.Len(t, ts, 25)
	assert.InDelta(t, 2000., ts[0], 1e-12)
	assert.InDelta(t, 2000.+11./12., ts[11], 1e-12)
	assert.InDelta(t, 2002., ts[24], 1e-12)
}

func TestStartMonth(t *testing.T) {
	m, err := StartMonth("nh")
	require.NoError(t, err)
	assert.Equal(t, 10, m)
	m, err = StartMonth("sh")
	require.NoError(t, err)
	assert.Equal(t, 4, m)
	_, err = StartMonth("")
	assert.Error(t, err)
}

func TestDatesTable(t *testing.T) {
	// northern hydro year 2000 spans Oct 1999 through Sep 2000 and holds
	// the Feb 2000 leap day
	d, err := NewDatesTable(2000, 2, StartMonthNorth, true)
	require.NoError(t, err)
	assert.InDelta(t, 31., d.DaysInMonth(0, 1), 1e-12) // Oct 1999
	assert.InDelta(t, 29., d.DaysInMonth(0, 5), 1e-12) // Feb 2000
	assert.InDelta(t, 366.*86400., d.SecondsInYear(0), 1e-6)
	assert.InDelta(t, 365.*86400., d.SecondsInYear(1), 1e-6)

	cy, cm := d.Calendar(0, 5)
	assert.Equal(t, 2000, cy)
	assert.Equal(t, 2, cm)

	noleap, err := NewDatesTable(2000, 1, StartMonthNorth, false)
	require.NoError(t, err)
	assert.InDelta(t, 28., noleap.DaysInMonth(0, 5), 1e-12)
	assert.InDelta(t, 365.*86400., noleap.SecondsInYear(0), 1e-6)

	_, err = NewDatesTable(2000, 0, StartMonthNorth, false)
	assert.Error(t, err)
	_, err = NewDatesTable(2000, 1, 13, false)
	assert.Error(t, err)
}
