// Package hyd provides hydrological-year calendar arithmetic: float-year
// time axes, hydrological-to-calendar date mapping, and month-length
// tables used to convert annual ice rates to volumes.
package hyd

import (
	"fmt"
	"time"
)

// Hydrological years begin in October north of the equator and in April
// south of it.
const (
	StartMonthNorth = 10
	StartMonthSouth = 4
)

// StartMonth maps a hemisphere code ("nh" or "sh") to the first calendar
// month of the hydrological year.
func StartMonth(hemisphere string) (int, error) {
	switch hemisphere {
	case "nh":
		return StartMonthNorth, nil
	case "sh":
		return StartMonthSouth, nil
	default:
		return 0, fmt.Errorf("hyd: ambiguous hemisphere %q", hemisphere)
	}
}

// FloatYear collapses a (year, month) pair onto a floating year axis.
func FloatYear(y, m int) float64 {
	return float64(y) + float64(m-1)/12.
}

// FromFloatYear splits a floating year into its (year, month) pair.
func FromFloatYear(fy float64) (int, int) {
	y := int(fy)
	if fy < 0. && float64(y) != fy {
		y--
	}
	m := int((fy-float64(y))*12.+0.5) + 1
	if m > 12 {
		y++
		m = 1
	}
	return y, m
}

// MonthlyTimeseries returns the monthly float-year axis spanning y0 through
// y1 inclusive of both year boundaries (12*(y1-y0)+1 points).
func MonthlyTimeseries(y0, y1 int) []float64 {
	if y1 < y0 {
		panic("hyd: reversed year range")
	}
	out := make([]float64, 0, 12*(y1-y0)+1)
	for y := y0; y < y1; y++ {
		for m := 1; m <= 12; m++ {
			out = append(out, FloatYear(y, m))
		}
	}
	return append(out, FloatYear(y1, 1))
}

// ToCalendar converts a hydrological (year, month) to the calendar
// (year, month) it falls in, given the hydrological start month.
func ToCalendar(hy, hm, startMonth int) (int, int) {
	e := 13 - startMonth
	if hm <= e {
		return hy - 1, hm + startMonth - 1
	}
	return hy, hm - e
}

// DatesTable tabulates month lengths over a run's hydrological years.
type DatesTable struct {
	StartYear  int // first hydrological year
	NYears     int
	StartMonth int
	Leap       bool // honor leap days; otherwise a 365-day calendar
	days       [][12]float64
}

// NewDatesTable builds the month-length table for nYears hydrological
// years beginning at startYear.
func NewDatesTable(startYear, nYears, startMonth int, leap bool) (*DatesTable, error) {
	if nYears <= 0 {
		return nil, fmt.Errorf("hyd: need a positive year count, got %d", nYears)
	}
	if startMonth < 1 || startMonth > 12 {
		return nil, fmt.Errorf("hyd: start month %d out of range", startMonth)
	}
	d := &DatesTable{
		StartYear:  startYear,
		NYears:     nYears,
		StartMonth: startMonth,
		Leap:       leap,
		days:       make([][12]float64, nYears),
	}
	for k := 0; k < nYears; k++ {
		for hm := 1; hm <= 12; hm++ {
			cy, cm := ToCalendar(startYear+k, hm, startMonth)
			n := time.Date(cy, time.Month(cm)+1, 0, 0, 0, 0, 0, time.UTC).Day()
			if !leap && cm == 2 {
				n = 28
			}
			d.days[k][hm-1] = float64(n)
		}
	}
	return d, nil
}

// DaysInMonth returns the length [d] of hydrological month hm (1-12) of
// year index k.
func (d *DatesTable) DaysInMonth(k, hm int) float64 { return d.days[k][hm-1] }

// SecondsInYear returns the duration [s] of hydrological year index k.
func (d *DatesTable) SecondsInYear(k int) float64 {
	s := 0.
	for _, n := range d.days[k] {
		s += n
	}
	return s * 86400.
}

// Calendar returns the calendar (year, month) of hydrological month hm of
// year index k.
func (d *DatesTable) Calendar(k, hm int) (int, int) {
	return ToCalendar(d.StartYear+k, hm, d.StartMonth)
}
