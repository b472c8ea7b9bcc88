// Package flowline holds the discretized geometric state of a glacier:
// elevation bins of fixed spacing along a single 1-D flowline, ordered from
// the glacier head down to the terminus. The cross-sectional area is the
// authoritative state; thickness and width are derived through the bed
// shape so that volume is conserved under section updates.
package flowline

import (
	"fmt"
	"math"
)

// Flowline is the mutable geometry of one glacier.
type Flowline struct {
	shape   BedShape
	dx      float64   // bin spacing [m]
	bed     []float64 // bed elevation [m asl]
	shp     []float64 // frozen per-bin bed parameter
	section []float64 // cross-sectional area [m2]
	thick   []float64 // ice thickness [m]
	width   []float64 // surface width [m]
}

// New builds a flowline from surveyed geometry: per-bin surface elevation
// [m asl], ice thickness [m] and surface width [m], with fixed bin spacing
// dx [m]. Bins must be ordered from the highest elevation down to the
// domain edge. Bed parameters are frozen from the surveyed ice; ice-free
// bins inherit theirs from the nearest surveyed bin up-glacier.
func New(shape BedShape, dx float64, surfaceElev, thick, width []float64) (*Flowline, error) {
	switch shape {
	case Parabolic, Rectangular, Triangular:
	default:
		return nil, fmt.Errorf("flowline: unknown bed shape %d", shape)
	}
	if dx <= 0. {
		return nil, fmt.Errorf("flowline: bin spacing must be positive, got %f", dx)
	}
	n := len(surfaceElev)
	if n == 0 || len(thick) != n || len(width) != n {
		return nil, fmt.Errorf("flowline: geometry arrays must share one length >0, got %d/%d/%d",
			len(surfaceElev), len(thick), len(width))
	}

	fl := &Flowline{
		shape:   shape,
		dx:      dx,
		bed:     make([]float64, n),
		shp:     make([]float64, n),
		section: make([]float64, n),
		thick:   make([]float64, n),
		width:   make([]float64, n),
	}
	nactive := 0
	for i := 0; i < n; i++ {
		h, w := thick[i], width[i]
		if h < 0. || w < 0. {
			return nil, fmt.Errorf("flowline: negative geometry at bin %d (thick %f width %f)", i, h, w)
		}
		if h > 0. && w <= 0. {
			return nil, fmt.Errorf("flowline: bin %d has ice but no width", i)
		}
		fl.bed[i] = surfaceElev[i] - h
		if h > 0. {
			fl.shp[i] = shapeParam(shape, h, w)
			nactive++
		}
	}
	if nactive == 0 {
		return nil, fmt.Errorf("flowline: no ice on flowline")
	}

	// ice-free bins take the nearest surveyed parameter, preferring
	// up-glacier neighbours
	last := math.NaN()
	for i := 0; i < n; i++ {
		if thick[i] > 0. {
			last = fl.shp[i]
		} else if !math.IsNaN(last) {
			fl.shp[i] = last
		}
	}
	last = math.NaN()
	for i := n - 1; i >= 0; i-- {
		if thick[i] > 0. {
			last = fl.shp[i]
		} else if fl.shp[i] == 0. {
			fl.shp[i] = last
		}
	}

	for i := 0; i < n; i++ {
		fl.section[i] = sectionFromThick(shape, fl.shp[i], thick[i])
	}
	fl.derive()
	return fl, nil
}

// derive refreshes thickness and width from the authoritative section.
func (fl *Flowline) derive() {
	for i, sec := range fl.section {
		fl.thick[i] = thickFromSection(fl.shape, fl.shp[i], sec)
		fl.width[i] = widthFromThick(fl.shape, fl.shp[i], fl.thick[i])
	}
}

// Copy returns a deep copy sharing no state with the receiver.
func (fl *Flowline) Copy() *Flowline {
	c := &Flowline{shape: fl.shape, dx: fl.dx}
	c.bed = append([]float64(nil), fl.bed...)
	c.shp = append([]float64(nil), fl.shp...)
	c.section = append([]float64(nil), fl.section...)
	c.thick = append([]float64(nil), fl.thick...)
	c.width = append([]float64(nil), fl.width...)
	return c
}

func (fl *Flowline) NBins() int      { return len(fl.section) }
func (fl *Flowline) DX() float64     { return fl.dx }
func (fl *Flowline) Shape() BedShape { return fl.shape }

// Bed returns a copy of the bed elevations [m asl].
func (fl *Flowline) Bed() []float64 { return append([]float64(nil), fl.bed...) }

// Section returns a copy of the per-bin cross-sectional areas [m2].
func (fl *Flowline) Section() []float64 { return append([]float64(nil), fl.section...) }

// Thick returns a copy of the per-bin ice thicknesses [m].
func (fl *Flowline) Thick() []float64 { return append([]float64(nil), fl.thick...) }

// Width returns a copy of the per-bin surface widths [m].
func (fl *Flowline) Width() []float64 { return append([]float64(nil), fl.width...) }

// SurfaceElev returns bed plus ice thickness per bin [m asl].
func (fl *Flowline) SurfaceElev() []float64 {
	s := make([]float64, len(fl.bed))
	for i := range s {
		s[i] = fl.bed[i] + fl.thick[i]
	}
	return s
}

// SetSection replaces the cross-sectional areas and re-derives thickness
// and width. Sections must be non-negative; non-finite values are let
// through for the run-level solution checks to report.
func (fl *Flowline) SetSection(section []float64) {
	if len(section) != len(fl.section) {
		panic("flowline: section length mismatch")
	}
	for i, sec := range section {
		if sec < 0. {
			panic(fmt.Sprintf("flowline: negative section %e at bin %d", sec, i))
		}
		fl.section[i] = sec
	}
	fl.derive()
}

// SetThick replaces the ice thicknesses, converting through the bed shape
// so the authoritative section stays consistent.
func (fl *Flowline) SetThick(thick []float64) {
	if len(thick) != len(fl.thick) {
		panic("flowline: thickness length mismatch")
	}
	for i, h := range thick {
		if h < 0. {
			panic(fmt.Sprintf("flowline: negative thickness %e at bin %d", h, i))
		}
		fl.section[i] = sectionFromThick(fl.shape, fl.shp[i], h)
	}
	fl.derive()
}

// ActiveBins returns the indices holding ice, ordered head to terminus.
func (fl *Flowline) ActiveBins() []int {
	var idx []int
	for i, h := range fl.thick {
		if h > 0. {
			idx = append(idx, i)
		}
	}
	return idx
}

// BinAreas returns per-bin map areas (width x spacing) [m2], zero where no
// ice is present.
func (fl *Flowline) BinAreas() []float64 {
	a := make([]float64, len(fl.width))
	for i, w := range fl.width {
		if fl.thick[i] > 0. {
			a[i] = w * fl.dx
		}
	}
	return a
}

// Area returns the ice-covered map area [m2].
func (fl *Flowline) Area() float64 {
	s := 0.
	for i, w := range fl.width {
		if fl.thick[i] > 0. {
			s += w * fl.dx
		}
	}
	return s
}

// Volume returns the total ice volume [m3].
func (fl *Flowline) Volume() float64 {
	s := 0.
	for _, sec := range fl.section {
		s += sec * fl.dx
	}
	return s
}

// Length returns the ice-covered length [m].
func (fl *Flowline) Length() float64 {
	n := 0
	for _, h := range fl.thick {
		if h > 0. {
			n++
		}
	}
	return float64(n) * fl.dx
}

// VolumeBelowLevel returns the ice volume lying below elevation z [m asl],
// assuming ice fills each bin uniformly from the bed upward.
func (fl *Flowline) VolumeBelowLevel(z float64) float64 {
	s := 0.
	for i, h := range fl.thick {
		if h <= 0. {
			continue
		}
		f := (z - fl.bed[i]) / h
		if f > 1. {
			f = 1.
		}
		if f > 0. {
			s += fl.section[i] * fl.dx * f
		}
	}
	return s
}

// TerminusThick returns the ice thickness at the domain-edge bin [m].
func (fl *Flowline) TerminusThick() float64 { return fl.thick[len(fl.thick)-1] }
