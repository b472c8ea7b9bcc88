package flowline

import "math"

// BedShape selects the cross-sectional geometry relating ice thickness,
// surface width and section area within an elevation bin.
type BedShape int

const (
	Parabolic BedShape = iota + 1
	Rectangular
	Triangular
)

func (s BedShape) String() string {
	switch s {
	case Parabolic:
		return "parabolic"
	case Rectangular:
		return "rectangular"
	case Triangular:
		return "triangular"
	default:
		return "unknown"
	}
}

// shapeParam derives the frozen per-bin bed parameter from surveyed ice:
// parabolic shape factor [m-1], rectangular width [m], or triangular
// width-to-depth ratio [-].
func shapeParam(s BedShape, thick, width float64) float64 {
	switch s {
	case Parabolic:
		return 4. * thick / (width * width)
	case Rectangular:
		return width
	case Triangular:
		return width / thick
	default:
		panic("flowline: unknown bed shape")
	}
}

func thickFromSection(s BedShape, shp, section float64) float64 {
	if section <= 0. {
		return 0.
	}
	switch s {
	case Parabolic:
		return math.Pow(0.75*section*math.Sqrt(shp), 2./3.)
	case Rectangular:
		return section / shp
	case Triangular:
		return math.Sqrt(2. * section / shp)
	default:
		panic("flowline: unknown bed shape")
	}
}

func sectionFromThick(s BedShape, shp, thick float64) float64 {
	if thick <= 0. {
		return 0.
	}
	switch s {
	case Parabolic:
		return 2. / 3. * widthFromThick(s, shp, thick) * thick
	case Rectangular:
		return shp * thick
	case Triangular:
		return 0.5 * shp * thick * thick
	default:
		panic("flowline: unknown bed shape")
	}
}

// widthFromThick returns the surface width. Rectangular beds keep their
// fixed width where ice is absent, matching the bed geometry rather than
// the glacier plan-form (use BinAreas for ice-covered area).
func widthFromThick(s BedShape, shp, thick float64) float64 {
	switch s {
	case Parabolic:
		if thick <= 0. {
			return 0.
		}
		return math.Sqrt(4. * thick / shp)
	case Rectangular:
		return shp
	case Triangular:
		if thick <= 0. {
			return 0.
		}
		return shp * thick
	default:
		panic("flowline: unknown bed shape")
	}
}
