package gem

// Diagnostics accumulates the per-year geometry record the engine shares
// with its mass-balance provider: plan-form bin areas, thicknesses, widths
// and the glacier totals, one row per simulated hydrological year. Rows
// are written once and never revised.
type Diagnostics struct {
	BinArea  [][]float64 // [yr][bin] plan-form area [m2]
	BinThick [][]float64 // [yr][bin] ice thickness [m]
	BinWidth [][]float64 // [yr][bin] surface width [m]
	Area     []float64   // [yr] glacier plan-form area [m2]
	Volume   []float64   // [yr] glacier plan-form volume [m3]
}

func newDiagnostics(nbins, nyears int) *Diagnostics {
	return &Diagnostics{
		BinArea:  make([][]float64, nyears),
		BinThick: make([][]float64, nyears),
		BinWidth: make([][]float64, nyears),
		Area:     make([]float64, nyears),
		Volume:   make([]float64, nyears),
	}
}

func (d *Diagnostics) record(yr int, binArea, binThick, binWidth []float64, area, volume float64) {
	d.BinArea[yr] = binArea
	d.BinThick[yr] = binThick
	d.BinWidth[yr] = binWidth
	d.Area[yr] = area
	d.Volume[yr] = volume
}

// RunAttrs carries dataset-level metadata.
type RunAttrs struct {
	Description  string
	Version      string
	Calendar     string
	CreationDate string
	Hemisphere   string
	WaterLevel   float64
}

// RunDataset is the assembled model output: scalar series on the sampled
// time axis, and geometry snapshots on the yearly axis where row k holds
// the state at the START of hydrological year k (row 0 the initial state,
// the last row the final one). Tidewater and marine-terminating series
// stay nil on glaciers they do not apply to.
type RunDataset struct {
	Attrs RunAttrs

	// sampled time axis: floating hydrological years with parallel
	// hydrological and calendar coordinates
	Time          []float64
	HydroYear     []int
	HydroMonth    []int
	CalendarYear  []int
	CalendarMonth []int

	VolumeM3 []float64 // total glacier volume [m3]
	AreaM2   []float64 // total glacier area [m2]
	LengthM  []float64 // glacier length [m]
	ELAm     []float64 // annual equilibrium-line altitude [m asl]

	CalvingM3      []float64 // accumulated frontal ablation [m3]
	CalvingRateMyr []float64 // frontal ablation rate [m yr-1]
	VolumeBslM3    []float64 // ice below sea level [m3]
	VolumeBwlM3    []float64 // ice below the terminus water level [m3]

	// yearly geometry snapshots
	YearTime        []float64
	Section         [][]float64 // [yr][bin] cross-sectional area [m2]
	WidthM          [][]float64 // [yr][bin] surface width [m]
	CalvingBucketM3 []float64   // [yr] unreleased calving volume [m3]
}
