package gem

const (
	// Version is stamped into output datasets.
	Version = "0.1.0"

	// DensityIce converts ice volume to mass [kg m-3].
	DensityIce = 900.
	// DensityWater converts water-equivalent depths to mass [kg m-3].
	DensityWater = 1000.

	// defaults carried by DefaultConfig
	defaultAdvanceThreshold = 5.    // bin thickening before a new bin is colonized [m]
	defaultTerminusPct      = 20.   // lowest share of the elevation range deemed terminus [%]
	defaultTolerance        = 1e-12 // absolute volume below which residuals are noise [m3]
	defaultDomainEdgeThick  = 10.   // terminal-bin ice ending a run [m]
	defaultMaxIter          = 200   // retreat/advance pass budget
)
