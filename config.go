package gem

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// RedistributionMethod selects how a glacier-wide volume change is spread
// across elevation bins.
type RedistributionMethod int

// MethodHussCurve applies the empirical normalized thickness-change curves
// of Huss and Hock (2015); the only method implemented.
const MethodHussCurve RedistributionMethod = 1

// Config carries every recognized run option. The zero value is not
// runnable; start from DefaultConfig.
type Config struct {
	StartYear int // first hydrological year, labels the time axes
	NYears    int // run horizon

	SpinupYears       int  // years with geometry frozen for model spin-up
	ConstantAreaYears int  // years with geometry frozen for calibration
	AreaConstant      bool // freeze geometry for the whole run

	Method             RedistributionMethod
	AdvanceThreshold   float64 // bin thickness gain before colonizing a new bin [m]
	TerminusPercentage float64 // share of the elevation range treated as terminus [%]
	Tolerance          float64 // absolute volume treated as zero [m3]
	DomainEdgeThick    float64 // terminal-bin thickness failing the run [m]
	MaxIterations      int     // retreat/advance pass budget

	LeapYears    bool // honor leap days in the hydrological calendar
	StoreMonthly bool // sample scalar diagnostics monthly instead of yearly

	Tidewater         bool    // glacier terminates in water; calving accounting applies
	MarineTerminating bool    // tidewater glacier reaching the sea; report submerged volumes
	WaterLevel        float64 // water level at the terminus [m asl]
}

// DefaultConfig returns the standard run options.
func DefaultConfig() Config {
	return Config{
		StartYear:          2000,
		NYears:             100,
		Method:             MethodHussCurve,
		AdvanceThreshold:   defaultAdvanceThreshold,
		TerminusPercentage: defaultTerminusPct,
		Tolerance:          defaultTolerance,
		DomainEdgeThick:    defaultDomainEdgeThick,
		MaxIterations:      defaultMaxIter,
	}
}

// LoadConfig reads run options from an ini file, filling anything omitted
// from DefaultConfig.
func LoadConfig(fp string) (Config, error) {
	f, err := ini.Load(fp)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	d := DefaultConfig()
	run, seg := f.Section("run"), f.Section("redistribution")
	glc := f.Section("glacier")
	c := Config{
		StartYear:          run.Key("StartYear").MustInt(d.StartYear),
		NYears:             run.Key("NYears").MustInt(d.NYears),
		SpinupYears:        run.Key("SpinupYears").MustInt(0),
		ConstantAreaYears:  run.Key("ConstantAreaYears").MustInt(0),
		AreaConstant:       run.Key("AreaConstant").MustBool(false),
		LeapYears:          run.Key("LeapYears").MustBool(false),
		StoreMonthly:       run.Key("StoreMonthly").MustBool(false),
		Method:             RedistributionMethod(seg.Key("Method").MustInt(int(MethodHussCurve))),
		AdvanceThreshold:   seg.Key("AdvanceThreshold").MustFloat64(d.AdvanceThreshold),
		TerminusPercentage: seg.Key("TerminusPercentage").MustFloat64(d.TerminusPercentage),
		Tolerance:          seg.Key("Tolerance").MustFloat64(d.Tolerance),
		DomainEdgeThick:    seg.Key("DomainEdgeThick").MustFloat64(d.DomainEdgeThick),
		MaxIterations:      seg.Key("MaxIterations").MustInt(d.MaxIterations),
		Tidewater:          glc.Key("Tidewater").MustBool(false),
		MarineTerminating:  glc.Key("MarineTerminating").MustBool(false),
		WaterLevel:         glc.Key("WaterLevel").MustFloat64(0.),
	}
	return c, c.check()
}

func (c Config) check() error {
	switch {
	case c.Method != MethodHussCurve:
		return fmt.Errorf("%w: unknown redistribution method %d", ErrConfig, c.Method)
	case c.NYears <= 0:
		return fmt.Errorf("%w: run horizon %d years", ErrConfig, c.NYears)
	case c.SpinupYears < 0 || c.ConstantAreaYears < 0:
		return fmt.Errorf("%w: negative freeze window", ErrConfig)
	case c.AdvanceThreshold <= 0.:
		return fmt.Errorf("%w: advance threshold %f m", ErrConfig, c.AdvanceThreshold)
	case c.TerminusPercentage <= 0. || c.TerminusPercentage > 100.:
		return fmt.Errorf("%w: terminus percentage %f", ErrConfig, c.TerminusPercentage)
	case c.Tolerance < 0.:
		return fmt.Errorf("%w: negative tolerance", ErrConfig)
	case c.DomainEdgeThick <= 0.:
		return fmt.Errorf("%w: domain-edge thickness %f m", ErrConfig, c.DomainEdgeThick)
	case c.MaxIterations <= 0:
		return fmt.Errorf("%w: iteration budget %d", ErrConfig, c.MaxIterations)
	case c.MarineTerminating && !c.Tidewater:
		return fmt.Errorf("%w: marine-terminating implies tidewater", ErrConfig)
	}
	return nil
}
