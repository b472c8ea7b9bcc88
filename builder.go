package gem

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/im7mortal/UTM"
	"github.com/maseology/gem/flowline"
	"github.com/maseology/mmio"
)

// BuildDomain assembles a simulation-ready dataset gob from a control
// file naming the raw inputs:
//
//	prfx     model prefix; the dataset gob and config.ini live under it
//	hypsfp   hypsometry csv: surface,thick,width per bin, head to terminus
//	ncfp     NetCDF climate bundle
//	sid      climate station id within the bundle
//	easting northing zone   glacier position (UTM, zone like "17T")
//	zref     elevation the climate series applies at [m asl]
//	dx       bin spacing [m]
//	shape    bed shape: parabolic, rectangular or triangular
//	obsfp    observed annual balance csv (year,mb), optional
//
// The run span and calendar come from the config beside the prefix.
func BuildDomain(controlFP string) error {
	println("load control file: " + controlFP)
	ins := mmio.NewInstruct(controlFP)
	req := func(k string) (string, error) {
		if v, ok := ins.Param[k]; ok && len(v) > 0 {
			return v[0], nil
		}
		return "", fmt.Errorf("builder: control file missing %s", k)
	}

	mdlprfx, err := req("prfx")
	if err != nil {
		return err
	}
	hypsfp, err := req("hypsfp")
	if err != nil {
		return err
	}
	ncfp, err := req("ncfp")
	if err != nil {
		return err
	}

	var sid, zone int
	var easting, northing, zref, dx float64
	var zoneletter string
	for _, p := range []struct {
		k string
		i *int
		f *float64
	}{
		{k: "sid", i: &sid},
		{k: "easting", f: &easting},
		{k: "northing", f: &northing},
		{k: "zref", f: &zref},
		{k: "dx", f: &dx},
	} {
		v, err := req(p.k)
		if err != nil {
			return err
		}
		if p.i != nil {
			if *p.i, err = strconv.Atoi(v); err != nil {
				return fmt.Errorf("builder: %s: %v", p.k, err)
			}
		} else if *p.f, err = strconv.ParseFloat(v, 64); err != nil {
			return fmt.Errorf("builder: %s: %v", p.k, err)
		}
	}
	if zs, err := req("zone"); err != nil {
		return err
	} else {
		zoneletter = zs[len(zs)-1:]
		if zone, err = strconv.Atoi(zs[:len(zs)-1]); err != nil {
			return fmt.Errorf("builder: zone: %v", err)
		}
	}
	shape, err := func() (flowline.BedShape, error) {
		v, err := req("shape")
		if err != nil {
			return flowline.Rectangular, err
		}
		switch strings.ToLower(v) {
		case "parabolic":
			return flowline.Parabolic, nil
		case "rectangular":
			return flowline.Rectangular, nil
		case "triangular":
			return flowline.Triangular, nil
		}
		return flowline.Rectangular, fmt.Errorf("builder: unknown bed shape %q", v)
	}()
	if err != nil {
		return err
	}

	cfg, err := LoadConfig(mdlprfx + "config.ini")
	if err != nil {
		return err
	}

	// position fixes the hemisphere and with it the hydrological calendar
	lat, lng, err := UTM.ToLatLon(easting, northing, zone, zoneletter)
	if err != nil {
		return fmt.Errorf("builder: %v", err)
	}
	hemisphere := "nh"
	if lat < 0. {
		hemisphere = "sh"
	}
	fmt.Printf(" glacier position: lat %.4f lng %.4f (%s)\n", lat, lng, hemisphere)

	surf, thick, width, err := buildHypsometry(hypsfp, dx, shape)
	if err != nil {
		return err
	}

	println(" > step 2: load climate forcing")
	clim, err := buildClimate(ncfp, sid, cfg.StartYear, cfg.NYears, hemisphere, zref)
	if err != nil {
		return err
	}

	var obs []float64
	if obsfp, err := req("obsfp"); err == nil {
		println(" > step 3: load observed balances")
		d, err := mmio.ReadCSV(obsfp)
		if err != nil {
			return fmt.Errorf("builder: observations: %v", err)
		}
		obs = make([]float64, len(d))
		for i, ln := range d {
			obs[i] = ln[1] // year,mb
		}
	}

	ds := &Dataset{
		Shape:       shape,
		DX:          dx,
		SurfaceElev: surf,
		Thick:       thick,
		Width:       width,
		Hemisphere:  hemisphere,
		Clim:        clim,
		Obs:         obs,
	}

	// summarize
	fl, err := ds.Flowline()
	if err != nil {
		return err
	}
	println("\nBuild Summary\n==================================")
	fmt.Printf(" bins: %d  spacing: %.0f m\n", fl.NBins(), dx)
	fmt.Printf(" glacier area: %.2f km²  volume: %.4f km³\n", fl.Area()/1e6, fl.Volume()/1e9)
	fmt.Printf(" climate months: %d  observed balances: %d\n", len(clim.Temp), len(obs))

	println("\nsaving gob..")
	return ds.SaveGob(mdlprfx + "dataset.gob")
}
