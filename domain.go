package gem

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/maseology/gem/flowline"
	"github.com/maseology/gem/massbalance"
)

// Dataset is a glacier ready to simulate: the flowline construction
// arrays head to terminus, the climate series at its reference elevation
// and any observed balances, as assembled by BuildDomain.
type Dataset struct {
	Shape       flowline.BedShape
	DX          float64
	SurfaceElev []float64
	Thick       []float64
	Width       []float64
	Hemisphere  string
	Clim        massbalance.Climate
	Obs         []float64 // observed annual glacier-wide balances [m w.e.], optional
}

// Flowline assembles the glacier geometry.
func (d *Dataset) Flowline() (*flowline.Flowline, error) {
	return flowline.New(d.Shape, d.DX, d.SurfaceElev, d.Thick, d.Width)
}

func (d *Dataset) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" dataset.Save %v", err)
	}
	if err := gob.NewEncoder(f).Encode(d); err != nil {
		f.Close()
		return fmt.Errorf(" dataset.Save %v", err)
	}
	f.Close()
	return nil
}

func LoadGobDataset(fp string) (*Dataset, error) {
	var d Dataset
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	if err := gob.NewDecoder(f).Decode(&d); err != nil {
		f.Close()
		return nil, err
	}
	f.Close()
	return &d, nil
}

// LoadDomain assembles a ready-to-run ensemble from a model prefix: the
// dataset gob beside its run configuration.
func LoadDomain(mdlprfx string) (*Ensemble, error) {
	ds, err := LoadGobDataset(mdlprfx + "dataset.gob")
	if err != nil {
		return nil, fmt.Errorf("domain: %w", err)
	}
	cfg, err := LoadConfig(mdlprfx + "config.ini")
	if err != nil {
		return nil, fmt.Errorf("domain: %w", err)
	}
	fl, err := ds.Flowline()
	if err != nil {
		return nil, fmt.Errorf("domain: %w", err)
	}
	return &Ensemble{
		Fl:         fl,
		Cfg:        cfg,
		Clim:       ds.Clim,
		Hemisphere: ds.Hemisphere,
		Obs:        ds.Obs,
	}, nil
}
