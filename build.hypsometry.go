package gem

import (
	"fmt"

	"github.com/maseology/gem/flowline"
	"github.com/maseology/mmio"
)

// buildHypsometry reads a glacier hypsometry table, one bin per row of
// surface elevation [m asl], ice thickness [m] and surface width [m],
// ordered head to terminus, and proves it assembles into a flowline.
func buildHypsometry(fp string, dx float64, shape flowline.BedShape) (surf, thick, width []float64, err error) {
	println(" > step 1: load glacier hypsometry")
	d, err := mmio.ReadCSV(fp)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("hypsometry: %v", err)
	}
	if len(d) == 0 {
		return nil, nil, nil, fmt.Errorf("hypsometry: %s holds no bins", fp)
	}

	n := len(d)
	surf, thick, width = make([]float64, n), make([]float64, n), make([]float64, n)
	for i, ln := range d {
		if len(ln) < 3 {
			return nil, nil, nil, fmt.Errorf("hypsometry: row %d holds %d columns, need surface,thick,width", i, len(ln))
		}
		surf[i], thick[i], width[i] = ln[0], ln[1], ln[2]
		if i > 0 && surf[i] >= surf[i-1] {
			return nil, nil, nil, fmt.Errorf("hypsometry: row %d: surfaces must drop head to terminus", i)
		}
		if thick[i] < 0. || width[i] < 0. {
			return nil, nil, nil, fmt.Errorf("hypsometry: row %d: negative thickness or width", i)
		}
		if thick[i] > 0. && width[i] == 0. {
			return nil, nil, nil, fmt.Errorf("hypsometry: row %d holds ice but no width", i)
		}
	}

	if _, err := flowline.New(shape, dx, surf, thick, width); err != nil {
		return nil, nil, nil, fmt.Errorf("hypsometry: %v", err)
	}
	return surf, thick, width, nil
}
