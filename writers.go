package gem

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"os"
)

// writeFloats dumps a series as little-endian float32, the layout the
// plotting scripts read.
func writeFloats(fp string, f []float64) error {
	f32 := func() []float32 {
		o := make([]float32, len(f))
		for i, v := range f {
			o[i] = float32(v)
		}
		return o
	}()
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, f32); err != nil {
		return fmt.Errorf("writeFloats failed: %v", err)
	}
	if err := os.WriteFile(fp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writeFloats failed: %v", err)
	}
	return nil
}

func writeInts(fp string, i []int32) error {
	buf := new(bytes.Buffer)
	if err := binary.Write(buf, binary.LittleEndian, i); err != nil {
		return fmt.Errorf("writeInts failed: %v", err)
	}
	if err := os.WriteFile(fp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writeInts failed: %v", err)
	}
	return nil
}

// flatten lays a year-by-bin panel out year-major.
func flatten(p [][]float64) []float64 {
	if len(p) == 0 {
		return nil
	}
	o := make([]float64, 0, len(p)*len(p[0]))
	for _, row := range p {
		o = append(o, row...)
	}
	return o
}

// SaveGob writes the assembled run output.
func (o *RunDataset) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" rundataset.Save %v", err)
	}
	if err := gob.NewEncoder(f).Encode(o); err != nil {
		f.Close()
		return fmt.Errorf(" rundataset.Save %v", err)
	}
	f.Close()
	return nil
}

// LoadGobRunDataset reads a run output written by SaveGob.
func LoadGobRunDataset(fp string) (*RunDataset, error) {
	var o RunDataset
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	if err := gob.NewDecoder(f).Decode(&o); err != nil {
		f.Close()
		return nil, err
	}
	f.Close()
	return &o, nil
}
