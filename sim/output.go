package sim

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/ctessum/sparse"
)

// Output carries everything a run produces: per-gauge simulated
// discharge [m³/s], optional full-domain rasters, final reservoir
// states and, once a cost evaluation ran, the cost scalars.
type Output struct {
	Qsim        [][]float64 // [gauge][timestep]
	QDomain     []*sparse.DenseArray
	NetPrcp     []*sparse.DenseArray
	FinalStates *States

	Cost, Jobs, Jreg float64
}

// SaveGob writes the output to fp.
func (o *Output) SaveGob(fp string) error {
	f, err := os.Create(fp)
	if err != nil {
		return fmt.Errorf(" sim.Output.SaveGob %v", err)
	}
	if err := gob.NewEncoder(f).Encode(o); err != nil {
		return fmt.Errorf(" sim.Output.SaveGob %v", err)
	}
	f.Close()
	return nil
}

// LoadGobOutput reads an output from fp.
func LoadGobOutput(fp string) (*Output, error) {
	var o Output
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	if err := gob.NewDecoder(f).Decode(&o); err != nil {
		return nil, err
	}
	f.Close()
	return &o, nil
}
