// Package mapr maps a reduced control vector onto per-cell parameter
// fields for regionalized calibration: spatially uniform, fully
// distributed, or a linear/polynomial basis over physical descriptor
// rasters squeezed into the admissible interval by a scaled sigmoid.
package mapr

import (
	"fmt"
	"math"

	"github.com/DassHydro-dev/smash/field"
	"github.com/DassHydro-dev/smash/mesh"
)

// Mapper applies one mapping kind over a set of descriptor fields.
type Mapper struct {
	Kind        string // uniform | distributed | hyper-linear | hyper-polynomial
	Descriptors []field.Field
}

// Kinds lists the supported mapping identifiers.
func Kinds() []string {
	return []string{"uniform", "distributed", "hyper-linear", "hyper-polynomial"}
}

// Nctl is the control-vector length needed per mapped field.
func (mp *Mapper) Nctl(m *mesh.Mesh) (int, error) {
	nd := len(mp.Descriptors)
	switch mp.Kind {
	case "uniform":
		return 1, nil
	case "distributed":
		return m.Nact(), nil
	case "hyper-linear":
		return 1 + nd, nil
	case "hyper-polynomial":
		return 1 + 2*nd, nil
	}
	return 0, fmt.Errorf(" mapr.Nctl: unknown mapping %q", mp.Kind)
}

// Apply expands a control vector into the field, bounded to (lb,ub)
// for the hyper mappings.
func (mp *Mapper) Apply(m *mesh.Mesh, theta []float64, f *field.Field, lb, ub float64) error {
	n, err := mp.Nctl(m)
	if err != nil {
		return err
	}
	if len(theta) != n {
		return fmt.Errorf(" mapr.Apply: %s mapping wants %d controls, got %d", mp.Kind, n, len(theta))
	}
	switch mp.Kind {
	case "uniform":
		f.Fill(m, theta[0])
	case "distributed":
		for k := 0; k < m.Nact(); k++ {
			f.Set(m, k, theta[k])
		}
	case "hyper-linear":
		for k := 0; k < m.Nact(); k++ {
			z := theta[0]
			for i, d := range mp.Descriptors {
				z += theta[i+1] * d.Get(m, k)
			}
			f.Set(m, k, scaledSigmoid(z, lb, ub))
		}
	case "hyper-polynomial":
		for k := 0; k < m.Nact(); k++ {
			z := theta[0]
			for i, d := range mp.Descriptors {
				z += theta[2*i+1] * math.Pow(d.Get(m, k), theta[2*i+2])
			}
			f.Set(m, k, scaledSigmoid(z, lb, ub))
		}
	}
	return nil
}

// scaledSigmoid squeezes z into the open interval (lb,ub).
func scaledSigmoid(z, lb, ub float64) float64 {
	return lb + (ub-lb)/(1.+math.Exp(-z))
}
