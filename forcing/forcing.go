// Package forcing carries the atmospheric inputs to a simulation:
// per-cell precipitation and potential evapotranspiration series.
// Negative values are the missing-data sentinel and are excluded from
// accumulation and from cost inputs downstream.
package forcing

import (
	"fmt"

	"github.com/ctessum/sparse"

	"github.com/DassHydro-dev/smash/field"
	"github.com/DassHydro-dev/smash/mesh"
)

// Sentinel marks a missing forcing value.
const Sentinel = -99.

// Forcing holds one field per timestep for each variable.
type Forcing struct {
	Prcp, Pet []field.Field // [timestep]
	Nt        int
}

// New allocates an nt-step forcing of zeros.
func New(m *mesh.Mesh, nt int, dense bool) *Forcing {
	frc := &Forcing{
		Prcp: make([]field.Field, nt),
		Pet:  make([]field.Field, nt),
		Nt:   nt,
	}
	for t := 0; t < nt; t++ {
		frc.Prcp[t] = field.New(m, 0., dense)
		frc.Pet[t] = field.New(m, 0., dense)
	}
	return frc
}

// FromRasters compacts raster stacks into a forcing, checking shapes.
func FromRasters(m *mesh.Mesh, prcp, pet []*sparse.DenseArray, dense bool) (*Forcing, error) {
	if len(prcp) != len(pet) {
		return nil, fmt.Errorf(" forcing.FromRasters: %d prcp rasters, %d pet", len(prcp), len(pet))
	}
	frc := &Forcing{Nt: len(prcp)}
	for t := range prcp {
		if prcp[t].Shape[0] != m.Nrow || prcp[t].Shape[1] != m.Ncol || pet[t].Shape[0] != m.Nrow || pet[t].Shape[1] != m.Ncol {
			return nil, fmt.Errorf(" forcing.FromRasters: raster %d does not match the %d×%d mesh", t, m.Nrow, m.Ncol)
		}
		frc.Prcp = append(frc.Prcp, field.FromRaster(m, prcp[t], dense))
		frc.Pet = append(frc.Pet, field.FromRaster(m, pet[t], dense))
	}
	return frc, nil
}

// MeanPrcp returns the domain-average precipitation series, skipping
// sentinel values; a step with no valid cell reports the sentinel.
func (frc *Forcing) MeanPrcp(m *mesh.Mesh) []float64 {
	mp := make([]float64, frc.Nt)
	for t := 0; t < frc.Nt; t++ {
		s, n := 0., 0
		for k := 0; k < m.Nact(); k++ {
			if v := frc.Prcp[t].Get(m, k); v >= 0. {
				s += v
				n++
			}
		}
		if n == 0 {
			mp[t] = Sentinel
			continue
		}
		mp[t] = s / float64(n)
	}
	return mp
}

// CheckAndPrint summarizes forcing totals in the units of the series.
func (frc *Forcing) CheckAndPrint(m *mesh.Mesh) {
	fmt.Println("Forcing summary:")
	fmt.Printf(" %d timesteps, %d active cells\n", frc.Nt, m.Nact())
	sy, se, miss := 0., 0., 0
	for t := 0; t < frc.Nt; t++ {
		for k := 0; k < m.Nact(); k++ {
			if v := frc.Prcp[t].Get(m, k); v >= 0. {
				sy += v
			} else {
				miss++
			}
			if v := frc.Pet[t].Get(m, k); v >= 0. {
				se += v
			}
		}
	}
	fn := float64(frc.Nt * m.Nact())
	fmt.Printf(" mean prcp: %.5f  mean pet: %.5f  missing: %d\n", sy/fn, se/fn, miss)
}
