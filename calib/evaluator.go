// Package calib layers calibration over the forward/cost engine:
// U-space parameter transforms, Latin-hypercube and ranked Monte
// Carlo sampling, SCE global search, and the finite-difference
// helpers that validate any gradient implementation against the
// forward model.
package calib

import (
	"fmt"
	"log"

	"github.com/DassHydro-dev/smash/cost"
	"github.com/DassHydro-dev/smash/field"
	"github.com/DassHydro-dev/smash/mapr"
	"github.com/DassHydro-dev/smash/sim"
)

// Evaluator binds a simulation to observations and a cost
// configuration, exposing the pure function u ↦ cost that samplers
// and optimizers consume.
type Evaluator struct {
	Sim       *sim.Simulation
	Prm       *sim.Parameters
	Sts       *sim.States
	Cfg       *cost.Config
	Obs       [][]float64 // observed discharge per gauge [m³/s]
	Prcp      []float64   // mean areal precipitation, for signatures
	EventMask [][]int     // per-gauge flood-event labels, optional
	Names     []string    // calibrated parameter names, one U dimension each
	Mapper    *mapr.Mapper
	Desc      *field.Field // descriptor for distance-correlation jreg

	bkg *sim.Parameters // background fields frozen at construction
}

// NewEvaluator freezes the current parameter set as the calibration
// background and checks observation shapes.
func NewEvaluator(s *sim.Simulation, prm *sim.Parameters, sts *sim.States, cfg *cost.Config, obs [][]float64, names []string) (*Evaluator, error) {
	if len(obs) != len(s.Mesh.Gauges) {
		return nil, fmt.Errorf(" calib.NewEvaluator: %d observation series for %d gauges", len(obs), len(s.Mesh.Gauges))
	}
	for _, n := range names {
		if prm.Get(n) == nil {
			return nil, fmt.Errorf(" calib.NewEvaluator: unknown parameter %q", n)
		}
	}
	return &Evaluator{
		Sim: s, Prm: prm, Sts: sts, Cfg: cfg, Obs: obs, Names: names,
		bkg: prm.Copy(),
	}, nil
}

// Apply maps a U-space sample onto the calibrated parameter fields,
// spatially uniform unless a hyper mapper is attached.
func (ev *Evaluator) Apply(u []float64) {
	m := ev.Sim.Mesh
	if ev.Mapper != nil {
		n, err := ev.Mapper.Nctl(m)
		if err != nil {
			log.Fatalf("calib.Apply: %v", err)
		}
		for i, name := range ev.Names {
			b := TransformBounds[name]
			if err := ev.Mapper.Apply(m, u[i*n:(i+1)*n], ev.Prm.Get(name), b.Lower, b.Upper); err != nil {
				log.Fatalf("calib.Apply: %v", err)
			}
		}
		return
	}
	for i, name := range ev.Names {
		ev.Prm.Get(name).Fill(m, Par(name, u[i]))
	}
}

// Evaluate is the sampler objective: apply u, run forward, compute
// cost. It never mutates the initial states or the background.
func (ev *Evaluator) Evaluate(u []float64) float64 {
	ev.Apply(u)
	out := ev.Sim.Run(ev.Prm, ev.Sts)
	c, _, _, err := ev.computeCost(out)
	if err != nil {
		log.Fatalf("calib.Evaluate: %v", err)
	}
	return c
}

// Run executes a forward pass with the current parameter fields and
// attaches cost scalars to the output.
func (ev *Evaluator) Run() (*sim.Output, error) {
	out := ev.Sim.Run(ev.Prm, ev.Sts)
	c, jobs, jreg, err := ev.computeCost(out)
	if err != nil {
		return nil, err
	}
	out.Cost, out.Jobs, out.Jreg = c, jobs, jreg
	return out, nil
}

func (ev *Evaluator) computeCost(out *sim.Output) (float64, float64, float64, error) {
	return cost.Compute(ev.Sim.Mesh, ev.Cfg, out.Qsim, ev.Obs, ev.Prcp, ev.Sim.Opt.Dt,
		ev.EventMask, ev.regFields(), ev.Desc)
}

// regFields exposes the calibrated fields with their backgrounds to
// the regularization terms.
func (ev *Evaluator) regFields() []cost.RegField {
	flds := make([]cost.RegField, 0, len(ev.Names))
	for _, name := range ev.Names {
		b := TransformBounds[name]
		flds = append(flds, cost.RegField{
			Name: name, Cur: ev.Prm.Get(name), Bkg: ev.bkg.Get(name),
			Lower: b.Lower, Upper: b.Upper, Optimized: true,
		})
	}
	return flds
}
