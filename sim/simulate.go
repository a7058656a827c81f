package sim

import (
	"fmt"
	"math"

	"github.com/ctessum/sparse"
	"github.com/gosuri/uiprogress"
	"github.com/sirupsen/logrus"

	"github.com/DassHydro-dev/smash/field"
	"github.com/DassHydro-dev/smash/forcing"
	"github.com/DassHydro-dev/smash/gr"
	"github.com/DassHydro-dev/smash/mesh"
	"github.com/DassHydro-dev/smash/vic"
)

// Options configure a simulation run.
type Options struct {
	Dt          float64 // timestep length [s]
	SaveQDomain bool    // materialize the full discharge raster per step
	SaveNetPrcp bool    // materialize the net precipitation raster per step
	Progress    bool    // terminal progress bar over timesteps
}

// Simulation wires a mesh, a forcing and a structure into a runnable
// forward model. Construction checks the shape couplings that merit
// hard failure; everything after that degrades silently by design of
// the numerical core.
type Simulation struct {
	Mesh *mesh.Mesh
	Frc  *forcing.Forcing
	Strc Structure
	Opt  Options
}

// New validates the coupling between mesh and forcing.
func New(m *mesh.Mesh, frc *forcing.Forcing, strc Structure, opt Options) (*Simulation, error) {
	if frc.Nt < 1 {
		return nil, fmt.Errorf(" sim.New: empty forcing")
	}
	if len(frc.Prcp) != frc.Nt || len(frc.Pet) != frc.Nt {
		return nil, fmt.Errorf(" sim.New: forcing holds %d/%d fields for %d steps", len(frc.Prcp), len(frc.Pet), frc.Nt)
	}
	for t := 0; t < frc.Nt; t++ {
		for _, f := range []*field.Field{&frc.Prcp[t], &frc.Pet[t]} {
			if f.Vals != nil && len(f.Vals) != m.Nact() {
				return nil, fmt.Errorf(" sim.New: forcing step %d sized %d, mesh has %d active cells", t, len(f.Vals), m.Nact())
			}
			if f.Dense != nil && (f.Dense.Shape[0] != m.Nrow || f.Dense.Shape[1] != m.Ncol) {
				return nil, fmt.Errorf(" sim.New: forcing raster %d does not match the %d×%d mesh", t, m.Nrow, m.Ncol)
			}
		}
	}
	if opt.Dt <= 0. {
		return nil, fmt.Errorf(" sim.New: nonpositive timestep %f", opt.Dt)
	}
	return &Simulation{Mesh: m, Frc: frc, Strc: strc, Opt: opt}, nil
}

// Run executes the forward model from a copy of the given initial
// states, leaving prm and sts0 untouched so repeated evaluations are
// independent.
func (s *Simulation) Run(prm *Parameters, sts0 *States) *Output {
	m, dt := s.Mesh, s.Opt.Dt
	sts := sts0.Copy()
	ng, nt := len(m.Gauges), s.Frc.Nt

	out := &Output{Qsim: make([][]float64, ng)}
	for g := range out.Qsim {
		out.Qsim[g] = make([]float64, nt)
	}

	logrus.WithFields(logrus.Fields{"structure": s.Strc.Name, "nt": nt, "cells": m.Nact()}).Debug("forward run")

	var bar *uiprogress.Bar
	if s.Opt.Progress {
		uiprogress.Start()
		bar = uiprogress.AddBar(nt).AppendCompleted().PrependElapsed()
	}

	q := sparse.ZerosDense(m.Nrow, m.Ncol)
	np := sparse.ZerosDense(m.Nrow, m.Ncol)
	vcoef := m.Dx * m.Dx * 1e-3 / dt // areal depth [mm] to volumetric rate

	for t := 0; t < nt; t++ {
		for i := range q.Elements {
			q.Elements[i] = 0.
			np.Elements[i] = 0.
		}
		for _, rc := range m.Path {
			row, col := rc[0], rc[1]
			if !m.IsActive(row, col) || !m.IsLocalActive(row, col) {
				continue
			}
			k := m.ActiveIndex(row, col)
			prcp := s.Frc.Prcp[t].Get(m, k)
			pet := s.Frc.Pet[t].Get(m, k)

			var qt, pn float64
			if s.Strc.Vic {
				qt = s.cellVic(prm, sts, k, prcp, pet)
			} else {
				qt, pn = s.cellGR(prm, sts, k, prcp, pet)
			}
			np.Set(pn, row, col)

			// upstream inflow, valid only because the path finalizes
			// every contributor before its receiver
			nup := float64(m.Flwacc[m.CellID(row, col)] - 1)
			qup := 0.
			if nup > 0. {
				for _, u := range m.UpstreamNeighbours(row, col) {
					qup += q.Get(u[0], u[1])
				}
				qup *= dt / (1e-3 * m.Dx * m.Dx * nup)
			}
			hlr := sts.Hlr.Get(m, k)
			qrout := gr.LinearRouting(dt, qup, prm.Lr.Get(m, k), &hlr)
			sts.Hlr.Set(m, k, hlr)

			q.Set((qt+qrout*nup)*vcoef, row, col)
		}
		for g, gg := range m.Gauges {
			out.Qsim[g][t] = q.Get(gg.Row, gg.Col)
		}
		if s.Opt.SaveQDomain {
			out.QDomain = append(out.QDomain, q.Copy())
		}
		if s.Opt.SaveNetPrcp {
			out.NetPrcp = append(out.NetPrcp, np.Copy())
		}
		if bar != nil {
			bar.Incr()
		}
	}
	if bar != nil {
		uiprogress.Stop()
	}
	out.FinalStates = sts
	return out
}

// cellGR runs the GR operator chain for one cell and timestep,
// returning the local contribution qt and net precipitation. Missing
// forcing skips the vertical operators; the transfer stores still
// release storage through the inverse-inflow branch.
func (s *Simulation) cellGR(prm *Parameters, sts *States, k int, prcp, pet float64) (qt, pn float64) {
	m, strc := s.Mesh, s.Strc
	var pr, perc, l float64

	if prcp >= 0. && pet >= 0. {
		var en, ei float64
		if strc.InterceptionStore {
			hi := sts.Hi.Get(m, k)
			pn, ei = gr.Interception(prcp, pet, prm.Ci.Get(m, k), &hi)
			sts.Hi.Set(m, k, hi)
		} else {
			ei = math.Min(pet, prcp)
			pn = prcp - ei
		}
		en = pet - ei

		beta := strc.FixedBeta
		if beta <= 0. {
			beta = prm.Beta.Get(m, k)
		}
		hp := sts.Hp.Get(m, k)
		pr, perc = gr.Production(pn, en, prm.Cp.Get(m, k), beta, &hp)
		sts.Hp.Set(m, k, hp)
	}

	if strc.Exchange {
		l = gr.Exchange(prm.Exc.Get(m, k), sts.Hft.Get(m, k))
	}

	// branch partition: alpha to the transfer stores, the remainder
	// direct; slow branch takes 40% of the transfer share
	alpha := prm.Alpha.Get(m, k)
	var prr, prl, prd float64
	switch {
	case strc.Slow:
		prr = .6*alpha*(pr+perc) + l
		prl = .4 * alpha * (pr + perc)
		prd = (1. - alpha) * (pr + perc)
	case strc.Direct:
		prr = alpha*(pr+perc) + l
		prd = (1. - alpha) * (pr + perc)
	default:
		prr = pr + perc
	}

	hft := sts.Hft.Get(m, k)
	qt = gr.Transfer(transferN, prcp, prr, prm.Cft.Get(m, k), &hft)
	sts.Hft.Set(m, k, hft)

	if strc.Slow {
		hst := sts.Hst.Get(m, k)
		qt += gr.Transfer(transferN, prcp, prl, prm.Cst.Get(m, k), &hst)
		sts.Hst.Set(m, k, hst)
	}
	if strc.Direct {
		qt += math.Max(0., prd+l)
	}
	return
}

// cellVic runs the vic operator chain for one cell and timestep.
func (s *Simulation) cellVic(prm *Parameters, sts *States, k int, prcp, pet float64) (qt float64) {
	if prcp < 0. || pet < 0. {
		return 0.
	}
	m := s.Mesh
	h1, h2, h3 := sts.Husl1.Get(m, k), sts.Husl2.Get(m, k), sts.Hlsl.Get(m, k)
	cusl1, cusl2, clsl := prm.Cusl1.Get(m, k), prm.Cusl2.Get(m, k), prm.Clsl.Get(m, k)
	ks := prm.Ks.Get(m, k)

	runoff := vic.Infiltration(prcp, prm.B.Get(m, k), cusl1, cusl2, &h1, &h2)
	vic.VerticalTransfer(pet, ks, cusl1, cusl2, clsl, &h1, &h2, &h3)
	qi := vic.Interflow(ks, cusl2, &h2)
	qb := vic.Baseflow(prm.Ds.Get(m, k), prm.Dsm.Get(m, k), prm.Ws.Get(m, k), clsl, &h3)

	sts.Husl1.Set(m, k, h1)
	sts.Husl2.Set(m, k, h2)
	sts.Hlsl.Set(m, k, h3)
	return runoff + qi + qb
}
