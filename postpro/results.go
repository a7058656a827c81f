// Package postpro summarizes run results: conventional diagnostic
// scores per gauge, hydrograph plots and raster exports. The cost
// package keeps its own literal metric conventions for calibration;
// the scores here are the familiar ones for reporting only.
package postpro

import (
	"fmt"

	"github.com/maseology/mmio"
	mmplt "github.com/maseology/mmPlot"
	"github.com/maseology/objfunc"

	"github.com/DassHydro-dev/smash/mesh"
	"github.com/DassHydro-dev/smash/sim"
)

// Summarize prints per-gauge diagnostics and, when dir is nonempty,
// writes observed/simulated hydrograph plots there.
func Summarize(m *mesh.Mesh, out *sim.Output, obs [][]float64, dir string) {
	if len(obs) != len(m.Gauges) {
		fmt.Printf(" postpro.Summarize: %d observation series for %d gauges\n", len(obs), len(m.Gauges))
		return
	}
	for g, gg := range m.Gauges {
		o, s := maskValid(obs[g], out.Qsim[g])
		kge := objfunc.KGE(o, s)
		nse := objfunc.NSE(o, s)
		rmse := objfunc.RMSE(o, s)
		bias := objfunc.Bias(o, s)
		fmt.Printf("  %s  KGE: %.3f  NSE: %.3f  RMSE: %.3f  Bias: %.3f\n", gg.Code, kge, nse, rmse, bias)
		if len(dir) > 0 {
			mmplt.ObsSim(dir+"hyd."+gg.Code+".png", o, s)
		}
	}
	fmt.Printf("  cost: %.6f  jobs: %.6f  jreg: %.6f\n", out.Cost, out.Jobs, out.Jreg)
}

// maskValid keeps the aligned pairs with a valid (nonnegative)
// observation; missing steps would skew the diagnostic scores.
func maskValid(obs, sim []float64) (o, s []float64) {
	for i := range obs {
		if i < len(sim) && obs[i] >= 0. {
			o = append(o, obs[i])
			s = append(s, sim[i])
		}
	}
	return
}

// WriteQsim exports the simulated discharge series per gauge as csv.
func WriteQsim(m *mesh.Mesh, out *sim.Output, dir string) error {
	mmio.MakeDir(dir)
	for g, gg := range m.Gauges {
		tw, err := mmio.NewTXTwriter(dir + "qsim." + gg.Code + ".csv")
		if err != nil {
			return fmt.Errorf(" postpro.WriteQsim %v", err)
		}
		tw.WriteLine("t,qsim")
		for t, v := range out.Qsim[g] {
			tw.WriteLine(fmt.Sprintf("%d,%f", t, v))
		}
		tw.Close()
	}
	return nil
}

// WriteQDomain exports the per-cell discharge raster of one timestep
// as a cell-id map.
func WriteQDomain(m *mesh.Mesh, out *sim.Output, t int, fp string) error {
	if t < 0 || t >= len(out.QDomain) {
		return fmt.Errorf(" postpro.WriteQDomain: no materialized raster for step %d", t)
	}
	q := out.QDomain[t]
	mq := make(map[int]float64, m.Nact())
	for k := 0; k < m.Nact(); k++ {
		r, c := m.ActiveCell(k)
		mq[m.CellID(r, c)] = q.Get(r, c)
	}
	mmio.WriteRMAP(fp, mq, false)
	return nil
}
