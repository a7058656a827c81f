package cost

import (
	"github.com/DassHydro-dev/smash/field"
	"github.com/DassHydro-dev/smash/mesh"
)

// Compute evaluates the full objective: cost = jobs + wjreg·jreg.
// When cfg.Denorm is set, the optimized fields are expanded into
// physical units for the regularization pass only and restored
// afterward, a scoped bracket around jreg.
func Compute(m *mesh.Mesh, cfg *Config, qsim, obs [][]float64, prcp []float64, dt float64, eventMask [][]int, flds []RegField, desc *field.Field) (cost, jobs, jreg float64, err error) {
	jobs, err = ComputeJobs(m, cfg, qsim, obs, prcp, dt, eventMask)
	if err != nil {
		return 0., 0., 0., err
	}
	if len(cfg.RegTerms) > 0 {
		if cfg.Denorm {
			denormalize(m, flds)
			defer normalize(m, flds)
		}
		jreg, err = ComputeJreg(m, cfg, flds, desc)
		if err != nil {
			return 0., 0., 0., err
		}
	}
	cost = jobs + cfg.Wjreg*jreg
	return
}

// denormalize expands normalized [0,1] fields into physical units.
func denormalize(m *mesh.Mesh, flds []RegField) {
	for _, f := range flds {
		if !f.Optimized {
			continue
		}
		w := f.Upper - f.Lower
		if w == 0. {
			continue
		}
		for k := 0; k < m.Nact(); k++ {
			f.Cur.Set(m, k, f.Lower+f.Cur.Get(m, k)*w)
			f.Bkg.Set(m, k, f.Lower+f.Bkg.Get(m, k)*w)
		}
	}
}

// normalize is the inverse bracket of denormalize.
func normalize(m *mesh.Mesh, flds []RegField) {
	for _, f := range flds {
		if !f.Optimized {
			continue
		}
		w := f.Upper - f.Lower
		if w == 0. {
			continue
		}
		for k := 0; k < m.Nact(); k++ {
			f.Cur.Set(m, k, (f.Cur.Get(m, k)-f.Lower)/w)
			f.Bkg.Set(m, k, (f.Bkg.Get(m, k)-f.Lower)/w)
		}
	}
}
