package cost

import (
	"fmt"

	"github.com/DassHydro-dev/smash/mesh"
)

// Term is a named objective component with its weight.
type Term struct {
	Name   string
	Weight float64
}

// Config enumerates the cost composition: fit metrics, regularization
// terms, the optimization window start and the denormalization
// bracket flag. Per-gauge weights live on the mesh gauge table.
type Config struct {
	Metrics  []Term
	RegTerms []Term
	Wjreg    float64
	Ost      int  // observations before this timestep are excluded
	Denorm   bool // expand fields to physical units around regularization
}

// ComputeJobs evaluates the fit term. qsim and obs are volumetric
// series per gauge [m³/s]; both are sliced to the optimization window
// and converted to areal depth over the gauge's drained area before
// the metrics apply. Gauges with positive weight contribute a
// weighted sum; gauges with negative weight are pooled and contribute
// their median, a robust alternative when one gauge misbehaves.
func ComputeJobs(m *mesh.Mesh, cfg *Config, qsim, obs [][]float64, prcp []float64, dt float64, eventMask [][]int) (float64, error) {
	if len(qsim) != len(m.Gauges) || len(obs) != len(m.Gauges) {
		return 0., fmt.Errorf(" cost.ComputeJobs: %d gauges, %d simulated and %d observed series", len(m.Gauges), len(qsim), len(obs))
	}
	jobs := 0.
	var pool []float64
	for g, gg := range m.Gauges {
		if gg.Weight == 0. {
			continue
		}
		if len(qsim[g]) != len(obs[g]) {
			return 0., fmt.Errorf(" cost.ComputeJobs: gauge %s series length mismatch (%d sim, %d obs)", gg.Code, len(qsim[g]), len(obs[g]))
		}
		ost := cfg.Ost
		if ost < 0 || ost >= len(qsim[g]) {
			ost = 0
		}
		x := toDepth(obs[g][ost:], gg.Area, dt)
		y := toDepth(qsim[g][ost:], gg.Area, dt)
		var p []float64
		if len(prcp) > ost {
			p = prcp[ost:]
		}
		var evs []Event
		if g < len(eventMask) && len(eventMask[g]) > ost {
			evs = SegmentEvents(eventMask[g][ost:])
		}

		cg := 0.
		for _, mt := range cfg.Metrics {
			v, err := applyMetric(mt.Name, x, y, p, evs)
			if err != nil {
				return 0., err
			}
			cg += mt.Weight * v
		}
		if gg.Weight > 0. {
			jobs += gg.Weight * cg
		} else {
			pool = append(pool, cg)
		}
	}
	if len(pool) > 0 {
		jobs += Median(pool)
	}
	return jobs, nil
}

// toDepth converts a volumetric rate series [m³/s] to areal depth per
// step [mm], preserving the missing-data sentinel.
func toDepth(q []float64, area, dt float64) []float64 {
	d := make([]float64, len(q))
	for i, v := range q {
		if v < 0. {
			d[i] = v
			continue
		}
		d[i] = v * dt / area * 1e3
	}
	return d
}

func applyMetric(name string, obs, sim, prcp []float64, evs []Event) (float64, error) {
	switch name {
	case "nse":
		return nse(obs, sim), nil
	case "kge":
		return kge(obs, sim), nil
	case "kge2":
		return kge2(obs, sim), nil
	case "se":
		return se(obs, sim), nil
	case "rmse":
		return rmse(obs, sim), nil
	case "logarithmic":
		return logarithmic(obs, sim), nil
	case "Crc":
		if prcp == nil {
			return 0., fmt.Errorf(" cost: signature %q needs a precipitation series", name)
		}
		return crc(obs, sim, prcp), nil
	case "Cfp2":
		return cfp(obs, sim, .02), nil
	case "Cfp10":
		return cfp(obs, sim, .1), nil
	case "Cfp50":
		return cfp(obs, sim, .5), nil
	case "Cfp90":
		return cfp(obs, sim, .9), nil
	case "Epf":
		return epf(obs, sim, evs), nil
	case "Elt":
		return elt(obs, sim, evs), nil
	case "Erc":
		if prcp == nil {
			return 0., fmt.Errorf(" cost: signature %q needs a precipitation series", name)
		}
		return erc(obs, sim, prcp, evs), nil
	}
	return 0., fmt.Errorf(" cost: unknown metric %q", name)
}
