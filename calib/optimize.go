package calib

import (
	"fmt"
	"math/rand"
	"runtime"
	"time"

	"github.com/maseology/glbopt"
	"github.com/maseology/montecarlo"
	"github.com/maseology/montecarlo/smpln"
	mrg63k3a "github.com/maseology/goRNG/MRG63k3a"
	"github.com/sirupsen/logrus"
)

// OptimizeSCE runs a shuffled-complex-evolution search over the
// calibrated parameters, returning the best cost and the physical
// parameter values.
func (ev *Evaluator) OptimizeSCE() (float64, []float64) {
	rng := rand.New(mrg63k3a.New())
	rng.Seed(time.Now().UnixNano())

	ndim := ev.ndim()
	logrus.WithFields(logrus.Fields{"ndim": ndim, "structure": ev.Sim.Strc.Name}).Info("optimizing..")
	uFinal, _ := glbopt.SCE(runtime.GOMAXPROCS(0), ndim, rng, ev.Evaluate, true)

	final := ev.Evaluate(uFinal)
	logrus.WithField("cost", final).Info("optimization complete")
	return final, ev.physical(uFinal)
}

// SampleLHC draws a Latin-hypercube sample of the U space, evaluating
// each point; returns per-sample U vectors and costs.
func (ev *Evaluator) SampleLHC(nsmpl int) ([][]float64, []float64) {
	rng := rand.New(mrg63k3a.New())
	rng.Seed(time.Now().UnixNano())

	ndim := ev.ndim()
	us, fs := make([][]float64, nsmpl), make([]float64, nsmpl)
	sp := smpln.NewLHC(rng, nsmpl, ndim, false)
	for k := 0; k < nsmpl; k++ {
		ut := make([]float64, ndim)
		for j := 0; j < ndim; j++ {
			ut[j] = sp.U[j][k]
		}
		us[k], fs[k] = ut, ev.Evaluate(ut)
		fmt.Print(".")
	}
	fmt.Println()
	return us, fs
}

// MonteCarlo runs the ranked unbiased sampler over the U space,
// returning samples, costs and the cost-ranked sample order.
func (ev *Evaluator) MonteCarlo(nsmpl int) ([][]float64, []float64, []int) {
	return montecarlo.RankedUnBiased(func(u []float64, i int) float64 { return ev.Evaluate(u) }, ev.ndim(), nsmpl, runtime.GOMAXPROCS(0))
}

func (ev *Evaluator) ndim() int {
	if ev.Mapper != nil {
		n, err := ev.Mapper.Nctl(ev.Sim.Mesh)
		if err != nil {
			panic(err)
		}
		return n * len(ev.Names)
	}
	return len(ev.Names)
}

// physical maps a U vector to physical values for reporting (uniform
// mapping only; hyper mappings report the raw control vector).
func (ev *Evaluator) physical(u []float64) []float64 {
	if ev.Mapper != nil {
		return u
	}
	ps := make([]float64, len(ev.Names))
	for i, n := range ev.Names {
		ps[i] = Par(n, u[i])
	}
	return ps
}
