// Command smash drives the forward/cost engine: a forward run, a
// Monte Carlo sample or an SCE optimization from prebuilt mesh and
// forcing snapshots. All heavy lifting lives in the library packages;
// this is glue.
package main

import (
	"encoding/gob"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/DassHydro-dev/smash/calib"
	"github.com/DassHydro-dev/smash/config"
	"github.com/DassHydro-dev/smash/forcing"
	"github.com/DassHydro-dev/smash/mesh"
	"github.com/DassHydro-dev/smash/postpro"
	"github.com/DassHydro-dev/smash/sim"
)

var (
	cfgFp, meshFp, frcFp, obsFp, outDir string
	nsmpl                               int
)

func main() {
	root := &cobra.Command{Use: "smash", Short: "distributed hydrological simulation and calibration"}
	root.PersistentFlags().StringVar(&cfgFp, "config", "config.yml", "run configuration")
	root.PersistentFlags().StringVar(&meshFp, "mesh", "mesh.gob", "mesh snapshot")
	root.PersistentFlags().StringVar(&frcFp, "forcing", "forcing.gob", "forcing snapshot")
	root.PersistentFlags().StringVar(&obsFp, "obs", "", "observed discharge snapshot")
	root.PersistentFlags().StringVar(&outDir, "out", "out/", "output directory")

	run := &cobra.Command{Use: "run", Short: "single forward run", Run: func(*cobra.Command, []string) { exec("run") }}
	opt := &cobra.Command{Use: "optimize", Short: "SCE calibration", Run: func(*cobra.Command, []string) { exec("optimize") }}
	smp := &cobra.Command{Use: "sample", Short: "Monte Carlo sampling", Run: func(*cobra.Command, []string) { exec("sample") }}
	smp.Flags().IntVar(&nsmpl, "n", 100, "number of samples")
	root.AddCommand(run, opt, smp)

	if err := root.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func exec(mode string) {
	cfg, err := config.Load(cfgFp)
	if err != nil {
		logrus.Fatal(err)
	}
	m, err := mesh.LoadGob(meshFp)
	if err != nil {
		logrus.Fatalf("loading mesh: %v", err)
	}
	frc, err := forcing.LoadGob(frcFp)
	if err != nil {
		logrus.Fatalf("loading forcing: %v", err)
	}
	strc, err := sim.StructureByName(cfg.Structure)
	if err != nil {
		logrus.Fatal(err)
	}
	s, err := sim.New(m, frc, strc, cfg.SimOptions())
	if err != nil {
		logrus.Fatal(err)
	}

	prm := sim.NewParameters(m, !cfg.SparseStorage)
	sts := sim.NewStates(m, !cfg.SparseStorage)

	var obs [][]float64
	if len(obsFp) > 0 {
		if obs, err = loadObs(obsFp); err != nil {
			logrus.Fatalf("loading observations: %v", err)
		}
	} else {
		obs = make([][]float64, len(m.Gauges))
		for g := range obs {
			obs[g] = make([]float64, frc.Nt)
			for t := range obs[g] {
				obs[g][t] = forcing.Sentinel
			}
		}
	}

	ev, err := calib.NewEvaluator(s, prm, sts, cfg.CostConfig(), obs, cfg.Parameters)
	if err != nil {
		logrus.Fatal(err)
	}
	if ev.Mapper, err = cfg.Mapper(); err != nil {
		logrus.Fatal(err)
	}
	ev.Prcp = frc.MeanPrcp(m)

	switch mode {
	case "run":
		out, err := ev.Run()
		if err != nil {
			logrus.Fatal(err)
		}
		postpro.Summarize(m, out, obs, outDir)
		if err := postpro.WriteQsim(m, out, outDir); err != nil {
			logrus.Fatal(err)
		}
	case "optimize":
		cost, pf := ev.OptimizeSCE()
		logrus.WithFields(logrus.Fields{"cost": cost, "parameters": pf}).Info("final")
	case "sample":
		_, fs := ev.SampleLHC(nsmpl)
		best := 0
		for i := range fs {
			if fs[i] < fs[best] {
				best = i
			}
		}
		logrus.WithFields(logrus.Fields{"n": nsmpl, "best": fs[best]}).Info("sampling complete")
	}
}

func loadObs(fp string) ([][]float64, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var obs [][]float64
	if err := gob.NewDecoder(f).Decode(&obs); err != nil {
		return nil, err
	}
	return obs, nil
}
