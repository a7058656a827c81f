// Package config defines the run configuration consumed by the
// driver: model structure, timestepping, storage layout, output
// toggles and the cost composition.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/DassHydro-dev/smash/cost"
	"github.com/DassHydro-dev/smash/mapr"
	"github.com/DassHydro-dev/smash/sim"
)

// Config mirrors the run setup; zero values fall back to defaults in
// Normalize.
type Config struct {
	Structure     string  `yaml:"structure"`
	Nt            int     `yaml:"ntime_step"`
	Dt            float64 `yaml:"dt"`
	SparseStorage bool    `yaml:"sparse_storage"`
	SaveQDomain   bool    `yaml:"save_qdomain"`
	SaveNetPrcp   bool    `yaml:"save_net_prcp"`
	Progress      bool    `yaml:"progress"`

	JobsFun  []string  `yaml:"jobs_fun"`
	WjobsFun []float64 `yaml:"wjobs_fun"`
	JregFun  []string  `yaml:"jreg_fun"`
	WjregFun []float64 `yaml:"wjreg_fun"`
	Wjreg    float64   `yaml:"wjreg"`
	Denorm   bool      `yaml:"denormalize"`
	Ost      int       `yaml:"ost"`

	Mapping    string   `yaml:"mapping"`
	Parameters []string `yaml:"parameters"` // calibrated parameter names
}

// Load reads and validates a yaml configuration.
func Load(fp string) (*Config, error) {
	b, err := os.ReadFile(fp)
	if err != nil {
		return nil, fmt.Errorf(" config.Load %v", err)
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf(" config.Load %v", err)
	}
	c.Normalize()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Normalize fills defaulted fields.
func (c *Config) Normalize() {
	if c.Structure == "" {
		c.Structure = "gr-a"
	}
	if c.Dt == 0. {
		c.Dt = 3600.
	}
	if len(c.JobsFun) == 0 {
		c.JobsFun = []string{"nse"}
	}
	if len(c.WjobsFun) == 0 {
		c.WjobsFun = make([]float64, len(c.JobsFun))
		for i := range c.WjobsFun {
			c.WjobsFun[i] = 1. / float64(len(c.JobsFun))
		}
	}
	if len(c.WjregFun) == 0 {
		c.WjregFun = make([]float64, len(c.JregFun))
		for i := range c.WjregFun {
			c.WjregFun[i] = 1.
		}
	}
	if c.Mapping == "" {
		c.Mapping = "uniform"
	}
	if len(c.Parameters) == 0 {
		if s, err := sim.StructureByName(c.Structure); err == nil {
			c.Parameters = sim.StructureParams(s)
		}
	}
}

// Validate rejects the hard-failure conditions: unknown structure or
// metric identifiers and mismatched weight vectors.
func (c *Config) Validate() error {
	if _, err := sim.StructureByName(c.Structure); err != nil {
		return err
	}
	if len(c.WjobsFun) != len(c.JobsFun) {
		return fmt.Errorf(" config: %d jobs functions, %d weights", len(c.JobsFun), len(c.WjobsFun))
	}
	if len(c.WjregFun) != len(c.JregFun) {
		return fmt.Errorf(" config: %d jreg functions, %d weights", len(c.JregFun), len(c.WjregFun))
	}
	for _, n := range c.JobsFun {
		if !cost.KnownMetric(n) {
			return fmt.Errorf(" config: unknown jobs function %q (have %v)", n, cost.MetricNames())
		}
	}
	for _, n := range c.JregFun {
		if !cost.KnownRegTerm(n) {
			return fmt.Errorf(" config: unknown jreg function %q (have %v)", n, cost.RegTermNames())
		}
	}
	known := false
	for _, k := range mapr.Kinds() {
		if c.Mapping == k {
			known = true
			break
		}
	}
	if !known {
		return fmt.Errorf(" config: unknown mapping %q (have %v)", c.Mapping, mapr.Kinds())
	}
	if c.Ost < 0 {
		return fmt.Errorf(" config: negative optimization start index %d", c.Ost)
	}
	return nil
}

// Mapper builds the control-vector mapping the configuration names;
// nil means spatially uniform. The hyper mappings need descriptor
// rasters, which the run configuration has no channel for yet, so
// they are rejected here rather than silently degraded.
func (c *Config) Mapper() (*mapr.Mapper, error) {
	switch c.Mapping {
	case "uniform":
		return nil, nil
	case "distributed":
		return &mapr.Mapper{Kind: c.Mapping}, nil
	}
	return nil, fmt.Errorf(" config: mapping %q needs descriptor rasters, none supplied", c.Mapping)
}

// CostConfig assembles the cost-engine configuration.
func (c *Config) CostConfig() *cost.Config {
	cc := &cost.Config{Wjreg: c.Wjreg, Ost: c.Ost, Denorm: c.Denorm}
	for i, n := range c.JobsFun {
		cc.Metrics = append(cc.Metrics, cost.Term{Name: n, Weight: c.WjobsFun[i]})
	}
	for i, n := range c.JregFun {
		cc.RegTerms = append(cc.RegTerms, cost.Term{Name: n, Weight: c.WjregFun[i]})
	}
	return cc
}

// SimOptions assembles the simulation options.
func (c *Config) SimOptions() sim.Options {
	return sim.Options{Dt: c.Dt, SaveQDomain: c.SaveQDomain, SaveNetPrcp: c.SaveNetPrcp, Progress: c.Progress}
}
