package sim

import (
	"math"

	"github.com/DassHydro-dev/smash/field"
	"github.com/DassHydro-dev/smash/mesh"
)

// Parameters holds one per-cell field per conceptual parameter. All
// fields are allocated whichever structure runs; unused ones stay at
// their defaults. Admissible intervals are caller preconditions set
// up during calibration bounds, not enforced here.
type Parameters struct {
	// GR family
	Ci    field.Field // interception capacity [mm]
	Cp    field.Field // production capacity [mm]
	Beta  field.Field // percolation shape [-]
	Cft   field.Field // fast transfer capacity [mm]
	Cst   field.Field // slow transfer capacity [mm]
	Alpha field.Field // transfer partition [-]
	Exc   field.Field // exchange coefficient [mm]
	Lr    field.Field // routing lag [min]
	// vic structure
	B     field.Field // infiltration curve shape [-]
	Cusl1 field.Field // first upper soil layer capacity [mm]
	Cusl2 field.Field // second upper soil layer capacity [mm]
	Clsl  field.Field // lower soil layer capacity [mm]
	Ks    field.Field // drainage/interflow coefficient [mm]
	Ds    field.Field // baseflow linear-regime scale [-]
	Dsm   field.Field // maximum baseflow [mm]
	Ws    field.Field // baseflow threshold level [-]
}

// Bound is an open admissible interval.
type Bound struct{ Lower, Upper float64 }

// ParamDefaults maps parameter names to their spatially-uniform
// defaults.
var ParamDefaults = map[string]float64{
	"ci": 1., "cp": 200., "beta": 1000., "cft": 500., "cst": 500.,
	"alpha": .9, "exc": 0., "lr": 5.,
	"b": .1, "cusl1": 100., "cusl2": 500., "clsl": 2000., "ks": 20.,
	"ds": .33, "dsm": 10., "ws": .5,
}

// ParamBounds maps parameter names to their admissible intervals.
var ParamBounds = map[string]Bound{
	"ci":    {1e-6, 1e2},
	"cp":    {1e-6, math.Inf(1)},
	"beta":  {1e-6, math.Inf(1)},
	"cft":   {1e-6, 1e3},
	"cst":   {1e-6, 1e4},
	"alpha": {0., 1.},
	"exc":   {-50., 50.},
	"lr":    {1e-6, 1e3},
	"b":     {1e-3, .8},
	"cusl1": {1e-6, 2e3},
	"cusl2": {1e-6, 2e3},
	"clsl":  {1e-6, 1e4},
	"ks":    {1e-6, 1e4},
	"ds":    {1e-6, .999999},
	"dsm":   {1e-6, 1e3},
	"ws":    {1e-6, .999999},
}

// NewParameters allocates default-valued parameter fields.
func NewParameters(m *mesh.Mesh, dense bool) *Parameters {
	f := func(name string) field.Field { return field.New(m, ParamDefaults[name], dense) }
	return &Parameters{
		Ci: f("ci"), Cp: f("cp"), Beta: f("beta"), Cft: f("cft"), Cst: f("cst"),
		Alpha: f("alpha"), Exc: f("exc"), Lr: f("lr"),
		B: f("b"), Cusl1: f("cusl1"), Cusl2: f("cusl2"), Clsl: f("clsl"),
		Ks: f("ks"), Ds: f("ds"), Dsm: f("dsm"), Ws: f("ws"),
	}
}

// Get returns the named parameter field, nil when unknown.
func (p *Parameters) Get(name string) *field.Field {
	switch name {
	case "ci":
		return &p.Ci
	case "cp":
		return &p.Cp
	case "beta":
		return &p.Beta
	case "cft":
		return &p.Cft
	case "cst":
		return &p.Cst
	case "alpha":
		return &p.Alpha
	case "exc":
		return &p.Exc
	case "lr":
		return &p.Lr
	case "b":
		return &p.B
	case "cusl1":
		return &p.Cusl1
	case "cusl2":
		return &p.Cusl2
	case "clsl":
		return &p.Clsl
	case "ks":
		return &p.Ks
	case "ds":
		return &p.Ds
	case "dsm":
		return &p.Dsm
	case "ws":
		return &p.Ws
	}
	return nil
}

// Copy deep-copies every field.
func (p *Parameters) Copy() *Parameters {
	return &Parameters{
		Ci: p.Ci.Copy(), Cp: p.Cp.Copy(), Beta: p.Beta.Copy(), Cft: p.Cft.Copy(),
		Cst: p.Cst.Copy(), Alpha: p.Alpha.Copy(), Exc: p.Exc.Copy(), Lr: p.Lr.Copy(),
		B: p.B.Copy(), Cusl1: p.Cusl1.Copy(), Cusl2: p.Cusl2.Copy(), Clsl: p.Clsl.Copy(),
		Ks: p.Ks.Copy(), Ds: p.Ds.Copy(), Dsm: p.Dsm.Copy(), Ws: p.Ws.Copy(),
	}
}

// StructureParams lists the parameter names a structure calibrates.
func StructureParams(s Structure) []string {
	if s.Vic {
		return []string{"b", "cusl1", "cusl2", "clsl", "ks", "ds", "dsm", "ws", "lr"}
	}
	ps := []string{"cp", "cft", "lr"}
	if s.FixedBeta <= 0. {
		ps = append(ps, "beta")
	}
	if s.InterceptionStore {
		ps = append(ps, "ci")
	}
	if s.Exchange {
		ps = append(ps, "exc")
	}
	if s.Slow {
		ps = append(ps, "cst")
	}
	if s.Direct || s.Slow {
		ps = append(ps, "alpha")
	}
	return ps
}
