package sim

import (
	"github.com/DassHydro-dev/smash/field"
	"github.com/DassHydro-dev/smash/mesh"
)

// States holds the per-cell reservoir levels, mutated in place during
// a run. Every independent forward (or adjoint) evaluation must start
// from a fresh copy of the initial set; Run takes care of that.
type States struct {
	Hi  field.Field // interception level [-]
	Hp  field.Field // production level [-]
	Hft field.Field // fast transfer level [-]
	Hst field.Field // slow transfer level [-]
	Hlr field.Field // routing store [mm]
	// vic structure
	Husl1 field.Field // first upper soil layer level [-]
	Husl2 field.Field // second upper soil layer level [-]
	Hlsl  field.Field // lower soil layer level [-]
}

// StateDefaults maps state names to their initial levels.
var StateDefaults = map[string]float64{
	"hi": .01, "hp": .01, "hft": .01, "hst": .01, "hlr": 1e-6,
	"husl1": .01, "husl2": .01, "hlsl": .01,
}

// NewStates allocates default initial states.
func NewStates(m *mesh.Mesh, dense bool) *States {
	f := func(name string) field.Field { return field.New(m, StateDefaults[name], dense) }
	return &States{
		Hi: f("hi"), Hp: f("hp"), Hft: f("hft"), Hst: f("hst"), Hlr: f("hlr"),
		Husl1: f("husl1"), Husl2: f("husl2"), Hlsl: f("hlsl"),
	}
}

// Get returns the named state field, nil when unknown.
func (s *States) Get(name string) *field.Field {
	switch name {
	case "hi":
		return &s.Hi
	case "hp":
		return &s.Hp
	case "hft":
		return &s.Hft
	case "hst":
		return &s.Hst
	case "hlr":
		return &s.Hlr
	case "husl1":
		return &s.Husl1
	case "husl2":
		return &s.Husl2
	case "hlsl":
		return &s.Hlsl
	}
	return nil
}

// Copy deep-copies every field.
func (s *States) Copy() *States {
	return &States{
		Hi: s.Hi.Copy(), Hp: s.Hp.Copy(), Hft: s.Hft.Copy(), Hst: s.Hst.Copy(),
		Hlr: s.Hlr.Copy(), Husl1: s.Husl1.Copy(), Husl2: s.Husl2.Copy(), Hlsl: s.Hlsl.Copy(),
	}
}
