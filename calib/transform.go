package calib

import (
	"fmt"

	"github.com/maseology/mmaths"

	"github.com/DassHydro-dev/smash/sim"
)

// TransformBounds are the finite sampling intervals per parameter;
// scale-like parameters draw log-linearly, ratio/sign parameters
// linearly. These bound the search, the admissible intervals in
// sim.ParamBounds remain the caller's contract.
var TransformBounds = map[string]sim.Bound{
	"ci":    {Lower: 1e-6, Upper: 1e2},
	"cp":    {Lower: 1., Upper: 2e3},
	"beta":  {Lower: 1., Upper: 2e3},
	"cft":   {Lower: 1., Upper: 1e3},
	"cst":   {Lower: 1., Upper: 1e4},
	"alpha": {Lower: 1e-6, Upper: 1. - 1e-6},
	"exc":   {Lower: -50., Upper: 50.},
	"lr":    {Lower: 1., Upper: 1.2e3},
	"b":     {Lower: 1e-3, Upper: .8},
	"cusl1": {Lower: 1., Upper: 2e3},
	"cusl2": {Lower: 1., Upper: 2e3},
	"clsl":  {Lower: 1., Upper: 1e4},
	"ks":    {Lower: 1e-3, Upper: 1e4},
	"ds":    {Lower: 1e-6, Upper: 1. - 1e-6},
	"dsm":   {Lower: 1e-3, Upper: 1e3},
	"ws":    {Lower: 1e-6, Upper: 1. - 1e-6},
}

var logScaled = map[string]bool{
	"ci": true, "cp": true, "beta": true, "cft": true, "cst": true,
	"lr": true, "cusl1": true, "cusl2": true, "clsl": true, "ks": true, "dsm": true,
}

// Par transforms one U-space sample u ∈ [0,1] to the physical value
// of the named parameter.
func Par(name string, u float64) float64 {
	b, ok := TransformBounds[name]
	if !ok {
		panic(fmt.Sprintf("calib.Par: unknown parameter %q", name))
	}
	if logScaled[name] {
		return mmaths.LogLinearTransform(b.Lower, b.Upper, u)
	}
	return mmaths.LinearTransform(b.Lower, b.Upper, u)
}
