// Package vic implements the infiltration/baseflow operator set used
// by the vic model structure: a variable-infiltration-curve partition
// over two upper soil layers, vertical drainage to a lower layer,
// interflow and an ARNO-type baseflow release.
package vic

import "math"

// Infiltration partitions precipitation between infiltration into the
// two upper soil layers (capacities cusl1, cusl2, relative levels
// husl1, husl2) and surface runoff, following the variable
// infiltration capacity curve of shape b. The first layer fills
// before the second.
func Infiltration(prcp, b, cusl1, cusl2 float64, husl1, husl2 *float64) (runoff float64) {
	cusl := cusl1 + cusl2
	husl := (*husl1*cusl1 + *husl2*cusl2) / cusl
	iflm := (1. + b) * cusl
	ifl := iflm * (1. - math.Pow(1.-husl, 1./(1.+b)))

	var infil float64
	if ifl+prcp >= iflm {
		infil = cusl * (1. - husl)
	} else {
		infil = cusl * (1. - husl) - cusl*math.Pow(1.-(ifl+prcp)/iflm, 1.+b)
	}
	if infil > prcp {
		infil = prcp
	}

	d1 := math.Min(infil, (1.-*husl1)*cusl1)
	*husl1 += d1 / cusl1
	d2 := math.Min(infil-d1, (1.-*husl2)*cusl2)
	*husl2 += d2 / cusl2
	runoff = prcp - d1 - d2
	return
}

// VerticalTransfer evaporates from the first upper layer at the
// wetness-limited rate and drains the second upper layer into the
// lower layer (capacity clsl, level hlsl) at a quadratic rate ks.
func VerticalTransfer(pet, ks, cusl1, cusl2, clsl float64, husl1, husl2, hlsl *float64) (es float64) {
	es = math.Min(pet**husl1, *husl1*cusl1)
	*husl1 -= es / cusl1

	d := math.Min(ks**husl2**husl2, *husl2*cusl2)
	d = math.Min(d, (1.-*hlsl)*clsl)
	*husl2 -= d / cusl2
	*hlsl += d / clsl
	return
}

// Interflow releases lateral flow from the second upper layer with
// coefficient ks.
func Interflow(ks, cusl2 float64, husl2 *float64) float64 {
	qi := math.Min(ks**husl2, *husl2*cusl2)
	*husl2 -= qi / cusl2
	return qi
}

// Baseflow is the ARNO two-regime release from the lower layer: linear
// below the ws threshold, quadratic augmentation above it. ds scales
// the linear regime and dsm is the maximum release.
func Baseflow(ds, dsm, ws, clsl float64, hlsl *float64) float64 {
	qb := ds * dsm / ws * *hlsl
	if *hlsl > ws {
		x := (*hlsl - ws) / (1. - ws)
		qb += dsm * (1. - ds) * x * x
	}
	if qb > *hlsl*clsl {
		qb = *hlsl * clsl
	}
	*hlsl -= qb / clsl
	return qb
}
