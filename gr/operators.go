// Package gr implements the GR-family cell operators: interception,
// production, groundwater exchange, nonlinear transfer and linear
// routing. Each operator is a deterministic closed-form update of a
// single cell's reservoir level, branch-free apart from saturation
// guards, taking forcing/parameters and mutating the state in place.
package gr

import "math"

// floor on transfer store levels, keeps the negative-power update
// away from its singularity at zero
const hmin = 1e-6

// Interception partitions precipitation against a capacity ci storage
// with relative level hi, returning net (throughfall) precipitation
// and the evaporated fraction.
func Interception(prcp, pet, ci float64, hi *float64) (pn, ei float64) {
	ei = math.Min(pet, prcp+*hi*ci)
	pn = math.Max(0., prcp-ci*(1.-*hi)-ei)
	*hi += (prcp - ei - pn) / ci
	return
}

// Production is the soil-moisture-accounting store: hyperbolic-tangent
// saturation curves for fill (net precipitation pn) and depletion (net
// evaporation en), with power-law percolation on the relative level hp.
func Production(pn, en, cp, beta float64, hp *float64) (pr, perc float64) {
	invcp := 1. / cp
	ps := cp * (1. - *hp**hp) * math.Tanh(pn*invcp) / (1. + *hp*math.Tanh(pn*invcp))
	es := *hp * cp * (2. - *hp) * math.Tanh(en*invcp) / (1. + (1.-*hp)*math.Tanh(en*invcp))
	himd := *hp + (ps-es)*invcp
	if pn > 0. {
		pr = pn - (himd-*hp)*cp
	}
	perc = himd * cp * (1. - math.Pow(1.+math.Pow(himd/beta, 4.), -.25))
	*hp = himd - perc*invcp
	return
}

// Exchange is the groundwater exchange flux, a power-3.5 function of
// the fast-transfer relative level; negative exc is a loss.
func Exchange(exc, hft float64) float64 {
	return exc * math.Pow(hft, 3.5)
}

// Transfer is an n-th-power nonlinear reservoir of capacity ct and
// relative level ht. Inflow pr is injected and the closed-form level
// update yields the outflow. A negative forcing sign (prcp < 0, the
// missing-data convention) first inverts the storage law to recover
// the effective inflow.
func Transfer(n, prcp, pr, ct float64, ht *float64) float64 {
	nm1 := n - 1.
	primd := pr
	if prcp < 0. {
		primd = math.Pow(math.Pow(*ht*ct, -nm1)-math.Pow(ct, -nm1), -1./nm1) - *ht*ct
	}
	htimd := math.Max(hmin, *ht+primd/ct)
	*ht = math.Pow(math.Pow(htimd*ct, -nm1)+math.Pow(ct, -nm1), -1./nm1) / ct
	return (htimd - *ht) * ct
}

// LinearRouting is the exponential-decay routing reservoir: the level
// plus inflow decays with time constant lr minutes over a dt-second
// step, the decayed amount leaving as outflow.
func LinearRouting(dt, qup, lr float64, hlr *float64) float64 {
	himd := *hlr + qup
	*hlr = himd * math.Exp(-dt/(lr*60.))
	return himd - *hlr
}
