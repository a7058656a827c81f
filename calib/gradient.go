package calib

import "math"

// The forward/cost composition is exposed as the pure function
// Evaluate(u) so that any tangent-linear or adjoint implementation
// can be checked against it. The helpers below are the two standard
// validations: directional derivatives against finite differences,
// and the scalar-product (dot-product) identity.

// Gradient approximates ∇f at x by central differences with step eps
// per dimension.
func Gradient(f func([]float64) float64, x []float64, eps float64) []float64 {
	g := make([]float64, len(x))
	xp := make([]float64, len(x))
	for i := range x {
		copy(xp, x)
		xp[i] = x[i] + eps
		fp := f(xp)
		xp[i] = x[i] - eps
		fm := f(xp)
		g[i] = (fp - fm) / (2. * eps)
	}
	return g
}

// DirectionalDerivative approximates Df(x;d) by a forward difference.
func DirectionalDerivative(f func([]float64) float64, x, d []float64, eps float64) float64 {
	xp := make([]float64, len(x))
	for i := range x {
		xp[i] = x[i] + eps*d[i]
	}
	return (f(xp) - f(x)) / eps
}

// ScalarProductCheck returns the relative discrepancy between <g,d>
// and the finite-difference directional derivative along d; a gradient
// implementation passing the adjoint dot-product test drives this to
// the truncation-error level of eps.
func ScalarProductCheck(f func([]float64) float64, g func([]float64) []float64, x, d []float64, eps float64) float64 {
	gd := 0.
	gx := g(x)
	for i := range d {
		gd += gx[i] * d[i]
	}
	fd := DirectionalDerivative(f, x, d, eps)
	den := math.Max(math.Abs(fd), math.Abs(gd))
	if den == 0. {
		return 0.
	}
	return math.Abs(gd-fd) / den
}
