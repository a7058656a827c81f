// Package cost computes the calibration objective: goodness-of-fit
// metrics and hydrological signatures against observed discharge plus
// spatial regularization over parameter/state fields. Every metric is
// oriented lower-is-better; in particular nse returns the raw error
// ratio rather than the 1- efficiency score, see metrics.go.
package cost

import "sort"

// Quantile is the linear-interpolation quantile on a copy of data,
// matching the default convention of common statistical packages:
// the p-quantile sits at fractional rank (n-1)p between order
// statistics.
func Quantile(data []float64, p float64) float64 {
	n := len(data)
	if n == 0 {
		return 0.
	}
	s := make([]float64, n)
	copy(s, data)
	sort.Float64s(s)
	if p <= 0. {
		return s[0]
	}
	if p >= 1. {
		return s[n-1]
	}
	f := float64(n-1) * p
	i := int(f)
	if i+1 >= n {
		return s[n-1]
	}
	return s[i] + (f-float64(i))*(s[i+1]-s[i])
}

// Median is the 0.5 quantile.
func Median(data []float64) float64 { return Quantile(data, .5) }
