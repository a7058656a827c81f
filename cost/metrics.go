package cost

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// maskPairs keeps the positions where the observation is valid
// (nonnegative); missing observations never enter a metric.
func maskPairs(obs, sim []float64) (x, y []float64) {
	for i := range obs {
		if obs[i] >= 0. {
			x = append(x, obs[i])
			y = append(y, sim[i])
		}
	}
	return
}

// nse returns the raw squared-error ratio num/den (the conventional
// Nash-Sutcliffe efficiency is 1-num/den; callers here expect lower
// is better and the 1- transform is deliberately not applied).
func nse(obs, sim []float64) float64 {
	x, y := maskPairs(obs, sim)
	n := float64(len(x))
	if n == 0. {
		return 0.
	}
	var sxx, sxy, syy, sx float64
	for i := range x {
		sxx += x[i] * x[i]
		syy += y[i] * y[i]
		sxy += x[i] * y[i]
		sx += x[i]
	}
	num := sxx - 2.*sxy + syy
	den := sxx - sx*sx/n
	if den == 0. {
		return 0.
	}
	return num / den
}

// kge is the Euclidean distance from the ideal point in
// (correlation, variability ratio, bias ratio) space.
func kge(obs, sim []float64) float64 {
	x, y := maskPairs(obs, sim)
	if len(x) < 2 {
		return 0.
	}
	mx, my := stat.Mean(x, nil), stat.Mean(y, nil)
	if mx == 0. {
		return 0.
	}
	sdx, sdy := stat.StdDev(x, nil), stat.StdDev(y, nil)
	if sdx == 0. || sdy == 0. {
		return 0.
	}
	r := stat.Correlation(x, y, nil)
	a := sdy / sdx
	b := my / mx
	return math.Sqrt((r-1.)*(r-1.) + (a-1.)*(a-1.) + (b-1.)*(b-1.))
}

func kge2(obs, sim []float64) float64 {
	v := kge(obs, sim)
	return v * v
}

// se is the masked sum of squared differences.
func se(obs, sim []float64) float64 {
	x, y := maskPairs(obs, sim)
	s := 0.
	for i := range x {
		d := x[i] - y[i]
		s += d * d
	}
	return s
}

func rmse(obs, sim []float64) float64 {
	x, _ := maskPairs(obs, sim)
	n := float64(len(x))
	if n == 0. {
		return 0.
	}
	return math.Sqrt(se(obs, sim) / n)
}

// logarithmic penalizes multiplicative error, weighted by the
// observation; positions where either series is nonpositive are
// skipped to keep the logarithm defined.
func logarithmic(obs, sim []float64) float64 {
	x, y := maskPairs(obs, sim)
	s := 0.
	for i := range x {
		if x[i] > 0. && y[i] > 0. {
			lr := math.Log(y[i] / x[i])
			s += x[i] * lr * lr
		}
	}
	return s
}
