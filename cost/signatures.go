package cost

import "math"

// Signature metrics compare one derived scalar of the simulated
// series against the same scalar of the observed series, as
// |num/den - 1|. Continuous signatures use the whole window; flood
// event signatures average the ratio over segmented events.

// ratioDistance guards the den==0 case by holding the zero value.
func ratioDistance(num, den float64) float64 {
	if den == 0. {
		return 0.
	}
	return math.Abs(num/den - 1.)
}

// crc is the continuous runoff-coefficient signature: the ratio of
// total flow to total precipitation, simulated over observed. prcp is
// the mean areal precipitation series aligned to the window.
func crc(obs, sim, prcp []float64) float64 {
	var sx, sy, sp float64
	for i := range obs {
		if obs[i] < 0. || prcp[i] < 0. {
			continue
		}
		sx += obs[i]
		sy += sim[i]
		sp += prcp[i]
	}
	if sp == 0. || sx == 0. {
		return 0.
	}
	return ratioDistance(sy/sp, sx/sp)
}

// cfp is the continuous flow-percentile signature at probability p.
func cfp(obs, sim []float64, p float64) float64 {
	x, y := maskPairs(obs, sim)
	if len(x) == 0 {
		return 0.
	}
	return ratioDistance(Quantile(y, p), Quantile(x, p))
}

// epf is the flood-event peak-flow signature, averaged over events.
func epf(obs, sim []float64, evs []Event) float64 {
	return eventMean(evs, func(e Event) (float64, float64, bool) {
		px, py, ok := eventPeaks(obs, sim, e)
		if !ok {
			return 0., 0., false
		}
		return sim[py], obs[px], true
	})
}

// elt is the flood-event time-to-peak signature: the lag from event
// start to the peak, simulated over observed.
func elt(obs, sim []float64, evs []Event) float64 {
	return eventMean(evs, func(e Event) (float64, float64, bool) {
		px, py, ok := eventPeaks(obs, sim, e)
		if !ok {
			return 0., 0., false
		}
		return float64(py - e.Start + 1), float64(px - e.Start + 1), true
	})
}

// erc is the flood-event runoff-coefficient signature; prcp is the
// mean areal precipitation series.
func erc(obs, sim, prcp []float64, evs []Event) float64 {
	return eventMean(evs, func(e Event) (float64, float64, bool) {
		var sx, sy, sp float64
		for i := e.Start; i <= e.End && i < len(obs); i++ {
			if obs[i] < 0. || prcp[i] < 0. {
				continue
			}
			sx += obs[i]
			sy += sim[i]
			sp += prcp[i]
		}
		if sp == 0. || sx == 0. {
			return 0., 0., false
		}
		return sy / sp, sx / sp, true
	})
}

// eventPeaks finds the argmax of each series inside an event window,
// skipping missing observations; ok=false when nothing is valid.
func eventPeaks(obs, sim []float64, e Event) (px, py int, ok bool) {
	px, py = -1, -1
	for i := e.Start; i <= e.End && i < len(obs); i++ {
		if obs[i] < 0. {
			continue
		}
		if px < 0 || obs[i] > obs[px] {
			px = i
		}
		if py < 0 || sim[i] > sim[py] {
			py = i
		}
	}
	return px, py, px >= 0
}

// eventMean averages |num/den - 1| over the events a derivation
// accepts.
func eventMean(evs []Event, derive func(Event) (num, den float64, ok bool)) float64 {
	s, n := 0., 0
	for _, e := range evs {
		num, den, ok := derive(e)
		if !ok || den == 0. {
			continue
		}
		s += ratioDistance(num, den)
		n++
	}
	if n == 0 {
		return 0.
	}
	return s / float64(n)
}
