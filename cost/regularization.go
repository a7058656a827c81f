package cost

import (
	"fmt"
	"math"

	"github.com/DassHydro-dev/smash/field"
	"github.com/DassHydro-dev/smash/mesh"
)

// RegField couples a calibrated field with its background (prior)
// field and admissible interval. Only fields flagged Optimized enter
// the regularization terms.
type RegField struct {
	Name         string
	Cur, Bkg     *field.Field
	Lower, Upper float64
	Optimized    bool
}

// ComputeJreg evaluates the regularization term over the optimized
// fields. desc is an optional categorical descriptor raster consumed
// by the distance-correlation term.
func ComputeJreg(m *mesh.Mesh, cfg *Config, flds []RegField, desc *field.Field) (float64, error) {
	jreg := 0.
	for _, term := range cfg.RegTerms {
		tv := 0.
		for _, f := range flds {
			if !f.Optimized {
				continue
			}
			switch term.Name {
			case "prior":
				tv += prior(m, f)
			case "smoothing":
				tv += smoothing(m, f, true)
			case "hard-smoothing":
				tv += smoothing(m, f, false)
			case "distance-correlation":
				if desc == nil {
					return 0., fmt.Errorf(" cost: regularization %q needs a descriptor field", term.Name)
				}
				tv += distanceCorrelation(m, f, desc)
			default:
				return 0., fmt.Errorf(" cost: unknown regularization term %q", term.Name)
			}
		}
		jreg += term.Weight * tv
	}
	return jreg, nil
}

// prior is the squared deviation from the background field.
func prior(m *mesh.Mesh, f RegField) float64 {
	s := 0.
	for k := 0; k < m.Nact(); k++ {
		d := f.Cur.Get(m, k) - f.Bkg.Get(m, k)
		s += d * d
	}
	return s
}

// smoothing penalizes the squared discrete Laplacian over the
// 4-neighbourhood; relative=true takes the field against its
// background first. Stencil arms falling off the domain or onto
// inactive cells reflect inward.
func smoothing(m *mesh.Mesh, f RegField, relative bool) float64 {
	val := func(row, col int) float64 {
		k := m.ActiveIndex(row, col)
		v := f.Cur.Get(m, k)
		if relative {
			v -= f.Bkg.Get(m, k)
		}
		return v
	}
	arm := func(row, col, row0, col0 int) float64 {
		if row >= 0 && row < m.Nrow && col >= 0 && col < m.Ncol && m.IsActive(row, col) {
			return val(row, col)
		}
		// reflect through the centre cell
		rr, rc := 2*row0-row, 2*col0-col
		if rr >= 0 && rr < m.Nrow && rc >= 0 && rc < m.Ncol && m.IsActive(rr, rc) {
			return val(rr, rc)
		}
		return val(row0, col0)
	}
	s := 0.
	for k := 0; k < m.Nact(); k++ {
		row, col := m.ActiveCell(k)
		c := val(row, col)
		lap := arm(row-1, col, row, col) + arm(row+1, col, row, col) +
			arm(row, col-1, row, col) + arm(row, col+1, row, col) - 4.*c
		s += lap * lap
	}
	return s
}

// distanceCorrelation penalizes differing values within one
// descriptor class, weighted by inverse squared distance and
// normalized by class population. O(N²) per class pair pass.
func distanceCorrelation(m *mesh.Mesh, f RegField, desc *field.Field) float64 {
	classes := make(map[int][]int)
	for k := 0; k < m.Nact(); k++ {
		c := int(math.Round(desc.Get(m, k)))
		classes[c] = append(classes[c], k)
	}
	s := 0.
	for _, ks := range classes {
		if len(ks) < 2 {
			continue
		}
		cs := 0.
		for a := 0; a < len(ks); a++ {
			ra, ca := m.ActiveCell(ks[a])
			va := f.Cur.Get(m, ks[a])
			for b := a + 1; b < len(ks); b++ {
				rb, cb := m.ActiveCell(ks[b])
				d2 := float64((ra-rb)*(ra-rb) + (ca-cb)*(ca-cb))
				if d2 == 0. {
					continue
				}
				dv := va - f.Cur.Get(m, ks[b])
				cs += dv * dv / d2
			}
		}
		s += cs / float64(len(ks))
	}
	return s
}
