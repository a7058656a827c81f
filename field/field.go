// Package field provides a storage-agnostic scalar field over the
// active cells of a mesh: either a full dense raster or a compact
// vector indexed by the mesh's active-cell cross-reference. Simulation
// and cost code addresses cells through the compact index and never
// needs to know which layout backs the field.
package field

import (
	"github.com/ctessum/sparse"

	"github.com/DassHydro-dev/smash/mesh"
)

// Field is one value per active cell.
type Field struct {
	Dense *sparse.DenseArray // nrow×ncol raster, nil in compact mode
	Vals  []float64          // active-cell vector, nil in dense mode
}

// New allocates a field of v over the active cells of m.
func New(m *mesh.Mesh, v float64, dense bool) Field {
	if dense {
		da := sparse.ZerosDense(m.Nrow, m.Ncol)
		for k := 0; k < m.Nact(); k++ {
			r, c := m.ActiveCell(k)
			da.Set(v, r, c)
		}
		return Field{Dense: da}
	}
	vals := make([]float64, m.Nact())
	for i := range vals {
		vals[i] = v
	}
	return Field{Vals: vals}
}

// Get returns the value at compact active index k.
func (f *Field) Get(m *mesh.Mesh, k int) float64 {
	if f.Dense != nil {
		r, c := m.ActiveCell(k)
		return f.Dense.Get(r, c)
	}
	return f.Vals[k]
}

// Set assigns the value at compact active index k.
func (f *Field) Set(m *mesh.Mesh, k int, v float64) {
	if f.Dense != nil {
		r, c := m.ActiveCell(k)
		f.Dense.Set(v, r, c)
		return
	}
	f.Vals[k] = v
}

// Fill assigns v to every active cell.
func (f *Field) Fill(m *mesh.Mesh, v float64) {
	for k := 0; k < m.Nact(); k++ {
		f.Set(m, k, v)
	}
}

// Copy deep-copies the field.
func (f *Field) Copy() Field {
	if f.Dense != nil {
		return Field{Dense: f.Dense.Copy()}
	}
	v := make([]float64, len(f.Vals))
	copy(v, f.Vals)
	return Field{Vals: v}
}

// Compact extracts the active-cell vector regardless of layout.
func (f *Field) Compact(m *mesh.Mesh) []float64 {
	v := make([]float64, m.Nact())
	for k := range v {
		v[k] = f.Get(m, k)
	}
	return v
}

// Expand materializes the field as a dense raster (zeros off-domain).
func (f *Field) Expand(m *mesh.Mesh) *sparse.DenseArray {
	if f.Dense != nil {
		return f.Dense.Copy()
	}
	da := sparse.ZerosDense(m.Nrow, m.Ncol)
	for k, v := range f.Vals {
		r, c := m.ActiveCell(k)
		da.Set(v, r, c)
	}
	return da
}

// FromRaster compacts a dense raster into the requested layout.
func FromRaster(m *mesh.Mesh, da *sparse.DenseArray, dense bool) Field {
	f := New(m, 0., dense)
	for k := 0; k < m.Nact(); k++ {
		r, c := m.ActiveCell(k)
		f.Set(m, k, da.Get(r, c))
	}
	return f
}
