package mesh

import (
	"fmt"
	"log"
)

// Mesh holds the immutable spatial description of a model domain:
// D8 drainage directions, flow accumulation, active-cell masks, the
// topologically-sorted cell path and the gauge table. It is built by
// an external delineation step and assumed acyclic and consistent.
type Mesh struct {
	Nrow, Ncol  int
	Xll, Yll    float64 // lower-left corner coordinates (projected)
	Dx          float64 // uniform cell size [m]
	Flwdir      []int32 // D8 code 1-8 per cell (row-major), <1 or >8 drains to farfield
	Flwacc      []int32 // count of contributing cells, self included
	Active      []int32 // global active mask
	LocalActive []int32 // per-subdomain active mask
	Path        [][2]int // upstream-to-downstream (row,col) processing order
	Gauges      []Gauge

	cxr []int // cell id to compact active index (-1 inactive)
	axr []int // compact active index to cell id
}

// Gauge is a discharge monitoring point fixed to a cell.
type Gauge struct {
	Row, Col int
	Area     float64 // drained area [m²]
	Code     string
	Weight   float64 // >0 weighted-sum contribution; <0 median-pool member
}

// D8 neighbour offsets; a neighbour at offset i drains into the centre
// cell iff its flow-direction code equals i+1.
var (
	drow = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	dcol = [8]int{0, -1, -1, -1, 0, 1, 1, 1}
)

// New builds a mesh from delineation products, checking shapes and
// building the compact active-cell cross-reference.
func New(nrow, ncol int, dx float64, flwdir, flwacc, active []int32, path [][2]int, gauges []Gauge) (*Mesh, error) {
	n := nrow * ncol
	if len(flwdir) != n || len(flwacc) != n || len(active) != n {
		return nil, fmt.Errorf(" mesh.New: raster shape mismatch (%d×%d grid, %d %d %d values)", nrow, ncol, len(flwdir), len(flwacc), len(active))
	}
	m := &Mesh{
		Nrow:   nrow,
		Ncol:   ncol,
		Dx:     dx,
		Flwdir: flwdir,
		Flwacc: flwacc,
		Active: active,
		Path:   path,
		Gauges: gauges,
	}
	m.LocalActive = make([]int32, n)
	copy(m.LocalActive, active)
	m.buildXR()
	if len(path) != m.Nact() {
		return nil, fmt.Errorf(" mesh.New: cell path covers %d cells, %d active", len(path), m.Nact())
	}
	for _, g := range gauges {
		if g.Row < 0 || g.Row >= nrow || g.Col < 0 || g.Col >= ncol {
			return nil, fmt.Errorf(" mesh.New: gauge %s located off-grid (%d,%d)", g.Code, g.Row, g.Col)
		}
	}
	return m, nil
}

func (m *Mesh) buildXR() {
	n := m.Nrow * m.Ncol
	m.cxr = make([]int, n)
	m.axr = m.axr[:0]
	for c := 0; c < n; c++ {
		if m.Active[c] > 0 {
			m.cxr[c] = len(m.axr)
			m.axr = append(m.axr, c)
		} else {
			m.cxr[c] = -1
		}
	}
}

// CellID returns the row-major cell id.
func (m *Mesh) CellID(row, col int) int { return row*m.Ncol + col }

// RowCol inverts CellID.
func (m *Mesh) RowCol(cid int) (int, int) { return cid / m.Ncol, cid % m.Ncol }

// Nact returns the number of globally active cells.
func (m *Mesh) Nact() int { return len(m.axr) }

// ActiveIndex maps a cell to its compact active index, -1 when inactive.
func (m *Mesh) ActiveIndex(row, col int) int { return m.cxr[m.CellID(row, col)] }

// ActiveCell maps a compact active index back to (row,col).
func (m *Mesh) ActiveCell(k int) (int, int) { return m.RowCol(m.axr[k]) }

// IsActive reports the global mask at (row,col).
func (m *Mesh) IsActive(row, col int) bool { return m.Active[m.CellID(row, col)] > 0 }

// IsLocalActive reports the subdomain mask at (row,col).
func (m *Mesh) IsLocalActive(row, col int) bool { return m.LocalActive[m.CellID(row, col)] > 0 }

// UpstreamNeighbours collects the (row,col) of every in-grid neighbour
// whose D8 code points into (row,col). Codes outside 1-8 never match,
// so malformed directions simply contribute no upstream cells.
func (m *Mesh) UpstreamNeighbours(row, col int) [][2]int {
	var us [][2]int
	for i := 0; i < 8; i++ {
		r, c := row+drow[i], col+dcol[i]
		if r < 0 || r >= m.Nrow || c < 0 || c >= m.Ncol {
			continue
		}
		if m.Flwdir[m.CellID(r, c)] == int32(i+1) {
			us = append(us, [2]int{r, c})
		}
	}
	return us
}

// Downstream returns the receiving cell of (row,col), or ok=false when
// the cell drains to farfield.
func (m *Mesh) Downstream(row, col int) (int, int, bool) {
	fd := m.Flwdir[m.CellID(row, col)]
	if fd < 1 || fd > 8 {
		return -1, -1, false
	}
	// code i sends flow opposite to the offset used to look upstream
	r, c := row-drow[fd-1], col-dcol[fd-1]
	if r < 0 || r >= m.Nrow || c < 0 || c >= m.Ncol {
		return -1, -1, false
	}
	return r, c, true
}

// CheckPath verifies that the cell path visits every upstream
// contributor before its receiver, the precondition routing relies on.
// Delineation bugs surface here rather than as silently wrong flow.
func (m *Mesh) CheckPath() error {
	seen := make(map[int]int, len(m.Path))
	for i, rc := range m.Path {
		seen[m.CellID(rc[0], rc[1])] = i
	}
	for _, rc := range m.Path {
		i := seen[m.CellID(rc[0], rc[1])]
		for _, u := range m.UpstreamNeighbours(rc[0], rc[1]) {
			if !m.IsActive(u[0], u[1]) {
				continue
			}
			j, ok := seen[m.CellID(u[0], u[1])]
			if !ok {
				return fmt.Errorf(" mesh.CheckPath: active cell (%d,%d) missing from path", u[0], u[1])
			}
			if j >= i {
				return fmt.Errorf(" mesh.CheckPath: cell (%d,%d) visited before upstream (%d,%d)", rc[0], rc[1], u[0], u[1])
			}
		}
	}
	return nil
}

// CheckAndPrint summarizes the mesh, fatally on an inconsistent path.
func (m *Mesh) CheckAndPrint() {
	fmt.Println("Mesh summary:")
	fmt.Printf(" %d×%d grid, %.0fm cells, %d active (%.1f%%)\n", m.Nrow, m.Ncol, m.Dx, m.Nact(), 100.*float64(m.Nact())/float64(m.Nrow*m.Ncol))
	fmt.Printf(" %d gauges\n", len(m.Gauges))
	for _, g := range m.Gauges {
		fmt.Printf("  %s (%d,%d) %.1f km²\n", g.Code, g.Row, g.Col, g.Area/1000./1000.)
	}
	if err := m.CheckPath(); err != nil {
		log.Fatalf("%v", err)
	}
}
