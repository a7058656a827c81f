package mesh

import (
	"fmt"

	"github.com/im7mortal/UTM"
)

// LocateLatLon converts a geographic coordinate to the containing grid
// cell; the mesh origin is taken to be in the same UTM zone.
func (m *Mesh) LocateLatLon(lat, lon float64) (row, col int, err error) {
	easting, northing, _, _, err := UTM.FromLatLon(lat, lon, false)
	if err != nil {
		return -1, -1, fmt.Errorf(" mesh.LocateLatLon %v", err)
	}
	return m.Locate(easting, northing)
}

// Locate converts a projected coordinate to the containing grid cell.
func (m *Mesh) Locate(x, y float64) (row, col int, err error) {
	col = int((x - m.Xll) / m.Dx)
	row = m.Nrow - 1 - int((y-m.Yll)/m.Dx)
	if row < 0 || row >= m.Nrow || col < 0 || col >= m.Ncol {
		return -1, -1, fmt.Errorf(" mesh.Locate: (%.1f,%.1f) off-grid", x, y)
	}
	return row, col, nil
}

// AddGauge snaps a gauge onto the grid from projected coordinates.
func (m *Mesh) AddGauge(x, y, area, weight float64, code string) error {
	row, col, err := m.Locate(x, y)
	if err != nil {
		return fmt.Errorf(" mesh.AddGauge %s: %v", code, err)
	}
	m.Gauges = append(m.Gauges, Gauge{Row: row, Col: col, Area: area, Code: code, Weight: weight})
	return nil
}
