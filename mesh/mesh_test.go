package mesh

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 3×3 domain draining to the lower-right corner.
func testMesh(t *testing.T) *Mesh {
	flwdir := []int32{
		4, 4, 5,
		4, 4, 5,
		3, 3, 0,
	}
	flwacc := []int32{
		1, 1, 1,
		1, 2, 3,
		1, 3, 9,
	}
	active := []int32{1, 1, 1, 1, 1, 1, 1, 1, 1}
	path := PathFromAccumulation(3, 3, flwacc, active)
	m, err := New(3, 3, 1000., flwdir, flwacc, active, path,
		[]Gauge{{Row: 2, Col: 2, Area: 9e6, Code: "OUT", Weight: 1.}})
	require.NoError(t, err)
	return m
}

func TestNew_ShapeMismatch(t *testing.T) {
	_, err := New(3, 3, 1000., make([]int32, 8), make([]int32, 9), make([]int32, 9), nil, nil)
	assert.Error(t, err)
}

func TestNew_GaugeOffGrid(t *testing.T) {
	active := []int32{1}
	path := [][2]int{{0, 0}}
	_, err := New(1, 1, 1000., []int32{0}, []int32{1}, active, path,
		[]Gauge{{Row: 5, Col: 0, Code: "X"}})
	assert.Error(t, err)
}

func TestUpstreamNeighbours(t *testing.T) {
	m := testMesh(t)
	us := m.UpstreamNeighbours(2, 2)
	assert.Len(t, us, 3)
	assert.Contains(t, us, [2]int{1, 1})
	assert.Contains(t, us, [2]int{1, 2})
	assert.Contains(t, us, [2]int{2, 1})
	assert.Empty(t, m.UpstreamNeighbours(0, 0), "headwater has no contributors")
}

func TestDownstream(t *testing.T) {
	m := testMesh(t)
	r, c, ok := m.Downstream(0, 0)
	assert.True(t, ok)
	assert.Equal(t, [2]int{1, 1}, [2]int{r, c})
	_, _, ok = m.Downstream(2, 2)
	assert.False(t, ok, "outlet drains to farfield")
}

func TestPathFromAccumulation_Topological(t *testing.T) {
	m := testMesh(t)
	assert.Len(t, m.Path, 9)
	assert.NoError(t, m.CheckPath())
	// the outlet accumulates everything and must come last
	assert.Equal(t, [2]int{2, 2}, m.Path[8])
}

func TestCheckPath_DetectsInversion(t *testing.T) {
	m := testMesh(t)
	// swap the outlet to the front: its contributors now come after it
	m.Path[0], m.Path[8] = m.Path[8], m.Path[0]
	assert.Error(t, m.CheckPath())
}

func TestActiveCrossReference(t *testing.T) {
	flwdir := []int32{0, 7, 0, 0}
	flwacc := []int32{2, 1, 0, 0}
	active := []int32{1, 1, 0, 0}
	path := PathFromAccumulation(2, 2, flwacc, active)
	m, err := New(2, 2, 500., flwdir, flwacc, active, path, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, m.Nact())
	assert.Equal(t, -1, m.ActiveIndex(1, 0))
	k := m.ActiveIndex(0, 1)
	r, c := m.ActiveCell(k)
	assert.Equal(t, [2]int{0, 1}, [2]int{r, c})
	assert.True(t, m.IsActive(0, 0))
	assert.False(t, m.IsActive(1, 1))
}

func TestGobRoundTrip(t *testing.T) {
	m := testMesh(t)
	fp := t.TempDir() + "/mesh.gob"
	require.NoError(t, m.SaveGob(fp))
	m2, err := LoadGob(fp)
	require.NoError(t, err)
	assert.Equal(t, m.Nact(), m2.Nact())
	assert.Equal(t, m.Flwdir, m2.Flwdir)
	assert.Equal(t, m.Gauges, m2.Gauges)
	// the cross-reference is rebuilt on load
	assert.Equal(t, m.ActiveIndex(2, 2), m2.ActiveIndex(2, 2))
}
