package forcing

import (
	"testing"

	"github.com/ctessum/sparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DassHydro-dev/smash/mesh"
)

func testMesh(t *testing.T) *mesh.Mesh {
	flwdir := []int32{7, 7, 0}
	flwacc := []int32{3, 2, 1}
	active := []int32{1, 1, 1}
	path := mesh.PathFromAccumulation(1, 3, flwacc, active)
	m, err := mesh.New(1, 3, 1000., flwdir, flwacc, active, path, nil)
	require.NoError(t, err)
	return m
}

func TestMeanPrcp_SkipsSentinel(t *testing.T) {
	m := testMesh(t)
	frc := New(m, 2, false)
	frc.Prcp[0].Set(m, 0, 3.)
	frc.Prcp[0].Set(m, 1, Sentinel)
	frc.Prcp[0].Set(m, 2, 6.)
	frc.Prcp[1].Fill(m, Sentinel)

	mp := frc.MeanPrcp(m)
	require.Len(t, mp, 2)
	assert.InDelta(t, 4.5, mp[0], 1e-12, "sentinel cells leave the average")
	assert.Equal(t, Sentinel, mp[1], "a fully-missing step reports the sentinel")
}

func TestFromRasters(t *testing.T) {
	m := testMesh(t)
	p := sparse.ZerosDense(1, 3)
	p.Set(2., 0, 1)
	e := sparse.ZerosDense(1, 3)

	frc, err := FromRasters(m, []*sparse.DenseArray{p}, []*sparse.DenseArray{e}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, frc.Nt)
	assert.Equal(t, 2., frc.Prcp[0].Get(m, m.ActiveIndex(0, 1)))

	_, err = FromRasters(m, []*sparse.DenseArray{p}, nil, false)
	assert.Error(t, err, "stack length mismatch")

	bad := sparse.ZerosDense(2, 2)
	_, err = FromRasters(m, []*sparse.DenseArray{bad}, []*sparse.DenseArray{e}, false)
	assert.Error(t, err, "raster shape mismatch")
}

func TestGobRoundTrip(t *testing.T) {
	m := testMesh(t)
	frc := New(m, 3, false)
	frc.Prcp[1].Fill(m, 7.)
	fp := t.TempDir() + "/frc.gob"
	require.NoError(t, frc.SaveGob(fp))
	f2, err := LoadGob(fp)
	require.NoError(t, err)
	assert.Equal(t, 3, f2.Nt)
	assert.Equal(t, 7., f2.Prcp[1].Get(m, 0))
}
