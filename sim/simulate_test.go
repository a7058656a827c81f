package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DassHydro-dev/smash/forcing"
	"github.com/DassHydro-dev/smash/mesh"
)

// 3×3 domain draining to a gauged lower-right outlet.
func gridMesh(t *testing.T) *mesh.Mesh {
	flwdir := []int32{4, 4, 5, 4, 4, 5, 3, 3, 0}
	flwacc := []int32{1, 1, 1, 1, 2, 3, 1, 3, 9}
	active := []int32{1, 1, 1, 1, 1, 1, 1, 1, 1}
	path := mesh.PathFromAccumulation(3, 3, flwacc, active)
	m, err := mesh.New(3, 3, 1000., flwdir, flwacc, active, path,
		[]mesh.Gauge{
			{Row: 2, Col: 2, Area: 9e6, Code: "OUT", Weight: 1.},
			{Row: 0, Col: 0, Area: 1e6, Code: "HW", Weight: 1.},
		})
	require.NoError(t, err)
	return m
}

func singleMesh(t *testing.T) *mesh.Mesh {
	m, err := mesh.New(1, 1, 1000., []int32{0}, []int32{1}, []int32{1},
		[][2]int{{0, 0}}, []mesh.Gauge{{Row: 0, Col: 0, Area: 1e6, Code: "C", Weight: 1.}})
	require.NoError(t, err)
	return m
}

func uniformForcing(m *mesh.Mesh, nt int, prcp, pet float64) *forcing.Forcing {
	frc := forcing.New(m, nt, false)
	for t := 0; t < nt; t++ {
		frc.Prcp[t].Fill(m, prcp)
		frc.Pet[t].Fill(m, pet)
	}
	return frc
}

func mustSim(t *testing.T, m *mesh.Mesh, frc *forcing.Forcing, name string) *Simulation {
	strc, err := StructureByName(name)
	require.NoError(t, err)
	s, err := New(m, frc, strc, Options{Dt: 3600.})
	require.NoError(t, err)
	return s
}

func TestRun_OutletDischargePositive(t *testing.T) {
	m := gridMesh(t)
	s := mustSim(t, m, uniformForcing(m, 1, 10., 0.), "gr-a")
	out := s.Run(NewParameters(m, false), NewStates(m, false))

	require.Len(t, out.Qsim, 2)
	assert.Positive(t, out.Qsim[0][0], "rain on the whole domain must reach the outlet")
}

func TestRun_HeadwaterMatchesSingleCell(t *testing.T) {
	mg, ms := gridMesh(t), singleMesh(t)
	sg := mustSim(t, mg, uniformForcing(mg, 4, 10., 2.), "gr-a")
	ss := mustSim(t, ms, uniformForcing(ms, 4, 10., 2.), "gr-a")

	og := sg.Run(NewParameters(mg, false), NewStates(mg, false))
	os := ss.Run(NewParameters(ms, false), NewStates(ms, false))

	// a flwacc==1 cell receives no upstream inflow, so it behaves as
	// an isolated cell under the same forcing
	for tt := 0; tt < 4; tt++ {
		assert.InDelta(t, os.Qsim[0][tt], og.Qsim[1][tt], 1e-12)
	}
}

func TestRun_RoutingConservesWithinStep(t *testing.T) {
	mg, ms := gridMesh(t), singleMesh(t)
	sg := mustSim(t, mg, uniformForcing(mg, 3, 10., 0.), "gr-a")
	ss := mustSim(t, ms, uniformForcing(ms, 3, 10., 0.), "gr-a")

	pg, ps := NewParameters(mg, false), NewParameters(ms, false)
	// near-instant routing releases everything within the timestep
	pg.Lr.Fill(mg, 1e-6)
	ps.Lr.Fill(ms, 1e-6)
	stg, sts := NewStates(mg, false), NewStates(ms, false)
	stg.Hlr.Fill(mg, 0.)
	sts.Hlr.Fill(ms, 0.)

	og := sg.Run(pg, stg)
	os := ss.Run(ps, sts)

	// uniform forcing and parameters give every cell the same local
	// production, so the outlet collects exactly nine cell shares
	for tt := 0; tt < 3; tt++ {
		assert.InDelta(t, 9.*os.Qsim[0][tt], og.Qsim[0][tt], 1e-9)
	}
}

func TestRun_InactiveCellsStayDry(t *testing.T) {
	flwdir := []int32{4, 4, 5, 4, 4, 5, 3, 3, 0}
	flwacc := []int32{1, 1, 1, 1, 2, 3, 1, 3, 9}
	active := []int32{0, 1, 1, 1, 1, 1, 1, 1, 1}
	path := mesh.PathFromAccumulation(3, 3, flwacc, active)
	m, err := mesh.New(3, 3, 1000., flwdir, flwacc, active, path,
		[]mesh.Gauge{{Row: 0, Col: 0, Area: 1e6, Code: "OFF", Weight: 1.}})
	require.NoError(t, err)

	s := mustSim(t, m, uniformForcing(m, 2, 10., 0.), "gr-a")
	out := s.Run(NewParameters(m, false), NewStates(m, false))
	assert.Equal(t, []float64{0., 0.}, out.Qsim[0], "an inactive cell produces no discharge")
}

func TestRun_LeavesInitialStatesUntouched(t *testing.T) {
	m := gridMesh(t)
	s := mustSim(t, m, uniformForcing(m, 3, 10., 2.), "gr-a")
	prm, sts := NewParameters(m, false), NewStates(m, false)

	o1 := s.Run(prm, sts)
	assert.Equal(t, .01, sts.Hp.Get(m, 0), "Run must work on a copy of the states")
	o2 := s.Run(prm, sts)
	assert.Equal(t, o1.Qsim, o2.Qsim, "repeated evaluations must be independent")
	assert.NotEqual(t, .01, o1.FinalStates.Hp.Get(m, 0))
}

func TestRun_AllStructuresFinite(t *testing.T) {
	m := gridMesh(t)
	for _, name := range StructureNames() {
		frc := uniformForcing(m, 5, 10., 2.)
		s := mustSim(t, m, frc, name)
		out := s.Run(NewParameters(m, false), NewStates(m, false))
		for g := range out.Qsim {
			for tt, v := range out.Qsim[g] {
				assert.False(t, math.IsNaN(v), "%s gauge %d step %d", name, g, tt)
				assert.GreaterOrEqual(t, v, 0., "%s gauge %d step %d", name, g, tt)
			}
		}
	}
}

func TestRun_MissingForcingStillReleasesStorage(t *testing.T) {
	m := gridMesh(t)
	frc := uniformForcing(m, 4, 10., 0.)
	frc.Prcp[2].Fill(m, forcing.Sentinel)
	frc.Pet[2].Fill(m, forcing.Sentinel)

	s := mustSim(t, m, frc, "gr-d")
	out := s.Run(NewParameters(m, false), NewStates(m, false))
	for tt := 0; tt < 4; tt++ {
		v := out.Qsim[0][tt]
		assert.False(t, math.IsNaN(v))
		assert.GreaterOrEqual(t, v, 0.)
	}
	assert.Positive(t, out.Qsim[0][2], "transfer stores keep draining through a gap")
}

func TestRun_SaveQDomain(t *testing.T) {
	m := gridMesh(t)
	s := mustSim(t, m, uniformForcing(m, 2, 10., 0.), "gr-a")
	s.Opt.SaveQDomain = true
	s.Opt.SaveNetPrcp = true
	out := s.Run(NewParameters(m, false), NewStates(m, false))

	require.Len(t, out.QDomain, 2)
	require.Len(t, out.NetPrcp, 2)
	assert.Equal(t, out.Qsim[0][1], out.QDomain[1].Get(2, 2))
	assert.Positive(t, out.NetPrcp[0].Get(1, 1))
}

func TestNew_Validation(t *testing.T) {
	m := gridMesh(t)
	strc, _ := StructureByName("gr-a")

	_, err := New(m, &forcing.Forcing{}, strc, Options{Dt: 3600.})
	assert.Error(t, err, "empty forcing")

	_, err = New(m, uniformForcing(m, 1, 0., 0.), strc, Options{Dt: 0.})
	assert.Error(t, err, "nonpositive timestep")

	other := singleMesh(t)
	_, err = New(m, uniformForcing(other, 1, 0., 0.), strc, Options{Dt: 3600.})
	assert.Error(t, err, "forcing sized for a different mesh")
}

func TestStructureByName_Unknown(t *testing.T) {
	_, err := StructureByName("gr-z")
	assert.Error(t, err)
}

func TestStructureParams(t *testing.T) {
	a, _ := StructureByName("gr-a")
	assert.ElementsMatch(t, []string{"cp", "cft", "lr", "beta", "exc", "alpha"}, StructureParams(a))

	d, _ := StructureByName("gr-d")
	assert.ElementsMatch(t, []string{"cp", "cft", "lr"}, StructureParams(d), "fixed-beta structure does not calibrate beta")

	v, _ := StructureByName("vic")
	assert.Contains(t, StructureParams(v), "ws")
	assert.Contains(t, StructureParams(v), "lr")
}
