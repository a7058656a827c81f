package vic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInfiltration_DrySoilAbsorbs(t *testing.T) {
	h1, h2 := 0., 0.
	ro := Infiltration(5., .3, 100., 100., &h1, &h2)
	assert.GreaterOrEqual(t, ro, 0.)
	assert.Less(t, ro, 5., "dry soil should absorb part of the rainfall")
	// first layer fills before the second
	assert.Greater(t, h1, 0.)
	assert.Zero(t, h2)
	assert.InDelta(t, 5., ro+h1*100.+h2*100., 1e-9)
}

func TestInfiltration_SaturatedSoilRejects(t *testing.T) {
	h1, h2 := 1., 1.
	ro := Infiltration(5., .3, 100., 100., &h1, &h2)
	assert.InDelta(t, 5., ro, 1e-9)
	assert.Equal(t, 1., h1)
	assert.Equal(t, 1., h2)
}

func TestInfiltration_NoPrcpNoRunoff(t *testing.T) {
	h1, h2 := .4, .2
	ro := Infiltration(0., .3, 100., 100., &h1, &h2)
	assert.InDelta(t, 0., ro, 1e-9)
	assert.InDelta(t, .4, h1, 1e-9)
	assert.InDelta(t, .2, h2, 1e-9)
}

func TestVerticalTransfer_MovesWaterDown(t *testing.T) {
	h1, h2, hl := .5, .5, 0.
	es := VerticalTransfer(2., 20., 100., 100., 500., &h1, &h2, &hl)
	assert.Greater(t, es, 0.)
	assert.Less(t, h1, .5)
	assert.Less(t, h2, .5)
	assert.Greater(t, hl, 0.)
	// drainage out of layer 2 equals fill of the lower layer
	assert.InDelta(t, (.5-h2)*100., hl*500., 1e-9)
}

func TestInterflow_BoundedByStorage(t *testing.T) {
	h2 := .01
	qi := Interflow(1e6, 100., &h2)
	assert.InDelta(t, 1., qi, 1e-9, "release cannot exceed stored water")
	assert.InDelta(t, 0., h2, 1e-9)
}

func TestBaseflow_TwoRegimes(t *testing.T) {
	lo, hi := .2, .9
	qlo := Baseflow(.1, 10., .5, 500., &lo)
	qhi := Baseflow(.1, 10., .5, 500., &hi)
	assert.Greater(t, qlo, 0.)
	// above the threshold the quadratic term kicks in
	assert.Greater(t, qhi, qlo*hi/lo*1.001)
	assert.False(t, math.IsNaN(qhi))
}

func TestBaseflow_NeverOverdraws(t *testing.T) {
	hl := .001
	qb := Baseflow(.9, 100., .5, 10., &hl)
	assert.GreaterOrEqual(t, hl, 0.)
	assert.LessOrEqual(t, qb, .001*10.+1e-12)
}
