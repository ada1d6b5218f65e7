package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StoryCuts/internal/state"
)

func testCamera() state.Camera {
	return *state.NewCamera(state.Size{W: 3000, H: 1500}, state.Size{W: 1000, H: 600}, state.PolicyClamp, 0)
}

func TestConnectorsNeedTwoPoints(t *testing.T) {
	cam := testCamera()
	assert.Equal(t, Frame{}, Connectors(nil, cam))
	assert.Equal(t, Frame{}, Connectors([]state.Entry{{Center: state.Vec{X: 1, Y: 1}}}, cam))
}

func TestConnectorsFollowSelectionOrder(t *testing.T) {
	cam := testCamera()
	entries := []state.Entry{
		{CutID: "b", Center: state.Vec{X: 1500, Y: 750}},
		{CutID: "a", Center: state.Vec{X: 1600, Y: 800}},
		{CutID: "c", Center: state.Vec{X: 1400, Y: 700}},
	}

	f := Connectors(entries, cam)

	require.Len(t, f.Segments, 2)
	require.Len(t, f.Labels, 3)
	// Camera centred on (1500,750) with a 1000x600 viewport.
	assert.Equal(t, state.Vec{X: 500, Y: 300}, f.Segments[0].From)
	assert.Equal(t, state.Vec{X: 600, Y: 350}, f.Segments[0].To)
	assert.Equal(t, f.Segments[0].To, f.Segments[1].From)
	assert.Equal(t, state.Vec{X: 400, Y: 250}, f.Segments[1].To)
	for i, l := range f.Labels {
		assert.Equal(t, []string{"1", "2", "3"}[i], l.Text)
	}
	assert.Equal(t, state.Vec{X: 500, Y: 300}.Add(labelOffset), f.Labels[0].Pos)
}

func TestConnectorsArePure(t *testing.T) {
	cam := testCamera()
	entries := []state.Entry{{Center: state.Vec{X: 1000, Y: 500}}, {Center: state.Vec{X: 2000, Y: 900}}}
	before := cam

	a := Connectors(entries, cam)
	b := Connectors(entries, cam)

	assert.Equal(t, a, b)
	assert.Equal(t, before, cam)
}

func TestConnectorsTrackCamera(t *testing.T) {
	cam := testCamera()
	entries := []state.Entry{{Center: state.Vec{X: 1000, Y: 500}}, {Center: state.Vec{X: 2000, Y: 900}}}
	first := Connectors(entries, cam)

	cam.ApplyDelta(50, 20)
	moved := Connectors(entries, cam)

	assert.InDelta(t, first.Segments[0].From.X+50, moved.Segments[0].From.X, 1e-9)
	assert.InDelta(t, first.Segments[0].From.Y+20, moved.Segments[0].From.Y, 1e-9)
}

func TestDashes(t *testing.T) {
	assert.Nil(t, Dashes(Segment{}))

	d := Dashes(Segment{From: state.Vec{}, To: state.Vec{X: 40}})
	require.Len(t, d, 3)
	assert.Equal(t, Segment{From: state.Vec{X: 0}, To: state.Vec{X: 10}}, d[0])
	assert.Equal(t, Segment{From: state.Vec{X: 16}, To: state.Vec{X: 26}}, d[1])
	assert.Equal(t, Segment{From: state.Vec{X: 32}, To: state.Vec{X: 40}}, d[2])
}
