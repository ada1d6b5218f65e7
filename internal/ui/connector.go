package ui

import (
	"strconv"

	"StoryCuts/internal/state"
)

// Offset of an order label from its connector point, in screen pixels.
var labelOffset = state.Vec{X: 10, Y: -22}

// Segment joins two consecutive selection points on screen.
type Segment struct {
	From, To state.Vec
}

// Label is the 1-based order number drawn next to a selection point.
type Label struct {
	Text string
	Pos  state.Vec
}

// Frame is one drawing of the selection path.
type Frame struct {
	Segments []Segment
	Labels   []Label
}

// Connectors maps the captured centres through the camera and joins them
// in selection order. Fewer than two points draw nothing.
func Connectors(entries []state.Entry, cam state.Camera) Frame {
	if len(entries) < 2 {
		return Frame{}
	}
	points := make([]state.Vec, len(entries))
	for i, e := range entries {
		points[i] = cam.ToScreen(e.Center)
	}

	f := Frame{
		Segments: make([]Segment, 0, len(points)-1),
		Labels:   make([]Label, 0, len(points)),
	}
	for i := 1; i < len(points); i++ {
		f.Segments = append(f.Segments, Segment{From: points[i-1], To: points[i]})
	}
	for i, p := range points {
		f.Labels = append(f.Labels, Label{Text: strconv.Itoa(i + 1), Pos: p.Add(labelOffset)})
	}
	return f
}

const (
	dashLength = 10.0
	dashGap    = 6.0
)

// Dashes splits a segment into the visible pieces of a dashed line.
func Dashes(s Segment) []Segment {
	d := s.To.Sub(s.From)
	length := d.Len()
	if length == 0 {
		return nil
	}
	unit := state.Vec{X: d.X / length, Y: d.Y / length}
	var out []Segment
	for t := 0.0; t < length; t += dashLength + dashGap {
		end := min(t+dashLength, length)
		out = append(out, Segment{
			From: s.From.Add(state.Vec{X: unit.X * t, Y: unit.Y * t}),
			To:   s.From.Add(state.Vec{X: unit.X * end, Y: unit.Y * end}),
		})
	}
	return out
}
