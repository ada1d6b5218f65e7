package state

import "math"

// Vec is a point or offset, in plane or screen pixels depending on context.
type Vec struct{ X, Y float64 }

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

type Size struct{ W, H float64 }

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Inflate grows the rectangle by m on every side.
func (r Rect) Inflate(m float64) Rect {
	return Rect{X: r.X - m, Y: r.Y - m, W: r.W + 2*m, H: r.H + 2*m}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// Cut is one placed image+description item on the virtual plane.
// Cuts are immutable once the layout has been generated.
type Cut struct {
	ID          string
	Index       int // 0-based position in layout-generation order
	Pos         Vec // top-left
	Size        Size
	Description string
	Image       string
}

func (c Cut) Bounds() Rect {
	return Rect{X: c.Pos.X, Y: c.Pos.Y, W: c.Size.W, H: c.Size.H}
}

func (c Cut) Center() Vec {
	return Vec{X: c.Pos.X + c.Size.W/2, Y: c.Pos.Y + c.Size.H/2}
}

// Entry is a selected cut, with its centre captured at selection time.
type Entry struct {
	CutID       string
	Index       int
	Description string
	Center      Vec
}

func entryFor(c Cut) Entry {
	return Entry{CutID: c.ID, Index: c.Index, Description: c.Description, Center: c.Center()}
}

// PointerKind tells the gesture state machine which input family a press came from.
type PointerKind int

const (
	PointerMouse PointerKind = iota
	PointerTouch
)

func (k PointerKind) String() string {
	if k == PointerTouch {
		return "touch"
	}
	return "mouse"
}
