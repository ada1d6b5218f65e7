package state

import (
	"fmt"
	"math"
)

// BoundaryPolicy decides what happens when the camera is dragged past the plane.
type BoundaryPolicy string

const (
	PolicyClamp BoundaryPolicy = "clamp"
	PolicyWrap  BoundaryPolicy = "wrap"
)

func ParseBoundaryPolicy(s string) (BoundaryPolicy, error) {
	switch BoundaryPolicy(s) {
	case PolicyClamp, PolicyWrap:
		return BoundaryPolicy(s), nil
	case "":
		return PolicyClamp, nil
	}
	return "", fmt.Errorf("unknown camera policy %q", s)
}

// Camera is the plane point currently centred in the viewport.
type Camera struct {
	Pos      Vec
	Viewport Size
	Plane    Size
	Policy   BoundaryPolicy
	Padding  float64 // clamp only: how far past the plane edge the viewport may show
}

// NewCamera centres the camera on the plane.
func NewCamera(plane, viewport Size, policy BoundaryPolicy, padding float64) *Camera {
	c := &Camera{
		Pos:      Vec{X: plane.W / 2, Y: plane.H / 2},
		Viewport: viewport,
		Plane:    plane,
		Policy:   policy,
		Padding:  padding,
	}
	c.constrain()
	return c
}

// ApplyDelta pans by a pointer delta. Dragging content right moves the
// camera left.
func (c *Camera) ApplyDelta(dx, dy float64) {
	c.Pos.X -= dx
	c.Pos.Y -= dy
	c.constrain()
}

// Resize stores the new viewport size and re-applies the boundary policy.
func (c *Camera) Resize(viewport Size) {
	c.Viewport = viewport
	c.constrain()
}

// Transform is the translation from plane to screen coordinates.
func (c Camera) Transform() Vec {
	return Vec{X: c.Viewport.W/2 - c.Pos.X, Y: c.Viewport.H/2 - c.Pos.Y}
}

// ToScreen maps a plane point to the screen. Under wrap the copy of p
// nearest the viewport centre is used.
func (c Camera) ToScreen(p Vec) Vec {
	s := p.Add(c.Transform())
	if c.Policy == PolicyWrap {
		s.X = nearestCopy(s.X, c.Viewport.W/2, c.Plane.W)
		s.Y = nearestCopy(s.Y, c.Viewport.H/2, c.Plane.H)
	}
	return s
}

// ToPlane maps a screen point back onto the plane.
func (c Camera) ToPlane(s Vec) Vec {
	p := s.Sub(c.Transform())
	if c.Policy == PolicyWrap {
		p.X = wrap(p.X, c.Plane.W)
		p.Y = wrap(p.Y, c.Plane.H)
	}
	return p
}

// Range returns the allowed camera range per axis under the clamp policy.
func (c Camera) Range() (min, max Vec) {
	min = Vec{X: c.Viewport.W/2 - c.Padding, Y: c.Viewport.H/2 - c.Padding}
	max = Vec{X: c.Plane.W - c.Viewport.W/2 + c.Padding, Y: c.Plane.H - c.Viewport.H/2 + c.Padding}
	return min, max
}

func (c *Camera) constrain() {
	switch c.Policy {
	case PolicyWrap:
		c.Pos.X = wrap(c.Pos.X, c.Plane.W)
		c.Pos.Y = wrap(c.Pos.Y, c.Plane.H)
	default:
		lo, hi := c.Range()
		c.Pos.X = clampAxis(c.Pos.X, lo.X, hi.X, c.Plane.W/2)
		c.Pos.Y = clampAxis(c.Pos.Y, lo.Y, hi.Y, c.Plane.H/2)
	}
}

// A viewport larger than the plane leaves no valid range; pin to the centre.
func clampAxis(v, lo, hi, centre float64) float64 {
	if lo > hi {
		return centre
	}
	return math.Max(lo, math.Min(v, hi))
}

func wrap(v, size float64) float64 {
	if size <= 0 {
		return 0
	}
	m := math.Mod(v, size)
	if m < 0 {
		m += size
	}
	if m >= size {
		m = 0
	}
	return m
}

func nearestCopy(v, centre, size float64) float64 {
	if size <= 0 {
		return v
	}
	return v - size*math.Round((v-centre)/size)
}
