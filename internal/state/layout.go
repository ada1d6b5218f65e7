package state

import (
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
)

// MaxPlacementAttempts caps the number of random draws for a whole layout.
const MaxPlacementAttempts = 1000

var (
	ErrPlacementExhausted = errors.New("layout placement exhausted")
	ErrPlaneTooSmall      = errors.New("plane too small for cut size and margin")
	ErrMissingBinding     = errors.New("missing cut binding")
)

// CutBinding is the content bound to the cut at a given index.
type CutBinding struct {
	Description string
	Image       string
}

// LayoutParams configures GenerateLayout.
type LayoutParams struct {
	Bounds   Size    // virtual plane size
	Margin   float64 // inset from the plane edge where cuts may not be placed
	Spacing  float64 // minimum gap between two cuts
	CutSize  Size
	Count    int
	Bindings []CutBinding
}

// Layout is the set of cuts placed on the virtual plane.
type Layout struct {
	Bounds  Size
	Margin  float64
	Spacing float64
	Cuts    []Cut
}

// GenerateLayout places exactly p.Count cuts by rejection sampling. Candidates
// whose spacing-inflated box touches an already accepted cut are redrawn.
// When MaxPlacementAttempts draws are spent before every cut is placed, the
// layout fails instead of coming back short.
func GenerateLayout(r *rand.Rand, p LayoutParams) (*Layout, error) {
	if p.Count < 1 {
		return nil, fmt.Errorf("layout needs at least one cut, got %d", p.Count)
	}
	if len(p.Bindings) < p.Count {
		return nil, fmt.Errorf("%w: %d bindings for %d cuts", ErrMissingBinding, len(p.Bindings), p.Count)
	}

	spanX := p.Bounds.W - 2*p.Margin - p.CutSize.W
	spanY := p.Bounds.H - 2*p.Margin - p.CutSize.H
	if spanX < 0 || spanY < 0 || p.CutSize.W <= 0 || p.CutSize.H <= 0 {
		return nil, fmt.Errorf("%w: plane %.0fx%.0f, margin %.0f, cut %.0fx%.0f",
			ErrPlaneTooSmall, p.Bounds.W, p.Bounds.H, p.Margin, p.CutSize.W, p.CutSize.H)
	}

	cuts := make([]Cut, 0, p.Count)
	attempts := 0
	for len(cuts) < p.Count {
		if attempts >= MaxPlacementAttempts {
			return nil, fmt.Errorf("%w: unable to place item %d after %d attempts",
				ErrPlacementExhausted, len(cuts), attempts)
		}
		attempts++

		i := len(cuts)
		candidate := Cut{
			ID:          fmt.Sprintf("cut-%d", i+1),
			Index:       i,
			Pos:         Vec{X: p.Margin + r.Float64()*spanX, Y: p.Margin + r.Float64()*spanY},
			Size:        p.CutSize,
			Description: p.Bindings[i].Description,
			Image:       p.Bindings[i].Image,
		}
		if overlapsAny(candidate, cuts, p.Spacing) {
			continue
		}
		cuts = append(cuts, candidate)
	}

	log.Printf("[LAYOUT] Placed %d cuts in %d attempts", len(cuts), attempts)
	return &Layout{Bounds: p.Bounds, Margin: p.Margin, Spacing: p.Spacing, Cuts: cuts}, nil
}

// Overlaps reports whether a intersects b once b is grown by spacing on every side.
func Overlaps(a, b Cut, spacing float64) bool {
	return regionsOverlap(a.Bounds(), b.Bounds().Inflate(spacing))
}

func overlapsAny(c Cut, placed []Cut, spacing float64) bool {
	for _, existing := range placed {
		if Overlaps(c, existing, spacing) {
			return true
		}
	}
	return false
}

// Strict comparison: boxes that only share an edge do not overlap.
func regionsOverlap(a, b Rect) bool {
	return a.X < b.X+b.W && a.X+a.W > b.X &&
		a.Y < b.Y+b.H && a.Y+a.H > b.Y
}

// CutAt returns the cut under the plane point p. Later cuts are drawn on top,
// so they win ties.
func (l *Layout) CutAt(p Vec) (Cut, bool) {
	for i := len(l.Cuts) - 1; i >= 0; i-- {
		if l.Cuts[i].Bounds().Contains(p) {
			return l.Cuts[i], true
		}
	}
	return Cut{}, false
}

// Cut looks a cut up by id.
func (l *Layout) Cut(id string) (Cut, bool) {
	for _, c := range l.Cuts {
		if c.ID == id {
			return c, true
		}
	}
	return Cut{}, false
}

// Descriptions returns every cut's description in layout-generation order.
func (l *Layout) Descriptions() []string {
	out := make([]string, len(l.Cuts))
	for i, c := range l.Cuts {
		out[i] = c.Description
	}
	return out
}
