package state

// DefaultTapTolerance is the total touch travel, in pixels, below which a
// touch release still counts as a tap.
const DefaultTapTolerance = 10.0

type GesturePhase int

const (
	PhaseIdle GesturePhase = iota
	PhasePressed
	PhaseDragging
)

func (p GesturePhase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePressed:
		return "pressed"
	case PhaseDragging:
		return "dragging"
	default:
		return "unknown"
	}
}

type GestureKind int

const (
	GestureNone GestureKind = iota
	GesturePan
	GestureTap
	GesturePanEnd
)

// GestureResult tells the caller what a pointer event amounted to.
type GestureResult struct {
	Kind      GestureKind
	Delta     Vec  // GesturePan
	Point     Vec  // GestureTap, screen coordinates
	DragStart bool // first pan of this press
	Dragged   bool // GestureTap: the press panned before it was released
}

// Gesture separates taps from pans for one pointer. Mouse and touch share the
// machine; only the release rules differ.
type Gesture struct {
	Tolerance float64

	phase       GesturePhase
	kind        PointerKind
	last        Vec
	distance    float64
	endedInDrag bool
}

func NewGesture(tolerance float64) *Gesture {
	if tolerance <= 0 {
		tolerance = DefaultTapTolerance
	}
	return &Gesture{Tolerance: tolerance}
}

func (g *Gesture) Phase() GesturePhase { return g.phase }
func (g *Gesture) Kind() PointerKind   { return g.kind }
func (g *Gesture) Dragging() bool      { return g.phase == PhaseDragging }
func (g *Gesture) Distance() float64   { return g.distance }

// Press starts a new interaction, discarding whatever came before.
func (g *Gesture) Press(kind PointerKind, p Vec) {
	g.phase = PhasePressed
	g.kind = kind
	g.last = p
	g.distance = 0
	g.endedInDrag = false
}

// Move forwards the delta since the last observed point as a pan. Touch moves
// also accumulate travelled distance for the tap decision at release.
func (g *Gesture) Move(p Vec) GestureResult {
	if g.phase == PhaseIdle {
		return GestureResult{}
	}
	delta := p.Sub(g.last)
	g.last = p
	if delta.X == 0 && delta.Y == 0 {
		return GestureResult{}
	}
	if g.kind == PointerTouch {
		g.distance += delta.Len()
	}
	started := g.phase != PhaseDragging
	g.phase = PhaseDragging
	return GestureResult{Kind: GesturePan, Delta: delta, DragStart: started}
}

// Release ends the interaction. A touch that travelled less than Tolerance is
// a tap at p, even if it panned on the way; mouse taps arrive separately
// through Click.
func (g *Gesture) Release(p Vec) GestureResult {
	if g.phase == PhaseIdle {
		return GestureResult{}
	}
	wasDragging := g.phase == PhaseDragging
	kind := g.kind
	distance := g.distance
	g.reset()
	g.endedInDrag = wasDragging

	if kind == PointerTouch {
		if distance < g.Tolerance {
			return GestureResult{Kind: GestureTap, Point: p, Dragged: wasDragging}
		}
		return GestureResult{Kind: GesturePanEnd}
	}
	if wasDragging {
		return GestureResult{Kind: GesturePanEnd}
	}
	return GestureResult{}
}

// Click reports whether a mouse click may be treated as a tap. Clicks are
// swallowed while dragging and for the press that just ended in a drag.
func (g *Gesture) Click() bool {
	if g.phase == PhaseDragging || g.endedInDrag {
		return false
	}
	return true
}

// Leave handles the pointer leaving the tracked area without a release.
func (g *Gesture) Leave() GestureResult {
	wasDragging := g.phase == PhaseDragging
	g.reset()
	if wasDragging {
		g.endedInDrag = true
		return GestureResult{Kind: GesturePanEnd}
	}
	return GestureResult{}
}

func (g *Gesture) reset() {
	g.phase = PhaseIdle
	g.distance = 0
}
