package state

import (
	"log"
	"math/rand/v2"
)

// Settings is everything a session needs to lay out and drive the board.
type Settings struct {
	Layout          LayoutParams
	CameraPolicy    BoundaryPolicy
	CameraPadding   float64
	SelectionPolicy SelectionPolicy
	TapTolerance    float64
}

// Controller owns one interactive session: the layout, the camera, the
// gesture machine and the selection. Input adapters feed it neutral pointer
// events; renderers observe it through the On* hooks. All methods must be
// called from the UI goroutine.
type Controller struct {
	SessionID string
	Layout    *Layout
	Camera    *Camera
	Gesture   *Gesture
	Sequence  *Sequence

	OnCamera     func()
	OnSelection  func()
	OnDragChange func(dragging bool)
	OnComplete   func(entries []Entry)

	settings Settings
}

// NewController generates a layout and starts a session. A layout that
// cannot be placed is returned as an error; there is no partial session.
func NewController(r *rand.Rand, s Settings, viewport Size) (*Controller, error) {
	c := &Controller{settings: s}
	if err := c.start(r, viewport); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Controller) start(r *rand.Rand, viewport Size) error {
	layout, err := GenerateLayout(r, c.settings.Layout)
	if err != nil {
		return err
	}
	c.SessionID = NewSessionID()
	c.Layout = layout
	c.Camera = NewCamera(layout.Bounds, viewport, c.settings.CameraPolicy, c.settings.CameraPadding)
	c.Gesture = NewGesture(c.settings.TapTolerance)
	c.Sequence = NewSequence(len(layout.Cuts), c.settings.SelectionPolicy)
	c.Sequence.OnComplete = func(entries []Entry) {
		log.Printf("[BOARD] Sequence sealed with %d cuts (session %s)", len(entries), c.SessionID)
		if c.OnComplete != nil {
			c.OnComplete(entries)
		}
	}
	return nil
}

// Reset throws the session away and lays out a fresh board, keeping the
// current viewport. On error the old session stays in place.
func (c *Controller) Reset(r *rand.Rand) error {
	viewport := Size{}
	if c.Camera != nil {
		viewport = c.Camera.Viewport
	}
	old := *c
	if err := c.start(r, viewport); err != nil {
		*c = old
		return err
	}
	c.notifySelection()
	c.notifyCamera()
	return nil
}

func (c *Controller) Dragging() bool { return c.Gesture.Dragging() }

func (c *Controller) Press(kind PointerKind, p Vec) {
	c.Gesture.Press(kind, p)
}

func (c *Controller) Move(p Vec) {
	res := c.Gesture.Move(p)
	if res.Kind != GesturePan {
		return
	}
	if res.DragStart && c.OnDragChange != nil {
		c.OnDragChange(true)
	}
	c.Camera.ApplyDelta(res.Delta.X, res.Delta.Y)
	c.notifyCamera()
}

func (c *Controller) Release(p Vec) {
	c.handleEnd(c.Gesture.Release(p))
}

func (c *Controller) Leave() {
	c.handleEnd(c.Gesture.Leave())
}

func (c *Controller) handleEnd(res GestureResult) {
	switch res.Kind {
	case GestureTap:
		c.selectAt(res.Point)
		if res.Dragged && c.OnDragChange != nil {
			c.OnDragChange(false)
		}
	case GesturePanEnd:
		if c.OnDragChange != nil {
			c.OnDragChange(false)
		}
	}
}

// Click handles a mouse click at screen point p. It reports whether the click
// reached the selection logic.
func (c *Controller) Click(p Vec) bool {
	if !c.Gesture.Click() {
		return false
	}
	c.selectAt(p)
	return true
}

// ForceGenerate seals the selection as it stands and fires completion.
func (c *Controller) ForceGenerate() bool {
	if !c.Sequence.ForceGenerate(c.Layout.Cuts) {
		return false
	}
	c.notifySelection()
	return true
}

// Scroll pans by a wheel or trackpad delta, under the same boundary policy
// as a drag. It never starts a gesture.
func (c *Controller) Scroll(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	c.Camera.ApplyDelta(dx, dy)
	c.notifyCamera()
}

func (c *Controller) Resize(viewport Size) {
	c.Camera.Resize(viewport)
	c.notifyCamera()
}

// Select toggles the cut by id. The board's number keys land here.
func (c *Controller) Select(cutID string) ToggleResult {
	cut, ok := c.Layout.Cut(cutID)
	if !ok {
		return ToggleIgnored
	}
	return c.toggle(cut)
}

func (c *Controller) selectAt(screen Vec) {
	cut, ok := c.Layout.CutAt(c.Camera.ToPlane(screen))
	if !ok {
		return
	}
	c.toggle(cut)
}

func (c *Controller) toggle(cut Cut) ToggleResult {
	res := c.Sequence.Toggle(cut)
	if res != ToggleIgnored {
		c.notifySelection()
	}
	return res
}

func (c *Controller) notifyCamera() {
	if c.OnCamera != nil {
		c.OnCamera()
	}
}

func (c *Controller) notifySelection() {
	if c.OnSelection != nil {
		c.OnSelection()
	}
}
