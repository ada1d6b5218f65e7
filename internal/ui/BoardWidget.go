package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/widget"

	"StoryCuts/internal/state"
)

// BoardWidget is the pannable surface of cuts. It translates fyne pointer
// events into controller calls and draws whatever the controller holds.
type BoardWidget struct {
	widget.BaseWidget

	ctrl *state.Controller
	loop *FrameLoop
	last fyne.Position

	// focus hands keyboard focus to the board; set once it is in a window.
	focus func()

	// OnSelection runs after the board has redrawn a selection change.
	OnSelection func()
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ fyne.Tappable = (*BoardWidget)(nil)
var _ fyne.Scrollable = (*BoardWidget)(nil)
var _ fyne.Focusable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)
var _ desktop.Cursorable = (*BoardWidget)(nil)
var _ mobile.Touchable = (*BoardWidget)(nil)

// NewBoardWidget binds the widget to ctrl. A nil ticker uses fyne's
// animation clock for the drag redraw loop.
func NewBoardWidget(ctrl *state.Controller, ticker TickerFactory) *BoardWidget {
	b := &BoardWidget{ctrl: ctrl}
	b.loop = NewFrameLoop(ctrl.Dragging, b.Refresh, ticker)

	ctrl.OnCamera = func() {
		// While dragging the frame loop owns redraws.
		if !ctrl.Dragging() {
			b.Refresh()
		}
	}
	ctrl.OnDragChange = func(dragging bool) {
		if dragging {
			b.loop.Start()
			return
		}
		b.Refresh()
	}
	ctrl.OnSelection = func() {
		b.Refresh()
		if b.OnSelection != nil {
			b.OnSelection()
		}
	}

	b.ExtendBaseWidget(b)
	return b
}

func (b *BoardWidget) Controller() *state.Controller { return b.ctrl }

func vec(p fyne.Position) state.Vec {
	return state.Vec{X: float64(p.X), Y: float64(p.Y)}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.last = e.Position
	b.ctrl.Press(state.PointerMouse, vec(e.Position))
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.ctrl.Release(vec(e.Position))
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent)    {}
func (b *BoardWidget) MouseMoved(*desktop.MouseEvent) {}

func (b *BoardWidget) MouseOut() {
	if b.ctrl.Gesture.Kind() == state.PointerMouse {
		b.ctrl.Leave()
	}
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.last = e.Position
	b.ctrl.Move(vec(e.Position))
}

// DragEnd releases a press the driver did not close with MouseUp or TouchUp.
func (b *BoardWidget) DragEnd() {
	if b.ctrl.Gesture.Phase() != state.PhaseIdle {
		b.ctrl.Release(vec(b.last))
	}
}

// Tapped is the click path. Touch taps were already resolved on release.
func (b *BoardWidget) Tapped(e *fyne.PointEvent) {
	if b.focus != nil {
		b.focus()
	}
	if b.ctrl.Gesture.Kind() == state.PointerTouch {
		return
	}
	b.ctrl.Click(vec(e.Position))
}

// Scrolled pans with the wheel or trackpad, content following the delta
// like a drag would.
func (b *BoardWidget) Scrolled(e *fyne.ScrollEvent) {
	b.ctrl.Scroll(float64(e.Scrolled.DX), float64(e.Scrolled.DY))
}

func (b *BoardWidget) FocusGained() {}
func (b *BoardWidget) FocusLost()   {}

// TypedRune selects cuts by number: 1-9 for the first nine, 0 for the tenth.
func (b *BoardWidget) TypedRune(r rune) {
	if r < '0' || r > '9' {
		return
	}
	i := int(r - '1')
	if r == '0' {
		i = 9
	}
	if cuts := b.ctrl.Layout.Cuts; i < len(cuts) {
		b.ctrl.Select(cuts[i].ID)
	}
}

// TypedKey maps Enter to Generate.
func (b *BoardWidget) TypedKey(e *fyne.KeyEvent) {
	switch e.Name {
	case fyne.KeyReturn, fyne.KeyEnter:
		b.ctrl.ForceGenerate()
	}
}

func (b *BoardWidget) TouchDown(e *mobile.TouchEvent) {
	b.last = e.Position
	b.ctrl.Press(state.PointerTouch, vec(e.Position))
}

func (b *BoardWidget) TouchUp(e *mobile.TouchEvent) {
	b.ctrl.Release(vec(e.Position))
}

func (b *BoardWidget) TouchCancel(*mobile.TouchEvent) {
	b.ctrl.Leave()
}

func (b *BoardWidget) Cursor() desktop.Cursor {
	if b.ctrl.Dragging() {
		return desktop.CrosshairCursor
	}
	return desktop.PointerCursor
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	return newBoardRenderer(b)
}
