package ui

import (
	"math/rand/v2"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/driver/mobile"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"StoryCuts/internal/state"
)

func testSettings(n int, policy state.SelectionPolicy) state.Settings {
	bindings := make([]state.CutBinding, n)
	for i := range bindings {
		bindings[i] = state.CutBinding{Description: string(rune('A' + i))}
	}
	return state.Settings{
		Layout: state.LayoutParams{
			Bounds:   state.Size{W: 3000, H: 1500},
			Margin:   200,
			Spacing:  10,
			CutSize:  state.Size{W: 350, H: 200},
			Count:    n,
			Bindings: bindings,
		},
		CameraPolicy:    state.PolicyClamp,
		CameraPadding:   70,
		SelectionPolicy: policy,
		TapTolerance:    10,
	}
}

func newTestBoard(t *testing.T, n int, policy state.SelectionPolicy) (*BoardWidget, *tickerRecorder) {
	t.Helper()
	test.NewTempApp(t)

	ctrl, err := state.NewController(rand.New(rand.NewPCG(3, 5)), testSettings(n, policy), state.Size{W: 1280, H: 800})
	require.NoError(t, err)

	rec := &tickerRecorder{}
	b := NewBoardWidget(ctrl, rec.factory)
	b.Resize(fyne.NewSize(1280, 800))
	return b, rec
}

func screenPos(b *BoardWidget, c state.Cut) fyne.Position {
	p := b.ctrl.Camera.ToScreen(c.Center())
	return fyne.NewPos(float32(p.X), float32(p.Y))
}

func mouseEvent(p fyne.Position) *desktop.MouseEvent {
	return &desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: p}, Button: desktop.MouseButtonPrimary}
}

func click(b *BoardWidget, p fyne.Position) {
	b.MouseDown(mouseEvent(p))
	b.MouseUp(mouseEvent(p))
	b.Tapped(&fyne.PointEvent{Position: p})
}

func drag(b *BoardWidget, from, to fyne.Position) {
	b.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: to}, Dragged: fyne.NewDelta(to.X-from.X, to.Y-from.Y)})
}

func TestBoardWidgetClickSelects(t *testing.T) {
	b, _ := newTestBoard(t, 3, state.PolicyAppendOnly)
	cut := b.ctrl.Layout.Cuts[2]

	click(b, screenPos(b, cut))

	rank, ok := b.ctrl.Sequence.Rank(cut.ID)
	assert.True(t, ok)
	assert.Equal(t, 1, rank)
}

func TestBoardWidgetRightButtonIgnored(t *testing.T) {
	b, _ := newTestBoard(t, 3, state.PolicyAppendOnly)
	p := screenPos(b, b.ctrl.Layout.Cuts[0])

	b.MouseDown(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: p}, Button: desktop.MouseButtonSecondary})

	assert.Equal(t, state.PhaseIdle, b.ctrl.Gesture.Phase())
}

func TestBoardWidgetDragPansWithoutSelecting(t *testing.T) {
	b, rec := newTestBoard(t, 3, state.PolicyAppendOnly)
	cut := b.ctrl.Layout.Cuts[0]
	start := screenPos(b, cut)
	end := start.Add(fyne.NewPos(40, 0))
	before := b.ctrl.Camera.Pos

	b.MouseDown(mouseEvent(start))
	drag(b, start, end)
	require.Len(t, rec.tickers, 1)
	assert.True(t, b.loop.Running())

	b.DragEnd()
	b.MouseUp(mouseEvent(end))
	b.Tapped(&fyne.PointEvent{Position: end})

	assert.InDelta(t, before.X-40, b.ctrl.Camera.Pos.X, 1e-3)
	assert.Equal(t, 0, b.ctrl.Sequence.Len())

	// The next frame sees the drag is over and stops the loop.
	rec.last().tick()
	assert.False(t, b.loop.Running())
}

func TestBoardWidgetTouchTap(t *testing.T) {
	b, _ := newTestBoard(t, 3, state.PolicyToggle)
	cut := b.ctrl.Layout.Cuts[1]
	p := screenPos(b, cut)

	b.TouchDown(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: p}})
	b.TouchUp(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: p}})
	// The driver's synthetic tap after a touch must not toggle again.
	b.Tapped(&fyne.PointEvent{Position: p})

	rank, ok := b.ctrl.Sequence.Rank(cut.ID)
	assert.True(t, ok)
	assert.Equal(t, 1, rank)
}

func TestBoardWidgetTouchDragIsNotATap(t *testing.T) {
	b, _ := newTestBoard(t, 3, state.PolicyAppendOnly)
	p := screenPos(b, b.ctrl.Layout.Cuts[1])
	end := p.Add(fyne.NewPos(0, 30))

	b.TouchDown(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: p}})
	drag(b, p, end)
	b.TouchUp(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: end}})

	assert.Equal(t, 0, b.ctrl.Sequence.Len())
}

func TestBoardWidgetMouseOutEndsDrag(t *testing.T) {
	b, _ := newTestBoard(t, 3, state.PolicyAppendOnly)
	p := fyne.NewPos(600, 400)

	b.MouseDown(mouseEvent(p))
	drag(b, p, p.Add(fyne.NewPos(20, 20)))
	assert.True(t, b.ctrl.Dragging())
	assert.Equal(t, desktop.CrosshairCursor, b.Cursor())

	b.MouseOut()
	assert.False(t, b.ctrl.Dragging())
	assert.Equal(t, desktop.PointerCursor, b.Cursor())
}

func TestBoardRendererDrawsConnectors(t *testing.T) {
	b, _ := newTestBoard(t, 3, state.PolicyAppendOnly)
	r := test.WidgetRenderer(b).(*boardRenderer)
	assert.Empty(t, r.lines)

	click(b, screenPos(b, b.ctrl.Layout.Cuts[1]))
	assert.Empty(t, r.lines)
	assert.Empty(t, r.labels)

	click(b, screenPos(b, b.ctrl.Layout.Cuts[0]))
	assert.NotEmpty(t, r.lines)
	require.Len(t, r.labels, 2)
	assert.Equal(t, "1", r.labels[0].Text)
	assert.Equal(t, "2", r.labels[1].Text)

	var texts []string
	for _, o := range r.Objects() {
		if txt, ok := o.(*canvas.Text); ok && txt.Visible() {
			texts = append(texts, txt.Text)
		}
	}
	assert.Contains(t, texts, "2")
}

func TestBoardRendererRebuildsOnReset(t *testing.T) {
	b, _ := newTestBoard(t, 3, state.PolicyAppendOnly)
	r := test.WidgetRenderer(b).(*boardRenderer)
	first := r.layout

	require.NoError(t, b.ctrl.Reset(rand.New(rand.NewPCG(7, 9))))

	assert.NotSame(t, first, r.layout)
	assert.Same(t, b.ctrl.Layout, r.layout)
	assert.Len(t, r.cuts, 3)
}

func TestBoardRendererLayoutResizesCamera(t *testing.T) {
	b, _ := newTestBoard(t, 3, state.PolicyAppendOnly)

	b.Resize(fyne.NewSize(900, 600))

	assert.Equal(t, state.Size{W: 900, H: 600}, b.ctrl.Camera.Viewport)
}

func artPos(r *boardRenderer, i int) fyne.Position {
	return r.cuts[i].art.Position()
}

func assertPos(t *testing.T, want, got fyne.Position) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-2)
	assert.InDelta(t, want.Y, got.Y, 1e-2)
}

func TestBoardWidgetShortTouchPanRedraws(t *testing.T) {
	b, rec := newTestBoard(t, 3, state.PolicyAppendOnly)
	r := test.WidgetRenderer(b).(*boardRenderer)
	before := artPos(r, 0)

	// A spot inside the plane margin, away from every cut.
	p := b.ctrl.Camera.ToScreen(state.Vec{X: 5, Y: 5})
	start := fyne.NewPos(float32(p.X), float32(p.Y))
	end := start.Add(fyne.NewPos(4, 0))

	b.TouchDown(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: start}})
	drag(b, start, end)
	assert.Equal(t, before, artPos(r, 0), "drag frames are left to the loop")

	b.TouchUp(&mobile.TouchEvent{PointEvent: fyne.PointEvent{Position: end}})

	assertPos(t, before.Add(fyne.NewPos(4, 0)), artPos(r, 0))
	assert.Equal(t, 0, b.ctrl.Sequence.Len())
	rec.last().tick()
	assert.False(t, b.loop.Running())
}

func TestBoardWidgetScrollPans(t *testing.T) {
	b, _ := newTestBoard(t, 3, state.PolicyAppendOnly)
	r := test.WidgetRenderer(b).(*boardRenderer)
	before := artPos(r, 0)

	b.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.NewDelta(0, -25)})

	assertPos(t, before.Add(fyne.NewPos(0, -25)), artPos(r, 0))
}

func TestBoardWidgetNumberKeysSelect(t *testing.T) {
	b, _ := newTestBoard(t, 3, state.PolicyAppendOnly)

	b.TypedRune('2')
	b.TypedRune('x')
	b.TypedRune('9')
	b.TypedRune('1')

	assert.Equal(t, []string{"B", "A"}, b.ctrl.Sequence.Descriptions())

	b.TypedKey(&fyne.KeyEvent{Name: fyne.KeyReturn})
	assert.True(t, b.ctrl.Sequence.Sealed())
}
