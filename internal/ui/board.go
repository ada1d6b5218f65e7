package ui

import (
	"image/color"
	"os"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"StoryCuts/internal/state"
)

var (
	boardBackground = color.NRGBA{R: 24, G: 26, B: 31, A: 255}
	cutPlaceholder  = color.NRGBA{R: 58, G: 62, B: 72, A: 255}
	cutBorder       = color.NRGBA{R: 90, G: 95, B: 110, A: 255}
	cutSelected     = color.NRGBA{R: 255, G: 200, B: 60, A: 255}
	connectorColor  = color.NRGBA{R: 173, G: 216, B: 230, A: 230}
	badgeColor      = color.NRGBA{R: 30, G: 60, B: 160, A: 255}
)

const badgeSize = 26

// cutView is the set of canvas objects drawing one cut.
type cutView struct {
	cut     state.Cut
	art     fyne.CanvasObject
	caption *canvas.Text
	frame   *canvas.Rectangle
	badge   *canvas.Circle
	rank    *canvas.Text
}

func newCutView(c state.Cut) *cutView {
	v := &cutView{cut: c}
	if _, err := os.Stat(c.Image); c.Image != "" && err == nil {
		img := canvas.NewImageFromFile(c.Image)
		img.FillMode = canvas.ImageFillContain
		v.art = img
	} else {
		v.art = canvas.NewRectangle(cutPlaceholder)
		v.caption = canvas.NewText(captionOf(c.Description), color.White)
		v.caption.TextSize = 12
	}

	v.frame = canvas.NewRectangle(color.Transparent)
	v.frame.StrokeColor = cutBorder
	v.frame.StrokeWidth = 1

	v.badge = canvas.NewCircle(badgeColor)
	v.badge.Hide()
	v.rank = canvas.NewText("", color.White)
	v.rank.TextStyle = fyne.TextStyle{Bold: true}
	v.rank.Alignment = fyne.TextAlignCenter
	v.rank.Hide()
	return v
}

func captionOf(desc string) string {
	line, _, _ := strings.Cut(desc, "\n")
	if r := []rune(line); len(r) > 40 {
		line = string(r[:39]) + "…"
	}
	return line
}

func (v *cutView) objects() []fyne.CanvasObject {
	objs := []fyne.CanvasObject{v.art}
	if v.caption != nil {
		objs = append(objs, v.caption)
	}
	return append(objs, v.frame, v.badge, v.rank)
}

func (v *cutView) place(topLeft state.Vec, rank int) {
	pos := fyne.NewPos(float32(topLeft.X), float32(topLeft.Y))
	size := fyne.NewSize(float32(v.cut.Size.W), float32(v.cut.Size.H))

	v.art.Move(pos)
	v.art.Resize(size)
	if v.caption != nil {
		v.caption.Move(pos.Add(fyne.NewPos(10, size.Height-24)))
		v.caption.Resize(v.caption.MinSize())
	}
	v.frame.Move(pos)
	v.frame.Resize(size)

	if rank == 0 {
		v.frame.StrokeColor = cutBorder
		v.frame.StrokeWidth = 1
		v.badge.Hide()
		v.rank.Hide()
		return
	}
	v.frame.StrokeColor = cutSelected
	v.frame.StrokeWidth = 3
	badgePos := pos.Add(fyne.NewPos(8, 8))
	v.badge.Move(badgePos)
	v.badge.Resize(fyne.NewSquareSize(badgeSize))
	v.rank.Text = strconv.Itoa(rank)
	v.rank.Move(badgePos)
	v.rank.Resize(fyne.NewSquareSize(badgeSize))
	v.badge.Show()
	v.rank.Show()
}

type boardRenderer struct {
	board      *BoardWidget
	background *canvas.Rectangle

	layout *state.Layout
	cuts   []*cutView
	lines  []*canvas.Line
	labels []*canvas.Text

	objects []fyne.CanvasObject
}

func newBoardRenderer(b *BoardWidget) *boardRenderer {
	r := &boardRenderer{
		board:      b,
		background: canvas.NewRectangle(boardBackground),
	}
	r.Refresh()
	return r
}

func (r *boardRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *boardRenderer) MinSize() fyne.Size { return fyne.NewSize(300, 300) }

func (r *boardRenderer) Destroy() {
	r.board.loop.Stop()
}

// Layout forwards the widget size to the camera, which redraws through
// the controller's camera hook.
func (r *boardRenderer) Layout(size fyne.Size) {
	r.background.Resize(size)
	viewport := state.Size{W: float64(size.Width), H: float64(size.Height)}
	ctrl := r.board.ctrl
	if ctrl.Camera.Viewport != viewport {
		ctrl.Resize(viewport)
		return
	}
	r.Refresh()
}

func (r *boardRenderer) Refresh() {
	ctrl := r.board.ctrl
	if r.layout != ctrl.Layout {
		r.rebuild(ctrl.Layout)
	}

	cam := *ctrl.Camera
	r.background.Resize(r.board.Size())
	for _, v := range r.cuts {
		rank, _ := ctrl.Sequence.Rank(v.cut.ID)
		v.place(cam.ToScreen(v.cut.Pos), rank)
	}

	frame := Connectors(ctrl.Sequence.Entries(), cam)
	r.drawConnectors(frame)

	r.collect()
	canvas.Refresh(r.board)
}

func (r *boardRenderer) rebuild(l *state.Layout) {
	r.layout = l
	r.cuts = make([]*cutView, len(l.Cuts))
	for i, c := range l.Cuts {
		r.cuts[i] = newCutView(c)
	}
}

func (r *boardRenderer) drawConnectors(f Frame) {
	var dashes []Segment
	for _, s := range f.Segments {
		dashes = append(dashes, Dashes(s)...)
	}

	for len(r.lines) < len(dashes) {
		line := canvas.NewLine(connectorColor)
		line.StrokeWidth = 3
		r.lines = append(r.lines, line)
	}
	r.lines = r.lines[:len(dashes)]
	for i, d := range dashes {
		r.lines[i].Position1 = fyne.NewPos(float32(d.From.X), float32(d.From.Y))
		r.lines[i].Position2 = fyne.NewPos(float32(d.To.X), float32(d.To.Y))
	}

	for len(r.labels) < len(f.Labels) {
		t := canvas.NewText("", connectorColor)
		t.TextStyle = fyne.TextStyle{Bold: true}
		t.TextSize = 16
		r.labels = append(r.labels, t)
	}
	r.labels = r.labels[:len(f.Labels)]
	for i, l := range f.Labels {
		r.labels[i].Text = l.Text
		r.labels[i].Move(fyne.NewPos(float32(l.Pos.X), float32(l.Pos.Y)))
		r.labels[i].Resize(r.labels[i].MinSize())
	}
}

func (r *boardRenderer) collect() {
	objs := []fyne.CanvasObject{r.background}
	for _, v := range r.cuts {
		objs = append(objs, v.objects()...)
	}
	for _, l := range r.lines {
		objs = append(objs, l)
	}
	for _, t := range r.labels {
		objs = append(objs, t)
	}
	r.objects = objs
}
