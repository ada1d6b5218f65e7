package ui

import (
	"context"
	"log"
	"math/rand/v2"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"

	"StoryCuts/internal/state"
	"StoryCuts/internal/story"
)

// Options wires a board window to its session and story backend.
type Options struct {
	Controller *state.Controller
	Generator  story.Generator
	Timeout    time.Duration
	// NewRand seeds the layout for Restart.
	NewRand func() *rand.Rand
}

// Board is the assembled window content.
type Board struct {
	Widget  *BoardWidget
	Panel   *StoryPanel
	Toolbar *Toolbar
	Content fyne.CanvasObject

	opts Options
}

// NewBoard builds the board, story panel and toolbar and connects them to
// the controller. win may be nil in tests.
func NewBoard(win fyne.Window, opts Options, ticker TickerFactory) *Board {
	ctrl := opts.Controller
	b := &Board{opts: opts}
	b.Widget = NewBoardWidget(ctrl, ticker)
	b.Panel = NewStoryPanel()
	b.Toolbar = NewToolbar(ctrl, Actions{
		Generate: func() { ctrl.ForceGenerate() },
		Restart:  func() { b.restart(win) },
		SavePDF:  func() { SaveStoryPDF(win, b.Panel) },
	})
	b.Panel.OnReady = b.Toolbar.SetExportReady
	b.Widget.OnSelection = b.Toolbar.Update
	if win != nil {
		b.Widget.focus = func() { win.Canvas().Focus(b.Widget) }
	}

	ctrl.OnComplete = b.requestStory

	split := container.NewHSplit(b.Widget, b.Panel.Object())
	split.SetOffset(0.75)
	b.Content = container.NewBorder(b.Toolbar.Object(), nil, nil, nil, split)
	return b
}

func (b *Board) requestStory(entries []state.Entry) {
	ctrl := b.opts.Controller
	descs := make([]string, len(entries))
	for i, e := range entries {
		descs[i] = e.Description
	}
	display := &sessionDisplay{panel: b.Panel, ctrl: ctrl, session: ctrl.SessionID, entries: entries}
	orch := story.NewOrchestrator(b.opts.Generator, display, b.opts.Timeout)

	ctx := story.WithSession(context.Background(), ctrl.SessionID)
	go orch.Request(ctx, descs)
}

func (b *Board) restart(win fyne.Window) {
	if err := b.opts.Controller.Reset(b.opts.NewRand()); err != nil {
		log.Printf("[BOARD] Restart failed: %v", err)
		if win != nil {
			dialog.ShowError(err, win)
		}
		return
	}
	log.Printf("[BOARD] Restarted with session %s", b.opts.Controller.SessionID)
	b.Panel.Clear()
	b.Toolbar.Update()
}

// RunApp opens the board window and blocks until it is closed.
func RunApp(opts Options) {
	a := app.New()
	win := a.NewWindow("StoryCuts")
	win.Resize(fyne.NewSize(1280, 800))

	board := NewBoard(win, opts, nil)
	win.SetContent(board.Content)
	win.ShowAndRun()
}
