package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"StoryCuts/internal/state"
	"StoryCuts/internal/story"
)

const storyHint = "Tap the cuts in the order you want. The story is written once every cut is chosen, or press Generate."

// StoryPanel shows the story for the current session. Its methods must be
// called on the UI goroutine.
type StoryPanel struct {
	label  *widget.Label
	scroll *container.Scroll

	entries []state.Entry
	text    string
	ready   bool

	// OnReady reports whether a finished story is available for export.
	OnReady func(ready bool)
}

func NewStoryPanel() *StoryPanel {
	p := &StoryPanel{label: widget.NewLabel(storyHint)}
	p.label.Wrapping = fyne.TextWrapWord
	p.scroll = container.NewVScroll(p.label)
	p.scroll.SetMinSize(fyne.NewSize(320, 0))
	return p
}

func (p *StoryPanel) Object() fyne.CanvasObject { return p.scroll }

// Story returns the shown story and the selection it was written from.
func (p *StoryPanel) Story() ([]state.Entry, string, bool) {
	return p.entries, p.text, p.ready
}

func (p *StoryPanel) Clear() {
	p.entries, p.text = nil, ""
	p.label.SetText(storyHint)
	p.setReady(false)
}

func (p *StoryPanel) SetPending(entries []state.Entry) {
	p.entries, p.text = entries, ""
	p.label.SetText(story.PendingText)
	p.setReady(false)
}

func (p *StoryPanel) SetStory(text string) {
	p.text = text
	p.label.SetText(text)
	p.scroll.ScrollToTop()
	p.setReady(true)
}

func (p *StoryPanel) setReady(ready bool) {
	p.ready = ready
	if p.OnReady != nil {
		p.OnReady(ready)
	}
}

// sessionDisplay forwards orchestrator output to the panel from any
// goroutine. Output for a session that has been restarted is dropped.
type sessionDisplay struct {
	panel   *StoryPanel
	ctrl    *state.Controller
	session string
	entries []state.Entry
}

var _ story.Display = (*sessionDisplay)(nil)

func (d *sessionDisplay) current() bool { return d.ctrl.SessionID == d.session }

func (d *sessionDisplay) ShowPending() {
	fyne.Do(func() {
		if d.current() {
			d.panel.SetPending(d.entries)
		}
	})
}

func (d *sessionDisplay) ShowStory(text string) {
	fyne.Do(func() {
		if d.current() {
			d.panel.SetStory(text)
		}
	})
}
