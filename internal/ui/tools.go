package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"StoryCuts/internal/state"
)

// Actions are the toolbar's callbacks.
type Actions struct {
	Generate func()
	Restart  func()
	SavePDF  func()
}

// Toolbar holds the board controls and the selection counter.
type Toolbar struct {
	ctrl     *state.Controller
	status   *widget.Label
	generate *widget.Button
	save     *widget.Button
	object   fyne.CanvasObject
}

func NewToolbar(ctrl *state.Controller, actions Actions) *Toolbar {
	t := &Toolbar{ctrl: ctrl, status: widget.NewLabel("")}

	t.generate = widget.NewButtonWithIcon("Generate", theme.MediaPlayIcon(), actions.Generate)
	t.generate.Importance = widget.HighImportance
	t.save = widget.NewButtonWithIcon("Save PDF", theme.DocumentSaveIcon(), actions.SavePDF)
	t.save.Disable()

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.ViewRefreshIcon(), actions.Restart), // Restart
	)

	t.object = container.NewHBox(
		tb,
		widget.NewSeparator(),
		t.generate,
		t.save,
		layout.NewSpacer(),
		t.status,
	)
	t.Update()
	return t
}

func (t *Toolbar) Object() fyne.CanvasObject { return t.object }

// Update refreshes the counter and the Generate button from the controller.
func (t *Toolbar) Update() {
	seq := t.ctrl.Sequence
	text := fmt.Sprintf("Selected %d / %d", seq.Len(), seq.Limit)
	if seq.Sealed() {
		text += " (complete)"
		t.generate.Disable()
	} else {
		t.generate.Enable()
	}
	t.status.SetText(text)
}

func (t *Toolbar) SetExportReady(ready bool) {
	if ready {
		t.save.Enable()
		return
	}
	t.save.Disable()
}
