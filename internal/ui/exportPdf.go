package ui

import (
	"errors"
	"io"
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"StoryCuts/internal/export"
	"StoryCuts/internal/state"
)

var errNoStory = errors.New("no story to export yet")

// SaveStoryPDF asks for a file and writes the panel's story to it.
func SaveStoryPDF(win fyne.Window, panel *StoryPanel) {
	entries, text, ok := panel.Story()
	if !ok {
		dialog.ShowError(errNoStory, win)
		return
	}

	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		if writer == nil {
			return
		}
		if err := writeStoryPDF(writer, entries, text); err != nil {
			log.Printf("[BOARD] PDF export failed: %v", err)
			dialog.ShowError(err, win)
			return
		}
		log.Printf("[BOARD] Story saved to %s", writer.URI())
	}, win)
	d.SetFileName("story.pdf")
	d.Show()
}

func writeStoryPDF(w io.WriteCloser, entries []state.Entry, text string) error {
	if err := export.StoryPDF(w, entries, text); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
