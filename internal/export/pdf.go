// Package export writes a finished session to a printable document.
package export

import (
	"fmt"
	"io"
	"math"

	"github.com/jung-kurt/gofpdf"

	"StoryCuts/internal/state"
)

const (
	pageMargin = 15.0
	pathTop    = 30.0
	pathHeight = 90.0
)

// StoryPDF renders the selection path, the ordered descriptions and the
// story to w as an A4 document.
func StoryPDF(w io.Writer, entries []state.Entry, story string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pageW, _ := pdf.GetPageSize()

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "StoryCuts", "", 1, "L", false, 0, "")

	drawPath(pdf, entries, pageW-2*pageMargin)

	pdf.SetY(pathTop + pathHeight + 8)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Order", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for i, e := range entries {
		pdf.MultiCell(0, 5, tr(fmt.Sprintf("%d. %s", i+1, e.Description)), "", "L", false)
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Story", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 6, tr(story), "", "L", false)

	return pdf.Output(w)
}

// drawPath scales the captured centres into the path box and connects them.
func drawPath(pdf *gofpdf.Fpdf, entries []state.Entry, width float64) {
	pdf.SetDrawColor(200, 200, 200)
	pdf.Rect(pageMargin, pathTop, width, pathHeight, "D")
	if len(entries) == 0 {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, e := range entries {
		minX = math.Min(minX, e.Center.X)
		minY = math.Min(minY, e.Center.Y)
		maxX = math.Max(maxX, e.Center.X)
		maxY = math.Max(maxY, e.Center.Y)
	}
	const inset = 8.0
	spanX := math.Max(maxX-minX, 1)
	spanY := math.Max(maxY-minY, 1)
	scale := math.Min((width-2*inset)/spanX, (pathHeight-2*inset)/spanY)

	toPage := func(p state.Vec) (float64, float64) {
		return pageMargin + inset + (p.X-minX)*scale, pathTop + inset + (p.Y-minY)*scale
	}

	pdf.SetDrawColor(100, 180, 255)
	pdf.SetLineWidth(0.6)
	pdf.SetDashPattern([]float64{2, 1.5}, 0)
	for i := 1; i < len(entries); i++ {
		x1, y1 := toPage(entries[i-1].Center)
		x2, y2 := toPage(entries[i].Center)
		pdf.Line(x1, y1, x2, y2)
	}
	pdf.SetDashPattern([]float64{}, 0)

	pdf.SetFillColor(30, 60, 160)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 8)
	for i, e := range entries {
		x, y := toPage(e.Center)
		pdf.Circle(x, y, 2.6, "F")
		label := fmt.Sprint(i + 1)
		pdf.Text(x-pdf.GetStringWidth(label)/2, y+1, label)
	}
	pdf.SetTextColor(0, 0, 0)
}
