package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// TimetableRow is one time band across the week.
type TimetableRow struct {
	Time  string
	Cells map[string]string
}

// TimetableGrid describes a weekly timetable as day columns by time rows.
type TimetableGrid struct {
	Title    string
	Subtitle string
	Days     []string
	Rows     []TimetableRow
}

// PDFExporter renders weekly timetable grids into a landscape PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates the PDF document for a grid.
func (e *PDFExporter) Render(grid TimetableGrid) ([]byte, error) {
	if len(grid.Days) == 0 {
		return nil, fmt.Errorf("pdf requires at least one day column")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if grid.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, strings.ToUpper(grid.Title), "", 1, "C", false, 0, "")
	}
	if grid.Subtitle != "" {
		pdf.SetFont("Arial", "", 11)
		pdf.CellFormat(0, 7, grid.Subtitle, "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	timeWidth := 30.0
	colWidth := (277.0 - timeWidth) / float64(len(grid.Days))

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(timeWidth, 8, "Time", "1", 0, "C", false, 0, "")
	for _, day := range grid.Days {
		pdf.CellFormat(colWidth, 8, day, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, row := range grid.Rows {
		pdf.CellFormat(timeWidth, 9, row.Time, "1", 0, "C", false, 0, "")
		for _, day := range grid.Days {
			pdf.CellFormat(colWidth, 9, row.Cells[day], "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
