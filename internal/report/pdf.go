package report

import (
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"code-summarizer/internal/pipeline"
)

// PDFWriter accumulates summaries and renders a report document on Close:
// title page with statistics table, table of contents, then one section per
// file.
type PDFWriter struct {
	path  string
	title string
	files []pdfEntry
}

type pdfEntry struct {
	path    string
	summary string
}

func NewPDFWriter(path, title string) *PDFWriter {
	return &PDFWriter{path: path, title: title}
}

func (w *PDFWriter) WriteSummary(path, summary string) error {
	w.files = append(w.files, pdfEntry{path: path, summary: summary})
	return nil
}

func (w *PDFWriter) Close(stats pipeline.Stats) error {
	doc := fpdf.New("P", "mm", "Letter", "")
	doc.SetTitle(fmt.Sprintf("Code Analysis Report - %s", w.title), true)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 16)
	doc.MultiCell(0, 8, tr(fmt.Sprintf("Code Analysis Report - %s", w.title)), "", "C", false)
	doc.Ln(6)

	doc.SetFont("Helvetica", "", 10)
	doc.MultiCell(0, 5, "Generated on: "+time.Now().Format("2006-01-02 15:04:05"), "", "L", false)
	doc.Ln(6)

	w.statsTable(doc, stats)
	doc.Ln(8)

	doc.SetFont("Helvetica", "B", 13)
	doc.MultiCell(0, 7, "Table of Contents", "", "L", false)
	doc.SetFont("Helvetica", "", 10)
	for i, f := range w.files {
		doc.MultiCell(0, 5, tr(fmt.Sprintf("%d. %s", i+1, f.path)), "", "L", false)
	}

	for _, f := range w.files {
		doc.AddPage()
		doc.SetFont("Helvetica", "B", 13)
		doc.MultiCell(0, 7, tr("File: "+f.path), "", "L", false)
		doc.Ln(3)
		doc.SetFont("Helvetica", "", 10)
		doc.MultiCell(0, 5, tr(CleanMarkdown(f.summary)), "", "L", false)
	}

	if err := doc.OutputFileAndClose(w.path); err != nil {
		return fmt.Errorf("write pdf report: %w", err)
	}
	return nil
}

func (w *PDFWriter) statsTable(doc *fpdf.Fpdf, stats pipeline.Stats) {
	rows := [][2]string{
		{"Total Files", fmt.Sprintf("%d", stats.Total)},
		{"Successfully Processed", fmt.Sprintf("%d", stats.Summarized)},
		{"Skipped", fmt.Sprintf("%d", stats.Skipped)},
		{"Failed", fmt.Sprintf("%d", stats.Failed)},
	}

	doc.SetFont("Helvetica", "B", 11)
	doc.SetFillColor(230, 230, 230)
	doc.CellFormat(90, 7, "Processing Statistics", "1", 0, "C", true, 0, "")
	doc.CellFormat(40, 7, "", "1", 1, "C", true, 0, "")

	doc.SetFont("Helvetica", "", 10)
	for _, row := range rows {
		doc.CellFormat(90, 6, row[0], "1", 0, "L", false, 0, "")
		doc.CellFormat(40, 6, row[1], "1", 1, "C", false, 0, "")
	}
}
