// Package render turns an aggregated report into downloadable formats.
// This file implements the PDF renderer using gofpdf.
package render

import (
	"bytes"
	"fmt"

	"github.com/gaurav-prasanna/seoprobe/core/report"
	"github.com/jung-kurt/gofpdf"
)

// Line kinds produced by layout.
const (
	lineHeading = iota
	lineBody
	lineBreak
)

// pdfLine is one drawing instruction for the PDF.
type pdfLine struct {
	Kind int
	Text string
}

// PDFRenderer renders a report as an A4 PDF.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render draws each section as a bold heading followed by its body lines.
func (r *PDFRenderer) Render(rep *report.Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Core fonts are cp1252; translate UTF-8 text before drawing.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, ln := range layout(rep) {
		switch ln.Kind {
		case lineHeading:
			pdf.SetFont("Helvetica", "B", 14)
			pdf.CellFormat(0, 10, tr(ln.Text), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 12)
		case lineBody:
			pdf.MultiCell(0, 8, tr(ln.Text), "", "L", false)
		case lineBreak:
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

// ContentType returns the MIME type for PDF output.
func (r *PDFRenderer) ContentType() string {
	return "application/pdf"
}

// layout flattens the report into heading, body and break lines.
func layout(rep *report.Report) []pdfLine {
	var lines []pdfLine
	body := func(format string, args ...any) {
		lines = append(lines, pdfLine{Kind: lineBody, Text: fmt.Sprintf(format, args...)})
	}

	for _, sec := range rep.Sections {
		lines = append(lines, pdfLine{Kind: lineHeading, Text: sec.Name})

		switch sec.Value.Kind() {
		case report.KindMapping:
			for _, e := range sec.Value.Entries() {
				switch e.Value.Kind() {
				case report.KindList:
					body("%s:", e.Key)
					for _, item := range e.Value.List() {
						body("  - %s", item)
					}
				case report.KindMapping:
					body("%s:", e.Key)
					for _, sub := range e.Value.Entries() {
						body("  - %s: %s", sub.Key, sub.Value.String())
					}
				default:
					body("%s: %s", e.Key, e.Value.String())
				}
			}
		case report.KindList:
			for _, item := range sec.Value.List() {
				body("- %s", item)
			}
		default:
			body("%s", sec.Value.String())
		}

		lines = append(lines, pdfLine{Kind: lineBreak})
	}
	return lines
}
