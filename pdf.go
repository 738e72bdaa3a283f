package main

import (
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMargin     = 10 // mm
	pdfLineHeight = 5  // mm
	pdfFontSize   = 10
)

// writeReportPDF renders the run's rows as a Courier table. The layout
// mirrors the text report exactly (same column order, same widths), with a
// header row naming the active metrics and a footer when inputs failed.
func writeReportPDF(rows []reportRow, modes Modes, summary Summary, outputPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()

	pageWidth, _ := pdf.GetPageSize()
	cellWidth := pageWidth - 2*pdfMargin

	pdf.SetFont("Courier", "B", pdfFontSize)
	pdf.MultiCell(cellWidth, pdfLineHeight, pdfHeader(modes), "", "L", false)

	pdf.SetFont("Courier", "", pdfFontSize)
	for _, row := range rows {
		line := strings.TrimSuffix(formatRow(row.Count, row.Name), "\n")
		pdf.MultiCell(cellWidth, pdfLineHeight, line, "", "L", false)
	}

	if summary.Failed > 0 {
		pdf.Ln(pdfLineHeight)
		pdf.SetFont("Helvetica", "I", pdfFontSize-1)
		pdf.MultiCell(cellWidth, pdfLineHeight,
			fmt.Sprintf("%d of %d inputs failed; see the run's error output.", summary.Failed, summary.Inputs),
			"", "L", false)
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("failed to save PDF to %s: %w", outputPath, err)
	}
	return nil
}

// pdfHeader names the active metric columns in the same fixed-width layout
// as the rows beneath them.
func pdfHeader(modes Modes) string {
	var b strings.Builder
	if modes.Lines {
		fmt.Fprintf(&b, " %*s", countFieldWidth, "lines")
	}
	if modes.Words {
		fmt.Fprintf(&b, " %*s", countFieldWidth, "words")
	}
	if modes.Chars {
		label := "bytes"
		if modes.CharUnit == UnitRunes {
			label = "chars"
		}
		fmt.Fprintf(&b, " %*s", countFieldWidth, label)
	}
	if modes.Tokens {
		fmt.Fprintf(&b, " %*s", countFieldWidth, "tokens")
	}
	return b.String()
}
