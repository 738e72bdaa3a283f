package main

import (
	"fmt"
	"io"
	"strings"
)

// countFieldWidth is the column width of the printed counts, matching the
// reference tool's convention.
const countFieldWidth = 7

// formatRow renders one report row: each active metric right-aligned in a
// fixed-width field, in the fixed order lines, words, chars, tokens, then
// the input's name when it has one. Inactive metrics produce no column at
// all. Every row ends with a newline.
func formatRow(cnt Count, name string) string {
	var b strings.Builder
	for _, m := range []Metric{cnt.Lines, cnt.Words, cnt.Chars, cnt.Tokens} {
		if m.Active {
			fmt.Fprintf(&b, " %*d", countFieldWidth, m.Value)
		}
	}
	if name != "" {
		b.WriteString(" ")
		b.WriteString(name)
	}
	b.WriteString("\n")
	return b.String()
}

// reportRow keeps a rendered row's ingredients around so alternate
// destinations (the PDF table) can re-render them.
type reportRow struct {
	Count Count
	Name  string
}

// report collects the rows of a run. When streaming, rows go to out the
// moment they are added, so counts appear as each input completes; either
// way the assembled text stays available for the file, clipboard and PDF
// destinations.
type report struct {
	out    io.Writer
	stream bool

	text strings.Builder
	rows []reportRow
}

func newReport(out io.Writer, stream bool) *report {
	return &report{out: out, stream: stream}
}

// AddRow appends one per-input row (or the total row, named "total").
func (r *report) AddRow(cnt Count, name string) error {
	r.rows = append(r.rows, reportRow{Count: cnt, Name: name})
	row := formatRow(cnt, name)
	r.text.WriteString(row)
	if r.stream {
		if _, err := io.WriteString(r.out, row); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}

// String returns the assembled report text.
func (r *report) String() string {
	return r.text.String()
}

// Rows returns the rows added so far, in input order.
func (r *report) Rows() []reportRow {
	return r.rows
}
