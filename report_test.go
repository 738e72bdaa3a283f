package main

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRowFixedWidthColumns(t *testing.T) {
	cnt := Count{
		Lines: Metric{Active: true, Value: 2},
		Words: Metric{Active: true, Value: 2},
		Chars: Metric{Active: true, Value: 12},
	}

	assert.Equal(t, "       2       2      12 hello.txt\n", formatRow(cnt, "hello.txt"))
}

func TestFormatRowStdinHasNoNameColumn(t *testing.T) {
	cnt := Count{Lines: Metric{Active: true, Value: 5}}

	assert.Equal(t, "       5\n", formatRow(cnt, ""))
}

func TestFormatRowSkipsInactiveMetrics(t *testing.T) {
	cnt := Count{
		Words: Metric{Active: true, Value: 7},
	}

	// Lines is inactive and zero-valued, yet nothing of it may appear.
	assert.Equal(t, "       7 x\n", formatRow(cnt, "x"))
}

func TestFormatRowColumnOrder(t *testing.T) {
	cnt := Count{
		Lines:  Metric{Active: true, Value: 1},
		Words:  Metric{Active: true, Value: 2},
		Chars:  Metric{Active: true, Value: 3},
		Tokens: Metric{Active: true, Value: 4},
	}

	assert.Equal(t, "       1       2       3       4 f\n", formatRow(cnt, "f"))
}

func TestFormatRowWideValues(t *testing.T) {
	cnt := Count{Lines: Metric{Active: true, Value: 123456789}}

	// Values wider than the field push the column out instead of
	// truncating.
	assert.Equal(t, " 123456789 big\n", formatRow(cnt, "big"))
}

func TestReportStreamsRows(t *testing.T) {
	var out strings.Builder
	rep := newReport(&out, true)

	cnt := Count{Lines: Metric{Active: true, Value: 1}}
	require.NoError(t, rep.AddRow(cnt, "a"))
	require.NoError(t, rep.AddRow(cnt, "b"))

	expected := formatRow(cnt, "a") + formatRow(cnt, "b")
	assert.Equal(t, expected, out.String())
	assert.Equal(t, expected, rep.String())
	assert.Len(t, rep.Rows(), 2)
}

func TestReportBuffersWhenNotStreaming(t *testing.T) {
	var out strings.Builder
	rep := newReport(&out, false)

	cnt := Count{Words: Metric{Active: true, Value: 3}}
	require.NoError(t, rep.AddRow(cnt, "quiet"))

	assert.Empty(t, out.String())
	assert.Equal(t, formatRow(cnt, "quiet"), rep.String())
}

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, io.ErrClosedPipe
}

func TestReportSurfacesWriteFailures(t *testing.T) {
	rep := newReport(brokenWriter{}, true)

	err := rep.AddRow(Count{Lines: Metric{Active: true}}, "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, io.ErrClosedPipe)
}
