// Package report builds the connectivity manuscript figure and its
// accompanying CSV data export.
package report

import (
	"bytes"
	"fmt"
	"strconv"
)

// csvWriter accumulates the figure's data export. Each record is one line of
// the form `"<description>",v1,v2,...` — description double quoted, values
// in default numeric formatting, no header row and no further escaping.
type csvWriter struct {
	buf   bytes.Buffer
	lines int
}

func (w *csvWriter) writeLine(description string, values []string) {
	w.buf.WriteByte('"')
	w.buf.WriteString(description)
	w.buf.WriteByte('"')
	for _, v := range values {
		w.buf.WriteByte(',')
		w.buf.WriteString(v)
	}
	w.buf.WriteByte('\n')
	w.lines++
}

// WriteStrings appends a labeled row of string values.
func (w *csvWriter) WriteStrings(description string, values []string) {
	w.writeLine(description, values)
}

// WriteInts appends a labeled row of integer values.
func (w *csvWriter) WriteInts(description string, values []int) {
	cols := make([]string, len(values))
	for i, v := range values {
		cols[i] = strconv.Itoa(v)
	}
	w.writeLine(description, cols)
}

// WriteFloats appends a labeled row of float values using shortest
// round-trip formatting.
func (w *csvWriter) WriteFloats(description string, values []float64) {
	cols := make([]string, len(values))
	for i, v := range values {
		cols[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	w.writeLine(description, cols)
}

// Lines returns the number of records written so far.
func (w *csvWriter) Lines() int { return w.lines }

// Bytes returns the accumulated export.
func (w *csvWriter) Bytes() []byte { return w.buf.Bytes() }

// String implements fmt.Stringer for debugging.
func (w *csvWriter) String() string { return w.buf.String() }

var _ fmt.Stringer = (*csvWriter)(nil)
