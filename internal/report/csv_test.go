package report

import (
	"math"
	"strings"
	"testing"
)

func TestCSVWriterFormat(t *testing.T) {
	w := &csvWriter{}
	w.WriteStrings("Figure 4A cell classes", []string{"L2/3", "Rorb"})
	w.WriteInts("Figure 4A n probed pairs < 100um", []int{12, 7})
	w.WriteFloats("Figure 4A connection probability < 100um", []float64{0.25, 0.5})

	want := "\"Figure 4A cell classes\",L2/3,Rorb\n" +
		"\"Figure 4A n probed pairs < 100um\",12,7\n" +
		"\"Figure 4A connection probability < 100um\",0.25,0.5\n"
	if w.String() != want {
		t.Fatalf("unexpected export:\n%s", w.String())
	}
	if w.Lines() != 3 {
		t.Fatalf("Lines() = %d, want 3", w.Lines())
	}
}

func TestCSVWriterFloatRendering(t *testing.T) {
	w := &csvWriter{}
	w.WriteFloats("distances", []float64{100e-6, 2e-5, math.NaN()})
	line := w.String()
	if !strings.Contains(line, "0.0001") || !strings.Contains(line, "2e-05") {
		t.Fatalf("unexpected float rendering: %s", line)
	}
	if !strings.Contains(line, "NaN") {
		t.Fatalf("NaN not rendered: %s", line)
	}
}

func TestCSVWriterEmptyValues(t *testing.T) {
	w := &csvWriter{}
	w.WriteFloats("empty row", nil)
	if got := w.String(); got != "\"empty row\"\n" {
		t.Fatalf("unexpected empty row: %q", got)
	}
}
