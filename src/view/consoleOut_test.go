package view

import (
	"bytes"
	"strings"
	"testing"

	"toruslife/src/simulation"
)

func TestConsoleOut(t *testing.T) {
	var b bytes.Buffer
	c := NewConsoleOut(&b, 10, false)

	c.Start(simulation.DefaultOptions)
	for g := 0; g <= 20; g++ {
		c.Render(simulation.Frame{Generation: g, LiveCells: 100 + g})
	}
	c.Finish(simulation.Status{Generation: 20, LiveCells: 120})

	out := b.String()
	for _, expected := range []string{
		"Dimension: 64 x 64",
		"Max iterations: 1000 steps",
		"Seed: modulo",
		"Iterations done: 10, live cells: 110",
		"Iterations done: 20, live cells: 120",
		"Last iteration: 20",
		"Live cells: 120",
	} {
		if !strings.Contains(out, expected) {
			t.Errorf("expected %q in output:\n%s", expected, out)
		}
	}
	if strings.Count(out, "Iterations done") != 2 {
		t.Errorf("expected 2 progress lines:\n%s", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("unexpected escape sequences in uncolored output")
	}
}
