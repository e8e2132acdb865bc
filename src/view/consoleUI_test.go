package view

import (
	"strings"
	"testing"

	"toruslife/src/simulation"
	"toruslife/src/universe"
)

func testFrame(width int, height int, alive ...int) simulation.Frame {
	cells := make([]universe.Cell, width*height)
	for _, i := range alive {
		cells[i] = universe.Alive
	}
	return simulation.Frame{Width: width, Height: height, Cells: cells, LiveCells: len(alive)}
}

func TestFieldText(t *testing.T) {
	f := testFrame(3, 2, 1, 5)
	expected := ".#.\n..#"
	if got := fieldText(f, 10, 10, "#", "."); got != expected {
		t.Fatalf("expected %q, got %q", expected, got)
	}
}

func TestFieldText_Crop(t *testing.T) {
	f := testFrame(5, 4, 0, 4)
	got := fieldText(f, 3, 3, "#", ".")
	lines := strings.Split(got, "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", got)
	}
	if lines[0] != "#.." || lines[1] != "..." {
		t.Fatalf("unexpected cropped field %q", got)
	}
	if !strings.Contains(lines[2], "larger than the viewing area") {
		t.Fatalf("expected the crop warning, got %q", lines[2])
	}
}
