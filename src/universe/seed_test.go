package universe

import "testing"

func TestTemplateSeed(t *testing.T) {
	tmpl, ok := LookupTemplate("glider")
	if !ok {
		t.Fatalf("glider template is not registered")
	}
	u, err := NewUniverseWithSeed(6, 6, TemplateSeed(tmpl))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := u.LiveCells(); got != len(tmpl.Coordinates) {
		t.Fatalf("expected %d live cells, got %d", len(tmpl.Coordinates), got)
	}
	for _, rc := range tmpl.Coordinates {
		if u.Cell(rc[0], rc[1]) != Alive {
			t.Errorf("expected cell %v to be alive", rc)
		}
	}
}

func TestTemplateSeed_WrapsCoordinates(t *testing.T) {
	seed := TemplateSeed(Template{"edge", "", [][]int{{-1, -1}, {4, 5}, {1}}})
	cells := seed(4, 3)
	if len(cells) != 12 {
		t.Fatalf("expected 12 cells, got %d", len(cells))
	}
	//[-1,-1] wraps to the last cell, [4,5] to [1,1], the malformed pair is skipped
	if cells[11] != Alive || cells[5] != Alive {
		t.Fatalf("unexpected cells %v", cells)
	}
}

func TestTemplates_Block(t *testing.T) {
	tmpl, _ := LookupTemplate("block")
	u, err := NewUniverseWithSeed(6, 6, TemplateSeed(tmpl))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := u.Cells()
	u.Tick()
	after := u.Cells()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("block changed at index %d", i)
		}
	}
}

func TestNoiseSeed_Deterministic(t *testing.T) {
	a := NoiseSeed(42, 0)(32, 16)
	b := NoiseSeed(42, 0)(32, 16)
	if len(a) != 32*16 {
		t.Fatalf("expected %d cells, got %d", 32*16, len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise seed is not deterministic at index %d", i)
		}
	}
	//octave sum never reaches 3
	for _, c := range NoiseSeed(42, 3)(32, 16) {
		if c == Alive {
			t.Fatalf("expected empty grid above threshold")
		}
	}
}

func TestTemplateNames(t *testing.T) {
	names := TemplateNames()
	expected := []string{"blinker", "block", "glider", "sample"}
	if len(names) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, names)
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Fatalf("expected %v, got %v", expected, names)
		}
	}
}
