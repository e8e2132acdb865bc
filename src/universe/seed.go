package universe

import (
	"sort"

	"github.com/aquilax/go-perlin"
)

// Seeder builds the initial generation for the width x height grid
type Seeder func(width int, height int) []Cell

// Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name        string  //template name
	Descr       string  //template descr
	Coordinates [][]int //array of [row, column] coordinates
}

// noise parameters, see perlin.NewPerlin
const (
	noiseAlpha   = 2.
	noiseBeta    = 2.
	noiseOctaves = 3
	noiseScale   = 8.
)

var templates = map[string]Template{
	"block": {
		"block",
		"2x2 still life",
		[][]int{{1, 1}, {1, 2}, {2, 1}, {2, 2}},
	},
	"blinker": {
		"blinker",
		"period 2 oscillator",
		[][]int{{2, 1}, {2, 2}, {2, 3}},
	},
	"glider": {
		"glider",
		"moves one cell diagonally every 4 generations",
		[][]int{{0, 1}, {1, 2}, {2, 0}, {2, 1}, {2, 2}},
	},
	"sample": {
		"sample",
		"block and T-tetromino, the benchmark sample",
		[][]int{{1, 1}, {2, 1}, {1, 2}, {2, 2}, {3, 3}, {2, 4}, {3, 4}, {3, 5}},
	},
}

// ModuloSeed is the reference deterministic pattern: every second and every seventh cell is alive
func ModuloSeed(width int, height int) []Cell {
	cells := make([]Cell, width*height)
	for i := range cells {
		if i%2 == 0 || i%7 == 0 {
			cells[i] = Alive
		}
	}
	return cells
}

// TemplateSeed settles the template coordinates on the empty grid
// coordinates outside the grid are wrapped around
func TemplateSeed(t Template) Seeder {
	return func(width int, height int) []Cell {
		cells := make([]Cell, width*height)
		for _, v := range t.Coordinates {
			if len(v) != 2 {
				continue
			}
			cells[wrap(v[0], height)*width+wrap(v[1], width)] = Alive
		}
		return cells
	}
}

// NoiseSeed settles the grid from 2D perlin noise, cells with noise above threshold are alive
// the same seed always produces the same generation
func NoiseSeed(seed int64, threshold float64) Seeder {
	return func(width int, height int) []Cell {
		p := perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed)
		cells := make([]Cell, width*height)
		for row := 0; row < height; row++ {
			for column := 0; column < width; column++ {
				if p.Noise2D(float64(column)/noiseScale, float64(row)/noiseScale) > threshold {
					cells[row*width+column] = Alive
				}
			}
		}
		return cells
	}
}

// LookupTemplate returns the registered template by name
func LookupTemplate(name string) (Template, bool) {
	t, ok := templates[name]
	return t, ok
}

// TemplateNames returns sorted names of the registered templates
func TemplateNames() (names []string) {
	names = make([]string, 0, len(templates))
	for k := range templates {
		names = append(names, k)
	}
	sort.Strings(names)
	return
}
