package universe

import (
	"math"
	"strings"

	"github.com/pkg/errors"
)

// Cell is the state of a single grid position
type Cell uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

// default dimensions of the universe created by NewUniverse
const (
	DefWidth  = 64
	DefHeight = 64
)

// ErrInvalidDimensions is returned when the cell buffer doesn't match width*height
var ErrInvalidDimensions = errors.New("invalid universe dimensions")

func (c Cell) String() string {
	if c == Alive {
		return "Alive"
	}
	return "Dead"
}

// Universe is a toroidal Game of Life grid
// cells are stored in a single row-major buffer, the spare buffer receives the next generation on Tick
type Universe struct {
	width  int
	height int
	cells  []Cell
	next   []Cell
}

// NewUniverse creates the default universe seeded with ModuloSeed
func NewUniverse() *Universe {
	u, _ := NewUniverseWithSeed(DefWidth, DefHeight, ModuloSeed)
	return u
}

// NewUniverseWithCells creates the universe from an explicit cell buffer
// the buffer is copied, its length must be equal to width*height
func NewUniverseWithCells(width int, height int, cells []Cell) (*Universe, error) {
	if err := ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	if len(cells) != width*height {
		return nil, errors.Wrapf(ErrInvalidDimensions, "got %d cells for %dx%d grid", len(cells), width, height)
	}
	u := &Universe{
		width:  width,
		height: height,
		cells:  make([]Cell, len(cells)),
		next:   make([]Cell, len(cells)),
	}
	copy(u.cells, cells)
	return u, nil
}

// NewUniverseWithSeed creates the universe and populates it with the seeder
func NewUniverseWithSeed(width int, height int, seed Seeder) (*Universe, error) {
	if err := ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	return NewUniverseWithCells(width, height, seed(width, height))
}

// ValidateDimensions checks the dimensions are positive and width*height fits into int
func ValidateDimensions(width int, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Wrapf(ErrInvalidDimensions, "width %d and height %d must be positive", width, height)
	}
	if width > math.MaxInt/height {
		return errors.Wrapf(ErrInvalidDimensions, "%dx%d grid overflows the cell count", width, height)
	}
	return nil
}

func (u *Universe) Width() int {
	return u.width
}

func (u *Universe) Height() int {
	return u.height
}

// Cells returns a copy of the current generation in row-major order
func (u *Universe) Cells() []Cell {
	c := make([]Cell, len(u.cells))
	copy(c, u.cells)
	return c
}

// Cell returns the state of the cell at row, column
func (u *Universe) Cell(row int, column int) Cell {
	return u.cells[u.GetIndex(row, column)]
}

// GetIndex maps row, column to the buffer index
// coordinates outside the grid are wrapped around the torus
func (u *Universe) GetIndex(row int, column int) int {
	return wrap(row, u.height)*u.width + wrap(column, u.width)
}

// LiveNeighborCount counts alive cells among the 8 toroidal neighbours of row, column
func (u *Universe) LiveNeighborCount(row int, column int) int {
	count := 0
	for _, dr := range [...]int{u.height - 1, 0, 1} {
		for _, dc := range [...]int{u.width - 1, 0, 1} {
			if dr == 0 && dc == 0 {
				continue
			}
			//adding dimension-1 is the same as stepping back by one
			r := (wrap(row, u.height) + dr) % u.height
			c := (wrap(column, u.width) + dc) % u.width
			count += int(u.cells[r*u.width+c])
		}
	}
	return count
}

// Tick calculates the next generation into the spare buffer and swaps the buffers
// neighbours are always read from the current generation
func (u *Universe) Tick() {
	for row := 0; row < u.height; row++ {
		for column := 0; column < u.width; column++ {
			idx := u.GetIndex(row, column)
			u.next[idx] = nextState(u.cells[idx], u.LiveNeighborCount(row, column))
		}
	}
	u.cells, u.next = u.next, u.cells
}

// LiveCells calculates the count of live cells
func (u *Universe) LiveCells() int {
	live := 0
	for _, c := range u.cells {
		if c == Alive {
			live++
		}
	}
	return live
}

func (u *Universe) String() string {
	var b strings.Builder
	for row := 0; row < u.height; row++ {
		for _, c := range u.cells[row*u.width : (row+1)*u.width] {
			if c == Alive {
				b.WriteRune('◼')
			} else {
				b.WriteRune('◻')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// nextState applies the Conway rules to the single cell
func nextState(c Cell, liveNeighbours int) Cell {
	switch {
	case c == Alive && liveNeighbours < 2:
		return Dead
	case c == Alive && liveNeighbours > 3:
		return Dead
	case c == Alive:
		return Alive
	case liveNeighbours == 3:
		return Alive
	}
	return c
}

// wrap reduces v into [0, n), negative values wrap from the end
func wrap(v int, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
