package view

import (
	"image/color"

	"toruslife/src/universe"
)

// presentation constants of the drawing surface
const (
	DefCellSize = 10
	DefPadding  = 2
)

var (
	GridColor  = color.RGBA{0xcc, 0xcc, 0xcc, 0xff}
	AliveColor = color.RGBA{0x11, 0x11, 0x11, 0xff}
	DeadColor  = color.RGBA{0xee, 0xee, 0xee, 0xff}
)

// CanvasLayout maps the grid to the pixels of a drawing surface
type CanvasLayout struct {
	CellSize int
	Padding  int
}

var DefaultCanvasLayout = CanvasLayout{CellSize: DefCellSize, Padding: DefPadding}

// SurfaceSize returns the width and height of the surface for the width x height grid
func (l CanvasLayout) SurfaceSize(width int, height int) (int, int) {
	return l.CellSize*(width+1) + 2*l.Padding, (l.CellSize+1)*(height+1) + 2*l.Padding
}

// CellRect returns the top left corner and the side of the cell square
func (l CanvasLayout) CellRect(row int, column int) (x int, y int, side int) {
	return column*l.CellSize + l.Padding + 1, row*l.CellSize + l.Padding + 1, l.CellSize - 1
}

// GridLine returns the ends of the i-th vertical or horizontal grid line
func (l CanvasLayout) GridLine(i int, vertical bool, width int, height int) (x0, y0, x1, y1 int) {
	p := i*l.CellSize + l.Padding
	if vertical {
		return p, l.Padding, p, l.CellSize*height + l.Padding
	}
	return l.Padding, p, l.CellSize*width + l.Padding, p
}

// CellColor maps the cell state to the fill color
func CellColor(c universe.Cell) color.RGBA {
	if c == universe.Alive {
		return AliveColor
	}
	return DeadColor
}
