// Package canvas draws the universe on an ebiten window, ebiten drives the frames.
package canvas

import (
	"context"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"toruslife/src/simulation"
	"toruslife/src/view"
)

// Stepper advances the simulation by one frame, it reports true when the simulation is finished.
type Stepper interface {
	StepAndRender() (finished bool)
}

// Canvas implements ebiten.Game: Update steps the simulation once per frame, Draw paints the last frame.
// Update and Draw are called from the same goroutine, so is Render (through StepAndRender).
type Canvas struct {
	ctx      context.Context
	stepper  Stepper
	layout   view.CanvasLayout
	frame    simulation.Frame
	finished bool
	quit     func() bool
}

// New creates the canvas, the window is closed when ctx is done
func New(ctx context.Context, s Stepper, layout view.CanvasLayout) *Canvas {
	return &Canvas{
		ctx:     ctx,
		stepper: s,
		layout:  layout,
		quit: func() bool {
			return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
		},
	}
}

func (c *Canvas) Render(f simulation.Frame) {
	c.frame = f
}

// Run opens the window sized to the universe and runs the ebiten loop until the window is closed,
// Escape is pressed, the context is done or the simulation is finished.
// interval sets the ticks per second, non positive interval ticks on every displayed frame.
func (c *Canvas) Run(title string, interval time.Duration) error {
	w, h := c.layout.SurfaceSize(c.frame.Width, c.frame.Height)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(title)
	if interval > 0 {
		ebiten.SetTPS(max(1, int(time.Second/interval)))
	} else {
		ebiten.SetTPS(ebiten.SyncWithFPS)
	}
	return ebiten.RunGame(c)
}

func (c *Canvas) Update() error {
	if c.finished || c.ctx.Err() != nil || c.quit() {
		return ebiten.Termination
	}
	c.finished = c.stepper.StepAndRender()
	return nil
}

func (c *Canvas) Draw(screen *ebiten.Image) {
	f := c.frame
	screen.Fill(color.White)

	for i := 0; i <= f.Width; i++ {
		x0, y0, x1, y1 := c.layout.GridLine(i, true, f.Width, f.Height)
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, view.GridColor, false)
	}
	for i := 0; i <= f.Height; i++ {
		x0, y0, x1, y1 := c.layout.GridLine(i, false, f.Width, f.Height)
		vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, view.GridColor, false)
	}

	for row := 0; row < f.Height; row++ {
		for column := 0; column < f.Width; column++ {
			x, y, side := c.layout.CellRect(row, column)
			vector.DrawFilledRect(screen, float32(x), float32(y), float32(side), float32(side),
				view.CellColor(f.Cells[f.Index(row, column)]), false)
		}
	}
}

func (c *Canvas) Layout(_, _ int) (int, int) {
	return c.layout.SurfaceSize(c.frame.Width, c.frame.Height)
}
