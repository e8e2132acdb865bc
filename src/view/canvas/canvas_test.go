package canvas

import (
	"context"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/pkg/errors"

	"toruslife/src/view"
)

// countingStepper finishes after the given number of steps
type countingStepper struct {
	steps  int
	finish int
}

func (s *countingStepper) StepAndRender() bool {
	s.steps++
	return s.steps >= s.finish
}

func newTestCanvas(ctx context.Context, s Stepper) *Canvas {
	c := New(ctx, s, view.DefaultCanvasLayout)
	c.quit = func() bool { return false }
	return c
}

func TestUpdate_StepsUntilFinished(t *testing.T) {
	s := &countingStepper{finish: 3}
	c := newTestCanvas(context.Background(), s)
	for i := 1; i <= 3; i++ {
		if err := c.Update(); err != nil {
			t.Fatalf("update %d: unexpected error: %v", i, err)
		}
	}
	if err := c.Update(); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("expected termination after finish, got %v", err)
	}
	if s.steps != 3 {
		t.Fatalf("expected 3 steps, got %d", s.steps)
	}
}

func TestUpdate_ContextDone(t *testing.T) {
	s := &countingStepper{finish: 100}
	ctx, cancel := context.WithCancel(context.Background())
	c := newTestCanvas(ctx, s)
	if err := c.Update(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cancel()
	if err := c.Update(); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("expected termination on cancelled context, got %v", err)
	}
	if s.steps != 1 {
		t.Fatalf("expected no steps after cancel, got %d", s.steps)
	}
}

func TestUpdate_Quit(t *testing.T) {
	s := &countingStepper{finish: 100}
	c := newTestCanvas(context.Background(), s)
	c.quit = func() bool { return true }
	if err := c.Update(); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("expected termination on quit key, got %v", err)
	}
	if s.steps != 0 {
		t.Fatalf("expected no steps, got %d", s.steps)
	}
}
