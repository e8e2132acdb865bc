package simulation

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/pkg/errors"

	"toruslife/src/universe"
)

// RunningState is the simulation running status at the concrete moment
type RunningState int

const (
	RunningStateManual   RunningState = 0x0
	RunningStateStep     RunningState = 0x1
	RunningStateRun      RunningState = 0x2
	RunningStateFinished RunningState = 0x3
)

func (s RunningState) String() string {
	switch s {
	case RunningStateManual:
		return "manual"
	case RunningStateStep:
		return "step"
	case RunningStateRun:
		return "running"
	case RunningStateFinished:
		return "finished"
	}
	return "unknown"
}

// Status represents the status of the simulation at concrete moment
type Status struct {
	Generation  int
	RunningMode RunningState
	LiveCells   int
	TickTime    time.Duration
}

// Frame is the generation snapshot passed to renderers
// Cells is shared between all renderers of the frame and must not be modified
type Frame struct {
	Generation int
	Width      int
	Height     int
	Cells      []universe.Cell
	LiveCells  int
}

// Index returns the Cells index of row, column within the frame
// it must agree with universe.GetIndex for in-range coordinates, the layouts are the same row-major buffer
func (f Frame) Index(row int, column int) int {
	return row*f.Width + column
}

// Renderer displays frames, it is called from the simulation loop after every tick
type Renderer interface {
	Render(f Frame)
}

// Simulation owns the universe and drives it
// the universe is touched only from the Run loop (or from the host frame callback calling StepAndRender)
type Simulation struct {
	options  Options
	seed     universe.Seeder
	universe *universe.Universe
	running  bool
	state    struct {
		Status
		frame Frame
		sync.Mutex
	}
	renderers []Renderer
	stateCh   chan Status
	controlCh chan func()
	closeCh   chan struct{}
	closeOnce sync.Once
}

// New creates the simulation, the universe is populated with the seed from options
// stateCh can be nil, otherwise the Status is written to it on every change
func New(o Options, stateCh chan Status) (*Simulation, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	seed, err := o.Seeder()
	if err != nil {
		return nil, err
	}
	s := &Simulation{
		options:   o,
		seed:      seed,
		stateCh:   stateCh,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan struct{}),
	}
	if err = s.reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// AddRenderer registers the renderer and renders the current frame to it
// should be called before Run
func (s *Simulation) AddRenderer(r Renderer) {
	s.renderers = append(s.renderers, r)
	r.Render(s.Frame())
}

// StateCh returns the channel with the simulation's status updates
func (s *Simulation) StateCh() chan Status {
	return s.stateCh
}

// Options returns the simulation configuration
func (s *Simulation) Options() Options {
	return s.options
}

// Status returns current simulation status
func (s *Simulation) Status() Status {
	s.state.Lock()
	defer s.state.Unlock()
	return s.state.Status
}

// Frame returns the last rendered frame
func (s *Simulation) Frame() Frame {
	s.state.Lock()
	defer s.state.Unlock()
	return s.state.frame
}

// Start switches the simulation to the running mode, returns immediately
func (s *Simulation) Start() {
	s.enqueue(s.start)
}

// Stop stops the running simulation, returns immediately
func (s *Simulation) Stop() {
	s.enqueue(s.stop)
}

// Step does one simulation step if the simulation isn't running, returns immediately
func (s *Simulation) Step() {
	s.enqueue(s.step)
}

// Reset stops the simulation and populates the universe with the initial seed again, returns immediately
func (s *Simulation) Reset() {
	s.enqueue(s.restart)
}

// Close stops the Run loop
func (s *Simulation) Close() {
	s.closeOnce.Do(func() {
		close(s.closeCh)
	})
}

// Run is the simulation loop, executes commands and steps the universe every Interval while running
// returns when ctx is done or Close is called
func (s *Simulation) Run(ctx context.Context) error {
	var ticker *time.Ticker
	if s.options.Interval > 0 {
		ticker = time.NewTicker(s.options.Interval)
		defer ticker.Stop()
	}
	for {
		//without the interval the steps are done as fast as possible between the commands
		if s.running && ticker == nil {
			select {
			case <-ctx.Done():
				return nil
			case <-s.closeCh:
				return nil
			case cmd := <-s.controlCh:
				cmd()
			default:
				s.runStep()
			}
			continue
		}
		var tickCh <-chan time.Time
		if s.running {
			tickCh = ticker.C
		}
		select {
		case <-ctx.Done():
			return nil
		case <-s.closeCh:
			return nil
		case cmd := <-s.controlCh:
			cmd()
		case <-tickCh:
			s.runStep()
		}
	}
}

// StepAndRender ticks the universe once and renders the new generation
// returns true when the simulation reached its boundary conditions
func (s *Simulation) StepAndRender() (finished bool) {
	prev := s.Frame()
	if s.options.MaxSteps > 0 && prev.Generation >= s.options.MaxSteps {
		return true
	}

	start := time.Now()
	s.universe.Tick()
	f := s.snapshot(prev.Generation + 1)

	s.state.Lock()
	s.state.Generation = f.Generation
	s.state.LiveCells = f.LiveCells
	s.state.TickTime = time.Since(start)
	s.state.frame = f
	s.state.Unlock()

	s.render(f)

	if s.options.MaxSteps > 0 && f.Generation >= s.options.MaxSteps {
		finished = true
	}
	if s.options.StopWhenStable && (f.LiveCells == 0 || slices.Equal(prev.Cells, f.Cells)) {
		finished = true
	}
	return
}

func (s *Simulation) enqueue(cmd func()) {
	select {
	case s.controlCh <- cmd:
	case <-s.closeCh:
	}
}

func (s *Simulation) start() {
	if s.running || s.Status().RunningMode == RunningStateFinished {
		return
	}
	s.running = true
	s.switchRunningState(RunningStateRun)
}

func (s *Simulation) stop() {
	if !s.running {
		return
	}
	s.running = false
	s.switchRunningState(RunningStateManual)
}

func (s *Simulation) step() {
	if s.running || s.Status().RunningMode == RunningStateFinished {
		return
	}
	s.switchRunningState(RunningStateStep)
	if s.StepAndRender() {
		s.switchRunningState(RunningStateFinished)
		return
	}
	s.switchRunningState(RunningStateManual)
}

// restart populates the universe again, the simulation is finished if the universe can't be created
func (s *Simulation) restart() {
	s.running = false
	if err := s.reset(); err != nil {
		s.switchRunningState(RunningStateFinished)
		return
	}
	s.switchRunningState(RunningStateManual)
}

// runStep is the step of the running simulation
func (s *Simulation) runStep() {
	if s.StepAndRender() {
		s.running = false
		s.switchRunningState(RunningStateFinished)
		return
	}
	s.publish(s.Status())
}

// reset creates the new universe from the seed and renders it as the generation 0
func (s *Simulation) reset() error {
	u, err := universe.NewUniverseWithSeed(s.options.Width, s.options.Height, s.seed)
	if err != nil {
		return errors.Wrap(err, "creating universe")
	}
	s.universe = u
	f := s.snapshot(0)

	s.state.Lock()
	s.state.Status = Status{LiveCells: f.LiveCells}
	s.state.frame = f
	s.state.Unlock()

	s.render(f)
	return nil
}

func (s *Simulation) snapshot(generation int) Frame {
	return Frame{
		Generation: generation,
		Width:      s.universe.Width(),
		Height:     s.universe.Height(),
		Cells:      s.universe.Cells(),
		LiveCells:  s.universe.LiveCells(),
	}
}

// switchRunningState switches the state of the simulation to RunningState
// also writes the new state to the stateCh to signal upper control software
func (s *Simulation) switchRunningState(to RunningState) {
	s.state.Lock()
	s.state.RunningMode = to
	st := s.state.Status
	s.state.Unlock()
	s.publish(st)
}

func (s *Simulation) publish(st Status) {
	if s.stateCh == nil {
		return
	}
	select {
	case s.stateCh <- st:
	case <-s.closeCh:
	}
}

// render calls Render for all registered renderers
func (s *Simulation) render(f Frame) {
	for _, r := range s.renderers {
		r.Render(f)
	}
}
