package main

import (
	"context"
	"math"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/integrii/flaggy"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"toruslife/src/logger"
	"toruslife/src/simulation"
	"toruslife/src/view"
	"toruslife/src/view/canvas"
)

const shutdownTimeout = 5 * time.Second

type EnvOptions struct {
	mode    string
	addr    string
	config  string
	every   int
	colored bool
}

type runner func(ctx context.Context, eo *EnvOptions, s *simulation.Simulation, log *logger.Logger) error

var modes = map[string]runner{
	"headless":    runHeadless,
	"interactive": runInteractive,
	"canvas":      runCanvas,
	"stream":      runStream,
}

func main() {
	log := logger.NewLogger()
	eo, o, err := initOptions()
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var stateCh chan simulation.Status
	if eo.mode == "headless" || eo.mode == "stream" {
		stateCh = make(chan simulation.Status, 10) //the buffered channel to getting the simulation status
	}
	s, err := simulation.New(o, stateCh)
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(2)
	}

	if err = modes[eo.mode](ctx, eo, s, log); err != nil {
		log.Errorf("%+v", err)
		os.Exit(1)
	}
}

// runHeadless runs the simulation printing the progress until it's finished or interrupted
func runHeadless(ctx context.Context, eo *EnvOptions, s *simulation.Simulation, _ *logger.Logger) error {
	out := view.NewConsoleOut(os.Stdout, eo.every, eo.colored)
	out.Start(s.Options())
	s.AddRenderer(out)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Run(gctx)
	})
	g.Go(func() error {
		defer s.Close()
		st, finished := waitFinished(gctx, s)
		if finished {
			out.Finish(st)
		}
		return nil
	})
	s.Start()
	return g.Wait()
}

// runInteractive runs the simulation in the terminal ui, the ui is controlled by keyboard
func runInteractive(ctx context.Context, _ *EnvOptions, s *simulation.Simulation, _ *logger.Logger) error {
	ui := view.NewConsoleUI(s)
	s.AddRenderer(ui)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Run(gctx)
	})
	ui.Start()
	s.Close()
	return g.Wait()
}

// runCanvas runs the simulation in the window, ebiten schedules the frames instead of the Run loop
func runCanvas(ctx context.Context, _ *EnvOptions, s *simulation.Simulation, log *logger.Logger) error {
	c := canvas.New(ctx, s, view.DefaultCanvasLayout)
	s.AddRenderer(c)
	log.Infof("opening the canvas for %dx%d universe", s.Options().Width, s.Options().Height)
	if err := c.Run("toruslife", s.Options().Interval); err != nil {
		return errors.Wrap(err, "canvas")
	}
	log.Infof("canvas closed at generation %d", s.Status().Generation)
	return nil
}

// runStream runs the simulation and serves its frames over websocket until interrupted
func runStream(ctx context.Context, eo *EnvOptions, s *simulation.Simulation, log *logger.Logger) error {
	stream := view.NewStream(log)
	s.AddRenderer(stream)
	out := view.NewConsoleOut(os.Stdout, eo.every, eo.colored)
	out.Start(s.Options())
	s.AddRenderer(out)

	srv := &http.Server{Addr: eo.addr, Handler: stream.Handler(), ReadHeaderTimeout: 5 * time.Second}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return s.Run(gctx)
	})
	g.Go(func() error {
		log.Infof("streaming frames on http://%s", eo.addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrapf(err, "listen on %s", eo.addr)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.Close()
		stream.Close()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return errors.Wrap(srv.Shutdown(shutdownCtx), "shutdown")
	})
	g.Go(func() error {
		//the last frame stays available to the clients after the simulation is finished
		if st, finished := waitFinished(gctx, s); finished {
			out.Finish(st)
			log.Info("simulation finished, press ^C to stop the server")
		}
		return nil
	})
	s.Start()
	return g.Wait()
}

// waitFinished reads the status channel until the simulation is finished or ctx is done
func waitFinished(ctx context.Context, s *simulation.Simulation) (simulation.Status, bool) {
	for {
		select {
		case <-ctx.Done():
			return s.Status(), false
		case st := <-s.StateCh():
			if st.RunningMode == simulation.RunningStateFinished {
				return st, true
			}
		}
	}
}

func initOptions() (eo *EnvOptions, o simulation.Options, err error) {
	modeNames := make([]string, 0, len(modes))
	for k := range modes {
		modeNames = append(modeNames, k)
	}
	sort.Strings(modeNames)

	eo = &EnvOptions{mode: "headless", addr: "127.0.0.1:8080", every: 10, colored: true}
	f := unsetFlags()

	flaggy.SetName("toruslife")
	flaggy.SetDescription("Conway's \"Life\" on a toroidal universe")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&f.Width, "x", "width", "Width of the universe")
	flaggy.Int(&f.Height, "y", "height", "Height of the universe")
	flaggy.Duration(&f.Interval, "i", "interval", "Simulation speed (interval between the steps), for example 150ms")
	flaggy.Int(&f.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 is unlimited")
	flaggy.Bool(&f.StopWhenStable, "", "stable", "Finish when the universe stops changing")
	flaggy.String(&f.Seed, "e", "seed", "Initial pattern ["+strings.Join(simulation.SeedNames(), "|")+"]")
	flaggy.Int64(&f.NoiseSeed, "", "noiseSeed", "Seed of the noise pattern")
	flaggy.Float64(&f.NoiseThreshold, "", "noiseThreshold", "Noise level above which the cell is alive")
	flaggy.String(&eo.mode, "m", "mode", "Renderer to use ["+strings.Join(modeNames, "|")+"]")
	flaggy.String(&eo.addr, "a", "addr", "Listen address of the stream mode")
	flaggy.String(&eo.config, "c", "config", "JSON file with the simulation options")
	flaggy.Int(&eo.every, "p", "progress", "Print the progress every N generations")
	flaggy.Bool(&eo.colored, "", "color", "Colored console output")

	flaggy.Parse()

	if _, ok := modes[eo.mode]; !ok {
		flaggy.ShowHelpAndExit("unknown mode")
	}

	o = simulation.DefaultOptions
	if eo.config != "" {
		if o, err = simulation.LoadOptions(eo.config); err != nil {
			return
		}
	}
	mergeOptions(&o, f)
	err = o.Validate()
	return
}

// unsetNoiseSeed marks the noise seed flag as not given
const unsetNoiseSeed = math.MinInt64

// unsetFlags returns the flag values which keep the configured options,
// zero is used where it isn't meaningful, sentinels elsewhere
func unsetFlags() simulation.Options {
	return simulation.Options{
		Interval:       -1,
		MaxSteps:       -1,
		NoiseSeed:      unsetNoiseSeed,
		NoiseThreshold: math.NaN(),
	}
}

// mergeOptions overrides o with the options set by flags
func mergeOptions(o *simulation.Options, f simulation.Options) {
	if f.Width > 0 {
		o.Width = f.Width
	}
	if f.Height > 0 {
		o.Height = f.Height
	}
	if f.Interval >= 0 {
		o.Interval = f.Interval
	}
	if f.MaxSteps >= 0 {
		o.MaxSteps = f.MaxSteps
	}
	if f.StopWhenStable {
		o.StopWhenStable = true
	}
	if f.Seed != "" {
		o.Seed = f.Seed
	}
	if f.NoiseSeed != unsetNoiseSeed {
		o.NoiseSeed = f.NoiseSeed
	}
	if !math.IsNaN(f.NoiseThreshold) {
		o.NoiseThreshold = f.NoiseThreshold
	}
}
