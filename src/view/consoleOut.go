package view

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"

	"toruslife/src/simulation"
)

// ConsoleOut is the headless renderer printing the simulation progress
type ConsoleOut struct {
	w         io.Writer
	au        aurora.Aurora
	every     int
	startTime time.Time
}

// NewConsoleOut creates the ConsoleOut printing the progress every n generations
// colors are used only when colored is true
func NewConsoleOut(w io.Writer, every int, colored bool) *ConsoleOut {
	if every <= 0 {
		every = 1
	}
	return &ConsoleOut{w: w, au: aurora.NewAurora(colored), every: every}
}

// Start prints the running configuration
func (c *ConsoleOut) Start(o simulation.Options) {
	c.startTime = time.Now()
	_, _ = fmt.Fprintln(c.w, c.au.Bold("Running configuration:"))
	c.printHashData(map[string]interface{}{
		"Dimension":      fmt.Sprintf("%v x %v", o.Width, o.Height),
		"Interval":       o.Interval,
		"Max iterations": fmt.Sprintf("%v steps", o.MaxSteps),
		"Seed":           o.Seed,
	})
	_, _ = fmt.Fprintln(c.w, "\nSimulation started...")
}

func (c *ConsoleOut) Render(f simulation.Frame) {
	if f.Generation == 0 || f.Generation%c.every != 0 {
		return
	}
	_, _ = fmt.Fprintf(c.w, "  Iterations done: %v, live cells: %v\n", f.Generation, c.au.Green(f.LiveCells))
}

// Finish prints the simulation summary
func (c *ConsoleOut) Finish(st simulation.Status) {
	_, _ = fmt.Fprintln(c.w, c.au.Red("\nFinished:"))
	c.printHashData(map[string]interface{}{
		"Last iteration": st.Generation,
		"Total time":     time.Since(c.startTime).Round(time.Millisecond),
		"Live cells":     st.LiveCells,
	})
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		_, _ = fmt.Fprintf(c.w, "  %s: %v\n", c.au.Cyan(propName), d[propName])
	}
}
