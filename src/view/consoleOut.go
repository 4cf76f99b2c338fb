package view

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"
	"periph.io/x/conn/v3/display"

	"badgelife/src/pkg"
	"badgelife/src/universe"
)

//ConsoleOut prints the progress of a non-interactive simulation
//when a display is attached every refresh also paints the field on it
type ConsoleOut struct {
	u         universe.Universe
	w         io.Writer
	au        aurora.Aurora
	display   display.Drawer
	renderer  *Renderer
	startTime time.Time
}

func NewConsoleOut(w io.Writer, colors bool) *ConsoleOut {
	return &ConsoleOut{w: w, au: aurora.NewAurora(colors)}
}

//AttachDisplay makes every refresh paint the field on d
func (c *ConsoleOut) AttachDisplay(d display.Drawer, r *Renderer) {
	c.display = d
	c.renderer = r
}

func (c *ConsoleOut) Refresh() {
	if c.display != nil {
		var err error
		c.u.Read(func(l *universe.Life) {
			err = c.renderer.DrawLife(c.display, l)
		})
		if err != nil {
			pkg.LogWarn(pkg.ComponentView, "draw failed", "display", c.display.String(), "err", err)
		}
	}

	st := c.u.Status()
	switch st.RunningMode {
	case universe.RunningStateFinished:
		totalTime := time.Since(c.startTime).Round(time.Millisecond)
		resultData := map[string]interface{}{
			"Last iteration": st.IterationNum,
			"Total time":     totalTime,
			"Live cells":     st.LiveCells,
		}
		fmt.Fprintln(c.w, c.au.Red("\nFinished:"))
		c.printHashData(resultData)
	case universe.RunningStateRun:
		if st.IterationNum%10 == 0 {
			fmt.Fprintf(c.w, "  Iterations done: %v\n", st.IterationNum)
		}
	}
}

func (c *ConsoleOut) Register(u universe.Universe) {
	c.u = u
	o := c.u.Options()
	fmt.Fprintln(c.w, c.au.Green("Running configuration:"))
	fmt.Fprintf(c.w, "  Dimension: %v x %v\n", o.Width, o.Height)
	fmt.Fprintf(c.w, "  Interval: %v\n", o.Interval)
	fmt.Fprintf(c.w, "  Max iterations: %v steps\n", o.MaxSteps)
	c.printHashData(o.Advanced)
}

func (c *ConsoleOut) Start() error {
	c.startTime = time.Now()
	fmt.Fprintln(c.w, c.au.Cyan("\nSimulation started..."))
	return nil
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		fmt.Fprintf(c.w, "  %s: %v\n", propName, d[propName])
	}
}
