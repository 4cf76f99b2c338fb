package universe

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"badgelife/src/pkg"
)

/*
	Runner owns one Life engine and drives it
	All commands are executed one by one on the main loop goroutine,
	the engine itself is guarded by the area mutex so viewers can read it from their own goroutines
*/
type Runner struct {
	options Options
	state   struct {
		Status
		sync.Mutex
	}
	area struct {
		*Life
		sync.Mutex
	}
	stateCh   chan Status
	views     []Viewer
	templates map[string]Template
	controlCh chan func()
	closeCh   chan struct{}
	closeOnce sync.Once
}

//NewRunner creates the Runner instance and starts its main loop
//stateCh may be nil, otherwise every running state switch is written to it
func NewRunner(o *Options, stateCh chan Status) (*Runner, error) {
	if o == nil {
		o = &DefaultUniverseOptions
	}
	l, err := NewLifeSize(o.Width, o.Height)
	if err != nil {
		return nil, fmt.Errorf("universe: %w", err)
	}

	u := Runner{
		options:   *o,
		controlCh: make(chan func(), 1),
		closeCh:   make(chan struct{}),
		stateCh:   stateCh,
		templates: map[string]Template{},
	}
	u.options.Advanced = map[string]interface{}{
		"Engine":   "double buffer",
		"Topology": "torus",
	}
	for k, v := range o.Advanced {
		u.options.Advanced[k] = v
	}
	for _, tmpl := range BuiltinTemplates() {
		u.AddTemplate(tmpl)
	}
	u.state.Details = make(map[string]interface{})
	u.area.Life = l

	go u.mainLoop()
	return &u, nil
}

//AddTemplate adds the seeding template to the internal storage
//the universe can be populated with this template by call SettleTemplate
func (u *Runner) AddTemplate(tmpl Template) {
	u.templates[tmpl.Name] = tmpl
}

//Templates returns the names of the known templates, the board pattern included
func (u *Runner) Templates() []string {
	names := make([]string, 0, len(u.templates)+1)
	for k := range u.templates {
		names = append(names, k)
	}
	return append(names, BoardTemplateName)
}

//Settle settles the universe with data
//vc - array of x,y coordinates
func (u *Runner) Settle(vc [][]int) {
	u.area.Lock()
	u.settle(vc, Alive)
	u.area.Unlock()
	u.updateLiveCells()
	u.refreshView()
}

//SettleTemplate populates the universe with the seeding template
func (u *Runner) SettleTemplate(name string) error {
	if name == BoardTemplateName {
		u.area.Lock()
		SeedPattern(u.area.Life)
		u.area.Unlock()
	} else {
		tmpl, ok := u.templates[name]
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
		}
		u.area.Lock()
		u.settle(tmpl.Coordinates, Alive)
		u.area.Unlock()
	}
	u.updateLiveCells()
	u.refreshView()
	return nil
}

//SettleWithRandomData populates the universe with random data
func (u *Runner) SettleWithRandomData() {
	mode := u.mode()
	if mode != RunningStateManual && mode != RunningStateFinished {
		return
	}
	u.send(u.clear)
	u.send(func() {
		u.area.Lock()
		w, h := u.area.Width(), u.area.Height()
		for i := 0; i < w*h; i++ {
			u.area.Set(rand.IntN(h), rand.IntN(w), Alive)
		}
		u.area.Unlock()
		u.updateLiveCells()
		u.refreshView()
	})
}

//InverseCell inverses the cell state at point x, y
func (u *Runner) InverseCell(x int, y int) {
	if x < 0 || y < 0 || x >= u.options.Width || y >= u.options.Height {
		return
	}
	u.area.Lock()
	u.area.Toggle(y, x)
	u.area.Unlock()
	u.updateLiveCells()
	u.refreshView()
}

//RegisterViewer registers the viewer - the universe will call the viewer when the state is changed
func (u *Runner) RegisterViewer(v Viewer) {
	u.views = append(u.views, v)
	v.Register(u)
}

//StateCh returns the channel with the universe's status updates
func (u *Runner) StateCh() chan Status {
	return u.stateCh
}

//Status returns current universe status represented by Status struct
func (u *Runner) Status() Status {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.Status
}

//Options returns current universe configuration represented by Options struct
func (u *Runner) Options() Options {
	return u.options
}

//Read calls fn with the engine locked, fn must not keep the engine after returning
func (u *Runner) Read(fn func(l *Life)) {
	u.area.Lock()
	defer u.area.Unlock()
	fn(u.area.Life)
}

//Run starts the universe simulation, returns immediately
func (u *Runner) Run() {
	u.send(u.run)
}

//Stop stops the universe simulation, returns immediately
//the Status struct will be written the stateCh on finish
func (u *Runner) Stop() {
	u.send(u.stop)
}

//Step do one simulation step, returns immediately
//the Status struct will be written to the stateCh on start and on finish
func (u *Runner) Step() {
	u.send(u.step)
}

//Clear clears the universe (kill all cells and reset all counters), returns immediately
//the Status struct will be written to the stateCh on finish
func (u *Runner) Clear() {
	u.send(u.clear)
}

//Close stops the main loop, returns immediately
//commands sent after Close are dropped
func (u *Runner) Close() {
	u.closeOnce.Do(func() {
		close(u.closeCh)
	})
}

//mainLoop - the main cycle, should start as a goroutine
//waits for command and executes
func (u *Runner) mainLoop() {
	for {
		select {
		case cmd := <-u.controlCh:
			cmd()
		case <-u.closeCh:
			return
		}
	}
}

//send queues the command for the main loop, reports false when the runner is closed
func (u *Runner) send(cmd func()) bool {
	select {
	case u.controlCh <- cmd:
		return true
	case <-u.closeCh:
		return false
	}
}

//settle places the Cell at each x,y position, coordinates outside the area are skipped
func (u *Runner) settle(vc [][]int, c Cell) {
	for _, v := range vc {
		if len(v) < 2 || v[0] < 0 || v[1] < 0 || v[0] >= u.area.Width() || v[1] >= u.area.Height() {
			continue
		}
		u.area.Set(v[1], v[0], c)
	}
}

func (u *Runner) updateLiveCells() {
	u.area.Lock()
	n := u.area.LiveCells()
	u.area.Unlock()
	u.state.Lock()
	u.state.LiveCells = n
	u.state.Unlock()
}

func (u *Runner) mode() RunningState {
	u.state.Lock()
	defer u.state.Unlock()
	return u.state.RunningMode
}

//switchRunningState switch the state of the universe to RunningState
//also writes the new state to the stateCh to signal upper control software
func (u *Runner) switchRunningState(to RunningState) {
	u.publish(u.setRunningState(to))
}

func (u *Runner) setRunningState(to RunningState) Status {
	u.state.Lock()
	defer u.state.Unlock()
	u.state.RunningMode = to
	return u.state.Status
}

func (u *Runner) publish(st Status) {
	if u.stateCh != nil {
		u.stateCh <- st
	}
}

//run starts the universe simulation
//simulation will stop on Stop() calling or when the boundary conditions are reached
func (u *Runner) run() {
	u.switchRunningState(RunningStateRun)
	go func() {
		skipped := 0
		done := make(chan struct{}, 1)
		for {
			mode := u.mode()
			if mode != RunningStateRun && mode != RunningStateStep {
				break
			}
			if skipped > u.options.MaxSkippedTicks {
				pkg.LogWarn(pkg.ComponentUniverse, "too many skipped ticks, simulation finished",
					"skipped", skipped, "interval", u.options.Interval)
				u.send(func() { u.switchRunningState(RunningStateFinished) })
				break
			}
			//skip the tick if the universe is still in the calculation mode
			if mode != RunningStateStep {
				skipped = 0
				if !u.send(func() {
					u.step()
					done <- struct{}{}
				}) {
					return
				}
				select {
				case <-done:
				case <-u.closeCh:
					return
				}
			} else {
				skipped++
			}
			if u.options.Interval > 0 {
				time.Sleep(u.options.Interval)
			}
		}
	}()
}

//stop stops the universe running cycle
func (u *Runner) stop() {
	if u.mode() == RunningStateRun {
		u.switchRunningState(RunningStateManual)
	}
}

//step does the new one state calculation for entire universe
func (u *Runner) step() {
	finished := false
	u.state.Lock()
	rm := u.state.RunningMode
	u.state.IterationNum++
	iteration := u.state.IterationNum
	u.state.Unlock()
	maxIter := u.options.MaxSteps
	//viewers see the new state before it is published
	defer func() {
		to := rm
		if finished {
			pkg.LogInfo(pkg.ComponentUniverse, "simulation finished", "iteration", iteration)
			to = RunningStateFinished
		}
		st := u.setRunningState(to)
		u.refreshView()
		u.publish(st)
	}()

	if maxIter != 0 && iteration >= maxIter {
		finished = true
		return
	}
	u.switchRunningState(RunningStateStep)
	isAlive, changed := u.nextIteration()
	if !isAlive || !changed {
		finished = true
	}
}

//clear clears the universe data, reset all counters
func (u *Runner) clear() {
	u.state.Lock()
	u.area.Lock()
	u.state.IterationNum = 0
	u.state.LiveCells = 0
	u.state.IterationTime = 0
	u.area.Clear()
	u.area.Unlock()
	u.state.Unlock()
	st := u.setRunningState(RunningStateManual)
	u.refreshView()
	u.publish(st)
}

//nextIteration does one simulation cycle and updates the related metrics
func (u *Runner) nextIteration() (hasLiveEntities bool, changed bool) {
	u.area.Lock()
	start := time.Now()
	live, changed := u.area.Tick()
	elapsed := time.Since(start)
	u.area.Unlock()

	u.state.Lock()
	u.state.LiveCells = live
	u.state.IterationTime = elapsed
	iteration := u.state.IterationNum
	u.state.Unlock()
	pkg.LogDebug(pkg.ComponentUniverse, "step", "iteration", iteration, "live", live, "elapsed", elapsed)
	return live > 0, changed
}

//refreshView calls Refresh event for all registered views
func (u *Runner) refreshView() {
	for _, v := range u.views {
		v.Refresh()
	}
}
