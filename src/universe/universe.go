package universe

import (
	"errors"
	"time"
)

//ErrUnknownTemplate is returned when settling the universe with a template that was never added
var ErrUnknownTemplate = errors.New("unknown template")

//Universe is the control surface of a running simulation, used by viewers and the command line
type Universe interface {
	Status() Status
	Options() Options
	Read(fn func(l *Life))
	StateCh() chan Status
	AddTemplate(tmpl Template)
	SettleTemplate(name string) error
	SettleWithRandomData()
	Settle(vc [][]int)
	InverseCell(x int, y int)
	RegisterViewer(v Viewer)
	Run()
	Stop()
	Step()
	Clear()
	Close()
}

//Options represents the Universe's configurable options
type Options struct {
	Width           int
	Height          int
	Interval        time.Duration
	MaxSteps        int
	MaxSkippedTicks int
	Advanced        map[string]interface{} //descriptive details shown by viewers
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	IterationNum  int
	RunningMode   RunningState
	LiveCells     int
	IterationTime time.Duration
	Details       map[string]interface{}
}

//Viewer is the interface to any Viewer - the object who can display simulation data or control the engine
type Viewer interface {
	Refresh()
	Register(u Universe)
	Start() error
}

//Template represent the seeding template which can used to settle the universe with predefined data
type Template struct {
	Name        string  //template name
	Descr       string  //template descr
	Coordinates [][]int //array of [x,y] coordinates
}

//The universe running status at the concrete moment
type RunningState int

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefWidth              = 40
	DefHeight             = 15
	DefMaxSkippedTicks    = 5
)

const (
	RunningStateManual RunningState = iota
	RunningStateStep
	RunningStateRun
	RunningStateFinished
)

func (s RunningState) String() string {
	switch s {
	case RunningStateManual:
		return "waiting"
	case RunningStateStep:
		return "step"
	case RunningStateRun:
		return "running"
	case RunningStateFinished:
		return "finished"
	}
	return "unknown"
}

var DefaultUniverseOptions = Options{
	Width:           DefWidth,
	Height:          DefHeight,
	Interval:        DefSimulationInterval,
	MaxSteps:        DefMaxSteps,
	MaxSkippedTicks: DefMaxSkippedTicks,
}
