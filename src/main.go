package main

import (
	"context"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"time"

	"github.com/integrii/flaggy"
	"github.com/logrusorgru/aurora"

	"badgelife/src/pkg"
	"badgelife/src/sample"
	"badgelife/src/tilt"
	"badgelife/src/universe"
	"badgelife/src/view"
)

type EnvOptions struct {
	verbose bool
	json    bool
	noColor bool
}

type LifeOptions struct {
	interactive bool
	randomData  bool
	template    string
	draw        bool
}

type TiltOptions struct {
	deadzone float64
	friction int
	axis     string
	file     string
	port     string
	baud     int
	rate     time.Duration
	samples  int
	seed     uint64
}

func main() {
	eo := &EnvOptions{}
	lo := &LifeOptions{template: universe.SampleTemplate.Name}
	uo := universe.DefaultUniverseOptions
	to := &TiltOptions{
		deadzone: tilt.DefaultDeadzone,
		friction: tilt.DefaultFriction,
		axis:     "x",
		baud:     sample.DefaultBaud,
		rate:     100 * time.Millisecond,
		seed:     1,
	}

	lifeCmd, tiltCmd := initOptions(eo, lo, &uo, to)

	if eo.json {
		pkg.SetLogFormat(os.Stderr, pkg.LogFormatJSON)
	}
	if eo.verbose {
		pkg.SetLogLevel(slog.LevelDebug)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	switch {
	case tiltCmd.Used:
		err = runTilt(ctx, eo, to)
	case lifeCmd.Used:
		err = runLife(ctx, eo, lo, &uo)
	default:
		flaggy.ShowHelpAndExit("choose a demo")
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, aurora.Red(err))
		os.Exit(1)
	}
}

func initOptions(eo *EnvOptions, lo *LifeOptions, uo *universe.Options, to *TiltOptions) (lifeCmd *flaggy.Subcommand, tiltCmd *flaggy.Subcommand) {
	templateNames := make([]string, 0)
	for _, t := range universe.BuiltinTemplates() {
		templateNames = append(templateNames, t.Name)
	}
	templateNames = append(templateNames, universe.BoardTemplateName)
	sort.Strings(templateNames)

	flaggy.SetName("badgelife")
	flaggy.SetDescription("Game of Life and tilt demos of the SAMD badges")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Bool(&eo.verbose, "v", "verbose", "Log debug messages")
	flaggy.Bool(&eo.json, "", "json", "Log in JSON format")
	flaggy.Bool(&eo.noColor, "", "noColor", "Disable colored output")

	lifeCmd = flaggy.NewSubcommand("life")
	lifeCmd.Description = "\"The Life\" game simulation on a toroidal field"
	lifeCmd.Int(&uo.Width, "x", "width", "Width of a simulation field")
	lifeCmd.Int(&uo.Height, "y", "height", "Height of a simulation field")
	lifeCmd.Duration(&uo.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	lifeCmd.Int(&uo.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps")
	lifeCmd.Bool(&lo.interactive, "n", "interactive", "Start interactive mode")
	lifeCmd.Bool(&lo.randomData, "r", "random", "Settle with random data")
	lifeCmd.String(&lo.template, "t", "template", "Seeding template ["+strings.Join(templateNames, "|")+"]")
	lifeCmd.Bool(&lo.draw, "d", "draw", "Draw the field on every step")
	flaggy.AttachSubcommand(lifeCmd, 1)

	tiltCmd = flaggy.NewSubcommand("tilt")
	tiltCmd.Description = "Move the lit pixel of a 5 LED strip by tilting the badge"
	tiltCmd.Float64(&to.deadzone, "", "deadzone", "Readings within -deadzone..deadzone count as level (g)")
	tiltCmd.Int(&to.friction, "", "friction", "Detections in one direction needed before the pixel moves")
	tiltCmd.String(&to.axis, "a", "axis", "Accelerometer axis [x|y|z]")
	tiltCmd.String(&to.file, "f", "file", "Read samples from the file, - for stdin")
	tiltCmd.String(&to.port, "p", "port", "Read samples from the serial port")
	tiltCmd.Int(&to.baud, "b", "baud", "Serial port speed")
	tiltCmd.Duration(&to.rate, "", "rate", "Interval between simulated samples")
	tiltCmd.Int(&to.samples, "", "samples", "Stop after that many simulated samples, 0 runs until interrupted")
	tiltCmd.UInt64(&to.seed, "", "seed", "Seed of the simulated samples")
	flaggy.AttachSubcommand(tiltCmd, 1)

	flaggy.Parse()
	return
}

func runLife(ctx context.Context, eo *EnvOptions, lo *LifeOptions, uo *universe.Options) error {
	var stateCh chan universe.Status
	if !lo.interactive {
		stateCh = make(chan universe.Status, 10) //the buffered channel to getting the universe status
	}

	u, err := universe.NewRunner(uo, stateCh)
	if err != nil {
		return err
	}
	defer u.Close()

	var v universe.Viewer
	if lo.interactive {
		ui, err := view.NewConsoleUI()
		if err != nil {
			return err
		}
		v = ui
	} else {
		out := view.NewConsoleOut(os.Stdout, !eo.noColor)
		if lo.draw {
			o := u.Options()
			out.AttachDisplay(view.NewTerminal("field", os.Stdout, o.Width, o.Height, !eo.noColor, false), view.NewRenderer())
		}
		v = out
	}
	u.RegisterViewer(v)

	if lo.randomData {
		u.SettleWithRandomData()
	} else if err := u.SettleTemplate(lo.template); err != nil {
		return err
	}

	if lo.interactive {
		return v.Start()
	}

	if err := v.Start(); err != nil {
		return err
	}
	u.Run()
	for {
		select {
		case st := <-stateCh:
			if st.RunningMode == universe.RunningStateFinished {
				return nil
			}
		case <-ctx.Done():
			pkg.LogInfo(pkg.ComponentCLI, "interrupted", "iteration", u.Status().IterationNum)
			return nil
		}
	}
}

func runTilt(ctx context.Context, eo *EnvOptions, to *TiltOptions) error {
	axis, err := sample.ParseAxis(to.axis)
	if err != nil {
		return err
	}
	src, closer, err := openSource(to)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	strip := view.NewTerminal("strip", os.Stdout, tilt.Positions*4, 2, !eo.noColor, true)
	defer strip.Halt()
	r := view.NewRenderer()
	frame := make([]color.RGBA, tilt.Positions)

	d := tilt.Driver{
		Source: src,
		State:  tilt.New(to.deadzone, to.friction),
		Axis:   axis,
		Sink: func(pos int, hue uint8) error {
			frame = tilt.Frame(frame, pos, hue, tilt.DefaultSaturation, tilt.DefaultValue)
			return r.DrawStrip(strip, frame)
		},
	}
	err = d.Run(ctx)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func openSource(to *TiltOptions) (sample.Source, io.Closer, error) {
	switch {
	case to.port != "":
		s, err := sample.OpenSerial(to.port, to.baud, 0)
		if err != nil {
			return nil, nil, err
		}
		return s, s, nil
	case to.file == "-":
		return sample.NewReader(os.Stdin), nil, nil
	case to.file != "":
		f, err := os.Open(to.file)
		if err != nil {
			return nil, nil, err
		}
		return sample.NewReader(f), f, nil
	}
	sim := sample.NewSim(to.seed, to.rate)
	sim.Limit = to.samples
	return sim, nil, nil
}
