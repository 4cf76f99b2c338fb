package view

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"

	"badgelife/src/universe"
)

//recorder is a display that keeps the last frame
type recorder struct {
	bounds image.Rectangle
	last   *image.RGBA
	draws  int
}

func (r *recorder) String() string          { return "recorder" }
func (r *recorder) Halt() error             { return nil }
func (r *recorder) ColorModel() color.Model { return color.RGBAModel }
func (r *recorder) Bounds() image.Rectangle { return r.bounds }
func (r *recorder) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	r.draws++
	r.last = image.NewRGBA(r.bounds)
	for y := dst.Min.Y; y < dst.Max.Y; y++ {
		for x := dst.Min.X; x < dst.Max.X; x++ {
			r.last.Set(x, y, src.At(sp.X+x-dst.Min.X, sp.Y+y-dst.Min.Y))
		}
	}
	return nil
}

func TestRenderer_DrawLife(t *testing.T) {
	l, err := universe.NewLifeSize(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	l.Set(1, 2, universe.Alive)
	r := NewRenderer()

	d := &recorder{bounds: image.Rect(0, 0, 3, 2)}
	if err := r.DrawLife(d, l); err != nil {
		t.Fatal(err)
	}
	if d.last.RGBAAt(2, 1) != DefLiveColor || d.last.RGBAAt(0, 0) != DefDeadColor {
		t.Fatal("cells painted with the wrong colours")
	}

	scaled := &recorder{bounds: image.Rect(0, 0, 6, 4)}
	r.Live = color.White
	if err := r.DrawLife(scaled, l); err != nil {
		t.Fatal(err)
	}
	white := color.RGBA{0xff, 0xff, 0xff, 0xff}
	for _, p := range []image.Point{{4, 2}, {5, 2}, {4, 3}, {5, 3}} {
		if scaled.last.RGBAAt(p.X, p.Y) != white {
			t.Errorf("scaled pixel %v isn't live", p)
		}
	}
	if scaled.last.RGBAAt(3, 2) != DefDeadColor {
		t.Error("live cell bled into its neighbour")
	}
}

func TestRenderer_DrawStrip(t *testing.T) {
	var b bytes.Buffer
	term := NewTerminal("strip", &b, 10, 2, false, false)
	lit := color.RGBA{R: 32, A: 0xff}
	off := color.RGBA{A: 0xff}
	pixels := []color.RGBA{off, off, lit, off, off}
	if err := NewRenderer().DrawStrip(term, pixels); err != nil {
		t.Fatal(err)
	}
	if got, want := b.String(), "    ██    \n"; got != want {
		t.Fatalf("strip %q, want %q", got, want)
	}
}

func TestConsoleOut(t *testing.T) {
	o := universe.DefaultUniverseOptions
	o.Width, o.Height = 4, 4
	o.Interval = 0
	stateCh := make(chan universe.Status, 10)
	u, err := universe.NewRunner(&o, stateCh)
	if err != nil {
		t.Fatal(err)
	}
	defer u.Close()

	var out bytes.Buffer
	var frames bytes.Buffer
	c := NewConsoleOut(&out, false)
	c.AttachDisplay(NewTerminal("field", &frames, 4, 4, false, false), NewRenderer())
	u.RegisterViewer(c)
	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	if err := u.SettleTemplate("block"); err != nil {
		t.Fatal(err)
	}
	u.Run()
	for st := range stateCh {
		if st.RunningMode == universe.RunningStateFinished {
			break
		}
	}
	u.Close()

	text := out.String()
	for _, want := range []string{"Dimension: 4 x 4", "Engine: double buffer", "Finished:", "Live cells: 4"} {
		if !strings.Contains(text, want) {
			t.Errorf("output misses %q:\n%s", want, text)
		}
	}
	if !strings.Contains(frames.String(), " ▄▄ \n ▀▀ \n") {
		t.Errorf("no block frame in %q", frames.String())
	}
}
