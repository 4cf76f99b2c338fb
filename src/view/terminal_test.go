package view

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"

	"periph.io/x/conn/v3/display"
)

var _ display.Drawer = (*Terminal)(nil)

func TestTerminal_Glyphs(t *testing.T) {
	var b bytes.Buffer
	term := NewTerminal("test", &b, 4, 3, false, false)
	src := image.NewRGBA(image.Rect(0, 0, 4, 3))
	red := color.RGBA{R: 0xff, A: 0xff}
	src.SetRGBA(0, 0, red) //upper
	src.SetRGBA(1, 1, red) //lower
	src.SetRGBA(2, 0, red) //both
	src.SetRGBA(2, 1, red)
	src.SetRGBA(3, 2, red) //last odd row
	if err := term.Draw(term.Bounds(), src, image.Point{}); err != nil {
		t.Fatal(err)
	}
	want := "▀▄█ \n   ▀\n"
	if got := b.String(); got != want {
		t.Fatalf("output %q, want %q", got, want)
	}
}

func TestTerminal_Overwrite(t *testing.T) {
	var b bytes.Buffer
	term := NewTerminal("strip", &b, 2, 4, false, true)
	if err := term.Halt(); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(b.String(), "\x1b[") {
		t.Fatal("first frame moved the cursor")
	}
	b.Reset()
	if err := term.Halt(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(b.String(), "\x1b[2A\r") {
		t.Fatalf("second frame %q doesn't move back 2 lines", b.String())
	}
}

func TestTerminal_Colors(t *testing.T) {
	var b bytes.Buffer
	term := NewTerminal("test", &b, 1, 2, true, false)
	src := image.NewUniform(color.RGBA{R: 0xff, A: 0xff})
	if err := term.Draw(term.Bounds(), src, image.Point{}); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if !strings.Contains(out, "38;5;196") || !strings.Contains(out, "48;5;196") {
		t.Fatalf("output %q has no red palette colours", out)
	}
}

func TestTerminal_PartialDraw(t *testing.T) {
	var b bytes.Buffer
	term := NewTerminal("test", &b, 4, 2, false, false)
	src := image.NewUniform(color.White)
	if err := term.Draw(image.Rect(2, 0, 8, 2), src, image.Point{}); err != nil {
		t.Fatal(err)
	}
	f := term.Frame()
	if f.RGBAAt(1, 0) != (color.RGBA{}) || f.RGBAAt(3, 1) != (color.RGBA{0xff, 0xff, 0xff, 0xff}) {
		t.Fatal("partial draw touched the wrong pixels")
	}
	if !strings.Contains(term.String(), "4x2") {
		t.Errorf("String() = %q", term.String())
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed") }

func TestTerminal_WriteError(t *testing.T) {
	term := NewTerminal("test", failingWriter{}, 1, 1, false, false)
	if err := term.Halt(); err == nil {
		t.Fatal("write error lost")
	}
}

func TestPaletteIndex(t *testing.T) {
	tests := []struct {
		c    color.RGBA
		want uint8
	}{
		{color.RGBA{}, 16},
		{color.RGBA{0xff, 0xff, 0xff, 0xff}, 231},
		{color.RGBA{0xff, 0, 0, 0xff}, 196},
		{color.RGBA{0, 0xff, 0, 0xff}, 46},
		{color.RGBA{0, 0, 0xff, 0xff}, 21},
	}
	for _, tt := range tests {
		if got := paletteIndex(tt.c); got != tt.want {
			t.Errorf("paletteIndex(%v) = %v, want %v", tt.c, got, tt.want)
		}
	}
}
