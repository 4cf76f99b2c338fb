package view

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"io"
	"sync"

	"github.com/logrusorgru/aurora"
	"golang.org/x/image/draw"
)

/*
	Terminal is a display.Drawer printing its framebuffer to a text terminal
	Every character cell shows two pixels stacked with the upper half block glyph,
	the colours are approximated by the 256 colour palette
	Without colours the glyph is chosen by which of the two pixels is lit
*/
type Terminal struct {
	name      string
	w         io.Writer
	frame     *image.RGBA
	au        aurora.Aurora
	colors    bool
	overwrite bool
	printed   int
	mu        sync.Mutex
}

//NewTerminal creates the terminal display of width x height pixels writing to w
//overwrite moves the cursor back up before each frame so the picture is redrawn in place
func NewTerminal(name string, w io.Writer, width int, height int, colors bool, overwrite bool) *Terminal {
	return &Terminal{
		name:      name,
		w:         w,
		frame:     image.NewRGBA(image.Rect(0, 0, width, height)),
		au:        aurora.NewAurora(colors),
		colors:    colors,
		overwrite: overwrite,
	}
}

func (t *Terminal) String() string {
	return fmt.Sprintf("terminal %s %vx%v", t.name, t.frame.Rect.Dx(), t.frame.Rect.Dy())
}

//Halt blanks the display
func (t *Terminal) Halt() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	draw.Draw(t.frame, t.frame.Rect, image.Black, image.Point{}, draw.Src)
	return t.flush()
}

func (t *Terminal) ColorModel() color.Model {
	return color.RGBAModel
}

func (t *Terminal) Bounds() image.Rectangle {
	return t.frame.Rect
}

//Draw updates the framebuffer and prints it
func (t *Terminal) Draw(dstRect image.Rectangle, src image.Image, sp image.Point) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	clipped := dstRect.Intersect(t.frame.Rect)
	draw.Draw(t.frame, clipped, src, sp.Add(clipped.Min.Sub(dstRect.Min)), draw.Src)
	return t.flush()
}

//Frame returns a copy of the framebuffer
func (t *Terminal) Frame() *image.RGBA {
	t.mu.Lock()
	defer t.mu.Unlock()
	c := image.NewRGBA(t.frame.Rect)
	copy(c.Pix, t.frame.Pix)
	return c
}

func (t *Terminal) flush() error {
	var b bytes.Buffer
	if t.overwrite && t.printed > 0 {
		fmt.Fprintf(&b, "\x1b[%dA\r", t.printed)
	}
	r := t.frame.Rect
	lines := 0
	for y := r.Min.Y; y < r.Max.Y; y += 2 {
		for x := r.Min.X; x < r.Max.X; x++ {
			upper := t.frame.RGBAAt(x, y)
			lower := color.RGBA{A: 0xff}
			if y+1 < r.Max.Y {
				lower = t.frame.RGBAAt(x, y+1)
			}
			b.WriteString(t.glyph(upper, lower))
		}
		b.WriteByte('\n')
		lines++
	}
	t.printed = lines
	_, err := t.w.Write(b.Bytes())
	return err
}

func (t *Terminal) glyph(upper color.RGBA, lower color.RGBA) string {
	if t.colors {
		return t.au.Index(paletteIndex(upper), "▀").BgIndex(paletteIndex(lower)).String()
	}
	switch u, l := lit(upper), lit(lower); {
	case u && l:
		return "█"
	case u:
		return "▀"
	case l:
		return "▄"
	}
	return " "
}

func lit(c color.RGBA) bool {
	return c.R|c.G|c.B != 0
}

//paletteIndex maps the colour to the 6x6x6 cube of the 256 colour palette
func paletteIndex(c color.RGBA) uint8 {
	q := func(v uint8) int { return (int(v)*5 + 127) / 255 }
	return uint8(16 + 36*q(c.R) + 6*q(c.G) + q(c.B))
}
