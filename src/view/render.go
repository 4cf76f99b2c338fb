package view

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"periph.io/x/conn/v3/display"

	"badgelife/src/universe"
)

var (
	DefLiveColor = color.RGBA{R: 0xff, A: 0xff}
	DefDeadColor = color.RGBA{A: 0xff}
)

//Renderer paints universes and LED strips onto displays
//the intermediate images are kept between frames and only reallocated when the size changes
type Renderer struct {
	Live   color.Color
	Dead   color.Color
	src    *image.RGBA
	scaled *image.RGBA
}

func NewRenderer() *Renderer {
	return &Renderer{Live: DefLiveColor, Dead: DefDeadColor}
}

//DrawLife paints the current generation, live cells with Live and dead ones with Dead,
//stretched to the display bounds
func (r *Renderer) DrawLife(d display.Drawer, l *universe.Life) error {
	src := r.source(l.Width(), l.Height())
	live, dead := toRGBA(r.Live, DefLiveColor), toRGBA(r.Dead, DefDeadColor)
	for s := range l.Iter() {
		if s.Cell == universe.Alive {
			src.SetRGBA(s.Col, s.Row, live)
		} else {
			src.SetRGBA(s.Col, s.Row, dead)
		}
	}
	return r.draw(d, src)
}

//DrawStrip paints the LED strip as one row of pixels stretched to the display bounds
func (r *Renderer) DrawStrip(d display.Drawer, pixels []color.RGBA) error {
	src := r.source(len(pixels), 1)
	for i, c := range pixels {
		src.SetRGBA(i, 0, c)
	}
	return r.draw(d, src)
}

func (r *Renderer) source(width int, height int) *image.RGBA {
	if r.src == nil || r.src.Rect.Dx() != width || r.src.Rect.Dy() != height {
		r.src = image.NewRGBA(image.Rect(0, 0, width, height))
	}
	return r.src
}

func (r *Renderer) draw(d display.Drawer, src *image.RGBA) error {
	b := d.Bounds()
	if src.Rect.Size() == b.Size() {
		return d.Draw(b, src, image.Point{})
	}
	if r.scaled == nil || r.scaled.Rect.Size() != b.Size() {
		r.scaled = image.NewRGBA(image.Rectangle{Max: b.Size()})
	}
	draw.NearestNeighbor.Scale(r.scaled, r.scaled.Rect, src, src.Rect, draw.Src, nil)
	return d.Draw(b, r.scaled, image.Point{})
}

func toRGBA(c color.Color, def color.RGBA) color.RGBA {
	if c == nil {
		return def
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}
