// Package colors converts the 8-bit HSV colours used by the LED demos.
package colors

import "image/color"

// HSV is a colour with 8-bit hue, saturation and value. The hue circle is
// split into six sectors of roughly 43 steps each.
type HSV struct {
	H, S, V uint8
}

// RGBA converts c to RGB, implementing color.Color.
func (c HSV) RGBA() (r, g, b, a uint32) {
	return HSVToRGB(c).RGBA()
}

// HSVToRGB converts with integer arithmetic only, the way small LED
// controllers do it. Hue 0 is red at full value.
func HSVToRGB(c HSV) color.RGBA {
	v := uint16(c.V)
	s := uint16(c.S)
	f := (uint16(c.H) * 2 % 85) * 3

	p := v * (255 - s) / 255
	q := v * (255 - s*f/255) / 255
	t := v * (255 - s*(255-f)/255) / 255

	var r, g, b uint16
	switch {
	case c.H <= 42:
		r, g, b = v, t, p
	case c.H <= 84:
		r, g, b = q, v, p
	case c.H <= 127:
		r, g, b = p, v, t
	case c.H <= 169:
		r, g, b = p, q, v
	case c.H <= 212:
		r, g, b = t, p, v
	case c.H <= 254:
		r, g, b = v, p, q
	default:
		r, g, b = v, t, p
	}
	return color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
}
