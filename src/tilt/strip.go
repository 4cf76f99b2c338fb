package tilt

import (
	"image/color"

	"badgelife/src/colors"
)

// Default strip brightness, dim enough to look at.
const (
	DefaultSaturation = 255
	DefaultValue      = 32
)

// Frame paints the strip for one update: the pixel at pos takes the hue,
// every other pixel is off. dst is reused when it has Positions elements.
func Frame(dst []color.RGBA, pos int, hue uint8, sat uint8, val uint8) []color.RGBA {
	if len(dst) != Positions {
		dst = make([]color.RGBA, Positions)
	}
	for i := range dst {
		if i == pos {
			dst[i] = colors.HSVToRGB(colors.HSV{H: hue, S: sat, V: val})
		} else {
			dst[i] = color.RGBA{A: 0xff}
		}
	}
	return dst
}
