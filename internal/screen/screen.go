// Package screen renders the CHIP-8 framebuffer as text.
package screen

import (
	"strings"

	"github.com/retroenv/retrochip8/internal/chip8"
)

const (
	pixelSet   = '#'
	pixelUnset = '.'
)

// Render returns the framebuffer as chip8.DisplayHeight lines of
// chip8.DisplayWidth characters, each line terminated by a newline.
func Render(pins [chip8.PixelCount]bool) string {
	var sb strings.Builder
	sb.Grow(chip8.PixelCount + chip8.DisplayHeight)

	for y := 0; y < chip8.DisplayHeight; y++ {
		row := pins[y*chip8.DisplayWidth : (y+1)*chip8.DisplayWidth]
		for _, pixel := range row {
			if pixel {
				sb.WriteByte(pixelSet)
			} else {
				sb.WriteByte(pixelUnset)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
