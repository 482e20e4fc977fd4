package chip8

// Display dimensions of the monochrome framebuffer.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
	PixelCount    = DisplayWidth * DisplayHeight

	// spriteWidth is the fixed width of a sprite row in pixels.
	spriteWidth = 8
)

// FontOffset is the memory address of the built-in character font.
const FontOffset = 0x050

// fontCharacterSize is the number of bytes of a single font character sprite.
const fontCharacterSize = 5

// font contains the 4x5 pixel sprites of the hex digits 0-F.
var font = [16 * fontCharacterSize]byte{
	0xF0, 0x90, 0x90, 0x90, 0xF0, // 0
	0x20, 0x60, 0x20, 0x20, 0x70, // 1
	0xF0, 0x10, 0xF0, 0x80, 0xF0, // 2
	0xF0, 0x10, 0xF0, 0x10, 0xF0, // 3
	0x90, 0x90, 0xF0, 0x10, 0x10, // 4
	0xF0, 0x80, 0xF0, 0x10, 0xF0, // 5
	0xF0, 0x80, 0xF0, 0x90, 0xF0, // 6
	0xF0, 0x10, 0x20, 0x40, 0x40, // 7
	0xF0, 0x90, 0xF0, 0x90, 0xF0, // 8
	0xF0, 0x90, 0xF0, 0x10, 0xF0, // 9
	0xF0, 0x90, 0xF0, 0x90, 0x90, // A
	0xE0, 0x90, 0xE0, 0x90, 0xE0, // B
	0xF0, 0x80, 0x80, 0x80, 0xF0, // C
	0xE0, 0x90, 0x90, 0x90, 0xE0, // D
	0xF0, 0x80, 0xF0, 0x80, 0xF0, // E
	0xF0, 0x80, 0xF0, 0x80, 0x80, // F
}

// OutputPins returns a snapshot of the framebuffer in row-major order.
func (c *Chip8) OutputPins() [PixelCount]bool {
	return c.outputPins
}

// Pixel returns whether the pixel at the coordinates is set, the
// coordinates wrap around the display edges.
func (c *Chip8) Pixel(x, y int) bool {
	return c.outputPins[pixelIndex(x, y)]
}

// DrawPending returns whether the framebuffer changed since the last
// call to ClearDrawFlag.
func (c *Chip8) DrawPending() bool {
	return c.draw
}

// ClearDrawFlag marks the framebuffer as consumed.
func (c *Chip8) ClearDrawFlag() {
	c.draw = false
}

func pixelIndex(x, y int) int {
	x %= DisplayWidth
	if x < 0 {
		x += DisplayWidth
	}
	y %= DisplayHeight
	if y < 0 {
		y += DisplayHeight
	}
	return x + y*DisplayWidth
}

func (c *Chip8) clearScreen() {
	for _, pixel := range c.outputPins {
		if pixel {
			c.draw = true
			break
		}
	}
	c.outputPins = [PixelCount]bool{}
}

// drawSprite XORs the sprite of the given height stored at the index
// register onto the framebuffer and returns whether any set pixel got unset.
func (c *Chip8) drawSprite(x, y byte, height byte) bool {
	collision := false

	for row := 0; row < int(height); row++ {
		data := c.memory[(int(c.index)+row)%MemorySize]

		for col := 0; col < spriteWidth; col++ {
			if data&(0x80>>col) == 0 {
				continue
			}

			pos := pixelIndex(int(x)+col, int(y)+row)
			if c.outputPins[pos] {
				collision = true
			}
			c.outputPins[pos] = !c.outputPins[pos]
			c.draw = true
		}
	}

	return collision
}
