package chip8

// Display dimensions in pixels.
const (
	DisplayWidth  = 64
	DisplayHeight = 32
)

// Pixel values as stored in the framebuffer.
const (
	PixelOff byte = 0x00
	PixelOn  byte = 0xFF
)

// Framebuffer is the 64x32 monochrome display, stored row-major with the
// origin in the top left corner. Every cell is either PixelOff or PixelOn.
type Framebuffer [DisplayWidth * DisplayHeight]byte

// Pixel returns whether the pixel at the given coordinates is on.
// Coordinates wrap around the display edges.
func (f *Framebuffer) Pixel(x, y int) bool {
	return f[pixelIndex(x, y)] == PixelOn
}

// Clear turns all pixels off.
func (f *Framebuffer) Clear() {
	*f = Framebuffer{}
}

// Lit returns the number of pixels that are on.
func (f *Framebuffer) Lit() int {
	var count int
	for _, pixel := range f {
		if pixel == PixelOn {
			count++
		}
	}
	return count
}

// DrawSprite XORs the sprite rows onto the framebuffer, with the top left
// corner of the sprite at the given origin. Every sprite row is one byte,
// the most significant bit is the leftmost pixel. The origin is reduced
// modulo the display size and pixels beyond an edge wrap around to the
// opposite edge. The result reports whether any pixel was turned off.
func (f *Framebuffer) DrawSprite(x, y uint8, sprite []byte) bool {
	originX := int(x) % DisplayWidth
	originY := int(y) % DisplayHeight

	var collision bool
	for row, data := range sprite {
		for col := range 8 {
			if data&(0x80>>col) == 0 {
				continue
			}

			index := pixelIndex(originX+col, originY+row)
			if f[index] == PixelOn {
				collision = true
			}
			f[index] ^= PixelOn
		}
	}
	return collision
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
	return y*DisplayWidth + x
}
