package frontend

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func testFramebuffer() *chip8.Framebuffer {
	var fb chip8.Framebuffer
	fb.DrawSprite(0, 0, []byte{0x80})
	fb.DrawSprite(63, 31, []byte{0x80})
	return &fb
}

func TestImage(t *testing.T) {
	img := Image(testFramebuffer())

	assert.Equal(t, chip8.DisplayWidth, img.Bounds().Dx())
	assert.Equal(t, chip8.DisplayHeight, img.Bounds().Dy())
	assert.Equal(t, OnColor, img.RGBAAt(0, 0))
	assert.Equal(t, OnColor, img.RGBAAt(63, 31))
	assert.Equal(t, OffColor, img.RGBAAt(1, 0))
}

func TestScaledImage(t *testing.T) {
	img := ScaledImage(testFramebuffer(), 4)

	assert.Equal(t, chip8.DisplayWidth*4, img.Bounds().Dx())
	assert.Equal(t, chip8.DisplayHeight*4, img.Bounds().Dy())
	assert.Equal(t, OnColor, img.RGBAAt(3, 3))
	assert.Equal(t, OffColor, img.RGBAAt(4, 0))
	assert.Equal(t, OnColor, img.RGBAAt(255, 127))
	assert.Equal(t, OffColor, img.RGBAAt(251, 127))
}

func TestSavePNG(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, SavePNG(&buf, testFramebuffer(), 2))

	img, err := png.Decode(&buf)
	assert.NoError(t, err)
	assert.Equal(t, chip8.DisplayWidth*2, img.Bounds().Dx())

	r, g, b, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0), r)
	assert.Equal(t, uint32(0xFFFF), g)
	assert.Equal(t, uint32(0), b)
}
