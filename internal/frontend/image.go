package frontend

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/retroenv/retrochip8/internal/chip8"
	"golang.org/x/image/draw"
)

// Display colors.
var (
	OnColor  = color.RGBA{R: 0x00, G: 0xFF, B: 0x00, A: 0xFF}
	OffColor = color.RGBA{R: 0x00, G: 0x00, B: 0x00, A: 0xFF}
)

// Image converts the framebuffer to an RGBA image of the display size.
func Image(fb *chip8.Framebuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, chip8.DisplayWidth, chip8.DisplayHeight))
	WritePixels(fb, img.Pix)
	return img
}

// WritePixels writes the framebuffer as RGBA pixels into the buffer, which must
// hold 4 bytes for every pixel.
func WritePixels(fb *chip8.Framebuffer, pix []byte) {
	for i, pixel := range fb {
		c := OffColor
		if pixel == chip8.PixelOn {
			c = OnColor
		}
		offset := i * 4
		pix[offset] = c.R
		pix[offset+1] = c.G
		pix[offset+2] = c.B
		pix[offset+3] = c.A
	}
}

// ScaledImage returns the framebuffer as image enlarged by the scale factor.
func ScaledImage(fb *chip8.Framebuffer, scale int) *image.RGBA {
	src := Image(fb)
	if scale <= 1 {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, chip8.DisplayWidth*scale, chip8.DisplayHeight*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

// SavePNG encodes the scaled framebuffer as PNG image.
func SavePNG(w io.Writer, fb *chip8.Framebuffer, scale int) error {
	if err := png.Encode(w, ScaledImage(fb, scale)); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
