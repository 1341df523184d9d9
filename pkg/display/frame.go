package display

import (
	"image"
	"strings"
)

// Monochrome palette used when exporting frames.
var (
	pixelOn  = [4]byte{0xFF, 0xFF, 0xFF, 0xFF}
	pixelOff = [4]byte{0x00, 0x00, 0x00, 0xFF}
)

// Frame is an immutable snapshot of the frame buffer, indexed [y][x].
type Frame [Height][Width]byte

// RGBA flattens the frame into a Width×Height RGBA8888 byte slice
// (length Width*Height*4), white pixels on black.
func (f *Frame) RGBA() []byte {
	pix := make([]byte, Width*Height*4)
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			c := pixelOff
			if f[y][x] != 0 {
				c = pixelOn
			}
			i := (y*Width + x) * 4
			copy(pix[i:i+4], c[:])
		}
	}
	return pix
}

// Image returns the frame as an *image.RGBA.
func (f *Frame) Image() *image.RGBA {
	return &image.RGBA{
		Pix:    f.RGBA(),
		Stride: Width * 4,
		Rect:   image.Rect(0, 0, Width, Height),
	}
}

// String renders the frame one text row per scan line, █ for set pixels
// and ░ for cleared ones.
func (f *Frame) String() string {
	var sb strings.Builder
	sb.Grow(Height * (Width*3 + 1)) // 3 UTF-8 bytes per block glyph
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if f[y][x] != 0 {
				sb.WriteRune('█')
			} else {
				sb.WriteRune('░')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
