// Package display implements the CHIP-8 monochrome frame buffer: a 64×32
// grid of 1-bit pixels with XOR sprite drawing and collision detection.
package display

import (
	"gochip8/pkg/grid"
)

const (
	// Width is the display width in pixels.
	Width = 64
	// Height is the display height in pixels.
	Height = 32

	// MaxSpriteRows is the tallest sprite a draw instruction can request.
	MaxSpriteRows = 15
)

// FrameBuffer holds the pixel state, one byte per pixel in row-major order
// (0 = off, 1 = on). Sprite coordinates wrap around the display edges
// instead of clipping.
type FrameBuffer struct {
	width  int
	height int
	pixels []byte
	dirty  bool
}

// New returns a cleared 64×32 frame buffer.
func New() *FrameBuffer {
	return &FrameBuffer{
		width:  Width,
		height: Height,
		pixels: make([]byte, Width*Height),
	}
}

// Clear sets every pixel to 0 and marks the buffer dirty.
func (fb *FrameBuffer) Clear() {
	for i := range fb.pixels {
		fb.pixels[i] = 0
	}
	fb.dirty = true
}

// Pixel returns the pixel value at (x, y). Coordinates wrap.
func (fb *FrameBuffer) Pixel(x, y int) byte {
	return fb.pixels[fb.index(x, y)]
}

// TogglePixel XORs the pixel at (x, y) and reports whether it was set
// before the toggle. Coordinates wrap.
func (fb *FrameBuffer) TogglePixel(x, y int) bool {
	i := fb.index(x, y)
	old := fb.pixels[i]
	fb.pixels[i] ^= 1
	fb.dirty = true
	return old == 1
}

// DrawSprite XORs the sprite rows onto the buffer with the top-left corner
// at (x, y). Each row is 8 pixels wide, most significant bit leftmost.
// Pixels falling outside the display wrap to the opposite edge. It reports
// whether any set pixel was toggled off (a collision) and marks the buffer
// dirty unconditionally.
func (fb *FrameBuffer) DrawSprite(x, y int, sprite []byte) bool {
	collision := false
	for r, row := range sprite {
		py := (y + r) % fb.height
		for bit := 0; bit < 8; bit++ {
			px := (x + bit) % fb.width
			pixel := (row >> (7 - bit)) & 1
			i := grid.Index(px, py, fb.width)
			if pixel == 1 && fb.pixels[i] == 1 {
				collision = true
			}
			fb.pixels[i] ^= pixel
		}
	}
	fb.dirty = true
	return collision
}

// Dirty reports whether the buffer changed since the last ClearDirty.
func (fb *FrameBuffer) Dirty() bool {
	return fb.dirty
}

// ClearDirty resets the dirty flag. The cycle driver calls this at the
// start of each cycle so the output snapshot reports per-cycle changes.
func (fb *FrameBuffer) ClearDirty() {
	fb.dirty = false
}

// Snapshot copies the current pixel state into an immutable Frame.
func (fb *FrameBuffer) Snapshot() Frame {
	var f Frame
	for i, p := range fb.pixels {
		x, y := grid.GetGridCoords(i, fb.width)
		f[y][x] = p
	}
	return f
}

func (fb *FrameBuffer) index(x, y int) int {
	return grid.Index(x%fb.width, y%fb.height, fb.width)
}
