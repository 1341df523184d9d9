package display

import (
	"testing"
)

func TestClear(t *testing.T) {
	fb := New()
	fb.DrawSprite(10, 5, []byte{0xFF})
	fb.ClearDirty()

	fb.Clear()

	if !fb.Dirty() {
		t.Error("Clear: expected dirty flag set")
	}
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if fb.Pixel(x, y) != 0 {
				t.Fatalf("Clear: pixel (%d, %d) still set", x, y)
			}
		}
	}
}

func TestTogglePixel(t *testing.T) {
	fb := New()

	if was := fb.TogglePixel(3, 7); was {
		t.Error("TogglePixel: expected previous state off")
	}
	if fb.Pixel(3, 7) != 1 {
		t.Error("TogglePixel: expected pixel set after first toggle")
	}
	if was := fb.TogglePixel(3, 7); !was {
		t.Error("TogglePixel: expected previous state on")
	}
	if fb.Pixel(3, 7) != 0 {
		t.Error("TogglePixel: expected pixel cleared after second toggle")
	}
}

func TestDrawSprite(t *testing.T) {
	fb := New()

	// 0xA5 = 1010 0101, drawn at the origin.
	if collision := fb.DrawSprite(0, 0, []byte{0xA5}); collision {
		t.Error("DrawSprite: unexpected collision on empty buffer")
	}
	want := []byte{1, 0, 1, 0, 0, 1, 0, 1}
	for x, w := range want {
		if got := fb.Pixel(x, 0); got != w {
			t.Errorf("DrawSprite: pixel (%d, 0) = %d; want %d", x, got, w)
		}
	}
}

// Drawing the same sprite at the same location twice must XOR the buffer
// back to its pre-draw state, with the second call reporting a collision
// on exactly the pixels the first call set.
func TestDrawSpriteXORIdempotence(t *testing.T) {
	fb := New()
	sprite := []byte{0xF0, 0x90, 0x90, 0x90, 0xF0} // font glyph "0"

	if collision := fb.DrawSprite(20, 10, sprite); collision {
		t.Error("first draw: unexpected collision")
	}
	if collision := fb.DrawSprite(20, 10, sprite); !collision {
		t.Error("second draw: expected collision")
	}
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if fb.Pixel(x, y) != 0 {
				t.Fatalf("pixel (%d, %d) set after double draw", x, y)
			}
		}
	}
}

func TestDrawSpriteCollisionPartialOverlap(t *testing.T) {
	fb := New()

	fb.DrawSprite(0, 0, []byte{0x80}) // single pixel at (0, 0)
	if collision := fb.DrawSprite(1, 0, []byte{0x80}); collision {
		t.Error("adjacent draw: unexpected collision")
	}
	if collision := fb.DrawSprite(0, 0, []byte{0xC0}); !collision {
		t.Error("overlapping draw: expected collision")
	}
	// 0xC0 covers (0,0) and (1,0); both were set, so both toggle off.
	if fb.Pixel(0, 0) != 0 {
		t.Error("pixel (0, 0): expected cleared by overlap")
	}
	if fb.Pixel(1, 0) != 0 {
		t.Error("pixel (1, 0): expected cleared by overlap")
	}
}

// A sprite drawn at the right edge wraps to column 0 instead of clipping.
func TestDrawSpriteWrapsHorizontally(t *testing.T) {
	fb := New()

	fb.DrawSprite(Width-1, 0, []byte{0xC0}) // two leftmost bits set
	if fb.Pixel(Width-1, 0) != 1 {
		t.Errorf("pixel (%d, 0): expected set", Width-1)
	}
	if fb.Pixel(0, 0) != 1 {
		t.Error("pixel (0, 0): expected set via wrap-around")
	}
}

func TestDrawSpriteWrapsVertically(t *testing.T) {
	fb := New()

	fb.DrawSprite(4, Height-1, []byte{0x80, 0x80}) // two rows, one pixel each
	if fb.Pixel(4, Height-1) != 1 {
		t.Errorf("pixel (4, %d): expected set", Height-1)
	}
	if fb.Pixel(4, 0) != 1 {
		t.Error("pixel (4, 0): expected set via wrap-around")
	}
}

func TestDirtyLifecycle(t *testing.T) {
	fb := New()

	if fb.Dirty() {
		t.Error("new buffer: expected clean")
	}
	fb.DrawSprite(0, 0, nil) // zero-row sprite still marks dirty
	if !fb.Dirty() {
		t.Error("DrawSprite: expected dirty flag set")
	}
	fb.ClearDirty()
	if fb.Dirty() {
		t.Error("ClearDirty: expected clean")
	}
}

func TestSnapshot(t *testing.T) {
	fb := New()
	fb.DrawSprite(8, 2, []byte{0x80})

	frame := fb.Snapshot()
	if frame[2][8] != 1 {
		t.Error("Snapshot: expected frame[2][8] set")
	}

	// Snapshot must be a copy, not a view.
	fb.Clear()
	if frame[2][8] != 1 {
		t.Error("Snapshot: frame mutated by later Clear")
	}
}
