package main

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/retrogolib/log"

	"gochip8/pkg/chip8"
	"gochip8/pkg/display"
)

func TestMainWiringIntegration(t *testing.T) {
	// Wire the game exactly as run does: V0=5, point the index at the
	// glyph for 5, draw it at the origin, then spin.
	program := []byte{
		0x60, 0x05, // ld V0, $05
		0xF0, 0x29, // ld F, V0
		0xD1, 0x25, // drw V1, V2, $5
		0x12, 0x06, // jp $206
	}

	vm := chip8.New()
	if err := vm.LoadProgram(program); err != nil {
		t.Fatalf("load program: %v", err)
	}

	game := &Game{
		vm:             vm,
		logger:         log.NewTestLogger(t),
		cyclesPerFrame: cyclesPerFrame(700),
	}

	if err := game.Update(); err != nil {
		t.Fatalf("update: %v", err)
	}

	// Top row of the glyph for 5 is 0xF0: four lit pixels.
	if game.frame[0][0] != 1 || game.frame[0][3] != 1 {
		t.Error("expected glyph pixels at (0,0) and (3,0) to be set")
	}
	if game.frame[0][4] != 0 {
		t.Error("expected pixel at (4,0) to be clear")
	}
	if vm.PC != 0x0206 {
		t.Errorf("expected PC 0x0206, got 0x%04X", vm.PC)
	}
	if game.beep {
		t.Error("expected no beep")
	}
}

func TestUpdateStopsWhileWaiting(t *testing.T) {
	program := []byte{
		0x62, 0x03, // ld V2, $03
		0xF2, 0x15, // ld DT, V2
		0xF1, 0x0A, // ld V1, K
		0x12, 0x06, // jp $206
	}

	vm := chip8.New()
	if err := vm.LoadProgram(program); err != nil {
		t.Fatalf("load program: %v", err)
	}

	game := &Game{
		vm:             vm,
		logger:         log.NewTestLogger(t),
		cyclesPerFrame: 50,
	}

	if err := game.Update(); err != nil {
		t.Fatalf("update: %v", err)
	}

	if !vm.Waiting {
		t.Error("expected machine to be waiting for a key")
	}
	if vm.PC != 0x0206 {
		t.Errorf("expected PC 0x0206, got 0x%04X", vm.PC)
	}
	// The delay timer ticked on the two cycles after it was set and
	// then froze with the machine.
	if vm.DelayTimer != 1 {
		t.Errorf("expected delay timer 1, got %d", vm.DelayTimer)
	}
}

func TestCyclesPerFrame(t *testing.T) {
	tests := []struct {
		cps  int
		want int
	}{
		{cps: 700, want: 11},
		{cps: 6000, want: 100},
		{cps: 60, want: 1},
		{cps: 1, want: 1},
	}

	for _, tt := range tests {
		if got := cyclesPerFrame(tt.cps); got != tt.want {
			t.Errorf("cyclesPerFrame(%d): expected %d, got %d", tt.cps, tt.want, got)
		}
	}
}

func TestKeypadLayoutCoversAllKeys(t *testing.T) {
	var seen [chip8.KeyCount]bool
	for _, value := range keypadLayout {
		if seen[value] {
			t.Errorf("keypad value 0x%X mapped twice", value)
		}
		seen[value] = true
	}
	for value, ok := range seen {
		if !ok {
			t.Errorf("keypad value 0x%X not mapped", value)
		}
	}
}

func TestSaveScreenshot(t *testing.T) {
	game := &Game{
		romName: "test",
		shotDir: t.TempDir(),
	}
	game.frame[0][0] = 1

	path, err := game.saveScreenshot()
	if err != nil {
		t.Fatalf("save screenshot: %v", err)
	}
	if name := filepath.Base(path); name != "test-001.png" {
		t.Errorf("expected file name test-001.png, got %s", name)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open screenshot: %v", err)
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		t.Fatalf("decode screenshot: %v", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != display.Width*windowScale || bounds.Dy() != display.Height*windowScale {
		t.Errorf("expected %dx%d image, got %dx%d",
			display.Width*windowScale, display.Height*windowScale, bounds.Dx(), bounds.Dy())
	}

	// The lit pixel at (0,0) covers a windowScale sized block.
	r, _, _, _ := img.At(5, 5).RGBA()
	if r>>8 != 0xFF {
		t.Errorf("expected white pixel at (5,5), got red component 0x%02X", r>>8)
	}
	r, _, _, _ = img.At(windowScale+5, 5).RGBA()
	if r>>8 != 0x00 {
		t.Errorf("expected black pixel right of the block, got red component 0x%02X", r>>8)
	}
}

func TestRunMissingRom(t *testing.T) {
	options := optionFlags{rom: filepath.Join(t.TempDir(), "missing.ch8")}
	if err := run(log.NewTestLogger(t), options); err == nil {
		t.Error("expected error for missing rom file")
	}
}
