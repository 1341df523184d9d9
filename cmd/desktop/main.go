// Package main implements the desktop CHIP-8 frontend. Ebiten drives
// the window at 60 ticks per second and each tick runs a slice of the
// configured clock rate, so a 700 Hz machine executes 11 cycles per
// frame. The left-hand block of a QWERTY keyboard (1234/QWER/ASDF/ZXCV)
// maps onto the hex keypad, Escape quits and F12 saves a screenshot
// next to the rom file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/image/draw"

	"gochip8/pkg/chip8"
	"gochip8/pkg/display"
	"gochip8/pkg/romfile"
)

const (
	windowScale = 10
	tickRate    = 60 // ebiten updates per second
)

// keypadLayout maps the left-hand keyboard block onto the hex keypad
// in the usual 1234/QWER/ASDF/ZXCV arrangement.
var keypadLayout = map[ebiten.Key]byte{
	ebiten.KeyDigit1: 0x1, ebiten.KeyDigit2: 0x2, ebiten.KeyDigit3: 0x3, ebiten.KeyDigit4: 0xC,
	ebiten.KeyQ: 0x4, ebiten.KeyW: 0x5, ebiten.KeyE: 0x6, ebiten.KeyR: 0xD,
	ebiten.KeyA: 0x7, ebiten.KeyS: 0x8, ebiten.KeyD: 0x9, ebiten.KeyF: 0xE,
	ebiten.KeyZ: 0xA, ebiten.KeyX: 0x0, ebiten.KeyC: 0xB, ebiten.KeyV: 0xF,
}

type optionFlags struct {
	rom   string
	cps   int
	quiet bool
	debug bool
}

func main() {
	options := readArguments()
	logger := createLogger(options)

	if err := run(logger, options); err != nil {
		logger.Error("Run failed", log.Err(err))
		os.Exit(1)
	}
}

func readArguments() optionFlags {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}

	flags.IntVar(&options.cps, "cps", 700, "clock rate in cycles per second")
	flags.BoolVar(&options.quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&options.debug, "d", false, "enable debug logging and the state overlay")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) == 0 || options.cps <= 0 {
		fmt.Printf("usage: gochip8-desktop [options] <rom file>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	options.rom = args[0]

	return options
}

func createLogger(options optionFlags) *log.Logger {
	cfg := log.DefaultConfig()
	if options.debug {
		cfg.Level = log.DebugLevel
	} else if options.quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func run(logger *log.Logger, options optionFlags) error {
	data, err := romfile.Read(options.rom)
	if err != nil {
		return err
	}

	vm := chip8.New()
	if err := vm.LoadProgram(data); err != nil {
		return fmt.Errorf("loading %s: %w", options.rom, err)
	}

	_, romDir, err := romfile.PathInfo(options.rom)
	if err != nil {
		return err
	}

	game := &Game{
		vm:             vm,
		logger:         logger,
		cyclesPerFrame: cyclesPerFrame(options.cps),
		romName:        romfile.Name(options.rom),
		shotDir:        romDir,
		overlay:        options.debug,
	}

	ebiten.SetWindowSize(display.Width*windowScale, display.Height*windowScale)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowTitle("gochip8 - " + game.romName)

	logger.Info("Starting rom",
		log.String("file", options.rom),
		log.Int("cycles_per_frame", game.cyclesPerFrame),
	)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}

// cyclesPerFrame spreads the clock rate across ebiten's fixed tick
// rate, always running at least one cycle per frame.
func cyclesPerFrame(cps int) int {
	perFrame := cps / tickRate
	if perFrame < 1 {
		perFrame = 1
	}
	return perFrame
}

// Game owns the machine and the pixel canvas ebiten renders. It
// implements ebiten.Game.
type Game struct {
	vm     *chip8.CPU
	logger *log.Logger

	frame    display.Frame
	frameImg *ebiten.Image // reused 64×32 bitmap canvas
	beep     bool

	cyclesPerFrame int
	romName        string
	shotDir        string
	shotCount      int
	overlay        bool
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		path, err := g.saveScreenshot()
		if err != nil {
			g.logger.Error("Saving screenshot failed", log.Err(err))
		} else {
			g.logger.Info("Saved screenshot", log.String("file", path))
		}
	}

	keys := readKeypad()
	for i := 0; i < g.cyclesPerFrame; i++ {
		out, err := g.vm.Cycle(keys)
		if err != nil {
			return err
		}
		if out.Changed {
			g.frame = out.Frame
		}
		g.beep = out.Beep

		// A machine waiting on a key makes no progress until the next
		// frame can deliver one.
		if g.vm.Waiting {
			break
		}
	}

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.frameImg == nil {
		g.frameImg = ebiten.NewImage(display.Width, display.Height)
	}
	g.frameImg.WritePixels(g.frame.RGBA())

	// Scale the 64×32 framebuffer to fill the logical screen.
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(windowScale, windowScale)
	screen.DrawImage(g.frameImg, op)

	if g.beep {
		ebitenutil.DebugPrintAt(screen, "beep", 2, 2)
	}
	if g.overlay {
		state := fmt.Sprintf("pc %04X  i %04X  sp %d  dt %d", g.vm.PC, g.vm.Index, g.vm.SP, g.vm.DelayTimer)
		ebitenutil.DebugPrintAt(screen, state, 2, display.Height*windowScale-18)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return display.Width * windowScale, display.Height * windowScale
}

// readKeypad samples the keyboard into a keypad snapshot.
func readKeypad() chip8.Keys {
	var keys chip8.Keys
	for key, value := range keypadLayout {
		if ebiten.IsKeyPressed(key) {
			keys[value] = true
		}
	}
	return keys
}

// saveScreenshot writes the current frame as a PNG next to the rom,
// upscaled with nearest-neighbor so the pixels stay crisp.
func (g *Game) saveScreenshot() (string, error) {
	src := g.frame.Image()
	dst := image.NewRGBA(image.Rect(0, 0, display.Width*windowScale, display.Height*windowScale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	g.shotCount++
	path := filepath.Join(g.shotDir, fmt.Sprintf("%s-%03d.png", g.romName, g.shotCount))

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating screenshot: %w", err)
	}
	if err := png.Encode(file, dst); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("encoding screenshot: %w", err)
	}
	return path, file.Close()
}
