// Package main implements a terminal CHIP-8 frontend. It paces the
// machine with a wall-clock ticker and redraws the framebuffer with
// block glyphs whenever a cycle changes it. The keypad is not wired;
// use the desktop frontend for programs that read input.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"

	"gochip8/pkg/chip8"
	"gochip8/pkg/romfile"
)

// clearScreen homes the cursor and wipes the terminal before a redraw.
const clearScreen = "\x1b[2J\x1b[1;1H"

type optionFlags struct {
	rom   string
	hz    int
	limit int
	quiet bool
	debug bool
}

func main() {
	options := readArguments()
	logger := createLogger(options)

	if err := run(app.Context(), logger, options); err != nil {
		logger.Error("Run failed", log.Err(err))
		os.Exit(1)
	}
}

func readArguments() optionFlags {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}

	flags.IntVar(&options.hz, "hz", 700, "clock rate in cycles per second")
	flags.IntVar(&options.limit, "limit", 0, "stop after this many cycles, 0 runs until interrupted")
	flags.BoolVar(&options.quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&options.debug, "d", false, "enable debug logging")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) == 0 || options.hz <= 0 {
		fmt.Printf("usage: gochip8-console [options] <rom file>\n\n")
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

func run(ctx context.Context, logger *log.Logger, options optionFlags) error {
	data, err := romfile.Read(options.rom)
	if err != nil {
		return err
	}

	vm := chip8.New()
	if err := vm.LoadProgram(data); err != nil {
		return fmt.Errorf("loading %s: %w", options.rom, err)
	}

	logger.Info("Starting rom",
		log.String("file", options.rom),
		log.Int("hz", options.hz),
	)

	ticker := time.NewTicker(time.Second / time.Duration(options.hz))
	defer ticker.Stop()

	beeping := false
	executed := 0
	for options.limit == 0 || executed < options.limit {
		select {
		case <-ctx.Done():
			logger.Info("Interrupted", log.Int("cycles", executed))
			return nil
		case <-ticker.C:
		}

		out, err := vm.Cycle(chip8.Keys{})
		if err != nil {
			return err
		}
		executed++

		if out.Changed {
			fmt.Print(clearScreen)
			fmt.Print(out.Frame.String())
		}

		// The terminal bell rings once per beep, not once per cycle.
		if out.Beep && !beeping {
			fmt.Print("\a")
		}
		beeping = out.Beep
	}

	return nil
}
