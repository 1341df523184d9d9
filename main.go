//go:build !js

// Package main implements a headless CHIP-8 runner. It executes a rom
// image flat out with no display or keypad attached, which is useful
// for smoke-testing roms and measuring interpreter throughput.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"

	"gochip8/pkg/chip8"
	"gochip8/pkg/romfile"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

type optionFlags struct {
	rom    string
	cycles int
	quiet  bool
	debug  bool
	trace  bool
}

func main() {
	options := readArguments()
	logger := createLogger(options)

	printBanner(options)

	if err := run(app.Context(), logger, options); err != nil {
		logger.Error("Run failed", log.Err(err))
		os.Exit(1)
	}
}

func readArguments() optionFlags {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	options := optionFlags{}

	flags.IntVar(&options.cycles, "c", 0, "stop after this many cycles, 0 runs until a fault or interrupt")
	flags.BoolVar(&options.quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&options.debug, "d", false, "enable debug logging")
	flags.BoolVar(&options.trace, "trace", false, "log every executed instruction, implies -d")

	err := flags.Parse(os.Args[1:])
	args := flags.Args()

	if err != nil || len(args) == 0 {
		printBanner(options)
		fmt.Printf("usage: gochip8 [options] <rom file>\n\n")
		flags.PrintDefaults()
		os.Exit(1)
	}
	options.rom = args[0]

	return options
}

func createLogger(options optionFlags) *log.Logger {
	cfg := log.DefaultConfig()
	if options.debug || options.trace {
		cfg.Level = log.DebugLevel
	} else if options.quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func printBanner(options optionFlags) {
	if !options.quiet {
		fmt.Println("[-----------------------------------]")
		fmt.Println("[ gochip8 - CHIP-8 virtual machine   ]")
		fmt.Printf("[-----------------------------------]\n\n")
		fmt.Printf("version: %s\n\n", buildinfo.Version(version, commit, date))
	}
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

	logger.Info("Running rom",
		log.String("file", options.rom),
		log.Int("bytes", len(data)),
	)

	executed, out, err := execute(ctx, logger, vm, options)
	if err != nil {
		return err
	}

	logger.Info("Run complete",
		log.Int("cycles", executed),
		log.Hex("pc", vm.PC),
		log.Hex("index", vm.Index),
		log.Uint8("sp", vm.SP),
	)

	if !options.quiet && executed > 0 {
		fmt.Print(out.Frame.String())
	}

	return nil
}

// execute drives the machine with no keys down until the requested cycle
// count is reached, stopping early on a fault or context cancellation.
func execute(ctx context.Context, logger *log.Logger, vm *chip8.CPU, options optionFlags) (int, chip8.Output, error) {
	var out chip8.Output
	executed := 0

	for options.cycles == 0 || executed < options.cycles {
		select {
		case <-ctx.Done():
			logger.Info("Interrupted", log.Int("cycles", executed))
			return executed, out, nil
		default:
		}

		if options.trace && !vm.Waiting {
			if op, err := vm.PeekOpcode(); err == nil {
				logger.Debug("Cycle",
					log.Hex("pc", vm.PC),
					log.String("op", op.String()),
				)
			}
		}

		var err error
		out, err = vm.Cycle(chip8.Keys{})
		if err != nil {
			return executed, out, err
		}
		executed++
	}

	return executed, out, nil
}
