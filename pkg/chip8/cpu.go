// Package chip8 implements the CHIP-8 virtual machine: 4 KiB of memory,
// sixteen 8-bit registers, a 16-deep call stack, two countdown timers and
// a 64x32 monochrome framebuffer. The caller drives execution one Cycle
// at a time and owns all pacing and synchronization.
package chip8

import (
	"fmt"
	"math/rand/v2"

	"gochip8/pkg/display"
)

const (
	MemorySize    = 4096
	RegisterCount = 16
	StackSize     = 16
	KeyCount      = 16

	// ProgramStart is the address programs are loaded at and executed
	// from. Memory below it holds the font glyphs.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program image that fits between
	// ProgramStart and the end of memory.
	MaxProgramSize = MemorySize - ProgramStart

	opcodeSize = 2
)

// Keys is one keypad snapshot, indexed by hex key value 0x0 through 0xF.
type Keys [KeyCount]bool

type CPU struct {
	Memory [MemorySize]byte
	V      [RegisterCount]byte
	Index  uint16
	PC     uint16
	Stack  [StackSize]uint16
	SP     byte

	DelayTimer byte
	SoundTimer byte

	Keypad Keys

	// Waiting is set while a wait-for-key instruction is pending. No
	// instructions are fetched and timers do not tick until a key goes
	// down.
	Waiting bool

	waitRegister byte

	Display *display.FrameBuffer

	// Rand is the source for the rnd instruction.
	// If nil, the shared global source is used.
	Rand *rand.Rand

	// IndexOverflowFlag controls whether add I, Vx writes VF when the
	// index register moves past 0x0F00. Interpreters disagree on this
	// behavior; it defaults to on.
	IndexOverflowFlag bool
}

// Output is the externally visible machine state after one cycle.
type Output struct {
	Frame   display.Frame
	Changed bool
	Beep    bool
}

// New returns a machine with the font glyphs loaded and the program
// counter at ProgramStart.
func New() *CPU {
	c := &CPU{
		PC:                ProgramStart,
		Display:           display.New(),
		IndexOverflowFlag: true,
	}
	copy(c.Memory[:], fontSet[:])
	return c
}

// LoadProgram copies a program image into memory at ProgramStart.
func (c *CPU) LoadProgram(program []byte) error {
	if len(program) == 0 {
		return ErrProgramEmpty
	}
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, limit %d", ErrProgramTooLarge, len(program), MaxProgramSize)
	}
	copy(c.Memory[ProgramStart:], program)
	return nil
}

// Cycle runs one fetch-decode-execute step against the given keypad
// snapshot and reports the machine state that frontends render from.
// A returned error means the machine hit a fault it cannot recover
// from; the program counter is left at the faulting instruction.
func (c *CPU) Cycle(keys Keys) (Output, error) {
	c.Keypad = keys
	c.Display.ClearDirty()

	if c.Waiting {
		// The first key found resumes execution. This cycle does not
		// fetch and the timers hold.
		for i, pressed := range keys {
			if pressed {
				c.V[c.waitRegister] = byte(i)
				c.Waiting = false
				break
			}
		}
	} else {
		op, err := c.fetchOpcode()
		if err != nil {
			return Output{}, err
		}

		effect, err := c.exec(op)
		if err != nil {
			return Output{}, err
		}

		switch effect.kind {
		case pcNext:
			c.PC += opcodeSize
		case pcSkip:
			c.PC += 2 * opcodeSize
		case pcJump:
			c.PC = effect.addr
		}

		if c.DelayTimer > 0 {
			c.DelayTimer--
		}
		if c.SoundTimer > 0 {
			c.SoundTimer--
		}
	}

	return Output{
		Frame:   c.Display.Snapshot(),
		Changed: c.Display.Dirty(),
		Beep:    c.SoundTimer > 0,
	}, nil
}

// PeekOpcode reads the instruction word at the program counter without
// executing it. Frontends use it for trace output.
func (c *CPU) PeekOpcode() (Opcode, error) {
	return c.fetchOpcode()
}

// fetchOpcode reads the two instruction bytes at the program counter,
// high byte first.
func (c *CPU) fetchOpcode() (Opcode, error) {
	if int(c.PC)+1 >= MemorySize {
		return 0, fmt.Errorf("fetch at 0x%04X: %w", c.PC, ErrAddressOutOfRange)
	}
	return Opcode(uint16(c.Memory[c.PC])<<8 | uint16(c.Memory[c.PC+1])), nil
}

// checkIndex verifies that span bytes starting at the index register
// stay inside memory.
func (c *CPU) checkIndex(op Opcode, span int) error {
	if int(c.Index)+span > MemorySize {
		return c.execErr(op, ErrAddressOutOfRange)
	}
	return nil
}

func (c *CPU) randByte() byte {
	if c.Rand != nil {
		return byte(c.Rand.UintN(256))
	}
	return byte(rand.UintN(256))
}

type pcKind int

const (
	pcNext pcKind = iota
	pcSkip
	pcJump
)

// pcEffect tells the cycle loop how the program counter moves after an
// instruction executes.
type pcEffect struct {
	kind pcKind
	addr uint16
}

func next() pcEffect              { return pcEffect{kind: pcNext} }
func skip() pcEffect              { return pcEffect{kind: pcSkip} }
func jumpTo(addr uint16) pcEffect { return pcEffect{kind: pcJump, addr: addr} }

func skipIf(condition bool) pcEffect {
	if condition {
		return skip()
	}
	return next()
}
