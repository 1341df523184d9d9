package chip8

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Opcode is one 16-bit instruction word as fetched from memory,
// high byte first.
type Opcode uint16

// Nibbles splits the word into its four 4-bit fields, high to low.
func (op Opcode) Nibbles() (a, b, c, d byte) {
	return byte(op >> 12), byte(op >> 8 & 0xF), byte(op >> 4 & 0xF), byte(op & 0xF)
}

// NNN returns the low 12 bits, the address field.
func (op Opcode) NNN() uint16 {
	return uint16(op) & 0x0FFF
}

// KK returns the low byte, the immediate field.
func (op Opcode) KK() byte {
	return byte(op)
}

// X returns the second nibble, the first register field.
func (op Opcode) X() byte {
	return byte(op >> 8 & 0xF)
}

// Y returns the third nibble, the second register field.
func (op Opcode) Y() byte {
	return byte(op >> 4 & 0xF)
}

// N returns the low nibble, the sprite height field.
func (op Opcode) N() byte {
	return byte(op) & 0xF
}

// instruction looks the word up in the instruction table and returns
// nil when no defined instruction matches.
func (op Opcode) instruction() *chip8.Instruction {
	w := uint16(op)
	for _, entry := range chip8.Opcodes[w>>12] {
		if entry.Info.Mask&w == entry.Info.Value {
			return entry.Instruction
		}
	}
	return nil
}

// Known reports whether the word decodes to a defined instruction.
func (op Opcode) Known() bool {
	return op.instruction() != nil
}

// Mnemonic returns the assembler name of the instruction, or the empty
// string when the word does not decode.
func (op Opcode) Mnemonic() string {
	ins := op.instruction()
	if ins == nil {
		return ""
	}
	return ins.Name
}

// String renders the word as assembler text, for example "drw V2, V3, $5".
// Words that do not decode render as their raw hex value.
func (op Opcode) String() string {
	ins := op.instruction()
	if ins == nil {
		return fmt.Sprintf("0x%04X", uint16(op))
	}
	if params := op.formatParams(ins.Name); params != "" {
		return fmt.Sprintf("%s %s", ins.Name, params)
	}
	return ins.Name
}

// formatParams renders the operand list for the named instruction.
func (op Opcode) formatParams(name string) string {
	switch name {
	case chip8.Jp.Name:
		if op&0xF000 == 0xB000 {
			return fmt.Sprintf("V0, $%03X", op.NNN())
		}
		return fmt.Sprintf("$%03X", op.NNN())
	case chip8.Call.Name:
		return fmt.Sprintf("$%03X", op.NNN())
	case chip8.Se.Name, chip8.Sne.Name:
		if op&0xF000 == 0x5000 || op&0xF000 == 0x9000 {
			return fmt.Sprintf("V%X, V%X", op.X(), op.Y())
		}
		return fmt.Sprintf("V%X, $%02X", op.X(), op.KK())
	case chip8.Ld.Name:
		return op.formatLoadParams()
	case chip8.Add.Name:
		switch op & 0xF000 {
		case 0x7000:
			return fmt.Sprintf("V%X, $%02X", op.X(), op.KK())
		case 0x8000:
			return fmt.Sprintf("V%X, V%X", op.X(), op.Y())
		}
		return fmt.Sprintf("I, V%X", op.X())
	case chip8.Or.Name, chip8.And.Name, chip8.Xor.Name, chip8.Sub.Name, chip8.Subn.Name:
		return fmt.Sprintf("V%X, V%X", op.X(), op.Y())
	case chip8.Shr.Name, chip8.Shl.Name, chip8.Skp.Name, chip8.Sknp.Name:
		return fmt.Sprintf("V%X", op.X())
	case chip8.Rnd.Name:
		return fmt.Sprintf("V%X, $%02X", op.X(), op.KK())
	case chip8.Drw.Name:
		return fmt.Sprintf("V%X, V%X, $%X", op.X(), op.Y(), op.N())
	}
	return ""
}

// formatLoadParams renders the operands of the ld family, which spans
// register, immediate, index, timer, key and memory forms.
func (op Opcode) formatLoadParams() string {
	x := op.X()
	switch op & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, op.KK())
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, op.Y())
	case 0xA000:
		return fmt.Sprintf("I, $%03X", op.NNN())
	}
	switch op.KK() {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}
