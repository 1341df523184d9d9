package chip8

import (
	"errors"
	"fmt"
)

var (
	// Load errors
	ErrProgramTooLarge = errors.New("program too large")
	ErrProgramEmpty    = errors.New("program empty")

	// Execution errors
	ErrStackOverflow     = errors.New("stack overflow")
	ErrStackUnderflow    = errors.New("stack underflow")
	ErrAddressOutOfRange = errors.New("address out of range")
)

// ExecError locates a fatal execution error at the instruction that
// raised it.
type ExecError struct {
	PC  uint16
	Op  Opcode
	Err error
}

func (e *ExecError) Error() string {
	if e.Op.Known() {
		return fmt.Sprintf("%v at 0x%04X (opcode 0x%04X, %s)", e.Err, e.PC, uint16(e.Op), e.Op)
	}
	return fmt.Sprintf("%v at 0x%04X (opcode 0x%04X)", e.Err, e.PC, uint16(e.Op))
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// execErr wraps err with the location of the current instruction.
func (c *CPU) execErr(op Opcode, err error) error {
	return &ExecError{PC: c.PC, Op: op, Err: err}
}
