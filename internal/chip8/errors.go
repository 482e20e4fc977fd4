package chip8

import (
	"errors"
	"fmt"
)

var (
	// ErrStackOverflow is returned when a CALL is executed with all stack levels in use.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned when a RET is executed with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
)

// ProgramTooLargeError is returned when a program does not fit into the program space.
type ProgramTooLargeError struct {
	Size int
}

func (e *ProgramTooLargeError) Error() string {
	return fmt.Sprintf("program is too large: maximum program size is %d bytes, got %d bytes",
		MaxProgramSize, e.Size)
}

// UnknownOpcodeError is returned when the opcode at Address does not decode
// to a supported instruction.
type UnknownOpcodeError struct {
	Address uint16
	Opcode  uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode $%04X at address $%03X", e.Opcode, e.Address)
}

// InvalidCharacterError is returned when LD F, Vx references a character
// that is not part of the font.
type InvalidCharacterError struct {
	Character byte
}

func (e *InvalidCharacterError) Error() string {
	return fmt.Sprintf("invalid font character $%02X", e.Character)
}

// AddressError is returned when an instruction can not be fetched because
// it would be read past the end of memory.
type AddressError struct {
	Address uint16
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("instruction fetch at address $%04X is out of memory bounds", e.Address)
}

// InvalidPinError is returned when an input pin outside of the 16 key latches is addressed.
type InvalidPinError struct {
	Pin int
}

func (e *InvalidPinError) Error() string {
	return fmt.Sprintf("invalid input pin %d", e.Pin)
}
