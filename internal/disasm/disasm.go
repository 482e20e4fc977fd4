// Package disasm formats CHIP-8 opcodes as assembly mnemonics.
// Opcodes are resolved by the machine decoder, so the listing and the
// execution agree on which opcodes are valid.
package disasm

import (
	"fmt"

	vm "github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Info describes the control flow properties of a resolved opcode.
type Info struct {
	Name   string
	Jump   bool // unconditional jump, execution does not continue with the next opcode
	Call   bool
	Return bool
	Skip   bool // conditional skip of the next opcode
}

// Lookup resolves the opcode to its instruction definition.
func Lookup(opcode uint16) (Info, bool) {
	ins := findInstruction(opcode)
	if ins == nil {
		return Info{}, false
	}

	return Info{
		Name:   ins.Name,
		Jump:   ins == chip8.Jp,
		Call:   ins == chip8.Call,
		Return: ins == chip8.Ret,
		Skip:   chip8.SkipInstructions.Contains(ins.Name),
	}, true
}

// Disassemble returns the assembly representation of the opcode.
// Opcodes that do not resolve to an instruction are output as data word.
func Disassemble(opcode uint16) string {
	ins := findInstruction(opcode)
	if ins == nil {
		return fmt.Sprintf(".word $%04X", opcode)
	}

	if params := formatInstruction(ins.Name, opcode); params != "" {
		return fmt.Sprintf("%s %s", ins.Name, params)
	}
	return ins.Name
}

// findInstruction returns the opcode table instruction of an opcode that the
// machine can execute.
func findInstruction(opcode uint16) *chip8.Instruction {
	op := vm.DecodeWord(opcode)
	if _, err := vm.DecodeInstruction(op); err != nil {
		return nil
	}

	entry, _ := vm.ResolveOpcode(op)
	return entry.Instruction
}

// formatInstruction formats the parameters of the instruction.
func formatInstruction(name string, opcode uint16) string {
	switch name {
	case chip8.Cls.Name, chip8.Ret.Name:
		return ""
	case chip8.Jp.Name:
		return formatJumpInstruction(opcode)
	case chip8.Call.Name:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case chip8.Se.Name, chip8.Sne.Name:
		return formatCompareInstruction(opcode)
	case chip8.Ld.Name:
		return formatLoadInstruction(opcode)
	case chip8.Add.Name:
		return formatAddInstruction(opcode)
	case chip8.Or.Name, chip8.And.Name, chip8.Xor.Name, chip8.Sub.Name, chip8.Subn.Name:
		return formatBinaryInstruction(opcode)
	case chip8.Shr.Name, chip8.Shl.Name, chip8.Skp.Name, chip8.Sknp.Name:
		return fmt.Sprintf("V%X", extractRegisterX(opcode))
	case chip8.Rnd.Name:
		return fmt.Sprintf("V%X, $%02X", extractRegisterX(opcode), opcode&0x00FF)
	case chip8.Drw.Name:
		return fmt.Sprintf("V%X, V%X, $%X", extractRegisterX(opcode), extractRegisterY(opcode), opcode&0x000F)
	}
	return ""
}

func formatJumpInstruction(opcode uint16) string {
	switch opcode & 0xF000 {
	case 0x1000:
		return fmt.Sprintf("$%03X", opcode&0x0FFF)
	case 0xB000:
		return fmt.Sprintf("V0, $%03X", opcode&0x0FFF)
	}
	return ""
}

// formatCompareInstruction formats SE and SNE with an immediate or register operand.
func formatCompareInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	switch opcode & 0xF000 {
	case 0x3000, 0x4000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x5000, 0x9000:
		return fmt.Sprintf("V%X, V%X", x, extractRegisterY(opcode))
	}
	return ""
}

func formatLoadInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	switch opcode & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, extractRegisterY(opcode))
	case 0xA000:
		return fmt.Sprintf("I, $%03X", opcode&0x0FFF)
	case 0xF000:
		return formatMiscLoadInstruction(x, opcode&0x00FF)
	}
	return ""
}

// formatMiscLoadInstruction formats the FXNN timer, key, font and memory transfer loads.
func formatMiscLoadInstruction(x, selector uint16) string {
	switch selector {
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

func formatAddInstruction(opcode uint16) string {
	x := extractRegisterX(opcode)
	switch opcode & 0xF000 {
	case 0x7000:
		return fmt.Sprintf("V%X, $%02X", x, opcode&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, extractRegisterY(opcode))
	case 0xF000:
		return fmt.Sprintf("I, V%X", x)
	}
	return ""
}

func formatBinaryInstruction(opcode uint16) string {
	return fmt.Sprintf("V%X, V%X", extractRegisterX(opcode), extractRegisterY(opcode))
}

func extractRegisterX(opcode uint16) uint16 {
	return (opcode & 0x0F00) >> 8
}

func extractRegisterY(opcode uint16) uint16 {
	return (opcode & 0x00F0) >> 4
}
