package chip8

import (
	"testing"

	cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	op := Decode(0xD1, 0x2F)

	assert.Equal(t, byte(0xD), op.Class())
	assert.Equal(t, uint16(0xD12F), op.Value())
	assert.Equal(t, uint16(0x12F), op.Address())

	reg, value := op.RegAndValue()
	assert.Equal(t, byte(0x1), reg)
	assert.Equal(t, byte(0x2F), value)

	op1, op2, op3 := op.Operands()
	assert.Equal(t, byte(0x1), op1)
	assert.Equal(t, byte(0x2), op2)
	assert.Equal(t, byte(0xF), op3)

	assert.Equal(t, op, DecodeWord(0xD12F))
}

func TestDecodeInstruction(t *testing.T) {
	tests := []struct {
		opcode   uint16
		expected Instruction
	}{
		{0x00E0, Instruction{Kind: Cls}},
		{0x00EE, Instruction{Kind: Ret}},
		{0x1ABC, Instruction{Kind: Jp, Address: 0xABC}},
		{0x2ABC, Instruction{Kind: Call, Address: 0xABC}},
		{0x3A12, Instruction{Kind: SeImm, X: 0xA, Value: 0x12}},
		{0x4A12, Instruction{Kind: SneImm, X: 0xA, Value: 0x12}},
		{0x5AB0, Instruction{Kind: SeReg, X: 0xA, Y: 0xB}},
		{0x6A12, Instruction{Kind: LdImm, X: 0xA, Value: 0x12}},
		{0x7A12, Instruction{Kind: AddImm, X: 0xA, Value: 0x12}},
		{0x8AB0, Instruction{Kind: LdReg, X: 0xA, Y: 0xB}},
		{0x8AB1, Instruction{Kind: Or, X: 0xA, Y: 0xB}},
		{0x8AB2, Instruction{Kind: And, X: 0xA, Y: 0xB}},
		{0x8AB3, Instruction{Kind: Xor, X: 0xA, Y: 0xB}},
		{0x8AB4, Instruction{Kind: AddReg, X: 0xA, Y: 0xB}},
		{0x8AB5, Instruction{Kind: Sub, X: 0xA, Y: 0xB}},
		{0x8AB6, Instruction{Kind: Shr, X: 0xA, Y: 0xB}},
		{0x8AB7, Instruction{Kind: Subn, X: 0xA, Y: 0xB}},
		{0x8ABE, Instruction{Kind: Shl, X: 0xA, Y: 0xB}},
		{0x9AB0, Instruction{Kind: SneReg, X: 0xA, Y: 0xB}},
		{0xAABC, Instruction{Kind: LdI, Address: 0xABC}},
		{0xBABC, Instruction{Kind: JpV0, Address: 0xABC}},
		{0xCA12, Instruction{Kind: Rnd, X: 0xA, Value: 0x12}},
		{0xDAB5, Instruction{Kind: Drw, X: 0xA, Y: 0xB, N: 5}},
		{0xEA9E, Instruction{Kind: Skp, X: 0xA}},
		{0xEAA1, Instruction{Kind: Sknp, X: 0xA}},
		{0xFA07, Instruction{Kind: LdVxDT, X: 0xA}},
		{0xFA0A, Instruction{Kind: LdVxK, X: 0xA}},
		{0xFA15, Instruction{Kind: LdDTVx, X: 0xA}},
		{0xFA18, Instruction{Kind: LdSTVx, X: 0xA}},
		{0xFA1E, Instruction{Kind: AddIVx, X: 0xA}},
		{0xFA29, Instruction{Kind: LdFVx, X: 0xA}},
		{0xFA33, Instruction{Kind: LdBVx, X: 0xA}},
		{0xFA55, Instruction{Kind: LdIVx, X: 0xA}},
		{0xFA65, Instruction{Kind: LdVxI, X: 0xA}},
	}

	for _, tt := range tests {
		t.Run(tt.expected.Kind.String(), func(t *testing.T) {
			ins, err := DecodeInstruction(DecodeWord(tt.opcode))
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, ins)
		})
	}
}

func TestDecodeInstructionUnknown(t *testing.T) {
	opcodes := []uint16{
		0x0000, 0x00E1, 0x0FFF, // SYS calls are not supported
		0x5AB1, 0x9ABF, // register compares with non-zero low nibble
		0x8AB8, 0x8ABF,
		0xEA00, 0xEA9F,
		0xFA00, 0xFAFF,
	}

	for _, op := range opcodes {
		_, err := DecodeInstruction(DecodeWord(op))
		assert.Error(t, err, "opcode %04X", op)
	}
}

func TestDecodeInstructionUsesOpcodeTable(t *testing.T) {
	for opcode := 0; opcode <= 0xFFFF; opcode++ {
		op := DecodeWord(uint16(opcode))
		ins, err := DecodeInstruction(op)
		entry, resolved := ResolveOpcode(op)

		if !resolved {
			assert.Error(t, err, "opcode %04X", opcode)
			continue
		}
		if err == nil {
			assert.NotNil(t, entry.Instruction)
			assert.Equal(t, entry.Instruction, kindInstruction(t, ins.Kind))
		}
	}
}

// kindInstruction returns the opcode table instruction that executes as the kind.
func kindInstruction(t *testing.T, kind Kind) *cpu.Instruction {
	t.Helper()

	switch kind {
	case Cls:
		return cpu.Cls
	case Ret:
		return cpu.Ret
	case Jp, JpV0:
		return cpu.Jp
	case Call:
		return cpu.Call
	case SeImm, SeReg:
		return cpu.Se
	case SneImm, SneReg:
		return cpu.Sne
	case AddImm, AddReg, AddIVx:
		return cpu.Add
	case Or:
		return cpu.Or
	case And:
		return cpu.And
	case Xor:
		return cpu.Xor
	case Sub:
		return cpu.Sub
	case Subn:
		return cpu.Subn
	case Shr:
		return cpu.Shr
	case Shl:
		return cpu.Shl
	case Rnd:
		return cpu.Rnd
	case Drw:
		return cpu.Drw
	case Skp:
		return cpu.Skp
	case Sknp:
		return cpu.Sknp
	case LdImm, LdReg, LdI, LdVxDT, LdVxK, LdDTVx, LdSTVx, LdFVx, LdBVx, LdIVx, LdVxI:
		return cpu.Ld
	}

	t.Fatalf("kind %s has no opcode table instruction", kind)
	return nil
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "CLS", Cls.String())
	assert.Equal(t, "LD Vx, [I]", LdVxI.String())
	assert.Equal(t, "invalid", Kind(200).String())
}
