package chip8

import (
	"errors"

	cpu "github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Kind identifies one of the supported instructions.
type Kind uint8

// All supported instruction kinds. The comment lists the opcode encoding.
const (
	Invalid Kind = iota
	Cls          // 00E0
	Ret          // 00EE
	Jp           // 1NNN
	Call         // 2NNN
	SeImm        // 3XNN
	SneImm       // 4XNN
	SeReg        // 5XY0
	LdImm        // 6XNN
	AddImm       // 7XNN
	LdReg        // 8XY0
	Or           // 8XY1
	And          // 8XY2
	Xor          // 8XY3
	AddReg       // 8XY4
	Sub          // 8XY5
	Shr          // 8XY6
	Subn         // 8XY7
	Shl          // 8XYE
	SneReg       // 9XY0
	LdI          // ANNN
	JpV0         // BNNN
	Rnd          // CXNN
	Drw          // DXYN
	Skp          // EX9E
	Sknp         // EXA1
	LdVxDT       // FX07
	LdVxK        // FX0A
	LdDTVx       // FX15
	LdSTVx       // FX18
	AddIVx       // FX1E
	LdFVx        // FX29
	LdBVx        // FX33
	LdIVx        // FX55
	LdVxI        // FX65
)

var kindNames = [...]string{
	Invalid: "invalid",
	Cls:     "CLS",
	Ret:     "RET",
	Jp:      "JP",
	Call:    "CALL",
	SeImm:   "SE Vx, byte",
	SneImm:  "SNE Vx, byte",
	SeReg:   "SE Vx, Vy",
	LdImm:   "LD Vx, byte",
	AddImm:  "ADD Vx, byte",
	LdReg:   "LD Vx, Vy",
	Or:      "OR",
	And:     "AND",
	Xor:     "XOR",
	AddReg:  "ADD Vx, Vy",
	Sub:     "SUB",
	Shr:     "SHR",
	Subn:    "SUBN",
	Shl:     "SHL",
	SneReg:  "SNE Vx, Vy",
	LdI:     "LD I, addr",
	JpV0:    "JP V0, addr",
	Rnd:     "RND",
	Drw:     "DRW",
	Skp:     "SKP",
	Sknp:    "SKNP",
	LdVxDT:  "LD Vx, DT",
	LdVxK:   "LD Vx, K",
	LdDTVx:  "LD DT, Vx",
	LdSTVx:  "LD ST, Vx",
	AddIVx:  "ADD I, Vx",
	LdFVx:   "LD F, Vx",
	LdBVx:   "LD B, Vx",
	LdIVx:   "LD [I], Vx",
	LdVxI:   "LD Vx, [I]",
}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return kindNames[Invalid]
	}
	return kindNames[k]
}

// Instruction is a decoded opcode. Only the fields used by the Kind are set.
type Instruction struct {
	Kind    Kind
	X       byte   // first register index
	Y       byte   // second register index
	N       byte   // 4 bit immediate, sprite height for DRW
	Value   byte   // 8 bit immediate
	Address uint16 // 12 bit address
}

var errUnknownOpcode = errors.New("unknown opcode")

// loadKinds maps the low byte of the FXNN class to the kind of the LD
// instruction variant.
var loadKinds = map[byte]Kind{
	0x07: LdVxDT,
	0x0A: LdVxK,
	0x15: LdDTVx,
	0x18: LdSTVx,
	0x29: LdFVx,
	0x33: LdBVx,
	0x55: LdIVx,
	0x65: LdVxI,
}

// ResolveOpcode matches the opcode against the retrogolib opcode table of
// its instruction class.
func ResolveOpcode(op Opcode) (cpu.Opcode, bool) {
	value := op.Value()
	for _, entry := range cpu.Opcodes[int(op.Class())] {
		if entry.Info.Mask&value == entry.Info.Value {
			return entry, true
		}
	}
	return cpu.Opcode{}, false
}

// DecodeInstruction resolves the opcode to an instruction. Opcodes that are
// not in the opcode table or that have no supported variant of the resolved
// instruction are unknown.
func DecodeInstruction(op Opcode) (Instruction, error) {
	entry, ok := ResolveOpcode(op)
	if !ok {
		return Instruction{}, errUnknownOpcode
	}

	kind := instructionKind(entry.Instruction, op)
	if kind == Invalid {
		return Instruction{}, errUnknownOpcode
	}
	return operands(kind, op), nil
}

// instructionKind maps the table instruction to its kind. Instructions that
// share a mnemonic are told apart by the instruction class.
func instructionKind(ins *cpu.Instruction, op Opcode) Kind {
	class := op.Class()
	_, _, n := op.Operands()
	_, value := op.RegAndValue()

	switch ins {
	case cpu.Cls:
		return Cls
	case cpu.Ret:
		return Ret
	case cpu.Call:
		return Call
	case cpu.Rnd:
		return Rnd
	case cpu.Drw:
		return Drw
	case cpu.Skp:
		return Skp
	case cpu.Sknp:
		return Sknp
	case cpu.Or:
		return Or
	case cpu.And:
		return And
	case cpu.Xor:
		return Xor
	case cpu.Sub:
		return Sub
	case cpu.Subn:
		return Subn
	case cpu.Shr:
		return Shr
	case cpu.Shl:
		return Shl

	case cpu.Jp:
		switch class {
		case 0x1:
			return Jp
		case 0xB:
			return JpV0
		}

	case cpu.Se:
		switch {
		case class == 0x3:
			return SeImm
		case class == 0x5 && n == 0:
			return SeReg
		}

	case cpu.Sne:
		switch {
		case class == 0x4:
			return SneImm
		case class == 0x9 && n == 0:
			return SneReg
		}

	case cpu.Add:
		switch {
		case class == 0x7:
			return AddImm
		case class == 0x8 && n == 0x4:
			return AddReg
		case class == 0xF && value == 0x1E:
			return AddIVx
		}

	case cpu.Ld:
		switch {
		case class == 0x6:
			return LdImm
		case class == 0x8 && n == 0:
			return LdReg
		case class == 0xA:
			return LdI
		case class == 0xF:
			return loadKinds[value]
		}
	}

	return Invalid
}

// operands extracts the payload fields used by the instruction kind.
func operands(kind Kind, op Opcode) Instruction {
	x, y, n := op.Operands()
	_, value := op.RegAndValue()

	switch kind {
	case Cls, Ret:
		return Instruction{Kind: kind}
	case Jp, Call, LdI, JpV0:
		return Instruction{Kind: kind, Address: op.Address()}
	case SeImm, SneImm, LdImm, AddImm, Rnd:
		return Instruction{Kind: kind, X: x, Value: value}
	case Drw:
		return Instruction{Kind: kind, X: x, Y: y, N: n}
	case Skp, Sknp, LdVxDT, LdVxK, LdDTVx, LdSTVx, AddIVx, LdFVx, LdBVx, LdIVx, LdVxI:
		return Instruction{Kind: kind, X: x}
	default:
		return Instruction{Kind: kind, X: x, Y: y}
	}
}
