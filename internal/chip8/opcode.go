package chip8

// Opcode is a raw 2 byte instruction split into its instruction class
// (the top nibble) and the 12 bit payload.
type Opcode struct {
	class   byte
	payload uint16
}

// Decode splits the 2 raw bytes of an instruction into class and payload.
// Decoding never fails, the validity of an opcode is checked by
// DecodeInstruction.
func Decode(b0, b1 byte) Opcode {
	return Opcode{
		class:   b0 >> 4,
		payload: uint16(b0&0x0F)<<8 | uint16(b1),
	}
}

// DecodeWord decodes the big-endian opcode word.
func DecodeWord(word uint16) Opcode {
	return Decode(byte(word>>8), byte(word))
}

// Class returns the instruction class nibble.
func (o Opcode) Class() byte {
	return o.class
}

// Value returns the complete 16 bit opcode.
func (o Opcode) Value() uint16 {
	return uint16(o.class)<<12 | o.payload
}

// Address interprets the payload as a 12 bit address.
func (o Opcode) Address() uint16 {
	return o.payload
}

// RegAndValue interprets the payload as register index and 8 bit immediate.
func (o Opcode) RegAndValue() (reg, value byte) {
	return byte(o.payload >> 8), byte(o.payload)
}

// Operands interprets the payload as three separate nibbles.
func (o Opcode) Operands() (op1, op2, op3 byte) {
	return byte(o.payload >> 8), byte(o.payload>>4) & 0x0F, byte(o.payload) & 0x0F
}
