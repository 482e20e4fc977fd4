package chip8

import (
	"math/rand"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// Memory and machine layout constants.
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 4096

	// ProgramStart is the memory address where programs are loaded and
	// where execution begins.
	ProgramStart = 0x200

	// MaxProgramSize is the maximum size of a program image in bytes.
	MaxProgramSize = MemorySize - ProgramStart

	// LastOpcodeAddress is the highest program counter value that an
	// opcode can be fetched from.
	LastOpcodeAddress = MemorySize - opcodeSize

	RegisterCount = 16
	StackSize     = 16
	PinCount      = 16

	// FlagRegister is the index of VF, used as carry, borrow, shift and
	// collision flag by several instructions.
	FlagRegister = 0xF

	// TimerResolution is the number of executed cycles between two timer decrements.
	TimerResolution = 10
)

const opcodeSize = 2

// RandomSource provides the random bytes for the RND instruction.
// *rand.Rand satisfies this interface.
type RandomSource interface {
	Intn(n int) int
}

// Option configures a Chip8 on creation.
type Option func(*Chip8)

// WithLogger enables tracing of every executed instruction at debug level.
func WithLogger(logger *log.Logger) Option {
	return func(c *Chip8) {
		c.logger = logger
	}
}

// WithRandom sets the random source used by the RND instruction.
func WithRandom(random RandomSource) Option {
	return func(c *Chip8) {
		c.random = random
	}
}

// Chip8 is the complete state of a CHIP-8 virtual machine.
type Chip8 struct {
	memory    [MemorySize]byte
	registers [RegisterCount]byte
	index     uint16
	pc        uint16

	stack [StackSize]uint16
	sp    uint8

	delayTimer          byte
	soundTimer          byte
	cyclesSinceTimerDec int

	inputPins  [PinCount]bool
	outputPins [PixelCount]bool
	draw       bool

	logger *log.Logger
	random RandomSource
}

// New returns a new machine with the font preloaded and the program counter
// set to ProgramStart.
func New(options ...Option) *Chip8 {
	c := &Chip8{
		pc: ProgramStart,
	}
	copy(c.memory[FontOffset:], font[:])

	for _, option := range options {
		option(c)
	}
	if c.random == nil {
		c.random = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return c
}

// LoadProgram copies the program image into memory starting at ProgramStart.
// A program larger than MaxProgramSize is rejected without modifying memory.
func (c *Chip8) LoadProgram(program []byte) error {
	if len(program) > MaxProgramSize {
		return &ProgramTooLargeError{Size: len(program)}
	}
	copy(c.memory[ProgramStart:], program)
	return nil
}

// Cycle executes a single instruction and decrements the timers every
// TimerResolution cycles. A failing instruction does not modify the machine
// state and does not count towards the timer cadence.
func (c *Chip8) Cycle() error {
	op, err := c.fetch()
	if err != nil {
		return err
	}

	ins, err := DecodeInstruction(op)
	if err != nil {
		return &UnknownOpcodeError{Address: c.pc, Opcode: op.Value()}
	}

	if c.logger != nil {
		c.logger.Debug("Executing instruction",
			log.Hex("address", c.pc),
			log.Hex("opcode", op.Value()),
			log.Stringer("instruction", ins.Kind))
	}

	if err := c.execute(ins); err != nil {
		return err
	}

	c.tickTimers()
	return nil
}

// SkipOpcode moves the program counter past the current opcode without
// executing it. Hosts use it to continue after a failing instruction.
func (c *Chip8) SkipOpcode() {
	c.advance()
}

// fetch reads the big-endian opcode at the program counter.
func (c *Chip8) fetch() (Opcode, error) {
	if c.pc > LastOpcodeAddress {
		return Opcode{}, &AddressError{Address: c.pc}
	}
	return Decode(c.memory[c.pc], c.memory[c.pc+1]), nil
}

func (c *Chip8) tickTimers() {
	c.cyclesSinceTimerDec++
	if c.cyclesSinceTimerDec < TimerResolution {
		return
	}

	if c.delayTimer > 0 {
		c.delayTimer--
	}
	if c.soundTimer > 0 {
		c.soundTimer--
	}
	c.cyclesSinceTimerDec = 0
}

// SetInputPin sets the state of the key latch pin.
func (c *Chip8) SetInputPin(pin int, value bool) error {
	if pin < 0 || pin >= PinCount {
		return &InvalidPinError{Pin: pin}
	}
	c.inputPins[pin] = value
	return nil
}

// ResetInputPins releases all key latches.
func (c *Chip8) ResetInputPins() {
	c.inputPins = [PinCount]bool{}
}

// InputPin returns the state of the key latch pin.
func (c *Chip8) InputPin(pin int) bool {
	if pin < 0 || pin >= PinCount {
		return false
	}
	return c.inputPins[pin]
}

// Register returns the value of register Vx.
func (c *Chip8) Register(x int) byte {
	return c.registers[x&0xF]
}

// Index returns the index register I.
func (c *Chip8) Index() uint16 {
	return c.index
}

// ProgramCounter returns the address of the next instruction to execute.
func (c *Chip8) ProgramCounter() uint16 {
	return c.pc
}

// StackPointer returns the number of used stack levels.
func (c *Chip8) StackPointer() int {
	return int(c.sp)
}

// StackTop returns the most recently pushed return address.
func (c *Chip8) StackTop() (uint16, bool) {
	if c.sp == 0 {
		return 0, false
	}
	return c.stack[c.sp-1], true
}

// DelayTimer returns the current delay timer value.
func (c *Chip8) DelayTimer() byte {
	return c.delayTimer
}

// SoundTimer returns the current sound timer value.
func (c *Chip8) SoundTimer() byte {
	return c.soundTimer
}

// Sound returns whether the sound output is active.
func (c *Chip8) Sound() bool {
	return c.soundTimer > 0
}

// Memory returns the byte stored at the address, wrapped to the memory size.
func (c *Chip8) Memory(address uint16) byte {
	return c.memory[address%MemorySize]
}
