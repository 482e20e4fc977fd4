// Package chip8 implements the CHIP-8 virtual machine core.
//
// # Machine State
//
// A Chip8 value owns the complete machine state:
//   - 4KB of memory with the character font preloaded at FontOffset
//   - 16 general-purpose 8-bit registers (V0-VF), VF doubles as flag register
//   - the 16-bit index register I and the program counter
//   - a 16 level call stack
//   - the delay and sound timers
//   - 16 input pins (key latches) and 2048 output pins (64x32 framebuffer)
//
// # Memory Layout
//
//	0x000-0x1FF: Interpreter area, the font is stored at FontOffset
//	0x200-0xFFF: Program space (MaxProgramSize bytes)
//
// # Execution
//
// The host drives the machine by calling Cycle repeatedly. Every call fetches
// the 2 byte big-endian opcode at the program counter, decodes it into an
// Instruction and executes it. Every TimerResolution executed cycles the delay
// and sound timers are decremented. The core has no notion of wall-clock time;
// a host that wants 60Hz timers has to call Cycle at 600Hz.
//
// The wait for key instruction (LD Vx, K) does not block: while no input pin
// is set it leaves the program counter unchanged, so the next Cycle call
// executes the same instruction again.
//
// # Errors
//
// Malformed programs do not panic. Cycle returns typed errors
// (UnknownOpcodeError, InvalidCharacterError, AddressError, ErrStackOverflow,
// ErrStackUnderflow) and leaves the machine state as it was before the failing
// instruction, so the host can decide to halt, skip or report.
//
// # Concurrency
//
// A Chip8 performs no locking. A host that calls Cycle from one goroutine and
// updates input pins from another has to serialize the access itself.
package chip8
