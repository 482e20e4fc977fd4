package chip8

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

// fixedRandom returns the same value for every call.
type fixedRandom int

func (r fixedRandom) Intn(int) int {
	return int(r)
}

// newWithProgram returns a machine with the opcodes loaded at ProgramStart.
func newWithProgram(t *testing.T, opcodes ...uint16) *Chip8 {
	t.Helper()

	program := make([]byte, 0, len(opcodes)*2)
	for _, op := range opcodes {
		program = append(program, byte(op>>8), byte(op))
	}

	c := New(WithRandom(fixedRandom(0xFF)))
	assert.NoError(t, c.LoadProgram(program))
	return c
}

func TestNew(t *testing.T) {
	c := New()

	assert.Equal(t, uint16(ProgramStart), c.ProgramCounter())
	assert.Equal(t, 0, c.StackPointer())
	assert.Equal(t, uint16(0), c.Index())
	if diff := cmp.Diff(font[:], c.memory[FontOffset:FontOffset+len(font)]); diff != "" {
		t.Errorf("font: (-want, +got)\n%s", diff)
	}
	assert.NotNil(t, c.random)
}

func TestLoadProgram(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr bool
	}{
		{"empty program", 0, false},
		{"small program", 4, false},
		{"maximum size", MaxProgramSize, false},
		{"too large", MaxProgramSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New()
			program := make([]byte, tt.size)
			for i := range program {
				program[i] = 0xAB
			}

			err := c.LoadProgram(program)
			if !tt.wantErr {
				assert.NoError(t, err)
				if tt.size > 0 {
					assert.Equal(t, byte(0xAB), c.Memory(ProgramStart))
					assert.Equal(t, byte(0xAB), c.Memory(uint16(ProgramStart+tt.size-1)))
				}
				return
			}

			var tooLarge *ProgramTooLargeError
			assert.True(t, errors.As(err, &tooLarge))
			assert.Equal(t, tt.size, tooLarge.Size)
			assert.Equal(t, byte(0), c.Memory(ProgramStart))
		})
	}
}

func TestCycleFetchOutOfBounds(t *testing.T) {
	c := New()
	c.pc = LastOpcodeAddress + 1

	err := c.Cycle()
	var addrErr *AddressError
	assert.True(t, errors.As(err, &addrErr))
	assert.Equal(t, uint16(LastOpcodeAddress+1), addrErr.Address)
}

func TestCycleUnknownOpcode(t *testing.T) {
	opcodes := []uint16{0x0000, 0x0123, 0x5121, 0x8128, 0x9121, 0xE1FF, 0xF1FF}

	for _, op := range opcodes {
		c := newWithProgram(t, op)

		err := c.Cycle()
		var unknown *UnknownOpcodeError
		assert.True(t, errors.As(err, &unknown), "opcode %04X", op)
		assert.Equal(t, op, unknown.Opcode)
		assert.Equal(t, uint16(ProgramStart), unknown.Address)
		assert.Equal(t, uint16(ProgramStart), c.ProgramCounter())
	}
}

func TestTimerCadence(t *testing.T) {
	program := make([]uint16, TimerResolution)
	for i := range program {
		program[i] = 0x6000 // LD V0, $00
	}
	c := newWithProgram(t, program...)
	c.delayTimer = 1
	c.soundTimer = 2

	for i := 1; i < TimerResolution; i++ {
		assert.NoError(t, c.Cycle())
		assert.Equal(t, byte(1), c.DelayTimer(), "cycle %d", i)
	}

	assert.NoError(t, c.Cycle())
	assert.Equal(t, byte(0), c.DelayTimer())
	assert.Equal(t, byte(1), c.SoundTimer())
	assert.True(t, c.Sound())
	assert.Equal(t, 0, c.cyclesSinceTimerDec)
}

func TestTimerFloor(t *testing.T) {
	c := New()
	for i := 0; i < TimerResolution*3; i++ {
		c.tickTimers()
	}
	assert.Equal(t, byte(0), c.DelayTimer())
	assert.Equal(t, byte(0), c.SoundTimer())
	assert.False(t, c.Sound())
}

func TestFailedCycleDoesNotTickTimers(t *testing.T) {
	c := newWithProgram(t, 0xFFFF)
	c.cyclesSinceTimerDec = TimerResolution - 1
	c.delayTimer = 5

	assert.Error(t, c.Cycle())
	assert.Equal(t, byte(5), c.DelayTimer())
	assert.Equal(t, TimerResolution-1, c.cyclesSinceTimerDec)
}

func TestInputPins(t *testing.T) {
	c := New()

	assert.NoError(t, c.SetInputPin(0x3, true))
	assert.NoError(t, c.SetInputPin(0xF, true))
	assert.True(t, c.InputPin(0x3))
	assert.True(t, c.InputPin(0xF))

	var pinErr *InvalidPinError
	assert.True(t, errors.As(c.SetInputPin(PinCount, true), &pinErr))
	assert.True(t, errors.As(c.SetInputPin(-1, true), &pinErr))
	assert.False(t, c.InputPin(PinCount))

	c.ResetInputPins()
	for pin := 0; pin < PinCount; pin++ {
		assert.False(t, c.InputPin(pin))
	}
}

func TestCycleTracing(t *testing.T) {
	c := New(WithLogger(log.NewTestLogger(t)))
	assert.NoError(t, c.LoadProgram([]byte{0x6A, 0x12}))

	assert.NoError(t, c.Cycle())
	assert.Equal(t, byte(0x12), c.Register(0xA))
}
