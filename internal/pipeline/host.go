package pipeline

import (
	"sync"

	"github.com/retroenv/retrochip8/internal/chip8"
)

// Host serializes the access to a machine, so that key events can be
// delivered from other goroutines while the run loop executes cycles.
type Host struct {
	mu      sync.Mutex
	machine *chip8.Chip8
}

// NewHost returns a host owning the machine.
func NewHost(machine *chip8.Chip8) *Host {
	return &Host{
		machine: machine,
	}
}

// Cycle executes a single machine cycle.
func (h *Host) Cycle() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.machine.Cycle()
}

// Skip moves the machine past the current opcode.
func (h *Host) Skip() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.machine.SkipOpcode()
}

// SetKey sets the state of a key latch.
func (h *Host) SetKey(key int, pressed bool) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.machine.SetInputPin(key, pressed)
}

// ReleaseKeys releases all key latches.
func (h *Host) ReleaseKeys() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.machine.ResetInputPins()
}

// Frame returns the framebuffer and whether it changed since the last call.
func (h *Host) Frame() ([chip8.PixelCount]bool, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	changed := h.machine.DrawPending()
	h.machine.ClearDrawFlag()
	return h.machine.OutputPins(), changed
}

// ProgramCounter returns the address of the next opcode to execute.
func (h *Host) ProgramCounter() uint16 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.machine.ProgramCounter()
}
