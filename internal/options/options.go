// Package options contains the program options.
package options

import (
	"time"
)

// ErrorPolicy defines how the runner reacts to errors returned by the machine.
type ErrorPolicy string

// Supported error policies.
const (
	// HaltOnError stops the run and returns the error.
	HaltOnError ErrorPolicy = "halt"
	// SkipOnError logs the error and continues with the next opcode.
	SkipOnError ErrorPolicy = "skip"
)

// DefaultCycles is the number of cycles executed when no count is given.
const DefaultCycles = 1000

// Parameters contains file path options.
type Parameters struct {
	Input  string // input ROM file
	Output string // output file for the listing or screen, stdout if empty
	Batch  string // glob pattern of ROM files to process
}

// Flags contains behavior options.
type Flags struct {
	System      string // target system, auto-detected from the file extension if empty
	Disassemble bool   // list the program instead of running it
	Screen      bool   // print the framebuffer after the run
	Debug       bool
	Quiet       bool
}

// Machine contains the options controlling the emulation run.
type Machine struct {
	Cycles  uint64 // number of cycles to execute, 0 runs until interrupted
	Hz      int    // cycles per second, 0 runs unthrottled
	Keys    []int  // key indices held down during the run
	Seed    int64  // random seed for the RND instruction, 0 uses the current time
	OnError ErrorPolicy
}

// Program options of the emulator.
type Program struct {
	Parameters
	Flags
	Machine
}

// CycleInterval returns the duration between two cycles, 0 for unthrottled runs.
func (m Machine) CycleInterval() time.Duration {
	if m.Hz <= 0 {
		return 0
	}
	return time.Second / time.Duration(m.Hz)
}
