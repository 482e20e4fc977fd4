// Package pipeline orchestrates the emulator workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/screen"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete load and run workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// Result contains the statistics of a program run.
type Result struct {
	Cycles         uint64 // executed cycles, including failed ones
	SkippedErrors  int    // failing instructions that were skipped
	FrameUpdates   int    // cycles that changed the framebuffer
	ProgramCounter uint16 // address of the next opcode when the run ended
}

// New creates a new emulator pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(chip8.MaxProgramSize),
	}
}

// Execute runs the complete pipeline: detect the system, load the ROM and
// either list or run the program.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, writer io.Writer) error {
	system, err := p.detector.Detect(opts)
	if err != nil {
		return fmt.Errorf("detecting system: %w", err)
	}

	program, err := p.loader.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	p.printInfo(opts, system, len(program))

	if opts.Disassemble {
		if err := ListProgram(writer, program); err != nil {
			return fmt.Errorf("listing program: %w", err)
		}
		return nil
	}

	if _, err := p.ExecuteProgram(ctx, program, opts, writer); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// ExecuteProgram runs the program image on a new machine.
// This is useful for testing and programmatic usage where the program is already in memory.
func (p *Pipeline) ExecuteProgram(ctx context.Context, program []byte, opts options.Program,
	writer io.Writer) (Result, error) {

	machine := chip8.New(p.machineOptions(opts)...)
	if err := machine.LoadProgram(program); err != nil {
		return Result{}, fmt.Errorf("loading program into memory: %w", err)
	}

	host := NewHost(machine)
	for _, key := range opts.Keys {
		if err := host.SetKey(key, true); err != nil {
			return Result{}, fmt.Errorf("pressing key: %w", err)
		}
	}

	result, err := p.run(ctx, host, opts.Machine)
	result.ProgramCounter = host.ProgramCounter()

	if !opts.Quiet {
		p.logger.Info("Run finished",
			log.Int("cycles", int(result.Cycles)),
			log.Int("frame_updates", result.FrameUpdates),
			log.Int("skipped_errors", result.SkippedErrors),
			log.Hex("pc", result.ProgramCounter))
	}

	if opts.Screen {
		pins, _ := host.Frame()
		if _, werr := io.WriteString(writer, screen.Render(pins)); werr != nil && err == nil {
			err = fmt.Errorf("writing screen: %w", werr)
		}
	}

	return result, err
}

// run executes cycles until the configured count is reached, the context is
// canceled or an instruction fails with the halt policy.
func (p *Pipeline) run(ctx context.Context, host *Host, opts options.Machine) (Result, error) {
	var result Result

	var tick <-chan time.Time
	if interval := opts.CycleInterval(); interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for opts.Cycles == 0 || result.Cycles < opts.Cycles {
		if tick != nil {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-tick:
			}
		} else if err := ctx.Err(); err != nil {
			return result, err
		}

		result.Cycles++
		if err := host.Cycle(); err != nil {
			if opts.OnError != options.SkipOnError {
				return result, fmt.Errorf("executing cycle %d: %w", result.Cycles, err)
			}

			p.logger.Warn("Skipping failing instruction",
				log.Int("cycle", int(result.Cycles)),
				log.Err(err))
			host.Skip()
			result.SkippedErrors++
			continue
		}

		if _, changed := host.Frame(); changed {
			result.FrameUpdates++
		}
	}

	return result, nil
}

func (p *Pipeline) machineOptions(opts options.Program) []chip8.Option {
	var machineOpts []chip8.Option
	if opts.Debug {
		machineOpts = append(machineOpts, chip8.WithLogger(p.logger))
	}
	if opts.Seed != 0 {
		machineOpts = append(machineOpts, chip8.WithRandom(rand.New(rand.NewSource(opts.Seed))))
	}
	return machineOpts
}

// printInfo prints information about the ROM being processed.
func (p *Pipeline) printInfo(opts options.Program, system arch.System, size int) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Processing Chip-8 ROM",
		log.String("file", opts.Input),
		log.Stringer("system", system),
		log.Int("size", size),
	)
}

// ListProgram writes the disassembly of the program image. Every line contains
// the memory address, the raw opcode and its mnemonic. A blank line separates
// code blocks after unconditional jumps and returns.
func ListProgram(writer io.Writer, program []byte) error {
	address := chip8.ProgramStart

	for i := 0; i < len(program); i += 2 {
		if i+1 == len(program) {
			_, err := fmt.Fprintf(writer, "$%03X: %02X    .byte $%02X\n", address+i, program[i], program[i])
			return err
		}

		opcode := uint16(program[i])<<8 | uint16(program[i+1])
		if _, err := fmt.Fprintf(writer, "$%03X: %04X  %s\n", address+i, opcode, disasm.Disassemble(opcode)); err != nil {
			return err
		}

		if info, ok := disasm.Lookup(opcode); ok && (info.Jump || info.Return) {
			if _, err := fmt.Fprintln(writer); err != nil {
				return err
			}
		}
	}
	return nil
}
