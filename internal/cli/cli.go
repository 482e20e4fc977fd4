// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses command line flags and returns the program options.
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	var keys, onError string
	readOptionFlags(flags, &opts, &keys, &onError)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "" && opts.Batch == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}
	if opts.Input == "" && len(args) > 0 {
		opts.Input = args[0]
	}

	if err := normalizeOptions(&opts, keys, onError); err != nil {
		return opts, err
	}
	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions parses and validates the option values that need conversion.
func normalizeOptions(opts *options.Program, keys, onError string) error {
	policy := options.ErrorPolicy(strings.ToLower(onError))
	switch policy {
	case options.HaltOnError, options.SkipOnError:
		opts.OnError = policy
	default:
		return fmt.Errorf("unsupported error policy: %s. Valid options: %s, %s",
			onError, options.HaltOnError, options.SkipOnError)
	}

	if opts.Hz < 0 {
		return fmt.Errorf("invalid cycle rate %d", opts.Hz)
	}

	parsed, err := parseKeys(keys)
	if err != nil {
		return err
	}
	opts.Keys = parsed
	return nil
}

// parseKeys parses a comma separated list of hex key indices.
func parseKeys(keys string) ([]int, error) {
	if keys == "" {
		return nil, nil
	}

	var result []int
	for _, key := range strings.Split(keys, ",") {
		key = strings.TrimSpace(key)
		value, err := strconv.ParseUint(key, 16, 8)
		if err != nil || value > 0xF {
			return nil, fmt.Errorf("invalid key '%s', keys are hex digits 0-F", key)
		}
		result = append(result, int(value))
	}
	return result, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program, keys, onError *string) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.Output, "o", "", "name of the output file for the listing or screen, stdout if empty")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask, for example *.ch8")
	flags.StringVar(&opts.System, "s", "", "system of the ROM (chip8) - if not auto-detected from file extension")
	flags.BoolVar(&opts.Disassemble, "disasm", false, "list the program instead of running it")
	flags.BoolVar(&opts.Screen, "screen", false, "print the framebuffer after the run")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging and instruction tracing")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")

	flags.Uint64Var(&opts.Cycles, "cycles", options.DefaultCycles, "number of cycles to execute, 0 runs until interrupted")
	flags.IntVar(&opts.Hz, "hz", 0, "cycles per second, 0 runs unthrottled")
	flags.Int64Var(&opts.Seed, "seed", 0, "random seed for the RND instruction, 0 uses the current time")
	flags.StringVar(keys, "keys", "", "comma separated hex key indices held down during the run, for example 1,a")
	flags.StringVar(onError, "on-error", string(options.HaltOnError), "reaction to program errors (halt/skip)")
}
