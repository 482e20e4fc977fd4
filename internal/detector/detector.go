// Package detector handles system architecture detection.
package detector

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// Detector handles system architecture detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new system detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the system architecture from options or file auto-detection.
// An explicitly specified system takes precedence over the file extension.
// Only CHIP-8 programs can be run, any other system results in an error.
func (d *Detector) Detect(opts options.Program) (arch.System, error) {
	system, _ := arch.SystemFromString(opts.System)
	switch {
	case opts.System != "" && system == "":
		return "", fmt.Errorf("unsupported system '%s'", opts.System)

	case system == "":
		system = d.detectFromFile(opts.Input)
		d.logger.Debug("Auto-detected system",
			log.Stringer("system", system),
			log.String("file", opts.Input))
	}

	if system != arch.CHIP8System {
		return "", fmt.Errorf("system '%s' is not supported by the emulator", system)
	}
	return system, nil
}

// detectFromFile determines the system type based on file extension.
func (d *Detector) detectFromFile(filename string) arch.System {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".nes":
		return arch.NES
	default:
		// .ch8, .c8, .rom and raw binaries without a known extension
		return arch.CHIP8System
	}
}
