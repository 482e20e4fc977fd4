package detector

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestDetect(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tests := []struct {
		name       string
		systemOpt  string
		inputFile  string
		wantSystem arch.System
		wantErr    bool
	}{
		{
			name:       "explicit CHIP8 system option",
			systemOpt:  "chip8",
			inputFile:  "game.nes",
			wantSystem: arch.CHIP8System,
		},
		{
			name:      "explicit NES system option",
			systemOpt: "nes",
			inputFile: "game.ch8",
			wantErr:   true,
		},
		{
			name:      "unknown system option",
			systemOpt: "gameboy",
			inputFile: "game.ch8",
			wantErr:   true,
		},
		{
			name:       "detect from .ch8 extension",
			inputFile:  "game.ch8",
			wantSystem: arch.CHIP8System,
		},
		{
			name:       "detect from .rom extension",
			inputFile:  "game.rom",
			wantSystem: arch.CHIP8System,
		},
		{
			name:       "unknown extension defaults to CHIP8",
			inputFile:  "game.bin",
			wantSystem: arch.CHIP8System,
		},
		{
			name:      "detect NES from .nes extension",
			inputFile: "game.nes",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := options.Program{
				Parameters: options.Parameters{Input: tt.inputFile},
				Flags:      options.Flags{System: tt.systemOpt},
			}

			got, err := d.Detect(opts)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantSystem, got)
		})
	}
}

func TestDetectFromFile(t *testing.T) {
	logger := log.NewTestLogger(t)
	d := New(logger)

	tests := []struct {
		name       string
		filename   string
		wantSystem arch.System
	}{
		{
			name:       ".nes extension",
			filename:   "super_mario.nes",
			wantSystem: arch.NES,
		},
		{
			name:       ".NES extension (uppercase)",
			filename:   "ZELDA.NES",
			wantSystem: arch.NES,
		},
		{
			name:       ".ch8 extension",
			filename:   "pong.ch8",
			wantSystem: arch.CHIP8System,
		},
		{
			name:       "no extension",
			filename:   "game",
			wantSystem: arch.CHIP8System,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := d.detectFromFile(tt.filename)
			assert.Equal(t, tt.wantSystem, got)
		})
	}
}
