package cli

import (
	"errors"
	"flag"
	"os"
	"testing"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

var testFrontends = []string{"desktop", "headless", "terminal"}

func parseArgs(t *testing.T, args ...string) (options.Program, error) {
	t.Helper()

	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = append([]string{"prog"}, args...)

	return ParseFlags(testFrontends)
}

func TestParseFlags_Defaults(t *testing.T) {
	opts, err := parseArgs(t, "pong.ch8")
	assert.NoError(t, err)

	assert.Equal(t, "pong.ch8", opts.Input)
	assert.Equal(t, options.DefaultFrontend, opts.Frontend)
	assert.Equal(t, options.DefaultCyclesPerFrame, opts.CyclesPerFrame)
	assert.Equal(t, uint64(options.DefaultMaxCycles), opts.MaxCycles)
	assert.Equal(t, options.DefaultScale, opts.Scale)
	assert.Equal(t, uint64(0), opts.Seed)
	assert.False(t, opts.MaskRandom)
	assert.False(t, opts.Trace)
}

func TestParseFlags_Options(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		check func(t *testing.T, opts options.Program)
	}{
		{
			name: "frontend is lower cased",
			args: []string{"-frontend", "HEADLESS", "pong.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, "headless", opts.Frontend)
			},
		},
		{
			name: "input flag instead of positional",
			args: []string{"-i", "game.rom"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, "game.rom", opts.Input)
			},
		},
		{
			name: "machine flags",
			args: []string{"-seed", "42", "-mask-random", "-cpf", "20", "-cycles", "0", "pong.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, uint64(42), opts.Seed)
				assert.True(t, opts.MaskRandom)
				assert.Equal(t, 20, opts.CyclesPerFrame)
				assert.Equal(t, uint64(0), opts.MaxCycles)
			},
		},
		{
			name: "output files",
			args: []string{"-disasm", "-", "-screenshot", "out.png", "-save-state", "s.gob", "-load-state", "l.gob", "pong.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, "-", opts.Disasm)
				assert.Equal(t, "out.png", opts.Screenshot)
				assert.Equal(t, "s.gob", opts.SaveState)
				assert.Equal(t, "l.gob", opts.LoadState)
			},
		},
		{
			name: "listing flags",
			args: []string{"-nohexcomments", "-nooffsets", "-z", "pong.ch8"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				disasm := options.NewDisassembler(opts)
				assert.False(t, disasm.HexComments)
				assert.False(t, disasm.OffsetComments)
				assert.True(t, disasm.ZeroBytes)
			},
		},
		{
			name: "system is lower cased",
			args: []string{"-s", "CHIP8", "pong.bin"},
			check: func(t *testing.T, opts options.Program) {
				t.Helper()
				assert.Equal(t, "chip8", opts.System)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseArgs(t, tt.args...)
			assert.NoError(t, err)
			tt.check(t, opts)
		})
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		usageError bool
		errContain string
	}{
		{
			name:       "no ROM file",
			args:       []string{},
			usageError: true,
		},
		{
			name:       "flag after ROM file",
			args:       []string{"pong.ch8", "-debug"},
			usageError: true,
			errContain: "found after ROM file",
		},
		{
			name:       "unknown frontend",
			args:       []string{"-frontend", "vga", "pong.ch8"},
			errContain: "Valid options: desktop, headless, terminal",
		},
		{
			name:       "zero cycles per frame",
			args:       []string{"-cpf", "0", "pong.ch8"},
			errContain: "invalid cycles per frame",
		},
		{
			name:       "zero scale",
			args:       []string{"-scale", "0", "pong.ch8"},
			errContain: "invalid scale",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseArgs(t, tt.args...)
			assert.Error(t, err)

			var usageErr *UsageError
			assert.Equal(t, tt.usageError, errors.As(err, &usageErr))
			if tt.errContain != "" {
				assert.ErrorContains(t, err, tt.errContain)
			}
		})
	}
}

func TestReadOptionFlags_FrontendUsage(t *testing.T) {
	flags := flag.NewFlagSet("test", flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)

	frontend := flags.Lookup("frontend")
	assert.NotNil(t, frontend)
	assert.Contains(t, frontend.Usage, "terminal does not read keyboard input")
	assert.Equal(t, options.DefaultFrontend, frontend.DefValue)
}
