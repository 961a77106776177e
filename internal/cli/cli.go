// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
)

// ParseFlags parses command line flags and returns the program options.
// The frontend flag is validated against the given frontend names.
func ParseFlags(frontends []string) (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)
	readOutputFlags(flags, &opts)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}

	if err := normalizeOptions(&opts, frontends); err != nil {
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

// ShowUsage prints the error message if set and the flag defaults.
func (e *UsageError) ShowUsage() {
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	fmt.Printf("usage: retrochip8 [options] <ROM file to run>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after ROM file, please pass the ROM file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program, frontends []string) error {
	opts.System = strings.ToLower(opts.System)
	opts.Frontend = strings.ToLower(opts.Frontend)

	if !slices.Contains(frontends, opts.Frontend) {
		return fmt.Errorf("unsupported frontend: %s. Valid options: %s",
			opts.Frontend, strings.Join(frontends, ", "))
	}

	if opts.CyclesPerFrame < 1 {
		return fmt.Errorf("invalid cycles per frame %d, must be at least 1", opts.CyclesPerFrame)
	}
	if opts.Scale < 1 {
		return fmt.Errorf("invalid scale %d, must be at least 1", opts.Scale)
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.System, "s", "", "system of the ROM (chip8) - if not auto-detected from file extension")
	flags.StringVar(&opts.Frontend, "frontend", options.DefaultFrontend, "frontend to run the ROM with (desktop/terminal/headless/sdl), terminal does not read keyboard input")
	flags.IntVar(&opts.CyclesPerFrame, "cpf", options.DefaultCyclesPerFrame, "instructions executed per 60Hz frame")
	flags.Uint64Var(&opts.MaxCycles, "cycles", options.DefaultMaxCycles, "instructions to execute with the headless and terminal frontends, 0 runs until an error occurs")
	flags.IntVar(&opts.Scale, "scale", options.DefaultScale, "window scale factor")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 uses the current time")
	flags.BoolVar(&opts.MaskRandom, "mask-random", false, "apply the KK mask to the random byte of CXKK")
	flags.StringVar(&opts.Disasm, "disasm", "", "write a disassembly listing of the ROM to the file and exit, - prints it on console")
	flags.StringVar(&opts.Screenshot, "screenshot", "", "write the display as PNG image to the file on exit")
	flags.StringVar(&opts.SaveState, "save-state", "", "write the machine state to the file on exit")
	flags.StringVar(&opts.LoadState, "load-state", "", "restore the machine state from the file before running")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction at debug level")
	flags.BoolVar(&opts.Dump, "dump", false, "print the machine state on exit")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

func readOutputFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.BoolVar(&opts.NoHexComments, "nohexcomments", false, "do not output opcode bytes as hex values in listing comments")
	flags.BoolVar(&opts.NoOffsets, "nooffsets", false, "do not output addresses in listing comments")
	flags.BoolVar(&opts.DumpMemory, "dump-memory", false, "include a memory hexdump in the state dump")
	flags.BoolVar(&opts.ZeroBytes, "z", false, "output the trailing zero bytes of the ROM in the listing")
}
