// Package runner orchestrates loading a ROM and running it with a frontend.
package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/statedump"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// stdoutName selects the console as output file.
const stdoutName = "-"

// Runner orchestrates the complete emulation workflow.
type Runner struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new runner.
func New(logger *log.Logger) *Runner {
	return &Runner{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute loads the ROM and runs it with the selected frontend. Listings and
// state dumps that go to the console are written to w.
func (r *Runner) Execute(ctx context.Context, opts options.Program, registry *frontend.Registry, w io.Writer) error {
	system := r.detector.Detect(opts)

	rom, err := r.loader.Load(opts, system)
	if err != nil {
		return fmt.Errorf("loading ROM: %w", err)
	}

	if opts.Disasm != "" {
		return r.writeDisassembly(ctx, opts, rom, w)
	}

	return r.ExecuteWithROM(ctx, rom, opts, registry, w, system)
}

// ExecuteWithROM runs an already loaded ROM image with the selected frontend.
func (r *Runner) ExecuteWithROM(ctx context.Context, rom []byte, opts options.Program,
	registry *frontend.Registry, w io.Writer, system arch.System) error {

	machine, err := chip8.New(rom, config.MachineOptions(opts)...)
	if err != nil {
		return fmt.Errorf("creating machine: %w", err)
	}

	if opts.LoadState != "" {
		if err := loadState(machine, opts.LoadState); err != nil {
			return err
		}
	}

	fe, err := registry.Create(opts.Frontend, frontend.Config{
		Logger:    r.logger,
		Title:     windowTitle(opts.Input),
		Scale:     opts.Scale,
		MaxCycles: opts.MaxCycles,
	})
	if err != nil {
		return fmt.Errorf("creating frontend: %w", err)
	}

	r.printInfo(opts, rom, system, fe.Name())

	session := NewSession(r.logger, machine, opts.CyclesPerFrame, opts.Trace)
	runErr := fe.Run(ctx, session)
	if runErr != nil {
		runErr = fmt.Errorf("running %s frontend: %w", fe.Name(), runErr)
		r.logHalt(runErr)
	}

	if err := r.finish(opts, session, w); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}

// writeDisassembly writes the listing of the ROM to the file named by the
// options.
func (r *Runner) writeDisassembly(ctx context.Context, opts options.Program, rom []byte, w io.Writer) error {
	dis := disasm.New(r.logger, rom, options.NewDisassembler(opts))

	if opts.Disasm == stdoutName {
		if err := dis.Process(ctx, w); err != nil {
			return fmt.Errorf("disassembling: %w", err)
		}
		return nil
	}

	err := writeFile(opts.Disasm, func(f io.Writer) error {
		return dis.Process(ctx, f)
	})
	if err != nil {
		return fmt.Errorf("disassembling: %w", err)
	}

	if !opts.Quiet {
		r.logger.Info("Disassembly written", log.String("file", opts.Disasm))
	}
	return nil
}

// finish writes the outputs that are requested on exit.
func (r *Runner) finish(opts options.Program, session *Session, w io.Writer) error {
	if opts.SaveState != "" {
		if err := writeFile(opts.SaveState, session.SaveState); err != nil {
			return err
		}
		r.logger.Debug("State saved", log.String("file", opts.SaveState))
	}

	if opts.Screenshot != "" {
		fb := session.Framebuffer()
		err := writeFile(opts.Screenshot, func(f io.Writer) error {
			return frontend.SavePNG(f, &fb, opts.Scale)
		})
		if err != nil {
			return err
		}
		r.logger.Debug("Screenshot saved", log.String("file", opts.Screenshot))
	}

	if opts.Dump {
		dumpOpts := statedump.Options{Memory: opts.DumpMemory}
		if err := statedump.Write(w, session.Snapshot(), dumpOpts); err != nil {
			return fmt.Errorf("writing state dump: %w", err)
		}
	}
	return nil
}

// logHalt logs the faulting instruction of a halted machine.
func (r *Runner) logHalt(err error) {
	var execErr *chip8.ExecError
	if !errors.As(err, &execErr) {
		return
	}
	r.logger.Error("Machine halted",
		log.Hex("address", execErr.Address),
		log.Hex("opcode", execErr.Opcode),
		log.String("instruction", disasm.Format(execErr.Opcode)),
		log.Err(execErr.Err),
	)
}

// printInfo prints information about the ROM being run.
func (r *Runner) printInfo(opts options.Program, rom []byte, system arch.System, frontendName string) {
	if opts.Quiet {
		return
	}

	r.logger.Info("Running CHIP-8 ROM",
		log.String("file", opts.Input),
		log.String("system", string(system)),
		log.Int("size", len(rom)),
		log.String("frontend", frontendName),
	)
}

func loadState(machine *chip8.Machine, fileName string) error {
	file, err := os.Open(fileName)
	if err != nil {
		return fmt.Errorf("opening state file %s: %w", fileName, err)
	}
	defer func() { _ = file.Close() }()

	if err := machine.LoadState(file); err != nil {
		return fmt.Errorf("loading state file %s: %w", fileName, err)
	}
	return nil
}

// writeFile creates the file and passes it to the write function.
func writeFile(fileName string, write func(w io.Writer) error) error {
	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("creating file %s: %w", fileName, err)
	}

	if err := write(file); err != nil {
		_ = file.Close()
		return fmt.Errorf("writing file %s: %w", fileName, err)
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("closing file %s: %w", fileName, err)
	}
	return nil
}

func windowTitle(input string) string {
	if input == "" {
		return "CHIP-8"
	}
	return "CHIP-8 - " + filepath.Base(input)
}
