// Package terminal implements a frontend that renders the display and the
// register state as text into the terminal. It does not read any input.
package terminal

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	tm "github.com/buger/goterm"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrogolib/log"
)

// Name of the frontend.
const Name = "terminal"

const (
	pixelOn  = "█"
	pixelOff = " "

	panelColumn = chip8.DisplayWidth + 4 // first column of the register panel
)

// Terminal renders the emulation state into the terminal.
type Terminal struct {
	logger    *log.Logger
	title     string
	maxCycles uint64
}

// New returns a new terminal frontend.
func New(cfg frontend.Config) (frontend.Frontend, error) {
	return &Terminal{
		logger:    cfg.Logger,
		title:     cfg.Title,
		maxCycles: cfg.MaxCycles,
	}, nil
}

// Name returns the name of the frontend.
func (t *Terminal) Name() string {
	return Name
}

// Run executes a frame and redraws the terminal at the frame rate until the
// context is cancelled, the machine halts or the cycle limit is reached.
func (t *Terminal) Run(ctx context.Context, emu frontend.Emulator) error {
	ticker := time.NewTicker(time.Second / frontend.FrameRate)
	defer ticker.Stop()

	for t.maxCycles == 0 || emu.Cycles() < t.maxCycles {
		select {
		case <-ctx.Done():
			return fmt.Errorf("running emulation: %w", ctx.Err())
		case <-ticker.C:
		}

		err := frontend.AdvanceFrame(emu, t.maxCycles)
		t.render(emu, err)
		if err != nil {
			return fmt.Errorf("running frame: %w", err)
		}
	}
	return nil
}

func (t *Terminal) render(emu frontend.Emulator, haltErr error) {
	tm.Clear()
	tm.MoveCursor(1, 1)

	fb := emu.Framebuffer()
	writeDisplay(tm.Screen, &fb)

	snap := emu.Snapshot()
	lines := panel(t.title, snap, haltErr)
	for i, line := range lines {
		tm.Print(tm.MoveTo(line, panelColumn, i+1))
	}

	tm.Flush()
}

// writeDisplay writes the framebuffer as one text line per display row.
// Rows are colored one by one as goterm drops line breaks of colored text.
func writeDisplay(w io.Writer, fb *chip8.Framebuffer) {
	var buf, row strings.Builder
	for y := range chip8.DisplayHeight {
		row.Reset()
		for x := range chip8.DisplayWidth {
			if fb.Pixel(x, y) {
				row.WriteString(pixelOn)
			} else {
				row.WriteString(pixelOff)
			}
		}
		buf.WriteString(tm.Color(row.String(), tm.GREEN))
		buf.WriteByte('\n')
	}
	_, _ = io.WriteString(w, buf.String())
}

// panel returns the lines of the register panel.
func panel(title string, snap chip8.Snapshot, haltErr error) []string {
	lines := []string{
		tm.Bold(title),
		"",
		fmt.Sprintf("PC  $%04X  I  $%04X", snap.PC, snap.Index),
		fmt.Sprintf("OP  $%04X  SP %d", snap.Opcode, snap.StackPointer),
		fmt.Sprintf("DT  %3d    ST %3d", snap.Timers.Delay, snap.Timers.Sound),
		"",
	}

	for i := 0; i < chip8.RegisterCount; i += 4 {
		var row []string
		for r := i; r < i+4; r++ {
			row = append(row, fmt.Sprintf("%s=%02X", chip8.Register(r), snap.Registers[r]))
		}
		lines = append(lines, strings.Join(row, " "))
	}

	lines = append(lines, "", fmt.Sprintf("Cycles: %d", snap.Cycles))
	if snap.Timers.Sound > 0 {
		lines = append(lines, tm.Color("BEEP", tm.YELLOW))
	}
	if haltErr != nil {
		lines = append(lines, tm.Color("HALTED: "+haltErr.Error(), tm.RED))
	}
	return lines
}
