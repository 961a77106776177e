// Package desktop implements a windowed frontend based on Ebitengine.
package desktop

import (
	"context"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrogolib/log"
)

// Name of the frontend.
const Name = "desktop"

// hostKeys maps the host keyboard to the characters of the shared keymap.
var hostKeys = map[ebiten.Key]rune{
	ebiten.KeyDigit1: '1', ebiten.KeyDigit2: '2', ebiten.KeyDigit3: '3', ebiten.KeyDigit4: '4',
	ebiten.KeyQ: 'Q', ebiten.KeyW: 'W', ebiten.KeyE: 'E', ebiten.KeyR: 'R',
	ebiten.KeyA: 'A', ebiten.KeyS: 'S', ebiten.KeyD: 'D', ebiten.KeyF: 'F',
	ebiten.KeyZ: 'Z', ebiten.KeyX: 'X', ebiten.KeyC: 'C', ebiten.KeyV: 'V',
}

// Desktop renders the display into a window.
type Desktop struct {
	logger *log.Logger
	title  string
	scale  int
}

// New returns a new desktop frontend.
func New(cfg frontend.Config) (frontend.Frontend, error) {
	scale := cfg.Scale
	if scale < 1 {
		scale = 1
	}
	return &Desktop{
		logger: cfg.Logger,
		title:  cfg.Title,
		scale:  scale,
	}, nil
}

// Name returns the name of the frontend.
func (d *Desktop) Name() string {
	return Name
}

// Run opens the window and runs the emulation until the window is closed,
// escape is pressed or the context is cancelled. A halted machine keeps its
// last frame visible until the window is closed.
func (d *Desktop) Run(ctx context.Context, emu frontend.Emulator) error {
	g := &game{
		ctx:    ctx,
		emu:    emu,
		logger: d.logger,
		scale:  d.scale,
		pixels: make([]byte, chip8.DisplayWidth*chip8.DisplayHeight*4),
	}

	ebiten.SetWindowSize(chip8.DisplayWidth*d.scale, chip8.DisplayHeight*d.scale)
	ebiten.SetWindowTitle(d.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(frontend.FrameRate)

	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("running emulation: %w", err)
	}
	if err := emu.Err(); err != nil {
		return fmt.Errorf("running frame: %w", err)
	}
	return nil
}

// game implements the ebiten.Game interface.
type game struct {
	ctx    context.Context
	emu    frontend.Emulator
	logger *log.Logger
	scale  int

	screen *ebiten.Image // reused display sized canvas
	pixels []byte
}

func (g *game) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if g.emu.Err() != nil {
		return nil
	}

	g.emu.SetKeys(pressedKeys())

	if err := g.emu.Frame(); err != nil {
		if g.logger != nil {
			g.logger.Debug("Machine halted", log.Err(err))
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.screen == nil {
		g.screen = ebiten.NewImage(chip8.DisplayWidth, chip8.DisplayHeight)
	}

	fb := g.emu.Framebuffer()
	frontend.WritePixels(&fb, g.pixels)
	g.screen.WritePixels(g.pixels)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(g.scale), float64(g.scale))
	screen.DrawImage(g.screen, op)

	switch err := g.emu.Err(); {
	case err != nil:
		ebitenutil.DebugPrint(screen, "HALTED: "+err.Error())
	case g.emu.SoundTimer() > 0:
		ebitenutil.DebugPrintAt(screen, "BEEP", 2, 2)
	}
}

func (g *game) Layout(_, _ int) (int, int) {
	return chip8.DisplayWidth * g.scale, chip8.DisplayHeight * g.scale
}

// pressedKeys returns the keypad state of the currently pressed host keys.
func pressedKeys() chip8.Keypad {
	var keys chip8.Keypad
	for hostKey, r := range hostKeys {
		if !ebiten.IsKeyPressed(hostKey) {
			continue
		}
		if key, ok := frontend.KeyForRune(r); ok {
			keys[key] = true
		}
	}
	return keys
}
