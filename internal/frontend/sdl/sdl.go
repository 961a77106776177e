//go:build sdl

// Package sdl implements a windowed frontend based on SDL2. All SDL calls are
// executed on the main thread.
package sdl

import (
	"context"
	"fmt"
	"time"
	"unsafe"

	"github.com/faiface/mainthread"
	"github.com/retroenv/retrochip8/internal/chip8"
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

// Name of the frontend.
const Name = "sdl"

// SDL renders the display into an SDL window.
type SDL struct {
	logger *log.Logger
	title  string
	scale  int

	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	buffer   []byte

	keys chip8.Keypad
	quit bool
}

// New returns a new SDL frontend.
func New(cfg frontend.Config) (frontend.Frontend, error) {
	scale := cfg.Scale
	if scale < 1 {
		scale = 1
	}
	return &SDL{
		logger: cfg.Logger,
		title:  cfg.Title,
		scale:  scale,
		buffer: make([]byte, chip8.DisplayWidth*chip8.DisplayHeight*4),
	}, nil
}

// Name returns the name of the frontend.
func (s *SDL) Name() string {
	return Name
}

// Run opens the window and runs the emulation until the window is closed,
// escape is pressed, the context is cancelled or the machine halts.
func (s *SDL) Run(ctx context.Context, emu frontend.Emulator) error {
	var err error
	mainthread.Run(func() {
		err = s.run(ctx, emu)
	})
	return err
}

func (s *SDL) run(ctx context.Context, emu frontend.Emulator) error {
	var err error
	mainthread.Call(func() {
		err = s.open()
	})
	if err != nil {
		return err
	}
	defer mainthread.Call(s.close)

	ticker := time.NewTicker(time.Second / frontend.FrameRate)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("running emulation: %w", ctx.Err())
		case <-ticker.C:
		}

		mainthread.Call(s.pollEvents)
		if s.quit {
			return nil
		}

		emu.SetKeys(s.keys)
		frameErr := emu.Frame()

		fb := emu.Framebuffer()
		mainthread.Call(func() {
			err = s.present(&fb)
		})
		if err != nil {
			return err
		}

		if frameErr != nil {
			return fmt.Errorf("running frame: %w", frameErr)
		}
	}
}

func (s *SDL) open() error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("initializing sdl: %w", err)
	}

	window, err := sdl.CreateWindow(s.title,
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(chip8.DisplayWidth*s.scale), int32(chip8.DisplayHeight*s.scale),
		sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	s.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	s.renderer = renderer

	texture, err := renderer.CreateTexture(
		uint32(sdl.PIXELFORMAT_RGBA32),
		sdl.TEXTUREACCESS_STREAMING,
		chip8.DisplayWidth, chip8.DisplayHeight)
	if err != nil {
		return fmt.Errorf("creating texture: %w", err)
	}
	s.texture = texture
	return nil
}

func (s *SDL) close() {
	if s.texture != nil {
		s.texture.Destroy()
	}
	if s.renderer != nil {
		s.renderer.Destroy()
	}
	if s.window != nil {
		s.window.Destroy()
	}
	sdl.Quit()
}

// pollEvents processes all pending window and keyboard events.
func (s *SDL) pollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			s.quit = true

		case *sdl.KeyboardEvent:
			if e.Keysym.Sym == sdl.K_ESCAPE {
				s.quit = true
				continue
			}
			// letter and digit keycodes are their lowercase characters
			key, ok := frontend.KeyForRune(rune(e.Keysym.Sym))
			if !ok {
				continue
			}
			down := e.Type == sdl.KEYDOWN
			s.keys[key] = down
			if s.logger != nil {
				s.logger.Debug("Key event", log.Hex("key", key), log.String("state", keyState(down)))
			}
		}
	}
}

func (s *SDL) present(fb *chip8.Framebuffer) error {
	frontend.WritePixels(fb, s.buffer)
	if err := s.texture.Update(nil, pixelData(s.buffer), texturePitch); err != nil {
		return fmt.Errorf("updating texture: %w", err)
	}
	if err := s.renderer.Copy(s.texture, nil, nil); err != nil {
		return fmt.Errorf("copying texture: %w", err)
	}
	s.renderer.Present()
	return nil
}

// texturePitch is the byte length of one texture row.
const texturePitch = chip8.DisplayWidth * 4

// pixelData returns the address of the RGBA buffer as expected by the texture.
func pixelData(buffer []byte) unsafe.Pointer {
	return unsafe.Pointer(&buffer[0])
}

func keyState(down bool) string {
	if down {
		return "down"
	}
	return "up"
}
