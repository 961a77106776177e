//go:build sdl

package main

import (
	"github.com/retroenv/retrochip8/internal/frontend"
	"github.com/retroenv/retrochip8/internal/frontend/sdl"
)

func init() {
	registerFrontends = append(registerFrontends, func(registry *frontend.Registry) {
		registry.Register(sdl.Name, sdl.New)
	})
}
