package sdlscreen

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal/config"
)

// Theme holds the two colours of the monochrome panel.
type Theme struct {
	Foreground sdl.Color // Text and icons
	Background sdl.Color // Cleared screen
}

// HexToColor converts 0xRRGGBB to an opaque colour.
func HexToColor(hex uint32) sdl.Color {
	return sdl.Color{
		R: uint8(hex >> 16),
		G: uint8(hex >> 8),
		B: uint8(hex),
		A: 0xFF,
	}
}

// ThemeFromConfig reads the panel colours from the display settings.
func ThemeFromConfig(display config.Display) Theme {
	return Theme{
		Foreground: HexToColor(display.Foreground),
		Background: HexToColor(display.Background),
	}
}
