package sdlscreen

import (
	"fmt"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/constants"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal/config"
)

// Window wraps the SDL window and renderer. The renderer works in logical
// display pixels; SDL scales to the real window size.
type Window struct {
	Window          *sdl.Window
	Renderer        *sdl.Renderer
	Width           int32
	Height          int32
	hasVSync        bool
	lastPresentTime uint64
}

func newWindow(title string, display config.Display, opts WindowOptions) (*Window, error) {
	if opts.IsZero() && !constants.IsDevMode() {
		opts = WindowOptions{Borderless: true, FullscreenDesktop: true}
	}

	width, height := display.Width*display.Scale, display.Height*display.Scale
	internal.GetInternalLogger().Debug("creating SDL window",
		"logical_width", display.Width, "logical_height", display.Height,
		"width", width, "height", height)

	window, err := sdl.CreateWindow(title, sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED, width, height, opts.ToSDLFlags())
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		internal.GetInternalLogger().Warn("accelerated renderer unavailable, falling back to software", "error", err)
		renderer, err = sdl.CreateRenderer(window, -1, sdl.RENDERER_SOFTWARE)
	}
	if err != nil {
		window.Destroy()
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	if err := renderer.SetLogicalSize(display.Width, display.Height); err != nil {
		renderer.Destroy()
		window.Destroy()
		return nil, fmt.Errorf("set logical size: %w", err)
	}

	info, err := renderer.GetInfo()
	vsync := err == nil && info.Flags&sdl.RENDERER_PRESENTVSYNC != 0

	return &Window{
		Window:   window,
		Renderer: renderer,
		Width:    display.Width,
		Height:   display.Height,
		hasVSync: vsync,
	}, nil
}

// Present swaps the render buffer and enforces ~60fps frame timing
// when VSync is not available.
func (w *Window) Present() {
	w.Renderer.Present()
	if !w.hasVSync {
		now := sdl.GetTicks64()
		if elapsed := now - w.lastPresentTime; elapsed < 16 {
			sdl.Delay(uint32(16 - elapsed))
		}
		w.lastPresentTime = sdl.GetTicks64()
	}
}

func (w *Window) close() {
	w.Renderer.Destroy()
	w.Window.Destroy()
}
