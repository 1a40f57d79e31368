package sdlscreen

import "github.com/veandco/go-sdl2/sdl"

// WindowOptions selects the SDL window flags. The zero value picks a
// borderless fullscreen window on the device and a plain window in dev mode.
type WindowOptions struct {
	Borderless        bool // SDL_WINDOW_BORDERLESS
	FullscreenDesktop bool // SDL_WINDOW_FULLSCREEN_DESKTOP
}

func (wo WindowOptions) IsZero() bool {
	return wo == WindowOptions{}
}

func (wo WindowOptions) ToSDLFlags() uint32 {
	flags := uint32(sdl.WINDOW_SHOWN)

	if wo.Borderless {
		flags |= sdl.WINDOW_BORDERLESS
	}
	if wo.FullscreenDesktop {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	return flags
}
