// Package sdlscreen draws steps on the device panel with SDL2.
//
// SDL must be driven from a single OS thread, so a Screen owns one goroutine
// locked to its thread and every draw is handed to it.
package sdlscreen

import (
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/constants"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal/config"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal/icons"
)

var ErrClosed = errors.New("sdlscreen: screen closed")

// Screen is an SDL window showing one Frame at a time.
type Screen struct {
	requests  chan func()
	done      chan struct{}
	closed    chan struct{}
	closeOnce sync.Once

	// Owned by the render goroutine.
	window  *Window
	regular *ttf.Font
	bold    *ttf.Font
	cache   *TextureCache
	theme   Theme
}

// Open initialises SDL and creates the window. It returns once the render
// goroutine is ready or has failed.
func Open(title string, display config.Display, opts WindowOptions) (*Screen, error) {
	s := &Screen{
		requests: make(chan func()),
		done:     make(chan struct{}),
		closed:   make(chan struct{}),
		cache:    NewTextureCache(defaultMaxCacheSize),
		theme:    ThemeFromConfig(display),
	}

	ready := make(chan error, 1)
	go s.loop(title, display, opts, ready)
	if err := <-ready; err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Screen) loop(title string, display config.Display, opts WindowOptions, ready chan<- error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer close(s.closed)

	if err := s.init(title, display, opts); err != nil {
		s.cleanup()
		ready <- err
		return
	}
	ready <- nil

	for {
		select {
		case req := <-s.requests:
			req()
		case <-s.done:
			s.cleanup()
			return
		}
	}
}

func (s *Screen) init(title string, display config.Display, opts WindowOptions) error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}
	if err := ttf.Init(); err != nil {
		return fmt.Errorf("ttf init: %w", err)
	}

	window, err := newWindow(title, display, opts)
	if err != nil {
		return err
	}
	s.window = window

	if s.regular, err = ttf.OpenFont(display.FontPath, display.FontSize); err != nil {
		return fmt.Errorf("open font %s: %w", display.FontPath, err)
	}
	if s.bold, err = ttf.OpenFont(display.FontPath, display.FontSize); err != nil {
		return fmt.Errorf("open font %s: %w", display.FontPath, err)
	}
	s.bold.SetStyle(ttf.STYLE_BOLD)

	internal.GetInternalLogger().Info("screen ready", "font", display.FontPath, "font_size", display.FontSize)
	return nil
}

func (s *Screen) cleanup() {
	s.cache.Destroy()
	if s.regular != nil {
		s.regular.Close()
	}
	if s.bold != nil {
		s.bold.Close()
	}
	if s.window != nil {
		s.window.close()
	}
	ttf.Quit()
	sdl.Quit()
}

// Draw replaces the screen contents with f and waits until it is presented.
func (s *Screen) Draw(f Frame) error {
	errc := make(chan error, 1)
	select {
	case s.requests <- func() { errc <- s.draw(f) }:
	case <-s.closed:
		return ErrClosed
	}
	return <-errc
}

// Close destroys the window and shuts SDL down.
func (s *Screen) Close() {
	s.closeOnce.Do(func() { close(s.done) })
	<-s.closed
}

func (s *Screen) draw(f Frame) error {
	r := s.window.Renderer
	bg, fg := s.theme.Background, s.theme.Foreground

	if err := r.SetDrawColor(bg.R, bg.G, bg.B, bg.A); err != nil {
		return err
	}
	if err := r.Clear(); err != nil {
		return err
	}

	for _, el := range plan(f, int32(s.regular.Height()), s.window.Height) {
		var (
			tex *cachedTexture
			err error
		)
		if el.isIcon() {
			tex, err = s.iconTexture(el.icon)
		} else {
			tex, err = s.textTexture(el.text, el.bold, fg)
		}
		if err != nil {
			return err
		}

		x := int32(margin)
		if el.align == alignCenter {
			x = max((s.window.Width-tex.w)/2, 0)
		}
		if err := r.Copy(tex.texture, nil, &sdl.Rect{X: x, Y: el.y, W: tex.w, H: tex.h}); err != nil {
			return err
		}
	}

	s.window.Present()
	internal.GetInternalLogger().Debug("frame drawn", "layout", f.Layout.GetName(), "title", f.Content.Title)
	return nil
}

func (s *Screen) textTexture(text string, bold bool, color sdl.Color) (*cachedTexture, error) {
	key := "r:" + text
	font := s.regular
	if bold {
		key, font = "b:"+text, s.bold
	}
	if tex, ok := s.cache.Get(key); ok {
		return tex, nil
	}

	surface, err := font.RenderUTF8Blended(text, color)
	if err != nil {
		return nil, fmt.Errorf("render text %q: %w", text, err)
	}
	defer surface.Free()

	texture, err := s.window.Renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return nil, fmt.Errorf("create text texture: %w", err)
	}
	return s.cache.Put(key, texture, surface.W, surface.H), nil
}

func (s *Screen) iconTexture(icon constants.Icon) (*cachedTexture, error) {
	key := "i:" + icon.GetName()
	if tex, ok := s.cache.Get(key); ok {
		return tex, nil
	}

	img, err := icons.Rasterize(icon, iconSize)
	if err != nil {
		return nil, err
	}

	surface, err := sdl.CreateRGBSurfaceWithFormat(0, iconSize, iconSize, 32, uint32(sdl.PIXELFORMAT_ABGR8888))
	if err != nil {
		return nil, fmt.Errorf("create icon surface: %w", err)
	}
	defer surface.Free()

	pixels, pitch := surface.Pixels(), int(surface.Pitch)
	for y := 0; y < iconSize; y++ {
		copy(pixels[y*pitch:y*pitch+iconSize*4], img.Pix[y*img.Stride:])
	}

	texture, err := s.window.Renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return nil, fmt.Errorf("create icon texture: %w", err)
	}
	fg := s.theme.Foreground
	if err := texture.SetColorMod(fg.R, fg.G, fg.B); err != nil {
		internal.GetInternalLogger().Warn("icon tint unsupported", "error", err)
	}
	return s.cache.Put(key, texture, iconSize, iconSize), nil
}
