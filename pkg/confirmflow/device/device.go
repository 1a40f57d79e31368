// Package device runs confirmation flows on the physical hardware: an SDL
// panel for output and two evdev buttons for input.
//
// A Device is both the navigator's Renderer and the session's event source.
// Paginated steps are paged here; only events that leave the current page
// range reach the navigator.
package device

import (
	"sync"

	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/constants"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/flow"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal/config"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal/input"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal/paging"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal/sdlscreen"
)

const windowTitle = "confirmflow"

type screen interface {
	Draw(sdlscreen.Frame) error
	Close()
}

type buttons interface {
	Events() <-chan constants.Event
	Close() error
}

// Device owns the screen and the buttons until Close.
type Device struct {
	screen screen
	input  buttons

	mu        sync.Mutex
	pager     *paging.Pager
	layout    constants.Layout
	content   flow.Content
	accepting bool // a step is on screen and no flush has happened since

	events  chan constants.Event
	flushes chan chan struct{}
	done    chan struct{}
	stopped chan struct{}
	wg      sync.WaitGroup
}

// Open brings up the screen and input device described by cfg.
func Open(cfg config.Config) (*Device, error) {
	scr, err := sdlscreen.Open(windowTitle, cfg.Display, sdlscreen.WindowOptions{})
	if err != nil {
		return nil, err
	}

	src, err := input.OpenEvdev(cfg.Input)
	if err != nil {
		scr.Close()
		return nil, err
	}

	internal.GetInternalLogger().Info("device opened", "input", cfg.Input.Device)
	return newDevice(scr, src, paging.NewPager(cfg.Display.PageColumns, cfg.Display.PageRows)), nil
}

func newDevice(scr screen, src buttons, pager *paging.Pager) *Device {
	d := &Device{
		screen:  scr,
		input:   src,
		pager:   pager,
		events:  make(chan constants.Event),
		flushes: make(chan chan struct{}),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}

	d.wg.Add(1)
	go d.pump()
	return d
}

// Render draws a step. It satisfies navigator.Renderer. Button events are
// delivered again once the step is on screen.
func (d *Device) Render(layout constants.Layout, content flow.Content) error {
	d.mu.Lock()
	d.layout, d.content = layout, content
	d.pager.Load(layout, content)
	frame := d.frameLocked()
	d.mu.Unlock()

	if err := d.screen.Draw(frame); err != nil {
		return err
	}

	d.mu.Lock()
	d.accepting = true
	d.mu.Unlock()
	return nil
}

// Events delivers button events meant for the navigator. The channel is
// closed when the input device goes away or the Device is closed.
func (d *Device) Events() <-chan constants.Event {
	return d.events
}

// Flush drops every button event not yet taken from Events, including the
// ones still queued by the input reader. Events are ignored from then until
// the next Render completes.
func (d *Device) Flush() {
	ack := make(chan struct{})
	select {
	case d.flushes <- ack:
		<-ack
	case <-d.stopped:
	}
}

// Close releases the input device and shuts the screen down.
func (d *Device) Close() error {
	close(d.done)
	err := d.input.Close()
	d.wg.Wait()
	d.screen.Close()
	return err
}

func (d *Device) pump() {
	defer d.wg.Done()
	defer close(d.stopped)
	defer close(d.events)

	in := d.input.Events()
	for {
		select {
		case ev, ok := <-in:
			if !ok {
				internal.GetInternalLogger().Warn("input device closed")
				return
			}
			if !d.handle(in, ev) {
				return
			}
		case ack := <-d.flushes:
			d.flush(in, ack)
		case <-d.done:
			return
		}
	}
}

// handle pages or forwards ev. It returns false once the device is closing.
func (d *Device) handle(in <-chan constants.Event, ev constants.Event) bool {
	d.mu.Lock()
	if !d.accepting {
		d.mu.Unlock()
		internal.GetInternalLogger().Debug("button event dropped, no step on screen", "event", ev.GetName())
		return true
	}
	paged := d.pager.Intercept(ev)
	frame := d.frameLocked()
	d.mu.Unlock()

	if paged {
		if err := d.screen.Draw(frame); err != nil {
			internal.GetInternalLogger().Error("page redraw failed", "error", err)
		}
		return true
	}

	select {
	case d.events <- ev:
	case ack := <-d.flushes:
		// ev was pressed before the flush and is dropped with the rest.
		d.flush(in, ack)
	case <-d.done:
		return false
	}
	return true
}

func (d *Device) flush(in <-chan constants.Event, ack chan<- struct{}) {
	d.mu.Lock()
	d.accepting = false
	d.pager.Reset()
	d.mu.Unlock()

	defer close(ack)
	for {
		select {
		case _, ok := <-in:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

func (d *Device) frameLocked() sdlscreen.Frame {
	page, index, count := d.pager.Current()
	return sdlscreen.Frame{
		Layout:    d.layout,
		Content:   d.content,
		Page:      page,
		PageIndex: index,
		PageCount: count,
	}
}
