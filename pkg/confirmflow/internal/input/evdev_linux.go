//go:build linux

package input

import (
	"fmt"
	"sync"
	"time"

	"github.com/holoplot/go-evdev"

	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/constants"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal/config"
)

const (
	keyReleased = 0
	keyPressed  = 1
	tickPeriod  = 10 * time.Millisecond
	queueSize   = 16
)

// keyReader is the part of *evdev.InputDevice the source uses.
type keyReader interface {
	ReadOne() (*evdev.InputEvent, error)
	Close() error
}

// EvdevSource reads the two buttons from a Linux input device.
type EvdevSource struct {
	device  keyReader
	buttons map[evdev.EvCode]constants.Button

	mu      sync.Mutex
	decoder *ChordDecoder

	events    chan constants.Event
	done      chan struct{} // closed by Close
	readDone  chan struct{} // closed when read returns
	closed    chan struct{} // closed after events
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// OpenEvdev opens cfg.Device and starts decoding its key events.
func OpenEvdev(cfg config.Input) (*EvdevSource, error) {
	device, err := evdev.Open(cfg.Device)
	if err != nil {
		return nil, fmt.Errorf("open input device %s: %w", cfg.Device, err)
	}

	if cfg.Grab {
		if err := device.Grab(); err != nil {
			device.Close()
			return nil, fmt.Errorf("grab input device %s: %w", cfg.Device, err)
		}
	}

	name, _ := device.Name()
	internal.GetInternalLogger().Debug("input device opened", "path", cfg.Device, "name", name)

	return newEvdevSource(device, cfg), nil
}

func newEvdevSource(device keyReader, cfg config.Input) *EvdevSource {
	s := &EvdevSource{
		device: device,
		buttons: map[evdev.EvCode]constants.Button{
			evdev.EvCode(cfg.LeftCode):  constants.ButtonLeft,
			evdev.EvCode(cfg.RightCode): constants.ButtonRight,
		},
		decoder:  NewChordDecoderWithTiming(cfg.RepeatDelay(), cfg.RepeatInterval()),
		events:   make(chan constants.Event, queueSize),
		done:     make(chan struct{}),
		readDone: make(chan struct{}),
		closed:   make(chan struct{}),
	}

	s.wg.Add(2)
	go s.read()
	go s.tick()
	go func() {
		s.wg.Wait()
		close(s.events)
		close(s.closed)
	}()

	return s
}

// Events delivers decoded events. The channel is closed by Close, or
// earlier if the device fails or is unplugged.
func (s *EvdevSource) Events() <-chan constants.Event {
	return s.events
}

// Close stops both goroutines and releases the device. It is safe to call
// after the device has already failed.
func (s *EvdevSource) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.device.Close() // unblocks ReadOne
	})
	<-s.closed
	return err
}

func (s *EvdevSource) read() {
	defer s.wg.Done()
	defer close(s.readDone)

	for {
		ev, err := s.device.ReadOne()
		if err != nil {
			select {
			case <-s.done:
			default:
				internal.GetInternalLogger().Error("input device read failed", "error", err)
			}
			return
		}

		if ev.Type != evdev.EV_KEY {
			continue
		}
		button, ok := s.buttons[ev.Code]
		if !ok {
			continue
		}

		now := time.Now()
		s.mu.Lock()
		var out constants.Event
		switch ev.Value {
		case keyPressed:
			out = s.decoder.Press(button, now)
		case keyReleased:
			out = s.decoder.Release(button, now)
		}
		s.mu.Unlock()

		s.emit(out)
	}
}

func (s *EvdevSource) tick() {
	defer s.wg.Done()

	ticker := time.NewTicker(tickPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-s.readDone:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			out := s.decoder.Update(now)
			s.mu.Unlock()
			s.emit(out)
		}
	}
}

func (s *EvdevSource) emit(ev constants.Event) {
	if ev == constants.EventNone {
		return
	}
	select {
	case s.events <- ev:
	default:
		internal.GetInternalLogger().Warn("input queue full, dropping event", "event", ev.GetName())
	}
}
