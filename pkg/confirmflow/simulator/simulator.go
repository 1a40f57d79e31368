// Package simulator runs confirmation flows in a terminal. The step on
// screen is drawn with lipgloss in a box the size of the device's text
// area; the arrow keys stand in for the two buttons.
package simulator

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/atomic"

	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/constants"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/flow"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal/config"
)

const queueSize = 16

var ErrClosed = errors.New("simulator: program exited")

// Script drives the session while the terminal UI runs.
type Script func(ctx context.Context, s *confirmflow.Session, report func(string)) error

// Simulator is a terminal backend: a navigator Renderer and an event source.
type Simulator struct {
	program *tea.Program
	events  chan constants.Event
	exited  atomic.Bool
}

// New creates a simulator sized like display. opts are passed to bubbletea.
func New(display config.Display, opts ...tea.ProgramOption) *Simulator {
	events := make(chan constants.Event, queueSize)
	return &Simulator{
		program: tea.NewProgram(newModel(display.PageColumns, display.PageRows, events), opts...),
		events:  events,
	}
}

// Render shows a step. It satisfies navigator.Renderer.
func (s *Simulator) Render(layout constants.Layout, content flow.Content) error {
	if s.exited.Load() {
		return ErrClosed
	}
	s.program.Send(frameMsg{layout: layout, content: content})
	return nil
}

// Flush makes the model ignore keys until the next step is shown. The
// session drains the event channel itself afterwards.
func (s *Simulator) Flush() {
	if !s.exited.Load() {
		s.program.Send(flushMsg{})
	}
}

// Events delivers key presses translated to button events.
func (s *Simulator) Events() <-chan constants.Event {
	return s.events
}

// Run starts the terminal UI and runs script against a fresh session until
// the script returns and the user leaves, or the user quits early. Quitting
// early cancels the script's context.
func (s *Simulator) Run(parent context.Context, script Script) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	session := confirmflow.NewSession(s, s)
	report := func(line string) { s.program.Send(reportMsg{line: line}) }

	errc := make(chan error, 1)
	go func() {
		err := script(ctx, session, report)
		errc <- err
		s.program.Send(doneMsg{err: err})
	}()

	_, runErr := s.program.Run()
	s.exited.Store(true)
	cancel()

	scriptErr := <-errc
	if errors.Is(runErr, tea.ErrProgramKilled) && parent.Err() != nil {
		return fmt.Errorf("%w: %w", confirmflow.ErrCancelled, parent.Err())
	}
	if runErr != nil {
		return fmt.Errorf("simulator: %w", runErr)
	}
	if scriptErr != nil && !confirmflow.IsCancelled(scriptErr) {
		internal.GetInternalLogger().Error("simulator script failed", "error", scriptErr)
	}
	return scriptErr
}

// PlayFixture is a Script that answers every request of f in turn.
func PlayFixture(f *Fixture) Script {
	return func(ctx context.Context, s *confirmflow.Session, report func(string)) error {
		return Play(ctx, s, f, func(req Request, res confirmflow.ConfirmResult) {
			verdict := "rejected"
			if res.Approved {
				verdict = "approved"
			}
			report(fmt.Sprintf("%s: %s", req.Scenario, verdict))
		})
	}
}
