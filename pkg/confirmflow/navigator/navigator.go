package navigator

import (
	"errors"
	"fmt"

	"go.uber.org/atomic"

	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/constants"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/flow"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/internal"
	"github.com/BrandonKowalski/confirmflow/pkg/confirmflow/staging"
)

var (
	// ErrAlreadyRunning is returned by Start while a flow is in progress.
	ErrAlreadyRunning = errors.New("navigator: a flow is already running")

	// ErrNilFlow is returned by Start when given a nil flow.
	ErrNilFlow = errors.New("navigator: nil flow")

	// ErrRunning is returned by Response while the flow has not terminated.
	ErrRunning = errors.New("navigator: flow has not terminated")

	// ErrNoResponse is returned by Response when no terminal step has fired
	// since the last Start, for example after Abort.
	ErrNoResponse = errors.New("navigator: no response recorded")
)

// Renderer draws a fully resolved step. It is called exactly once per
// render with no retries.
type Renderer interface {
	Render(layout constants.Layout, content flow.Content) error
}

// RendererFunc adapts a function to the Renderer interface.
type RendererFunc func(layout constants.Layout, content flow.Content) error

func (f RendererFunc) Render(layout constants.Layout, content flow.Content) error {
	return f(layout, content)
}

// Navigator drives one flow at a time. Every method returns as soon as the
// resulting render or activation has completed; waiting for input happens
// in the caller.
type Navigator struct {
	buffer   *staging.Buffer
	response *Response
	renderer Renderer

	flow   *flow.Flow
	index  int
	active atomic.Bool
}

// New creates an idle Navigator that stages content in buffer, commits
// outcomes to response, and draws through renderer.
func New(buffer *staging.Buffer, response *Response, renderer Renderer) *Navigator {
	return &Navigator{
		buffer:   buffer,
		response: response,
		renderer: renderer,
	}
}

// Start begins an execution of f at its first step and renders it.
// The previous response is cleared. If the render fails the flow stays
// running; the caller decides whether to Abort.
func (n *Navigator) Start(f *flow.Flow) error {
	if f == nil {
		return ErrNilFlow
	}
	if n.active.Load() {
		return fmt.Errorf("start %q: %w", f.Name(), ErrAlreadyRunning)
	}

	n.flow = f
	n.index = 0
	n.response.Clear()
	n.active.Store(true)

	internal.GetInternalLogger().Debug("flow started", "flow", f.Name(), "steps", f.Len())

	return n.render()
}

// Next moves to the following step and renders it. At the last step it does nothing.
func (n *Navigator) Next() error {
	if !n.active.Load() || n.index+1 >= n.flow.Len() {
		return nil
	}
	n.index++
	return n.render()
}

// Previous moves to the preceding step and renders it again, re-running its
// render hook. At the first step it does nothing.
func (n *Navigator) Previous() error {
	if !n.active.Load() || n.index == 0 {
		return nil
	}
	n.index--
	return n.render()
}

// Activate runs the current step's activation hook. Activating a step that
// is not actionable is ignored. The flow ends when the hook returns
// flow.SignalTerminate.
func (n *Navigator) Activate() error {
	if !n.active.Load() {
		return nil
	}

	step := n.flow.Step(n.index)
	if !step.Actionable() {
		internal.GetInternalLogger().Debug("activation ignored", "flow", n.flow.Name(), "step", step.Name())
		return nil
	}

	if step.Activate(n.response) == flow.SignalTerminate {
		n.active.Store(false)
		approved, _ := n.response.Read()
		internal.GetInternalLogger().Debug("flow terminated",
			"flow", n.flow.Name(), "step", step.Name(), "approved", approved)
	}
	return nil
}

// Handle dispatches a decoded input event.
func (n *Navigator) Handle(event constants.Event) error {
	switch event {
	case constants.EventNext:
		return n.Next()
	case constants.EventPrevious:
		return n.Previous()
	case constants.EventActivate:
		return n.Activate()
	default:
		return nil
	}
}

// Abort stops the running flow without recording a response. It is the
// caller's reset path when it stops waiting for input.
func (n *Navigator) Abort() {
	if n.active.Swap(false) {
		internal.GetInternalLogger().Debug("flow aborted", "flow", n.flow.Name(), "index", n.index)
	}
}

// Response returns the outcome of the last terminated flow. It stays
// readable until the next Start.
func (n *Navigator) Response() (bool, error) {
	if n.active.Load() {
		return false, ErrRunning
	}
	approved, ok := n.response.Read()
	if !ok {
		return false, ErrNoResponse
	}
	return approved, nil
}

// Active reports whether a flow is in progress.
func (n *Navigator) Active() bool {
	return n.active.Load()
}

// Index returns the current step index of the running or last flow.
func (n *Navigator) Index() int {
	return n.index
}

// Current returns the step under the cursor, or nil before the first Start.
func (n *Navigator) Current() *flow.Step {
	if n.flow == nil {
		return nil
	}
	return n.flow.Step(n.index)
}

func (n *Navigator) render() error {
	step := n.flow.Step(n.index)
	layout, content := step.Render(n.buffer)
	if err := n.renderer.Render(layout, content); err != nil {
		return fmt.Errorf("navigator: render step %q: %w", step.Name(), err)
	}
	return nil
}
